package params

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Constraint restricts the values a Parameter accepts.
//
// Implementations must be deep-copyable through Clone, so owning parameters
// can duplicate them, and printable, so rejections carry a readable
// description.
type Constraint interface {
	// Accepts reports whether value satisfies the constraint.
	Accepts(value float64) bool

	// Clone returns a deep copy.
	Clone() Constraint

	fmt.Stringer
}

// Interval is a numeric Constraint accepting values between two bounds, each
// side independently inclusive or exclusive. Unbounded sides use math.Inf.
//
// Intervals are mutable: tightening the bounds of an interval shared by
// several parameters changes what all of them accept from then on. Values
// already stored are not revalidated.
type Interval struct {
	lower        float64
	upper        float64
	includeLower bool
	includeUpper bool
}

// Ensure Interval implements Constraint.
var _ Constraint = (*Interval)(nil)

// NewInterval builds an Interval from explicit bounds and inclusivity flags.
// Bounds are taken as given; an inverted interval accepts nothing.
func NewInterval(lower, upper float64, includeLower, includeUpper bool) *Interval {
	return &Interval{
		lower:        lower,
		upper:        upper,
		includeLower: includeLower,
		includeUpper: includeUpper,
	}
}

// NewClosedInterval builds [lower, upper].
func NewClosedInterval(lower, upper float64) *Interval {
	return NewInterval(lower, upper, true, true)
}

// NewOpenInterval builds (lower, upper).
func NewOpenInterval(lower, upper float64) *Interval {
	return NewInterval(lower, upper, false, false)
}

// Predefined numeric domains. Each call returns a fresh instance; intervals
// are mutable, so callers never share one unless they choose to.

// NonNegative returns [0, +Inf).
func NonNegative() *Interval {
	return NewInterval(0, math.Inf(1), true, false)
}

// StrictlyPositive returns (0, +Inf).
func StrictlyPositive() *Interval {
	return NewInterval(0, math.Inf(1), false, false)
}

// NonPositive returns (-Inf, 0].
func NonPositive() *Interval {
	return NewInterval(math.Inf(-1), 0, false, true)
}

// StrictlyNegative returns (-Inf, 0).
func StrictlyNegative() *Interval {
	return NewInterval(math.Inf(-1), 0, false, false)
}

// UnitInterval returns [0, 1].
func UnitInterval() *Interval {
	return NewClosedInterval(0, 1)
}

// OpenUnitInterval returns (0, 1).
func OpenUnitInterval() *Interval {
	return NewOpenInterval(0, 1)
}

// Accepts reports whether value lies within the bounds. NaN never does.
func (c *Interval) Accepts(value float64) bool {
	lowerOK := value > c.lower || (c.includeLower && value == c.lower)
	upperOK := value < c.upper || (c.includeUpper && value == c.upper)

	return lowerOK && upperOK
}

// Clone returns an independent copy.
func (c *Interval) Clone() Constraint {
	clone := *c

	return &clone
}

// LowerBound returns the lower bound, math.Inf(-1) when unbounded below.
func (c *Interval) LowerBound() float64 {
	return c.lower
}

// UpperBound returns the upper bound, math.Inf(1) when unbounded above.
func (c *Interval) UpperBound() float64 {
	return c.upper
}

// IncludesLowerBound reports whether the lower bound itself is accepted.
func (c *Interval) IncludesLowerBound() bool {
	return c.includeLower
}

// IncludesUpperBound reports whether the upper bound itself is accepted.
func (c *Interval) IncludesUpperBound() bool {
	return c.includeUpper
}

// SetLowerBound replaces the lower bound and its inclusivity.
func (c *Interval) SetLowerBound(bound float64, include bool) {
	c.lower = bound
	c.includeLower = include
}

// SetUpperBound replaces the upper bound and its inclusivity.
func (c *Interval) SetUpperBound(bound float64, include bool) {
	c.upper = bound
	c.includeUpper = include
}

// String renders the interval in mathematical notation, e.g. "[0, 1)" or
// "(0, +Inf)".
func (c *Interval) String() string {
	var b strings.Builder

	if c.includeLower {
		b.WriteByte('[')
	} else {
		b.WriteByte('(')
	}

	b.WriteString(formatBound(c.lower))
	b.WriteString(", ")
	b.WriteString(formatBound(c.upper))

	if c.includeUpper {
		b.WriteByte(']')
	} else {
		b.WriteByte(')')
	}

	return b.String()
}

func formatBound(bound float64) string {
	return strconv.FormatFloat(bound, 'g', -1, 64)
}
