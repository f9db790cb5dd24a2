package params

import (
	"errors"
	"slices"
)

// ParameterOption configures a Parameter during construction.
type ParameterOption func(parameter *Parameter) error

// WithPrecision sets the precision hint carried alongside the value.
func WithPrecision(precision float64) ParameterOption {
	return func(parameter *Parameter) error {
		parameter.precision = precision

		return nil
	}
}

// WithConstraint attaches a constraint under the given ownership mode.
func WithConstraint(constraint Constraint, mode OwnershipMode) ParameterOption {
	return func(parameter *Parameter) error {
		parameter.constraint = NewConditionalRef(constraint, mode)

		return nil
	}
}

// WithOwnedConstraint attaches a constraint the parameter will own: copies
// of the parameter clone it and the parameter frees it on replacement or
// close. The caller must not retain the instance.
func WithOwnedConstraint(constraint Constraint) ParameterOption {
	return WithConstraint(constraint, Owned)
}

// WithSharedConstraint attaches a borrowed constraint: copies of the
// parameter alias it and the parameter never frees it.
func WithSharedConstraint(constraint Constraint) ParameterOption {
	return WithConstraint(constraint, Shared)
}

// Parameter is a named scalar with an optional constraint and an ordered set
// of change listeners. Constraint and listeners are held through ownership
// refs, so a parameter can own them (clone on copy, free on release) or
// merely borrow them, decided per referent.
//
// Parameters are single-threaded: no internal locking, synchronous listener
// fan-out. Mutating a parameter from inside one of its own listener callbacks
// is a precondition violation.
type Parameter struct {
	name       string
	value      float64
	precision  float64
	constraint Ref[Constraint]
	listeners  []Ref[ParameterListener]
}

// BuildParameter is the factory method for Parameter.
//
// Options are applied in order; afterwards the initial value is validated
// against the configured constraint. A rejected value fails construction
// with a *ConstraintViolationError.
func BuildParameter(name string, value float64, options ...ParameterOption) (*Parameter, error) {
	parameter := &Parameter{
		name:  name,
		value: value,
	}

	for _, option := range options {
		if err := option(parameter); err != nil {
			return nil, err
		}
	}

	if constraint := parameter.constraint.Get(); constraint != nil && !constraint.Accepts(value) {
		return nil, &ConstraintViolationError{ParameterName: name, Value: value, Constraint: constraint}
	}

	return parameter, nil
}

// Name returns the parameter's name.
func (p *Parameter) Name() string {
	return p.name
}

// Value returns the current value.
func (p *Parameter) Value() float64 {
	return p.value
}

// Precision returns the precision hint, zero when unset.
func (p *Parameter) Precision() float64 {
	return p.precision
}

// Constraint returns the attached constraint, nil when the parameter is
// unconstrained.
func (p *Parameter) Constraint() Constraint {
	return p.constraint.Get()
}

// HasConstraint reports whether a constraint is attached.
func (p *Parameter) HasConstraint() bool {
	return !p.constraint.IsEmpty()
}

// ListenerCount returns the number of registered listeners.
func (p *Parameter) ListenerCount() int {
	return len(p.listeners)
}

// SetValue validates value against the constraint, stores it, and notifies
// every listener in registration order. On rejection the parameter is left
// untouched, nobody is notified, and a *ConstraintViolationError is
// returned.
func (p *Parameter) SetValue(value float64) error {
	if constraint := p.constraint.Get(); constraint != nil && !constraint.Accepts(value) {
		return &ConstraintViolationError{ParameterName: p.name, Value: value, Constraint: constraint}
	}

	p.value = value
	p.notifyValueChanged(NewChangeEvent(p, ValueChanged))

	return nil
}

// SetName renames the parameter and notifies every listener in registration
// order. Names are unconstrained, so renaming cannot fail.
func (p *Parameter) SetName(name string) {
	p.name = name
	p.notifyNameChanged(NewChangeEvent(p, NameChanged))
}

// SetPrecision stores a new precision hint. Precision is advisory: it is
// not validated against the constraint and listeners are not notified.
func (p *Parameter) SetPrecision(precision float64) {
	p.precision = precision
}

// SetConstraint replaces the attached constraint. The current value is
// validated against the new constraint first; on rejection the previously
// attached constraint stays in place. On success the previous constraint
// ref is released (an owned one is freed) and the new constraint is
// attached under the given mode. A nil constraint detaches like
// RemoveConstraint, except that the previous ref is released instead of
// handed back.
func (p *Parameter) SetConstraint(constraint Constraint, mode OwnershipMode) error {
	if constraint != nil && !constraint.Accepts(p.value) {
		return &ConstraintViolationError{ParameterName: p.name, Value: p.value, Constraint: constraint}
	}

	releaseErr := p.constraint.Release()

	if constraint != nil {
		p.constraint = NewConditionalRef(constraint, mode)
	}

	return releaseErr
}

// RemoveConstraint detaches the constraint and returns it without releasing
// it, whatever the ownership mode; the caller assumes responsibility for the
// instance. Returns nil when the parameter is unconstrained.
func (p *Parameter) RemoveConstraint() Constraint {
	return p.constraint.Take()
}

// AddListener appends a listener under the given ownership mode. Owned
// listeners are cloned when the parameter is cloned and freed when they are
// removed; shared listeners are aliased and never freed. Panics on a nil
// listener.
func (p *Parameter) AddListener(listener ParameterListener, mode OwnershipMode) {
	if listener == nil {
		panic("params: AddListener called with nil listener")
	}

	p.listeners = append(p.listeners, NewConditionalRef(listener, mode))
}

// RemoveListenersByID removes every listener whose ID matches, keeping the
// relative order of the survivors, and releases each removed ref (owned
// listeners are freed). Release failures are joined into the returned error.
func (p *Parameter) RemoveListenersByID(id string) error {
	var releaseErrs []error

	p.listeners = slices.DeleteFunc(p.listeners, func(ref Ref[ParameterListener]) bool {
		if ref.Get().ID() != id {
			return false
		}

		if err := ref.Release(); err != nil {
			releaseErrs = append(releaseErrs, err)
		}

		return true
	})

	return errors.Join(releaseErrs...)
}

// HasListenerWithID reports whether at least one listener carries the id.
func (p *Parameter) HasListenerWithID(id string) bool {
	return slices.ContainsFunc(p.listeners, func(ref Ref[ParameterListener]) bool {
		return ref.Get().ID() == id
	})
}

// Clone returns a deep copy honoring the ownership modes: the owned
// constraint and owned listeners are cloned, shared ones are aliased, and
// every ref keeps its mode.
func (p *Parameter) Clone() *Parameter {
	clone := &Parameter{
		name:       p.name,
		value:      p.value,
		precision:  p.precision,
		constraint: p.constraint.Copy(),
	}

	if len(p.listeners) > 0 {
		clone.listeners = make([]Ref[ParameterListener], 0, len(p.listeners))
		for _, ref := range p.listeners {
			clone.listeners = append(clone.listeners, ref.Copy())
		}
	}

	return clone
}

// Close releases the constraint ref and every listener ref, joining any
// release failures. Afterwards the parameter is unconstrained and has no
// listeners. Closing twice is safe.
func (p *Parameter) Close() error {
	releaseErrs := []error{p.constraint.Release()}

	for i := range p.listeners {
		releaseErrs = append(releaseErrs, p.listeners[i].Release())
	}
	p.listeners = nil

	return errors.Join(releaseErrs...)
}

func (p *Parameter) notifyValueChanged(event ChangeEvent) {
	for _, ref := range p.listeners {
		ref.Get().ParameterValueChanged(event)
	}
}

func (p *Parameter) notifyNameChanged(event ChangeEvent) {
	for _, ref := range p.listeners {
		ref.Get().ParameterNameChanged(event)
	}
}
