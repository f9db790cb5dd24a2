package prob

import (
	"math"
	"slices"
	"time"

	"github.com/numkit/constrained-parameters-go/params"
)

// LambdaParameterName is the registration name of the rate parameter of an
// Exponential, usable to address it through Parameters().
const LambdaParameterName = "Exponential.lambda"

const (
	exponentialName = "Exponential"

	logMsgDiscretizationRecomputed = "discretization recomputed"
	logMsgCloneReleaseFailed       = "failed to release a listener during clone"
	logAttrRate                    = "rate"
	logAttrCategoryCount           = "category_count"
	logAttrDurationMS              = "duration_ms"
	logAttrError                   = "error"

	metricDiscretizeDuration = "distribution_discretize_duration_seconds"
	metricDiscretizeTotal    = "distribution_discretizations_total"
	labelDistribution        = "distribution"
)

// Exponential is a discretized exponential distribution with rate λ and
// density λ·e^(−λx) on x ≥ 0.
//
// The rate lives in a params.Parameter with an owned StrictlyPositive
// constraint, and the distribution listens on that parameter, so every
// accepted rate change recomputes the discretization before the mutating
// call returns.
type Exponential struct {
	parameters *params.ParameterList
	lambda     *params.Parameter
	categories []float64
	useMedian  bool
	logger     params.Logger
	metrics    params.MetricsCollector
}

var _ DiscreteDistribution = (*Exponential)(nil)
var _ params.ParameterListener = (*Exponential)(nil)

// Option defines a functional option for configuring an Exponential.
type Option func(*Exponential) error

// WithMedianDiscretization represents each category by its median instead
// of its conditional mean.
func WithMedianDiscretization() Option {
	return func(e *Exponential) error {
		e.useMedian = true
		return nil
	}
}

// WithLogger sets the logger; recomputations are reported at debug level.
func WithLogger(logger params.Logger) Option {
	return func(e *Exponential) error {
		e.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector; recomputations are counted and timed.
func WithMetrics(metrics params.MetricsCollector) Option {
	return func(e *Exponential) error {
		e.metrics = metrics
		return nil
	}
}

// NewExponential creates an Exponential discretized into categoryCount
// equiprobable categories.
//
// The rate is validated against StrictlyPositive before first use, a
// rejected rate surfaces as a params.ConstraintViolationError.
func NewExponential(categoryCount int, rate float64, options ...Option) (*Exponential, error) {
	if categoryCount < 1 {
		return nil, ErrInvalidCategoryCount
	}

	exponential := &Exponential{
		categories: make([]float64, categoryCount),
	}

	for _, option := range options {
		if err := option(exponential); err != nil {
			return nil, err
		}
	}

	lambda, buildErr := params.BuildParameter(LambdaParameterName, rate,
		params.WithOwnedConstraint(params.StrictlyPositive()))
	if buildErr != nil {
		return nil, buildErr
	}

	parameters, listErr := params.NewParameterList(lambda)
	if listErr != nil {
		return nil, listErr
	}

	exponential.parameters = parameters
	exponential.lambda = lambda

	lambda.AddListener(exponential, params.Shared)
	exponential.discretize()

	return exponential, nil
}

// Name returns the distribution name.
func (e *Exponential) Name() string {
	return exponentialName
}

// ID returns the listener registration id, which is the distribution name.
func (e *Exponential) ID() string {
	return exponentialName
}

// CategoryCount returns the number of discretization categories.
func (e *Exponential) CategoryCount() int {
	return len(e.categories)
}

// Categories returns a copy of the representative values in ascending order.
func (e *Exponential) Categories() []float64 {
	return slices.Clone(e.categories)
}

// Probabilities returns the category weights; categories are equiprobable.
func (e *Exponential) Probabilities() []float64 {
	probabilities := make([]float64, len(e.categories))
	for i := range probabilities {
		probabilities[i] = 1.0 / float64(len(e.categories))
	}

	return probabilities
}

// Parameters returns the distribution's parameter list, holding the single
// rate parameter. Mutating the rate through it recomputes the discretization.
func (e *Exponential) Parameters() *params.ParameterList {
	return e.parameters
}

// Rate returns the current rate λ.
func (e *Exponential) Rate() float64 {
	return e.lambda.Value()
}

// SetRate changes the rate through the parameter, so constraint validation
// and the recomputation both run. A rejected rate leaves the distribution
// untouched.
func (e *Exponential) SetRate(rate float64) error {
	return e.lambda.SetValue(rate)
}

// Mean returns the distribution mean 1/λ.
func (e *Exponential) Mean() float64 {
	return 1.0 / e.Rate()
}

// ProbabilityDensity returns λ·e^(−λx) for x ≥ 0 and 0 otherwise.
func (e *Exponential) ProbabilityDensity(x float64) float64 {
	if x < 0 {
		return 0
	}

	rate := e.Rate()

	return rate * math.Exp(-rate*x)
}

// CumulativeProbability returns P(X ≤ x).
func (e *Exponential) CumulativeProbability(x float64) float64 {
	if x < 0 {
		return 0
	}

	return 1.0 - math.Exp(-e.Rate()*x)
}

// Quantile returns the value below which a fraction p of the distribution
// falls, for p in [0, 1). Quantile(1) is +Inf.
func (e *Exponential) Quantile(p float64) float64 {
	return -math.Log(1.0-p) / e.Rate()
}

// ParameterValueChanged recomputes the discretization from the current rate.
func (e *Exponential) ParameterValueChanged(_ params.ChangeEvent) {
	e.discretize()
}

// ParameterNameChanged is a no-op, renames do not affect the discretization.
func (e *Exponential) ParameterNameChanged(_ params.ChangeEvent) {
}

// Clone returns an independent distribution wired to its own copy of the
// rate parameter. The copy keeps foreign listeners according to their
// ownership modes, but listens on the copied parameter itself in place of
// the original distribution.
//
// Replacing the self-registration removes listeners by id, so any foreign
// listener reporting the distribution name is swept from the copy with it.
// Owned ones are closed; a close failure is logged and the clone proceeds.
func (e *Exponential) Clone() params.ParameterListener {
	parametersClone := e.parameters.Clone()

	lambdaClone := parametersClone.At(0)
	if removeErr := lambdaClone.RemoveListenersByID(exponentialName); removeErr != nil {
		e.logCloneReleaseFailed(removeErr)
	}

	clone := &Exponential{
		parameters: parametersClone,
		lambda:     lambdaClone,
		categories: slices.Clone(e.categories),
		useMedian:  e.useMedian,
		logger:     e.logger,
		metrics:    e.metrics,
	}

	lambdaClone.AddListener(clone, params.Shared)

	return clone
}

// discretize fills the categories from the current rate. Categories are
// equiprobable, each represented by its conditional mean, or by its median
// with WithMedianDiscretization.
func (e *Exponential) discretize() {
	started := time.Now()

	rate := e.Rate()
	count := float64(len(e.categories))

	for i := range e.categories {
		if e.useMedian {
			e.categories[i] = e.Quantile((float64(i) + 0.5) / count)
			continue
		}

		lowerBound := e.Quantile(float64(i) / count)
		upperBound := e.Quantile(float64(i+1) / count)

		e.categories[i] = count * (e.tailFirstMoment(lowerBound, rate) - e.tailFirstMoment(upperBound, rate))
	}

	duration := time.Since(started)
	e.logDiscretized(rate, duration)
	e.recordDiscretized(duration)
}

// tailFirstMoment returns ∫ₓ^∞ t·λ·e^(−λt) dt, which is (x + 1/λ)·e^(−λx).
func (e *Exponential) tailFirstMoment(x float64, rate float64) float64 {
	if math.IsInf(x, 1) {
		return 0
	}

	return (x + 1.0/rate) * math.Exp(-rate*x)
}

// logCloneReleaseFailed logs a failed listener release during Clone if a
// logger is configured.
func (e *Exponential) logCloneReleaseFailed(err error) {
	if e.logger != nil {
		e.logger.Warn(logMsgCloneReleaseFailed, logAttrError, err.Error())
	}
}

// logDiscretized logs a recomputation at debug level if a logger is configured.
func (e *Exponential) logDiscretized(rate float64, duration time.Duration) {
	if e.logger != nil {
		e.logger.Debug(logMsgDiscretizationRecomputed,
			logAttrRate, rate,
			logAttrCategoryCount, len(e.categories),
			logAttrDurationMS, e.durationToMilliseconds(duration))
	}
}

// recordDiscretized records recomputation metrics if a collector is configured.
func (e *Exponential) recordDiscretized(duration time.Duration) {
	if e.metrics != nil {
		labels := map[string]string{labelDistribution: e.Name()}
		e.metrics.IncrementCounter(metricDiscretizeTotal, labels)
		e.metrics.RecordDuration(metricDiscretizeDuration, duration, labels)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (e *Exponential) durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
