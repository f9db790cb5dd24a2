// Package params provides a value-semantic model for named, constrained,
// observable numeric parameters.
//
// A Parameter carries a name, a float64 value, a precision hint, an optional
// Constraint, and an ordered set of ParameterListeners. Constraint and
// listeners are held through ownership refs (Ref) whose copy and release
// behavior is decided by a CopyPolicy: an Owned referent is cloned when the
// parameter is cloned and freed when it is dropped, a Shared referent is
// aliased and left alone.
//
// Mutation pipeline:
//   - SetValue validates against the constraint, stores, then notifies every
//     listener synchronously in registration order. A rejected value returns
//     a *ConstraintViolationError and changes nothing.
//   - SetName stores and notifies; SetPrecision stores silently.
//
// Key types:
//   - Parameter: the named scalar entity
//   - Constraint / Interval: value domains, including the predefined ones
//     (NonNegative, StrictlyPositive, UnitInterval, ...)
//   - ParameterListener / ChangeEvent: the notification contract
//   - Ref / ConditionalOwnership: polymorphic-copy references
//   - ParameterList: an ordered, name-addressable collection
//
// Common usage pattern:
//
//	lambda, err := params.BuildParameter("Exponential.lambda", 1.0,
//		params.WithOwnedConstraint(params.StrictlyPositive()),
//	)
//	if err != nil {
//		// handle error
//	}
//
//	lambda.AddListener(listener, params.Shared)
//
//	if err := lambda.SetValue(2.5); err != nil {
//		var violation *params.ConstraintViolationError
//		if errors.As(err, &violation) {
//			// violation.Value was rejected by violation.Constraint
//		}
//	}
//
// Everything in this package is single-threaded: no internal locking,
// synchronous fan-out. Callers that share parameters across goroutines must
// serialize access themselves. Mutating a parameter from inside one of its
// own listener callbacks is a precondition violation.
package params
