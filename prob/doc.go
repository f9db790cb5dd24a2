// Package prob provides discrete approximations of continuous probability
// distributions whose parameters are constrained params.Parameter values.
//
// A distribution registers its parameters with domain constraints and adds
// itself as a listener, so an accepted parameter change recomputes the
// cached discretization synchronously, before the mutating call returns.
// A rejected change leaves the discretization untouched.
//
// Common usage pattern:
//
//	exponential, err := prob.NewExponential(8, 2.0)
//	if err != nil {
//		// handle error (invalid category count or rejected rate)
//	}
//
//	categories := exponential.Categories() // 8 equiprobable representative values
//
//	err = exponential.SetRate(4.0) // validates, stores, recomputes
//	if err != nil {
//		// the rate was rejected, categories are unchanged
//	}
//
// Like the params package, distributions are single-threaded and must not be
// shared between goroutines without external synchronization.
package prob
