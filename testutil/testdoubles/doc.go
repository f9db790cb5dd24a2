// Package testdoubles provides spies and stubs for testing code built on the
// params package: a ParameterListener spy that records every notification, a
// programmable Constraint stub, and a Logger spy.
//
// All doubles are single-threaded, like the library they stand in for. The
// listener spy and the constraint stub implement io.Closer and count Close
// calls, so tests can observe when an owning ref frees its referent.
package testdoubles
