package testdoubles

import (
	"io"

	"github.com/numkit/constrained-parameters-go/params"
)

// ConstraintStub is a programmable Constraint implementation for testing.
// It counts Accepts, Clone, and Close calls, so tests can observe how a
// parameter consults and owns its constraint.
type ConstraintStub struct {
	description string
	acceptsFn   func(value float64) bool
	acceptCalls int
	cloneCount  int
	closeCount  int
	closeErr    error
}

// NewConstraintStub creates a ConstraintStub with the given description and
// accept function. A nil function accepts everything.
func NewConstraintStub(description string, acceptsFn func(value float64) bool) *ConstraintStub {
	return &ConstraintStub{description: description, acceptsFn: acceptsFn}
}

// AcceptingEverything creates a stub that accepts every value.
func AcceptingEverything() *ConstraintStub {
	return NewConstraintStub("accepts everything", nil)
}

// RejectingEverything creates a stub that rejects every value.
func RejectingEverything() *ConstraintStub {
	return NewConstraintStub("rejects everything", func(float64) bool { return false })
}

// Accepts implements the Constraint interface for testing.
func (s *ConstraintStub) Accepts(value float64) bool {
	s.acceptCalls++

	if s.acceptsFn == nil {
		return true
	}

	return s.acceptsFn(value)
}

// Clone implements the Constraint interface for testing. It counts the call
// on the original and returns a fresh stub with the same behavior and empty
// counters.
func (s *ConstraintStub) Clone() params.Constraint {
	s.cloneCount++

	return NewConstraintStub(s.description, s.acceptsFn)
}

// String implements the Constraint interface for testing.
func (s *ConstraintStub) String() string {
	return s.description
}

// Close implements io.Closer. It counts the call and returns the stubbed
// failure, if one was configured.
func (s *ConstraintStub) Close() error {
	s.closeCount++

	return s.closeErr
}

// StubCloseFailure makes every subsequent Close return err.
func (s *ConstraintStub) StubCloseFailure(err error) {
	s.closeErr = err
}

// AcceptCalls returns how often Accepts was consulted.
func (s *ConstraintStub) AcceptCalls() int {
	return s.acceptCalls
}

// CloneCount returns how often the stub was cloned.
func (s *ConstraintStub) CloneCount() int {
	return s.cloneCount
}

// CloseCount returns how often the stub was closed.
func (s *ConstraintStub) CloseCount() int {
	return s.closeCount
}

// Compile-time check to ensure ConstraintStub implements Constraint.
var _ params.Constraint = (*ConstraintStub)(nil)

// Compile-time check to ensure ConstraintStub implements io.Closer.
var _ io.Closer = (*ConstraintStub)(nil)
