package params

import "io"

// Cloner constrains referent types that can produce deep copies of themselves.
//
// Interface types whose method set includes Clone returning the interface
// itself (Constraint, ParameterListener) satisfy it directly.
type Cloner[T any] interface {
	Clone() T
}

// CopyPolicy decides what happens to a referent when the Ref holding it is
// duplicated or lets go of it.
type CopyPolicy[T any] interface {
	// Duplicate returns the referent a copied Ref should hold.
	Duplicate(referent T) T

	// Release is invoked exactly once when a Ref gives up its referent.
	Release(referent T) error
}

// OwnershipMode selects how a ConditionalOwnership policy treats its referent.
type OwnershipMode int

const (
	// Shared marks a referent as borrowed: copies alias the same instance
	// and release is a no-op. This is the zero value and the safe default.
	Shared OwnershipMode = iota

	// Owned marks a referent as owned by its Ref: copies receive a clone and
	// release frees the referent, closing it when it implements io.Closer.
	Owned
)

// String provides a string representation of OwnershipMode for logging and debugging.
func (m OwnershipMode) String() string {
	switch m {
	case Shared:
		return "shared"
	case Owned:
		return "owned"
	default:
		return "unknown"
	}
}

// ConditionalOwnership is a CopyPolicy whose behavior is switched by a single
// OwnershipMode flag. The flag travels verbatim with every copy of the
// policy: a copy of an owning policy owns, a copy of a non-owning policy
// does not.
type ConditionalOwnership[T Cloner[T]] struct {
	Mode OwnershipMode
}

// Duplicate clones the referent under Owned and aliases it under Shared.
// A nil referent is passed through without invoking Clone.
func (p ConditionalOwnership[T]) Duplicate(referent T) T {
	if isNilReferent(referent) || p.Mode != Owned {
		return referent
	}

	return referent.Clone()
}

// Release frees an owned referent by closing it when it implements
// io.Closer; borrowed referents and plain values are left alone.
func (p ConditionalOwnership[T]) Release(referent T) error {
	if p.Mode != Owned || isNilReferent(referent) {
		return nil
	}

	if closer, ok := any(referent).(io.Closer); ok {
		return closer.Close()
	}

	return nil
}

// Ref is a single-owner style reference to a polymorphic referent whose
// duplication and release behavior is delegated to a CopyPolicy.
//
// The zero value is an empty reference without a policy.
//
// Plain assignment copies the handle: both refs then point at the same
// referent and the policy is not consulted. Copy is the policy-aware
// duplication; it is what owners call when they duplicate themselves.
type Ref[T Cloner[T]] struct {
	referent T
	policy   CopyPolicy[T]
}

// NewRef builds a Ref holding referent under the given policy.
func NewRef[T Cloner[T]](referent T, policy CopyPolicy[T]) Ref[T] {
	return Ref[T]{referent: referent, policy: policy}
}

// NewOwnedRef builds a Ref that owns its referent: copies clone it, release
// frees it.
func NewOwnedRef[T Cloner[T]](referent T) Ref[T] {
	return NewConditionalRef(referent, Owned)
}

// NewSharedRef builds a Ref that borrows its referent: copies alias it,
// release is a no-op.
func NewSharedRef[T Cloner[T]](referent T) Ref[T] {
	return NewConditionalRef(referent, Shared)
}

// NewConditionalRef builds a Ref under a ConditionalOwnership policy with
// the given mode.
func NewConditionalRef[T Cloner[T]](referent T, mode OwnershipMode) Ref[T] {
	return Ref[T]{referent: referent, policy: ConditionalOwnership[T]{Mode: mode}}
}

// Get returns the referent, or the zero value when the ref is empty.
func (r Ref[T]) Get() T {
	return r.referent
}

// IsEmpty reports whether the ref holds no referent.
func (r Ref[T]) IsEmpty() bool {
	return isNilReferent(r.referent)
}

// Policy returns the policy the ref was built with, nil for the zero value.
func (r Ref[T]) Policy() CopyPolicy[T] {
	return r.policy
}

// Copy duplicates the ref through its policy: the new ref holds whatever
// Duplicate returns and carries the same policy value. An empty ref copies
// to an empty ref without consulting the policy.
func (r Ref[T]) Copy() Ref[T] {
	if r.IsEmpty() || r.policy == nil {
		return Ref[T]{policy: r.policy}
	}

	return Ref[T]{referent: r.policy.Duplicate(r.referent), policy: r.policy}
}

// Take detaches and returns the referent without invoking the policy's
// Release. The ref becomes empty; the caller assumes responsibility for the
// referent's lifecycle.
func (r *Ref[T]) Take() T {
	referent := r.referent

	var zero T
	r.referent = zero

	return referent
}

// Release invokes the policy's Release on the held referent exactly once and
// empties the ref. Releasing an empty ref is a no-op. After Release or Take,
// a further Release does nothing.
func (r *Ref[T]) Release() error {
	if r.IsEmpty() || r.policy == nil {
		var zero T
		r.referent = zero

		return nil
	}

	return r.policy.Release(r.Take())
}

// isNilReferent reports whether an interface-typed referent is nil. A typed
// nil pointer stored in the interface counts as a referent.
func isNilReferent[T any](referent T) bool {
	return any(referent) == nil
}
