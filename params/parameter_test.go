package params_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numkit/constrained-parameters-go/params"
	"github.com/numkit/constrained-parameters-go/testutil/testdoubles"
)

func Test_BuildParameter_Success(t *testing.T) {
	parameter, err := params.BuildParameter("growth.rate", 0.25)

	require.NoError(t, err)
	assert.Equal(t, "growth.rate", parameter.Name())
	assert.Equal(t, 0.25, parameter.Value())
	assert.Equal(t, 0.0, parameter.Precision())
	assert.False(t, parameter.HasConstraint())
	assert.Nil(t, parameter.Constraint())
	assert.Equal(t, 0, parameter.ListenerCount())
}

func Test_BuildParameter_WithOptions(t *testing.T) {
	domain := params.UnitInterval()

	parameter, err := params.BuildParameter("mixture.weight", 0.5,
		params.WithPrecision(1e-6),
		params.WithOwnedConstraint(domain),
	)

	require.NoError(t, err)
	assert.Equal(t, 1e-6, parameter.Precision())
	assert.True(t, parameter.HasConstraint())
	assert.Same(t, domain, parameter.Constraint())
}

func Test_BuildParameter_RejectsInitialValueOutsideDomain(t *testing.T) {
	tests := []struct {
		name   string
		domain *params.Interval
		value  float64
	}{
		{
			name:   "zero_rejected_by_strictly_positive",
			domain: params.StrictlyPositive(),
			value:  0,
		},
		{
			name:   "negative_rejected_by_non_negative",
			domain: params.NonNegative(),
			value:  -0.5,
		},
		{
			name:   "above_one_rejected_by_unit_interval",
			domain: params.UnitInterval(),
			value:  1.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parameter, err := params.BuildParameter("candidate", tt.value,
				params.WithOwnedConstraint(tt.domain),
			)

			assert.Nil(t, parameter)
			assert.ErrorIs(t, err, params.ErrConstraintViolation)

			var violation *params.ConstraintViolationError
			require.ErrorAs(t, err, &violation)
			assert.Equal(t, "candidate", violation.ParameterName)
			assert.Equal(t, tt.value, violation.Value)
			assert.Same(t, tt.domain, violation.Constraint)
		})
	}
}

func Test_ConstraintViolationError_Message(t *testing.T) {
	violation := &params.ConstraintViolationError{
		ParameterName: "Exponential.lambda",
		Value:         -2,
		Constraint:    params.StrictlyPositive(),
	}

	assert.Equal(t, `parameter "Exponential.lambda": value -2 is outside (0, +Inf)`, violation.Error())
}

func Test_Parameter_SetValue_StoresAndNotifies(t *testing.T) {
	spy := testdoubles.NewListenerSpy("spy")

	parameter, err := params.BuildParameter("growth.rate", 1.0)
	require.NoError(t, err)

	parameter.AddListener(spy, params.Shared)

	require.NoError(t, parameter.SetValue(2.5))

	assert.Equal(t, 2.5, parameter.Value())
	require.Equal(t, 1, spy.NotificationCount())

	notification, ok := spy.LastNotification()
	require.True(t, ok)
	assert.Equal(t, params.ValueChanged, notification.Kind)
	assert.Equal(t, "growth.rate", notification.ParameterName)
	assert.Equal(t, 2.5, notification.Value, "the new value must be visible during the callback")
}

func Test_Parameter_SetValue_NotifiesInRegistrationOrder(t *testing.T) {
	var log []string

	parameter, err := params.BuildParameter("growth.rate", 1.0)
	require.NoError(t, err)

	parameter.AddListener(&sequencedListener{id: "first", log: &log}, params.Shared)
	parameter.AddListener(&sequencedListener{id: "second", log: &log}, params.Shared)
	parameter.AddListener(&sequencedListener{id: "third", log: &log}, params.Shared)

	require.NoError(t, parameter.SetValue(2.0))

	assert.Equal(t, []string{"first:value", "second:value", "third:value"}, log)
}

func Test_Parameter_SetValue_RejectedValueChangesNothing(t *testing.T) {
	spy := testdoubles.NewListenerSpy("spy")

	parameter, err := params.BuildParameter("mixture.weight", 0.5,
		params.WithOwnedConstraint(params.UnitInterval()),
	)
	require.NoError(t, err)

	parameter.AddListener(spy, params.Shared)

	err = parameter.SetValue(2.0)

	assert.ErrorIs(t, err, params.ErrConstraintViolation)
	assert.Equal(t, 0.5, parameter.Value(), "a rejected value must not be stored")
	assert.Equal(t, 0, spy.NotificationCount(), "nobody may be notified about a rejected value")

	var violation *params.ConstraintViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, 2.0, violation.Value)
	assert.Equal(t, "mixture.weight", violation.ParameterName)
}

func Test_Parameter_SetName_NotifiesNameChanged(t *testing.T) {
	spy := testdoubles.NewListenerSpy("spy")

	parameter, err := params.BuildParameter("old.name", 1.0)
	require.NoError(t, err)

	parameter.AddListener(spy, params.Shared)

	parameter.SetName("new.name")

	assert.Equal(t, "new.name", parameter.Name())
	require.Equal(t, 1, spy.NotificationCount())

	notification, ok := spy.LastNotification()
	require.True(t, ok)
	assert.Equal(t, params.NameChanged, notification.Kind)
	assert.Equal(t, "new.name", notification.ParameterName, "the new name must be visible during the callback")
}

func Test_Parameter_SetPrecision_IsSilent(t *testing.T) {
	spy := testdoubles.NewListenerSpy("spy")

	parameter, err := params.BuildParameter("growth.rate", 1.0,
		params.WithOwnedConstraint(params.StrictlyPositive()),
	)
	require.NoError(t, err)

	parameter.AddListener(spy, params.Shared)

	parameter.SetPrecision(1e-9)

	assert.Equal(t, 1e-9, parameter.Precision())
	assert.Equal(t, 0, spy.NotificationCount())

	parameter.SetPrecision(-1e9)

	assert.Equal(t, -1e9, parameter.Precision(), "precision is advisory and never validated")
	assert.Equal(t, 0, spy.NotificationCount())
}

func Test_Parameter_Clone_OwnedListenerIsCloned(t *testing.T) {
	spy := testdoubles.NewListenerSpy("spy")

	parameter, err := params.BuildParameter("growth.rate", 1.0)
	require.NoError(t, err)

	parameter.AddListener(spy, params.Owned)

	clone := parameter.Clone()

	assert.Equal(t, 1, spy.CloneCount())
	assert.True(t, clone.HasListenerWithID("spy"))

	require.NoError(t, clone.SetValue(9.0))
	assert.Equal(t, 0, spy.NotificationCount(), "the original spy must not hear the clone's changes")

	require.NoError(t, parameter.SetValue(2.0))
	assert.Equal(t, 1, spy.NotificationCount())
}

func Test_Parameter_Clone_SharedListenerIsAliased(t *testing.T) {
	spy := testdoubles.NewListenerSpy("spy")

	parameter, err := params.BuildParameter("growth.rate", 1.0)
	require.NoError(t, err)

	parameter.AddListener(spy, params.Shared)

	clone := parameter.Clone()

	assert.Equal(t, 0, spy.CloneCount())

	require.NoError(t, clone.SetValue(9.0))
	require.NoError(t, parameter.SetValue(2.0))

	assert.Equal(t, 2, spy.NotificationCount(), "a shared spy hears both the original and the clone")
}

func Test_Parameter_Clone_OwnedConstraintIsCloned(t *testing.T) {
	domain := params.NewClosedInterval(0, 10)

	parameter, err := params.BuildParameter("growth.rate", 1.0,
		params.WithOwnedConstraint(domain),
	)
	require.NoError(t, err)

	clone := parameter.Clone()

	domain.SetUpperBound(2, true)

	assert.ErrorIs(t, parameter.SetValue(5), params.ErrConstraintViolation)
	assert.NoError(t, clone.SetValue(5), "the clone's constraint is an independent copy")
}

func Test_Parameter_Clone_SharedConstraintIsAliased(t *testing.T) {
	domain := params.NewClosedInterval(0, 10)

	parameter, err := params.BuildParameter("growth.rate", 1.0,
		params.WithSharedConstraint(domain),
	)
	require.NoError(t, err)

	clone := parameter.Clone()

	domain.SetUpperBound(2, true)

	assert.ErrorIs(t, parameter.SetValue(5), params.ErrConstraintViolation)
	assert.ErrorIs(t, clone.SetValue(5), params.ErrConstraintViolation,
		"the clone aliases the shared constraint and sees the tightening")
}

func Test_SharedConstraint_TighteningAffectsSiblingParameters(t *testing.T) {
	domain := params.NewClosedInterval(0, 100)

	first, err := params.BuildParameter("first", 1.0, params.WithSharedConstraint(domain))
	require.NoError(t, err)

	second, err := params.BuildParameter("second", 2.0, params.WithSharedConstraint(domain))
	require.NoError(t, err)

	require.NoError(t, first.SetValue(50))
	require.NoError(t, second.SetValue(60))

	sharedView, ok := first.Constraint().(*params.Interval)
	require.True(t, ok)
	sharedView.SetUpperBound(10, true)

	assert.ErrorIs(t, first.SetValue(50), params.ErrConstraintViolation)
	assert.ErrorIs(t, second.SetValue(60), params.ErrConstraintViolation,
		"tightening through one holder's view must affect every holder")
}

func Test_Parameter_SetConstraint_ValidatesCurrentValueFirst(t *testing.T) {
	original := params.NewClosedInterval(0, 10)

	parameter, err := params.BuildParameter("growth.rate", 5.0,
		params.WithOwnedConstraint(original),
	)
	require.NoError(t, err)

	err = parameter.SetConstraint(params.UnitInterval(), params.Owned)

	assert.ErrorIs(t, err, params.ErrConstraintViolation)
	assert.Same(t, original, parameter.Constraint(), "a rejected replacement leaves the old constraint in place")

	var violation *params.ConstraintViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, 5.0, violation.Value)
}

func Test_Parameter_SetConstraint_ReleasesPreviousOwnedConstraint(t *testing.T) {
	previous := testdoubles.AcceptingEverything()

	parameter, err := params.BuildParameter("growth.rate", 5.0,
		params.WithOwnedConstraint(previous),
	)
	require.NoError(t, err)

	replacement := params.NonNegative()
	require.NoError(t, parameter.SetConstraint(replacement, params.Owned))

	assert.Equal(t, 1, previous.CloseCount(), "the owned predecessor must be freed")
	assert.Same(t, replacement, parameter.Constraint())
}

func Test_Parameter_SetConstraint_SharedPreviousIsNotReleased(t *testing.T) {
	previous := testdoubles.AcceptingEverything()

	parameter, err := params.BuildParameter("growth.rate", 5.0,
		params.WithSharedConstraint(previous),
	)
	require.NoError(t, err)

	require.NoError(t, parameter.SetConstraint(params.NonNegative(), params.Owned))

	assert.Equal(t, 0, previous.CloseCount(), "a borrowed predecessor must be left alone")
}

func Test_Parameter_SetConstraint_NilClears(t *testing.T) {
	previous := testdoubles.AcceptingEverything()

	parameter, err := params.BuildParameter("growth.rate", 5.0,
		params.WithOwnedConstraint(previous),
	)
	require.NoError(t, err)

	require.NoError(t, parameter.SetConstraint(nil, params.Owned))

	assert.False(t, parameter.HasConstraint())
	assert.Equal(t, 1, previous.CloseCount())
	assert.NoError(t, parameter.SetValue(math.Inf(1)), "an unconstrained parameter accepts anything")
}

func Test_Parameter_RemoveConstraint_DetachesWithoutRelease(t *testing.T) {
	owned := testdoubles.AcceptingEverything()

	parameter, err := params.BuildParameter("growth.rate", 5.0,
		params.WithOwnedConstraint(owned),
	)
	require.NoError(t, err)

	detached := parameter.RemoveConstraint()

	assert.Same(t, owned, detached, "the caller receives the constraint instance itself")
	assert.Equal(t, 0, owned.CloseCount(), "detaching must not free the constraint")
	assert.False(t, parameter.HasConstraint())
	assert.NoError(t, parameter.SetValue(-12345))

	assert.Nil(t, parameter.RemoveConstraint(), "removing from an unconstrained parameter yields nil")
}

func Test_Parameter_RemoveListenersByID_RemovesAllMatches(t *testing.T) {
	firstTarget := testdoubles.NewListenerSpy("target")
	bystander := testdoubles.NewListenerSpy("bystander")
	secondTarget := testdoubles.NewListenerSpy("target")

	parameter, err := params.BuildParameter("growth.rate", 1.0)
	require.NoError(t, err)

	parameter.AddListener(firstTarget, params.Owned)
	parameter.AddListener(bystander, params.Shared)
	parameter.AddListener(secondTarget, params.Shared)

	require.NoError(t, parameter.RemoveListenersByID("target"))

	assert.Equal(t, 1, parameter.ListenerCount())
	assert.False(t, parameter.HasListenerWithID("target"))
	assert.True(t, parameter.HasListenerWithID("bystander"))

	assert.Equal(t, 1, firstTarget.CloseCount(), "the owned match must be freed")
	assert.Equal(t, 0, secondTarget.CloseCount(), "the shared match must be left alone")
	assert.Equal(t, 0, bystander.CloseCount())

	require.NoError(t, parameter.SetValue(3.0))
	assert.Equal(t, 1, bystander.NotificationCount())
	assert.Equal(t, 0, firstTarget.NotificationCount())
	assert.Equal(t, 0, secondTarget.NotificationCount())
}

func Test_Parameter_RemoveListenersByID_UnknownIDIsNoOp(t *testing.T) {
	spy := testdoubles.NewListenerSpy("spy")

	parameter, err := params.BuildParameter("growth.rate", 1.0)
	require.NoError(t, err)

	parameter.AddListener(spy, params.Owned)

	require.NoError(t, parameter.RemoveListenersByID("someone-else"))

	assert.Equal(t, 1, parameter.ListenerCount())
	assert.Equal(t, 0, spy.CloseCount())
}

func Test_Parameter_RemoveListenersByID_JoinsReleaseFailures(t *testing.T) {
	closeErr := errors.New("flush failed")

	spy := testdoubles.NewListenerSpy("target")
	spy.StubCloseFailure(closeErr)

	parameter, err := params.BuildParameter("growth.rate", 1.0)
	require.NoError(t, err)

	parameter.AddListener(spy, params.Owned)

	err = parameter.RemoveListenersByID("target")

	assert.ErrorContains(t, err, closeErr.Error())
	assert.Equal(t, 0, parameter.ListenerCount(), "the listener is removed even when freeing it fails")
}

func Test_Parameter_AddListener_NilPanics(t *testing.T) {
	parameter, err := params.BuildParameter("growth.rate", 1.0)
	require.NoError(t, err)

	assert.Panics(t, func() {
		parameter.AddListener(nil, params.Owned)
	})
}

func Test_Parameter_Close_ReleasesOwnedReferents(t *testing.T) {
	constraint := testdoubles.AcceptingEverything()
	ownedSpy := testdoubles.NewListenerSpy("owned")
	sharedSpy := testdoubles.NewListenerSpy("shared")

	parameter, err := params.BuildParameter("growth.rate", 1.0,
		params.WithOwnedConstraint(constraint),
	)
	require.NoError(t, err)

	parameter.AddListener(ownedSpy, params.Owned)
	parameter.AddListener(sharedSpy, params.Shared)

	require.NoError(t, parameter.Close())

	assert.Equal(t, 1, constraint.CloseCount())
	assert.Equal(t, 1, ownedSpy.CloseCount())
	assert.Equal(t, 0, sharedSpy.CloseCount())
	assert.False(t, parameter.HasConstraint())
	assert.Equal(t, 0, parameter.ListenerCount())

	require.NoError(t, parameter.Close(), "closing twice is safe")
	assert.Equal(t, 1, constraint.CloseCount())
	assert.Equal(t, 1, ownedSpy.CloseCount())
}

// sequencedListener appends its id to a shared log, so tests can assert
// cross-listener notification order.
type sequencedListener struct {
	id  string
	log *[]string
}

func (l *sequencedListener) ID() string {
	return l.id
}

func (l *sequencedListener) Clone() params.ParameterListener {
	clone := *l

	return &clone
}

func (l *sequencedListener) ParameterNameChanged(params.ChangeEvent) {
	*l.log = append(*l.log, l.id+":name")
}

func (l *sequencedListener) ParameterValueChanged(params.ChangeEvent) {
	*l.log = append(*l.log, l.id+":value")
}
