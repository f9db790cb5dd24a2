package testdoubles

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// GivenUniqueListenerID returns a listener identifier that is unique across
// the test run.
func GivenUniqueListenerID(t testing.TB) string {
	t.Helper()

	id, err := uuid.NewV7()
	assert.NoError(t, err, "error in arranging test data")

	return "listener-" + id.String()
}

// GivenUniqueParameterName returns a parameter name that is unique across
// the test run.
func GivenUniqueParameterName(t testing.TB) string {
	t.Helper()

	id, err := uuid.NewV7()
	assert.NoError(t, err, "error in arranging test data")

	return "parameter-" + id.String()
}
