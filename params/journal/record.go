package journal

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/numkit/constrained-parameters-go/params"
)

var (
	// ErrNoParameterInEvent is returned when a change event carries no parameter.
	ErrNoParameterInEvent = errors.New("change event carries no parameter")

	// ErrGeneratingEventIDFailed is returned when the unique id for a record cannot be generated.
	ErrGeneratingEventIDFailed = errors.New("generating journal event id failed")
)

// Record is a DTO capturing one parameter change for serialization.
//
// It is built on scalars so that journal consumers stay agnostic of the
// parameter types in this module.
//
// While its properties are exported, it should only be constructed with the
// supplied factory method BuildRecord.
type Record struct {
	EventID       string    `json:"event_id"`
	ParameterName string    `json:"parameter_name"`
	Kind          string    `json:"kind"`
	Value         float64   `json:"value"`
	Precision     float64   `json:"precision"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// BuildRecord is a factory method for Record.
//
// It reads the changed parameter's state at call time, so a record built
// inside a notification sees the value that triggered it.
// Returns an error if the event carries no parameter or if the unique
// event id cannot be generated.
func BuildRecord(event params.ChangeEvent) (Record, error) {
	parameter := event.Parameter()
	if parameter == nil {
		return Record{}, ErrNoParameterInEvent
	}

	eventID, err := uuid.NewV7()
	if err != nil {
		return Record{}, errors.Join(ErrGeneratingEventIDFailed, err)
	}

	return Record{
		EventID:       eventID.String(),
		ParameterName: parameter.Name(),
		Kind:          event.Kind().String(),
		Value:         parameter.Value(),
		Precision:     parameter.Precision(),
		OccurredAt:    event.OccurredAt(),
	}, nil
}
