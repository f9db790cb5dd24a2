package journal

import (
	"errors"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/numkit/constrained-parameters-go/params"
)

var (
	// ErrEmptyListenerID is returned when an empty listener id is provided.
	ErrEmptyListenerID = errors.New("journal listener id must not be empty")

	// ErrNilSink is returned when a nil sink is provided.
	ErrNilSink = errors.New("journal sink must not be nil")
)

const (
	logMsgBuildRecordFailed   = "failed to build journal record from change event"
	logMsgMarshalRecordFailed = "failed to marshal journal record"
	logMsgWriteRecordFailed   = "failed to write journal record to sink"
	logAttrError              = "error"
	logAttrParameterName      = "parameter_name"
)

// Listener journals parameter changes as JSON lines on an io.Writer sink.
// It implements params.ParameterListener and can be registered on any
// parameter, shared or owned.
type Listener struct {
	id     string
	sink   io.Writer
	logger params.Logger
}

var _ params.ParameterListener = (*Listener)(nil)

// Option defines a functional option for configuring a Listener.
type Option func(*Listener) error

// WithLogger sets the logger used to report marshal and write failures.
func WithLogger(logger params.Logger) Option {
	return func(l *Listener) error {
		l.logger = logger
		return nil
	}
}

// NewListener creates a Listener that writes one JSON line per change to sink.
// The id addresses the listener on a parameter, see Parameter.RemoveListenersByID.
func NewListener(id string, sink io.Writer, options ...Option) (*Listener, error) {
	if id == "" {
		return nil, ErrEmptyListenerID
	}

	if sink == nil {
		return nil, ErrNilSink
	}

	listener := &Listener{
		id:   id,
		sink: sink,
	}

	for _, option := range options {
		if err := option(listener); err != nil {
			return nil, err
		}
	}

	return listener, nil
}

// ID returns the registration id of this listener.
func (l *Listener) ID() string {
	return l.id
}

// Clone returns a new Listener sharing the sink and logger, so copies of a
// journaled parameter keep appending to the same journal.
func (l *Listener) Clone() params.ParameterListener {
	return &Listener{
		id:     l.id,
		sink:   l.sink,
		logger: l.logger,
	}
}

// ParameterNameChanged journals a rename.
func (l *Listener) ParameterNameChanged(event params.ChangeEvent) {
	l.journal(event)
}

// ParameterValueChanged journals a value change.
func (l *Listener) ParameterValueChanged(event params.ChangeEvent) {
	l.journal(event)
}

func (l *Listener) journal(event params.ChangeEvent) {
	record, buildErr := BuildRecord(event)
	if buildErr != nil {
		l.logWarn(logMsgBuildRecordFailed, logAttrError, buildErr.Error())

		return
	}

	line, marshalErr := jsoniter.ConfigFastest.Marshal(record)
	if marshalErr != nil {
		l.logWarn(logMsgMarshalRecordFailed,
			logAttrError, marshalErr.Error(), logAttrParameterName, record.ParameterName)

		return
	}

	line = append(line, '\n')

	if _, writeErr := l.sink.Write(line); writeErr != nil {
		l.logWarn(logMsgWriteRecordFailed,
			logAttrError, writeErr.Error(), logAttrParameterName, record.ParameterName)
	}
}

// logWarn logs at warn level if a logger is configured.
func (l *Listener) logWarn(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Warn(msg, args...)
	}
}
