package testdoubles

import (
	"io"
	"time"

	"github.com/numkit/constrained-parameters-go/params"
)

// SpyNotification represents one recorded listener callback. Value and
// Precision are read from the parameter at notification time, so tests can
// assert what state the listener saw during the callback.
type SpyNotification struct {
	Kind          params.ChangeKind
	ParameterName string
	Value         float64
	Precision     float64
	OccurredAt    time.Time
}

// ListenerSpy is a ParameterListener implementation that captures
// notifications for testing. It counts Clone and Close calls, so tests can
// observe the ownership behavior of the parameter holding it: an owned spy
// is cloned when its parameter is cloned and closed when it is removed, a
// shared spy is neither.
type ListenerSpy struct {
	id            string
	notifications []SpyNotification
	cloneCount    int
	closeCount    int
	closeErr      error
}

// NewListenerSpy creates a new ListenerSpy with the given identifier.
func NewListenerSpy(id string) *ListenerSpy {
	return &ListenerSpy{id: id}
}

// ID implements the ParameterListener interface for testing.
func (s *ListenerSpy) ID() string {
	return s.id
}

// Clone implements the ParameterListener interface for testing. It counts
// the call on the original and returns a fresh spy with the same identifier
// and empty records. A stubbed close failure carries over to the clone.
func (s *ListenerSpy) Clone() params.ParameterListener {
	s.cloneCount++

	clone := NewListenerSpy(s.id)
	clone.closeErr = s.closeErr

	return clone
}

// ParameterNameChanged implements the ParameterListener interface for testing.
func (s *ListenerSpy) ParameterNameChanged(event params.ChangeEvent) {
	s.record(event)
}

// ParameterValueChanged implements the ParameterListener interface for testing.
func (s *ListenerSpy) ParameterValueChanged(event params.ChangeEvent) {
	s.record(event)
}

// Close implements io.Closer. It counts the call and returns the stubbed
// failure, if one was configured.
func (s *ListenerSpy) Close() error {
	s.closeCount++

	return s.closeErr
}

// StubCloseFailure makes every subsequent Close return err.
func (s *ListenerSpy) StubCloseFailure(err error) {
	s.closeErr = err
}

// Notifications returns a copy of all recorded notifications, in order.
func (s *ListenerSpy) Notifications() []SpyNotification {
	return append([]SpyNotification(nil), s.notifications...)
}

// NotificationCount returns the number of recorded notifications.
func (s *ListenerSpy) NotificationCount() int {
	return len(s.notifications)
}

// LastNotification returns the most recent notification, if there is one.
func (s *ListenerSpy) LastNotification() (SpyNotification, bool) {
	if len(s.notifications) == 0 {
		return SpyNotification{}, false
	}

	return s.notifications[len(s.notifications)-1], true
}

// CloneCount returns how often the spy was cloned.
func (s *ListenerSpy) CloneCount() int {
	return s.cloneCount
}

// CloseCount returns how often the spy was closed.
func (s *ListenerSpy) CloseCount() int {
	return s.closeCount
}

// Reset clears all recorded notifications and counters.
func (s *ListenerSpy) Reset() {
	s.notifications = s.notifications[:0]
	s.cloneCount = 0
	s.closeCount = 0
}

func (s *ListenerSpy) record(event params.ChangeEvent) {
	parameter := event.Parameter()

	s.notifications = append(s.notifications, SpyNotification{
		Kind:          event.Kind(),
		ParameterName: parameter.Name(),
		Value:         parameter.Value(),
		Precision:     parameter.Precision(),
		OccurredAt:    event.OccurredAt(),
	})
}

// Compile-time check to ensure ListenerSpy implements ParameterListener.
var _ params.ParameterListener = (*ListenerSpy)(nil)

// Compile-time check to ensure ListenerSpy implements io.Closer.
var _ io.Closer = (*ListenerSpy)(nil)
