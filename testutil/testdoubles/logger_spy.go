package testdoubles

import (
	"github.com/numkit/constrained-parameters-go/params"
)

// SpyLogRecord represents a recorded log call.
type SpyLogRecord struct {
	Level   string
	Message string
	Args    []any
}

// LoggerSpy is a Logger implementation that captures logging calls for
// testing. It is suitable for asserting the logging behavior of components
// that take a params.Logger through their options.
type LoggerSpy struct {
	debugRecords []SpyLogRecord
	infoRecords  []SpyLogRecord
	warnRecords  []SpyLogRecord
	errorRecords []SpyLogRecord
}

// NewLoggerSpy creates a new LoggerSpy instance.
func NewLoggerSpy() *LoggerSpy {
	return &LoggerSpy{}
}

// Debug implements the Logger interface for testing.
func (s *LoggerSpy) Debug(msg string, args ...any) {
	s.debugRecords = append(s.debugRecords, SpyLogRecord{Level: "debug", Message: msg, Args: args})
}

// Info implements the Logger interface for testing.
func (s *LoggerSpy) Info(msg string, args ...any) {
	s.infoRecords = append(s.infoRecords, SpyLogRecord{Level: "info", Message: msg, Args: args})
}

// Warn implements the Logger interface for testing.
func (s *LoggerSpy) Warn(msg string, args ...any) {
	s.warnRecords = append(s.warnRecords, SpyLogRecord{Level: "warn", Message: msg, Args: args})
}

// Error implements the Logger interface for testing.
func (s *LoggerSpy) Error(msg string, args ...any) {
	s.errorRecords = append(s.errorRecords, SpyLogRecord{Level: "error", Message: msg, Args: args})
}

// Reset clears all recorded log calls.
func (s *LoggerSpy) Reset() {
	s.debugRecords = s.debugRecords[:0]
	s.infoRecords = s.infoRecords[:0]
	s.warnRecords = s.warnRecords[:0]
	s.errorRecords = s.errorRecords[:0]
}

// GetDebugRecords returns a copy of all debug log records.
func (s *LoggerSpy) GetDebugRecords() []SpyLogRecord {
	return append([]SpyLogRecord(nil), s.debugRecords...)
}

// GetInfoRecords returns a copy of all info log records.
func (s *LoggerSpy) GetInfoRecords() []SpyLogRecord {
	return append([]SpyLogRecord(nil), s.infoRecords...)
}

// GetWarnRecords returns a copy of all warn log records.
func (s *LoggerSpy) GetWarnRecords() []SpyLogRecord {
	return append([]SpyLogRecord(nil), s.warnRecords...)
}

// GetErrorRecords returns a copy of all error log records.
func (s *LoggerSpy) GetErrorRecords() []SpyLogRecord {
	return append([]SpyLogRecord(nil), s.errorRecords...)
}

// GetTotalRecordCount returns the total number of log records across all levels.
func (s *LoggerSpy) GetTotalRecordCount() int {
	return len(s.debugRecords) + len(s.infoRecords) + len(s.warnRecords) + len(s.errorRecords)
}

// HasDebugLog checks if a debug log with the specified message exists.
func (s *LoggerSpy) HasDebugLog(message string) bool {
	return hasMessage(s.debugRecords, message)
}

// HasInfoLog checks if an info log with the specified message exists.
func (s *LoggerSpy) HasInfoLog(message string) bool {
	return hasMessage(s.infoRecords, message)
}

// HasWarnLog checks if a warn log with the specified message exists.
func (s *LoggerSpy) HasWarnLog(message string) bool {
	return hasMessage(s.warnRecords, message)
}

// HasErrorLog checks if an error log with the specified message exists.
func (s *LoggerSpy) HasErrorLog(message string) bool {
	return hasMessage(s.errorRecords, message)
}

func hasMessage(records []SpyLogRecord, message string) bool {
	for _, record := range records {
		if record.Message == message {
			return true
		}
	}

	return false
}

// Compile-time check to ensure LoggerSpy implements Logger.
var _ params.Logger = (*LoggerSpy)(nil)
