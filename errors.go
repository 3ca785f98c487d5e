package vogon

import "fmt"

// ConfigurationError indicates invalid client configuration. It is returned
// before any network call is made.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

// ConnectionError indicates a transport-level failure (unreachable host,
// reset connection). It is never retried.
type ConnectionError struct {
	Message string
	Cause   error
}

func (e *ConnectionError) Error() string { return e.Message }

// Unwrap exposes the underlying transport error.
func (e *ConnectionError) Unwrap() error { return e.Cause }

// SubmissionError indicates the service rejected or did not acknowledge a
// query submission as SUBMITTED. RawResponse carries the service's reply.
type SubmissionError struct {
	Message     string
	RawResponse string
}

func (e *SubmissionError) Error() string { return e.Message }

// JobFailedError indicates a job reached a terminal non-success state.
type JobFailedError struct {
	Status JobStatus
}

func (e *JobFailedError) Error() string {
	return fmt.Sprintf("vogon job failed to succeed, status - %s", e.Status)
}

// UnknownTypeError indicates a result value could not be classified as a
// string, number, or boolean.
type UnknownTypeError struct {
	Message string
}

func (e *UnknownTypeError) Error() string { return e.Message }

// ClosedError indicates an operation on an already-closed connection or cursor.
type ClosedError struct {
	Message string
}

func (e *ClosedError) Error() string { return e.Message }

// NotExecutedError indicates a fetch was attempted before Execute.
type NotExecutedError struct {
	Message string
}

func (e *NotExecutedError) Error() string { return e.Message }

// NotSupportedError indicates an operation the service does not support.
type NotSupportedError struct {
	Message string
}

func (e *NotSupportedError) Error() string { return e.Message }

// ErrConfiguration creates a ConfigurationError with a formatted message.
func ErrConfiguration(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

// ErrConnection creates a ConnectionError wrapping the transport cause.
func ErrConnection(cause error, format string, args ...interface{}) *ConnectionError {
	return &ConnectionError{Message: fmt.Sprintf(format, args...), Cause: cause}
}

// ErrSubmission creates a SubmissionError carrying the raw service response.
func ErrSubmission(raw string, format string, args ...interface{}) *SubmissionError {
	return &SubmissionError{Message: fmt.Sprintf(format, args...), RawResponse: raw}
}

// ErrJobFailed creates a JobFailedError for the given terminal status.
func ErrJobFailed(status JobStatus) *JobFailedError {
	return &JobFailedError{Status: status}
}

// ErrUnknownType creates an UnknownTypeError with a formatted message.
func ErrUnknownType(format string, args ...interface{}) *UnknownTypeError {
	return &UnknownTypeError{Message: fmt.Sprintf(format, args...)}
}

// ErrClosed creates a ClosedError with a formatted message.
func ErrClosed(format string, args ...interface{}) *ClosedError {
	return &ClosedError{Message: fmt.Sprintf(format, args...)}
}

// ErrNotExecuted creates a NotExecutedError with a formatted message.
func ErrNotExecuted(format string, args ...interface{}) *NotExecutedError {
	return &NotExecutedError{Message: fmt.Sprintf(format, args...)}
}

// ErrNotSupported creates a NotSupportedError with a formatted message.
func ErrNotSupported(format string, args ...interface{}) *NotSupportedError {
	return &NotSupportedError{Message: fmt.Sprintf(format, args...)}
}
