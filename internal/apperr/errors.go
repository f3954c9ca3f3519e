package apperr

import "fmt"

// ConfigurationError reports missing or invalid settings. It is always fatal
// and raised before any batch is submitted.
type ConfigurationError struct {
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func NewConfiguration(msg string) *ConfigurationError {
	return &ConfigurationError{Message: msg}
}

func NewConfigurationWrap(msg string, err error) *ConfigurationError {
	return &ConfigurationError{Message: msg, Err: err}
}

// SourceUnavailableError reports that the input records could not be produced.
type SourceUnavailableError struct {
	Source string
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("source %s unavailable: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("source %s unavailable", e.Source)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

func NewSourceUnavailable(source string, err error) *SourceUnavailableError {
	return &SourceUnavailableError{Source: source, Err: err}
}

// BatchSubmitError records the failure of a single batch. The loader keeps it
// in the batch result instead of returning it.
type BatchSubmitError struct {
	Index int
	Size  int
	Err   error
}

func (e *BatchSubmitError) Error() string {
	return fmt.Sprintf("batch %d (%d records) failed: %v", e.Index+1, e.Size, e.Err)
}

func (e *BatchSubmitError) Unwrap() error {
	return e.Err
}

func NewBatchSubmit(index, size int, err error) *BatchSubmitError {
	return &BatchSubmitError{Index: index, Size: size, Err: err}
}
