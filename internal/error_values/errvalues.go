package errorvalues

import "errors"

var (
	ErrRecordNotFound = errors.New("daily record doesn't exist")
	ErrMealNotFound   = errors.New("meal doesn't exist")
	ErrNoSamples      = errors.New("no samples provided")
	ErrValidation     = errors.New("validation error")
	ErrInvalidRange   = errors.New("invalid day range")
	ErrInvalidToken   = errors.New("invalid token")
	ErrEmptyBackup    = errors.New("backup bundle has no records")
)

// StorageError is a failed fetch or save. Persisted data is unchanged and the
// caller decides whether to retry.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage error on " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ProviderError is a failed or denied query to the health data provider.
// It always degrades to "no data".
type ProviderError struct {
	Query string
	Err   error
}

func (e *ProviderError) Error() string {
	return "provider error on " + e.Query + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
