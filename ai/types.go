package ai

import "errors"

// PermanentError marks an adapter-reported fault that retrying cannot fix,
// e.g. malformed input the backend rejects. Batch processors fail the
// affected unit immediately instead of retrying.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string {
	return "permanent: " + e.Err.Error()
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

// Permanent wraps err as a PermanentError. Returns nil for a nil err.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err is (or wraps) a PermanentError.
func IsPermanent(err error) bool {
	var pe *PermanentError
	return errors.As(err, &pe)
}

// ShotTypes defines the shot-type vocabulary used in scene metadata.
var ShotTypes = []string{
	"close-up",
	"extreme-close-up",
	"medium",
	"over-the-shoulder",
	"point-of-view",
	"wide",
	"extreme-wide",
	"aerial",
	"tracking",
}
