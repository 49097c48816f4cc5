package stratum

import "errors"

// ErrInvalidNotify is matched by every error a notify field decoder returns.
var ErrInvalidNotify = errors.New("invalid notify")

// InvalidNotifyError reports which field of a mining.notify parameter array
// failed validation or decoding.
type InvalidNotifyError struct {
	Fault NotifyFault
	Err   error // underlying codec error, nil for validation failures
}

func (e *InvalidNotifyError) Error() string {
	msg := ErrInvalidNotify.Error() + ": " + e.Fault.String()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is makes errors.Is(err, ErrInvalidNotify) succeed for any fault.
func (e *InvalidNotifyError) Is(target error) bool {
	return target == ErrInvalidNotify
}

func (e *InvalidNotifyError) Unwrap() error {
	return e.Err
}
