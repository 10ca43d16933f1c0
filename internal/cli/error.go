package cli

import "errors"

type exitError struct {
	err     error
	code    int
	details string
}

func wrapErrorWithCode(err error, code int, details string) *exitError {
	return &exitError{
		err:     err,
		code:    code,
		details: details,
	}
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// exitDetails returns the exit code and log message for err, looking for an
// exitError anywhere in its chain.
func exitDetails(err error) (int, string) {
	code, msg := 1, "command failed"

	var eerr *exitError
	if errors.As(err, &eerr) {
		code = eerr.code
		if eerr.details != "" {
			msg = eerr.details
		}
	}

	return code, msg
}
