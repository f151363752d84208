package dispatch

import (
	"errors"
	"fmt"
)

// ExitCodeError carries a nonzero subprocess exit code up to the process
// boundary so the tool can exit with the same code.
type ExitCodeError struct {
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// ExitCode extracts the exit code an error should map to: ExitCodeError
// propagates verbatim, any other error is 1, nil is 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
