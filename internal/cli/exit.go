package cli

import "fmt"

// ExitError asks main to exit with Code without printing anything more;
// the command has already written its own output.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode lets main tell a handled non-zero exit from a failure.
func (e *ExitError) ExitCode() int {
	return e.Code
}
