package migratecmd

// Process exit codes, part of the CLI contract for scripting around the tool.
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitExiftoolMissing = 2
	ExitInvalidStore    = 3
	ExitNoPhotos        = 4
)

// ExitError carries a specific process exit code up to main.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func exitErr(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}
