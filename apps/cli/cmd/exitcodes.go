package cmd

// Exit codes for the userportal CLI
const (
	// ExitSuccess means a response was received, whatever its HTTP status
	ExitSuccess = 0

	// ExitFailure is any error without a more specific code
	ExitFailure = 1

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitNetworkError indicates the request got no response
	ExitNetworkError = 4

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

type exitError struct {
	code int
	err  error
	// shown is set when the formatter already printed the error.
	shown bool
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func configError(err error) error  { return &exitError{code: ExitConfigError, err: err} }
func networkError(err error) error { return &exitError{code: ExitNetworkError, err: err} }
func usageError(err error) error   { return &exitError{code: ExitUsageError, err: err} }

func shownNetworkError(err error) error {
	return &exitError{code: ExitNetworkError, err: err, shown: true}
}
