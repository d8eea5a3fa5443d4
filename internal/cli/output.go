package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Process exit statuses.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // the chain or function could not be evaluated
	ExitCommandError = 2 // bad flags, input or chain file
)

// ExitError attaches a process exit status to an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// usageErrorf reports a problem with how the command was invoked.
func usageErrorf(format string, args ...any) error {
	return &ExitError{Code: ExitCommandError, Err: fmt.Errorf(format, args...)}
}

// withExitCode attaches code to err, keeping err in the chain for errors.Is.
func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// GetExitCode maps err to the status main exits with. Errors that carry no
// status exit with ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Field is one line of text output.
type Field struct {
	Key   string
	Value string
}

// texter is implemented by results that render themselves as text lines.
type texter interface {
	Fields() []Field
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Message string `json:"message"`
}

// encoder returns a JSON encoder that keeps "->" in chain strings readable.
func (f *OutputFormatter) encoder() *json.Encoder {
	enc := json.NewEncoder(f.Writer)
	enc.SetEscapeHTML(false)
	return enc
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return f.encoder().Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	if t, ok := data.(texter); ok {
		width := 0
		fields := t.Fields()
		for _, fl := range fields {
			width = max(width, len(fl.Key)+1)
		}
		for _, fl := range fields {
			if _, err := fmt.Fprintf(f.Writer, "%-*s %s\n", width, fl.Key+":", fl.Value); err != nil {
				return err
			}
		}
		return nil
	}

	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error outputs an error in the configured format and returns err wrapped
// with the exit code.
func (f *OutputFormatter) Error(code int, err error) error {
	if f.Format == "json" {
		if encErr := f.encoder().Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Message: err.Error()},
		}); encErr != nil {
			return encErr
		}
	}
	return withExitCode(code, err)
}
