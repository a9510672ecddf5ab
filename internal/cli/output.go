package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/geoknoesis/prov-go/prov"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // the graph is malformed or does not round trip
	ExitCommandError = 2 // bad arguments, unreadable files, store errors
)

// ExitError carries the process exit code of a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error returns the message followed by the cause.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *ExitError) Unwrap() error { return e.Err }

func wrapExit(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// ExitCode extracts the exit code from err. Errors that are not an
// ExitError map to ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// graphFailure classifies a build error: prov errors describe bad data,
// anything else is an environment problem.
func graphFailure(message string, err error) *ExitError {
	if prov.Code(err) != "" {
		return wrapExit(ExitFailure, message, err)
	}
	return wrapExit(ExitCommandError, message, err)
}

// Response is the JSON envelope of every command.
type Response struct {
	Status string         `json:"status"`
	Data   any            `json:"data,omitempty"`
	Error  *ResponseError `json:"error,omitempty"`
}

type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// formatter writes command results as text or JSON.
type formatter struct {
	format string
	w      io.Writer
	log    *slog.Logger
}

func (f *formatter) success(data fmt.Stringer) error {
	if f.format == "json" {
		return json.NewEncoder(f.w).Encode(Response{Status: "ok", Data: data})
	}
	_, err := fmt.Fprintln(f.w, data.String())
	return err
}

// failure reports err to the command output and returns it. A failed write
// is logged and err is returned unchanged.
func (f *formatter) failure(err error) error {
	if werr := f.writeFailure(err); werr != nil && f.log != nil {
		f.log.Error("write failure report", "err", werr)
	}
	return err
}

func (f *formatter) writeFailure(err error) error {
	code := string(prov.Code(err))
	if code == "" {
		code = "ERROR"
	}
	if f.format == "json" {
		return json.NewEncoder(f.w).Encode(Response{
			Status: "error",
			Error:  &ResponseError{Code: code, Message: err.Error()},
		})
	}
	_, werr := fmt.Fprintf(f.w, "Error [%s]: %v\n", code, err)
	return werr
}
