// Package multierror aggregates the per-item failures of a fetch run,
// so one bad archive does not hide the diagnostics of the rest.
package multierror

import "strings"

// MultiError collects item errors in arrival order. The zero value is
// ready to use.
type MultiError struct {
	Errors []error
}

// Error joins the collected messages, one per line.
func (err *MultiError) Error() string {
	msgs := make([]string, len(err.Errors))
	for i, e := range err.Errors {
		msgs[i] = e.Error()
	}

	return strings.Join(msgs, "\n")
}

// Add records a failure; nil is ignored so fetch loops can call it
// unconditionally.
func (err *MultiError) Add(e error) {
	if e == nil {
		return
	}

	err.Errors = append(err.Errors, e)
}

// Return yields the aggregate, or nil when nothing failed.
func (err *MultiError) Return() error {
	if len(err.Errors) > 0 {
		return err
	}

	return nil
}
