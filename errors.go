package main

import (
	"fmt"
	"strings"
)

// ErrorCollection accumulates diagnostics from one compilation phase.
// Phases keep going after recording an error so independent problems
// surface in a single pass.
type ErrorCollection struct {
	errors []error
}

func (ec *ErrorCollection) Add(err error) {
	ec.errors = append(ec.errors, err)
}

func (ec *ErrorCollection) Addf(format string, args ...any) {
	ec.errors = append(ec.errors, fmt.Errorf(format, args...))
}

func (ec *ErrorCollection) HasErrors() bool {
	return len(ec.errors) > 0
}

func (ec *ErrorCollection) Count() int {
	return len(ec.errors)
}

func (ec *ErrorCollection) String() string {
	var sb strings.Builder
	for _, err := range ec.errors {
		sb.WriteString(err.Error())
		sb.WriteByte('\n')
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Err returns the collection as a single error, or nil when empty.
func (ec *ErrorCollection) Err() error {
	if !ec.HasErrors() {
		return nil
	}
	return fmt.Errorf("%s", ec.String())
}
