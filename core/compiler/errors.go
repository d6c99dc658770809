package compiler

import (
	"errors"
	"strings"
)

// ErrRegistryOpen is returned when Compile is invoked before the registry
// has been sealed. Compilation is a pure function of the sealed registry;
// compiling a still-mutable catalog would not be.
var ErrRegistryOpen = errors.New("compile requires a sealed registry")

// CompileError aggregates every structural problem found in one compile
// pass. The resolver collects dangling relations, dangling foreign keys,
// and inverse mismatches across the whole graph; they are reported together
// so authors can fix an entire batch of cross-module mistakes per attempt.
//
// A compile that produced a CompileError emits no artifact: downstream
// collaborators never see a partially resolved schema.
type CompileError struct {
	Errors []error
}

func (e *CompileError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return "schema compile failed:\n  - " + strings.Join(msgs, "\n  - ")
}

// Unwrap exposes the collected errors to errors.Is/errors.As.
func (e *CompileError) Unwrap() []error {
	return e.Errors
}
