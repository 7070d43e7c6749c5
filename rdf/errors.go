package rdf

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a graph source does not exist.
var ErrNotFound = errors.New("graph source not found")

// ParseError reports a syntax error in a graph source.
type ParseError struct {
	// Path is the source path, or "<input>" for reader input.
	Path string

	// Line is the 1-based line number of the error.
	Line int

	// Msg describes the problem.
	Msg string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}
