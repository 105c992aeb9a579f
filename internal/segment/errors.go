package segment

import (
	"errors"
	"fmt"
)

var (
	ErrParse               = errors.New("parse error")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// ParseError reports content that is not valid syntax for its language.
// Line and Column are 1-indexed and point at the first offending node.
type ParseError struct {
	Line   int
	Column int
	Near   string
}

func (e *ParseError) Error() string {
	if e.Near == "" {
		return fmt.Sprintf("parse error at line %d, column %d", e.Line, e.Column)
	}
	return fmt.Sprintf("parse error at line %d, column %d near %q", e.Line, e.Column, e.Near)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// UnsupportedFileTypeError names the rejected extension.
type UnsupportedFileTypeError struct {
	Ext string
}

func (e *UnsupportedFileTypeError) Error() string {
	if e.Ext == "" {
		return "unsupported file type: (no extension)"
	}
	return "unsupported file type: " + e.Ext
}

func (e *UnsupportedFileTypeError) Unwrap() error { return ErrUnsupportedFileType }
