package interchange

import "fmt"

// UnsupportedFormatError is returned by the parser and validator facades
// when asked for an UNKNOWN or unrecognized format.
type UnsupportedFormatError struct {
	Format Format
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format: %s", e.Format)
}

// MalformedInputError reports structurally broken input that aborts a parse.
// Only the XML parser produces it; EDI/EDIFACT degrade instead of failing.
type MalformedInputError struct {
	Format Format
	Line   int
	Err    error
}

func (e *MalformedInputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed %s input at line %d: %v", e.Format, e.Line, e.Err)
	}
	return fmt.Sprintf("malformed %s input: %v", e.Format, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}
