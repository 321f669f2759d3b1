package ingestion

import "fmt"

// InsufficientContentError reports a document with too little text to score.
type InsufficientContentError struct {
	Count   int
	Minimum int
}

func (e *InsufficientContentError) Error() string {
	return fmt.Sprintf("insufficient content: %d non-whitespace characters, need at least %d", e.Count, e.Minimum)
}

// UnsupportedFormatError reports an input format that must be converted to
// text before it reaches the scorer.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format %q: convert to plain text first", e.Extension)
}

// HTMLParseError reports an HTML document that could not be parsed.
type HTMLParseError struct {
	Cause error
}

func (e *HTMLParseError) Error() string {
	return fmt.Sprintf("failed to parse HTML: %v", e.Cause)
}

func (e *HTMLParseError) Unwrap() error {
	return e.Cause
}
