// errors.go implements the two error kinds the preprocessor can raise.
package pp

import "fmt"

// ParseError indicates a structural failure: a malformed directive
// argument, an expansion of an undefined macro, an unmatched
// conditional terminator, and similar.
type ParseError struct {
	SourceName string
	Line, Col  int
	Text       string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Error processing %s(%d,%d): Parse error: %s", e.SourceName, e.Line, e.Col, e.Text)
}

// PreprocessError indicates a runtime failure: an include that cannot
// be found, the inclusion limit exceeded, a fired #error, an
// unsupported pragma, or an attempt to redefine a built-in macro.
type PreprocessError struct {
	SourceName string
	Line, Col  int
	Text       string
}

func (e *PreprocessError) Error() string {
	return fmt.Sprintf("Error processing %s(%d,%d): %s", e.SourceName, e.Line, e.Col, e.Text)
}

func newParseErr(c *cursor, pos int, format string, args ...any) error {
	line, col := c.lineCol(pos)
	return &ParseError{SourceName: c.sourceName, Line: line, Col: col, Text: fmt.Sprintf(format, args...)}
}

func newPreprocessErr(c *cursor, pos int, format string, args ...any) error {
	line, col := c.lineCol(pos)
	return &PreprocessError{SourceName: c.sourceName, Line: line, Col: col, Text: fmt.Sprintf(format, args...)}
}
