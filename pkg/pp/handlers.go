// handlers.go implements #define, #undef, #error and #pragma.
package pp

import "strings"

func handleDefine(cur *cursor) error {
	hashPos := cur.replaceStart
	cur.skipWhitespaceUntilEOL()
	nameStart := cur.pos
	name := cur.collectToken(isTokenDelim)
	if name == "" {
		return newParseErr(cur, nameStart, "#define directive is missing name of macro.")
	}
	if cur.macros.isReserved(name) {
		return newPreprocessErr(cur, nameStart, "Cannot use macro name '%s', it is a built-in macro.", name)
	}

	// If the name's own terminator was already EOL, there is no value
	// on this line at all: the macro is null-equivalent.
	var value *string
	if cur.peek() == '\n' || cur.eof() {
		value = nil
	} else {
		raw := cur.collectToken(isNewline)
		trimmed := strings.TrimSpace(raw)
		if len(trimmed) >= 2 && trimmed[0] == '"' && trimmed[len(trimmed)-1] == '"' {
			trimmed = trimmed[1 : len(trimmed)-1]
		}
		value = &trimmed
	}
	cur.consumeToEOL()

	cur.macros.define(name, value)

	cur.replaceStart, cur.replaceEnd = hashPos, cur.pos
	cur.spliceInPlace("")
	return nil
}

func handleUndef(cur *cursor) error {
	hashPos := cur.replaceStart
	cur.skipWhitespaceUntilEOL()
	nameStart := cur.pos
	name := cur.collectToken(isTokenDelim)
	if name == "" {
		return newParseErr(cur, nameStart, "#undef directive is missing name of macro.")
	}
	if cur.macros.isReserved(name) {
		return newPreprocessErr(cur, nameStart, "Cannot use macro name '%s', it is a built-in macro.", name)
	}
	cur.skipWhitespaceUntilEOL()
	cur.consumeToEOL()

	cur.macros.undefine(name)

	cur.replaceStart, cur.replaceEnd = hashPos, cur.pos
	cur.spliceInPlace("")
	return nil
}

// handleError reads a quoted message (seek to the next '"', collect up
// to the closing '"' or EOL) and raises it verbatim as the error text.
// The search for the opening quote is not limited to the directive's
// own line: without a quote there, the message is taken from the next
// quote later in the buffer, or is empty if there is none.
func handleError(cur *cursor) error {
	hashPos := cur.replaceStart
	cur.seekToChar('"')
	cur.advance()
	msg := cur.collectToken(func(b byte) bool { return b == '"' || b == '\n' })
	cur.consumeToEOL()
	return newPreprocessErr(cur, hashPos, "%s", msg)
}

func handlePragma(cur *cursor) error {
	hashPos := cur.replaceStart
	cur.skipWhitespaceUntilEOL()
	nameStart := cur.pos
	name := cur.collectToken(isTokenDelim)
	cur.skipWhitespaceUntilEOL()
	cur.consumeToEOL()

	if name == "once" {
		cur.guarded[cur.sourceName] = true
		cur.replaceStart, cur.replaceEnd = hashPos, cur.pos
		cur.spliceInPlace("")
		return nil
	}

	return newPreprocessErr(cur, nameStart, "Pragma extension '%s' is unsupported.", name)
}

func isNewline(b byte) bool { return b == '\n' }
