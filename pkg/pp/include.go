// include.go implements the #include handler: name lookup in the
// configured source map (relative-first for the quoted form,
// absolute-only for the angled form), the depth limit, the pragma-once
// guard, and recursive processing of the included text.
package pp

import (
	"fmt"
	"path"
)

func handleInclude(e *engine, cur *cursor) error {
	hashPos := cur.replaceStart

	if cur.depth >= e.cfg.InclusionLimit {
		return newPreprocessErr(cur, hashPos, "Inclusions has exceeded the limit of %d.", e.cfg.InclusionLimit)
	}

	cur.skipWhitespaceUntilEOL()

	opener := cur.peek()
	if opener != '"' && opener != '<' {
		return newParseErr(cur, cur.pos, `Expected " or <.`)
	}
	relative := opener == '"'
	closer := byte('"')
	if !relative {
		closer = '>'
	}
	cur.advance()

	name := cur.collectToken(func(b byte) bool { return b == closer || b == '\n' })
	if cur.peek() == closer {
		cur.advance()
	}
	cur.consumeToEOL()
	directiveEnd := cur.pos

	resolved, ok := resolveInclude(e, cur.sourceName, name, relative)
	if !ok {
		return newPreprocessErr(cur, hashPos, "Failed to include '%s': It does not exist.", name)
	}

	if cur.guarded[resolved] {
		cur.replaceStart, cur.replaceEnd = hashPos, directiveEnd
		cur.spliceInPlace("")
		return nil
	}

	includedText := e.cfg.Sources[resolved]
	result, err := e.processSource(resolved, includedText, cur.depth+1)
	if err != nil {
		return fmt.Errorf("#include %s: %w", name, err)
	}
	cur.macros.setFile(cur.sourceName)

	cur.replaceStart, cur.replaceEnd = hashPos, directiveEnd
	cur.spliceInPlace(result)
	return nil
}

// resolveInclude looks up name verbatim in the source map; if that
// fails and the include used the quoted (relative) form, it retries
// with the including source's directory prefixed.
func resolveInclude(e *engine, currentSourceName, name string, relative bool) (string, bool) {
	if _, ok := e.cfg.Sources[name]; ok {
		return name, true
	}
	if relative {
		candidate := path.Join(path.Dir(currentSourceName), name)
		if _, ok := e.cfg.Sources[candidate]; ok {
			return candidate, true
		}
	}
	return "", false
}
