// conditional.go implements #if/#ifdef/#ifndef/#elif/#else/#endif. The
// whole block is resolved in a single pass over the unmodified buffer,
// then replaced with exactly the winning branch's body in one splice,
// matching the documented single-splice-per-block behavior. Nested
// conditionals within one source are not tracked: the first sibling
// keyword found at any depth closes the current branch.
package pp

var conditionalSiblings = map[string]bool{"elif": true, "else": true, "endif": true}

func processConditional(cur *cursor, keyword string) error {
	blockStart := cur.replaceStart

	ok, err := evalSingleIdentCondition(cur, keyword)
	if err != nil {
		return err
	}
	branchStart := cur.pos

	var body string
	haveBody := false
	sawElse := false

	for {
		found, sibling := cur.seekNextDirective(conditionalSiblings)
		if !found {
			return newParseErr(cur, branchStart, "Unexpected end of file while processing directive.")
		}
		branchEnd := cur.pos

		if ok && !haveBody {
			body = cur.buf[branchStart:branchEnd]
			haveBody = true
		}

		hashPos := cur.pos
		cur.advance()
		cur.collectToken(isTokenDelim)

		switch sibling {
		case "endif":
			cur.skipWhitespaceUntilEOL()
			cur.consumeToEOL()
			cur.replaceStart, cur.replaceEnd = blockStart, cur.pos
			if !haveBody {
				body = ""
			}
			cur.spliceInPlace(body)
			// Rescan the accepted branch's own content: it may carry
			// further directives or macro references that only became
			// reachable once spliced in.
			cur.pos = blockStart
			return nil

		case "else":
			if sawElse {
				return newParseErr(cur, hashPos, "#else directive defined multiple times. Only one #else block is allowed.")
			}
			sawElse = true
			cur.skipWhitespaceUntilEOL()
			cur.consumeToEOL()
			branchStart = cur.pos
			ok = !ok

		case "elif":
			cond, err := evalSingleIdentCondition(cur, "elif")
			if err != nil {
				return err
			}
			branchStart = cur.pos
			ok = !haveBody && cond
		}
	}
}

// evalSingleIdentCondition parses "#<keyword> IDENT" and evaluates it
// per the directive's own rule: #ifdef/#ifndef test existence, #if and
// #elif test truthiness. It reads through the cursor's own handle to
// the shared macro store rather than the engine directly.
func evalSingleIdentCondition(cur *cursor, keyword string) (bool, error) {
	cur.skipWhitespaceUntilEOL()
	start := cur.pos
	name := cur.collectToken(isTokenDelim)
	if name == "" {
		return false, newParseErr(cur, start, "#%s directive is missing its identifier.", keyword)
	}
	cur.skipWhitespaceUntilEOL()
	cur.consumeToEOL()

	name = stripDunder(name)

	switch keyword {
	case "ifdef":
		return cur.macros.isDefined(name), nil
	case "ifndef":
		return !cur.macros.isDefined(name), nil
	default: // "if", "elif"
		return cur.macros.isTruthy(name), nil
	}
}

// handleRogueConditional handles #elif/#else/#endif reached outside of
// processConditional's own scan, i.e. with no matching #if in the same
// source. Per Config it either errors or is left untouched; keyword
// has already been consumed by the caller's scan loop.
func handleRogueConditional(e *engine, cur *cursor, keyword string) error {
	if e.cfg.IgnoreUnmatchedConditionalDirectives {
		return nil
	}
	return newParseErr(cur, cur.replaceStart, "#endif directive found without accompanying starting conditional (#if/#ifdef)")
}
