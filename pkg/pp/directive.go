// directive.go implements the directive dispatcher: it recognizes a
// directive keyword immediately after '#' and routes to the
// appropriate handler. An unrecognized keyword, or a recognized one
// whose directive kind is disabled in the Config, is left in the
// buffer untouched.
package pp

// dispatchDirective routes a directive keyword collected immediately
// after a '#' to its handler. cur.replaceStart already marks the '#'.
// A handler that runs is responsible for calling cur.spliceInPlace;
// returning nil without splicing (disabled or unknown keyword) leaves
// the directive text in place and scanning resumes right after the
// keyword token.
func dispatchDirective(e *engine, cur *cursor, keyword string) error {
	switch keyword {
	case "include":
		if !e.cfg.EnableInclude {
			return nil
		}
		return handleInclude(e, cur)

	case "if", "ifdef", "ifndef":
		if !e.cfg.EnableConditional {
			return nil
		}
		return processConditional(cur, keyword)

	case "elif", "else", "endif":
		if !e.cfg.EnableConditional {
			return nil
		}
		return handleRogueConditional(e, cur, keyword)

	case "define":
		if !e.cfg.EnableDefine {
			return nil
		}
		return handleDefine(cur)

	case "undef":
		if !e.cfg.EnableUndef {
			return nil
		}
		return handleUndef(cur)

	case "error":
		if !e.cfg.EnableError {
			return nil
		}
		return handleError(cur)

	case "pragma":
		if !e.cfg.EnablePragma {
			return nil
		}
		return handlePragma(cur)

	default:
		return nil
	}
}
