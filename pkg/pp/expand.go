// expand.go implements macro reference expansion: recognizing
// __NAME__ tokens in ordinary text and replacing them with the
// macro's current value.
package pp

import "strconv"

// expandMacro is called once the scanner has recognized the opening
// "__" of a macro reference, with cur.pos positioned just past it.
// macroStart is the position of the first '_' of that opening pair.
func expandMacro(cur *cursor, macroStart int) error {
	name := cur.collectUntilString("__")
	if name == "" {
		return nil
	}

	cur.replaceStart, cur.replaceEnd = macroStart, cur.pos

	if name == "LINE" {
		cur.spliceInPlace(strconv.Itoa(cur.currentLine(macroStart)))
		return nil
	}

	value, ok := cur.macros.lookup(name)
	if !ok {
		return newParseErr(cur, macroStart, "Cannot expand macro __%s__, it is undefined.", name)
	}
	cur.spliceInPlace(value)
	return nil
}
