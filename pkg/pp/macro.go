// macro.go implements the macro store: a mapping from macro name to
// string value, shared by one main source and everything it includes,
// carrying both user-provided and built-in entries.
package pp

import "strings"

// builtinNames is the reserved set from the data model: these names
// may not be redefined or undefined by user directives.
var builtinNames = map[string]bool{
	"FILE":      true,
	"LINE":      true,
	"DATE":      true,
	"TIME":      true,
	"TIMESTAMP": true,
}

// macroStore holds macro definitions for one top-level source and the
// transitive closure of its includes. A nil value for a defined name
// represents the null-equivalent value from the data model: the name
// exists (so #ifdef succeeds) but carries no string.
type macroStore struct {
	values map[string]*string
}

func newMacroStore(userMacros map[string]string) *macroStore {
	ms := &macroStore{values: make(map[string]*string, len(userMacros))}
	for name, value := range userMacros {
		v := value
		ms.values[name] = &v
	}
	return ms
}

// seedBuiltins overlays the three time-derived built-ins (built-ins
// override any user-provided value for these names) and reserves the
// __LINE__ slot so existence checks succeed; its expansion value is
// always computed from the cursor, never from this slot.
func (ms *macroStore) seedBuiltins(date, time, timestamp string) {
	ms.setRaw("DATE", date)
	ms.setRaw("TIME", time)
	ms.setRaw("TIMESTAMP", timestamp)
	ms.values["LINE"] = nil
}

func (ms *macroStore) setRaw(name, value string) {
	v := value
	ms.values[name] = &v
}

// setFile rebinds __FILE__ to the given source name; called on entry
// to a file context and restored to the parent's name on return from
// an include.
func (ms *macroStore) setFile(name string) {
	ms.setRaw("FILE", name)
}

func (ms *macroStore) isReserved(name string) bool {
	return builtinNames[name]
}

// define stores name -> value. Callers must reject builtinNames
// themselves so they can attach a cursor-positioned error.
func (ms *macroStore) define(name string, value *string) {
	ms.values[name] = value
}

func (ms *macroStore) undefine(name string) {
	delete(ms.values, name)
}

func (ms *macroStore) isDefined(name string) bool {
	_, ok := ms.values[name]
	return ok
}

// lookup returns the macro's expansion value. A null-equivalent entry
// expands to the empty string.
func (ms *macroStore) lookup(name string) (string, bool) {
	v, ok := ms.values[name]
	if !ok {
		return "", false
	}
	if v == nil {
		return "", true
	}
	return *v, true
}

// isTruthy implements the #if condition truthiness rule: the name
// must exist, and its value must be neither null, "0", nor "false"
// (case-insensitive).
func (ms *macroStore) isTruthy(name string) bool {
	v, ok := ms.values[name]
	if !ok || v == nil {
		return false
	}
	if *v == "0" {
		return false
	}
	if strings.EqualFold(*v, "false") {
		return false
	}
	return true
}

// stripDunder removes one leading and one trailing "__" from a
// conditional's identifier, so that both X and __X__ name the same
// macro in #if/#ifdef/#ifndef.
func stripDunder(name string) string {
	name = strings.TrimPrefix(name, "__")
	name = strings.TrimSuffix(name, "__")
	return name
}
