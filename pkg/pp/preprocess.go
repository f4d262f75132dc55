// preprocess.go ties the components together: the Config a caller
// supplies, the Result it gets back, and the engine that drives one
// run's scan loop across a main source and its transitive includes.
package pp

import (
	"sort"
	"time"
)

// defaultInclusionLimit mirrors the documented default: a run that
// nests includes this deep is almost certainly cyclic.
const defaultInclusionLimit = 4000

// Config describes one preprocessing run: the full universe of named
// sources available for #include, which of them to treat as entry
// points, the initial -D-style macro definitions, and which directive
// kinds are active.
type Config struct {
	// Sources is the full universe of named texts #include may resolve
	// against.
	Sources map[string]string

	// MainSources names the subset of Sources to run the engine over
	// as independent top-level entries. A name here that is absent
	// from Sources supplies its own text directly. Empty means every
	// name in Sources is a main source.
	MainSources map[string]string

	Defines map[string]string

	InclusionLimit uint

	IgnoreUnmatchedConditionalDirectives bool

	EnableInclude     bool
	EnableConditional bool
	EnableDefine      bool
	EnableUndef       bool
	EnableError       bool
	EnablePragma      bool

	// EnableMacroExpansion gates __NAME__ scanning independently of
	// the directive kinds above; Disable/EnableAllDirectives never
	// touch it.
	EnableMacroExpansion bool
}

// NewConfig returns a Config with every directive kind and macro
// expansion enabled, and the documented inclusion limit, ready to run
// over every source in sources as its own main source.
func NewConfig(sources map[string]string) *Config {
	return &Config{
		Sources:              sources,
		Defines:              map[string]string{},
		InclusionLimit:       defaultInclusionLimit,
		EnableInclude:        true,
		EnableConditional:    true,
		EnableDefine:         true,
		EnableUndef:          true,
		EnableError:          true,
		EnablePragma:         true,
		EnableMacroExpansion: true,
	}
}

// DisableAllDirectives turns every directive kind off, leaving
// whatever EnableMacroExpansion was already set to untouched. Callers
// re-enable individual kinds afterward as needed.
func (c *Config) DisableAllDirectives() {
	c.EnableInclude = false
	c.EnableConditional = false
	c.EnableDefine = false
	c.EnableUndef = false
	c.EnableError = false
	c.EnablePragma = false
}

// EnableAllDirectives turns every directive kind back on, leaving
// EnableMacroExpansion untouched.
func (c *Config) EnableAllDirectives() {
	c.EnableInclude = true
	c.EnableConditional = true
	c.EnableDefine = true
	c.EnableUndef = true
	c.EnableError = true
	c.EnablePragma = true
}

// Result holds a completed run's output: one rewritten text per main
// source processed, plus the three read-only timestamp macros that
// were seeded into every one of them.
type Result struct {
	Outputs map[string]string

	Date      string
	Time      string
	Timestamp string
}

// engine holds the state scoped to a single main source's run: its
// own fresh macro store (never shared across distinct main sources)
// and its own set of sources that have executed #pragma once.
type engine struct {
	cfg     *Config
	macros  *macroStore
	guarded map[string]bool
}

// Run preprocesses every selected main source against cfg.Sources and
// returns their outputs, or the first error encountered. Each main
// source is processed with a fresh macro store seeded from
// cfg.Defines and the built-ins: definitions made while processing one
// main source are never visible while processing another.
func Run(cfg *Config) (*Result, error) {
	now := time.Now()
	date := now.Format("Jan _2 2006")
	clock := now.Format("15:04:05")
	timestamp := now.Format(time.RFC3339)

	names, texts := selectMainSources(cfg)

	outputs := make(map[string]string, len(names))
	for _, name := range names {
		e := &engine{cfg: cfg, guarded: make(map[string]bool)}
		e.macros = newMacroStore(cfg.Defines)
		e.macros.seedBuiltins(date, clock, timestamp)

		out, err := e.processSource(name, texts[name], 0)
		if err != nil {
			return nil, err
		}
		outputs[name] = out
	}

	return &Result{Outputs: outputs, Date: date, Time: clock, Timestamp: timestamp}, nil
}

// selectMainSources resolves which names to process and their initial
// text, per Config.MainSources: if non-empty, its keys name the main
// sources (falling back to cfg.Sources for text not present there
// directly); otherwise every key of cfg.Sources is a main source.
// Names are returned sorted so a run's order is deterministic.
func selectMainSources(cfg *Config) (names []string, texts map[string]string) {
	if len(cfg.MainSources) > 0 {
		texts = make(map[string]string, len(cfg.MainSources))
		for name, text := range cfg.MainSources {
			names = append(names, name)
			if text == "" {
				text = cfg.Sources[name]
			}
			texts[name] = text
		}
	} else {
		texts = cfg.Sources
		for name := range cfg.Sources {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, texts
}

// underscoreState tracks progress toward recognizing the opening "__"
// of a macro reference while the main loop scans one byte at a time.
type underscoreState int

const (
	scanNone underscoreState = iota
	scanOneUnderscore
)

// processSource runs the full scan loop over one source's text: it
// dispatches directive lines and, when EnableMacroExpansion is set,
// expands __NAME__ references, recursing into handleInclude for
// nested sources. depth is the inclusion depth of text, used for the
// inclusion limit.
func (e *engine) processSource(sourceName, text string, depth uint) (string, error) {
	cur := newCursor(sourceName, text, e.macros, depth, e.guarded)
	cur.macros.setFile(sourceName)

	state := scanNone
	for !cur.eof() {
		b := cur.peek()

		if b == '#' && cur.atLineStart() {
			cur.replaceStart = cur.pos
			cur.advance()
			keyword := cur.collectToken(isTokenDelim)
			if err := dispatchDirective(e, cur, keyword); err != nil {
				return "", err
			}
			state = scanNone
			continue
		}

		if e.cfg.EnableMacroExpansion && b == '_' {
			if state == scanOneUnderscore {
				macroStart := cur.pos - 1
				cur.advance()
				state = scanNone
				if err := expandMacro(cur, macroStart); err != nil {
					return "", err
				}
				continue
			}
			state = scanOneUnderscore
			cur.advance()
			continue
		}

		state = scanNone
		cur.advance()
	}

	return cur.buf, nil
}
