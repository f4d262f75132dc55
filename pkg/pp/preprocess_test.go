package pp

import "testing"

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig(map[string]string{"main.c": ""})
	if cfg.InclusionLimit != defaultInclusionLimit {
		t.Errorf("expected default inclusion limit %d, got %d", defaultInclusionLimit, cfg.InclusionLimit)
	}
	if !cfg.EnableMacroExpansion {
		t.Errorf("expected macro expansion to be enabled by default")
	}
	for name, enabled := range map[string]bool{
		"include":     cfg.EnableInclude,
		"conditional": cfg.EnableConditional,
		"define":      cfg.EnableDefine,
		"undef":       cfg.EnableUndef,
		"error":       cfg.EnableError,
		"pragma":      cfg.EnablePragma,
	} {
		if !enabled {
			t.Errorf("expected %s to be enabled by default", name)
		}
	}
}

func TestConfig_DisableAndEnableAllDirectives(t *testing.T) {
	cfg := NewConfig(map[string]string{"main.c": ""})
	cfg.DisableAllDirectives()
	if cfg.EnableInclude || cfg.EnableConditional || cfg.EnableDefine || cfg.EnableUndef || cfg.EnableError || cfg.EnablePragma {
		t.Errorf("expected every directive kind disabled")
	}
	if !cfg.EnableMacroExpansion {
		t.Errorf("expected macro expansion to stay untouched by DisableAllDirectives")
	}
	cfg.EnableAllDirectives()
	if !cfg.EnableInclude || !cfg.EnableConditional || !cfg.EnableDefine || !cfg.EnableUndef || !cfg.EnableError || !cfg.EnablePragma {
		t.Errorf("expected every directive kind re-enabled")
	}
}

func TestRun_MissingMainSourceUsesEmptyText(t *testing.T) {
	cfg := NewConfig(map[string]string{})
	cfg.MainSources = map[string]string{"main.c": ""}
	result, err := Run(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result.Outputs["main.c"]; got != "" {
		t.Errorf("expected empty output for a main source with no backing text, got %q", got)
	}
}

func TestRun_DisabledDirectivesPassThroughUntouched(t *testing.T) {
	cfg := NewConfig(map[string]string{"main.c": "#define X 1\nX\n"})
	cfg.DisableAllDirectives()

	result, err := Run(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result.Outputs["main.c"]; got != "#define X 1\nX\n" {
		t.Errorf("expected the source unchanged, got %q", got)
	}
}

func TestRun_DisabledMacroExpansionLeavesReferencesUntouched(t *testing.T) {
	cfg := NewConfig(map[string]string{"main.c": "__MISSING__\n"})
	cfg.EnableMacroExpansion = false

	result, err := Run(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result.Outputs["main.c"]; got != "__MISSING__\n" {
		t.Errorf("expected the reference unchanged, got %q", got)
	}
}

func TestRun_FileMacroTracksCurrentSource(t *testing.T) {
	cfg := NewConfig(map[string]string{
		"main.c": "__FILE__\n#include \"lib.h\"\n__FILE__\n",
		"lib.h":  "__FILE__\n",
	})
	cfg.MainSources = map[string]string{"main.c": cfg.Sources["main.c"]}
	result, err := Run(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "main.c\nlib.h\nmain.c\n"
	if got := result.Outputs["main.c"]; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRun_EachMainSourceGetsAFreshMacroStore(t *testing.T) {
	cfg := NewConfig(map[string]string{
		"a.c": "#define SHARED a-value\n__SHARED__\n",
		"b.c": "__SHARED__\n",
	})

	result, err := Run(cfg)
	if err == nil {
		t.Fatalf("expected an error since b.c never defines SHARED, got output %v", result)
	}

	cfg.MainSources = map[string]string{"a.c": cfg.Sources["a.c"]}
	result, err = Run(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result.Outputs["a.c"]; got != "a-value\n" {
		t.Errorf("got %q, want %q", got, "a-value\n")
	}
}

func TestRun_AllSourcesAreMainWhenMainSourcesIsEmpty(t *testing.T) {
	cfg := NewConfig(map[string]string{
		"a.c": "alpha\n",
		"b.c": "beta\n",
	})

	result, err := Run(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Outputs) != 2 {
		t.Fatalf("expected both sources processed as main sources, got %d outputs", len(result.Outputs))
	}
}
