// Command ralph-pp is a thin file-system collaborator around
// pkg/pp: it loads one or more directory trees into memory, runs the
// preprocessor over each named entry file as its own main source, and
// writes the results to stdout or files under --output-dir.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gopreproc/gopreproc/pkg/pp"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	defineFlags                 []string
	disableFlags                []string
	ignoreUnmatchedConditionals bool
	inclusionLimit              uint
	outputDir                   string
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ralph-pp <file> [file...]",
		Short:         "ralph-pp runs the in-memory macro preprocessor over a source tree",
		Version:       version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreprocess(args, out, errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().StringArrayVarP(&defineFlags, "define", "D", nil, "Define macro (NAME or NAME=VALUE); a bare NAME defines the empty string, which #if treats as true")
	rootCmd.Flags().StringArrayVar(&disableFlags, "disable", nil, "Disable a directive kind (include, conditional, define, undef, error, pragma, macro-expansion)")
	rootCmd.Flags().BoolVar(&ignoreUnmatchedConditionals, "ignore-unmatched-conditionals", false, "Leave a stray #elif/#else/#endif in place instead of erroring")
	rootCmd.Flags().UintVar(&inclusionLimit, "inclusion-limit", 0, "Override the inclusion depth limit (0 keeps the default)")
	rootCmd.Flags().StringVar(&outputDir, "output-dir", "", "Write the result under this directory instead of stdout")

	return rootCmd
}

// runPreprocess loads every entry path's containing directory into a
// shared source map, runs each entry as its own main source, and
// writes the results either to stdout (banner-separated when more
// than one file was given) or as files under --output-dir.
func runPreprocess(entryPaths []string, out, errOut io.Writer) error {
	sources := make(map[string]string)
	entryNames := make([]string, 0, len(entryPaths))

	for _, entryPath := range entryPaths {
		root := filepath.Dir(entryPath)
		loaded, entryName, err := loadSources(root, entryPath)
		if err != nil {
			fmt.Fprintf(errOut, "ralph-pp: %v\n", err)
			return err
		}
		for name, text := range loaded {
			sources[name] = text
		}
		entryNames = append(entryNames, entryName)
	}

	cfg := pp.NewConfig(sources)
	cfg.MainSources = make(map[string]string, len(entryNames))
	for _, name := range entryNames {
		cfg.MainSources[name] = sources[name]
	}
	cfg.IgnoreUnmatchedConditionalDirectives = ignoreUnmatchedConditionals
	if inclusionLimit > 0 {
		cfg.InclusionLimit = inclusionLimit
	}
	for _, d := range defineFlags {
		if idx := strings.Index(d, "="); idx >= 0 {
			cfg.Defines[d[:idx]] = d[idx+1:]
		} else {
			cfg.Defines[d] = ""
		}
	}
	if err := applyDisableFlags(cfg, disableFlags); err != nil {
		fmt.Fprintf(errOut, "ralph-pp: %v\n", err)
		return err
	}

	result, err := pp.Run(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "ralph-pp: %v\n", err)
		return err
	}

	if outputDir == "" {
		sort.Strings(entryNames)
		for i, name := range entryNames {
			if len(entryNames) > 1 {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "//// %s ////\n", name)
			}
			fmt.Fprint(out, result.Outputs[name])
		}
		return nil
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		fmt.Fprintf(errOut, "ralph-pp: %v\n", err)
		return err
	}
	for i, name := range entryNames {
		outPath := filepath.Join(outputDir, filepath.Base(entryPaths[i]))
		if err := os.WriteFile(outPath, []byte(result.Outputs[name]), 0o644); err != nil {
			fmt.Fprintf(errOut, "ralph-pp: %v\n", err)
			return err
		}
		fmt.Fprintf(out, "ralph-pp: wrote %s\n", outPath)
	}
	return nil
}

// loadSources reads every regular file under root into a map keyed by
// its slash-separated path relative to root, so #include can resolve
// sibling and nested sources by name. It returns the entry file's key
// in that same map.
func loadSources(root, entryPath string) (map[string]string, string, error) {
	sources := make(map[string]string)

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		sources[filepath.ToSlash(rel)] = string(content)
		return nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("loading sources under %s: %w", root, err)
	}

	entryRel, err := filepath.Rel(root, entryPath)
	if err != nil {
		return nil, "", fmt.Errorf("resolving entry path: %w", err)
	}
	entryName := filepath.ToSlash(entryRel)
	if _, ok := sources[entryName]; !ok {
		return nil, "", fmt.Errorf("entry file %s was not found under %s", entryPath, root)
	}
	return sources, entryName, nil
}

func applyDisableFlags(cfg *pp.Config, kinds []string) error {
	for _, kind := range kinds {
		switch kind {
		case "include":
			cfg.EnableInclude = false
		case "conditional":
			cfg.EnableConditional = false
		case "define":
			cfg.EnableDefine = false
		case "undef":
			cfg.EnableUndef = false
		case "error":
			cfg.EnableError = false
		case "pragma":
			cfg.EnablePragma = false
		case "macro-expansion":
			cfg.EnableMacroExpansion = false
		default:
			return fmt.Errorf("unknown --disable value %q", kind)
		}
	}
	return nil
}
