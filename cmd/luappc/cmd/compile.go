package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lppc/luapp/internal/ast"
	"github.com/lppc/luapp/internal/emit"
	"github.com/lppc/luapp/internal/errors"
	"github.com/lppc/luapp/internal/lower"
	"github.com/lppc/luapp/internal/meta"
	"github.com/lppc/luapp/internal/parser"
	"github.com/lppc/luapp/internal/preprocess"
)

// runCompile drives the whole pipeline for one invocation: parse the
// requested source file, preprocess it (meta, include expansion,
// class lowering), lower it to backend IR, and write the result —
// plus, in module mode, a ".lmod" definitions sidecar — to disk.
func runCompile(_ *cobra.Command, _ []string) error {
	source, err := os.ReadFile(sourceFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", sourceFile, err)
	}

	diags := &errors.Collector{File: sourceFile, Source: string(source)}
	mod := parser.ParseModule(string(source), filepath.Base(sourceFile), diags)
	mod.SourcePath = sourceDirOf(sourceFile)

	ok := preprocess.Run(mod, preprocess.Options{
		IncludePath: includePath,
		Visited:     map[string]bool{},
		Meta:        meta.New(),
		Load:        loadIncluded,
	}, diags)
	if !ok {
		// A missing include file aborts the compile outright (spec.md
		// §4.1's "Failure behavior"), unlike every other diagnostic
		// kind: nothing is lowered and no output is written at all.
		fmt.Fprint(os.Stderr, diags.Format())
		return fmt.Errorf("compilation aborted: %d error(s)", diags.ErrorCount)
	}

	moduleName := strings.TrimSuffix(filepath.Base(sourceFile), filepath.Ext(sourceFile))
	lowerer := lower.New(moduleName, diags)
	lowerer.LowerModule(mod)

	if len(diags.Diagnostics) > 0 {
		fmt.Fprint(os.Stderr, diags.Format())
	}

	// The IR is written even when the compile failed, so a post-mortem
	// inspection still has something to look at (spec.md §7); only the
	// exit status reflects whether any error was observed.
	if err := os.WriteFile(outputFile, []byte(lowerer.Mod.String()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputFile, err)
	}

	if moduleMode {
		defsFile := lmodPath(outputFile)
		if err := os.WriteFile(defsFile, []byte(emit.WriteDefs(mod)), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", defsFile, err)
		}
	}

	if diags.HasErrors() {
		return fmt.Errorf("compilation failed with %d error(s)", diags.ErrorCount)
	}
	return nil
}

// loadIncluded implements preprocess.Loader for an "include"/"require"
// directive. Its own parse errors are printed immediately (rather than
// merged into the driving file's Collector, whose Source only ever
// holds that one file's text) so a caret rendering always points at
// the right source.
func loadIncluded(path string) (*ast.Module, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	source := string(content)

	diags := &errors.Collector{File: path, Source: source}
	mod := parser.ParseModule(source, filepath.Base(path), diags)
	mod.SourcePath = sourceDirOf(path)

	if len(diags.Diagnostics) > 0 {
		fmt.Fprint(os.Stderr, diags.Format())
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("%s failed to parse with %d error(s)", path, diags.ErrorCount)
	}
	return mod, nil
}

func sourceDirOf(path string) string {
	dir := filepath.Dir(path)
	if dir == "." {
		return ""
	}
	return dir + string(filepath.Separator)
}

// lmodPath derives the ".lmod" sidecar path from the requested output
// file, replacing its extension rather than appending to it.
func lmodPath(output string) string {
	ext := filepath.Ext(output)
	if ext == "" {
		return output + ".lmod"
	}
	return strings.TrimSuffix(output, ext) + ".lmod"
}
