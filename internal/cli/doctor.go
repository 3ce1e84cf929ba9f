package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/aretw0/spade/pkg/adapters/process"
	"github.com/aretw0/spade/pkg/domain"
	"github.com/aretw0/spade/pkg/ports"
)

// ToolStatus is one row of the doctor report.
type ToolStatus struct {
	Tool       domain.Tool
	Path       string
	Version    string
	Resolvable bool
	HasRecipe  bool
}

// Prober reports a short version string for a resolved executable, or ""
// when probing is unavailable or fails.
type Prober func(path string) string

// Diagnose checks every registered tool against the resolver. A non-nil
// probe fills in the version of each resolvable tool. Rows come back sorted
// by tool name so the report is stable.
func Diagnose(resolver ports.PathResolver, tools map[string]domain.Tool, probe Prober) []ToolStatus {
	statuses := make([]ToolStatus, 0, len(tools))
	for _, tool := range tools {
		st := ToolStatus{Tool: tool}
		_, st.HasRecipe = tool.RecipeFor(runtime.GOOS)
		if path, err := resolver.Resolve(tool.Executable()); err == nil {
			st.Resolvable = true
			st.Path = path
			if probe != nil {
				st.Version = probe(path)
			}
		}
		statuses = append(statuses, st)
	}
	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Tool.Name < statuses[j].Tool.Name
	})
	return statuses
}

// versionProbe runs "<path> --version" quietly with a short deadline and
// returns the first output line. Tools that do not understand the flag just
// come back empty.
func versionProbe(path string) string {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	out, _, err := process.NewRunner().Capture(ctx, domain.CommandSpec{
		Name: path,
		Args: []string{"--version"},
		Wait: true,
	})
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	return strings.TrimSpace(line)
}

// RenderReport builds the doctor report as markdown.
func RenderReport(statuses []ToolStatus) string {
	var b strings.Builder
	b.WriteString("# Spade Doctor\n\n")
	b.WriteString("| Tool | Status | Path | Version | Recipe |\n")
	b.WriteString("|------|--------|------|---------|--------|\n")
	for _, st := range statuses {
		status := "missing"
		path := "-"
		if st.Resolvable {
			status = "ok"
			path = st.Path
		}
		version := st.Version
		if version == "" {
			version = "-"
		}
		recipe := "none"
		if st.HasRecipe {
			recipe = "available"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", st.Tool.Name, status, path, version, recipe)
	}
	return b.String()
}

// Doctor handles the 'doctor' command: report which configured tools are
// resolvable on the execution path. TTYs get the rendered markdown, pipes
// get it raw.
func Doctor(opts Options, out io.Writer) error {
	tk, _, err := NewToolkit(opts)
	if err != nil {
		return err
	}

	report := RenderReport(Diagnose(tk.Resolver(), tk.Tools(), versionProbe))

	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(), // Automatically detect light/dark background
		)
		if err == nil {
			if rendered, rerr := r.Render(report); rerr == nil {
				report = rendered
			}
		}
	}

	_, err = fmt.Fprint(out, report)
	return err
}
