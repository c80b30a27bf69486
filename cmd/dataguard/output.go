package main

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/GrGLeo/dataguard/report"
)

// colorize wraps s in an ANSI color code, but only when stdout is an
// interactive terminal (spec CLI surface: piping/redirecting output must
// not embed escape codes).
func colorize(code, s string) string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return s
	}
	return fmt.Sprintf("\x1b[%sm%s\x1b[0m", code, s)
}

func renderReports(opts *options, reports []*report.Report) error {
	switch opts.Output {
	case "json":
		return writeJSON(opts.Path, reports)
	default:
		renderStdout(reports, opts.Brief)
		return nil
	}
}

func renderStdout(reports []*report.Report, brief bool) {
	for _, r := range reports {
		verdict := colorize("32", "PASS")
		if !r.Passed {
			verdict = colorize("31", "FAIL")
		}
		if brief {
			fmt.Printf("%s: %s\n", r.Table, verdict)
			continue
		}

		fmt.Printf("%s: %s (%d rows)\n", r.Table, verdict, r.TotalRows)
		for _, col := range r.Columns {
			for _, rr := range col.Rules {
				fmt.Printf("  %s.%s: %d violations (%.4f, threshold %.4f) %s\n",
					col.Name, rr.Name, rr.Violations, rr.Percent, rr.Threshold, passLabel(rr.Passed))
			}
		}
		for _, rel := range r.Relations {
			fmt.Printf("  %s: %d violations (%.4f, threshold %.4f) %s\n",
				rel.Name, rel.Violations, rel.Percent, rel.Threshold, passLabel(rel.Passed))
		}
	}
}

func passLabel(passed bool) string {
	if passed {
		return colorize("32", "ok")
	}
	return colorize("31", "FAIL")
}

func writeJSON(path string, reports []*report.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}
