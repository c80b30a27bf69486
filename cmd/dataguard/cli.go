package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/k0kubun/pp/v3"

	"github.com/GrGLeo/dataguard/config"
	"github.com/GrGLeo/dataguard/report"
	"github.com/GrGLeo/dataguard/table"
)

// Exit codes per spec §6 "CLI surface": 0 all tables passed, 1 one or more
// failed, 2 configuration or I/O error, 3 usage error.
const (
	exitOK          = 0
	exitFailed      = 1
	exitConfigError = 2
	exitUsageError  = 3
)

func run(opts *options) (int, error) {
	if opts.Watch {
		return runWatch(opts)
	}
	return runOnce(opts)
}

func runOnce(opts *options) (int, error) {
	reports, runErr := validateAll(context.Background(), opts)
	if reports == nil {
		return exitConfigError, runErr
	}

	if err := renderReports(opts, reports); err != nil {
		return exitConfigError, err
	}
	if runErr != nil {
		return exitConfigError, runErr
	}

	for _, r := range reports {
		if !r.Passed {
			return exitFailed, nil
		}
	}
	return exitOK, nil
}

// validateAll loads the config, prepares every table, and validates each
// in turn. A config/compile error aborts immediately (spec §7
// "Configuration errors... raised at compile time, aborts before any
// validation"); a read error aborts only the affected table, and
// validation continues with the next one. reports is nil only when a
// config/compile error aborted the run; when one or more tables failed to
// read, the other tables' reports are returned together with an error
// joining those read errors.
func validateAll(ctx context.Context, opts *options) ([]*report.Report, error) {
	file, err := config.Load(opts.Config)
	if err != nil {
		return nil, err
	}

	specs, err := file.Specs()
	if err != nil {
		return nil, err
	}

	reports := make([]*report.Report, 0, len(specs))
	var readErrs []error
	for _, spec := range specs {
		t, err := table.Prepare(ctx, spec)
		if err != nil {
			return nil, fmt.Errorf("prepare table %q: %w", spec.Name, err)
		}

		if opts.Debug {
			pp.Println(t.Plan())
		}

		slog.Info("validating table", "table", spec.Name)
		rpt, err := t.Validate(ctx, table.ValidateOptions{})
		if err != nil {
			slog.Error("table validation failed", "table", spec.Name, "error", err)
			readErrs = append(readErrs, fmt.Errorf("validate table %q: %w", spec.Name, err))
			continue
		}
		if opts.Debug {
			pp.Println(rpt)
		}
		reports = append(reports, rpt)
	}
	return reports, errors.Join(readErrs...)
}
