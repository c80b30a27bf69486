// Package table is the top-level entry point: it glues a reader, a set of
// column builders, and cross-column relations into a Spec, compiles it
// once, and runs the engine against it (spec §2's
// "RuleCatalog → ColumnBuilder → Compiler → ExecutablePlan → Engine →
// Report" pipeline, and §4.5's `Table::validate`).
package table

import (
	"context"
	"time"

	"github.com/golang-sql/civil"

	"github.com/GrGLeo/dataguard/column"
	"github.com/GrGLeo/dataguard/compile"
	"github.com/GrGLeo/dataguard/engine"
	"github.com/GrGLeo/dataguard/reader"
	"github.com/GrGLeo/dataguard/relation"
	"github.com/GrGLeo/dataguard/report"
)

// Spec describes one table's validation: where its data comes from, what
// its columns look like, and what cross-column relations it must satisfy.
type Spec struct {
	Name      string
	Source    reader.Reader
	Columns   []column.Builder
	Relations []relation.Spec
}

// Table is a Spec compiled into an ExecutablePlan, ready to validate
// repeated inputs from the same kind of source without recompiling.
type Table struct {
	spec Spec
	plan *compile.ExecutablePlan
}

// Prepare compiles spec against its source's schema. Compile-time errors
// (spec §4.1/§4.3 taxonomy) are returned unwrapped so callers can type-switch
// on *compile.Error.
func Prepare(ctx context.Context, spec Spec) (*Table, error) {
	schema, err := spec.Source.Schema(ctx)
	if err != nil {
		return nil, err
	}
	plan, err := compile.Compile(spec.Name, schema, spec.Columns, spec.Relations)
	if err != nil {
		return nil, err
	}
	return &Table{spec: spec, plan: plan}, nil
}

// ValidateOptions configures one Validate call.
type ValidateOptions struct {
	BatchSize   int
	Concurrency int
	// Today overrides "now" for DateNotFuture/DateNotPast. The zero value
	// uses the current UTC date.
	Today civil.Date
}

// Validate runs the compiled plan against the table's source and returns
// its report. ctx is checked between batches and between pass 1 and pass 2;
// cancelling it aborts with no partial report (spec §4.5).
func (t *Table) Validate(ctx context.Context, opts ValidateOptions) (*report.Report, error) {
	today := opts.Today
	if today == (civil.Date{}) {
		today = civil.DateOf(time.Now().UTC())
	}
	return engine.Run(ctx, t.plan, t.spec.Source, engine.Options{
		BatchSize:   opts.BatchSize,
		Concurrency: opts.Concurrency,
		Today:       today,
	})
}

// Plan exposes the compiled plan, mainly for tests and debug rendering.
func (t *Table) Plan() *compile.ExecutablePlan { return t.plan }
