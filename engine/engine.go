package engine

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/GrGLeo/dataguard/accum"
	"github.com/GrGLeo/dataguard/compile"
	"github.com/GrGLeo/dataguard/reader"
	"github.com/GrGLeo/dataguard/report"
	"github.com/GrGLeo/dataguard/rule"
)

// Run executes plan against r and returns its report. Batches are
// processed concurrently (pass 1); Monotonicity is reduced in input order
// afterward; a pass 2 re-evaluates StdDevCheck/MeanVariance rules once
// their columns' statistics are final (spec §4.4, §5).
func Run(ctx context.Context, plan *compile.ExecutablePlan, r reader.Reader, opts Options) (*report.Report, error) {
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = reader.DefaultBatchSize
	}

	states := make(map[string]*columnState, len(plan.Columns))
	for _, cp := range plan.Columns {
		states[cp.Name] = newColumnState(cp)
	}
	relViolations := make([]int64, len(plan.Relations))
	var totalRows int64

	evalCtx := &compile.EvalContext{Today: opts.Today}
	replayable := r.Replayable()

	if err := runPass1(ctx, plan, states, relViolations, &totalRows, evalCtx, r, reader.Options{BatchSize: batchSize}, opts.Concurrency, replayable); err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, &Cancelled{Err: ctx.Err()}
	default:
	}

	if err := finalizeStats(ctx, plan, states, r, reader.Options{BatchSize: batchSize}, replayable); err != nil {
		return nil, err
	}

	return buildReport(plan, states, relViolations, totalRows), nil
}

func runPass1(
	ctx context.Context,
	plan *compile.ExecutablePlan,
	states map[string]*columnState,
	relViolations []int64,
	totalRows *int64,
	evalCtx *compile.EvalContext,
	r reader.Reader,
	opts reader.Options,
	concurrency int,
	replayable bool,
) error {
	batchCh, errCh := r.Batches(ctx, opts)

	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)

drain:
	for {
		select {
		case <-ctx.Done():
			return &Cancelled{Err: ctx.Err()}
		case batch, ok := <-batchCh:
			if !ok {
				break drain
			}
			atomic.AddInt64(totalRows, batch.RowCount)
			b := batch
			eg.Go(func() (err error) {
				defer func() {
					if p := recover(); p != nil {
						err = &EvaluationError{Err: fmt.Errorf("%v", p)}
					}
				}()
				return processBatch(egCtx, plan, states, relViolations, evalCtx, b, replayable)
			})
		}
	}

	if err := eg.Wait(); err != nil {
		return err
	}
	if err, ok := <-errCh; ok && err != nil {
		return err
	}
	return nil
}

// processBatch decodes every column present in one batch, folds the
// result into each column's shared state, and evaluates every relation
// that references two of this batch's columns.
func processBatch(
	ctx context.Context,
	plan *compile.ExecutablePlan,
	states map[string]*columnState,
	relViolations []int64,
	evalCtx *compile.EvalContext,
	batch reader.Batch,
	replayable bool,
) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	decodedByColumn := make(map[string]decoded, len(plan.Columns))

	for _, cp := range plan.Columns {
		arr, ok := batch.Columns[cp.Name]
		if !ok {
			continue
		}
		cs := states[cp.Name]
		d := decodeColumn(cp, arr)
		decodedByColumn[cp.Name] = d

		atomic.AddInt64(&cs.nullViolations, d.nullViolations)
		atomic.AddInt64(&cs.typeCheckViolations, d.typeCheckViolations)

		var statBatch *accum.Batch
		if cs.needsStats {
			statBatch = accum.NewBatch()
		}

		for i, v := range d.values {
			if d.skip[i] {
				continue
			}
			for ri, dr := range cp.Domain {
				if dr.Violates(v, evalCtx) {
					cs.addDomainViolation(ri)
				}
			}
			if cs.unicity != nil {
				cs.unicity.Observe(cp.Unicity.Canon(v))
			}
			if statBatch != nil {
				f := asFloat64(v)
				statBatch.Observe(f)
				if !replayable {
					cs.bufferStat(f)
				}
			}
		}
		if statBatch != nil {
			cs.stats.Merge(statBatch)
		}

		for mi, mr := range cp.Mono {
			cs.addMonoTriple(mi, monoTripleFor(mr, batch.StartRow, d))
		}
	}

	for ri, rp := range plan.Relations {
		left, haveLeft := decodedByColumn[rp.Left]
		right, haveRight := decodedByColumn[rp.Right]
		if !haveLeft || !haveRight {
			continue
		}
		atomic.AddInt64(&relViolations[ri], evaluateRelation(rp, left, right))
	}

	return nil
}

// finalizeStats evaluates every StdDevCheck/MeanVariance rule against its
// column's finalized mean/stddev. When the reader is replayable it
// re-reads the input (pass 2 proper, bounded to stats-bearing columns);
// otherwise it uses the values buffered during pass 1.
func finalizeStats(ctx context.Context, plan *compile.ExecutablePlan, states map[string]*columnState, r reader.Reader, opts reader.Options, replayable bool) error {
	statColumns := make([]*compile.ColumnPlan, 0)
	for _, cp := range plan.Columns {
		if states[cp.Name].needsStats {
			statColumns = append(statColumns, cp)
		}
	}
	if len(statColumns) == 0 {
		return nil
	}

	finals := make(map[string]accum.Finalized, len(statColumns))
	for _, cp := range statColumns {
		finals[cp.Name] = states[cp.Name].stats.Finalize()
	}

	if !replayable {
		for _, cp := range statColumns {
			cs := states[cp.Name]
			final := finals[cp.Name]
			for _, v := range cs.statBuf {
				for si, sr := range cp.Stats {
					if sr.Violates(v, final.Mean, final.StdDev) {
						cs.statViolations[si]++
					}
				}
			}
		}
		return nil
	}

	batchCh, errCh := r.Batches(ctx, opts)
	for {
		select {
		case <-ctx.Done():
			return &Cancelled{Err: ctx.Err()}
		case batch, ok := <-batchCh:
			if !ok {
				if err, ok := <-errCh; ok && err != nil {
					return err
				}
				return nil
			}
			for _, cp := range statColumns {
				arr, ok := batch.Columns[cp.Name]
				if !ok {
					continue
				}
				cs := states[cp.Name]
				final := finals[cp.Name]
				d := decodeColumn(cp, arr)
				for i, v := range d.values {
					if d.skip[i] {
						continue
					}
					f := asFloat64(v)
					for si, sr := range cp.Stats {
						if sr.Violates(f, final.Mean, final.StdDev) {
							cs.statViolations[si]++
						}
					}
				}
			}
		}
	}
}

func buildReport(plan *compile.ExecutablePlan, states map[string]*columnState, relViolations []int64, totalRows int64) *report.Report {
	rpt := &report.Report{Table: plan.TableName, TotalRows: totalRows}

	for _, cp := range plan.Columns {
		cs := states[cp.Name]
		col := report.ColumnResult{Name: cp.Name}

		if cp.TypeCheck != nil {
			col.Rules = append(col.Rules, report.NewRuleResult(string(rule.KindTypeCheck), cs.typeCheckViolations, totalRows, float64(cp.TypeCheck.Threshold)))
		}
		if cp.NullCheck != nil {
			col.Rules = append(col.Rules, report.NewRuleResult(string(rule.KindNullCheck), cs.nullViolations, totalRows, float64(cp.NullCheck.Threshold)))
		}
		for i, dr := range cp.Domain {
			col.Rules = append(col.Rules, report.NewRuleResult(string(dr.Kind), atomic.LoadInt64(&cs.domainViolations[i]), totalRows, float64(dr.Threshold)))
		}
		for i, mr := range cp.Mono {
			v := reduceMono(mr, cs.monoTriples[i])
			col.Rules = append(col.Rules, report.NewRuleResult(string(mr.Kind), v, totalRows, float64(mr.Threshold)))
		}
		for i, sr := range cp.Stats {
			col.Rules = append(col.Rules, report.NewRuleResult(string(sr.Kind), cs.statViolations[i], totalRows, float64(sr.Threshold)))
		}
		if cp.Unicity != nil {
			col.Rules = append(col.Rules, report.NewRuleResult(string(cp.Unicity.Kind), cs.unicity.Violations(), totalRows, float64(cp.Unicity.Threshold)))
		}

		rpt.Columns = append(rpt.Columns, col)
	}

	for i, rp := range plan.Relations {
		name := fmt.Sprintf("%s(%s,%s)", rp.Kind, rp.Left, rp.Right)
		rpt.Relations = append(rpt.Relations, report.NewRelationResult(name, relViolations[i], totalRows, float64(rp.Threshold)))
	}

	rpt.Finalize()
	return rpt
}
