package reader

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/parquet-go/parquet-go"

	"github.com/GrGLeo/dataguard/rule"
)

// Parquet reads a table from a Parquet file. Columns arrive already typed
// (spec §6: "Parquet readers yield typed arrays matching declared types"),
// so the compiler omits TypeCheck for them. Schema reports the types given
// in Columns without opening the file, so the file's own column types are
// not compared with them and no SchemaMismatch arises from the file;
// Batches only checks that each configured column name is present.
type Parquet struct {
	Path string
	// Columns declares, for each column this table validates, its
	// dataguard type; used both to report Schema() and to pick the right
	// arrow builder while converting parquet rows.
	Columns []ColumnSchema
}

var _ Reader = (*Parquet)(nil)

// Schema reports the configured columns, all Typed.
func (p *Parquet) Schema(_ context.Context) ([]ColumnSchema, error) {
	out := make([]ColumnSchema, len(p.Columns))
	for i, c := range p.Columns {
		out[i] = ColumnSchema{Name: c.Name, Type: c.Type, Typed: true}
	}
	return out, nil
}

// Replayable is always true: Parquet re-opens the file from the start on
// every Batches call.
func (p *Parquet) Replayable() bool { return true }

func (p *Parquet) Batches(ctx context.Context, opts Options) (<-chan Batch, <-chan error) {
	batchCh := make(chan Batch)
	errCh := make(chan error, 1)
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	go func() {
		defer close(batchCh)
		defer close(errCh)

		f, err := os.Open(p.Path)
		if err != nil {
			errCh <- &ReadError{Err: fmt.Errorf("open %s: %w", p.Path, err)}
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			errCh <- &ReadError{Err: fmt.Errorf("stat %s: %w", p.Path, err)}
			return
		}

		file, err := parquet.OpenFile(f, info.Size())
		if err != nil {
			errCh <- &ReadError{Err: fmt.Errorf("open parquet file %s: %w", p.Path, err)}
			return
		}

		leafIndex := make(map[string]int, len(p.Columns))
		for i, field := range file.Schema().Fields() {
			leafIndex[field.Name()] = i
		}
		for _, c := range p.Columns {
			if _, ok := leafIndex[c.Name]; !ok {
				errCh <- &ReadError{Err: fmt.Errorf("column %q not present in parquet schema %s", c.Name, p.Path)}
				return
			}
		}

		pr := parquet.NewReader(file)
		defer pr.Close()

		alloc := memory.NewGoAllocator()
		rows := make([]parquet.Row, batchSize)
		startRow := int64(0)

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			n, readErr := pr.ReadRows(rows)
			if n > 0 {
				cols := make(map[string]arrow.Array, len(p.Columns))
				for _, c := range p.Columns {
					cols[c.Name] = buildColumn(alloc, c.Type, rows[:n], leafIndex[c.Name])
				}
				batch := Batch{StartRow: startRow, RowCount: int64(n), Columns: cols}
				startRow += int64(n)
				select {
				case batchCh <- batch:
				case <-ctx.Done():
					return
				}
			}
			if readErr == io.EOF {
				return
			}
			if readErr != nil {
				errCh <- &ReadError{Err: fmt.Errorf("read parquet rows: %w", readErr)}
				return
			}
		}
	}()

	return batchCh, errCh
}

func buildColumn(alloc memory.Allocator, t rule.ColumnType, rows []parquet.Row, leaf int) arrow.Array {
	switch t {
	case rule.Integer:
		b := array.NewInt64Builder(alloc)
		for _, row := range rows {
			v := row[leaf]
			if v.IsNull() {
				b.AppendNull()
			} else {
				b.Append(v.Int64())
			}
		}
		return b.NewArray()
	case rule.Float:
		b := array.NewFloat64Builder(alloc)
		for _, row := range rows {
			v := row[leaf]
			if v.IsNull() {
				b.AppendNull()
			} else {
				b.Append(v.Double())
			}
		}
		return b.NewArray()
	case rule.Date:
		b := array.NewDate32Builder(alloc)
		for _, row := range rows {
			v := row[leaf]
			if v.IsNull() {
				b.AppendNull()
			} else {
				b.Append(arrow.Date32(v.Int32()))
			}
		}
		return b.NewArray()
	default: // rule.String
		b := array.NewStringBuilder(alloc)
		for _, row := range rows {
			v := row[leaf]
			if v.IsNull() {
				b.AppendNull()
			} else {
				b.Append(v.String())
			}
		}
		return b.NewArray()
	}
}
