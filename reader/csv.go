package reader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/GrGLeo/dataguard/rule"
)

// CSV reads a table from a comma-separated file. Every column it exposes
// is untyped (rule.String, Typed=false); the engine's compiled TypeCheck
// converts each declared-type column before any domain rule sees it
// (spec §4.3 step 2, §9 "Cross-source column typing").
type CSV struct {
	// Path to the CSV file, or "-" for stdin.
	Path string
	// ColumnNames is the declared column order. If HasHeader is true, the
	// file's header row is read and discarded; column values are still
	// addressed positionally against ColumnNames, matching the config's
	// declared column order (spec §6 table.column order).
	ColumnNames []string
	HasHeader   bool
	// NullMarkers lists raw field values treated as null. Defaults to
	// [""] (only the empty field) when nil.
	NullMarkers []string
	// Comma overrides the field delimiter; defaults to ','.
	Comma rune
}

var _ Reader = (*CSV)(nil)

func (c *CSV) nullMarkers() map[string]struct{} {
	markers := c.NullMarkers
	if markers == nil {
		markers = []string{""}
	}
	set := make(map[string]struct{}, len(markers))
	for _, m := range markers {
		set[m] = struct{}{}
	}
	return set
}

// Schema reports every configured column as untyped string.
func (c *CSV) Schema(_ context.Context) ([]ColumnSchema, error) {
	schema := make([]ColumnSchema, len(c.ColumnNames))
	for i, name := range c.ColumnNames {
		schema[i] = ColumnSchema{Name: name, Type: rule.String, Typed: false}
	}
	return schema, nil
}

// Replayable is true for a file path, which Batches re-opens from the
// start on every call, and false for stdin ("-"), which can be read only
// once.
func (c *CSV) Replayable() bool { return c.Path != "-" }

func (c *CSV) open() (io.ReadCloser, error) {
	if c.Path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(c.Path)
}

// Batches streams the file in row-order batches of opts.BatchSize (or
// DefaultBatchSize). Each column arrives as an *array.String with
// AppendNull for fields matching a null marker.
func (c *CSV) Batches(ctx context.Context, opts Options) (<-chan Batch, <-chan error) {
	batchCh := make(chan Batch)
	errCh := make(chan error, 1)
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	go func() {
		defer close(batchCh)
		defer close(errCh)

		f, err := c.open()
		if err != nil {
			errCh <- &ReadError{Err: fmt.Errorf("open %s: %w", c.Path, err)}
			return
		}
		defer f.Close()

		r := csv.NewReader(f)
		r.FieldsPerRecord = -1
		if c.Comma != 0 {
			r.Comma = c.Comma
		}

		if c.HasHeader {
			if _, err := r.Read(); err != nil && err != io.EOF {
				errCh <- &ReadError{Err: fmt.Errorf("read header: %w", err)}
				return
			}
		}

		nullSet := c.nullMarkers()
		alloc := memory.NewGoAllocator()
		builders := make(map[string]*array.StringBuilder, len(c.ColumnNames))
		for _, name := range c.ColumnNames {
			builders[name] = array.NewStringBuilder(alloc)
		}

		startRow := int64(0)
		rowsInBatch := int64(0)

		flush := func() (Batch, bool) {
			if rowsInBatch == 0 {
				return Batch{}, false
			}
			cols := make(map[string]arrow.Array, len(c.ColumnNames))
			for _, name := range c.ColumnNames {
				cols[name] = builders[name].NewArray()
				builders[name] = array.NewStringBuilder(alloc)
			}
			b := Batch{StartRow: startRow, RowCount: rowsInBatch, Columns: cols}
			startRow += rowsInBatch
			rowsInBatch = 0
			return b, true
		}

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			record, err := r.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				errCh <- &ReadError{Err: fmt.Errorf("read row: %w", err)}
				return
			}

			for i, name := range c.ColumnNames {
				var field string
				if i < len(record) {
					field = record[i]
				}
				if _, isNull := nullSet[field]; isNull {
					builders[name].AppendNull()
				} else {
					builders[name].Append(field)
				}
			}
			rowsInBatch++

			if rowsInBatch >= int64(batchSize) {
				if b, ok := flush(); ok {
					select {
					case batchCh <- b:
					case <-ctx.Done():
						return
					}
				}
			}
		}

		if b, ok := flush(); ok {
			select {
			case batchCh <- b:
			case <-ctx.Done():
			}
		}
	}()

	return batchCh, errCh
}
