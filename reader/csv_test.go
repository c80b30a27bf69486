package reader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GrGLeo/dataguard/reader"
)

func writeTempCSV(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func drainBatches(t *testing.T, r reader.Reader, opts reader.Options) []reader.Batch {
	t.Helper()
	batchCh, errCh := r.Batches(context.Background(), opts)
	var batches []reader.Batch
	for b := range batchCh {
		batches = append(batches, b)
	}
	require.NoError(t, <-errCh)
	return batches
}

func TestCSVSchemaIsAlwaysUntypedString(t *testing.T) {
	c := &reader.CSV{Path: "-", ColumnNames: []string{"a", "b"}}
	schema, err := c.Schema(context.Background())
	require.NoError(t, err)
	require.Len(t, schema, 2)
	for _, s := range schema {
		assert.False(t, s.Typed)
	}
}

func TestCSVReplayableIsTrue(t *testing.T) {
	c := &reader.CSV{Path: "data.csv"}
	assert.True(t, c.Replayable())
}

func TestCSVBatchesSkipsHeaderAndAppliesNullMarkers(t *testing.T) {
	path := writeTempCSV(t, "name,age\nalice,30\n,NA\nbob,25\n")
	c := &reader.CSV{
		Path:        path,
		ColumnNames: []string{"name", "age"},
		HasHeader:   true,
		NullMarkers: []string{"", "NA"},
	}

	batches := drainBatches(t, c, reader.Options{})
	require.Len(t, batches, 1)
	b := batches[0]
	assert.Equal(t, int64(0), b.StartRow)
	assert.Equal(t, int64(3), b.RowCount)

	names := b.Columns["name"].(*array.String)
	ages := b.Columns["age"].(*array.String)
	assert.Equal(t, "alice", names.Value(0))
	assert.True(t, names.IsNull(1))
	assert.Equal(t, "bob", names.Value(2))
	assert.Equal(t, "30", ages.Value(0))
	assert.True(t, ages.IsNull(1))
}

func TestCSVBatchesRespectsBatchSize(t *testing.T) {
	path := writeTempCSV(t, "1\n2\n3\n4\n5\n")
	c := &reader.CSV{Path: path, ColumnNames: []string{"n"}}

	batches := drainBatches(t, c, reader.Options{BatchSize: 2})
	require.Len(t, batches, 3)
	assert.Equal(t, int64(0), batches[0].StartRow)
	assert.Equal(t, int64(2), batches[0].RowCount)
	assert.Equal(t, int64(2), batches[1].StartRow)
	assert.Equal(t, int64(2), batches[1].RowCount)
	assert.Equal(t, int64(4), batches[2].StartRow)
	assert.Equal(t, int64(1), batches[2].RowCount)
}

func TestCSVBatchesCustomDelimiter(t *testing.T) {
	path := writeTempCSV(t, "a;b\n1;2\n")
	c := &reader.CSV{Path: path, ColumnNames: []string{"a", "b"}, Comma: ';'}

	batches := drainBatches(t, c, reader.Options{})
	require.Len(t, batches, 1)
	col := batches[0].Columns["a"].(*array.String)
	assert.Equal(t, "1", col.Value(0))
}

func TestCSVBatchesReadErrorOnMissingFile(t *testing.T) {
	c := &reader.CSV{Path: filepath.Join(t.TempDir(), "missing.csv"), ColumnNames: []string{"a"}}
	batchCh, errCh := c.Batches(context.Background(), reader.Options{})
	for range batchCh {
	}
	err := <-errCh
	require.Error(t, err)
	var rerr *reader.ReadError
	require.ErrorAs(t, err, &rerr)
}
