package history

import (
	"bytes"
	"context"
	"encoding/csv"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lab1_calc/internal/evaluator"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func successRecord() Record {
	r := evaluator.EvaluateSingle(evaluator.Text("2"), evaluator.Text("1"), evaluator.Text("1"))
	return NewRecord(VariantSingle, []string{"2", "1", "1"}, r)
}

func failureRecord() Record {
	r := evaluator.EvaluateSingle(evaluator.Text("0"), evaluator.Text("1"), evaluator.Text("1"))
	return NewRecord(VariantSingle, []string{"0", "1", "1"}, r)
}

func TestNewRecord(t *testing.T) {
	ok := successRecord()
	assert.NotEmpty(t, ok.ID)
	assert.True(t, ok.OK)
	assert.InDelta(t, 22.4153846, ok.Value, 1e-7)
	assert.Empty(t, ok.Kind)

	bad := failureRecord()
	assert.NotEqual(t, ok.ID, bad.ID)
	assert.False(t, bad.OK)
	assert.Zero(t, bad.Value)
	assert.Equal(t, "DomainViolation", bad.Kind)
	assert.Contains(t, bad.Message, "x = 0")
}

func TestRecord_Result(t *testing.T) {
	r := failureRecord().Result()
	assert.Equal(t, evaluator.KindDomainViolation, r.Kind())

	v, ok := successRecord().Result().Value()
	assert.True(t, ok)
	assert.InDelta(t, 22.4153846, v, 1e-7)
}

func TestStores_SaveGetList(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			first := successRecord()
			second := failureRecord()
			third := NewRecord(VariantSum, []string{"1"}, evaluator.EvaluateSum(evaluator.Texts("1")))

			for _, rec := range []Record{first, second, third} {
				require.NoError(t, s.Save(ctx, rec))
			}

			got, err := s.Get(ctx, second.ID)
			require.NoError(t, err)
			assert.Equal(t, second.ID, got.ID)
			assert.Equal(t, VariantSingle, got.Variant)
			assert.Equal(t, []string{"0", "1", "1"}, got.Inputs)
			assert.False(t, got.OK)
			assert.Equal(t, "DomainViolation", got.Kind)
			assert.Equal(t, second.Message, got.Message)
			assert.True(t, second.CreatedAt.Equal(got.CreatedAt))

			all, err := s.List(ctx, 0)
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, third.ID, all[0].ID)
			assert.Equal(t, first.ID, all[2].ID)
			assert.InDelta(t, first.Value, all[2].Value, 0)

			two, err := s.List(ctx, 2)
			require.NoError(t, err)
			require.Len(t, two, 2)
			assert.Equal(t, second.ID, two[1].ID)

			_, err = s.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStores_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			rec := successRecord()
			require.NoError(t, s.Save(ctx, rec))

			rec.Inputs = []string{"3", "1", "1"}
			require.NoError(t, s.Save(ctx, rec))

			all, err := s.List(ctx, 10)
			require.NoError(t, err)
			require.Len(t, all, 1)
			assert.Equal(t, []string{"3", "1", "1"}, all[0].Inputs)
		})
	}
}

func TestOpenSQLite_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	rec := successRecord()
	require.NoError(t, s.Save(ctx, rec))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Value, got.Value)
}

func TestWriteCSV(t *testing.T) {
	rec := successRecord()
	rec.ID = "id-1"
	rec.CreatedAt = time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

	bad := failureRecord()
	bad.ID = "id-2"
	bad.CreatedAt = rec.CreatedAt

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []Record{rec, bad}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, CSVHeader, rows[0])
	assert.Equal(t, []string{"1", "id-1", "single", "2 1 1", "true", fmtFloat(rec.Value), "", "", "2025-09-01T10:00:00Z"}, rows[1])
	assert.Equal(t, "false", rows[2][4])
	assert.Empty(t, rows[2][5])
	assert.Equal(t, "DomainViolation", rows[2][6])
}
