package bbolt

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/corey/strsearch/internal/domain/bench"
	"github.com/corey/strsearch/internal/domain/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

// newTestStore creates a temporary bbolt store for testing.
func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	store, err := NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

// makeTestRun creates a realistic run with two texts.
func makeTestRun(t *testing.T) *bench.Run {
	t.Helper()
	table := bench.NewTable()
	for _, rec := range []*bench.Record{
		{
			Key:        bench.Key{Text: 0, Algorithm: search.KMP, Pattern: 0},
			Stats:      bench.Stats{Min: 1.5e-6, Max: 3.25e-6, Mean: 2e-6},
			TextLen:    15,
			TextDigest: 0xdeadbeefcafef00d,
			Pattern:    "ababd",
			Position:   10,
			Number:     3000,
			Samples:    []float64{1.5e-6, 3.25e-6, 1.25e-6},
		},
		{
			Key:          bench.Key{Text: 0, Algorithm: search.RegexpSearch, Pattern: 1},
			Stats:        bench.Stats{Min: 4e-7, Max: 9e-7, Mean: 6e-7},
			TextLen:      15,
			Pattern:      "xyz",
			Position:     search.NotFound,
			Number:       3000,
			Samples:      []float64{4e-7, 9e-7},
			BytesPerCall: 16,
		},
		{
			Key:      bench.Key{Text: 1, Algorithm: search.RabinKarpHash, Pattern: 0},
			TextLen:  20000,
			Pattern:  "Rabin-Karp replaces",
			Position: 1234,
			Number:   200,
			Samples:  []float64{2e-5},
		},
	} {
		require.NoError(t, table.Add(rec))
	}
	return &bench.Run{
		Started:      time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC),
		Elapsed:      1500 * time.Millisecond,
		Repeat:       3,
		HashStrategy: "incremental",
		Texts:        2,
		Table:        table,
	}
}

func TestStore_SaveLoadRun_Roundtrip(t *testing.T) {
	store, _ := newTestStore(t)
	run := makeTestRun(t)

	require.NoError(t, store.SaveRun(run))
	assert.Equal(t, uint64(1), run.ID)

	loaded, err := store.LoadRun(run.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, run.ID, loaded.ID)
	assert.True(t, run.Started.Equal(loaded.Started))
	assert.Equal(t, run.Elapsed, loaded.Elapsed)
	assert.Equal(t, run.Repeat, loaded.Repeat)
	assert.Equal(t, run.HashStrategy, loaded.HashStrategy)
	assert.Equal(t, run.Texts, loaded.Texts)

	require.Equal(t, run.Table.Len(), loaded.Table.Len())
	for i, want := range run.Table.Records() {
		got := loaded.Table.Records()[i]
		assert.Equal(t, want, got, "record %d", i)
		assert.Same(t, got, loaded.Table.Get(want.Key))
	}
}

func TestStore_LoadMissing(t *testing.T) {
	store, _ := newTestStore(t)

	run, err := store.LoadRun(42)
	require.NoError(t, err)
	assert.Nil(t, run)

	require.NoError(t, store.SaveRun(makeTestRun(t)))
	run, err = store.LoadRun(42)
	require.NoError(t, err)
	assert.Nil(t, run)
}

func TestStore_ListRuns(t *testing.T) {
	store, _ := newTestStore(t)

	runs, err := store.ListRuns()
	require.NoError(t, err)
	assert.Empty(t, runs)

	for i := 0; i < 3; i++ {
		r := makeTestRun(t)
		r.Repeat = i + 1
		require.NoError(t, store.SaveRun(r))
	}

	runs, err = store.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 3)
	for i, s := range runs {
		assert.Equal(t, uint64(i+1), s.ID)
		assert.Equal(t, i+1, s.Repeat)
		assert.Equal(t, 3, s.Records)
		assert.Equal(t, 2, s.Texts)
		assert.Equal(t, int64(1500*time.Millisecond), s.ElapsedNanos)
	}
}

func TestStore_DeleteRun(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.DeleteRun(1), "delete before any bucket exists")

	run := makeTestRun(t)
	require.NoError(t, store.SaveRun(run))
	require.NoError(t, store.DeleteRun(run.ID))

	loaded, err := store.LoadRun(run.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Idempotent
	require.NoError(t, store.DeleteRun(run.ID))

	// IDs are never reused.
	next := makeTestRun(t)
	require.NoError(t, store.SaveRun(next))
	assert.Equal(t, uint64(2), next.ID)
}

func TestStore_SaveNil(t *testing.T) {
	store, _ := newTestStore(t)
	assert.Error(t, store.SaveRun(nil))
	assert.Error(t, store.SaveRun(&bench.Run{}))
}

func TestStore_RecordsAreCompressed(t *testing.T) {
	store, _ := newTestStore(t)
	run := makeTestRun(t)
	require.NoError(t, store.SaveRun(run))

	var raw []byte
	require.NoError(t, store.db.View(func(tx *bolt.Tx) error {
		raw = copyBytes(tx.Bucket(bucketRuns).Bucket(runKey(run.ID)).Get(keyRecords))
		return nil
	}))
	require.NotEmpty(t, raw)
	assert.NotEqual(t, byte('['), raw[0], "records should not be stored as plain JSON")
}

func TestStore_LoadCorruptRecords(t *testing.T) {
	store, _ := newTestStore(t)
	run := makeTestRun(t)
	require.NoError(t, store.SaveRun(run))

	require.NoError(t, store.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRuns).Bucket(runKey(run.ID)).Put(keyRecords, []byte("\xff\xff\xff\xff"))
	}))
	_, err := store.LoadRun(run.ID)
	assert.Error(t, err)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	store, path := newTestStore(t)
	run := makeTestRun(t)
	require.NoError(t, store.SaveRun(run))
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.LoadRun(run.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 3, loaded.Table.Len())
}

func TestStore_ConcurrentReads(t *testing.T) {
	store, _ := newTestStore(t)
	run := makeTestRun(t)
	require.NoError(t, store.SaveRun(run))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loaded, err := store.LoadRun(run.ID)
			assert.NoError(t, err)
			assert.NotNil(t, loaded)
		}()
	}
	wg.Wait()
}

func TestSamples_EncodeDecode(t *testing.T) {
	sets := [][]float64{{1e-9, 2.5e-6}, {}, {42}}
	data, err := encodeSamples(sets)
	require.NoError(t, err)
	assert.Len(t, data, 4+(4+16)+4+(4+8))

	got, err := decodeSamples(data)
	require.NoError(t, err)
	assert.Equal(t, sets, got)
}

func TestSamples_DecodeCorrupt(t *testing.T) {
	data, err := encodeSamples([][]float64{{1, 2, 3}})
	require.NoError(t, err)

	for _, bad := range [][]byte{
		nil,
		{1, 0},
		data[:len(data)-3],
		append(append([]byte(nil), data...), 0),
		{0xff, 0xff, 0xff, 0xff},
	} {
		_, err := decodeSamples(bad)
		assert.Error(t, err, "input %v", bad)
	}
}
