package sequence

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu     sync.Mutex
	values map[string]int64
}

func (m *memoryStore) Next(_ context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[name]++
	return m.values[name], nil
}

func TestGeneratorFormatsPerDay(t *testing.T) {
	store := &memoryStore{values: map[string]int64{}}
	gen := NewGenerator(store, "")
	day := time.Date(2026, 10, 16, 23, 0, 0, 0, time.UTC)
	gen.now = func() time.Time { return day }

	first, err := gen.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "BILL-20261016-000001", first.Number)
	assert.Equal(t, int64(1), first.Sequence)

	second, err := gen.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "BILL-20261016-000002", second.Number)

	day = day.Add(2 * time.Hour)
	next, err := gen.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "BILL-20261017-000001", next.Number)
}

func TestGeneratorNumbersAreUnique(t *testing.T) {
	gen := NewGenerator(&memoryStore{values: map[string]int64{}}, "INV")

	var mu sync.Mutex
	seen := map[string]bool{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := gen.Next(context.Background())
			require.NoError(t, err)
			mu.Lock()
			seen[n.Number] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 50)
}
