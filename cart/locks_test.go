package cart

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowBlob widens the window between Load and Save the way a network round
// trip does.
type slowBlob struct {
	*MemoryBlob
	delay time.Duration
}

func (b slowBlob) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := b.MemoryBlob.Load(ctx, key)
	time.Sleep(b.delay)
	return data, err
}

func TestKeyLocks_SerializeLoadAndSave(t *testing.T) {
	blob := slowBlob{MemoryBlob: NewMemoryBlob(), delay: 5 * time.Millisecond}
	var locks KeyLocks
	ctx := context.Background()

	const adds = 20
	var wg sync.WaitGroup
	for range adds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("cart:a")
			defer unlock()
			Open(ctx, blob, "cart:a", nil).AddItem(ctx, LineItem{ID: "p1", Name: "Zawór", Price: 10}, 1)
		}()
	}
	wg.Wait()

	s := Open(ctx, blob, "cart:a", nil)
	require.Len(t, s.Items(), 1)
	assert.Equal(t, adds, s.ItemCount())
	assert.Equal(t, 200.0, s.Total())
	assert.Zero(t, locks.held(), "released keys are forgotten")
}

func TestKeyLocks_IndependentKeys(t *testing.T) {
	var locks KeyLocks
	unlockA := locks.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := locks.Lock("b")
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on b waited for a")
	}
}
