package dedup

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupService_CheckAndRecord(t *testing.T) {
	service := NewDedupService(100)

	assert.True(t, service.CheckAndRecord(42), "first sight should record")
	assert.False(t, service.CheckAndRecord(42), "second sight should be rejected")
	assert.True(t, service.CheckAndRecord(43), "different ID should record")
	assert.Equal(t, 2, service.Len())
}

func TestDedupService_EvictsOldestAtCapacity(t *testing.T) {
	service := NewDedupService(3)

	assert.True(t, service.CheckAndRecord(1))
	assert.True(t, service.CheckAndRecord(2))
	assert.True(t, service.CheckAndRecord(3))
	assert.Equal(t, 3, service.Len())

	// Fourth insert evicts ID 1
	assert.True(t, service.CheckAndRecord(4))
	assert.Equal(t, 3, service.Len())

	// The evicted ID is treated as new again; the recent ones are still known
	assert.True(t, service.CheckAndRecord(1))
	assert.False(t, service.CheckAndRecord(3))
	assert.False(t, service.CheckAndRecord(4))
}

func TestDedupService_ConcurrentSameID(t *testing.T) {
	service := NewDedupService(1000)

	const workers = 50
	var wg sync.WaitGroup
	firstSights := make(chan bool, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			firstSights <- service.CheckAndRecord(777)
		}()
	}
	wg.Wait()
	close(firstSights)

	count := 0
	for first := range firstSights {
		if first {
			count++
		}
	}
	assert.Equal(t, 1, count, "exactly one delivery should observe first sight")
}

func TestNewDedupService_PanicsOnInvalidCapacity(t *testing.T) {
	assert.Panics(t, func() {
		NewDedupService(0)
	})
}
