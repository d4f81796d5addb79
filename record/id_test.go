package record_test

import (
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/olimpus/ecotrip/record"
)

var idPattern = regexp.MustCompile(`^OL-[0-9A-F]{12}$`)

func TestNewID_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := record.NewID()
		assert.Regexp(t, idPattern, id)
	}
}

func TestNewID_UniqueSequential(t *testing.T) {
	// 10,000 sequential ids must all be distinct.
	const n = 10000
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		id := record.NewID()
		if seen[id] {
			t.Fatalf("duplicate id after %d generations: %s", i, id)
		}
		seen[id] = true
	}
}

func TestNewID_UniqueConcurrent(t *testing.T) {
	// 10,000 ids generated across 10 goroutines must all be distinct.
	const workers = 10
	const perWorker = 1000

	var mu sync.Mutex
	seen := make(map[string]bool, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids := make([]string, perWorker)
			for i := range ids {
				ids[i] = record.NewID()
			}
			mu.Lock()
			defer mu.Unlock()
			for _, id := range ids {
				seen[id] = true
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}
