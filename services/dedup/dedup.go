package dedup

import (
	"log"
	"sync"

	"deploybot/utils"
)

// DedupService tracks which inbound message IDs have already been processed.
// The set is process-lifetime only; a restart forgets all seen IDs, so a
// replay delivered across a restart is reprocessed. That limitation is
// accepted in exchange for keeping the bot stateless.
type DedupService struct {
	mu       sync.Mutex
	seen     map[int64]struct{}
	order    []int64
	capacity int
}

// NewDedupService creates a replay guard that remembers at most capacity
// message IDs, evicting the oldest first once full.
func NewDedupService(capacity int) *DedupService {
	utils.AssertInvariant(capacity > 0, "dedup capacity must be positive")

	return &DedupService{
		seen:     make(map[int64]struct{}),
		capacity: capacity,
	}
}

// CheckAndRecord reports whether messageID is being seen for the first time,
// recording it in the same critical section. Concurrent deliveries of the
// same ID therefore observe exactly one first sight.
func (s *DedupService) CheckAndRecord(messageID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[messageID]; ok {
		return false
	}

	s.seen[messageID] = struct{}{}
	s.order = append(s.order, messageID)

	if len(s.order) > s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.seen, oldest)
		log.Printf("⏭️ Evicted oldest seen message ID %d (capacity %d reached)", oldest, s.capacity)
	}

	return true
}

// Len returns the number of currently remembered message IDs
func (s *DedupService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
