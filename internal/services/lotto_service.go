package services

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/logger"
	"github.com/google/uuid"

	"lotto645/internal/models"
	"lotto645/internal/storage"
)

// Generation modes accepted by Generate.
const (
	ModeRandom   = "random"
	ModeAI       = "ai"
	ModeSumRange = "sum-range"
)

var reasonLabels = map[string]string{
	ModeRandom:   "random",
	ModeAI:       "AI recommended",
	ModeSumRange: "sum-range",
}

// LottoService owns the immutable history snapshot, the derived frequency
// profile, and the bookmark cache backed by a persistent store.
type LottoService struct {
	mu        sync.RWMutex
	history   []models.DrawRecord
	profile   models.FrequencyProfile
	generator *Generator
	store     storage.BookmarkStore
	bookmarks []models.GeneratedCombination
}

// NewLottoService creates the service. History is treated as immutable after
// construction; the frequency profile is computed once here. Bookmarks are
// loaded from the store, with a load failure degrading to an empty list.
func NewLottoService(history []models.DrawRecord, store storage.BookmarkStore, rng *rand.Rand) *LottoService {
	bookmarks, err := store.Load()
	if err != nil {
		logger.Warningf("Loading bookmarks failed, starting empty: %v", err)
		bookmarks = nil
	}
	return &LottoService{
		history:   history,
		profile:   Analyze(history),
		generator: NewGenerator(rng),
		store:     store,
		bookmarks: bookmarks,
	}
}

// History returns the loaded draw records, most recent round first.
func (s *LottoService) History() []models.DrawRecord {
	return s.history
}

// Latest returns the most recent draw, or ok=false when no history loaded.
func (s *LottoService) Latest() (models.DrawRecord, bool) {
	if len(s.history) == 0 {
		return models.DrawRecord{}, false
	}
	return s.history[0], true
}

// Frequency returns the profile derived from the full history.
func (s *LottoService) Frequency() models.FrequencyProfile {
	return s.profile
}

// Generate produces count candidate combinations for the given mode. The
// sum window only applies to ModeSumRange. Each combination is stamped with
// an id and reason label and annotated with the round of an identical past
// win, if any.
func (s *LottoService) Generate(count int, mode string, minSum, maxSum int) ([]models.GeneratedCombination, error) {
	reason, known := reasonLabels[mode]
	if !known {
		return nil, fmt.Errorf("unknown generation mode %q", mode)
	}
	if count < 1 {
		count = 1
	}

	results := make([]models.GeneratedCombination, 0, count)
	for i := 0; i < count; i++ {
		var numbers []int
		var err error
		if mode == ModeSumRange {
			numbers, err = s.generator.PickInSumRange(minSum, maxSum)
			if err != nil {
				return nil, err
			}
		} else {
			numbers = s.generator.Pick()
		}

		combo := models.GeneratedCombination{
			ID:      fmt.Sprintf("%s-%d-%d-%s", mode, time.Now().UnixMilli(), i, uuid.NewString()[:8]),
			Numbers: numbers,
			Sum:     Sum(numbers),
			Reason:  reason,
		}
		if round, ok := FindMatch(numbers, s.history); ok {
			combo.MatchRound = &round
		}
		results = append(results, combo)
	}
	return results, nil
}

// Bookmarks returns the current saved combinations.
func (s *LottoService) Bookmarks() []models.GeneratedCombination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.GeneratedCombination, len(s.bookmarks))
	copy(out, s.bookmarks)
	return out
}

// AddBookmark saves a combination. Saving an id that is already stored is a
// no-op. A persistence failure is reported but the in-memory list keeps the
// new entry for the rest of the session.
func (s *LottoService) AddBookmark(combo models.GeneratedCombination) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookmarks {
		if b.ID == combo.ID {
			return nil
		}
	}
	s.bookmarks = append(s.bookmarks, combo)

	if err := s.store.SaveAll(s.bookmarks); err != nil {
		logger.Warningf("Persisting bookmarks failed: %v", err)
		return fmt.Errorf("persist bookmarks: %w", err)
	}
	return nil
}

// RemoveBookmark deletes a saved combination by id. Unknown ids are ignored.
func (s *LottoService) RemoveBookmark(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.bookmarks[:0]
	removed := false
	for _, b := range s.bookmarks {
		if b.ID == id {
			removed = true
			continue
		}
		kept = append(kept, b)
	}
	s.bookmarks = kept
	if !removed {
		return nil
	}

	if err := s.store.SaveAll(s.bookmarks); err != nil {
		logger.Warningf("Persisting bookmarks failed: %v", err)
		return fmt.Errorf("persist bookmarks: %w", err)
	}
	return nil
}
