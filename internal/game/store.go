package game

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/dynastygames/emperorquiz/internal/storage"
)

// EmperorsBlobKey is where the record collection lives on the storage
// port; QuarantineSuffix is appended to it when a corrupt blob is set
// aside before reseeding.
const (
	EmperorsBlobKey  = "emperors"
	QuarantineSuffix = ".corrupt"

	// MinEmperors is the smallest viable store: deletes that would
	// shrink it further are refused.
	MinEmperors = 5

	collectionVersion = "1.0.0"
)

// Collection is the on-disk shape of the record set.
type Collection struct {
	Records     []Emperor `json:"records"`
	LastUpdated time.Time `json:"lastUpdated"`
	Version     string    `json:"version"`
}

// EmperorStore is the authoritative record set. All reads hand out deep
// copies; mutations validate first, persist write-through, and fall
// back to memory-only operation when the storage port fails.
type EmperorStore struct {
	mu          sync.Mutex
	emperors    []Emperor
	blobs       storage.Blobs
	notifier    Notifier
	logger      *slog.Logger
	seed        func() []Emperor
	memOnly     bool
	initialized bool
}

type StoreOption func(*EmperorStore)

// WithSeed overrides the default dataset used when nothing valid is
// persisted yet.
func WithSeed(seed func() []Emperor) StoreOption {
	return func(s *EmperorStore) { s.seed = seed }
}

func WithNotifier(n Notifier) StoreOption {
	return func(s *EmperorStore) { s.notifier = n }
}

func NewEmperorStore(blobs storage.Blobs, logger *slog.Logger, opts ...StoreOption) *EmperorStore {
	s := &EmperorStore{
		blobs:    blobs,
		logger:   logger,
		notifier: LogNotifier{Logger: logger},
		seed:     DefaultEmperors,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init loads the persisted collection. Missing data seeds from
// defaults; corrupt data is quarantined and reseeded; an unreachable
// store degrades to memory-only. None of these crash — the only
// error returned is a seed set that itself fails integrity, and even
// then the store comes up empty rather than broken.
func (s *EmperorStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.blobs.Load(EmperorsBlobKey)
	switch {
	case err == nil:
		var coll Collection
		if jsonErr := json.Unmarshal(raw, &coll); jsonErr != nil {
			s.quarantine(raw, jsonErr)
		} else if intErr := CheckIntegrity(coll.Records); intErr != nil {
			s.quarantine(raw, intErr)
		} else {
			s.emperors = coll.Records
			s.initialized = true
			s.logger.Info("emperor store loaded", "count", len(s.emperors))
			return nil
		}
	case errors.Is(err, storage.ErrNotFound):
		s.logger.Info("no persisted emperors, seeding defaults")
	default:
		s.memOnly = true
		s.notifier.Notify(wrapError(KindStorage, "", err, "loading emperor collection"))
	}

	defaults := s.seed()
	if err := CheckIntegrity(defaults); err != nil {
		s.emperors = nil
		s.initialized = true
		notifyErr := wrapError(KindCorruption, "", err, "seed data failed integrity check")
		s.notifier.Notify(notifyErr)
		return notifyErr
	}
	s.emperors = make([]Emperor, 0, len(defaults))
	for _, e := range defaults {
		s.emperors = append(s.emperors, e.Clone())
	}
	s.initialized = true
	s.persist()
	s.logger.Info("emperor store seeded", "count", len(s.emperors))
	return nil
}

// quarantine backs the corrupt blob up under a side key, discards it,
// and surfaces a high-severity notice.
func (s *EmperorStore) quarantine(raw []byte, cause error) {
	s.notifier.Notify(wrapError(KindCorruption, "", cause, "persisted emperor data failed validation"))
	if err := s.blobs.Save(EmperorsBlobKey+QuarantineSuffix, raw); err != nil {
		s.logger.Warn("quarantine save failed", "err", err)
	}
	if err := s.blobs.Remove(EmperorsBlobKey); err != nil {
		s.logger.Warn("removing corrupt blob failed", "err", err)
	}
}

// persist writes the collection through. Failures flip the store into
// memory-only mode and are reported, not returned: the in-memory set
// stays authoritative. Callers that need rollback-on-failure (Delete)
// check the return.
func (s *EmperorStore) persist() bool {
	coll := Collection{
		Records:     s.emperors,
		LastUpdated: time.Now().UTC(),
		Version:     collectionVersion,
	}
	raw, err := json.Marshal(coll)
	if err != nil {
		s.notifier.Notify(wrapError(KindInternal, "", err, "encoding emperor collection"))
		return false
	}
	if err := s.blobs.Save(EmperorsBlobKey, raw); err != nil {
		if !s.memOnly {
			s.memOnly = true
			s.notifier.Notify(wrapError(KindStorage, ReasonStorageSaveFailed, err, "saving emperor collection"))
		}
		return false
	}
	s.memOnly = false
	return true
}

func (s *EmperorStore) requireInit() error {
	if !s.initialized {
		return newError(KindIllegalState, ReasonNotInitialized, "emperor store not initialized")
	}
	return nil
}

// MemoryOnly reports whether the last write-through failed and the
// store is running without persistence.
func (s *EmperorStore) MemoryOnly() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memOnly
}

func (s *EmperorStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.emperors)
}

func (s *EmperorStore) indexOf(id string) int {
	for i := range s.emperors {
		if s.emperors[i].ID == id {
			return i
		}
	}
	return -1
}

// GetByID returns a deep copy of the record, if present.
func (s *EmperorStore) GetByID(id string) (Emperor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.emperors[i].Clone(), true
	}
	return Emperor{}, false
}

// RandomUnused picks one record uniformly at random among those that
// pass full-record validation, hold at least HintsPerGame hints, and
// are not excluded. The store keeps no draw state of its own — the
// caller's growing exclude set is what prevents repeats.
func (s *EmperorStore) RandomUnused(exclude []string) (Emperor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	excluded := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}

	var candidates []int
	for i := range s.emperors {
		e := &s.emperors[i]
		if excluded[e.ID] || len(e.Hints) < HintsPerGame {
			continue
		}
		if ValidateEmperor(*e) != nil {
			continue
		}
		candidates = append(candidates, i)
	}
	if len(candidates) == 0 {
		return Emperor{}, false
	}
	pick := candidates[rand.IntN(len(candidates))]
	return s.emperors[pick].Clone(), true
}

// GameHints returns the record's hints in play order: up to 3 hard,
// then 3 medium, then 4 easy, each tier sorted by stored order. Extra
// hints beyond the tier caps are never revealed.
func (s *EmperorStore) GameHints(id string) []Hint {
	e, ok := s.GetByID(id)
	if !ok {
		return nil
	}
	byTier := func(d Difficulty, limit int) []Hint {
		var tier []Hint
		for _, h := range e.Hints {
			if h.Difficulty == d {
				tier = append(tier, h)
			}
		}
		sort.Slice(tier, func(i, j int) bool { return tier[i].Order < tier[j].Order })
		if len(tier) > limit {
			tier = tier[:limit]
		}
		return tier
	}
	out := byTier(DifficultyHard, MaxHardHints)
	out = append(out, byTier(DifficultyMedium, MaxMediumHints)...)
	out = append(out, byTier(DifficultyEasy, MaxEasyHints)...)
	return out
}

// Add inserts a validated record, rejecting identity collisions.
func (s *EmperorStore) Add(e Emperor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireInit(); err != nil {
		return err
	}
	if err := ValidateEmperor(e); err != nil {
		return wrapError(KindValidation, "", err, "adding emperor %s", e.ID)
	}
	if s.indexOf(e.ID) >= 0 {
		return newError(KindValidation, ReasonDuplicateID, "emperor %s already exists", e.ID)
	}
	s.emperors = append(s.emperors, e.Clone())
	s.persist()
	s.logger.Info("emperor added", "id", e.ID, "name", e.Name)
	return nil
}

// Update replaces an existing record wholesale; there is no partial
// field update.
func (s *EmperorStore) Update(e Emperor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireInit(); err != nil {
		return err
	}
	if err := ValidateEmperor(e); err != nil {
		return wrapError(KindValidation, "", err, "updating emperor %s", e.ID)
	}
	i := s.indexOf(e.ID)
	if i < 0 {
		return newError(KindValidation, ReasonEmperorNotFound, "emperor %s does not exist", e.ID)
	}
	s.emperors[i] = e.Clone()
	s.persist()
	s.logger.Info("emperor updated", "id", e.ID, "name", e.Name)
	return nil
}

// CanDelete runs the delete guards without mutating: the record must
// exist, must not be the emperor currently in play, and removing it
// must not shrink the store below MinEmperors.
func (s *EmperorStore) CanDelete(id, inPlayID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canDeleteLocked(id, inPlayID)
}

func (s *EmperorStore) canDeleteLocked(id, inPlayID string) error {
	if err := s.requireInit(); err != nil {
		return err
	}
	if s.indexOf(id) < 0 {
		return newError(KindValidation, ReasonEmperorNotFound, "emperor %s does not exist", id)
	}
	if inPlayID != "" && id == inPlayID {
		return newError(KindIllegalState, ReasonEmperorInUse, "emperor %s is currently in play", id)
	}
	if len(s.emperors)-1 < MinEmperors {
		return newError(KindValidation, ReasonInsufficientData, "store needs at least %d emperors", MinEmperors)
	}
	return nil
}

// Delete removes the record after the guard checks. The removal only
// commits if the new set persists; otherwise it is rolled back in
// memory and the failure surfaced.
func (s *EmperorStore) Delete(id, inPlayID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.canDeleteLocked(id, inPlayID); err != nil {
		return err
	}
	i := s.indexOf(id)
	removed := s.emperors[i]
	s.emperors = append(s.emperors[:i], s.emperors[i+1:]...)
	if !s.persist() {
		s.emperors = append(s.emperors[:i], append([]Emperor{removed}, s.emperors[i:]...)...)
		return newError(KindStorage, ReasonStorageSaveFailed, "delete of %s not persisted, rolled back", id)
	}
	s.logger.Info("emperor deleted", "id", id, "name", removed.Name)
	return nil
}

// ValidateAnswer reports whether guess correctly names e.
func (s *EmperorStore) ValidateAnswer(guess string, e Emperor) bool {
	return ValidateAnswer(guess, e)
}

// Summaries lists every record's player-safe fields for the admin UI.
func (s *EmperorStore) Summaries() []Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Summary, 0, len(s.emperors))
	for _, e := range s.emperors {
		out = append(out, Summary{
			ID:             e.ID,
			Name:           e.Name,
			TempleName:     e.TempleName,
			PosthumousName: e.PosthumousName,
			ReignNames:     append([]string(nil), e.ReignNames...),
			Dynasty:        e.Dynasty,
			HintCount:      len(e.Hints),
		})
	}
	return out
}

// StoreStats describes the dataset for diagnostics.
type StoreStats struct {
	TotalEmperors int  `json:"totalEmperors"`
	ValidEmperors int  `json:"validEmperors"`
	TotalHints    int  `json:"totalHints"`
	MemoryOnly    bool `json:"memoryOnly"`
	Initialized   bool `json:"isInitialized"`
}

func (s *EmperorStore) Stats() StoreStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := StoreStats{
		TotalEmperors: len(s.emperors),
		MemoryOnly:    s.memOnly,
		Initialized:   s.initialized,
	}
	for _, e := range s.emperors {
		stats.TotalHints += len(e.Hints)
		if ValidateEmperor(e) == nil {
			stats.ValidEmperors++
		}
	}
	return stats
}

// Clear empties the store and removes the persisted collection.
func (s *EmperorStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireInit(); err != nil {
		return err
	}
	s.emperors = nil
	if err := s.blobs.Remove(EmperorsBlobKey); err != nil {
		return wrapError(KindStorage, "", err, "clearing emperor collection")
	}
	s.logger.Info("emperor store cleared")
	return nil
}
