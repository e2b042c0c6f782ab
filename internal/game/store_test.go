package game

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dynastygames/emperorquiz/internal/storage"
)

func seedOf(n int) func() []Emperor {
	return func() []Emperor {
		out := make([]Emperor, 0, n)
		for i := range n {
			out = append(out, testEmperor(fmt.Sprintf("fixture-%d", i)))
		}
		return out
	}
}

func setupStore(t *testing.T, opts ...StoreOption) (*EmperorStore, *storage.MemoryBlobs) {
	t.Helper()
	blobs := storage.NewMemoryBlobs()
	store := NewEmperorStore(blobs, discardLogger(), opts...)
	if err := store.Init(); err != nil {
		t.Fatalf("init store: %v", err)
	}
	return store, blobs
}

func TestStoreSeedsDefaults(t *testing.T) {
	store, blobs := setupStore(t)

	if store.Len() != len(DefaultEmperors()) {
		t.Errorf("seeded %d emperors, want %d", store.Len(), len(DefaultEmperors()))
	}
	if _, err := blobs.Load(EmperorsBlobKey); err != nil {
		t.Errorf("seed not persisted: %v", err)
	}
	stats := store.Stats()
	if stats.ValidEmperors != stats.TotalEmperors {
		t.Errorf("seed has %d valid of %d emperors", stats.ValidEmperors, stats.TotalEmperors)
	}
}

func TestStoreLoadsPersistedCollection(t *testing.T) {
	_, blobs := setupStore(t, WithSeed(seedOf(6)))

	// A second store over the same blobs must load what was persisted,
	// not reseed from its own defaults.
	reopened := NewEmperorStore(blobs, discardLogger(), WithSeed(seedOf(9)))
	if err := reopened.Init(); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Len() != 6 {
		t.Errorf("reopened store has %d emperors, want the persisted 6", reopened.Len())
	}
}

func TestStoreQuarantinesCorruptBlob(t *testing.T) {
	blobs := storage.NewMemoryBlobs()
	garbage := []byte("{not json")
	if err := blobs.Save(EmperorsBlobKey, garbage); err != nil {
		t.Fatal(err)
	}

	store := NewEmperorStore(blobs, discardLogger(), WithSeed(seedOf(6)))
	if err := store.Init(); err != nil {
		t.Fatalf("init over corrupt blob: %v", err)
	}

	if store.Len() != 6 {
		t.Errorf("store has %d emperors after reseed, want 6", store.Len())
	}
	saved, err := blobs.Load(EmperorsBlobKey + QuarantineSuffix)
	if err != nil {
		t.Fatalf("quarantined blob missing: %v", err)
	}
	if string(saved) != string(garbage) {
		t.Errorf("quarantined blob %q, want the original bytes", saved)
	}
}

func TestStoreDegradesToMemoryOnly(t *testing.T) {
	blobs := storage.NewMemoryBlobs()
	blobs.FailReads = true
	blobs.FailWrites = true

	store := NewEmperorStore(blobs, discardLogger(), WithSeed(seedOf(6)))
	if err := store.Init(); err != nil {
		t.Fatalf("init with broken storage: %v", err)
	}

	if !store.MemoryOnly() {
		t.Error("store not flagged memory-only")
	}
	if store.Len() != 6 {
		t.Errorf("store has %d emperors, want the seed despite broken storage", store.Len())
	}
}

func TestGameHintsTruncatesToTierCaps(t *testing.T) {
	oversized := testEmperor("big")
	// Pile extra hints onto every tier; play order must still be
	// 3 hard, 3 medium, 4 easy.
	for i := range 3 {
		oversized.Hints = append(oversized.Hints,
			Hint{ID: fmt.Sprintf("big-xh%d", i), Content: "extra hard", Difficulty: DifficultyHard, Order: 10 + i},
			Hint{ID: fmt.Sprintf("big-xm%d", i), Content: "extra medium", Difficulty: DifficultyMedium, Order: 10 + i},
			Hint{ID: fmt.Sprintf("big-xe%d", i), Content: "extra easy", Difficulty: DifficultyEasy, Order: 10 + i},
		)
	}
	store, _ := setupStore(t, WithSeed(func() []Emperor { return append(seedOf(5)(), oversized) }))

	hints := store.GameHints("big")
	if len(hints) != HintsPerGame {
		t.Fatalf("got %d hints, want %d", len(hints), HintsPerGame)
	}
	wantTiers := []Difficulty{
		DifficultyHard, DifficultyHard, DifficultyHard,
		DifficultyMedium, DifficultyMedium, DifficultyMedium,
		DifficultyEasy, DifficultyEasy, DifficultyEasy, DifficultyEasy,
	}
	for i, h := range hints {
		if h.Difficulty != wantTiers[i] {
			t.Errorf("hint %d is %s, want %s", i, h.Difficulty, wantTiers[i])
		}
	}
	// Within a tier, stored order decides; the inflated extras sit at
	// orders 10+ and must not appear.
	for _, h := range hints {
		if h.Order >= 10 {
			t.Errorf("overflow hint %s leaked into play order", h.ID)
		}
	}
}

func TestRandomUnusedRespectsExclusions(t *testing.T) {
	store, _ := setupStore(t, WithSeed(seedOf(6)))

	var exclude []string
	for range 6 {
		e, ok := store.RandomUnused(exclude)
		if !ok {
			t.Fatalf("draw failed with %d excluded", len(exclude))
		}
		for _, used := range exclude {
			if e.ID == used {
				t.Fatalf("drew already-used emperor %s", e.ID)
			}
		}
		exclude = append(exclude, e.ID)
	}
	if _, ok := store.RandomUnused(exclude); ok {
		t.Error("draw succeeded with every emperor excluded")
	}
}

func TestStoreGetByIDReturnsCopy(t *testing.T) {
	store, _ := setupStore(t, WithSeed(seedOf(6)))

	e, ok := store.GetByID("fixture-0")
	if !ok {
		t.Fatal("fixture-0 missing")
	}
	e.Name = "mutated"
	e.Hints[0].Content = "mutated"

	fresh, _ := store.GetByID("fixture-0")
	if fresh.Name == "mutated" || fresh.Hints[0].Content == "mutated" {
		t.Error("mutating a returned record changed the store")
	}
}

func TestStoreAdd(t *testing.T) {
	store, _ := setupStore(t, WithSeed(seedOf(6)))

	if err := store.Add(testEmperor("newcomer")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if store.Len() != 7 {
		t.Errorf("store has %d emperors, want 7", store.Len())
	}

	err := store.Add(testEmperor("newcomer"))
	if !errors.Is(err, &Error{Kind: KindValidation, Reason: ReasonDuplicateID}) {
		t.Errorf("duplicate add returned %v, want duplicate_id", err)
	}

	invalid := testEmperor("halfbaked")
	invalid.Hints = invalid.Hints[:2]
	if err := store.Add(invalid); err == nil {
		t.Error("add accepted a record with too few hints")
	}
}

func TestStoreUpdate(t *testing.T) {
	store, _ := setupStore(t, WithSeed(seedOf(6)))

	updated := testEmperor("fixture-0")
	updated.Name = "Renamed"
	if err := store.Update(updated); err != nil {
		t.Fatalf("update: %v", err)
	}
	e, _ := store.GetByID("fixture-0")
	if e.Name != "Renamed" {
		t.Errorf("name %q after update, want Renamed", e.Name)
	}

	missing := testEmperor("nobody")
	err := store.Update(missing)
	if !errors.Is(err, &Error{Reason: ReasonEmperorNotFound}) {
		t.Errorf("update of missing record returned %v, want emperor_not_found", err)
	}
}

func TestStoreDeleteGuards(t *testing.T) {
	store, _ := setupStore(t, WithSeed(seedOf(6)))

	err := store.Delete("nobody", "")
	if !errors.Is(err, &Error{Reason: ReasonEmperorNotFound}) {
		t.Errorf("deleting unknown record returned %v, want emperor_not_found", err)
	}

	err = store.Delete("fixture-0", "fixture-0")
	if !errors.Is(err, &Error{Reason: ReasonEmperorInUse}) {
		t.Errorf("deleting in-play record returned %v, want emperor_in_use", err)
	}

	// At 6 records one delete is allowed; the next would shrink the
	// store below the minimum.
	if err := store.Delete("fixture-0", ""); err != nil {
		t.Fatalf("delete at 6 records: %v", err)
	}
	err = store.Delete("fixture-1", "")
	if !errors.Is(err, &Error{Reason: ReasonInsufficientData}) {
		t.Errorf("delete at %d records returned %v, want insufficient_data", MinEmperors, err)
	}
	if store.Len() != MinEmperors {
		t.Errorf("store has %d records, want %d", store.Len(), MinEmperors)
	}
}

func TestStoreDeleteRollsBackWhenSaveFails(t *testing.T) {
	store, blobs := setupStore(t, WithSeed(seedOf(6)))

	blobs.FailWrites = true
	err := store.Delete("fixture-2", "")
	if !errors.Is(err, &Error{Reason: ReasonStorageSaveFailed}) {
		t.Fatalf("delete with broken storage returned %v, want storage_save_failed", err)
	}
	if store.Len() != 6 {
		t.Errorf("store has %d records after rollback, want 6", store.Len())
	}
	if _, ok := store.GetByID("fixture-2"); !ok {
		t.Error("rolled-back record missing")
	}
	if !store.MemoryOnly() {
		t.Error("store not flagged memory-only after failed save")
	}
}

func TestStoreSummaries(t *testing.T) {
	store, _ := setupStore(t, WithSeed(seedOf(6)))

	summaries := store.Summaries()
	if len(summaries) != 6 {
		t.Fatalf("got %d summaries, want 6", len(summaries))
	}
	for _, s := range summaries {
		if s.ID == "" || s.Name == "" {
			t.Errorf("summary missing identity: %+v", s)
		}
		if s.HintCount != HintsPerGame {
			t.Errorf("summary %s reports %d hints, want %d", s.ID, s.HintCount, HintsPerGame)
		}
	}
}

func TestStoreRequiresInit(t *testing.T) {
	store := NewEmperorStore(storage.NewMemoryBlobs(), discardLogger())
	err := store.Add(testEmperor("early"))
	if !errors.Is(err, &Error{Reason: ReasonNotInitialized}) {
		t.Errorf("add before init returned %v, want not_initialized", err)
	}
}

func TestDefaultEmperorsPassIntegrity(t *testing.T) {
	defaults := DefaultEmperors()
	if err := CheckIntegrity(defaults); err != nil {
		t.Fatalf("default dataset: %v", err)
	}
	if len(defaults) < DefaultMaxEmperorsPerRound {
		t.Errorf("default dataset has %d emperors, a full round needs %d",
			len(defaults), DefaultMaxEmperorsPerRound)
	}
	for _, e := range defaults {
		if len(e.Hints) < HintsPerGame {
			t.Errorf("emperor %s has %d hints, want at least %d", e.ID, len(e.Hints), HintsPerGame)
		}
	}
}
