package game

import (
	"testing"
	"time"
)

func fixedClock() func() time.Time {
	t := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func hintAt(index int) Hint {
	return Hint{
		ID:         "h" + string(rune('0'+index)),
		Content:    "hint content",
		Difficulty: DifficultyHard,
	}
}

func TestHistoryRecordKeepsDisplayOrder(t *testing.T) {
	h := NewHintHistory()
	h.now = fixedClock()

	// Recorded out of order, as happens when a restored game replays
	// its reveal log.
	for _, index := range []int{2, 0, 1} {
		if err := h.Record(hintAt(index), index); err != nil {
			t.Fatalf("record %d: %v", index, err)
		}
	}

	entries := h.Entries()
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	for i, entry := range entries {
		if entry.DisplayIndex != i+1 {
			t.Errorf("entry %d has display index %d, want %d", i, entry.DisplayIndex, i+1)
		}
	}
}

func TestHistoryRecordRejectsNegativeIndex(t *testing.T) {
	h := NewHintHistory()
	if err := h.Record(hintAt(0), -1); err == nil {
		t.Error("negative index accepted")
	}
}

func TestHistoryRecordOverwritesSameIndex(t *testing.T) {
	h := NewHintHistory()
	h.now = fixedClock()

	h.Record(hintAt(0), 0)
	replacement := Hint{ID: "other", Content: "replacement", Difficulty: DifficultyEasy}
	h.Record(replacement, 0)

	if h.Len() != 1 {
		t.Fatalf("got %d entries, want 1", h.Len())
	}
	if got := h.Entries()[0].Hint.ID; got != "other" {
		t.Errorf("entry hint id %s, want other", got)
	}
}

func TestHistoryCanReview(t *testing.T) {
	h := NewHintHistory()
	h.now = fixedClock()

	if h.CanReview() {
		t.Error("empty history reviewable")
	}
	h.Record(hintAt(0), 0)
	if h.CanReview() {
		t.Error("single entry reviewable; it is already on screen")
	}
	h.Record(hintAt(1), 1)
	if !h.CanReview() {
		t.Error("two entries not reviewable")
	}
}

func TestHistoryNavigation(t *testing.T) {
	h := NewHintHistory()
	h.now = fixedClock()
	for i := range 3 {
		h.Record(hintAt(i), i)
	}

	if _, ok := h.Navigate(3); ok {
		t.Error("navigate past end succeeded")
	}
	if _, ok := h.Navigate(-1); ok {
		t.Error("navigate before start succeeded")
	}

	entry, ok := h.Latest()
	if !ok || entry.DisplayIndex != 3 {
		t.Fatalf("latest = %+v, %v; want display index 3", entry, ok)
	}

	entry, _ = h.Prev()
	if entry.DisplayIndex != 2 {
		t.Errorf("prev display index %d, want 2", entry.DisplayIndex)
	}
	entry, _ = h.Prev()
	entry, _ = h.Prev() // clamped at the first entry
	if entry.DisplayIndex != 1 {
		t.Errorf("prev clamped at display index %d, want 1", entry.DisplayIndex)
	}

	entry, _ = h.Next()
	if entry.DisplayIndex != 2 {
		t.Errorf("next display index %d, want 2", entry.DisplayIndex)
	}
}

func TestHistoryClear(t *testing.T) {
	h := NewHintHistory()
	h.now = fixedClock()
	h.Record(hintAt(0), 0)
	h.Record(hintAt(1), 1)

	h.Clear()

	if h.Len() != 0 || h.CanReview() {
		t.Errorf("clear left %d entries", h.Len())
	}
	if _, ok := h.Latest(); ok {
		t.Error("latest on empty history succeeded")
	}
}
