package game

import (
	"sort"
	"time"
)

// HintHistory logs which hints have been shown for the emperor in
// play, in display order, so the player can review earlier hints. The
// log is cleared whenever a new emperor begins.
type HintHistory struct {
	entries []DisplayedHint
	cursor  int
	now     func() time.Time
}

func NewHintHistory() *HintHistory {
	return &HintHistory{now: time.Now}
}

// Record logs hint as shown at the given 0-based reveal index. Logging
// the same index twice overwrites the earlier entry; the log stays
// sorted by display index either way.
func (h *HintHistory) Record(hint Hint, index int) error {
	if index < 0 {
		return newError(KindValidation, "", "negative display index %d", index)
	}
	entry := DisplayedHint{
		Hint:         hint,
		DisplayIndex: index + 1,
		Timestamp:    h.now(),
	}
	for i := range h.entries {
		if h.entries[i].DisplayIndex == entry.DisplayIndex {
			h.entries[i] = entry
			return nil
		}
	}
	h.entries = append(h.entries, entry)
	sort.Slice(h.entries, func(i, j int) bool {
		return h.entries[i].DisplayIndex < h.entries[j].DisplayIndex
	})
	return nil
}

// Entries returns a copy of the log in display order.
func (h *HintHistory) Entries() []DisplayedHint {
	return append([]DisplayedHint(nil), h.entries...)
}

func (h *HintHistory) Len() int { return len(h.entries) }

// CanReview reports whether there is anything worth reviewing. A single
// revealed hint is already on screen.
func (h *HintHistory) CanReview() bool {
	return len(h.entries) >= 2
}

// Navigate moves the read cursor to the 0-based position and returns
// the entry there. Out-of-range positions leave the cursor alone and
// report absence.
func (h *HintHistory) Navigate(index int) (DisplayedHint, bool) {
	if index < 0 || index >= len(h.entries) {
		return DisplayedHint{}, false
	}
	h.cursor = index
	return h.entries[index], true
}

// Prev and Next move the cursor one step, clamped at the ends.
func (h *HintHistory) Prev() (DisplayedHint, bool) {
	return h.Navigate(max(0, h.cursor-1))
}

func (h *HintHistory) Next() (DisplayedHint, bool) {
	if len(h.entries) == 0 {
		return DisplayedHint{}, false
	}
	return h.Navigate(min(len(h.entries)-1, h.cursor+1))
}

// Latest positions the cursor on the newest entry.
func (h *HintHistory) Latest() (DisplayedHint, bool) {
	return h.Navigate(len(h.entries) - 1)
}

// Clear empties the log and resets the cursor.
func (h *HintHistory) Clear() {
	h.entries = nil
	h.cursor = 0
}
