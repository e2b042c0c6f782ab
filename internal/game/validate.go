package game

import (
	"fmt"
	"strings"
)

// SanitizeInput trims the guess and collapses interior whitespace runs
// to a single space. Matching is done on the sanitized, case-folded
// form.
func SanitizeInput(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func foldAnswer(s string) string {
	return strings.ToLower(SanitizeInput(s))
}

// Honorific decorations stripped before the second comparison pass, so
// "King Wudi" and "Wudi the Great" both match a record named "Wudi".
// One prefix and one suffix are removed per pass, first match wins.
var (
	honorificPrefixes = []string{"emperor ", "empress ", "king ", "the "}
	honorificSuffixes = []string{" the great", " emperor", " of china"}
)

func stripHonorifics(s string) string {
	cleaned := foldAnswer(s)
	for _, prefix := range honorificPrefixes {
		if rest, ok := strings.CutPrefix(cleaned, prefix); ok {
			cleaned = rest
			break
		}
	}
	for _, suffix := range honorificSuffixes {
		if rest, ok := strings.CutSuffix(cleaned, suffix); ok {
			cleaned = rest
			break
		}
	}
	return strings.TrimSpace(cleaned)
}

// ValidAnswers returns every name that counts as a correct guess for e.
func ValidAnswers(e Emperor) []string {
	answers := make([]string, 0, 3+len(e.ReignNames))
	for _, a := range []string{e.Name, e.TempleName, e.PosthumousName} {
		if a != "" {
			answers = append(answers, a)
		}
	}
	for _, reign := range e.ReignNames {
		if reign != "" {
			answers = append(answers, reign)
		}
	}
	return answers
}

// ValidateAnswer reports whether guess names e. The first pass compares
// the case-folded guess against the full name set; the second strips
// honorifics from both sides. No substring matching here — that lives
// in FuzzyMatch and is diagnostics only.
func ValidateAnswer(guess string, e Emperor) bool {
	cleanGuess := foldAnswer(guess)
	if cleanGuess == "" {
		return false
	}

	strippedGuess := stripHonorifics(guess)
	for _, answer := range ValidAnswers(e) {
		if foldAnswer(answer) == cleanGuess {
			return true
		}
		if stripped := stripHonorifics(answer); stripped != "" && stripped == strippedGuess {
			return true
		}
	}
	return false
}

// FuzzyMatch reports whether guess loosely names e: after honorific
// stripping, either side containing the other counts, with a two rune
// minimum so single letters never match. Diagnostics only, never used
// to score a guess.
func FuzzyMatch(guess string, e Emperor) bool {
	g := stripHonorifics(guess)
	if len([]rune(g)) < 2 {
		return false
	}
	for _, answer := range ValidAnswers(e) {
		a := stripHonorifics(answer)
		if len([]rune(a)) < 2 {
			continue
		}
		if strings.Contains(a, g) || strings.Contains(g, a) {
			return true
		}
	}
	return false
}

// MatchDetail explains how a guess related to a record's answer set.
type MatchDetail struct {
	Matched       bool   `json:"matched"`
	MatchedAnswer string `json:"matchedAnswer,omitempty"`
	MatchType     string `json:"matchType,omitempty"` // exact, stripped, fuzzy
}

func MatchDetails(guess string, e Emperor) MatchDetail {
	cleanGuess := foldAnswer(guess)
	strippedGuess := stripHonorifics(guess)
	for _, answer := range ValidAnswers(e) {
		if foldAnswer(answer) == cleanGuess {
			return MatchDetail{Matched: true, MatchedAnswer: answer, MatchType: "exact"}
		}
	}
	for _, answer := range ValidAnswers(e) {
		if stripped := stripHonorifics(answer); stripped != "" && stripped == strippedGuess {
			return MatchDetail{Matched: true, MatchedAnswer: answer, MatchType: "stripped"}
		}
	}
	if FuzzyMatch(guess, e) {
		return MatchDetail{Matched: false, MatchType: "fuzzy"}
	}
	return MatchDetail{}
}

func validateHint(h Hint) error {
	if h.ID == "" {
		return fmt.Errorf("hint id is empty")
	}
	if strings.TrimSpace(h.Content) == "" {
		return fmt.Errorf("hint %s: content is empty", h.ID)
	}
	switch h.Difficulty {
	case DifficultyHard, DifficultyMedium, DifficultyEasy:
	default:
		return fmt.Errorf("hint %s: unknown difficulty %q", h.ID, h.Difficulty)
	}
	if h.Order < 0 {
		return fmt.Errorf("hint %s: negative order %d", h.ID, h.Order)
	}
	return nil
}

func countByDifficulty(hints []Hint) map[Difficulty]int {
	counts := make(map[Difficulty]int, 3)
	for _, h := range hints {
		counts[h.Difficulty]++
	}
	return counts
}

// ValidateEmperor checks the full-record invariants: identity and name
// present, reign names non-empty, every hint well formed, and at least
// 3 hard, 3 medium and 4 easy hints.
func ValidateEmperor(e Emperor) error {
	if e.ID == "" {
		return fmt.Errorf("emperor id is empty")
	}
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("emperor %s: name is empty", e.ID)
	}
	for i, reign := range e.ReignNames {
		if strings.TrimSpace(reign) == "" {
			return fmt.Errorf("emperor %s: reign name %d is empty", e.ID, i)
		}
	}
	seen := make(map[string]bool, len(e.Hints))
	for _, h := range e.Hints {
		if err := validateHint(h); err != nil {
			return fmt.Errorf("emperor %s: %w", e.ID, err)
		}
		if seen[h.ID] {
			return fmt.Errorf("emperor %s: duplicate hint id %s", e.ID, h.ID)
		}
		seen[h.ID] = true
	}
	counts := countByDifficulty(e.Hints)
	if counts[DifficultyHard] < MaxHardHints {
		return fmt.Errorf("emperor %s: %d hard hints, need %d", e.ID, counts[DifficultyHard], MaxHardHints)
	}
	if counts[DifficultyMedium] < MaxMediumHints {
		return fmt.Errorf("emperor %s: %d medium hints, need %d", e.ID, counts[DifficultyMedium], MaxMediumHints)
	}
	if counts[DifficultyEasy] < MaxEasyHints {
		return fmt.Errorf("emperor %s: %d easy hints, need %d", e.ID, counts[DifficultyEasy], MaxEasyHints)
	}
	return nil
}

// CheckIntegrity validates a whole collection: every record valid and
// no identity reused.
func CheckIntegrity(emperors []Emperor) error {
	seen := make(map[string]bool, len(emperors))
	for i, e := range emperors {
		if err := ValidateEmperor(e); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if seen[e.ID] {
			return fmt.Errorf("record %d: duplicate id %s", i, e.ID)
		}
		seen[e.ID] = true
	}
	return nil
}

// NormalizeHintOrders reassigns contiguous 0-based orders within each
// difficulty grouping, preserving the existing relative order. Run on
// admin create/replace so stored orders stay canonical.
func NormalizeHintOrders(hints []Hint) []Hint {
	out := append([]Hint(nil), hints...)
	next := make(map[Difficulty]int, 3)
	for i := range out {
		out[i].Order = next[out[i].Difficulty]
		next[out[i].Difficulty]++
	}
	return out
}

func validateState(s State) error {
	if s.CurrentRoundScore < MinRoundScore || s.CurrentRoundScore > InitialRoundScore {
		return fmt.Errorf("current round score %d out of range", s.CurrentRoundScore)
	}
	if s.TotalScore < 0 {
		return fmt.Errorf("negative total score %d", s.TotalScore)
	}
	if s.CurrentHintIndex < 0 || s.CurrentHintIndex >= HintsPerGame {
		return fmt.Errorf("hint index %d out of range", s.CurrentHintIndex)
	}
	switch s.GamePhase {
	case PhaseStart, PhasePlaying, PhaseRoundEnd:
	default:
		return fmt.Errorf("unknown phase %q", s.GamePhase)
	}
	if s.MaxEmperorsPerRound <= 0 {
		return fmt.Errorf("max emperors per round %d not positive", s.MaxEmperorsPerRound)
	}
	if s.CurrentEmperorIndex < 0 || s.CurrentEmperorIndex > s.MaxEmperorsPerRound {
		return fmt.Errorf("emperor index %d out of range", s.CurrentEmperorIndex)
	}
	seen := make(map[string]bool, len(s.UsedEmperorIDs))
	for _, id := range s.UsedEmperorIDs {
		if seen[id] {
			return fmt.Errorf("duplicate used emperor id %s", id)
		}
		seen[id] = true
	}
	return nil
}
