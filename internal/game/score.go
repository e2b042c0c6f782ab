package game

import (
	"fmt"
	"log/slog"
	"time"
)

// Scoring constants: each emperor opens a fresh 100 point window, every
// wrong guess costs 10, and the window never goes below zero.
const (
	InitialRoundScore  = 100
	WrongAnswerPenalty = 10
	MinRoundScore      = 0
)

// ScoreLedger tracks the per-emperor score window and the cumulative
// total. Pure state, no I/O: the engine owns persistence.
//
// The ledger moves idle -> active on StartRound and active -> idle on
// either CommitRound (score banked) or FailRound (banks zero).
type ScoreLedger struct {
	current int
	total   int
	history []int
	active  bool
	logger  *slog.Logger
}

func NewScoreLedger(logger *slog.Logger) *ScoreLedger {
	return &ScoreLedger{history: []int{}, logger: logger}
}

// StartRound opens a fresh score window at 100 points.
func (l *ScoreLedger) StartRound() {
	l.current = InitialRoundScore
	l.active = true
}

// DeductPoints charges one wrong guess, flooring at zero. Calling it
// while idle is a logged no-op, not an error.
func (l *ScoreLedger) DeductPoints() int {
	if !l.active {
		l.logger.Warn("deduct with no active round")
		return l.current
	}
	l.current = max(MinRoundScore, l.current-WrongAnswerPenalty)
	return l.current
}

// CommitRound banks the current window into the total and closes it.
// Returns the banked amount.
func (l *ScoreLedger) CommitRound() int {
	if !l.active {
		l.logger.Warn("commit with no active round")
		return 0
	}
	banked := l.current
	l.total += banked
	l.history = append(l.history, banked)
	l.active = false
	return banked
}

// FailRound closes the window without banking: the history records a
// zero and the total is untouched.
func (l *ScoreLedger) FailRound() {
	if !l.active {
		l.logger.Warn("fail with no active round")
		return
	}
	l.history = append(l.history, 0)
	l.active = false
}

func (l *ScoreLedger) CurrentRoundScore() int { return l.current }
func (l *ScoreLedger) TotalScore() int        { return l.total }
func (l *ScoreLedger) RoundActive() bool      { return l.active }

func (l *ScoreLedger) History() []int {
	return append([]int(nil), l.history...)
}

// Stats summarizes the ledger for the end-of-round screen.
type ScoreStats struct {
	CurrentRoundScore int     `json:"currentRoundScore"`
	TotalScore        int     `json:"totalScore"`
	CompletedRounds   int     `json:"completedRounds"`
	SuccessfulRounds  int     `json:"successfulRounds"`
	FailedRounds      int     `json:"failedRounds"`
	AverageRoundScore float64 `json:"averageRoundScore"`
	RoundActive       bool    `json:"isRoundActive"`
	History           []int   `json:"scoreHistory"`
}

func (l *ScoreLedger) Stats() ScoreStats {
	successful := 0
	sum := 0
	for _, score := range l.history {
		sum += score
		if score > 0 {
			successful++
		}
	}
	avg := 0.0
	if len(l.history) > 0 {
		avg = float64(sum) / float64(len(l.history))
	}
	return ScoreStats{
		CurrentRoundScore: l.current,
		TotalScore:        l.total,
		CompletedRounds:   len(l.history),
		SuccessfulRounds:  successful,
		FailedRounds:      len(l.history) - successful,
		AverageRoundScore: avg,
		RoundActive:       l.active,
		History:           l.History(),
	}
}

// Reset clears everything, including the cumulative total.
func (l *ScoreLedger) Reset() {
	l.current = 0
	l.total = 0
	l.history = []int{}
	l.active = false
}

// ScoreData is the ledger's serialized form inside the round snapshot.
type ScoreData struct {
	CurrentRoundScore int       `json:"currentRoundScore"`
	TotalScore        int       `json:"totalScore"`
	ScoreHistory      []int     `json:"scoreHistory"`
	RoundActive       bool      `json:"isRoundActive"`
	Timestamp         time.Time `json:"timestamp,omitzero"`
}

func (l *ScoreLedger) Export() ScoreData {
	return ScoreData{
		CurrentRoundScore: l.current,
		TotalScore:        l.total,
		ScoreHistory:      l.History(),
		RoundActive:       l.active,
		Timestamp:         time.Now(),
	}
}

// Restore replaces ledger state from a snapshot, rejecting data that
// breaks the score range invariants.
func (l *ScoreLedger) Restore(data ScoreData) error {
	if data.TotalScore < 0 {
		return newError(KindValidation, "", "negative total score %d", data.TotalScore)
	}
	if data.CurrentRoundScore < MinRoundScore || data.CurrentRoundScore > InitialRoundScore {
		return newError(KindValidation, "", "round score %d out of range", data.CurrentRoundScore)
	}
	l.total = data.TotalScore
	l.current = data.CurrentRoundScore
	l.history = append([]int(nil), data.ScoreHistory...)
	l.active = data.RoundActive
	return nil
}

// Validate recomputes the ledger invariants: scores within range and
// the history summing to the total.
func (l *ScoreLedger) Validate() error {
	if l.current < MinRoundScore || l.current > InitialRoundScore {
		return fmt.Errorf("current round score %d out of range", l.current)
	}
	if l.total < 0 {
		return fmt.Errorf("negative total score %d", l.total)
	}
	sum := 0
	for i, score := range l.history {
		if score < MinRoundScore || score > InitialRoundScore {
			return fmt.Errorf("history entry %d out of range: %d", i, score)
		}
		sum += score
	}
	if sum != l.total {
		return fmt.Errorf("history sums to %d, total is %d", sum, l.total)
	}
	return nil
}
