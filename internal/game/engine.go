package game

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/dynastygames/emperorquiz/internal/storage"
)

// StateBlobKey is where the round snapshot lives on the storage port.
const StateBlobKey = "game_state"

// persistedState wraps State with a debug timestamp that is written on
// every save and stripped on load.
type persistedState struct {
	State
	Timestamp int64 `json:"timestamp,omitempty"`
}

// Engine sequences rounds: it draws emperors from the store, walks
// their hint lists, validates guesses, drives the score ledger and the
// hint history, and keeps a persisted snapshot of all of it so a
// restart resumes mid-round.
//
// Phases move START -> PLAYING -> ROUND_END, looping back to PLAYING
// on the next StartNewRound or to START on reset.
type Engine struct {
	store    *EmperorStore
	ledger   *ScoreLedger
	history  *HintHistory
	blobs    storage.Blobs
	notifier Notifier
	logger   *slog.Logger

	state   State
	current *Emperor // full record, never handed out unredacted mid-play
	hints   []Hint
	memOnly bool
}

type EngineOption func(*Engine)

func WithEngineNotifier(n Notifier) EngineOption {
	return func(e *Engine) { e.notifier = n }
}

// NewEngine builds the orchestrator and restores any persisted round.
// A snapshot in phase PLAYING with an emperor set resumes at the exact
// stored hint index; anything else keeps only the cumulative total.
func NewEngine(store *EmperorStore, ledger *ScoreLedger, history *HintHistory, blobs storage.Blobs, logger *slog.Logger, opts ...EngineOption) *Engine {
	e := &Engine{
		store:    store,
		ledger:   ledger,
		history:  history,
		blobs:    blobs,
		logger:   logger,
		notifier: LogNotifier{Logger: logger},
		state:    NewState(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.restore()
	return e
}

func (e *Engine) restore() {
	raw, err := e.blobs.Load(StateBlobKey)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		e.notifier.Notify(wrapError(KindStorage, "", err, "loading round snapshot"))
		return
	}

	var saved persistedState
	if err := json.Unmarshal(raw, &saved); err != nil {
		e.notifier.Notify(wrapError(KindCorruption, "", err, "round snapshot does not parse"))
		e.blobs.Remove(StateBlobKey)
		return
	}
	saved.Timestamp = 0 // debug field, dropped on load
	if saved.WrongGuesses == nil {
		saved.WrongGuesses = []string{}
	}
	if saved.UsedEmperorIDs == nil {
		saved.UsedEmperorIDs = []string{}
	}
	if err := validateState(saved.State); err != nil {
		e.notifier.Notify(wrapError(KindCorruption, "", err, "round snapshot fails invariants"))
		e.blobs.Remove(StateBlobKey)
		return
	}

	if saved.GamePhase == PhasePlaying && saved.CurrentEmperor != nil {
		// Resume mid-round: re-fetch the working hint list rather than
		// trusting whatever the snapshot carried.
		hints := e.store.GameHints(saved.CurrentEmperor.ID)
		if len(hints) < HintsPerGame || saved.CurrentHintIndex >= len(hints) {
			e.notifier.Notify(newError(KindCorruption, ReasonInsufficientHints,
				"cannot resume emperor %s", saved.CurrentEmperor.ID))
			e.state.TotalScore = saved.TotalScore
			e.ledger.Restore(ScoreData{TotalScore: saved.TotalScore})
			return
		}
		e.state = saved.State
		full, ok := e.store.GetByID(saved.CurrentEmperor.ID)
		if ok {
			e.current = &full
		} else {
			e.current = saved.CurrentEmperor
		}
		e.hints = hints
		e.ledger.Restore(ScoreData{
			CurrentRoundScore: saved.CurrentRoundScore,
			TotalScore:        saved.TotalScore,
			RoundActive:       true,
		})
		e.rebuildHistory()
		e.logger.Info("resumed round",
			"emperor", e.current.ID,
			"hintIndex", e.state.CurrentHintIndex,
			"position", e.state.CurrentEmperorIndex+1,
			"of", e.state.MaxEmperorsPerRound)
		return
	}

	// Not mid-play: carry the total forward, drop the round.
	e.state = NewState()
	e.state.TotalScore = saved.TotalScore
	e.state.GamePhase = saved.GamePhase
	if e.state.GamePhase == PhasePlaying {
		e.state.GamePhase = PhaseStart
	}
	e.ledger.Restore(ScoreData{TotalScore: saved.TotalScore})
	e.logger.Info("restored total score", "total", saved.TotalScore)
}

// rebuildHistory replays the already-revealed hints into the history
// log so review works after a restart.
func (e *Engine) rebuildHistory() {
	e.history.Clear()
	for i := 0; i <= e.state.CurrentHintIndex && i < len(e.hints); i++ {
		e.history.Record(e.hints[i], i)
	}
}

// save persists the snapshot write-through. Failures degrade to
// memory-only and are reported once, not returned: gameplay continues.
func (e *Engine) save() {
	snap := persistedState{State: e.state.Clone(), Timestamp: time.Now().UnixMilli()}
	raw, err := json.Marshal(snap)
	if err != nil {
		e.notifier.Notify(wrapError(KindInternal, "", err, "encoding round snapshot"))
		return
	}
	if err := e.blobs.Save(StateBlobKey, raw); err != nil {
		if !e.memOnly {
			e.memOnly = true
			e.notifier.Notify(wrapError(KindStorage, ReasonStorageSaveFailed, err, "saving round snapshot"))
		}
		return
	}
	e.memOnly = false
}

// updateState validates the proposed snapshot before committing and
// persisting it, keeping every operation all-or-nothing.
func (e *Engine) updateState(next State) error {
	if err := validateState(next); err != nil {
		return wrapError(KindInternal, "", err, "state update rejected")
	}
	e.state = next
	e.save()
	return nil
}

// CanStartNewRound reports whether StartNewRound is currently legal.
func (e *Engine) CanStartNewRound() bool {
	return e.state.GamePhase == PhaseStart || e.state.GamePhase == PhaseRoundEnd
}

// InProgress reports whether an emperor is being guessed right now.
func (e *Engine) InProgress() bool {
	return e.state.GamePhase == PhasePlaying && e.current != nil
}

// CurrentEmperorID returns the identity of the emperor in play, or ""
// — the delete guard in the admin service keys off this.
func (e *Engine) CurrentEmperorID() string {
	if e.current == nil {
		return ""
	}
	return e.current.ID
}

// StartNewRound begins a fresh walk of MaxEmperorsPerRound emperors.
// Legal only from START or ROUND_END.
func (e *Engine) StartNewRound() (RoundInfo, error) {
	if !e.CanStartNewRound() {
		return RoundInfo{}, newError(KindIllegalState, ReasonRoundInProgress,
			"cannot start a round from phase %s", e.state.GamePhase)
	}

	next := e.state.Clone()
	next.CurrentEmperorIndex = 0
	next.UsedEmperorIDs = []string{}
	next.GamePhase = PhasePlaying
	if err := e.updateState(next); err != nil {
		return RoundInfo{}, err
	}

	e.ledger.StartRound()
	return e.startNextEmperor()
}

// startNextEmperor draws the next unused emperor and reveals its first
// hint, or completes the round when the walk is done.
func (e *Engine) startNextEmperor() (RoundInfo, error) {
	if e.state.CurrentEmperorIndex >= e.state.MaxEmperorsPerRound {
		return e.finishRound()
	}

	emperor, ok := e.store.RandomUnused(e.state.UsedEmperorIDs)
	if !ok {
		return RoundInfo{}, newError(KindInternal, ReasonInsufficientData,
			"no unused emperor available at position %d", e.state.CurrentEmperorIndex)
	}

	hints := e.store.GameHints(emperor.ID)
	if len(hints) < HintsPerGame {
		// A drawn record with a short hint list is a data integrity
		// bug, not something to skip silently.
		return RoundInfo{}, newError(KindCorruption, ReasonInsufficientHints,
			"emperor %s has %d playable hints, need %d", emperor.ID, len(hints), HintsPerGame)
	}

	e.current = &emperor
	e.hints = hints
	e.history.Clear()
	e.history.Record(hints[0], 0)

	next := e.state.Clone()
	cur := emperor.Clone()
	next.CurrentEmperor = &cur
	next.CurrentHintIndex = 0
	next.CurrentRoundScore = e.ledger.CurrentRoundScore()
	next.TotalScore = e.ledger.TotalScore()
	next.GamePhase = PhasePlaying
	next.WrongGuesses = []string{}
	next.UsedEmperorIDs = append(next.UsedEmperorIDs, emperor.ID)
	if err := e.updateState(next); err != nil {
		e.current = nil
		e.hints = nil
		return RoundInfo{}, err
	}

	e.logger.Info("emperor started",
		"id", emperor.ID,
		"position", e.state.CurrentEmperorIndex+1,
		"of", e.state.MaxEmperorsPerRound)

	return RoundInfo{
		Emperor:           emperor.Redacted(),
		Hint:              hints[0].Content,
		HintIndex:         0,
		TotalHints:        len(hints),
		CurrentRoundScore: e.ledger.CurrentRoundScore(),
		TotalScore:        e.ledger.TotalScore(),
		EmperorIndex:      e.state.CurrentEmperorIndex,
		MaxEmperors:       e.state.MaxEmperorsPerRound,
	}, nil
}

// finishRound moves to ROUND_END after the last emperor. Any score
// window still open is banked (a no-op in the normal flow, where
// SubmitGuess closes the window before advancing).
func (e *Engine) finishRound() (RoundInfo, error) {
	if e.ledger.RoundActive() {
		e.ledger.CommitRound()
	}

	next := e.state.Clone()
	next.CurrentEmperor = nil
	next.CurrentHintIndex = 0
	next.CurrentRoundScore = 0
	next.TotalScore = e.ledger.TotalScore()
	next.GamePhase = PhaseRoundEnd
	next.WrongGuesses = []string{}
	if err := e.updateState(next); err != nil {
		return RoundInfo{}, err
	}
	e.current = nil
	e.hints = nil

	e.logger.Info("round complete", "total", e.ledger.TotalScore())
	return RoundInfo{
		TotalScore:    e.ledger.TotalScore(),
		EmperorIndex:  e.state.CurrentEmperorIndex,
		MaxEmperors:   e.state.MaxEmperorsPerRound,
		RoundComplete: true,
	}, nil
}

// SubmitGuess scores one guess against the emperor in play.
//
// A correct guess banks the current score window immediately and either
// completes the round or rolls straight into the next emperor, whose
// first hint rides along in the result. A wrong guess costs 10 points
// and reveals the next hint; exhausting the hint list forfeits the
// emperor for zero and advances the same way a correct guess would.
func (e *Engine) SubmitGuess(guess string) (GuessResult, error) {
	if !e.InProgress() {
		return GuessResult{}, newError(KindIllegalState, ReasonNoActiveGame, "no emperor in play")
	}
	if SanitizeInput(guess) == "" {
		// Rejected at the boundary; an empty guess never costs points.
		return GuessResult{}, newError(KindValidation, ReasonEmptyGuess, "guess is empty")
	}

	if ValidateAnswer(guess, *e.current) {
		return e.handleCorrect()
	}
	return e.handleIncorrect(guess)
}

func (e *Engine) handleCorrect() (GuessResult, error) {
	completed := e.current.Clone()
	banked := e.ledger.CommitRound()

	next := e.state.Clone()
	next.CurrentEmperorIndex++
	next.WrongGuesses = []string{}
	next.TotalScore = e.ledger.TotalScore()

	if next.CurrentEmperorIndex >= next.MaxEmperorsPerRound {
		next.CurrentEmperor = nil
		next.CurrentHintIndex = 0
		next.CurrentRoundScore = 0
		next.GamePhase = PhaseRoundEnd
		if err := e.updateState(next); err != nil {
			return GuessResult{}, err
		}
		e.current = nil
		e.hints = nil
		e.logger.Info("round complete", "total", e.ledger.TotalScore())
		return GuessResult{
			IsCorrect:        true,
			ScoreChange:      banked,
			RoundComplete:    true,
			ShowSummary:      true,
			CompletedEmperor: &completed,
		}, nil
	}

	if err := e.updateState(next); err != nil {
		return GuessResult{}, err
	}

	e.ledger.StartRound()
	info, err := e.startNextEmperor()
	if err != nil {
		return GuessResult{}, err
	}
	return GuessResult{
		IsCorrect:        true,
		ScoreChange:      banked,
		NextHint:         info.Hint,
		ShowSummary:      true,
		CompletedEmperor: &completed,
		Next:             &info,
	}, nil
}

func (e *Engine) handleIncorrect(guess string) (GuessResult, error) {
	e.ledger.DeductPoints()

	if e.state.CurrentHintIndex < len(e.hints)-1 {
		next := e.state.Clone()
		next.CurrentHintIndex++
		next.CurrentRoundScore = e.ledger.CurrentRoundScore()
		next.WrongGuesses = append(next.WrongGuesses, guess)
		if err := e.updateState(next); err != nil {
			return GuessResult{}, err
		}
		hint := e.hints[e.state.CurrentHintIndex]
		e.history.Record(hint, e.state.CurrentHintIndex)
		return GuessResult{
			IsCorrect:   false,
			ScoreChange: -WrongAnswerPenalty,
			NextHint:    hint.Content,
		}, nil
	}

	// Hint list exhausted: this emperor is forfeited for zero.
	failed := e.current.Clone()
	e.ledger.FailRound()

	next := e.state.Clone()
	next.CurrentEmperorIndex++
	next.WrongGuesses = []string{}
	next.TotalScore = e.ledger.TotalScore()
	next.CurrentRoundScore = e.ledger.CurrentRoundScore()

	if next.CurrentEmperorIndex >= next.MaxEmperorsPerRound {
		next.CurrentEmperor = nil
		next.CurrentHintIndex = 0
		next.CurrentRoundScore = 0
		next.GamePhase = PhaseRoundEnd
		if err := e.updateState(next); err != nil {
			return GuessResult{}, err
		}
		e.current = nil
		e.hints = nil
		e.logger.Info("round complete", "total", e.ledger.TotalScore())
		return GuessResult{
			IsCorrect:     false,
			ScoreChange:   -WrongAnswerPenalty,
			RoundComplete: true,
			ShowSummary:   true,
			FailedEmperor: &failed,
		}, nil
	}

	if err := e.updateState(next); err != nil {
		return GuessResult{}, err
	}

	e.ledger.StartRound()
	info, err := e.startNextEmperor()
	if err != nil {
		return GuessResult{}, err
	}
	return GuessResult{
		IsCorrect:     false,
		ScoreChange:   -WrongAnswerPenalty,
		NextHint:      info.Hint,
		ShowSummary:   true,
		FailedEmperor: &failed,
		Next:          &info,
	}, nil
}

// CurrentHint returns the hint on display, or "" when nothing is in
// play.
func (e *Engine) CurrentHint() string {
	if e.current == nil || e.state.CurrentHintIndex >= len(e.hints) {
		return ""
	}
	return e.hints[e.state.CurrentHintIndex].Content
}

// Scores returns the live score pair.
func (e *Engine) Scores() (roundScore, totalScore int) {
	return e.ledger.CurrentRoundScore(), e.ledger.TotalScore()
}

// HintDifficultyInfo summarizes the in-play hint list by tier.
type HintDifficultyInfo struct {
	Hard    int        `json:"hard"`
	Medium  int        `json:"medium"`
	Easy    int        `json:"easy"`
	Current Difficulty `json:"current,omitempty"`
}

func (e *Engine) HintDifficultyInfo() HintDifficultyInfo {
	var info HintDifficultyInfo
	for _, h := range e.hints {
		switch h.Difficulty {
		case DifficultyHard:
			info.Hard++
		case DifficultyMedium:
			info.Medium++
		case DifficultyEasy:
			info.Easy++
		}
	}
	if e.state.CurrentHintIndex < len(e.hints) {
		info.Current = e.hints[e.state.CurrentHintIndex].Difficulty
	}
	return info
}

// DisplayedHints exposes the reveal history for review.
func (e *Engine) DisplayedHints() []DisplayedHint { return e.history.Entries() }

// CanReviewHints reports whether enough hints have been shown to
// review.
func (e *Engine) CanReviewHints() bool { return e.history.CanReview() }

// Snapshot returns a deep copy of the session state for rendering.
// While an emperor is being guessed its record is redacted: the name
// set and unrevealed hints never leave the engine mid-play.
func (e *Engine) Snapshot() State {
	snap := e.state.Clone()
	if snap.GamePhase == PhasePlaying && snap.CurrentEmperor != nil {
		redacted := snap.CurrentEmperor.Redacted()
		snap.CurrentEmperor = &redacted
	}
	return snap
}

// ResetGame clears the session completely — in-play emperor, ledger
// (total included) and hint history — back to START.
func (e *Engine) ResetGame() error {
	e.current = nil
	e.hints = nil
	e.ledger.Reset()
	e.history.Clear()
	return e.updateState(NewState())
}

// ReturnToMainMenu abandons the session; identical to ResetGame in
// this core.
func (e *Engine) ReturnToMainMenu() error {
	return e.ResetGame()
}
