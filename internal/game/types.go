// Package game implements the emperor guessing game: the emperor
// record store, the score ledger, the hint reveal history, and the
// engine that sequences rounds across all three. Everything here is
// pure state plus an injected storage boundary; rendering and input
// belong to the caller.
package game

import "time"

type Difficulty string

const (
	DifficultyHard   Difficulty = "hard"
	DifficultyMedium Difficulty = "medium"
	DifficultyEasy   Difficulty = "easy"
)

// The fixed reveal contract: hints are played hardest first, truncated
// to 3 hard, 3 medium, 4 easy regardless of how many the record
// actually holds.
const (
	MaxHardHints   = 3
	MaxMediumHints = 3
	MaxEasyHints   = 4
	HintsPerGame   = MaxHardHints + MaxMediumHints + MaxEasyHints
)

type Phase string

const (
	PhaseStart    Phase = "start"
	PhasePlaying  Phase = "playing"
	PhaseRoundEnd Phase = "roundEnd"
)

// Hint is one clue for an emperor. Hints are never mutated in place;
// they are replaced wholesale with their owning record.
type Hint struct {
	ID         string     `json:"id"`
	Content    string     `json:"content"`
	Difficulty Difficulty `json:"difficulty"`
	Order      int        `json:"order"`
}

// Emperor is one guessable record. Name, TempleName, PosthumousName
// and every ReignNames entry are all accepted as correct answers.
type Emperor struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	TempleName     string   `json:"templeName"`
	PosthumousName string   `json:"posthumousName"`
	ReignNames     []string `json:"reignNames"`
	Dynasty        string   `json:"dynasty"`
	ReignStart     int      `json:"reignStart"`
	ReignEnd       int      `json:"reignEnd"`
	Hints          []Hint   `json:"hints"`
}

// Clone returns a deep copy. Every value handed out by the store or
// the engine is a clone, so callers can mutate freely without touching
// shared state.
func (e Emperor) Clone() Emperor {
	out := e
	out.ReignNames = append([]string(nil), e.ReignNames...)
	out.Hints = append([]Hint(nil), e.Hints...)
	return out
}

// Redacted strips everything a player could use to cheat while the
// record is in play: the full name set and the hint list.
func (e Emperor) Redacted() Emperor {
	return Emperor{
		ID:         e.ID,
		Dynasty:    e.Dynasty,
		ReignStart: e.ReignStart,
		ReignEnd:   e.ReignEnd,
	}
}

// Summary is the player-safe listing row used by the admin screens.
type Summary struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	TempleName     string   `json:"templeName"`
	PosthumousName string   `json:"posthumousName"`
	ReignNames     []string `json:"reignNames"`
	Dynasty        string   `json:"dynasty"`
	HintCount      int      `json:"hintCount"`
}

// State is the engine's session snapshot, persisted on every mutation
// and restored on start so a restart never loses round progress.
type State struct {
	CurrentEmperor      *Emperor `json:"currentEmperor"`
	CurrentHintIndex    int      `json:"currentHintIndex"`
	CurrentRoundScore   int      `json:"currentRoundScore"`
	TotalScore          int      `json:"totalScore"`
	GamePhase           Phase    `json:"gamePhase"`
	WrongGuesses        []string `json:"wrongGuesses"`
	CurrentEmperorIndex int      `json:"currentEmperorIndex"`
	UsedEmperorIDs      []string `json:"usedEmperorIds"`
	MaxEmperorsPerRound int      `json:"maxEmperorsPerRound"`
}

// DefaultMaxEmperorsPerRound is how many emperors one round walks
// through before it completes.
const DefaultMaxEmperorsPerRound = 10

func NewState() State {
	return State{
		CurrentHintIndex:    0,
		CurrentRoundScore:   InitialRoundScore,
		TotalScore:          0,
		GamePhase:           PhaseStart,
		WrongGuesses:        []string{},
		CurrentEmperorIndex: 0,
		UsedEmperorIDs:      []string{},
		MaxEmperorsPerRound: DefaultMaxEmperorsPerRound,
	}
}

func (s State) Clone() State {
	out := s
	if s.CurrentEmperor != nil {
		e := s.CurrentEmperor.Clone()
		out.CurrentEmperor = &e
	}
	out.WrongGuesses = append([]string(nil), s.WrongGuesses...)
	out.UsedEmperorIDs = append([]string(nil), s.UsedEmperorIDs...)
	return out
}

// RoundInfo describes a freshly started emperor: its first hint and the
// score and progress counters the caller renders.
type RoundInfo struct {
	Emperor           Emperor `json:"emperor"`
	Hint              string  `json:"hint"`
	HintIndex         int     `json:"hintIndex"`
	TotalHints        int     `json:"totalHints"`
	CurrentRoundScore int     `json:"currentRoundScore"`
	TotalScore        int     `json:"totalScore"`
	EmperorIndex      int     `json:"emperorIndex"`
	MaxEmperors       int     `json:"maxEmperors"`
	RoundComplete     bool    `json:"roundComplete"`
}

// GuessResult is what SubmitGuess hands back to the view layer.
// Exactly one of CompletedEmperor/FailedEmperor is set when an
// emperor's turn ends; Next carries the following emperor's opening
// hint so the caller can render the transition in one step.
type GuessResult struct {
	IsCorrect        bool       `json:"isCorrect"`
	ScoreChange      int        `json:"scoreChange"`
	NextHint         string     `json:"nextHint,omitempty"`
	RoundComplete    bool       `json:"roundComplete"`
	ShowSummary      bool       `json:"showSummary"`
	CompletedEmperor *Emperor   `json:"completedEmperor,omitempty"`
	FailedEmperor    *Emperor   `json:"failedEmperor,omitempty"`
	Next             *RoundInfo `json:"next,omitempty"`
}

// DisplayedHint pairs a revealed hint with the 1-based order it was
// shown in.
type DisplayedHint struct {
	Hint         Hint      `json:"hint"`
	DisplayIndex int       `json:"displayIndex"`
	Timestamp    time.Time `json:"timestamp"`
}
