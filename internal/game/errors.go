package game

import (
	"fmt"
	"log/slog"
)

// Kind classifies recoverable failures so callers can pick a recovery
// strategy without string matching.
type Kind string

const (
	KindStorage      Kind = "storage_unavailable"
	KindCorruption   Kind = "data_corruption"
	KindValidation   Kind = "validation_failure"
	KindIllegalState Kind = "illegal_state_transition"
	KindInternal     Kind = "internal"
)

// Reason codes carried by rejected operations.
const (
	ReasonEmperorNotFound   = "emperor_not_found"
	ReasonEmperorInUse      = "emperor_in_use"
	ReasonInsufficientData  = "insufficient_data"
	ReasonDuplicateID       = "duplicate_id"
	ReasonNoActiveGame      = "no_active_game"
	ReasonRoundInProgress   = "round_in_progress"
	ReasonNotInitialized    = "not_initialized"
	ReasonInsufficientHints = "insufficient_hints"
	ReasonEmptyGuess        = "empty_guess"
	ReasonUnauthorized      = "unauthorized"
	ReasonStorageSaveFailed = "storage_save_failed"
)

type Error struct {
	Kind   Kind
	Reason string
	msg    string
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Reason, e.msg, e.cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Reason, e.msg)
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches on Kind and Reason so sentinel-style comparisons work:
// errors.Is(err, &Error{Kind: KindValidation, Reason: ReasonDuplicateID}).
// An empty Reason on the target matches any reason of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != "" && t.Kind != e.Kind {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

// NewError builds a classified error with a formatted message.
func NewError(kind Kind, reason, format string, args ...any) *Error {
	return &Error{Kind: kind, Reason: reason, msg: fmt.Sprintf(format, args...)}
}

func newError(kind Kind, reason, format string, args ...any) *Error {
	return NewError(kind, reason, format, args...)
}

func wrapError(kind Kind, reason string, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Reason: reason, msg: fmt.Sprintf(format, args...), cause: cause}
}

// Notifier receives failures that should reach the player, decoupling
// detection from presentation. Implementations must not call back into
// the component that notified them.
type Notifier interface {
	Notify(err *Error)
}

// LogNotifier reports errors through a slog.Logger. It is the default
// when no notifier is injected.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(err *Error) {
	switch err.Kind {
	case KindCorruption, KindInternal:
		n.Logger.Error("game error", "kind", err.Kind, "reason", err.Reason, "err", err)
	default:
		n.Logger.Warn("game error", "kind", err.Kind, "reason", err.Reason, "err", err)
	}
}
