package admin

import (
	"log/slog"

	"github.com/dynastygames/emperorquiz/internal/game"
)

// CurrentGame tells the editing service which record is in play so the
// delete guard can refuse to pull it out from under the player.
type CurrentGame interface {
	CurrentEmperorID() string
}

// Service is the admin editing surface over the emperor store. Every
// mutating call requires a live session token.
type Service struct {
	store  *game.EmperorStore
	auth   *Authenticator
	in     CurrentGame
	logger *slog.Logger
}

func NewService(store *game.EmperorStore, auth *Authenticator, in CurrentGame, logger *slog.Logger) *Service {
	return &Service{store: store, auth: auth, in: in, logger: logger}
}

func (s *Service) authorize(token string) error {
	if !s.auth.Check(token) {
		return game.NewError(game.KindValidation, game.ReasonUnauthorized, "admin session missing or expired")
	}
	return nil
}

func (s *Service) Summaries(token string) ([]game.Summary, error) {
	if err := s.authorize(token); err != nil {
		return nil, err
	}
	return s.store.Summaries(), nil
}

func (s *Service) Get(token, id string) (game.Emperor, error) {
	if err := s.authorize(token); err != nil {
		return game.Emperor{}, err
	}
	e, ok := s.store.GetByID(id)
	if !ok {
		return game.Emperor{}, game.NewError(game.KindValidation, game.ReasonEmperorNotFound, "emperor %s does not exist", id)
	}
	return e, nil
}

// Create inserts a new record. Hint orders are renumbered per tier so
// stored orders stay contiguous no matter what the editor sent.
func (s *Service) Create(token string, e game.Emperor) error {
	if err := s.authorize(token); err != nil {
		return err
	}
	e.Hints = game.NormalizeHintOrders(e.Hints)
	return s.store.Add(e)
}

// Replace swaps a record wholesale; partial edits are not supported.
func (s *Service) Replace(token string, e game.Emperor) error {
	if err := s.authorize(token); err != nil {
		return err
	}
	e.Hints = game.NormalizeHintOrders(e.Hints)
	return s.store.Update(e)
}

// CanDelete runs the delete eligibility check without mutating.
func (s *Service) CanDelete(token, id string) error {
	if err := s.authorize(token); err != nil {
		return err
	}
	return s.store.CanDelete(id, s.in.CurrentEmperorID())
}

func (s *Service) Delete(token, id string) error {
	if err := s.authorize(token); err != nil {
		return err
	}
	return s.store.Delete(id, s.in.CurrentEmperorID())
}

func (s *Service) Stats(token string) (game.StoreStats, error) {
	if err := s.authorize(token); err != nil {
		return game.StoreStats{}, err
	}
	return s.store.Stats(), nil
}
