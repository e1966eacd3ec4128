package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-scores/internal/entity"
	"github.com/rocketscienceinc/tictactoe-scores/internal/pkg"
)

const sessionCookie = "user_session"

// ScoreLoader reads the scores of one profile.
type ScoreLoader interface {
	LoadOnStartup(ctx context.Context) entity.ScoreBoard
}

// ScoresProvider returns the ledger of a score profile.
type ScoresProvider func(profileID string) ScoreLoader

type ScoresHandler interface {
	GetScores(w http.ResponseWriter, r *http.Request)
}

type scoresHandler struct {
	logger *slog.Logger
	scores ScoresProvider
}

func NewScoresHandler(logger *slog.Logger, scores ScoresProvider) ScoresHandler {
	return &scoresHandler{
		logger: logger,
		scores: scores,
	}
}

// GetScores answers with the session and high scores of the profile in the session cookie.
func (that *scoresHandler) GetScores(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil || !pkg.IsValidSessionID(cookie.Value) {
		http.Error(w, "Session cookie not found", http.StatusBadRequest)
		return
	}

	board := that.scores(cookie.Value).LoadOnStartup(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(board); err != nil {
		that.logger.Error("failed to encode scores", "error", err)
	}
}
