package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-scores/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-scores/internal/entity"
	"github.com/rocketscienceinc/tictactoe-scores/internal/repository"
)

type ScoreLedger interface {
	LoadOnStartup(ctx context.Context) entity.ScoreBoard
	RecordOutcome(ctx context.Context, outcome entity.Outcome) (entity.ScoreBoard, error)
	ResetSession(ctx context.Context) (entity.ScoreBoard, error)
}

type scoreRepo interface {
	Get(ctx context.Context, key string) (entity.Scores, error)
	Save(ctx context.Context, key string, scores entity.Scores) error
}

type scoreLedger struct {
	logger    *slog.Logger
	scoreRepo scoreRepo
}

func NewScoreLedger(logger *slog.Logger, scoreRepo scoreRepo) ScoreLedger {
	return &scoreLedger{
		logger:    logger.With("component", "scoreLedger"),
		scoreRepo: scoreRepo,
	}
}

// LoadOnStartup never fails: absent or unreadable records count as zero.
func (that *scoreLedger) LoadOnStartup(ctx context.Context) entity.ScoreBoard {
	session, _ := that.load(ctx, repository.SessionScoresKey)
	high, _ := that.load(ctx, repository.HighScoresKey)

	return entity.ScoreBoard{
		Session: session,
		High:    high,
	}
}

// RecordOutcome bumps the session counter for outcome and lifts the matching high score to it.
// The updated board is returned even when persisting it failed.
func (that *scoreLedger) RecordOutcome(ctx context.Context, outcome entity.Outcome) (entity.ScoreBoard, error) {
	if !outcome.IsValid() {
		return entity.ScoreBoard{}, fmt.Errorf("%w: %q", apperror.ErrUnknownOutcome, outcome)
	}

	session, _ := that.load(ctx, repository.SessionScoresKey)
	high, highLoaded := that.load(ctx, repository.HighScoresKey)

	board := entity.ScoreBoard{Session: session, High: high}

	count := board.Session.Get(outcome) + 1
	board.Session.Set(outcome, count)
	board.High.Set(outcome, max(board.High.Get(outcome), count))

	if err := that.scoreRepo.Save(ctx, repository.SessionScoresKey, board.Session); err != nil {
		return board, fmt.Errorf("failed to save session scores: %w", err)
	}

	// an unreadable high score record is left alone so it can never go down
	if !highLoaded {
		return board, nil
	}

	if err := that.scoreRepo.Save(ctx, repository.HighScoresKey, board.High); err != nil {
		return board, fmt.Errorf("failed to save high scores: %w", err)
	}

	return board, nil
}

// ResetSession zeroes the session counters. High scores are kept.
func (that *scoreLedger) ResetSession(ctx context.Context) (entity.ScoreBoard, error) {
	board := that.LoadOnStartup(ctx)
	board.Session = entity.Scores{}

	if err := that.scoreRepo.Save(ctx, repository.SessionScoresKey, board.Session); err != nil {
		return board, fmt.Errorf("failed to reset session scores: %w", err)
	}

	return board, nil
}

// load reports false only when a stored record exists but could not be read.
func (that *scoreLedger) load(ctx context.Context, key string) (entity.Scores, bool) {
	log := that.logger.With("method", "load", "key", key)

	scores, err := that.scoreRepo.Get(ctx, key)
	if errors.Is(err, repository.ErrScoresNotFound) {
		return entity.Scores{}, true
	}

	if err != nil {
		log.Warn("failed to load scores, counting from zero", "error", err)
		return entity.Scores{}, false
	}

	return scores, true
}
