package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-scores/internal/entity"
	"github.com/rocketscienceinc/tictactoe-scores/internal/repository/storage"
)

const (
	SessionScoresKey = "scores"
	HighScoresKey    = "highScores"
)

var ErrScoresNotFound = errors.New("scores not found")

type ScoreRepository interface {
	Get(ctx context.Context, key string) (entity.Scores, error)
	Save(ctx context.Context, key string, scores entity.Scores) error
}

type dbScore struct {
	store storage.Store
}

func NewScoreRepository(store storage.Store) ScoreRepository {
	return &dbScore{
		store: store,
	}
}

func (that *dbScore) Save(ctx context.Context, key string, scores entity.Scores) error {
	scoresJSON, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("could not marshal scores: %w", err)
	}

	if err = that.store.Set(ctx, key, scoresJSON); err != nil {
		return fmt.Errorf("failed to set scores: %w", err)
	}

	return nil
}

// Get returns ErrScoresNotFound when nothing was stored under key. Fields missing from the
// stored record decode as zero.
func (that *dbScore) Get(ctx context.Context, key string) (entity.Scores, error) {
	response, err := that.store.Get(ctx, key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return entity.Scores{}, ErrScoresNotFound
	}

	if err != nil {
		return entity.Scores{}, fmt.Errorf("failed to get scores: %w", err)
	}

	var scores entity.Scores
	if err = json.Unmarshal(response, &scores); err != nil {
		return entity.Scores{}, fmt.Errorf("failed to unmarshal scores: %w", err)
	}

	return scores, nil
}
