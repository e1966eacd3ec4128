package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-scores/internal/render"
)

var ErrCellRequired = errors.New("cell is required")

func (that *Server) handleConnect(ctx context.Context, session GameSession, _ *Message) ([]render.Event, error) {
	that.logger.Debug("player connected", "method", "handleConnect")

	return session.Start(ctx), nil
}

func (that *Server) handleCellClick(ctx context.Context, session GameSession, msg *Message) ([]render.Event, error) {
	var payload RequestPayload

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.Cell == nil {
		return nil, ErrCellRequired
	}

	return session.ClickCell(ctx, *payload.Cell), nil
}

func (that *Server) handleReset(ctx context.Context, session GameSession, _ *Message) ([]render.Event, error) {
	return session.Reset(ctx), nil
}

func (that *Server) handleToggleMode(ctx context.Context, session GameSession, _ *Message) ([]render.Event, error) {
	return session.ToggleMode(ctx), nil
}

func (that *Server) handleResetScores(ctx context.Context, session GameSession, _ *Message) ([]render.Event, error) {
	return session.ResetScores(ctx), nil
}
