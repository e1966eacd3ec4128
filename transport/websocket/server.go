package websocket

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-scores/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-scores/internal/render"
)

const sessionCookie = "user_session"

var ErrUnknownAction = errors.New("unknown action")

// GameSession is the part of usecase.GameSession driven by a websocket client.
type GameSession interface {
	Start(ctx context.Context) []render.Event
	ClickCell(ctx context.Context, cell int) []render.Event
	Reset(ctx context.Context) []render.Event
	ToggleMode(ctx context.Context) []render.Event
	ResetScores(ctx context.Context) []render.Event
}

// SessionFactory opens a game session bound to the score profile of a player.
type SessionFactory func(profileID string) GameSession

type handlerFunc func(ctx context.Context, session GameSession, message *Message) ([]render.Event, error)

type Server struct {
	logger     *slog.Logger
	newSession SessionFactory

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, newSession SessionFactory) *Server {
	server := &Server{
		logger:     logger.With("component", "websocket"),
		newSession: newSession,

		handlers: make(map[string]handlerFunc),
	}

	server.handlers["connect"] = server.handleConnect
	server.handlers["cell:click"] = server.handleCellClick
	server.handlers["game:reset"] = server.handleReset
	server.handlers["mode:toggle"] = server.handleToggleMode
	server.handlers["scores:reset"] = server.handleResetScores

	return server
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
		BaseContext: func(_ net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		if err := srv.Close(); err != nil {
			that.logger.Error("failed to close server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	if req.Header.Get("Upgrade") != "websocket" {
		http.Error(writer, "not a websocket upgrade", http.StatusBadRequest)
		return
	}

	key := req.Header.Get("Sec-WebSocket-Key")
	if key == "" {
		http.Error(writer, "missing Sec-WebSocket-Key", http.StatusBadRequest)
		return
	}

	profileID := that.setSessionCookie(writer, req)
	acceptKey := pkg.GenerateAcceptKey(key)

	writer.Header().Set("Upgrade", "websocket")
	writer.Header().Set("Connection", "Upgrade")
	writer.Header().Set("Sec-WebSocket-Accept", acceptKey)
	writer.WriteHeader(http.StatusSwitchingProtocols)

	hijacker, ok := writer.(http.Hijacker)
	if !ok {
		log.Error("web server does not support hijacking", "error", http.StatusText(http.StatusInternalServerError))
		return
	}

	conn, bufrw, err := hijacker.Hijack()
	if err != nil {
		log.Error("failed to hijack connection", "error", err)
		return
	}

	defer conn.Close()

	if err = conn.SetDeadline(time.Time{}); err != nil {
		log.Error("failed to clear connection deadline", "error", err)
		return
	}

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	log = log.With("profileID", profileID)
	log.Info("WebSocket connection established")

	session := that.newSession(profileID)

	if err = that.handleMessages(ctx, session, bufrw); err != nil && !errors.Is(err, io.EOF) {
		log.Error("error handling messages", "error", err)
	}

	log.Info("WebSocket connection closed")
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, session GameSession, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleMessages")

	for {
		var response *Message

		reqBody, err := that.readRequest(bufrw)
		switch {
		case errors.Is(err, errConnectionClosed) || ctx.Err() != nil:
			return nil
		case errors.Is(err, errBinaryMessage):
			log.Debug("binary message rejected")
			response = errorResponse("", "binary messages are not supported")
		case err != nil:
			return err
		default:
			if response, err = that.process(ctx, session, reqBody); err != nil {
				log.Error("error processing message", "error", err)
			}
		}

		if response == nil {
			continue
		}

		if err = that.sendMessage(bufrw, *response); err != nil {
			return fmt.Errorf("failed to send response: %w", err)
		}
	}
}

// process dispatches one client message and builds the reply. Malformed messages get an error reply.
func (that *Server) process(ctx context.Context, session GameSession, reqBody []byte) (*Message, error) {
	var message Message
	if err := json.Unmarshal(reqBody, &message); err != nil {
		return errorResponse("", "malformed message"), fmt.Errorf("failed to unmarshal message: %w", err)
	}

	handler, ok := that.handlers[message.Action]
	if !ok {
		return errorResponse(message.Action, "unknown action"), fmt.Errorf("%w: %s", ErrUnknownAction, message.Action)
	}

	events, err := handler(ctx, session, &message)
	if err != nil {
		return errorResponse(message.Action, "invalid payload"), err
	}

	return eventsResponse(message.Action, events), nil
}

// setSessionCookie - returns the player's profile id, issuing a new cookie when it is missing.
func (that *Server) setSessionCookie(writer http.ResponseWriter, req *http.Request) string {
	log := that.logger.With("method", "setSessionCookie")

	cookie, err := req.Cookie(sessionCookie)
	if err == nil && pkg.IsValidSessionID(cookie.Value) {
		log.Debug("session cookie found", "cookie", cookie.Value)
		return cookie.Value
	}

	cookie = &http.Cookie{
		Name:     sessionCookie,
		Value:    pkg.GenerateNewSessionID(),
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		Path:     "/",
		HttpOnly: true,
	}
	http.SetCookie(writer, cookie)
	log.Info("session cookie not found, new one created", "cookie", cookie.Value)

	return cookie.Value
}
