package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-scores/internal/entity"
	"github.com/rocketscienceinc/tictactoe-scores/internal/pkg"
)

type fixedLoader entity.ScoreBoard

func (that fixedLoader) LoadOnStartup(context.Context) entity.ScoreBoard {
	return entity.ScoreBoard(that)
}

func newRouter(profiles map[string]entity.ScoreBoard) http.Handler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewRouter(logger, func(profileID string) ScoreLoader {
		return fixedLoader(profiles[profileID])
	})
}

func TestPing(t *testing.T) {
	recorder := httptest.NewRecorder()

	newRouter(nil).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "pong", recorder.Body.String())
}

func TestGetScores(t *testing.T) {
	id := pkg.GenerateNewSessionID()
	board := entity.ScoreBoard{
		Session: entity.Scores{X: 1, O: 2},
		High:    entity.Scores{X: 3, O: 2, Draw: 4},
	}
	router := newRouter(map[string]entity.ScoreBoard{id: board})

	t.Run("Scores of the cookie profile", func(t *testing.T) {
		// Given: a request carrying a session cookie
		req := httptest.NewRequest(http.MethodGet, "/scores", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: id})
		recorder := httptest.NewRecorder()

		// When: the scores are requested
		router.ServeHTTP(recorder, req)

		// Then: both records are returned under their storage names
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
		assert.JSONEq(t,
			`{"scores":{"X":1,"O":2,"draw":0},"highScores":{"X":3,"O":2,"draw":4}}`,
			recorder.Body.String(),
		)

		var got entity.ScoreBoard
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
		assert.Equal(t, board, got)
	})

	t.Run("Error without cookie", func(t *testing.T) {
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/scores", nil))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Error on invalid cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/scores", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "not-a-session"})
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Unknown route", func(t *testing.T) {
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/scores", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
	})
}

func TestRecoverPanic(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	handler := recoverPanic(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "close", recorder.Header().Get("Connection"))
}
