package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-scores/internal/config"
	"github.com/rocketscienceinc/tictactoe-scores/internal/entity"
	"github.com/rocketscienceinc/tictactoe-scores/internal/repository"
	"github.com/rocketscienceinc/tictactoe-scores/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-scores/internal/repository/storage/sqlite"
	"github.com/rocketscienceinc/tictactoe-scores/internal/service"
	"github.com/rocketscienceinc/tictactoe-scores/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-scores/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-scores/transport/rest"
	"github.com/rocketscienceinc/tictactoe-scores/transport/tui"
	"github.com/rocketscienceinc/tictactoe-scores/transport/websocket"
)

const terminalProfile = "local"

var (
	ErrAddrNotFound    = errors.New("redis address string is empty")
	ErrUnknownDriver   = errors.New("unknown storage driver")
	ErrSQLitePathUnset = errors.New("sqlite storage path is empty")
)

// Games builds game sessions and score ledgers on top of one shared store.
type Games struct {
	logger     *slog.Logger
	store      storage.Store
	controller *tictactoe.GameController
}

func NewGames(logger *slog.Logger, store storage.Store) *Games {
	return &Games{
		logger:     logger,
		store:      store,
		controller: tictactoe.NewGameController(service.NewBotService()),
	}
}

// Ledger returns the score ledger of a profile. Profiles are isolated by key prefix.
func (that *Games) Ledger(profileID string) service.ScoreLedger {
	profileStore := storage.WithPrefix(that.store, "profile:"+profileID+":")
	return service.NewScoreLedger(that.logger, repository.NewScoreRepository(profileStore))
}

func (that *Games) NewSession(profileID string) *usecase.GameSession {
	return usecase.NewGameSession(that.logger.With("profileID", profileID), that.controller, that.Ledger(profileID))
}

// RunApp - runs the HTTP and WebSocket servers until a signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signalContext(log)
	defer cancel()

	store, err := openStorage(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = store.Close(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	games := NewGames(logger, store)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		router := rest.NewRouter(logger, func(profileID string) rest.ScoreLoader {
			return games.Ledger(profileID)
		})
		if httpErr := rest.Start(ctx, conf.HTTPPort, router); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, func(profileID string) websocket.GameSession {
			return games.NewSession(profileID)
		})
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// RunTerminal - plays in the terminal with scores kept in the configured storage.
func RunTerminal(logger *slog.Logger, conf *config.Config, mode entity.GameMode) error {
	log := logger.With("component", "app")

	ctx, cancel := signalContext(log)
	defer cancel()

	store, err := openStorage(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = store.Close(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	session := NewGames(logger, store).NewSession(terminalProfile)
	if mode == entity.SinglePlayer {
		session.ToggleMode(ctx)
	}

	return tui.Run(ctx, session)
}

func signalContext(log *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigs)
	}()

	return ctx, cancel
}

func openStorage(ctx context.Context, conf *config.Config) (storage.Store, error) {
	switch conf.Storage.Driver {
	case config.DriverRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == ":" {
			return nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return &closingStore{Store: storage.WithPrefix(redisStorage, conf.Redis.Prefix), closer: redisStorage}, nil
	case config.DriverSQLite:
		if conf.SQLiteStoragePath == "" {
			return nil, ErrSQLitePathUnset
		}

		sqliteStorage, err := sqlite.New(conf.SQLiteStoragePath)
		if err != nil {
			return nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return sqliteStorage, nil
	case config.DriverMemory:
		return storage.NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, conf.Storage.Driver)
	}
}

// closingStore closes the underlying connection of a prefixed store.
type closingStore struct {
	storage.Store
	closer interface{ Close() error }
}

func (that *closingStore) Close() error {
	return that.closer.Close()
}
