package service

import (
	"context"
	"time"

	"github.com/wricardo/solitaire-engine/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Drag(ctx context.Context, sessionID string, cardID int, target string) (*MoveResult, error)
	DoubleClick(ctx context.Context, sessionID string, cardID int) (*MoveResult, error)
	Undo(ctx context.Context, sessionID string) (*MoveResult, error)
	Redo(ctx context.Context, sessionID string) (*MoveResult, error)
	Autocomplete(ctx context.Context, sessionID string, onlySafe bool) (*MoveResult, error)
	AutocompleteStep(ctx context.Context, sessionID string, onlySafe bool) (*MoveResult, error)
	ReplayStep(ctx context.Context, sessionID string) (*MoveResult, error)
	NewGame(ctx context.Context, sessionID string, seed *int64) (*MoveResult, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id, configID string, config *engine.GameConfig) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// Session represents an active game session. Events buffers the engine's
// notifications until the next service call drains them.
type Session struct {
	ID             string
	ConfigID       string
	Engine         *engine.GameEngine
	Events         *engine.EventLog
	Config         *engine.GameConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
