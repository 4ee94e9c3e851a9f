package service

import (
	"time"

	"github.com/wricardo/solitaire-engine/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// CreateSessionRequest selects the variant for a new session. Seed and
// Difficulty override the variant's values when set.
type CreateSessionRequest struct {
	ConfigID   string   `json:"config_id"`
	Seed       *int64   `json:"seed,omitempty"`
	Difficulty *float64 `json:"difficulty,omitempty"`
}

// MoveResult contains the result of a mutating call. A rejected move is
// Success false with no error.
type MoveResult struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	GameState *engine.GameState `json:"game_state"`
	Events    []engine.Event    `json:"events,omitempty"`
	Moves     int               `json:"moves,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveRecord `json:"moves"`
	TotalMoves  int                 `json:"total_moves"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string         `json:"filename,omitempty"`
	ConfigID    string         `json:"config_id"` // The identifier to use for session creation
	Name        string         `json:"name"`      // Display name
	Description string         `json:"description"`
	Variant     engine.Variant `json:"variant"`
	Suits       int            `json:"suits"`
	Stacks      int            `json:"stacks"`
	FreeCells   int            `json:"free_cells"`
	Difficulty  float64        `json:"difficulty"`
	Builtin     bool           `json:"builtin,omitempty"`
}
