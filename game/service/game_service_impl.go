package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"

	"github.com/wricardo/solitaire-engine/game/engine"
)

// ErrConfigNotFound is returned when a variant name matches no file or
// preset. ConfigManager implementations wrap it.
var ErrConfigNotFound = errors.New("configuration not found")

// ErrSessionNotFound is returned for an unknown session id.
// SessionManager implementations return it.
var ErrSessionNotFound = errors.New("session not found")

// gameServiceImpl implements the GameService interface. mu serializes all
// engine access; engines are not safe for concurrent use.
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	logger   *zap.Logger
	newSeed  func() int64
	mu       sync.RWMutex
}

// Option customizes the service
type Option func(*gameServiceImpl)

// WithSeedSource replaces the source of seeds for deals that do not name
// one
func WithSeedSource(next func() int64) Option {
	return func(s *gameServiceImpl) {
		s.newSeed = next
	}
}

// NewGameService creates a new game service instance. A nil logger
// discards output.
func NewGameService(sessions SessionManager, configs ConfigManager, logger *zap.Logger, opts ...Option) GameService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		logger:   logger.Named("service"),
		newSeed:  func() int64 { return rand.Int64N(1 << 31) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSession deals a new game. The variant's seed is used when it has
// one and the request does not override it; otherwise a fresh seed is
// drawn.
func (s *gameServiceImpl) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var base *engine.GameConfig
	configID := req.ConfigID
	if configID != "" {
		loaded, err := s.configs.LoadConfig(configID)
		if err != nil {
			return nil, s.configError(configID, err)
		}
		base = loaded
	} else {
		base = s.configs.GetDefault()
		configID = base.Name
	}

	// The manager hands out cached values
	config := *base
	switch {
	case req.Seed != nil:
		config.Seed = *req.Seed
	case config.Seed == 0:
		config.Seed = s.newSeed()
	}
	if req.Difficulty != nil {
		config.Difficulty = *req.Difficulty
	}

	session, err := s.sessions.Create("", configID, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return sessionInfo(session), nil
}

// configError lists the available variants when name is unknown
func (s *gameServiceImpl) configError(name string, err error) error {
	if !errors.Is(err, ErrConfigNotFound) {
		return fmt.Errorf("failed to load config %s: %w", name, err)
	}
	available, listErr := s.configs.ListConfigs()
	if listErr == nil && len(available) > 0 {
		ids := make([]string, 0, len(available))
		for _, cfg := range available {
			ids = append(ids, cfg.ConfigID)
		}
		return fmt.Errorf("%w: '%s'. Available configs: %v", ErrConfigNotFound, name, ids)
	}
	return fmt.Errorf("%w: '%s'. Use /api/configs to list available configurations", ErrConfigNotFound, name)
}

func sessionInfo(session *Session) *SessionInfo {
	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     session.ConfigID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		GameConfig:     session.Engine.GetConfig(),
	}
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// mutate runs fn against the session's engine under the write lock and
// packages the outcome with the drained notifications
func (s *gameServiceImpl) mutate(sessionID string, fn func(eng *engine.GameEngine) (*MoveResult, error)) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result, err := fn(sess.Engine)
	// Drop whatever a failed call queued so it does not leak into the next
	events := sess.Events.Drain()
	if err != nil {
		return nil, err
	}
	result.GameState = sess.Engine.GetState()
	result.Events = events
	return result, nil
}

// Drag moves card cardID, with everything above it, onto the deck named
// by target ("play:3", "free:0", "goal:1")
func (s *gameServiceImpl) Drag(ctx context.Context, sessionID string, cardID int, target string) (*MoveResult, error) {
	return s.mutate(sessionID, func(eng *engine.GameEngine) (*MoveResult, error) {
		card, err := eng.Card(cardID)
		if err != nil {
			return nil, err
		}
		ref, err := engine.ParseDeckRef(target)
		if err != nil {
			return nil, err
		}
		deck, err := eng.Deck(ref)
		if err != nil {
			return nil, err
		}

		from := card.Deck().Ref().String()
		accepted := eng.CardDrag(card, deck)
		s.logger.Info("drag",
			zap.String("session", sessionID),
			zap.String("card", card.Code()),
			zap.String("from", from),
			zap.String("target", ref.String()),
			zap.Bool("accepted", accepted))

		if !accepted {
			return &MoveResult{Message: fmt.Sprintf("Cannot move %s to %s", card.Code(), ref)}, nil
		}
		return &MoveResult{Success: true, Message: fmt.Sprintf("Moved %s to %s", card.Code(), ref)}, nil
	})
}

// DoubleClick sends card cardID to the best place it can go
func (s *gameServiceImpl) DoubleClick(ctx context.Context, sessionID string, cardID int) (*MoveResult, error) {
	return s.mutate(sessionID, func(eng *engine.GameEngine) (*MoveResult, error) {
		card, err := eng.Card(cardID)
		if err != nil {
			return nil, err
		}

		accepted := eng.OnDoubleClick(card)
		s.logger.Info("double click",
			zap.String("session", sessionID),
			zap.String("card", card.Code()),
			zap.Bool("accepted", accepted))

		if !accepted {
			return &MoveResult{Message: fmt.Sprintf("No move for %s", card.Code())}, nil
		}
		return &MoveResult{Success: true, Message: fmt.Sprintf("Moved %s to %s", card.Code(), card.Deck().Ref())}, nil
	})
}

// Undo reverts the last move
func (s *gameServiceImpl) Undo(ctx context.Context, sessionID string) (*MoveResult, error) {
	return s.mutate(sessionID, func(eng *engine.GameEngine) (*MoveResult, error) {
		if !eng.Undo() {
			return &MoveResult{Message: "Nothing to undo"}, nil
		}
		return &MoveResult{Success: true, Message: "Move undone"}, nil
	})
}

// Redo re-executes the last undone move
func (s *gameServiceImpl) Redo(ctx context.Context, sessionID string) (*MoveResult, error) {
	return s.mutate(sessionID, func(eng *engine.GameEngine) (*MoveResult, error) {
		if !eng.Redo() {
			return &MoveResult{Message: "Nothing to redo"}, nil
		}
		return &MoveResult{Success: true, Message: "Move redone"}, nil
	})
}

// Autocomplete sends cards to the goals until nothing more moves
func (s *gameServiceImpl) Autocomplete(ctx context.Context, sessionID string, onlySafe bool) (*MoveResult, error) {
	return s.mutate(sessionID, func(eng *engine.GameEngine) (*MoveResult, error) {
		n := eng.Autocomplete(onlySafe)
		s.logger.Info("autocomplete",
			zap.String("session", sessionID),
			zap.Bool("only_safe", onlySafe),
			zap.Int("moves", n),
			zap.Bool("won", eng.HasWon()))
		return &MoveResult{
			Success: n > 0,
			Message: fmt.Sprintf("%d cards sent to the foundations", n),
			Moves:   n,
		}, nil
	})
}

// AutocompleteStep runs a single autocomplete pass so a client can pace
// the animation
func (s *gameServiceImpl) AutocompleteStep(ctx context.Context, sessionID string, onlySafe bool) (*MoveResult, error) {
	return s.mutate(sessionID, func(eng *engine.GameEngine) (*MoveResult, error) {
		before := eng.MovesMade()
		if !eng.AdvanceAutocomplete(onlySafe) {
			return &MoveResult{Message: "Nothing to send to the foundations"}, nil
		}
		n := eng.MovesMade() - before
		return &MoveResult{Success: true, Message: fmt.Sprintf("%d cards sent to the foundations", n), Moves: n}, nil
	})
}

// ReplayStep advances the win replay by one move
func (s *gameServiceImpl) ReplayStep(ctx context.Context, sessionID string) (*MoveResult, error) {
	return s.mutate(sessionID, func(eng *engine.GameEngine) (*MoveResult, error) {
		if !eng.ReplayStep() {
			return &MoveResult{Message: "Nothing to replay"}, nil
		}
		return &MoveResult{Success: true, Message: "Replaying"}, nil
	})
}

// NewGame re-deals the session's variant. A nil seed draws a fresh one.
func (s *gameServiceImpl) NewGame(ctx context.Context, sessionID string, seed *int64) (*MoveResult, error) {
	return s.mutate(sessionID, func(eng *engine.GameEngine) (*MoveResult, error) {
		next := s.newSeed()
		if seed != nil {
			next = *seed
		}
		if err := eng.Restart(next); err != nil {
			return nil, err
		}
		s.logger.Info("new game",
			zap.String("session", sessionID),
			zap.String("config", engine.ShortName(eng.GetConfig())),
			zap.Int64("seed", next))
		return &MoveResult{Success: true, Message: fmt.Sprintf("New game, seed %d", next)}, nil
	})
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState(), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	// Calculate pagination
	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	moves := []engine.MoveRecord{}
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = history[start:end]
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}
