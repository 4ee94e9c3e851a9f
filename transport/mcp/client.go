package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/solitaire-engine/game/engine"
	"github.com/wricardo/solitaire-engine/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Solitaire Engine",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Solitaire Engine - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Build every foundation (goal) from Ace to King in a single suit.

AVAILABLE TOOLS:
- create_session: Deal a new game (optional config and seed)
- list_sessions / get_session: Inspect sessions
- game_state: Show the table; cards are written CODE#ID, * marks draggable
- drag: Move a card (and the cards above it) to a deck such as free:0, play:3, goal:1
- double_click: Send a card to the best place it can go
- undo / redo: Step through the move history
- autocomplete: Send cards to the foundations
- new_game: Re-deal the session's variant
- move_history: View past moves
- list_configs: List variants
- game_instructions: Rules and strategy

NOTE: The 'intent' parameter on drag serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func sessionOnly() mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: map[string]interface{}{"session_id": sessionProperty()},
		Required:   []string{"session_id"},
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Deal a new game session with optional config and seed",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Variant to play: normal, hard, easy, staircase or a saved config (optional)",
				},
				"seed": map[string]interface{}{
					"type":        "number",
					"description": "Deal seed; the same seed gives the same deal (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: sessionOnly(),
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Show the table of a session",
		InputSchema: sessionOnly(),
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "drag",
		Description: "Drag a card, with every card above it, onto a deck",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"card_id": map[string]interface{}{
					"type":        "number",
					"description": "ID of the card to drag (the number after # in game_state)",
				},
				"target": map[string]interface{}{
					"type":        "string",
					"description": "Destination deck: free:N, play:N or goal:N",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "card_id", "target"},
		},
	}, c.handleDrag)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "double_click",
		Description: "Send a card to a foundation, a matching stack, a free cell or an empty stack, whichever fits first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"card_id": map[string]interface{}{
					"type":        "number",
					"description": "ID of the card",
				},
			},
			Required: []string{"session_id", "card_id"},
		},
	}, c.handleDoubleClick)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "undo",
		Description: "Undo the last move",
		InputSchema: sessionOnly(),
	}, c.handleUndo)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "redo",
		Description: "Redo the last undone move",
		InputSchema: sessionOnly(),
	}, c.handleRedo)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "autocomplete",
		Description: "Send cards to the foundations until nothing more can go",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"only_safe": map[string]interface{}{
					"type":        "boolean",
					"description": "Only move cards no remaining card could need to build on",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleAutocomplete)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Deal a new game with the session's variant",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"seed": map[string]interface{}{
					"type":        "number",
					"description": "Deal seed (optional, random when omitted)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleNewGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get the move history of a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"page": map[string]interface{}{
					"type":        "number",
					"description": "Page number (default 1)",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Moves per page (default 20)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available variants",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules and strategy notes",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// arguments returns the call's arguments; a missing object reads as empty
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		return args
	}
	return map[string]interface{}{}
}

func sessionPath(args map[string]interface{}, suffix string) (string, error) {
	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		return "", fmt.Errorf("session_id is required")
	}
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix, nil
}

// number reads a JSON number argument. Agents sometimes send numbers as
// strings.
func number(args map[string]interface{}, key string) (int64, bool) {
	switch v := args[key].(type) {
	case float64:
		return int64(v), true
	case string:
		var n int64
		if _, err := fmt.Sscan(v, &n); err == nil {
			return n, true
		}
	}
	return 0, false
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	body := map[string]interface{}{}
	if configID, _ := args["config_id"].(string); configID != "" {
		body["config_id"] = configID
	}
	if seed, ok := number(args, "seed"); ok {
		body["seed"] = seed
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n", session.ID, session.ConfigName)
	if session.GameState != nil {
		result += "\n" + formatGameState(session.GameState)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		status := "in progress"
		if s.GameState != nil && s.GameState.Won {
			status = "won"
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Created: %s, %s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"), status)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", path, nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/state")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", path, nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

// mutate posts body to a session endpoint and renders the MoveResult
func (c *Client) mutate(ctx context.Context, request mcp.CallToolRequest, suffix string, body interface{}) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), suffix)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", path, body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleDrag(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	cardID, ok := number(args, "card_id")
	if !ok {
		return mcp.NewToolResultError("card_id is required"), nil
	}
	target, _ := args["target"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	return c.mutate(ctx, request, "/drag", map[string]interface{}{
		"card_id": cardID,
		"target":  target,
	})
}

func (c *Client) handleDoubleClick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cardID, ok := number(arguments(request), "card_id")
	if !ok {
		return mcp.NewToolResultError("card_id is required"), nil
	}
	return c.mutate(ctx, request, "/double-click", map[string]interface{}{"card_id": cardID})
}

func (c *Client) handleUndo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.mutate(ctx, request, "/undo", nil)
}

func (c *Client) handleRedo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.mutate(ctx, request, "/redo", nil)
}

func (c *Client) handleAutocomplete(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	onlySafe, _ := arguments(request)["only_safe"].(bool)
	return c.mutate(ctx, request, "/autocomplete", map[string]interface{}{"only_safe": onlySafe})
}

func (c *Client) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	body := map[string]interface{}{}
	if seed, ok := number(arguments(request), "seed"); ok {
		body["seed"] = seed
	}
	return c.mutate(ctx, request, "/new-game", body)
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	query := url.Values{}
	if page, ok := number(args, "page"); ok {
		query.Set("page", fmt.Sprint(page))
	}
	if limit, ok := number(args, "limit"); ok {
		query.Set("limit", fmt.Sprint(limit))
	}
	suffix := "/history"
	if len(query) > 0 {
		suffix += "?" + query.Encode()
	}

	path, err := sessionPath(args, suffix)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&b, "• %s (%s)\n  %s\n  Suits: %d, Stacks: %d, Free cells: %d, Difficulty: %g\n\n",
			config.ConfigID, config.Variant, config.Description,
			config.Suits, config.Stacks, config.FreeCells, config.Difficulty)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Solitaire Engine - Complete Instructions

GAME OBJECTIVE:
Move every card to the foundations. Each foundation holds one suit, Ace up to King.

THE TABLE:
• free:N - free cells, each holds one card
• play:N - play stacks, built down in alternating colors
• goal:N - foundations, built up by suit from the Ace

READING THE TABLE:
Cards are written CODE#ID, for example QH#37. Use the ID with drag and
double_click. A * after a card means it can be dragged right now.

MOVES:
• A single top card may go to an empty free cell
• A card may go onto a play stack whose top card is one rank higher and
  of the other color, or onto an empty play stack
• A card may go to the foundation of its suit holding the rank below,
  or to an empty foundation if it is an Ace
• A run of cards moves together if it is in sequence and no longer than
  the movable limit

MOVABLE LIMIT:
(1 + empty free cells) × 2^(empty play stacks). When the destination is
itself an empty play stack it does not count.

AUTOCOMPLETE:
After every move, cards that no remaining card could need are sent to the
foundations automatically. The autocomplete tool does the same on
demand; with only_safe false it sends everything that fits.

STRATEGY:
• Free the Aces and Deuces early
• Keep free cells empty: each one doubles as working room for long runs
• Empty play stacks are worth more than free cells
• Undo is free; explore and step back

VICTORY CONDITIONS:
Every foundation holds a complete suit.`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting

func formatSessionInfo(session *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\nConfig: %s\nCreated: %s\nLast accessed: %s\n",
		session.ID, session.ConfigName,
		session.CreatedAt.Format(time.RFC3339), session.LastAccessedAt.Format(time.RFC3339))
	if session.GameState != nil {
		b.WriteString("\n")
		b.WriteString(formatGameState(session.GameState))
	}
	return b.String()
}

func formatCard(card engine.CardState) string {
	s := fmt.Sprintf("%s#%d", card.Code, card.ID)
	if card.Draggable {
		s += "*"
	}
	return s
}

// formatCells renders one-line decks such as free cells and foundations,
// showing the top card of each
func formatCells(decks []engine.DeckState) string {
	parts := make([]string, 0, len(decks))
	for _, d := range decks {
		if len(d.Cards) == 0 {
			parts = append(parts, "[ -- ]")
			continue
		}
		top := formatCard(d.Cards[len(d.Cards)-1])
		if len(d.Cards) > 1 {
			top += fmt.Sprintf(" (%d)", len(d.Cards))
		}
		parts = append(parts, "["+top+"]")
	}
	return strings.Join(parts, " ")
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Config: %s (%s), seed %d, difficulty %g\n",
		state.ConfigName, state.Variant, state.Seed, state.Difficulty)
	fmt.Fprintf(&b, "Moves: %d   Movable limit: %d   Undo: %t   Redo: %t\n\n",
		state.MovesMade, state.MovableLimit, state.CanUndo, state.CanRedo)

	fmt.Fprintf(&b, "Free cells:  %s\n", formatCells(state.FreeCells))
	fmt.Fprintf(&b, "Foundations: %s\n\n", formatCells(state.Foundations))

	b.WriteString("Play stacks (bottom to top):\n")
	for _, d := range state.PlayStacks {
		cards := make([]string, 0, len(d.Cards))
		for _, card := range d.Cards {
			cards = append(cards, formatCard(card))
		}
		if len(cards) == 0 {
			cards = append(cards, "(empty)")
		}
		fmt.Fprintf(&b, "  %-8s %s\n", d.Ref, strings.Join(cards, " "))
	}

	for _, d := range state.SeatDecks {
		if len(d.Cards) > 0 {
			fmt.Fprintf(&b, "  %-12s %d cards (%s)\n", d.Ref, len(d.Cards), d.Seat)
		}
	}

	if state.Won {
		b.WriteString("\n🏆 VICTORY! All foundations complete.\n")
	} else if state.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", state.Message)
	}

	return b.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Success {
		fmt.Fprintf(&b, "✓ %s\n", result.Message)
	} else {
		fmt.Fprintf(&b, "✗ %s\n", result.Message)
	}

	for _, e := range result.Events {
		switch e.Type {
		case engine.EventMoveExecuted:
			if e.Move != nil {
				fmt.Fprintf(&b, "  move %d: %s %s -> %s\n", e.Move.Number, strings.Join(e.Move.Cards, " "), e.Move.From, e.Move.To)
			}
		case engine.EventMoveUndone:
			if e.Move != nil {
				fmt.Fprintf(&b, "  undone %d: %s back to %s\n", e.Move.Number, strings.Join(e.Move.Cards, " "), e.Move.From)
			}
		case engine.EventWin:
			b.WriteString("  all foundations complete\n")
		case engine.EventNewGame:
			if e.Seed != nil {
				fmt.Fprintf(&b, "  new deal, seed %d\n", *e.Seed)
			}
		}
	}

	if result.GameState != nil {
		b.WriteString("\n")
		b.WriteString(formatGameState(result.GameState))
	}
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (page %d of %d, %d moves total):\n\n",
		history.Page, history.TotalPages, history.TotalMoves)
	for _, m := range history.Moves {
		fmt.Fprintf(&b, "%3d. %-6s %s  %s -> %s\n", m.Number, m.Type, strings.Join(m.Cards, " "), m.From, m.To)
	}
	if history.HasNext {
		fmt.Fprintf(&b, "\nMore moves on page %d\n", history.Page+1)
	}
	return b.String()
}
