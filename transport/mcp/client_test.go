package mcp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wricardo/solitaire-engine/game/engine"
	"github.com/wricardo/solitaire-engine/game/service"
)

func callTool(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("Expected result content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("Expected TextContent, got %T", result.Content[0])
	}
	return text.Text
}

func sampleState() *engine.GameState {
	return &engine.GameState{
		ConfigName:   "normal",
		Variant:      engine.VariantFreeCell,
		Seed:         42,
		MovableLimit: 5,
		CanUndo:      true,
		FreeCells: []engine.DeckState{
			{Ref: "free:0", Role: engine.FreeCell},
			{Ref: "free:1", Role: engine.FreeCell, Cards: []engine.CardState{{ID: 7, Code: "8H"}}},
		},
		PlayStacks: []engine.DeckState{
			{Ref: "play:0", Role: engine.Play, Cards: []engine.CardState{
				{ID: 12, Code: "KS"},
				{ID: 37, Code: "QH", Draggable: true},
			}},
			{Ref: "play:1", Role: engine.Play},
		},
		Foundations: []engine.DeckState{
			{Ref: "goal:0", Role: engine.Goal, Cards: []engine.CardState{{ID: 0, Code: "AS"}, {ID: 1, Code: "2S"}}},
		},
	}
}

// recordingServer answers every request with response and records the last
// request path and body
type recordingServer struct {
	*httptest.Server
	path   string
	method string
	body   map[string]interface{}
}

func newRecordingServer(t *testing.T, status int, response interface{}) *recordingServer {
	t.Helper()
	rs := &recordingServer{}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.path = r.URL.RequestURI()
		rs.method = r.Method
		rs.body = nil
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			json.Unmarshal(data, &rs.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(response)
	}))
	t.Cleanup(rs.Close)
	return rs
}

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL + "/")

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.GetMCPServer() == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	t.Run("decodes result", func(t *testing.T) {
		server := newRecordingServer(t, http.StatusOK, map[string]interface{}{"status": "healthy"})
		client := NewClient(server.URL)

		var result map[string]string
		if err := client.apiCall(context.Background(), "GET", "/api/health", nil, &result); err != nil {
			t.Fatalf("apiCall failed: %v", err)
		}
		if result["status"] != "healthy" {
			t.Errorf("Expected healthy, got %v", result)
		}
	})

	t.Run("error message from body", func(t *testing.T) {
		server := newRecordingServer(t, http.StatusNotFound, map[string]string{"error": "session not found"})
		client := NewClient(server.URL)

		err := client.apiCall(context.Background(), "GET", "/api/sessions/x", nil, nil)
		if err == nil || err.Error() != "session not found" {
			t.Errorf("Expected 'session not found', got %v", err)
		}
	})

	t.Run("status without message", func(t *testing.T) {
		server := newRecordingServer(t, http.StatusInternalServerError, "boom")
		client := NewClient(server.URL)

		err := client.apiCall(context.Background(), "GET", "/api/health", nil, nil)
		if err == nil || !strings.Contains(err.Error(), "API error: 500") {
			t.Errorf("Expected API error, got %v", err)
		}
	})

	t.Run("sends JSON body", func(t *testing.T) {
		server := newRecordingServer(t, http.StatusOK, map[string]string{})
		client := NewClient(server.URL)

		body := map[string]interface{}{"card_id": 5}
		if err := client.apiCall(context.Background(), "POST", "/api/x", body, nil); err != nil {
			t.Fatalf("apiCall failed: %v", err)
		}
		if server.method != "POST" || server.body["card_id"] != float64(5) {
			t.Errorf("Unexpected request %s %v", server.method, server.body)
		}
	})
}

func TestClient_CreateSession(t *testing.T) {
	server := newRecordingServer(t, http.StatusCreated, service.SessionInfo{
		ID:         "abc123",
		ConfigName: "normal",
		CreatedAt:  time.Now(),
		GameState:  sampleState(),
	})
	client := NewClient(server.URL)

	result, err := client.handleCreateSession(context.Background(), callTool("create_session", map[string]interface{}{
		"config_id": "normal",
		"seed":      float64(42),
	}))
	if err != nil {
		t.Fatalf("handleCreateSession failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("Unexpected tool error: %s", resultText(t, result))
	}

	if server.path != "/api/sessions" {
		t.Errorf("Expected /api/sessions, got %s", server.path)
	}
	if server.body["config_id"] != "normal" || server.body["seed"] != float64(42) {
		t.Errorf("Unexpected body %v", server.body)
	}

	text := resultText(t, result)
	for _, want := range []string{"abc123", "QH#37*", "KS#12 "} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in output:\n%s", want, text)
		}
	}
}

func TestClient_CreateSessionWithoutArguments(t *testing.T) {
	server := newRecordingServer(t, http.StatusCreated, service.SessionInfo{ID: "s1"})
	client := NewClient(server.URL)

	// Arguments left nil must not panic
	result, err := client.handleCreateSession(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handleCreateSession failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("Unexpected tool error: %s", resultText(t, result))
	}
	if len(server.body) != 0 {
		t.Errorf("Expected empty body, got %v", server.body)
	}
}

func TestClient_Drag(t *testing.T) {
	server := newRecordingServer(t, http.StatusOK, service.MoveResult{
		Success:   true,
		Message:   "moved",
		GameState: sampleState(),
		Events: []engine.Event{{
			Type: engine.EventMoveExecuted,
			Move: &engine.MoveRecord{Number: 1, Type: engine.SingleMoveType, From: "play:0", To: "free:0", Cards: []string{"QH"}},
		}},
	})
	client := NewClient(server.URL)

	result, err := client.handleDrag(context.Background(), callTool("drag", map[string]interface{}{
		"session_id": "abc",
		"card_id":    float64(37),
		"target":     "free:0",
		"intent":     "make room",
	}))
	if err != nil {
		t.Fatalf("handleDrag failed: %v", err)
	}

	if server.path != "/api/sessions/abc/drag" {
		t.Errorf("Expected drag path, got %s", server.path)
	}
	if server.body["card_id"] != float64(37) || server.body["target"] != "free:0" {
		t.Errorf("Unexpected body %v", server.body)
	}
	if _, ok := server.body["intent"]; ok {
		t.Error("Intent should not be forwarded")
	}

	text := resultText(t, result)
	if !strings.Contains(text, "✓ moved") || !strings.Contains(text, "move 1: QH play:0 -> free:0") {
		t.Errorf("Unexpected output:\n%s", text)
	}
}

func TestClient_ArgumentErrors(t *testing.T) {
	client := NewClient("http://127.0.0.1:0")

	tests := []struct {
		name    string
		handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		args    map[string]interface{}
		want    string
	}{
		{"drag without card", client.handleDrag, map[string]interface{}{"session_id": "a", "target": "free:0"}, "card_id is required"},
		{"double click without card", client.handleDoubleClick, map[string]interface{}{"session_id": "a"}, "card_id is required"},
		{"undo without session", client.handleUndo, map[string]interface{}{}, "session_id is required"},
		{"state without session", client.handleGameState, nil, "session_id is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.handler(context.Background(), callTool("x", tt.args))
			if err != nil {
				t.Fatalf("Handler returned error: %v", err)
			}
			if !result.IsError {
				t.Error("Expected tool error")
			}
			if text := resultText(t, result); !strings.Contains(text, tt.want) {
				t.Errorf("Expected %q, got %q", tt.want, text)
			}
		})
	}
}

func TestClient_RejectedMove(t *testing.T) {
	server := newRecordingServer(t, http.StatusOK, service.MoveResult{
		Success: false,
		Message: "move rejected",
	})
	client := NewClient(server.URL)

	result, err := client.handleDoubleClick(context.Background(), callTool("double_click", map[string]interface{}{
		"session_id": "abc",
		"card_id":    "12",
	}))
	if err != nil {
		t.Fatalf("handleDoubleClick failed: %v", err)
	}
	if result.IsError {
		t.Error("A rejected move is not a tool error")
	}
	if server.body["card_id"] != float64(12) {
		t.Errorf("String card_id should be converted, got %v", server.body)
	}
	if text := resultText(t, result); !strings.Contains(text, "✗ move rejected") {
		t.Errorf("Unexpected output: %s", text)
	}
}

func TestClient_APIErrorBecomesToolError(t *testing.T) {
	server := newRecordingServer(t, http.StatusNotFound, map[string]string{"error": "session not found"})
	client := NewClient(server.URL)

	result, err := client.handleUndo(context.Background(), callTool("undo", map[string]interface{}{"session_id": "gone"}))
	if err != nil {
		t.Fatalf("handleUndo failed: %v", err)
	}
	if !result.IsError {
		t.Error("Expected tool error")
	}
	if text := resultText(t, result); text != "session not found" {
		t.Errorf("Unexpected output: %s", text)
	}
}

func TestClient_MoveHistory(t *testing.T) {
	server := newRecordingServer(t, http.StatusOK, service.HistoryResponse{
		Moves: []engine.MoveRecord{
			{Number: 2, Type: engine.StackMoveType, From: "play:1", To: "play:4", Cards: []string{"9C", "8D"}},
		},
		TotalMoves: 2,
		Page:       1,
		PageSize:   1,
		TotalPages: 2,
		HasNext:    true,
	})
	client := NewClient(server.URL)

	result, err := client.handleMoveHistory(context.Background(), callTool("move_history", map[string]interface{}{
		"session_id": "abc",
		"page":       float64(1),
		"limit":      float64(1),
	}))
	if err != nil {
		t.Fatalf("handleMoveHistory failed: %v", err)
	}

	if server.path != "/api/sessions/abc/history?limit=1&page=1" {
		t.Errorf("Unexpected path %s", server.path)
	}

	text := resultText(t, result)
	for _, want := range []string{"page 1 of 2", "9C 8D  play:1 -> play:4", "More moves on page 2"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in output:\n%s", want, text)
		}
	}
}

func TestClient_Autocomplete(t *testing.T) {
	server := newRecordingServer(t, http.StatusOK, service.MoveResult{Success: true, Message: "sent 3 cards", Moves: 3})
	client := NewClient(server.URL)

	if _, err := client.handleAutocomplete(context.Background(), callTool("autocomplete", map[string]interface{}{
		"session_id": "abc",
		"only_safe":  true,
	})); err != nil {
		t.Fatalf("handleAutocomplete failed: %v", err)
	}
	if server.path != "/api/sessions/abc/autocomplete" || server.body["only_safe"] != true {
		t.Errorf("Unexpected request %s %v", server.path, server.body)
	}
}

func TestClient_ListConfigs(t *testing.T) {
	server := newRecordingServer(t, http.StatusOK, []service.ConfigInfo{
		{ConfigID: "normal", Name: "Normal", Variant: engine.VariantFreeCell, Suits: 4, Stacks: 8, FreeCells: 4},
		{ConfigID: "staircase", Name: "Staircase", Variant: engine.VariantStaircase, Suits: 8},
	})
	client := NewClient(server.URL)

	result, err := client.handleListConfigs(context.Background(), callTool("list_configs", nil))
	if err != nil {
		t.Fatalf("handleListConfigs failed: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "• normal (freecell)") || !strings.Contains(text, "• staircase (staircase)") {
		t.Errorf("Unexpected output:\n%s", text)
	}
}

func TestFormatGameState(t *testing.T) {
	text := formatGameState(sampleState())

	for _, want := range []string{
		"Config: normal (freecell), seed 42",
		"Movable limit: 5",
		"[ -- ] [8H#7]",
		"[2S#1 (2)]",
		"KS#12 QH#37*",
		"(empty)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in output:\n%s", want, text)
		}
	}

	won := sampleState()
	won.Won = true
	if !strings.Contains(formatGameState(won), "VICTORY") {
		t.Error("Expected victory banner")
	}

	if formatGameState(nil) != "No game state" {
		t.Error("Expected placeholder for nil state")
	}
}

func TestGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")

	result, err := client.handleGameInstructions(context.Background(), callTool("game_instructions", nil))
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}

	text := resultText(t, result)
	for _, section := range []string{"GAME OBJECTIVE", "MOVABLE LIMIT", "AUTOCOMPLETE", "VICTORY CONDITIONS"} {
		if !strings.Contains(text, section) {
			t.Errorf("Instructions missing section %s", section)
		}
	}
}
