package navigation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	commonhttp "navpilot-workers/internal/common/http"
)

// MCPClient talks JSON-RPC 2.0 to a map provider's MCP endpoint. The
// only tool the pipeline needs is maps_navigation; callers fall back
// to BuildURL when the endpoint is unreachable or errors.
type MCPClient struct {
	endpoint string
	client   *commonhttp.Client
}

// NewMCPClient builds a client for one provider endpoint.
func NewMCPClient(endpoint string, timeout time.Duration) *MCPClient {
	return &MCPClient{
		endpoint: endpoint,
		client:   commonhttp.NewClient(timeout),
	}
}

// Endpoint returns the configured MCP endpoint, empty when disabled.
func (c *MCPClient) Endpoint() string {
	return c.endpoint
}

type mcpRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  mcpParams `json:"params"`
	ID      int       `json:"id"`
}

type mcpParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

type mcpResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *mcpError       `json:"error"`
}

type mcpError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *mcpError) Error() string {
	return fmt.Sprintf("mcp tool error %d: %s", e.Code, e.Message)
}

// NavigationResult is the payload a provider's maps_navigation tool
// returns on success.
type NavigationResult struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
	NavURL  string `json:"navigation_url"`
	Message string `json:"message"`
}

// NavigationURL returns whichever URL field the provider populated.
func (r *NavigationResult) NavigationURL() string {
	if r.URL != "" {
		return r.URL
	}
	return r.NavURL
}

// OpenNavigation invokes the maps_navigation tool for the given trip.
// The mode must already be in the provider's own vocabulary.
func (c *MCPClient) OpenNavigation(ctx context.Context, origin, destination, mode string) (*NavigationResult, error) {
	args := map[string]interface{}{
		"origin":      origin,
		"destination": destination,
		"mode":        mode,
	}
	raw, err := c.callTool(ctx, "maps_navigation", args)
	if err != nil {
		return nil, err
	}

	var result NavigationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decoding maps_navigation result: %w", err)
	}
	return &result, nil
}

func (c *MCPClient) callTool(ctx context.Context, tool string, args map[string]interface{}) (json.RawMessage, error) {
	if c.endpoint == "" {
		return nil, fmt.Errorf("mcp endpoint not configured")
	}

	payload := mcpRequest{
		JSONRPC: "2.0",
		Method:  "tools/call",
		Params:  mcpParams{Name: tool, Arguments: args},
		ID:      1,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding mcp request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building mcp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling mcp endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("mcp endpoint returned %d: %s", resp.StatusCode, string(data))
	}

	var decoded mcpResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding mcp response: %w", err)
	}
	if decoded.Error != nil {
		return nil, decoded.Error
	}
	return decoded.Result, nil
}
