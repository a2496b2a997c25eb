// internal/gateway/handlers.go
package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"

	"navpilot-workers/pkg/registry"
)

// navigateRequestSchema guards the public surface; worker-level schemas
// cover the Zeebe path.
const navigateRequestSchema = `{
	"type": "object",
	"properties": {
		"text":      {"type": "string", "maxLength": 500},
		"audio":     {"type": "string"},
		"sessionId": {"type": "string", "maxLength": 255},
		"provider":  {"type": "string", "enum": ["baidu_map", "amap"]},
		"mode":      {"type": "string", "enum": ["transit", "driving", "walking"]},
		"phone":     {"type": "string", "maxLength": 20},
		"email":     {"type": "string", "maxLength": 255}
	},
	"additionalProperties": false
}`

type HTTPHandler struct {
	service  *Service
	registry *registry.ActivityRegistry
}

// NewHTTPHandler builds the gin handler set. The registry may be nil,
// in which case /api/activities answers with an empty list.
func NewHTTPHandler(service *Service, reg *registry.ActivityRegistry) *HTTPHandler {
	return &HTTPHandler{service: service, registry: reg}
}

// Navigate handles POST /api/navigate
func (h *HTTPHandler) Navigate(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := validateNavigateBody(raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req NavigateRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if req.Text == "" && req.Audio == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "either text or audio is required"})
		return
	}

	resp, err := h.service.Navigate(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Status handles GET /api/status
func (h *HTTPHandler) Status(c *gin.Context) {
	status := h.service.Status(c.Request.Context())

	if sessionID := c.Query("sessionId"); sessionID != "" {
		last, err := h.service.SessionIntent(c.Request.Context(), sessionID)
		if err == nil && last != nil {
			c.JSON(http.StatusOK, gin.H{
				"status":     status.Status,
				"components": status.Components,
				"lastIntent": last,
			})
			return
		}
	}

	c.JSON(http.StatusOK, status)
}

// Activities handles GET /api/activities
func (h *HTTPHandler) Activities(c *gin.Context) {
	if h.registry == nil {
		c.JSON(http.StatusOK, gin.H{"activities": []registry.Activity{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"version":    h.registry.Version,
		"activities": h.registry.Activities,
	})
}

// Healthz handles GET /healthz
func (h *HTTPHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func validateNavigateBody(raw []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(navigateRequestSchema)
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("request validation failed: %v", errs)
	}

	return nil
}
