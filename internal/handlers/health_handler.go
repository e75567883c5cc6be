package handlers

import (
	"net/http"
	"time"

	"katalog/internal/docs"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping() error
}

// HealthHandler reports process and storage health.
type HealthHandler struct {
	store   Pinger
	name    string
	version string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store Pinger, name, version string) *HealthHandler {
	return &HealthHandler{store: store, name: name, version: version}
}

// RegisterRoutes registers GET /health on router.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

// HandleHealth answers 200 when the store is reachable and 503 otherwise.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	status, database, code := "healthy", "up", fiber.StatusOK
	if err := h.store.Ping(); err != nil {
		status, database, code = "unhealthy", "down", fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"database": database,
		"service":  h.name,
		"version":  h.version,
		"time":     time.Now().Format(time.RFC3339),
	})
}

// Document adds the health operation to b.
func (h *HealthHandler) Document(b *docs.Builder) {
	health := &docs.Schema{
		Type: "object",
		Properties: map[string]*docs.Schema{
			"status":   {Type: "string"},
			"database": {Type: "string"},
			"service":  {Type: "string"},
			"version":  {Type: "string"},
			"time":     {Type: "string", Format: "date-time"},
		},
	}
	b.AddOperation(http.MethodGet, "/health", docs.Operation{
		Summary:     "Service health",
		OperationID: "health",
		Tags:        []string{"health"},
		Responses: map[string]docs.Response{
			"200": {Description: "Service and storage are up", Content: docs.JSONContent(health)},
			"503": {Description: "Storage is unreachable", Content: docs.JSONContent(health)},
		},
	})
}
