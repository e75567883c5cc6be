package handlers

import (
	"fmt"

	"katalog/internal/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Documentation endpoints.
const (
	SpecJSONPath = "/static/swagger.json"
	SpecYAMLPath = "/static/swagger.yaml"
	SwaggerPath  = "/swagger"
	StaticPrefix = "/static"
)

// DocsHandler serves the OpenAPI document, the Swagger UI and static assets.
type DocsHandler struct {
	specJSON  []byte
	specYAML  []byte
	staticDir string
}

// NewDocsHandler renders doc once; requests are served from the rendered bytes.
func NewDocsHandler(doc *docs.Document, staticDir string) (*DocsHandler, error) {
	specJSON, err := doc.JSON()
	if err != nil {
		return nil, fmt.Errorf("failed to render OpenAPI JSON: %w", err)
	}
	specYAML, err := doc.YAML()
	if err != nil {
		return nil, fmt.Errorf("failed to render OpenAPI YAML: %w", err)
	}
	return &DocsHandler{specJSON: specJSON, specYAML: specYAML, staticDir: staticDir}, nil
}

// RegisterRoutes registers the documentation routes on router. The document
// routes take precedence over files of the same name in the static directory.
func (h *DocsHandler) RegisterRoutes(router fiber.Router) {
	router.Get(SpecJSONPath, h.HandleSpecJSON)
	router.Get(SpecYAMLPath, h.HandleSpecYAML)

	router.Get(SwaggerPath, func(c *fiber.Ctx) error {
		return c.Redirect(SwaggerPath+"/index.html", fiber.StatusMovedPermanently)
	})
	router.Get(SwaggerPath+"/*", adaptor.HTTPHandler(httpSwagger.Handler(
		httpSwagger.URL(SpecJSONPath),
	)))

	router.Static(StaticPrefix, h.staticDir)
}

// HandleSpecJSON serves the OpenAPI document as JSON.
func (h *DocsHandler) HandleSpecJSON(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(h.specJSON)
}

// HandleSpecYAML serves the OpenAPI document as YAML.
func (h *DocsHandler) HandleSpecYAML(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "application/yaml")
	return c.Send(h.specYAML)
}
