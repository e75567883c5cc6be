package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"katalog/internal/docs"
	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Route binds a handler to a method and path and carries its API description.
type Route struct {
	Method  string
	Path    string
	Handler fiber.Handler
	Doc     docs.Operation
}

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
	log      zerolog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, log zerolog.Logger) *ProductHandler {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &ProductHandler{
		service:  service,
		validate: validate,
		log:      log,
	}
}

// RegisterRoutes registers the product routes on router.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	for _, r := range h.Routes() {
		router.Add(r.Method, r.Path, r.Handler)
	}
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return h.respondError(c, err, "Could not retrieve products")
	}
	return c.JSON(models.EncodeProducts(products))
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return h.respondInvalidID(c, err)
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		return h.respondError(c, err, fmt.Sprintf("Could not retrieve product %d", id))
	}
	return c.JSON(models.EncodeProduct(*product))
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	input, ok, err := h.parseInput(c)
	if !ok {
		return err
	}

	product, err := h.service.CreateProduct(input)
	if err != nil {
		return h.respondError(c, err, "Could not create product")
	}
	return c.Status(fiber.StatusCreated).JSON(models.EncodeProduct(*product))
}

// HandleUpdateProduct overwrites an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return h.respondInvalidID(c, err)
	}

	input, ok, err := h.parseInput(c)
	if !ok {
		return err
	}

	product, err := h.service.UpdateProduct(id, input)
	if err != nil {
		return h.respondError(c, err, fmt.Sprintf("Could not update product %d", id))
	}
	return c.JSON(models.EncodeProduct(*product))
}

// HandleDeleteProduct deletes a product and returns it as it was before deletion.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return h.respondInvalidID(c, err)
	}

	product, err := h.service.DeleteProduct(id)
	if err != nil {
		return h.respondError(c, err, fmt.Sprintf("Could not delete product %d", id))
	}
	return c.JSON(models.EncodeProduct(*product))
}

// parseInput decodes and validates the request body. When ok is false the
// error response has already been written and err must be returned as is.
func (h *ProductHandler) parseInput(c *fiber.Ctx) (input models.ProductInput, ok bool, err error) {
	input, err = models.DecodeProductInput(c.Body())
	if err != nil {
		if errors.Is(err, models.ErrMissingField) {
			errorMessages := make(map[string]string)
			for _, field := range input.MissingFields() {
				errorMessages[field] = fmt.Sprintf("Field '%s' is required", field)
			}
			return input, false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  errorMessages,
			})
		}
		return input, false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(input); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return input, false, err
		}
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return input, false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}
	return input, true, nil
}

func (h *ProductHandler) respondInvalidID(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid product ID",
		"error":   err.Error(),
	})
}

// respondError writes the error response for a failed service call.
func (h *ProductHandler) respondError(c *fiber.Ctx, err error, message string) error {
	status := StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.Path()).Msg(message)
	}

	switch status {
	case fiber.StatusNotFound:
		message = "Product not found"
	case fiber.StatusConflict:
		message = "A product with this name already exists"
	case fiber.StatusServiceUnavailable:
		message = "Storage is unavailable"
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// StatusFor maps service and repository errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, repositories.ErrProductNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, repositories.ErrDuplicateName):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrMissingField):
		return fiber.StatusBadRequest
	case errors.Is(err, repositories.ErrStorageUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func productID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		return 0, fmt.Errorf("product ID %q is not a non-negative integer", raw)
	}
	return uint(id), nil
}
