package handlers

import (
	"net/http"

	"katalog/internal/docs"
)

const productTag = "products"

// Routes lists the product routes relative to the product router.
func (h *ProductHandler) Routes() []Route {
	idParam := []docs.Parameter{{
		Name:        "id",
		In:          "path",
		Description: "Product ID",
		Required:    true,
		Schema:      &docs.Schema{Type: "integer", Format: "int64"},
	}}
	inputBody := &docs.RequestBody{
		Description: "Business fields of the product; all four are required",
		Required:    true,
		Content:     docs.JSONContent(docs.Ref("ProductInput")),
	}
	product := docs.JSONContent(docs.Ref("Product"))

	return []Route{
		{
			Method:  http.MethodGet,
			Path:    "/products",
			Handler: h.HandleGetProducts,
			Doc: docs.Operation{
				Summary:     "List products",
				OperationID: "listProducts",
				Tags:        []string{productTag},
				Responses: map[string]docs.Response{
					"200": {Description: "All stored products", Content: docs.JSONContent(docs.ArrayOf(docs.Ref("Product")))},
					"503": errorResponse("Storage unavailable"),
				},
			},
		},
		{
			Method:  http.MethodGet,
			Path:    "/products/:id",
			Handler: h.HandleGetProductByID,
			Doc: docs.Operation{
				Summary:     "Get a product",
				OperationID: "getProduct",
				Tags:        []string{productTag},
				Parameters:  idParam,
				Responses: map[string]docs.Response{
					"200": {Description: "The product", Content: product},
					"400": errorResponse("Invalid product ID"),
					"404": errorResponse("Product not found"),
					"503": errorResponse("Storage unavailable"),
				},
			},
		},
		{
			Method:  http.MethodPost,
			Path:    "/products",
			Handler: h.HandleCreateProduct,
			Doc: docs.Operation{
				Summary:     "Create a product",
				OperationID: "createProduct",
				Tags:        []string{productTag},
				RequestBody: inputBody,
				Responses: map[string]docs.Response{
					"201": {Description: "The created product with its assigned ID", Content: product},
					"400": errorResponse("Missing or invalid field"),
					"409": errorResponse("Name already in use"),
					"503": errorResponse("Storage unavailable"),
				},
			},
		},
		{
			Method:  http.MethodPut,
			Path:    "/products/:id",
			Handler: h.HandleUpdateProduct,
			Doc: docs.Operation{
				Summary:     "Replace a product's fields",
				OperationID: "updateProduct",
				Tags:        []string{productTag},
				Parameters:  idParam,
				RequestBody: inputBody,
				Responses: map[string]docs.Response{
					"200": {Description: "The updated product", Content: product},
					"400": errorResponse("Missing or invalid field, or invalid product ID"),
					"404": errorResponse("Product not found"),
					"409": errorResponse("Name already in use"),
					"503": errorResponse("Storage unavailable"),
				},
			},
		},
		{
			Method:  http.MethodDelete,
			Path:    "/products/:id",
			Handler: h.HandleDeleteProduct,
			Doc: docs.Operation{
				Summary:     "Delete a product",
				OperationID: "deleteProduct",
				Tags:        []string{productTag},
				Parameters:  idParam,
				Responses: map[string]docs.Response{
					"200": {Description: "The deleted product", Content: product},
					"400": errorResponse("Invalid product ID"),
					"404": errorResponse("Product not found"),
					"503": errorResponse("Storage unavailable"),
				},
			},
		},
	}
}

// Document adds the product schemas and operations, mounted under prefix, to b.
func (h *ProductHandler) Document(b *docs.Builder, prefix string) {
	b.AddSchema("Product", productSchema()).
		AddSchema("ProductInput", productInputSchema()).
		AddSchema("Error", errorSchema())
	for _, r := range h.Routes() {
		b.AddOperation(r.Method, prefix+r.Path, r.Doc)
	}
}

func errorResponse(description string) docs.Response {
	return docs.Response{Description: description, Content: docs.JSONContent(docs.Ref("Error"))}
}

func intPtr(n int) *int { return &n }

func productSchema() *docs.Schema {
	return &docs.Schema{
		Type:     "object",
		Required: []string{"id", "name", "description", "price", "quantity"},
		Properties: map[string]*docs.Schema{
			"id":          {Type: "integer", Format: "int64", ReadOnly: true, Example: 1},
			"name":        {Type: "string", MaxLength: intPtr(50), Example: "Widget"},
			"description": {Type: "string", MaxLength: intPtr(250), Example: "A widget"},
			"price":       {Type: "integer", Example: 100},
			"quantity":    {Type: "integer", Example: 5},
		},
	}
}

func productInputSchema() *docs.Schema {
	return &docs.Schema{
		Type:     "object",
		Required: []string{"name", "description", "price", "quantity"},
		Properties: map[string]*docs.Schema{
			"name":        {Type: "string", MaxLength: intPtr(50), Description: "Unique across all products"},
			"description": {Type: "string", MaxLength: intPtr(250)},
			"price":       {Type: "integer"},
			"quantity":    {Type: "integer"},
		},
	}
}

func errorSchema() *docs.Schema {
	return &docs.Schema{
		Type:     "object",
		Required: []string{"message"},
		Properties: map[string]*docs.Schema{
			"message": {Type: "string"},
			"error":   {Type: "string"},
			"errors": {
				Type:                 "object",
				Description:          "Per-field validation messages",
				AdditionalProperties: &docs.Schema{Type: "string"},
			},
		},
	}
}
