package controllers

import (
	"net/http"

	"github.com/anvikawear/anvika/app/models"
	"github.com/anvikawear/anvika/app/services"
	"github.com/anvikawear/anvika/pkg/bind"
	"github.com/anvikawear/anvika/pkg/logger"
	"github.com/anvikawear/anvika/pkg/response"
)

type ProductController struct {
	service *services.CatalogService
}

func NewProductController(service *services.CatalogService) *ProductController {
	return &ProductController{service: service}
}

type productInput struct {
	Name        string  `json:"name"        validate:"required,max=255"`
	Price       float64 `json:"price"       validate:"required,gte=0"`
	Category    string  `json:"category"    validate:"required"`
	Description string  `json:"description" validate:"nullable,max=2000"`
	Image       string  `json:"image"       validate:"nullable"`
}

// List handles GET /api/products. Public; ?category= narrows the result.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		logger.WithCtx(r.Context()).Error("product listing failed", "error", err)
		response.Internal(w, "Error fetching products")
		return
	}

	response.JSON(w, http.StatusOK, products)
}

// Create handles POST /api/products. Admin-only (gated at the route).
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var input productInput
	errs, err := bind.JSON(r, &input)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.Error(w, http.StatusBadRequest, bind.FirstError(errs))
		return
	}

	product, err := c.service.Create(r.Context(), models.Product{
		Name:        input.Name,
		Price:       input.Price,
		Category:    input.Category,
		Description: input.Description,
		Image:       input.Image,
	})
	if err != nil {
		logger.WithCtx(r.Context()).Error("product creation failed", "error", err)
		response.Internal(w, "Error creating product")
		return
	}

	response.JSON(w, http.StatusCreated, product)
}
