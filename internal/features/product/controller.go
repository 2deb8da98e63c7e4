package product

import (
	"errors"
	"strconv"
	"strings"

	"greenbasket/internal/features/activity"
	"greenbasket/internal/features/authz"
	"greenbasket/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ProductController struct {
	ProductService  ProductService
	ActivityService activity.ActivityService
}

func NewProductController(productService ProductService, activityService activity.ActivityService) *ProductController {
	return &ProductController{
		ProductService:  productService,
		ActivityService: activityService,
	}
}

// Browse godoc
// @Summary      Browse the product catalog
// @Description  Full storefront listing: text search, category/brand slugs, price band, organic/featured/stock flags, tags and sort
// @Tags         products
// @Produce      json
// @Param        search query string false "Text search"
// @Param        category query string false "Category slug"
// @Param        brand query string false "Brand slug"
// @Param        min_price query number false "Minimum price"
// @Param        max_price query number false "Maximum price"
// @Param        organic query bool false "Only organic products"
// @Param        featured query bool false "Only featured products"
// @Param        in_stock query bool false "Only orderable products"
// @Param        tags query string false "Comma separated tags"
// @Param        sort query string false "price_asc, price_desc, rating, popular, name or newest"
// @Param        page query int false "Page number"
// @Success      200 {object} models.Paged[Product]
// @Router       /api/products [get]
func (ctrl *ProductController) Browse(c *fiber.Ctx) error {
	q := BrowseQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
		Sort:     c.Query("sort"),
		Page:     int64(c.QueryInt("page", 1)),
		PageSize: int64(c.QueryInt("page_size", 0)),
	}
	q.MinPrice, _ = strconv.ParseFloat(c.Query("min_price"), 64)
	q.MaxPrice, _ = strconv.ParseFloat(c.Query("max_price"), 64)

	if raw := c.Query("organic"); raw != "" {
		v, _ := strconv.ParseBool(raw)
		q.Organic = &v
	}
	if raw := c.Query("featured"); raw != "" {
		v, _ := strconv.ParseBool(raw)
		q.Featured = &v
	}
	if raw := c.Query("in_stock"); raw != "" {
		v, _ := strconv.ParseBool(raw)
		q.InStock = &v
	}
	if raw := c.Query("tags"); raw != "" {
		q.Tags = strings.Split(raw, ",")
	}

	// Staff may ask for hidden products too.
	if c.QueryBool("include_hidden") {
		q.ShowHidden = authz.IsAdmin(middleware.IdentityFromCtx(c))
	}

	page, err := ctrl.ProductService.Browse(c.UserContext(), q)
	if err != nil {
		return productError(c, err)
	}
	return c.JSON(page)
}

// GetProduct godoc
// @Summary      Get a product by id or slug
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID or slug"
// @Success      200 {object} ProductView
// @Failure      404 {object} map[string]string
// @Router       /api/products/{id} [get]
func (ctrl *ProductController) GetProduct(c *fiber.Ctx) error {
	p, err := ctrl.ProductService.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return productError(c, err)
	}
	return c.JSON(p)
}

// CreateProduct godoc
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        product body CreateProductRequest true "Product"
// @Success      201 {object} ProductView
// @Failure      400 {object} map[string]string
// @Router       /api/admin/products [post]
func (ctrl *ProductController) CreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Name == "" || req.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name and category are required",
		})
	}

	p, err := ctrl.ProductService.CreateProduct(c.UserContext(), &req)
	if err != nil {
		return productError(c, err)
	}

	ctrl.ActivityService.Record(c, middleware.IdentityFromCtx(c),
		"product.created", "Product", &p.ID, map[string]interface{}{"name": p.Name})

	return c.Status(fiber.StatusCreated).JSON(p)
}

// UpdateProduct godoc
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        product body UpdateProductRequest true "Fields to update"
// @Success      200 {object} ProductView
// @Failure      404 {object} map[string]string
// @Router       /api/admin/products/{id} [put]
func (ctrl *ProductController) UpdateProduct(c *fiber.Ctx) error {
	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	p, err := ctrl.ProductService.UpdateProduct(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return productError(c, err)
	}

	ctrl.ActivityService.Record(c, middleware.IdentityFromCtx(c),
		"product.updated", "Product", &p.ID, map[string]interface{}{"name": p.Name})

	return c.JSON(p)
}

// DeleteProduct godoc
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/admin/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := ctrl.ProductService.DeleteProduct(c.UserContext(), id); err != nil {
		return productError(c, err)
	}

	ctrl.ActivityService.Record(c, middleware.IdentityFromCtx(c),
		"product.deleted", "Product", nil, map[string]interface{}{"product_id": id})

	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

func productError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrDuplicateSlug),
		errors.Is(err, ErrUnknownCategory),
		errors.Is(err, ErrUnknownBrand),
		errors.Is(err, ErrUnknownCertification),
		errors.Is(err, ErrInvalidPrice),
		errors.Is(err, ErrSalePriceAbovePrice),
		errors.Is(err, ErrNegativeInitialStock):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
