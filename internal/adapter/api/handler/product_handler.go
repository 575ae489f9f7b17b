package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"agricsmart/internal/domain/entity"
	"agricsmart/internal/domain/repository"
	"agricsmart/internal/usecase"
	"agricsmart/pkg/errors"
	"agricsmart/pkg/response"
	"agricsmart/pkg/utils"
)

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
}

func NewProductHandler(productUseCase *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
	}
}

type geoPointRequest struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

type createProductRequest struct {
	Name            string           `json:"name" validate:"required,min=2"`
	Description     string           `json:"description"`
	Price           float64          `json:"price" validate:"required,gt=0"`
	Quantity        int              `json:"quantity" validate:"gte=0"`
	Category        string           `json:"category" validate:"required"`
	Images          []string         `json:"images"`
	Location        *geoPointRequest `json:"location"`
	DeliveryOptions []string         `json:"delivery_options" validate:"required,min=1,dive,oneof=pickup delivery shipping"`
}

func (h *ProductHandler) Create(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	input := usecase.CreateProductInput{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Quantity:        req.Quantity,
		Category:        req.Category,
		Images:          req.Images,
		DeliveryOptions: req.DeliveryOptions,
	}
	if req.Location != nil {
		input.Location = &entity.GeoPoint{
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		}
	}

	product, err := h.productUseCase.CreateProduct(c.Request().Context(), uid, input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, product)
}

type updateProductRequest struct {
	Name            string           `json:"name" validate:"omitempty,min=2"`
	Description     string           `json:"description"`
	Price           *float64         `json:"price" validate:"omitempty,gt=0"`
	Quantity        *int             `json:"quantity" validate:"omitempty,gte=0"`
	Category        string           `json:"category"`
	Images          []string         `json:"images"`
	Location        *geoPointRequest `json:"location"`
	DeliveryOptions []string         `json:"delivery_options" validate:"omitempty,dive,oneof=pickup delivery shipping"`
	Status          string           `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (h *ProductHandler) Update(c echo.Context) error {
	uid := c.Get("uid").(string)
	productID := c.Param("id")

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	input := usecase.UpdateProductInput{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Quantity:        req.Quantity,
		Category:        req.Category,
		Images:          req.Images,
		DeliveryOptions: req.DeliveryOptions,
		Status:          req.Status,
	}
	if req.Location != nil {
		input.Location = &entity.GeoPoint{
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		}
	}

	product, err := h.productUseCase.UpdateProduct(c.Request().Context(), productID, uid, input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	uid := c.Get("uid").(string)
	productID := c.Param("id")

	if err := h.productUseCase.DeleteProduct(c.Request().Context(), productID, uid); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Product deleted",
	})
}

func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.productUseCase.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) ListMine(c echo.Context) error {
	uid := c.Get("uid").(string)
	params := utils.GetPaginationParams(c)

	products, total, err := h.productUseCase.ListSellerProducts(c.Request().Context(), uid, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, products, total, params.Page, params.PageSize)
}

func (h *ProductHandler) Search(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	minPrice, _ := strconv.ParseFloat(c.QueryParam("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(c.QueryParam("max_price"), 64)

	filter := repository.ProductSearchFilter{
		Query:    c.QueryParam("q"),
		Category: c.QueryParam("category"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	}

	products, total, err := h.productUseCase.SearchProducts(c.Request().Context(), filter, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, products, total, params.Page, params.PageSize)
}

func (h *ProductHandler) Nearby(c echo.Context) error {
	lat, latErr := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if latErr != nil || lngErr != nil {
		return response.Error(c, errors.BadRequest("lat and lng query parameters are required", nil))
	}

	maxDistance, _ := strconv.ParseFloat(c.QueryParam("max_distance_km"), 64)

	products, err := h.productUseCase.FindNearbyProducts(c.Request().Context(), lat, lng, maxDistance)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, products)
}
