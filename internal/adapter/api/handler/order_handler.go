package handler

import (
	"github.com/labstack/echo/v4"

	"agricsmart/internal/domain/entity"
	"agricsmart/internal/usecase"
	"agricsmart/pkg/errors"
	"agricsmart/pkg/response"
	"agricsmart/pkg/utils"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
	}
}

type orderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type deliveryAddressRequest struct {
	Street     string           `json:"street" validate:"required"`
	City       string           `json:"city" validate:"required"`
	State      string           `json:"state"`
	Country    string           `json:"country" validate:"required"`
	PostalCode string           `json:"postal_code"`
	Location   *geoPointRequest `json:"location"`
}

type createOrderRequest struct {
	SellerID        string                 `json:"seller_id" validate:"required"`
	Items           []orderItemRequest     `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress deliveryAddressRequest `json:"delivery_address" validate:"required"`
	DeliveryMethod  string                 `json:"delivery_method" validate:"required,oneof=pickup delivery shipping"`
	PaymentMethod   string                 `json:"payment_method" validate:"required,oneof=momo card bank crypto"`
	Notes           string                 `json:"notes"`
}

func (h *OrderHandler) Create(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	items := make([]usecase.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	address := entity.DeliveryAddress{
		Street:     req.DeliveryAddress.Street,
		City:       req.DeliveryAddress.City,
		State:      req.DeliveryAddress.State,
		Country:    req.DeliveryAddress.Country,
		PostalCode: req.DeliveryAddress.PostalCode,
	}
	if req.DeliveryAddress.Location != nil {
		address.Location = &entity.GeoPoint{
			Latitude:  req.DeliveryAddress.Location.Latitude,
			Longitude: req.DeliveryAddress.Location.Longitude,
		}
	}

	order, err := h.orderUseCase.CreateOrder(c.Request().Context(), uid, usecase.CreateOrderInput{
		SellerID:        req.SellerID,
		Items:           items,
		DeliveryAddress: address,
		DeliveryMethod:  req.DeliveryMethod,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, order)
}

func (h *OrderHandler) Get(c echo.Context) error {
	uid := c.Get("uid").(string)

	order, err := h.orderUseCase.GetOrder(c.Request().Context(), c.Param("id"), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) ListMine(c echo.Context) error {
	uid := c.Get("uid").(string)
	params := utils.GetPaginationParams(c)

	orders, total, err := h.orderUseCase.ListBuyerOrders(c.Request().Context(), uid, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, orders, total, params.Page, params.PageSize)
}

func (h *OrderHandler) ListSales(c echo.Context) error {
	uid := c.Get("uid").(string)
	params := utils.GetPaginationParams(c)

	orders, total, err := h.orderUseCase.ListSellerOrders(c.Request().Context(), uid, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, orders, total, params.Page, params.PageSize)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req struct {
		Status string `json:"status" validate:"required,oneof=processing shipped delivered cancelled"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUseCase.UpdateOrderStatus(c.Request().Context(), c.Param("id"), uid, req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}
