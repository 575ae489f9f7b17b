package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agricsmart/internal/usecase"
	"agricsmart/pkg/errors"
	"agricsmart/pkg/response"
	"agricsmart/pkg/utils"
)

type PaymentHandler struct {
	paymentUseCase *usecase.PaymentUseCase
}

func NewPaymentHandler(paymentUseCase *usecase.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
	}
}

type createPaymentRequest struct {
	OrderID     string  `json:"order_id"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Currency    string  `json:"currency" validate:"omitempty,len=3"`
	Method      string  `json:"method" validate:"required,oneof=momo card bank crypto"`
	Description string  `json:"description"`
	PhoneNumber string  `json:"phone_number"`
	CardNumber  string  `json:"card_number"`
	CardType    string  `json:"card_type"`
}

func (h *PaymentHandler) Create(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	payment, err := h.paymentUseCase.CreatePayment(c.Request().Context(), uid, usecase.CreatePaymentInput{
		OrderID:     req.OrderID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Method:      req.Method,
		Description: req.Description,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, payment)
}

func (h *PaymentHandler) ProcessMomo(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if req.Amount <= 0 {
		return response.Error(c, errors.BadRequest("Amount must be positive", nil))
	}

	payment, err := h.paymentUseCase.ProcessMomoPayment(c.Request().Context(), uid, usecase.CreatePaymentInput{
		OrderID:     req.OrderID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, payment)
}

func (h *PaymentHandler) ProcessCard(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if req.Amount <= 0 {
		return response.Error(c, errors.BadRequest("Amount must be positive", nil))
	}

	payment, err := h.paymentUseCase.ProcessCardPayment(c.Request().Context(), uid, usecase.CreatePaymentInput{
		OrderID:     req.OrderID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		CardNumber:  req.CardNumber,
		CardType:    req.CardType,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, payment)
}

func (h *PaymentHandler) Get(c echo.Context) error {
	uid := c.Get("uid").(string)

	payment, err := h.paymentUseCase.GetPayment(c.Request().Context(), c.Param("id"), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, payment)
}

func (h *PaymentHandler) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	params := utils.GetPaginationParams(c)

	payments, total, err := h.paymentUseCase.ListUserPayments(c.Request().Context(), uid, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, payments, total, params.Page, params.PageSize)
}

func (h *PaymentHandler) UpdateStatus(c echo.Context) error {
	var req struct {
		Status string `json:"status" validate:"required,oneof=pending completed failed refunded"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	payment, err := h.paymentUseCase.UpdatePaymentStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, payment)
}

// Webhook receives provider callbacks. It acknowledges with 200 no matter
// what: a non-200 would make the provider retry a callback we either already
// handled or can never handle.
func (h *PaymentHandler) Webhook(c echo.Context) error {
	var req struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, map[string]string{"status": "received"})
	}

	h.paymentUseCase.HandleWebhook(c.Request().Context(), req.Reference, req.Status)

	return c.JSON(http.StatusOK, map[string]string{"status": "received"})
}
