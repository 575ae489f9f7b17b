package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"agricsmart/internal/domain/entity"
	"agricsmart/internal/usecase"
	"agricsmart/pkg/errors"
)

// emptyPaymentRepo knows no payments, which is what a webhook for a foreign
// reference sees.
type emptyPaymentRepo struct{}

func (emptyPaymentRepo) Create(ctx context.Context, payment *entity.Payment) error { return nil }
func (emptyPaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	return nil, errors.NotFound("Payment", nil)
}
func (emptyPaymentRepo) GetByReference(ctx context.Context, reference string) (*entity.Payment, error) {
	return nil, errors.NotFound("Payment", nil)
}
func (emptyPaymentRepo) Update(ctx context.Context, payment *entity.Payment) error { return nil }
func (emptyPaymentRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Payment, int64, error) {
	return nil, 0, nil
}

func webhookContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestWebhookAlwaysAcknowledgesWith200(t *testing.T) {
	h := NewPaymentHandler(usecase.NewPaymentUseCase(nil, nil, nil))

	// Malformed body: no webhook processing happens, still 200.
	c, rec := webhookContext(`{"reference": 12`)
	if assert.NoError(t, h.Webhook(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "received")
	}
}

func TestWebhookUnknownReferenceStillAcknowledges(t *testing.T) {
	paymentRepo := emptyPaymentRepo{}
	h := NewPaymentHandler(usecase.NewPaymentUseCase(paymentRepo, nil, nil))

	c, rec := webhookContext(`{"reference": "PAY-0-0000", "status": "successful"}`)
	if assert.NoError(t, h.Webhook(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "received")
	}
}
