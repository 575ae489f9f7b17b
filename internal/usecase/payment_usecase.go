package usecase

import (
	"context"
	"time"

	"agricsmart/internal/domain/entity"
	"agricsmart/internal/domain/repository"
	"agricsmart/pkg/errors"
	"agricsmart/pkg/logger"
	"agricsmart/pkg/utils"
)

type PaymentUseCase struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	outboxRepo  repository.OutboxRepository
}

func NewPaymentUseCase(
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	outboxRepo repository.OutboxRepository,
) *PaymentUseCase {
	return &PaymentUseCase{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		outboxRepo:  outboxRepo,
	}
}

type CreatePaymentInput struct {
	OrderID     string
	Amount      float64
	Currency    string
	Method      string
	Description string
	Reference   string
	PhoneNumber string
	CardNumber  string
	CardType    string
}

func (uc *PaymentUseCase) CreatePayment(ctx context.Context, userID string, input CreatePaymentInput) (*entity.Payment, error) {
	if input.Amount <= 0 {
		return nil, errors.BadRequest("Amount must be positive", nil)
	}
	if input.Currency == "" {
		input.Currency = "GHS"
	}
	if input.Reference == "" {
		input.Reference = utils.GenerateReference("PAY")
	}

	if input.OrderID != "" {
		order, err := uc.orderRepo.GetByID(ctx, input.OrderID)
		if err != nil {
			return nil, err
		}
		if order.BuyerID != userID {
			return nil, errors.Forbidden("You can only pay for your own orders", nil)
		}
		if order.PaymentStatus == entity.PaymentStatusCompleted {
			return nil, errors.BadRequest("Order is already paid", nil)
		}
	}

	now := time.Now()
	payment := &entity.Payment{
		UserID:      userID,
		OrderID:     input.OrderID,
		Amount:      input.Amount,
		Currency:    input.Currency,
		Method:      input.Method,
		Status:      entity.PaymentStatusPending,
		Description: input.Description,
		Details: entity.PaymentDetails{
			Reference: input.Reference,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if payment.OrderID != "" {
		uc.mirrorToOrder(ctx, payment)
	}

	return payment, nil
}

// ProcessMomoPayment runs the mock mobile-money flow: the payment record is
// created pending and a synthetic transaction id is attached. Settlement
// arrives later through the provider webhook.
func (uc *PaymentUseCase) ProcessMomoPayment(ctx context.Context, userID string, input CreatePaymentInput) (*entity.Payment, error) {
	if input.PhoneNumber == "" {
		return nil, errors.BadRequest("Phone number is required for mobile money", nil)
	}

	input.Method = "momo"
	if input.Reference == "" {
		input.Reference = utils.GenerateReference("MOMO")
	}

	payment, err := uc.CreatePayment(ctx, userID, input)
	if err != nil {
		return nil, err
	}

	payment.Details.Provider = "momo"
	payment.Details.PhoneNumber = input.PhoneNumber
	payment.Details.TransactionID = utils.GenerateReference("TXN")
	payment.UpdatedAt = time.Now()

	if err := uc.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

// ProcessCardPayment is the mock card flow. Only the card type and last four
// digits are retained.
func (uc *PaymentUseCase) ProcessCardPayment(ctx context.Context, userID string, input CreatePaymentInput) (*entity.Payment, error) {
	if len(input.CardNumber) < 4 {
		return nil, errors.BadRequest("Card number is required for card payments", nil)
	}

	input.Method = "card"
	if input.Reference == "" {
		input.Reference = utils.GenerateReference("CARD")
	}

	payment, err := uc.CreatePayment(ctx, userID, input)
	if err != nil {
		return nil, err
	}

	payment.Details.Provider = "card"
	payment.Details.CardType = input.CardType
	payment.Details.Last4 = input.CardNumber[len(input.CardNumber)-4:]
	payment.Details.TransactionID = utils.GenerateReference("TXN")
	payment.UpdatedAt = time.Now()

	if err := uc.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

func (uc *PaymentUseCase) GetPayment(ctx context.Context, paymentID, userID string) (*entity.Payment, error) {
	payment, err := uc.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if payment.UserID != userID {
		return nil, errors.Forbidden("You don't have access to this payment", nil)
	}

	return payment, nil
}

func (uc *PaymentUseCase) ListUserPayments(ctx context.Context, userID string, limit, offset int) ([]*entity.Payment, int64, error) {
	return uc.paymentRepo.ListByUserID(ctx, userID, limit, offset)
}

func (uc *PaymentUseCase) UpdatePaymentStatus(ctx context.Context, paymentID, status string) (*entity.Payment, error) {
	if !entity.ValidPaymentStatus(status) {
		return nil, errors.BadRequest("Invalid payment status", nil)
	}

	payment, err := uc.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	return uc.applyStatus(ctx, payment, status)
}

// HandleWebhook processes a provider callback. Unknown references and bad
// status values are logged and ignored: the endpoint always acknowledges so
// the provider does not keep retrying a callback we can never act on.
func (uc *PaymentUseCase) HandleWebhook(ctx context.Context, reference, providerStatus string) {
	payment, err := uc.paymentRepo.GetByReference(ctx, reference)
	if err != nil {
		logger.Warn("Webhook for unknown payment reference %s: %v", reference, err)
		return
	}

	var status string
	switch providerStatus {
	case "successful":
		status = entity.PaymentStatusCompleted
	case "failed":
		status = entity.PaymentStatusFailed
	default:
		logger.Warn("Webhook for payment %s carried unknown status %q", payment.ID, providerStatus)
		return
	}

	if _, err := uc.applyStatus(ctx, payment, status); err != nil {
		logger.Error("Failed to apply webhook status %s to payment %s: %v", status, payment.ID, err)
	}
}

// applyStatus writes the new payment status and propagates it: the linked
// order's mirrored status is updated, and a completed payment queues a
// payment-received notification for the seller.
func (uc *PaymentUseCase) applyStatus(ctx context.Context, payment *entity.Payment, status string) (*entity.Payment, error) {
	if payment.Status == status {
		return payment, nil
	}

	payment.Status = status
	payment.UpdatedAt = time.Now()

	if err := uc.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	if payment.OrderID != "" {
		uc.mirrorToOrder(ctx, payment)

		if status == entity.PaymentStatusCompleted {
			task := &entity.OutboxTask{
				Event:   entity.OrderEventPaymentRecvd,
				OrderID: payment.OrderID,
			}
			if err := uc.outboxRepo.Create(ctx, task); err != nil {
				logger.Error("Failed to enqueue payment-received event for order %s: %v", payment.OrderID, err)
			}
		}
	}

	return payment, nil
}

// mirrorToOrder copies the authoritative payment state onto the order.
func (uc *PaymentUseCase) mirrorToOrder(ctx context.Context, payment *entity.Payment) {
	order, err := uc.orderRepo.GetByID(ctx, payment.OrderID)
	if err != nil {
		logger.Error("Failed to load order %s for payment mirror: %v", payment.OrderID, err)
		return
	}

	order.PaymentID = payment.ID
	order.PaymentStatus = payment.Status
	order.UpdatedAt = time.Now()

	if err := uc.orderRepo.Update(ctx, order); err != nil {
		logger.Error("Failed to mirror payment %s onto order %s: %v", payment.ID, order.ID, err)
	}
}
