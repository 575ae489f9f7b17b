package usecase

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agricsmart/internal/domain/entity"
	"agricsmart/pkg/errors"
)

func newPaymentTestFixture(orders ...*entity.Order) (*PaymentUseCase, *fakePaymentRepo, *fakeOrderRepo, *fakeOutboxRepo) {
	paymentRepo := newFakePaymentRepo()
	orderRepo := newFakeOrderRepo(orders...)
	outboxRepo := newFakeOutboxRepo()
	uc := NewPaymentUseCase(paymentRepo, orderRepo, outboxRepo)
	return uc, paymentRepo, orderRepo, outboxRepo
}

func pendingOrder(id, buyerID string) *entity.Order {
	return &entity.Order{
		ID:            id,
		BuyerID:       buyerID,
		SellerID:      "seller-1",
		OrderStatus:   entity.OrderStatusPending,
		PaymentStatus: entity.PaymentStatusPending,
	}
}

func TestProcessMomoPaymentGeneratesReference(t *testing.T) {
	uc, _, _, _ := newPaymentTestFixture(pendingOrder("o1", "buyer-1"))

	payment, err := uc.ProcessMomoPayment(context.Background(), "buyer-1", CreatePaymentInput{
		OrderID:     "o1",
		Amount:      45.50,
		PhoneNumber: "+233201234567",
	})

	require.NoError(t, err)
	assert.Equal(t, "momo", payment.Method)
	assert.Equal(t, entity.PaymentStatusPending, payment.Status)
	assert.Equal(t, "GHS", payment.Currency)
	assert.Equal(t, "+233201234567", payment.Details.PhoneNumber)
	assert.Regexp(t, regexp.MustCompile(`^MOMO-\d+-\d{4}$`), payment.Details.Reference)
	assert.Regexp(t, regexp.MustCompile(`^TXN-\d+-\d{4}$`), payment.Details.TransactionID)
}

func TestProcessMomoPaymentRequiresPhoneNumber(t *testing.T) {
	uc, _, _, _ := newPaymentTestFixture()

	_, err := uc.ProcessMomoPayment(context.Background(), "buyer-1", CreatePaymentInput{Amount: 10})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestProcessCardPaymentKeepsOnlyLast4(t *testing.T) {
	uc, _, _, _ := newPaymentTestFixture()

	payment, err := uc.ProcessCardPayment(context.Background(), "buyer-1", CreatePaymentInput{
		Amount:     30,
		CardNumber: "4242424242424242",
		CardType:   "visa",
	})

	require.NoError(t, err)
	assert.Equal(t, "card", payment.Method)
	assert.Equal(t, "4242", payment.Details.Last4)
	assert.Equal(t, "visa", payment.Details.CardType)
	assert.Regexp(t, regexp.MustCompile(`^CARD-\d+-\d{4}$`), payment.Details.Reference)
}

func TestCreatePaymentRejectsForeignOrder(t *testing.T) {
	uc, _, _, _ := newPaymentTestFixture(pendingOrder("o1", "buyer-1"))

	_, err := uc.CreatePayment(context.Background(), "someone-else", CreatePaymentInput{
		OrderID: "o1",
		Amount:  10,
		Method:  "momo",
	})

	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestCreatePaymentRejectsAlreadyPaidOrder(t *testing.T) {
	order := pendingOrder("o1", "buyer-1")
	order.PaymentStatus = entity.PaymentStatusCompleted
	uc, _, _, _ := newPaymentTestFixture(order)

	_, err := uc.CreatePayment(context.Background(), "buyer-1", CreatePaymentInput{
		OrderID: "o1",
		Amount:  10,
		Method:  "momo",
	})

	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCreatePaymentRejectsNonPositiveAmount(t *testing.T) {
	uc, _, _, _ := newPaymentTestFixture()

	_, err := uc.CreatePayment(context.Background(), "buyer-1", CreatePaymentInput{Amount: 0, Method: "momo"})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestWebhookSuccessfulCompletesPaymentAndMirrorsOrder(t *testing.T) {
	uc, paymentRepo, orderRepo, outboxRepo := newPaymentTestFixture(pendingOrder("o1", "buyer-1"))

	payment, err := uc.ProcessMomoPayment(context.Background(), "buyer-1", CreatePaymentInput{
		OrderID:     "o1",
		Amount:      45.50,
		PhoneNumber: "+233201234567",
	})
	require.NoError(t, err)

	uc.HandleWebhook(context.Background(), payment.Details.Reference, "successful")

	updated, _ := paymentRepo.GetByID(context.Background(), payment.ID)
	assert.Equal(t, entity.PaymentStatusCompleted, updated.Status)

	order, _ := orderRepo.GetByID(context.Background(), "o1")
	assert.Equal(t, entity.PaymentStatusCompleted, order.PaymentStatus)
	assert.Equal(t, payment.ID, order.PaymentID)

	// A completed payment queues the seller notification.
	require.Len(t, outboxRepo.tasks, 1)
	assert.Equal(t, entity.OrderEventPaymentRecvd, outboxRepo.tasks[0].Event)
	assert.Equal(t, "o1", outboxRepo.tasks[0].OrderID)
}

func TestWebhookFailedMarksPaymentFailed(t *testing.T) {
	uc, paymentRepo, orderRepo, outboxRepo := newPaymentTestFixture(pendingOrder("o1", "buyer-1"))

	payment, err := uc.ProcessMomoPayment(context.Background(), "buyer-1", CreatePaymentInput{
		OrderID:     "o1",
		Amount:      45.50,
		PhoneNumber: "+233201234567",
	})
	require.NoError(t, err)

	uc.HandleWebhook(context.Background(), payment.Details.Reference, "failed")

	updated, _ := paymentRepo.GetByID(context.Background(), payment.ID)
	assert.Equal(t, entity.PaymentStatusFailed, updated.Status)

	order, _ := orderRepo.GetByID(context.Background(), "o1")
	assert.Equal(t, entity.PaymentStatusFailed, order.PaymentStatus)

	// Failures do not notify the seller.
	assert.Empty(t, outboxRepo.tasks)
}

func TestWebhookUnknownReferenceIsIgnored(t *testing.T) {
	uc, paymentRepo, _, _ := newPaymentTestFixture()

	uc.HandleWebhook(context.Background(), "PAY-0-0000", "successful")

	assert.Empty(t, paymentRepo.payments)
}

func TestWebhookUnknownStatusIsIgnored(t *testing.T) {
	uc, paymentRepo, _, _ := newPaymentTestFixture()

	payment, err := uc.ProcessMomoPayment(context.Background(), "buyer-1", CreatePaymentInput{
		Amount:      10,
		PhoneNumber: "+233201234567",
	})
	require.NoError(t, err)

	uc.HandleWebhook(context.Background(), payment.Details.Reference, "exploded")

	updated, _ := paymentRepo.GetByID(context.Background(), payment.ID)
	assert.Equal(t, entity.PaymentStatusPending, updated.Status)
}

func TestWebhookIsIdempotentOnRepeatedDelivery(t *testing.T) {
	uc, _, _, outboxRepo := newPaymentTestFixture(pendingOrder("o1", "buyer-1"))

	payment, err := uc.ProcessMomoPayment(context.Background(), "buyer-1", CreatePaymentInput{
		OrderID:     "o1",
		Amount:      45.50,
		PhoneNumber: "+233201234567",
	})
	require.NoError(t, err)

	uc.HandleWebhook(context.Background(), payment.Details.Reference, "successful")
	uc.HandleWebhook(context.Background(), payment.Details.Reference, "successful")

	// The second delivery is a no-op, so only one outbox task exists.
	assert.Len(t, outboxRepo.tasks, 1)
}

func TestUpdatePaymentStatusValidatesEnum(t *testing.T) {
	uc, _, _, _ := newPaymentTestFixture()

	_, err := uc.UpdatePaymentStatus(context.Background(), "p1", "paid")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestGetPaymentRestrictedToOwner(t *testing.T) {
	uc, _, _, _ := newPaymentTestFixture()

	payment, err := uc.ProcessMomoPayment(context.Background(), "buyer-1", CreatePaymentInput{
		Amount:      10,
		PhoneNumber: "+233201234567",
	})
	require.NoError(t, err)

	_, err = uc.GetPayment(context.Background(), payment.ID, "buyer-1")
	assert.NoError(t, err)

	_, err = uc.GetPayment(context.Background(), payment.ID, "stranger")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}
