package usecase

import (
	"context"
	"math"
	"time"

	"agricsmart/internal/domain/entity"
	"agricsmart/internal/domain/repository"
	"agricsmart/internal/domain/service"
	"agricsmart/pkg/errors"
	"agricsmart/pkg/logger"
)

type OrderUseCase struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	outboxRepo  repository.OutboxRepository
	feeCalc     *service.DeliveryFeeCalculator
}

func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	outboxRepo repository.OutboxRepository,
	feeCalc *service.DeliveryFeeCalculator,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		outboxRepo:  outboxRepo,
		feeCalc:     feeCalc,
	}
}

type OrderItemInput struct {
	ProductID string
	Quantity  int
}

type CreateOrderInput struct {
	SellerID        string
	Items           []OrderItemInput
	DeliveryAddress entity.DeliveryAddress
	DeliveryMethod  string
	PaymentMethod   string
	Notes           string
}

// CreateOrder places an order for a buyer. Stock is reserved item by item
// with atomic conditional decrements; if any item cannot be reserved, the
// decrements already made are rolled back and the order fails. Totals are
// computed server-side from product price snapshots plus the delivery fee,
// never taken from the client.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, buyerID string, input CreateOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, errors.BadRequest("Order must contain at least one item", nil)
	}

	buyer, err := uc.userRepo.GetByID(ctx, buyerID)
	if err != nil {
		return nil, errors.NotFound("Buyer", err)
	}
	seller, err := uc.userRepo.GetByID(ctx, input.SellerID)
	if err != nil {
		return nil, errors.NotFound("Seller", err)
	}
	if buyer.ID == seller.ID {
		return nil, errors.BadRequest("You cannot order your own products", nil)
	}

	// Validate every line item up front so obviously broken orders fail
	// before any stock is touched.
	products := make(map[string]*entity.Product, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, errors.BadRequest("Item quantity must be positive", nil)
		}
		product, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product.SellerID != input.SellerID {
			return nil, errors.BadRequest("Product "+product.Name+" does not belong to the stated seller", nil)
		}
		if product.Status != entity.ProductStatusActive {
			return nil, errors.BadRequest("Product "+product.Name+" is not available", nil)
		}
		supportsMethod := false
		for _, option := range product.DeliveryOptions {
			if option == input.DeliveryMethod {
				supportsMethod = true
				break
			}
		}
		if !supportsMethod {
			return nil, errors.BadRequest("Product "+product.Name+" does not support "+input.DeliveryMethod, nil)
		}
		products[item.ProductID] = product
	}

	deliveryFee, err := uc.computeDeliveryFee(products, input)
	if err != nil {
		return nil, err
	}

	// Reserve stock. Each AdjustQuantity is atomic, so concurrent orders
	// against the same product cannot both pass the availability check.
	reserved := make([]OrderItemInput, 0, len(input.Items))
	for _, item := range input.Items {
		if _, err := uc.productRepo.AdjustQuantity(ctx, item.ProductID, -item.Quantity); err != nil {
			uc.releaseStock(ctx, reserved)
			return nil, err
		}
		reserved = append(reserved, item)
	}

	var itemsTotal float64
	orderItems := make([]entity.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		product := products[item.ProductID]
		orderItems = append(orderItems, entity.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
		})
		itemsTotal += product.Price * float64(item.Quantity)
	}
	itemsTotal = math.Round(itemsTotal*100) / 100

	now := time.Now()
	order := &entity.Order{
		BuyerID:         buyerID,
		SellerID:        input.SellerID,
		Items:           orderItems,
		ItemsTotal:      itemsTotal,
		DeliveryFee:     deliveryFee,
		TotalAmount:     math.Round((itemsTotal+deliveryFee)*100) / 100,
		Currency:        "GHS",
		DeliveryAddress: input.DeliveryAddress,
		DeliveryMethod:  input.DeliveryMethod,
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   entity.PaymentStatusPending,
		OrderStatus:     entity.OrderStatusPending,
		Notes:           input.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		uc.releaseStock(ctx, reserved)
		return nil, err
	}

	uc.enqueueOrderEvent(ctx, entity.OrderEventNew, order.ID)

	return order, nil
}

// computeDeliveryFee prices the order using the first located product as the
// seller's origin point.
func (uc *OrderUseCase) computeDeliveryFee(products map[string]*entity.Product, input CreateOrderInput) (float64, error) {
	if input.DeliveryMethod == entity.DeliveryMethodPickup {
		return 0, nil
	}
	if input.DeliveryAddress.Location == nil {
		return 0, errors.BadRequest("Delivery address must include coordinates for "+input.DeliveryMethod, nil)
	}

	var origin *entity.GeoPoint
	for _, item := range input.Items {
		if product := products[item.ProductID]; product.Location != nil {
			origin = product.Location
			break
		}
	}
	if origin == nil {
		return 0, errors.BadRequest("Seller products have no location to compute a delivery fee from", nil)
	}

	return uc.feeCalc.Calculate(*origin, *input.DeliveryAddress.Location, input.DeliveryMethod)
}

// releaseStock undoes reservations after a mid-flight failure. A failed
// release is logged and skipped so the remaining items still get restored.
func (uc *OrderUseCase) releaseStock(ctx context.Context, reserved []OrderItemInput) {
	for _, item := range reserved {
		if _, err := uc.productRepo.AdjustQuantity(ctx, item.ProductID, item.Quantity); err != nil {
			logger.Error("Failed to release %d units of product %s: %v", item.Quantity, item.ProductID, err)
		}
	}
}

func (uc *OrderUseCase) GetOrder(ctx context.Context, orderID, userID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.BuyerID != userID && order.SellerID != userID {
		return nil, errors.Forbidden("You don't have access to this order", nil)
	}

	return order, nil
}

func (uc *OrderUseCase) ListBuyerOrders(ctx context.Context, buyerID string, limit, offset int) ([]*entity.Order, int64, error) {
	return uc.orderRepo.ListByBuyerID(ctx, buyerID, limit, offset)
}

func (uc *OrderUseCase) ListSellerOrders(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Order, int64, error) {
	return uc.orderRepo.ListBySellerID(ctx, sellerID, limit, offset)
}

// UpdateOrderStatus moves an order along the allowed transition table.
// Sellers may move orders forward or cancel; buyers may only cancel, and
// only while the order is still pending. Entering cancelled restores every
// line item's stock.
func (uc *OrderUseCase) UpdateOrderStatus(ctx context.Context, orderID, userID, newStatus string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch userID {
	case order.SellerID:
	case order.BuyerID:
		if newStatus != entity.OrderStatusCancelled {
			return nil, errors.Forbidden("Buyers can only cancel orders", nil)
		}
		if order.OrderStatus != entity.OrderStatusPending {
			return nil, errors.BadRequest("Order can no longer be cancelled", nil)
		}
	default:
		return nil, errors.Forbidden("You don't have access to this order", nil)
	}

	if !entity.CanTransition(order.OrderStatus, newStatus) {
		return nil, errors.BadRequest("Cannot change order status from "+order.OrderStatus+" to "+newStatus, nil)
	}

	order.OrderStatus = newStatus
	order.UpdatedAt = time.Now()

	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	// Restocking only happens once the cancelled status is durable: a failed
	// status write leaves stock untouched and the cancel retryable, while a
	// successful one makes the order terminal so a retry cannot restore twice.
	if newStatus == entity.OrderStatusCancelled {
		uc.restoreStock(ctx, order)
	}

	uc.enqueueOrderEvent(ctx, entity.OrderEventStatusUpdate, order.ID)

	return order, nil
}

// restoreStock returns a cancelled order's line items to inventory. A failed
// restore is journaled as an outbox task so the dispatcher retries it.
func (uc *OrderUseCase) restoreStock(ctx context.Context, order *entity.Order) {
	for _, item := range order.Items {
		if _, err := uc.productRepo.AdjustQuantity(ctx, item.ProductID, item.Quantity); err != nil {
			logger.Error("Failed to restore %d units of product %s on cancel of order %s: %v",
				item.Quantity, item.ProductID, order.ID, err)
			task := &entity.OutboxTask{
				Event:     entity.OrderEventStockRestore,
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			}
			if err := uc.outboxRepo.Create(ctx, task); err != nil {
				logger.Error("Failed to journal stock restore for product %s of order %s: %v",
					item.ProductID, order.ID, err)
			}
		}
	}
}

// enqueueOrderEvent records the event for the notification dispatcher. The
// order operation itself never fails because of it.
func (uc *OrderUseCase) enqueueOrderEvent(ctx context.Context, event, orderID string) {
	task := &entity.OutboxTask{
		Event:   event,
		OrderID: orderID,
	}
	if err := uc.outboxRepo.Create(ctx, task); err != nil {
		logger.Error("Failed to enqueue %s event for order %s: %v", event, orderID, err)
	}
}
