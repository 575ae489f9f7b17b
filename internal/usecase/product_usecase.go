package usecase

import (
	"context"
	"sort"
	"time"

	"agricsmart/internal/domain/entity"
	"agricsmart/internal/domain/repository"
	"agricsmart/pkg/errors"
	"agricsmart/pkg/utils"
)

type ProductUseCase struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

func NewProductUseCase(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

type CreateProductInput struct {
	Name            string
	Description     string
	Price           float64
	Quantity        int
	Category        string
	Images          []string
	Location        *entity.GeoPoint
	DeliveryOptions []string
}

func validDeliveryOption(option string) bool {
	switch option {
	case entity.DeliveryMethodPickup, entity.DeliveryMethodDelivery, entity.DeliveryMethodShipping:
		return true
	}
	return false
}

func (uc *ProductUseCase) CreateProduct(ctx context.Context, sellerID string, input CreateProductInput) (*entity.Product, error) {
	seller, err := uc.userRepo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, errors.NotFound("Seller", err)
	}
	if seller.Role != entity.RoleSeller && seller.Role != entity.RoleAdmin {
		return nil, errors.Forbidden("Only sellers can list products", nil)
	}

	if input.Price <= 0 {
		return nil, errors.BadRequest("Price must be positive", nil)
	}
	if input.Quantity < 0 {
		return nil, errors.BadRequest("Quantity must not be negative", nil)
	}
	for _, option := range input.DeliveryOptions {
		if !validDeliveryOption(option) {
			return nil, errors.BadRequest("Invalid delivery option: "+option, nil)
		}
	}

	status := entity.ProductStatusActive
	if input.Quantity == 0 {
		status = entity.ProductStatusSoldOut
	}

	now := time.Now()
	product := &entity.Product{
		SellerID:        sellerID,
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price,
		Quantity:        input.Quantity,
		Category:        input.Category,
		Images:          input.Images,
		Location:        input.Location,
		DeliveryOptions: input.DeliveryOptions,
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

type UpdateProductInput struct {
	Name            string
	Description     string
	Price           *float64
	Quantity        *int
	Category        string
	Images          []string
	Location        *entity.GeoPoint
	DeliveryOptions []string
	Status          string
}

func (uc *ProductUseCase) UpdateProduct(ctx context.Context, id, sellerID string, input UpdateProductInput) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if product.SellerID != sellerID {
		return nil, errors.Forbidden("You don't have permission to update this product", nil)
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, errors.BadRequest("Price must be positive", nil)
		}
		product.Price = *input.Price
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, errors.BadRequest("Quantity must not be negative", nil)
		}
		product.Quantity = *input.Quantity
	}
	if input.Category != "" {
		product.Category = input.Category
	}
	if input.Images != nil {
		product.Images = input.Images
	}
	if input.Location != nil {
		product.Location = input.Location
	}
	if input.DeliveryOptions != nil {
		for _, option := range input.DeliveryOptions {
			if !validDeliveryOption(option) {
				return nil, errors.BadRequest("Invalid delivery option: "+option, nil)
			}
		}
		product.DeliveryOptions = input.DeliveryOptions
	}
	if input.Status == entity.ProductStatusInactive {
		product.Status = entity.ProductStatusInactive
	}

	// Re-derive the quantity-linked status unless the seller parked the
	// listing as inactive.
	if product.Status != entity.ProductStatusInactive || input.Status == entity.ProductStatusActive {
		if product.Quantity == 0 {
			product.Status = entity.ProductStatusSoldOut
		} else {
			product.Status = entity.ProductStatusActive
		}
	}

	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (uc *ProductUseCase) DeleteProduct(ctx context.Context, id, sellerID string) error {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if product.SellerID != sellerID {
		return errors.Forbidden("You don't have permission to delete this product", nil)
	}

	return uc.productRepo.Delete(ctx, id)
}

func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

func (uc *ProductUseCase) ListSellerProducts(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Product, int64, error) {
	return uc.productRepo.ListBySellerID(ctx, sellerID, limit, offset)
}

func (uc *ProductUseCase) SearchProducts(ctx context.Context, filter repository.ProductSearchFilter, limit, offset int) ([]*entity.Product, int64, error) {
	return uc.productRepo.Search(ctx, filter, limit, offset)
}

// NearbyProduct pairs a product with its distance from the query point.
type NearbyProduct struct {
	Product    *entity.Product `json:"product"`
	DistanceKm float64         `json:"distance_km"`
}

// FindNearbyProducts returns active products within maxDistanceKm of the
// given point, nearest first. Products without a location are skipped.
func (uc *ProductUseCase) FindNearbyProducts(ctx context.Context, lat, lng, maxDistanceKm float64) ([]NearbyProduct, error) {
	if maxDistanceKm <= 0 {
		maxDistanceKm = 50
	}

	products, err := uc.productRepo.ListActiveWithLocation(ctx)
	if err != nil {
		return nil, err
	}

	var nearby []NearbyProduct
	for _, product := range products {
		if product.Location == nil {
			continue
		}
		distance := utils.HaversineKm(lat, lng, product.Location.Latitude, product.Location.Longitude)
		if distance <= maxDistanceKm {
			nearby = append(nearby, NearbyProduct{Product: product, DistanceKm: distance})
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})

	return nearby, nil
}
