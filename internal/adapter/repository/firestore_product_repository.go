package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"agricsmart/internal/domain/entity"
	"agricsmart/internal/domain/repository"
	"agricsmart/pkg/errors"
)

type firestoreProductRepository struct {
	client *firestore.Client
}

func NewFirestoreProductRepository(client *firestore.Client) repository.ProductRepository {
	return &firestoreProductRepository{
		client: client,
	}
}

func (r *firestoreProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		doc := r.client.Collection("products").NewDoc()
		product.ID = doc.ID
	}

	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	_, err := r.client.Collection("products").Doc(product.ID).Set(ctx, product)
	if err != nil {
		return errors.Internal("Failed to create product", err)
	}

	return nil
}

func (r *firestoreProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	doc, err := r.client.Collection("products").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Product", err)
		}
		return nil, errors.Internal("Failed to get product", err)
	}

	var product entity.Product
	if err := doc.DataTo(&product); err != nil {
		return nil, errors.Internal("Failed to parse product data", err)
	}

	return &product, nil
}

func (r *firestoreProductRepository) Update(ctx context.Context, product *entity.Product) error {
	product.UpdatedAt = time.Now()

	_, err := r.client.Collection("products").Doc(product.ID).Set(ctx, product)
	if err != nil {
		return errors.Internal("Failed to update product", err)
	}

	return nil
}

func (r *firestoreProductRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("products").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete product", err)
	}

	return nil
}

func (r *firestoreProductRepository) ListBySellerID(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Product, int64, error) {
	query := r.client.Collection("products").Query.
		Where("sellerId", "==", sellerID).
		OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count seller products", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var products []*entity.Product

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate seller products", err)
		}
		var product entity.Product
		if err := doc.DataTo(&product); err != nil {
			return nil, 0, errors.Internal("Failed to parse product data", err)
		}
		products = append(products, &product)
	}

	return products, total, nil
}

// Search fetches active products and filters in memory. Firestore has no
// full-text or range+equality composite here; acceptable at marketplace
// scale, and a dedicated search service is the upgrade path.
func (r *firestoreProductRepository) Search(ctx context.Context, filter repository.ProductSearchFilter, limit, offset int) ([]*entity.Product, int64, error) {
	baseQuery := r.client.Collection("products").Query.Where("status", "==", entity.ProductStatusActive)

	if filter.Category != "" {
		baseQuery = baseQuery.Where("category", "==", filter.Category)
	}

	docs, err := baseQuery.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to search products", err)
	}

	query := strings.ToLower(filter.Query)

	var matched []*entity.Product
	for _, doc := range docs {
		var product entity.Product
		if err := doc.DataTo(&product); err != nil {
			continue
		}

		if query != "" &&
			!strings.Contains(strings.ToLower(product.Name), query) &&
			!strings.Contains(strings.ToLower(product.Description), query) {
			continue
		}
		if filter.MinPrice > 0 && product.Price < filter.MinPrice {
			continue
		}
		if filter.MaxPrice > 0 && product.Price > filter.MaxPrice {
			continue
		}

		matched = append(matched, &product)
	}

	total := int64(len(matched))

	start := offset
	end := offset + limit
	if limit <= 0 {
		end = len(matched)
	}
	if start >= len(matched) {
		return []*entity.Product{}, total, nil
	}
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], total, nil
}

func (r *firestoreProductRepository) ListActiveWithLocation(ctx context.Context) ([]*entity.Product, error) {
	iter := r.client.Collection("products").Query.
		Where("status", "==", entity.ProductStatusActive).
		Documents(ctx)
	defer iter.Stop()

	var products []*entity.Product
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate products", err)
		}
		var product entity.Product
		if err := doc.DataTo(&product); err != nil {
			continue
		}
		if product.Location != nil {
			products = append(products, &product)
		}
	}

	return products, nil
}

// AdjustQuantity runs the read-check-write inside a Firestore transaction.
// The client retries the transaction on write conflict, so two concurrent
// orders against the same low-stock product serialize and exactly one wins.
func (r *firestoreProductRepository) AdjustQuantity(ctx context.Context, id string, delta int) (*entity.Product, error) {
	var updated entity.Product

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docRef := r.client.Collection("products").Doc(id)
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Product", err)
			}
			return err
		}

		var product entity.Product
		if err := doc.DataTo(&product); err != nil {
			return err
		}

		newQuantity := product.Quantity + delta
		if newQuantity < 0 {
			return errors.BadRequest("Insufficient quantity for product "+product.Name, nil)
		}

		product.Quantity = newQuantity
		if newQuantity == 0 {
			product.Status = entity.ProductStatusSoldOut
		} else if product.Status == entity.ProductStatusSoldOut {
			product.Status = entity.ProductStatusActive
		}
		product.UpdatedAt = time.Now()

		updated = product
		return tx.Set(docRef, &product)
	})

	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return nil, appErr
		}
		return nil, errors.Internal("Failed to adjust product quantity", err)
	}

	return &updated, nil
}
