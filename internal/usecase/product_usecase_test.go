package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agricsmart/internal/domain/entity"
	"agricsmart/pkg/errors"
)

func newProductTestFixture(products ...*entity.Product) (*ProductUseCase, *fakeProductRepo) {
	userRepo := newFakeUserRepo(
		&entity.User{ID: "seller-1", Role: entity.RoleSeller},
		&entity.User{ID: "buyer-1", Role: entity.RoleBuyer},
		&entity.User{ID: "admin-1", Role: entity.RoleAdmin},
	)
	productRepo := newFakeProductRepo(products...)
	return NewProductUseCase(productRepo, userRepo), productRepo
}

func TestCreateProductRequiresSellerRole(t *testing.T) {
	uc, _ := newProductTestFixture()

	input := CreateProductInput{Name: "Cassava", Price: 4.50, Quantity: 20}

	_, err := uc.CreateProduct(context.Background(), "buyer-1", input)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	_, err = uc.CreateProduct(context.Background(), "seller-1", input)
	assert.NoError(t, err)

	_, err = uc.CreateProduct(context.Background(), "admin-1", input)
	assert.NoError(t, err)
}

func TestCreateProductValidatesPriceAndQuantity(t *testing.T) {
	uc, _ := newProductTestFixture()

	_, err := uc.CreateProduct(context.Background(), "seller-1", CreateProductInput{Name: "Cassava", Price: 0, Quantity: 5})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = uc.CreateProduct(context.Background(), "seller-1", CreateProductInput{Name: "Cassava", Price: 4.50, Quantity: -1})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = uc.CreateProduct(context.Background(), "seller-1", CreateProductInput{
		Name: "Cassava", Price: 4.50, Quantity: 5, DeliveryOptions: []string{"drone"},
	})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCreateProductZeroQuantityStartsSoldOut(t *testing.T) {
	uc, _ := newProductTestFixture()

	product, err := uc.CreateProduct(context.Background(), "seller-1", CreateProductInput{
		Name: "Cassava", Price: 4.50, Quantity: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusSoldOut, product.Status)

	product, err = uc.CreateProduct(context.Background(), "seller-1", CreateProductInput{
		Name: "Yam", Price: 4.50, Quantity: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusActive, product.Status)
}

func TestUpdateProductRestrictedToOwner(t *testing.T) {
	uc, _ := newProductTestFixture(testProduct("p1", 5.00, 5))

	newName := UpdateProductInput{Name: "Fresh Maize"}

	_, err := uc.UpdateProduct(context.Background(), "p1", "buyer-1", newName)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	product, err := uc.UpdateProduct(context.Background(), "p1", "seller-1", newName)
	require.NoError(t, err)
	assert.Equal(t, "Fresh Maize", product.Name)
}

func TestUpdateProductRederivesStatusFromQuantity(t *testing.T) {
	uc, _ := newProductTestFixture(testProduct("p1", 5.00, 5))

	zero := 0
	product, err := uc.UpdateProduct(context.Background(), "p1", "seller-1", UpdateProductInput{Quantity: &zero})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusSoldOut, product.Status)

	ten := 10
	product, err = uc.UpdateProduct(context.Background(), "p1", "seller-1", UpdateProductInput{Quantity: &ten})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusActive, product.Status)
}

func TestUpdateProductInactiveSticksUntilReactivated(t *testing.T) {
	uc, _ := newProductTestFixture(testProduct("p1", 5.00, 5))

	product, err := uc.UpdateProduct(context.Background(), "p1", "seller-1", UpdateProductInput{Status: entity.ProductStatusInactive})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusInactive, product.Status)

	// Unrelated edits keep the listing parked.
	product, err = uc.UpdateProduct(context.Background(), "p1", "seller-1", UpdateProductInput{Name: "Maize"})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusInactive, product.Status)

	product, err = uc.UpdateProduct(context.Background(), "p1", "seller-1", UpdateProductInput{Status: entity.ProductStatusActive})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusActive, product.Status)
}

func TestDeleteProductRestrictedToOwner(t *testing.T) {
	uc, productRepo := newProductTestFixture(testProduct("p1", 5.00, 5))

	err := uc.DeleteProduct(context.Background(), "p1", "buyer-1")
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	err = uc.DeleteProduct(context.Background(), "p1", "seller-1")
	require.NoError(t, err)

	_, err = productRepo.GetByID(context.Background(), "p1")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestFindNearbyProductsFiltersAndSortsByDistance(t *testing.T) {
	near := testProduct("near", 5.00, 5)
	near.Location = &entity.GeoPoint{Latitude: 5.60, Longitude: -0.19}
	far := testProduct("far", 5.00, 5)
	far.Location = &entity.GeoPoint{Latitude: 5.70, Longitude: -0.10}
	remote := testProduct("remote", 5.00, 5)
	remote.Location = &entity.GeoPoint{Latitude: 9.40, Longitude: -0.84} // Tamale, ~420km away
	unlocated := testProduct("unlocated", 5.00, 5)
	unlocated.Location = nil

	uc, _ := newProductTestFixture(near, far, remote, unlocated)

	nearby, err := uc.FindNearbyProducts(context.Background(), 5.60, -0.19, 50)
	require.NoError(t, err)

	require.Len(t, nearby, 2)
	assert.Equal(t, "near", nearby[0].Product.ID)
	assert.Equal(t, "far", nearby[1].Product.ID)
	assert.Less(t, nearby[0].DistanceKm, nearby[1].DistanceKm)
}

func TestFindNearbyProductsSkipsInactive(t *testing.T) {
	inactive := testProduct("p1", 5.00, 5)
	inactive.Status = entity.ProductStatusInactive

	uc, _ := newProductTestFixture(inactive)

	nearby, err := uc.FindNearbyProducts(context.Background(), 5.6037, -0.1870, 50)
	require.NoError(t, err)
	assert.Empty(t, nearby)
}
