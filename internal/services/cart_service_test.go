package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pasar/internal/apperr"
	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"
)

type cartFixture struct {
	carts     *repositories.MockCartRepository
	wishlists *repositories.MockWishlistRepository
	products  *repositories.MockProductRepository
	service   *services.CartService
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()
	f := &cartFixture{
		carts:     repositories.NewMockCartRepository(),
		wishlists: repositories.NewMockWishlistRepository(),
		products:  repositories.NewMockProductRepository(),
	}
	f.service = services.NewCartService(f.carts, f.wishlists, f.products)

	require.NoError(t, f.products.Create(&models.Product{
		ID: "prod-1", Name: "Headphones", Price: 300.0, Category: "Electronics", Brand: "Acme", Stock: 10,
	}))
	require.NoError(t, f.products.Create(&models.Product{
		ID: "prod-2", Name: "Mouse", Price: 100.0, Category: "Electronics", Brand: "Acme", Stock: 3,
	}))
	return f
}

func TestCartService_AddMergesDuplicates(t *testing.T) {
	f := newCartFixture(t)

	require.NoError(t, f.service.Add("user-1", "prod-1", 2))
	require.NoError(t, f.service.Add("user-1", "prod-1", 3))

	lines, err := f.service.View("user-1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, "Headphones", lines[0].Product.Name)
}

func TestCartService_AddValidations(t *testing.T) {
	f := newCartFixture(t)

	err := f.service.Add("user-1", "prod-missing", 1)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	err = f.service.Add("user-1", "prod-2", 99)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "Mouse")

	err = f.service.Add("user-1", "prod-1", 0)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestCartService_UpdateZeroRemovesLine(t *testing.T) {
	f := newCartFixture(t)

	require.NoError(t, f.service.Add("user-1", "prod-1", 2))
	require.NoError(t, f.service.Add("user-1", "prod-2", 1))

	require.NoError(t, f.service.Update("user-1", "prod-1", 0))

	lines, err := f.service.View("user-1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "prod-2", lines[0].ProductID)
}

func TestCartService_ClearAndRemove(t *testing.T) {
	f := newCartFixture(t)

	require.NoError(t, f.service.Add("user-1", "prod-1", 2))
	require.NoError(t, f.service.Add("user-1", "prod-2", 1))

	require.NoError(t, f.service.Remove("user-1", "prod-2"))
	lines, err := f.service.View("user-1")
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	require.NoError(t, f.service.Clear("user-1"))
	lines, err = f.service.View("user-1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartService_ViewDropsDeletedProducts(t *testing.T) {
	f := newCartFixture(t)

	require.NoError(t, f.service.Add("user-1", "prod-1", 1))
	require.NoError(t, f.products.Delete("prod-1"))

	lines, err := f.service.View("user-1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartService_Wishlist(t *testing.T) {
	f := newCartFixture(t)

	require.NoError(t, f.service.AddToWishlist("user-1", "prod-1"))
	// Set semantics: adding twice stores once.
	require.NoError(t, f.service.AddToWishlist("user-1", "prod-1"))

	products, err := f.service.Wishlist("user-1")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "prod-1", products[0].ID)

	err = f.service.AddToWishlist("user-1", "prod-missing")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	require.NoError(t, f.service.RemoveFromWishlist("user-1", "prod-1"))
	products, err = f.service.Wishlist("user-1")
	require.NoError(t, err)
	assert.Empty(t, products)
}
