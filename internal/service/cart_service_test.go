package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dhruvp132/Dhyan-ecom/internal/apperr"
	"github.com/Dhruvp132/Dhyan-ecom/internal/entity"
	"github.com/Dhruvp132/Dhyan-ecom/internal/objectid"
)

func newCartFixture() (*CartService, *entity.User, entity.Product, *fakeCartStore) {
	user := testUser()
	product := testProduct("Tee", "500.00")
	cart := &fakeCartStore{}
	svc := NewCartService(cart, newFakeUserStore(user), newFakeProductStore(product))
	return svc, user, product, cart
}

func TestAddItemCreatesThenMergesVariant(t *testing.T) {
	svc, user, product, _ := newCartFixture()
	ctx := context.Background()

	first, created, err := svc.AddItem(ctx, user.ID, product.ID, 1, "black", "M")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, first.Quantity)

	second, created, err := svc.AddItem(ctx, user.ID, product.ID, 2, "black", "M")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, second.Quantity)

	views, err := svc.ListItems(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	subtotal := views[0].Product.Price.Mul(decimal.NewFromInt(int64(views[0].Quantity)))
	assert.True(t, subtotal.Equal(decimal.NewFromInt(1500)), "subtotal %s", subtotal)
}

func TestAddItemDifferentVariantsStaySeparate(t *testing.T) {
	svc, user, product, cart := newCartFixture()
	ctx := context.Background()

	_, created, err := svc.AddItem(ctx, user.ID, product.ID, 1, "black", "M")
	require.NoError(t, err)
	assert.True(t, created)

	_, created, err = svc.AddItem(ctx, user.ID, product.ID, 1, "black", "L")
	require.NoError(t, err)
	assert.True(t, created, "a different size is a new line item")
	assert.Len(t, cart.items, 2)
}

func TestAddItemValidation(t *testing.T) {
	svc, user, product, cart := newCartFixture()
	ctx := context.Background()

	_, _, err := svc.AddItem(ctx, "", product.ID, 1, "", "")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, _, err = svc.AddItem(ctx, "short-id", product.ID, 1, "", "")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, _, err = svc.AddItem(ctx, user.ID, "also-bad", 1, "", "")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, _, err = svc.AddItem(ctx, user.ID, product.ID, 0, "", "")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	// Format failures short-circuit before any repository read.
	assert.Zero(t, cart.calls)
}

func TestAddItemUnknownUserOrProduct(t *testing.T) {
	svc, user, product, _ := newCartFixture()
	ctx := context.Background()

	_, _, err := svc.AddItem(ctx, objectid.New(), product.ID, 1, "", "")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, _, err = svc.AddItem(ctx, user.ID, objectid.New(), 1, "", "")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListItemsJoinsProductData(t *testing.T) {
	svc, user, product, _ := newCartFixture()
	ctx := context.Background()

	_, _, err := svc.AddItem(ctx, user.ID, product.ID, 2, "white", "S")
	require.NoError(t, err)

	views, err := svc.ListItems(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, product.Name, views[0].Product.Name)
	assert.Equal(t, product.MainImage, views[0].Product.MainImage)
	assert.True(t, views[0].Product.Price.Equal(product.Price))
}

func TestListItemsEmptyCart(t *testing.T) {
	svc, user, _, _ := newCartFixture()

	views, err := svc.ListItems(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestRemoveItem(t *testing.T) {
	svc, user, product, cart := newCartFixture()
	ctx := context.Background()

	_, _, err := svc.AddItem(ctx, user.ID, product.ID, 1, "", "")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(ctx, user.ID, product.ID))
	assert.Empty(t, cart.items)

	// Removing an absent product is a no-op.
	require.NoError(t, svc.RemoveItem(ctx, user.ID, product.ID))

	err = svc.RemoveItem(ctx, "bad", product.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}
