package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nargizk/dastarkhan/internal/adapter/logger"
	"github.com/nargizk/dastarkhan/internal/domain"
	"github.com/nargizk/dastarkhan/internal/mocks"
)

func newService(t *testing.T) (*Service, *mocks.CartStore, *mocks.CatalogService) {
	t.Helper()
	store := new(mocks.CartStore)
	catalog := new(mocks.CatalogService)
	return NewService(store, catalog, logger.New("test")), store, catalog
}

func testFood(id string, price int64, stock int) *domain.Food {
	return &domain.Food{
		ID:           id,
		RestaurantID: "rest-1",
		Name:         "food " + id,
		SellingPrice: decimal.NewFromInt(price),
		Stock:        stock,
	}
}

func TestAddItem(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		stock    int
		existing *domain.Cart
		wantErr  error
		wantQty  int
	}{
		{
			name:     "add to empty cart",
			quantity: 2,
			stock:    5,
			existing: domain.NewCart(),
			wantQty:  2,
		},
		{
			name:     "non-positive quantity",
			quantity: 0,
			stock:    5,
			wantErr:  domain.ErrInvalidArgument,
		},
		{
			name:     "exceeds stock",
			quantity: 6,
			stock:    5,
			existing: domain.NewCart(),
			wantErr:  domain.ErrInsufficientStock,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, store, catalog := newService(t)
			ctx := context.Background()

			if testCase.quantity > 0 {
				catalog.On("GetFood", mock.Anything, "f1").Return(testFood("f1", 1000, testCase.stock), nil).Once()
				store.On("Get", mock.Anything, "cust-1").Return(testCase.existing, nil).Once()
			}
			if testCase.wantErr == nil {
				store.On("Save", mock.Anything, "cust-1", mock.AnythingOfType("*domain.Cart")).Return(nil).Once()
			}

			cart, err := svc.AddItem(ctx, "cust-1", "f1", testCase.quantity)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, testCase.wantQty, cart.Items[0].Quantity)
			store.AssertExpectations(t)
		})
	}
}

func TestAddItem_UnknownFood(t *testing.T) {
	svc, store, catalog := newService(t)

	catalog.On("GetFood", mock.Anything, "missing").Return(nil, domain.ErrNotFound).Once()

	_, err := svc.AddItem(context.Background(), "cust-1", "missing", 1)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestAddItem_RereadsPriceFromCatalog(t *testing.T) {
	svc, store, catalog := newService(t)

	existing := domain.NewCart()
	assert.NoError(t, existing.AddItem(testFood("f1", 1000, 10), 1))

	// The food's price changed since the first add.
	catalog.On("GetFood", mock.Anything, "f1").Return(testFood("f1", 1500, 10), nil).Once()
	store.On("Get", mock.Anything, "cust-1").Return(existing, nil).Once()
	store.On("Save", mock.Anything, "cust-1", mock.Anything).Return(nil).Once()

	cart, err := svc.AddItem(context.Background(), "cust-1", "f1", 1)

	assert.NoError(t, err)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.True(t, cart.Total().Equal(decimal.NewFromInt(3000)), "quote uses the current price")
}

func TestUpdateItemQuantity(t *testing.T) {
	svc, store, catalog := newService(t)

	existing := domain.NewCart()
	assert.NoError(t, existing.AddItem(testFood("f1", 1000, 5), 2))

	catalog.On("GetFood", mock.Anything, "f1").Return(testFood("f1", 1000, 5), nil).Once()
	store.On("Get", mock.Anything, "cust-1").Return(existing, nil).Once()
	store.On("Save", mock.Anything, "cust-1", mock.Anything).Return(nil).Once()

	cart, err := svc.UpdateItemQuantity(context.Background(), "cust-1", "f1", 4)

	assert.NoError(t, err)
	assert.Equal(t, 4, cart.Items[0].Quantity)
}

func TestUpdateItemQuantity_ZeroRemoves(t *testing.T) {
	svc, store, catalog := newService(t)

	existing := domain.NewCart()
	assert.NoError(t, existing.AddItem(testFood("f1", 1000, 5), 2))

	store.On("Get", mock.Anything, "cust-1").Return(existing, nil).Once()
	store.On("Save", mock.Anything, "cust-1", mock.Anything).Return(nil).Once()

	cart, err := svc.UpdateItemQuantity(context.Background(), "cust-1", "f1", 0)

	assert.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	// removal never needs the catalog
	catalog.AssertNotCalled(t, "GetFood", mock.Anything, mock.Anything)
}

func TestRemoveItem(t *testing.T) {
	svc, store, _ := newService(t)

	existing := domain.NewCart()
	assert.NoError(t, existing.AddItem(testFood("f1", 1000, 5), 2))
	assert.NoError(t, existing.AddItem(testFood("f2", 500, 5), 1))

	store.On("Get", mock.Anything, "cust-1").Return(existing, nil).Once()
	store.On("Save", mock.Anything, "cust-1", mock.Anything).Return(nil).Once()

	cart, err := svc.RemoveItem(context.Background(), "cust-1", "f1")

	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, "f2", cart.Items[0].FoodID)
}

func TestViewAndClear(t *testing.T) {
	svc, store, _ := newService(t)

	store.On("Get", mock.Anything, "cust-1").Return(domain.NewCart(), nil).Once()
	cart, err := svc.View(context.Background(), "cust-1")
	assert.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	store.On("Delete", mock.Anything, "cust-1").Return(nil).Once()
	assert.NoError(t, svc.Clear(context.Background(), "cust-1"))
	store.AssertExpectations(t)
}
