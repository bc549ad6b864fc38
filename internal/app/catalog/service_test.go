package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nargizk/dastarkhan/internal/adapter/logger"
	"github.com/nargizk/dastarkhan/internal/domain"
	"github.com/nargizk/dastarkhan/internal/mocks"
)

func newService(t *testing.T) (*Service, *mocks.FoodRepository) {
	t.Helper()
	repo := new(mocks.FoodRepository)
	return NewService(repo, logger.New("test")), repo
}

func testFood(id, name string, stock int) *domain.Food {
	return &domain.Food{
		ID:           id,
		RestaurantID: "rest-1",
		Name:         name,
		SellingPrice: decimal.NewFromInt(1000),
		Stock:        stock,
	}
}

func TestCreateFood(t *testing.T) {
	svc, repo := newService(t)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Food")).Return(nil).Once()

	food := testFood("", "plov", 10)
	assert.NoError(t, svc.CreateFood(context.Background(), food))
	assert.NotEmpty(t, food.ID, "missing id is generated")
	repo.AssertExpectations(t)
}

func TestCreateFood_InvalidFood(t *testing.T) {
	svc, repo := newService(t)

	food := testFood("f1", "", 10)
	err := svc.CreateFood(context.Background(), food)

	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSearch(t *testing.T) {
	svc, repo := newService(t)

	plov := testFood("f1", "Plov", 10)
	plov.Ingredients = "rice, lamb, carrot"
	manty := testFood("f2", "Manty", 10)
	manty.Description = "steamed dumplings with lamb"
	salad := testFood("f3", "Salad", 10)

	repo.On("ListAll", mock.Anything).Return([]*domain.Food{plov, manty, salad}, nil)

	matched, err := svc.Search(context.Background(), "lamb", nil)
	assert.NoError(t, err)
	assert.Len(t, matched, 2)

	matched, err = svc.Search(context.Background(), "PLOV", nil)
	assert.NoError(t, err)
	assert.Len(t, matched, 1)
	assert.Equal(t, "f1", matched[0].ID)

	matched, err = svc.Search(context.Background(), "sushi", nil)
	assert.NoError(t, err)
	assert.Empty(t, matched)
}

func TestReserveStock(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		repoErr  error
		wantErr  error
	}{
		{"valid reservation", 2, nil, nil},
		{"zero quantity", 0, nil, domain.ErrInvalidArgument},
		{"negative quantity", -1, nil, domain.ErrInvalidArgument},
		{"insufficient stock", 10, domain.ErrInsufficientStock, domain.ErrInsufficientStock},
		{"unknown food", 2, domain.ErrNotFound, domain.ErrNotFound},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, repo := newService(t)

			if testCase.quantity > 0 {
				repo.On("ReserveStock", mock.Anything, "f1", testCase.quantity).Return(testCase.repoErr).Once()
			}

			err := svc.ReserveStock(context.Background(), "f1", testCase.quantity)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
			} else {
				assert.NoError(t, err)
			}
			if testCase.quantity <= 0 {
				repo.AssertNotCalled(t, "ReserveStock", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestRestoreStock_NonPositiveQuantity(t *testing.T) {
	svc, repo := newService(t)

	assert.ErrorIs(t, svc.RestoreStock(context.Background(), "f1", 0), domain.ErrInvalidArgument)
	repo.AssertNotCalled(t, "RestoreStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestReserveStock_ConcurrentSameFood(t *testing.T) {
	// 10 concurrent reservations against the same food all serialize through
	// the per-food lock; the repository sees them one at a time.
	svc, repo := newService(t)

	var inFlight, maxInFlight int
	var mu sync.Mutex
	repo.On("ReserveStock", mock.Anything, "f1", 1).Run(func(mock.Arguments) {
		mu.Lock()
		inFlight++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		mu.Unlock()

		mu.Lock()
		inFlight--
		mu.Unlock()
	}).Return(nil).Times(10)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.ReserveStock(context.Background(), "f1", 1))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxInFlight)
	repo.AssertExpectations(t)
}
