package service

import (
	"context"
	"errors"
	"testing"
	"time"

	perrors "github.com/avdeev/catalog-service/internal/errors"
	"github.com/avdeev/catalog-service/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProductStore is a mock implementation of the ProductStore interface.
// It returns the configured product/page/error and records Save and Delete calls.
type mockProductStore struct {
	product *store.Product
	page    *store.Page
	err     error

	saved       *store.Product
	saveCalls   int
	deleteCalls int
}

func (m *mockProductStore) FindByID(_ context.Context, _ int64) (*store.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	p := *m.product
	return &p, nil
}

func (m *mockProductStore) Save(_ context.Context, product *store.Product) (*store.Product, error) {
	m.saveCalls++
	saved := *product
	m.saved = &saved
	if m.err != nil {
		return nil, m.err
	}
	stored := saved
	if stored.ID == nil {
		id := int64(1)
		stored.ID = &id
	}
	return &stored, nil
}

func (m *mockProductStore) Delete(_ context.Context, _ *store.Product) error {
	m.deleteCalls++
	return m.err
}

func (m *mockProductStore) FindPage(_ context.Context, _, _ int32) (*store.Page, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.page, nil
}

// fakeClock returns a fixed point in time.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func int64Ptr(v int64) *int64 {
	return &v
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func Test_ProductService_FindByID(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		productID   int64
		expected    *store.Product
		expectError error
	}{
		{
			name: "Success - product found",
			mockStore: &mockProductStore{
				product: &store.Product{ID: int64Ptr(1), Name: "Widget", Quantity: 10, UnitPrice: 2.5, SupplierID: 1, DateOfCreation: timePtr(t0)},
			},
			productID:   1,
			expected:    &store.Product{ID: int64Ptr(1), Name: "Widget", Quantity: 10, UnitPrice: 2.5, SupplierID: 1, DateOfCreation: timePtr(t0)},
			expectError: nil,
		},
		{
			name: "Error - product not found",
			mockStore: &mockProductStore{
				err: perrors.ErrProductNotFound,
			},
			productID:   42,
			expected:    nil,
			expectError: perrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore, &fakeClock{now: t0})
			// when
			found, err := service.FindByID(context.Background(), tc.productID)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
		})
	}
}

func Test_ProductService_FindPage(t *testing.T) {
	ErrStoreError := errors.New("store error")
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expected    *store.Page
		expectError error
	}{
		{
			name: "Success - page with products",
			mockStore: &mockProductStore{
				page: &store.Page{
					Items:         []store.Product{{ID: int64Ptr(1), Name: "Widget"}},
					PageIndex:     0,
					PageSize:      10,
					TotalElements: 1,
				},
			},
			expected: &store.Page{
				Items:         []store.Product{{ID: int64Ptr(1), Name: "Widget"}},
				PageIndex:     0,
				PageSize:      10,
				TotalElements: 1,
			},
			expectError: nil,
		},
		{
			name: "Error - empty page is not found",
			mockStore: &mockProductStore{
				page: &store.Page{Items: []store.Product{}, PageIndex: 0, PageSize: 10},
			},
			expected:    nil,
			expectError: perrors.ErrProductNotFound,
		},
		{
			name: "Error - store error",
			mockStore: &mockProductStore{
				err: ErrStoreError,
			},
			expected:    nil,
			expectError: ErrStoreError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore, &fakeClock{now: time.Now()})
			// when
			page, err := service.FindPage(context.Background(), 0, 10)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, page)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, page)
		})
	}
}

func Test_ProductService_Create(t *testing.T) {
	ErrStoreError := errors.New("store error")
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	valid := store.Product{Name: "Widget", Quantity: 10, UnitPrice: 2.5, SupplierID: 1}

	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		candidate   store.Product
		expectError error
	}{
		{
			name:        "Success - product created",
			mockStore:   &mockProductStore{},
			candidate:   valid,
			expectError: nil,
		},
		{
			name:        "Error - candidate carries an ID",
			mockStore:   &mockProductStore{},
			candidate:   store.Product{ID: int64Ptr(7), Name: "Widget", Quantity: 10, UnitPrice: 2.5},
			expectError: perrors.ErrValidation,
		},
		{
			name:        "Error - empty name",
			mockStore:   &mockProductStore{},
			candidate:   store.Product{Quantity: 10, UnitPrice: 2.5},
			expectError: perrors.ErrValidation,
		},
		{
			name:        "Error - negative quantity",
			mockStore:   &mockProductStore{},
			candidate:   store.Product{Name: "Widget", Quantity: -1, UnitPrice: 2.5},
			expectError: perrors.ErrValidation,
		},
		{
			name:        "Error - zero unit price",
			mockStore:   &mockProductStore{},
			candidate:   store.Product{Name: "Widget", Quantity: 10, UnitPrice: 0},
			expectError: perrors.ErrValidation,
		},
		{
			name:        "Error - negative unit price",
			mockStore:   &mockProductStore{},
			candidate:   store.Product{Name: "Widget", Quantity: 10, UnitPrice: -0.5},
			expectError: perrors.ErrValidation,
		},
		{
			name:        "Error - creation date already set",
			mockStore:   &mockProductStore{},
			candidate:   store.Product{Name: "Widget", Quantity: 10, UnitPrice: 2.5, DateOfCreation: timePtr(t0)},
			expectError: perrors.ErrValidation,
		},
		{
			name:        "Error - last update date already set",
			mockStore:   &mockProductStore{},
			candidate:   store.Product{Name: "Widget", Quantity: 10, UnitPrice: 2.5, DateOfLastUpdate: timePtr(t0)},
			expectError: perrors.ErrValidation,
		},
		{
			name:        "Error - store error",
			mockStore:   &mockProductStore{err: ErrStoreError},
			candidate:   valid,
			expectError: ErrStoreError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore, &fakeClock{now: t0})
			// when
			created, err := service.Create(context.Background(), tc.candidate)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, created)
				if errors.Is(tc.expectError, perrors.ErrValidation) {
					assert.Zero(t, tc.mockStore.saveCalls, "validation failure must not reach the store")
				}
				return
			}
			require.NoError(t, err)
			require.NotNil(t, created.ID)
			assert.Equal(t, tc.candidate.Name, created.Name)
			assert.Equal(t, tc.candidate.Quantity, created.Quantity)
			assert.Equal(t, tc.candidate.UnitPrice, created.UnitPrice)
			assert.Equal(t, tc.candidate.SupplierID, created.SupplierID)
			require.NotNil(t, created.DateOfCreation)
			assert.Equal(t, t0, *created.DateOfCreation)
			assert.Nil(t, created.DateOfLastUpdate)
		})
	}
}

func Test_ProductService_Update(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)
	existing := store.Product{ID: int64Ptr(1), Name: "Widget", Quantity: 10, UnitPrice: 2.5, SupplierID: 1, DateOfCreation: timePtr(t0)}

	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		candidate   store.Product
		expectError error
	}{
		{
			name:        "Success - product updated",
			mockStore:   &mockProductStore{product: &existing},
			candidate:   store.Product{ID: int64Ptr(1), Name: "Widget v2", Quantity: 7, UnitPrice: 3.0, SupplierID: 2},
			expectError: nil,
		},
		{
			name:        "Error - product not found before validation",
			mockStore:   &mockProductStore{err: perrors.ErrProductNotFound},
			candidate:   store.Product{ID: int64Ptr(42), Name: "", Quantity: -1, UnitPrice: 0},
			expectError: perrors.ErrProductNotFound,
		},
		{
			name:        "Error - missing ID",
			mockStore:   &mockProductStore{product: &existing},
			candidate:   store.Product{Name: "Widget v2", Quantity: 7, UnitPrice: 3.0},
			expectError: perrors.ErrValidation,
		},
		{
			name:        "Error - empty name",
			mockStore:   &mockProductStore{product: &existing},
			candidate:   store.Product{ID: int64Ptr(1), Quantity: 7, UnitPrice: 3.0},
			expectError: perrors.ErrValidation,
		},
		{
			name:        "Error - negative quantity",
			mockStore:   &mockProductStore{product: &existing},
			candidate:   store.Product{ID: int64Ptr(1), Name: "Widget v2", Quantity: -1, UnitPrice: 3.0},
			expectError: perrors.ErrValidation,
		},
		{
			name:        "Error - non-positive unit price",
			mockStore:   &mockProductStore{product: &existing},
			candidate:   store.Product{ID: int64Ptr(1), Name: "Widget v2", Quantity: 7, UnitPrice: 0},
			expectError: perrors.ErrValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore, &fakeClock{now: t1})
			// when
			updated, err := service.Update(context.Background(), tc.candidate)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, updated)
				assert.Zero(t, tc.mockStore.saveCalls, "failed update must not reach the store")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), *updated.ID)
			assert.Equal(t, "Widget v2", updated.Name)
			assert.Equal(t, int32(7), updated.Quantity)
			assert.Equal(t, 3.0, updated.UnitPrice)
			assert.Equal(t, int64(2), updated.SupplierID)
			require.NotNil(t, updated.DateOfCreation)
			assert.Equal(t, t0, *updated.DateOfCreation, "creation date is immutable")
			require.NotNil(t, updated.DateOfLastUpdate)
			assert.Equal(t, t1, *updated.DateOfLastUpdate)
		})
	}
}

func Test_ProductService_UpdateQuantity(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	existing := store.Product{ID: int64Ptr(1), Name: "Widget", Quantity: 10, UnitPrice: 2.5, SupplierID: 1, DateOfCreation: timePtr(t0)}

	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		quantity    int32
		expectError error
	}{
		{
			name:        "Success - stock replaced",
			mockStore:   &mockProductStore{product: &existing},
			quantity:    5,
			expectError: nil,
		},
		{
			name:        "Success - stock can reach zero",
			mockStore:   &mockProductStore{product: &existing},
			quantity:    0,
			expectError: nil,
		},
		{
			name:        "Error - negative quantity",
			mockStore:   &mockProductStore{product: &existing},
			quantity:    -1,
			expectError: perrors.ErrInvalidArgument,
		},
		{
			name:        "Error - product not found",
			mockStore:   &mockProductStore{err: perrors.ErrProductNotFound},
			quantity:    5,
			expectError: perrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore, &fakeClock{now: t0.Add(time.Hour)})
			// when
			updated, err := service.UpdateQuantity(context.Background(), 1, tc.quantity)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, updated)
				assert.Zero(t, tc.mockStore.saveCalls, "failed stock update must not reach the store")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.quantity, updated.Quantity)
			assert.Nil(t, updated.DateOfLastUpdate, "stock adjustment must not refresh the last update date")
		})
	}
}

func Test_ProductService_DeleteByID(t *testing.T) {
	existing := store.Product{ID: int64Ptr(1), Name: "Widget", Quantity: 10, UnitPrice: 2.5}

	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expectError error
	}{
		{
			name:        "Success - product deleted",
			mockStore:   &mockProductStore{product: &existing},
			expectError: nil,
		},
		{
			name:        "Error - product not found",
			mockStore:   &mockProductStore{err: perrors.ErrProductNotFound},
			expectError: perrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore, &fakeClock{now: time.Now()})
			// when
			err := service.DeleteByID(context.Background(), 1)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, tc.mockStore.deleteCalls)
		})
	}
}

// Test_ProductService_Lifecycle drives a full create/adjust/update/delete
// sequence through the in-memory store.
func Test_ProductService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: t0}
	service := NewService(store.NewInMemoryStore(), clock)

	// empty catalog: any page is not found
	_, err := service.FindPage(ctx, 0, 10)
	assert.ErrorIs(t, err, perrors.ErrProductNotFound)

	// create
	created, err := service.Create(ctx, store.Product{Name: "Widget", Quantity: 10, UnitPrice: 2.5, SupplierID: 1})
	require.NoError(t, err)
	require.NotNil(t, created.ID)
	assert.Equal(t, int64(1), *created.ID)
	require.NotNil(t, created.DateOfCreation)
	assert.Equal(t, t0, *created.DateOfCreation)
	assert.Nil(t, created.DateOfLastUpdate)

	// stock adjustment leaves the last update date untouched
	adjusted, err := service.UpdateQuantity(ctx, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, int32(7), adjusted.Quantity)
	assert.Nil(t, adjusted.DateOfLastUpdate)

	// full update refreshes the last update date
	t1 := t0.Add(time.Hour)
	clock.now = t1
	updated, err := service.Update(ctx, store.Product{ID: int64Ptr(1), Name: "Widget v2", Quantity: 7, UnitPrice: 3.0, SupplierID: 1})
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", updated.Name)
	require.NotNil(t, updated.DateOfCreation)
	assert.Equal(t, t0, *updated.DateOfCreation)
	require.NotNil(t, updated.DateOfLastUpdate)
	assert.Equal(t, t1, *updated.DateOfLastUpdate)

	// listing returns the single stored product
	page, err := service.FindPage(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(1), page.TotalElements)

	// delete, then the product is gone
	err = service.DeleteByID(ctx, 1)
	require.NoError(t, err)
	_, err = service.FindByID(ctx, 1)
	assert.ErrorIs(t, err, perrors.ErrProductNotFound)
	_, err = service.FindPage(ctx, 0, 10)
	assert.ErrorIs(t, err, perrors.ErrProductNotFound)
}
