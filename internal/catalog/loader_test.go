package catalog

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func writeCatalogFile(t *testing.T, lines ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "products.json.gz")
	file, err := os.Create(path)
	require.NoError(t, err)

	gz := gzip.NewWriter(file)
	for _, line := range lines {
		_, err := gz.Write([]byte(line + "\n"))
		require.NoError(t, err)
	}
	require.NoError(t, gz.Close())
	require.NoError(t, file.Close())

	return path
}

func TestFileLoader_Load(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())
	ctx := context.Background()

	path := writeCatalogFile(t,
		`{"product_id": 1, "name": "Laptop", "price": "900.00", "stock_quantity": 700}`,
		``,
		`{"product_id": 2, "name": "Mouse", "price": "25.50", "stock_quantity": 600}`,
	)

	products, err := loader.Load(ctx, path)

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Laptop", products[0].Name)
	assert.Equal(t, "900.00", products[0].Price.StringFixed(2))
	assert.Equal(t, 700, products[0].StockQuantity)
	assert.Equal(t, int64(2), products[1].ID)
}

func TestFileLoader_Load_MissingFile(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "nope.json.gz"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open catalog file")
}

func TestFileLoader_Load_InvalidRecords(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())
	ctx := context.Background()

	tests := []struct {
		name     string
		line     string
		errMatch string
	}{
		{
			name:     "malformed JSON",
			line:     `{"product_id": 1,`,
			errMatch: "invalid product record at line 1",
		},
		{
			name:     "missing product id",
			line:     `{"name": "Laptop", "price": "900.00", "stock_quantity": 1}`,
			errMatch: "invalid product id",
		},
		{
			name:     "negative price",
			line:     `{"product_id": 1, "name": "Laptop", "price": "-1.00", "stock_quantity": 1}`,
			errMatch: "negative price for product 1",
		},
		{
			name:     "negative stock",
			line:     `{"product_id": 1, "name": "Laptop", "price": "900.00", "stock_quantity": -1}`,
			errMatch: "negative stock for product 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCatalogFile(t, tt.line)

			_, err := loader.Load(ctx, path)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMatch)
		})
	}
}

func TestFileLoader_Load_NotGzipped(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	path := filepath.Join(t.TempDir(), "products.json.gz")
	require.NoError(t, os.WriteFile(path, []byte(`{"product_id": 1}`), 0o644))

	_, err := loader.Load(context.Background(), path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "gzip")
}

// seederRepo is a mock implementation of repository.ProductRepository.
type seederRepo struct {
	mock.Mock
}

func (m *seederRepo) GetAll(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *seederRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, ids []int64) (map[int64]model.Product, error) {
	args := m.Called(ctx, tx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]model.Product), args.Error(1)
}

func (m *seederRepo) DecrementStock(ctx context.Context, tx pgx.Tx, productID int64, quantity int) error {
	args := m.Called(ctx, tx, productID, quantity)
	return args.Error(0)
}

func (m *seederRepo) Upsert(ctx context.Context, products []model.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

func TestSeeder_Seed(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(seederRepo)
		loader := NewFileLoader(zerolog.Nop())
		seeder := NewSeeder(mockRepo, loader, zerolog.Nop())

		path := writeCatalogFile(t,
			`{"product_id": 1, "name": "Laptop", "price": "900.00", "stock_quantity": 700}`,
			`{"product_id": 2, "name": "Mouse", "price": "25.50", "stock_quantity": 600}`,
		)

		mockRepo.On("Upsert", ctx, mock.AnythingOfType("[]model.Product")).Return(nil)

		count, err := seeder.Seed(ctx, path)

		require.NoError(t, err)
		assert.Equal(t, 2, count)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Empty file is a no-op", func(t *testing.T) {
		mockRepo := new(seederRepo)
		loader := NewFileLoader(zerolog.Nop())
		seeder := NewSeeder(mockRepo, loader, zerolog.Nop())

		path := writeCatalogFile(t)

		count, err := seeder.Seed(ctx, path)

		require.NoError(t, err)
		assert.Zero(t, count)
		mockRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("Load failure", func(t *testing.T) {
		mockRepo := new(seederRepo)
		loader := NewFileLoader(zerolog.Nop())
		seeder := NewSeeder(mockRepo, loader, zerolog.Nop())

		_, err := seeder.Seed(ctx, filepath.Join(t.TempDir(), "nope.json.gz"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load catalog seed")
	})

	t.Run("Upsert failure", func(t *testing.T) {
		mockRepo := new(seederRepo)
		loader := NewFileLoader(zerolog.Nop())
		seeder := NewSeeder(mockRepo, loader, zerolog.Nop())

		path := writeCatalogFile(t,
			`{"product_id": 1, "name": "Laptop", "price": "900.00", "stock_quantity": 700}`,
		)

		mockRepo.On("Upsert", ctx, mock.AnythingOfType("[]model.Product")).
			Return(assert.AnError)

		_, err := seeder.Seed(ctx, path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to apply catalog seed")
	})
}
