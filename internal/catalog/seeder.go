package catalog

import (
	"context"
	"fmt"

	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// Seeder loads catalog seed records and upserts them into the product store.
type Seeder struct {
	repo   repository.ProductRepository
	loader Loader
	logger zerolog.Logger
}

// NewSeeder creates a new catalog seeder.
func NewSeeder(repo repository.ProductRepository, loader Loader, logger zerolog.Logger) *Seeder {
	return &Seeder{
		repo:   repo,
		loader: loader,
		logger: logger.With().Str("component", "catalog-seeder").Logger(),
	}
}

// Seed loads the catalog file at path and upserts its products,
// returning the number of products applied.
func (s *Seeder) Seed(ctx context.Context, path string) (int, error) {
	products, err := s.loader.Load(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("failed to load catalog seed: %w", err)
	}

	if len(products) == 0 {
		s.logger.Warn().Str("path", path).Msg("catalog seed file contains no products")
		return 0, nil
	}

	if err := s.repo.Upsert(ctx, products); err != nil {
		return 0, fmt.Errorf("failed to apply catalog seed: %w", err)
	}

	s.logger.Info().
		Str("path", path).
		Int("count", len(products)).
		Msg("catalog seeded")

	return len(products), nil
}
