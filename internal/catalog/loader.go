package catalog

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// Loader loads catalog seed records from a gzipped JSON-lines source.
type Loader interface {
	// Load reads a catalog file and returns its products.
	Load(ctx context.Context, path string) ([]model.Product, error)
}

// fileLoader implements Loader for the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalog loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "catalog-loader").Logger(),
	}
}

// Load reads a gzipped catalog file, one JSON product per line.
func (l *fileLoader) Load(ctx context.Context, path string) ([]model.Product, error) {
	l.logger.Info().Str("file", path).Msg("loading catalog file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open catalog file")
		return nil, fmt.Errorf("failed to open catalog file %s: %w", path, err)
	}
	defer file.Close()

	products, err := decodeProducts(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode catalog file %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("count", len(products)).
		Msg("catalog file loaded")

	return products, nil
}

// decodeProducts reads gzipped JSON-lines product records from r.
func decodeProducts(ctx context.Context, r io.Reader) ([]model.Product, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	var products []model.Product

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var p model.Product
		if err := json.Unmarshal([]byte(text), &p); err != nil {
			return nil, fmt.Errorf("invalid product record at line %d: %w", line, err)
		}

		if p.ID <= 0 {
			return nil, fmt.Errorf("invalid product id at line %d", line)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("negative price for product %d at line %d", p.ID, line)
		}
		if p.StockQuantity < 0 {
			return nil, fmt.Errorf("negative stock for product %d at line %d", p.ID, line)
		}

		products = append(products, p)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog records: %w", err)
	}

	return products, nil
}
