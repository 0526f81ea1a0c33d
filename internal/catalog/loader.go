package catalog

import (
	"os"

	"github.com/goccy/go-json"

	"moviechain/internal/common/errors"
	"moviechain/internal/models"
)

// LoadFile reads a catalog from a JSON array of movie records. Entries keep
// their file order.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewCatalogLoadFailedError(path, err)
	}

	var movies []models.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		return nil, errors.NewCatalogLoadFailedError(path, err)
	}
	return New(movies)
}

// Load returns the catalog at path, or the built-in one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
