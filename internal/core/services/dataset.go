package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/custodia-labs/dtindex/internal/core/domain"
	"github.com/custodia-labs/dtindex/internal/core/ports/driven"
	"github.com/custodia-labs/dtindex/internal/core/ports/driving"
	"github.com/custodia-labs/dtindex/internal/logger"
)

// Ensure DatasetService implements the interface.
var _ driving.DatasetService = (*DatasetService)(nil)

// DatasetService selects a loader by file extension, normalises the table
// and caches the resulting dataset.
type DatasetService struct {
	loaders    map[string]driven.TableLoader
	normaliser driven.TableNormaliser
	cache      driven.DatasetCache
}

// NewDatasetService creates a new dataset service.
// The cache is optional (can be nil); without it every Load reads the file.
// When two loaders claim an extension the later one wins.
func NewDatasetService(
	normaliser driven.TableNormaliser,
	cache driven.DatasetCache,
	loaders ...driven.TableLoader,
) *DatasetService {
	byExt := make(map[string]driven.TableLoader)
	for _, l := range loaders {
		for _, ext := range l.Extensions() {
			byExt[strings.ToLower(ext)] = l
		}
	}
	return &DatasetService{
		loaders:    byExt,
		normaliser: normaliser,
		cache:      cache,
	}
}

// Load returns the dataset at path.
func (s *DatasetService) Load(ctx context.Context, path string) (*domain.Dataset, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: dataset path is empty", domain.ErrInvalidInput)
	}
	path = filepath.Clean(path)

	logger.Section("Dataset Load")
	logger.Debug("Path: %s", path)

	if s.cache != nil {
		if ds, ok := s.cache.Get(path); ok {
			logger.Debug("Cache hit: %d records (id %s)", ds.Len(), ds.ID)
			return ds, nil
		}
		logger.Debug("Cache miss")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &domain.LoadError{Kind: domain.ErrFileNotFound, Path: path}
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, &domain.LoadError{Kind: domain.ErrFileNotFound, Path: path, Detail: "is a directory"}
	}

	ext := strings.ToLower(filepath.Ext(path))
	loader, ok := s.loaders[ext]
	if !ok {
		return nil, &domain.LoadError{
			Kind:   domain.ErrUnsupportedFormat,
			Path:   path,
			Detail: fmt.Sprintf("extension %q, supported: %s", ext, strings.Join(s.Extensions(), ", ")),
		}
	}

	raw, err := loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	ds, err := s.normaliser.Normalise(raw)
	if err != nil {
		return nil, fmt.Errorf("normalise %s: %w", path, err)
	}
	if ds.Path == "" {
		ds.Path = path
	}

	if s.cache != nil {
		s.cache.Put(path, ds)
	}
	logger.Info("%s", LoadMessage(ds))
	return ds, nil
}

// Invalidate forgets any cached dataset for path.
func (s *DatasetService) Invalidate(path string) {
	if s.cache == nil {
		return
	}
	logger.Debug("Invalidating cached dataset: %s", path)
	s.cache.Invalidate(filepath.Clean(path))
}

// Extensions lists the supported file extensions, sorted.
func (s *DatasetService) Extensions() []string {
	exts := make([]string, 0, len(s.loaders))
	for ext := range s.loaders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// LoadMessage renders the one-line summary shown after a successful load,
// e.g. "loaded 1,234 records | 56 companies".
func LoadMessage(ds *domain.Dataset) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("loaded %d records | %d companies", ds.Len(), ds.DistinctCodes())
}

// Outcome converts the result of DatasetService.Load into the value handed
// to collaborators.
func Outcome(ds *domain.Dataset, err error) domain.LoadOutcome {
	if err != nil {
		return domain.LoadOutcome{Status: domain.LoadStatusError, Message: err.Error()}
	}
	if ds == nil {
		return domain.LoadOutcome{Status: domain.LoadStatusError, Message: domain.ErrNotFound.Error()}
	}
	return domain.LoadOutcome{Status: domain.LoadStatusSuccess, Dataset: ds, Message: LoadMessage(ds)}
}
