package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/dtindex/internal/core/domain"
)

// mockLoader returns a fixed table and counts calls.
type mockLoader struct {
	mu    sync.Mutex
	exts  []string
	table *domain.RawTable
	err   error
	calls int
}

func (m *mockLoader) Extensions() []string { return m.exts }

func (m *mockLoader) Load(_ context.Context, path string) (*domain.RawTable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	t := *m.table
	t.Path = path
	return &t, nil
}

func (m *mockLoader) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockNormaliser wraps the rows of a table verbatim into records.
type mockNormaliser struct {
	records []domain.Record
	err     error
}

func (m *mockNormaliser) Normalise(raw *domain.RawTable) (*domain.Dataset, error) {
	if m.err != nil {
		return nil, m.err
	}
	ds := domain.NewDataset(m.records)
	ds.ID = "ds-1"
	ds.Format = raw.Format
	return ds, nil
}

// mapCache is a DatasetCache without expiry.
type mapCache struct {
	entries map[string]*domain.Dataset
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]*domain.Dataset)}
}

func (c *mapCache) Get(path string) (*domain.Dataset, bool) {
	ds, ok := c.entries[path]
	return ds, ok
}

func (c *mapCache) Put(path string, ds *domain.Dataset) { c.entries[path] = ds }

func (c *mapCache) Invalidate(path string) { delete(c.entries, path) }

func exampleRecords() []domain.Record {
	return []domain.Record{
		{StockCode: "600008", EntityName: "首创股份", Year: 2010, IndexValue: 12.35},
		{StockCode: "000100", EntityName: "TCL科技", Year: 2010, IndexValue: 5},
	}
}

func exampleDataset() *domain.Dataset {
	return domain.NewDataset(exampleRecords())
}
