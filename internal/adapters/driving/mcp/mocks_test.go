package mcp

import (
	"context"

	"github.com/custodia-labs/dtindex/internal/core/domain"
)

// mockDatasetService is a mock implementation of driving.DatasetService.
type mockDatasetService struct {
	dataset  *domain.Dataset
	err      error
	lastPath string
}

func (m *mockDatasetService) Load(_ context.Context, path string) (*domain.Dataset, error) {
	m.lastPath = path
	return m.dataset, m.err
}

func (m *mockDatasetService) Invalidate(_ string) {}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.Settings
	err      error
}

func (m *mockSettingsService) Get() (*domain.Settings, error) { return m.settings, m.err }

func (m *mockSettingsService) Set(_, _ string) error { return m.err }

func (m *mockSettingsService) Unset(_ string) error { return m.err }

func (m *mockSettingsService) Keys() []string { return nil }

func (m *mockSettingsService) ConfigPath() string { return "" }

func testDataset() *domain.Dataset {
	ds := domain.NewDataset([]domain.Record{
		{StockCode: "600008", EntityName: "首创股份", Year: 2010, IndexValue: 12.35},
		{StockCode: "000100", EntityName: "TCL科技", Year: 2010, IndexValue: 5},
		{StockCode: "600008", EntityName: "首创股份", Year: 2015, IndexValue: 30},
	})
	ds.ID = "ds-1"
	ds.Path = "index.csv"
	ds.Format = domain.FormatCSV
	ds.Encoding = "gbk"
	return ds
}
