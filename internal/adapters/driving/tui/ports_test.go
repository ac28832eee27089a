package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dtindex/internal/core/domain"
	"github.com/custodia-labs/dtindex/internal/core/ports/driving"
	"github.com/custodia-labs/dtindex/internal/core/services"
)

// MockDatasetService implements driving.DatasetService for testing.
type MockDatasetService struct {
	LoadFunc    func(ctx context.Context, path string) (*domain.Dataset, error)
	loads       []string
	invalidated []string
}

func (m *MockDatasetService) Load(ctx context.Context, path string) (*domain.Dataset, error) {
	m.loads = append(m.loads, path)
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, path)
	}
	return testDataset(), nil
}

func (m *MockDatasetService) Invalidate(path string) {
	m.invalidated = append(m.invalidated, path)
}

// MockSettingsService implements driving.SettingsService for testing.
type MockSettingsService struct {
	settings *domain.Settings
	err      error
}

func (m *MockSettingsService) Get() (*domain.Settings, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.settings == nil {
		return domain.DefaultSettings(), nil
	}
	return m.settings, nil
}

func (m *MockSettingsService) Set(_, _ string) error { return nil }
func (m *MockSettingsService) Unset(_ string) error  { return nil }
func (m *MockSettingsService) Keys() []string        { return nil }
func (m *MockSettingsService) ConfigPath() string    { return "" }

var (
	_ driving.DatasetService  = (*MockDatasetService)(nil)
	_ driving.SettingsService = (*MockSettingsService)(nil)
)

func testDataset() *domain.Dataset {
	ds := domain.NewDataset([]domain.Record{
		{StockCode: "600008", EntityName: "首创股份", Year: 2010, IndexValue: 12.35},
		{StockCode: "600008", EntityName: "首创股份", Year: 2011, IndexValue: 20.1},
		{StockCode: "600008", EntityName: "首创股份", Year: 2012, IndexValue: 25.5},
		{StockCode: "000001", EntityName: "平安银行", Year: 2011, IndexValue: 40},
		{StockCode: "000002", EntityName: "万科A", Year: 2012, IndexValue: 8.75},
	})
	ds.Path = "index.csv"
	return ds
}

func TestNewPorts(t *testing.T) {
	dataset := &MockDatasetService{}
	query := services.NewQueryService()

	ports := NewPorts(dataset, query)

	require.NotNil(t, ports)
	assert.Equal(t, dataset, ports.Dataset)
	assert.Equal(t, query, ports.Query)
	assert.Nil(t, ports.Settings)
	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{"nil ports", nil, ErrInvalidPorts},
		{"missing dataset", &Ports{Query: services.NewQueryService()}, ErrMissingDatasetService},
		{"missing query", &Ports{Dataset: &MockDatasetService{}}, ErrMissingQueryService},
		{"settings optional", &Ports{Dataset: &MockDatasetService{}, Query: services.NewQueryService()}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
