package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/dtindex/internal/core/domain"
	"github.com/custodia-labs/dtindex/internal/core/services"
)

const (
	// uriScheme is the custom URI scheme for dtindex resources.
	uriScheme = "dtindex://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "dataset",
		Name:        "dataset",
		Description: "Summary of the configured dataset: size, companies and years",
		MIMEType:    "application/json",
	}, s.handleDatasetResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "companies/{code}",
		Name:        "company-history",
		Description: "Every yearly index value of the company with the given stock code",
		MIMEType:    "application/json",
	}, s.handleCompanyResource)
}

// handleDatasetResource returns a summary of the configured dataset.
func (s *Server) handleDatasetResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	ds, err := s.load(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}

	info := struct {
		ID        string `json:"id"`
		Path      string `json:"path"`
		Format    string `json:"format"`
		Encoding  string `json:"encoding,omitempty"`
		Records   int    `json:"records"`
		Companies int    `json:"companies"`
		Years     []int  `json:"years"`
		Message   string `json:"message"`
	}{
		ID:        ds.ID,
		Path:      ds.Path,
		Format:    ds.Format,
		Encoding:  ds.Encoding,
		Records:   ds.Len(),
		Companies: ds.DistinctCodes(),
		Years:     ds.Years(),
		Message:   services.LoadMessage(ds),
	}

	return jsonResource(req.Params.URI, info, "dataset")
}

// handleCompanyResource returns the history of one stock code.
func (s *Server) handleCompanyResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	code := extractStockCode(req.Params.URI)
	if code == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	ds, err := s.load(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}

	var history []domain.Record
	for _, r := range ds.Records() {
		if r.StockCode == code {
			history = append(history, r)
		}
	}
	if len(history) == 0 {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return jsonResource(req.Params.URI, services.Trend(history), "company history")
}

func jsonResource(uri string, v any, what string) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", what, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractStockCode extracts a padded stock code from a URI like
// dtindex://companies/{code}. It returns "" unless the code is valid.
func extractStockCode(uri string) string {
	const prefix = uriScheme + "companies/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	code := domain.PadStockCode(strings.TrimPrefix(uri, prefix))
	if !domain.IsValidStockCode(code) {
		return ""
	}
	return code
}
