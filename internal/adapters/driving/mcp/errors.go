// Package mcp provides an MCP (Model Context Protocol) server adapter for dtindex.
// It lets AI assistants load the index dataset and look up companies.
package mcp

import "errors"

// ErrMissingDatasetService is returned when the dataset service is not provided.
var ErrMissingDatasetService = errors.New("mcp: dataset service is required")

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")
