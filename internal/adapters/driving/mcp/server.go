package mcp

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/dtindex/internal/core/domain"
	"github.com/custodia-labs/dtindex/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for dtindex.
type Server struct {
	ports       *Ports
	server      *mcp.Server
	defaultPath string
}

// NewServer creates a new MCP server with the given ports.
// defaultPath, when set, overrides the configured dataset path for calls
// that do not name one.
func NewServer(ports *Ports, defaultPath string) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "dtindex",
		Version: Version,
	}

	s := &Server{
		ports:       ports,
		server:      mcp.NewServer(impl, nil),
		defaultPath: strings.TrimSpace(defaultPath),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// resolvePath picks the dataset path for a call: the explicit argument,
// then the server default, then the configured setting.
func (s *Server) resolvePath(path string) string {
	if p := strings.TrimSpace(path); p != "" {
		return p
	}
	if s.defaultPath != "" {
		return s.defaultPath
	}
	if s.ports.Settings != nil {
		settings, err := s.ports.Settings.Get()
		if err == nil && settings.Dataset.Path != "" {
			return settings.Dataset.Path
		}
		if err != nil {
			logger.Warn("mcp: reading settings: %v", err)
		}
	}
	return domain.DefaultDatasetPath
}

// load resolves path and loads the dataset.
func (s *Server) load(ctx context.Context, path string) (*domain.Dataset, error) {
	return s.ports.Dataset.Load(ctx, s.resolvePath(path))
}
