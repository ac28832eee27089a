package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dtindex/internal/adapters/driven/watch"
	"github.com/custodia-labs/dtindex/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can look up
index values.

By default, the server communicates over stdio using JSON-RPC. Use --port to
serve streamable HTTP instead. With --watch the loaded dataset is dropped
from the cache whenever the file changes on disk.

Tools:
  load_dataset  load the dataset and report its size
  search_index  look up companies by stock code or name
  list_years    list the years covered

Examples:
  # Stdio mode (default)
  dtindex mcp serve

  # HTTP mode, reloading the dataset when it is edited
  dtindex mcp serve --port 8080 --watch`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().Bool("watch", false, "invalidate the cached dataset when the file changes")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	watchFile, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("getting watch flag: %w", err)
	}

	ports := &mcp.Ports{
		Dataset:  datasetService,
		Query:    queryService,
		Settings: settingsService,
	}

	server, err := mcp.NewServer(ports, datasetFile)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if watchFile {
		cancel, err := startWatcher(ctx, nil)
		if err != nil {
			return err
		}
		defer cancel()
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}

// startWatcher watches the dataset file and invalidates the cached copy
// on change. onChange, if set, runs after each invalidation.
func startWatcher(ctx context.Context, onChange func(path string)) (context.CancelFunc, error) {
	if datasetService == nil {
		return nil, errors.New("dataset service not configured")
	}
	path, err := datasetPath()
	if err != nil {
		return nil, err
	}

	w, err := watch.New(path, datasetService)
	if err != nil {
		return nil, err
	}
	if onChange != nil {
		w.OnChange(onChange)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	watchCtx, cancel := context.WithCancel(ctx)
	if err := w.Start(watchCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to watch dataset: %w", err)
	}
	return cancel, nil
}
