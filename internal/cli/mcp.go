package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/rulegen"
	"github.com/aretw0/rulegen/pkg/adapters/mcp"
	"github.com/aretw0/rulegen/pkg/domain"
)

// MCPOptions holds the settings of the mcp command.
type MCPOptions struct {
	SourceOptions
	Transport string
	Port      int
}

// RunMCP serves the loaded packs as MCP tools until ctx is done (sse) or stdin closes (stdio).
func RunMCP(ctx context.Context, opts MCPOptions, logger *slog.Logger) error {
	gen, err := NewGenerator(ctx, opts.SourceOptions, logger, domain.LifecycleHooks{})
	if err != nil {
		return err
	}
	srv := mcp.NewServer(rulegen.NewLocked(gen))

	switch opts.Transport {
	case "", "stdio":
		logger.Info("Starting rulegen MCP Server (Stdio)")
		return srv.ServeStdio()
	case "sse":
		logger.Info("Starting rulegen MCP Server (SSE)", "port", opts.Port)
		if err := srv.ServeSSE(ctx, opts.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("MCP Server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("%w: unknown transport %q (supported: stdio, sse)", domain.ErrInvalidArgument, opts.Transport)
	}
}
