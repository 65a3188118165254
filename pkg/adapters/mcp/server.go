package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/rulegen"
	"github.com/aretw0/rulegen/internal/sanitize"
	"github.com/aretw0/rulegen/pkg/domain"
	"github.com/aretw0/rulegen/pkg/random"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const symbolsURI = "rulegen://symbols"

// GenerateResponse mirrors the HTTP POST /generate response.
type GenerateResponse struct {
	Results []*domain.Result `json:"results" jsonschema_description:"Generated texts, in draw order"`
}

// SymbolsResponse lists the loaded symbols.
type SymbolsResponse struct {
	Symbols []string `json:"symbols" jsonschema_description:"Symbols with at least one rule, in load order"`
}

// RulesResponse lists the rules of one symbol.
type RulesResponse struct {
	Symbol string        `json:"symbol" jsonschema_description:"The requested symbol"`
	Rules  []domain.Rule `json:"rules" jsonschema_description:"Alternatives registered for the symbol"`
}

// Generator is the part of the facade the MCP server needs.
type Generator interface {
	GenerateN(root string, n int, opts ...rulegen.GenerateOption) ([]*domain.Result, error)
	AvailableSymbols() []string
	RulesForSymbol(symbol string) []domain.Rule
}

// Server wraps a Generator and exposes it as an MCP Server.
type Server struct {
	gen       Generator
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(gen Generator) *Server {
	s := &Server{
		gen:       gen,
		mcpServer: server.NewMCPServer("rulegen-mcp", strings.TrimSpace(rulegen.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP protocol over SSE on port until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: generate
	generateTool := mcp.NewTool("generate",
		mcp.WithDescription("Expand a symbol into text using the loaded rule packs."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Root symbol to expand")),
		mcp.WithString("seed", mcp.Description("Seed for reproducible output. Integers are used as numeric seeds. Omit to continue the current stream.")),
		mcp.WithNumber("max_depth", mcp.Description("Maximum number of nested rule expansions (default 10)")),
		mcp.WithObject("variables", mcp.Description("Variables that override rules and pack defaults")),
		mcp.WithBoolean("allow_undefined", mcp.Description("Render undefined symbols as their name instead of a marker")),
		mcp.WithNumber("count", mcp.Description("Number of results to draw (default 1, at most 100)"), mcp.Min(1), mcp.Max(domain.MaxCount)),
		mcp.WithOutputSchema[GenerateResponse](),
	)
	s.mcpServer.AddTool(generateTool, mcp.NewStructuredToolHandler(s.handleGenerate))

	// TOOL: list_symbols
	s.mcpServer.AddTool(mcp.NewTool("list_symbols",
		mcp.WithDescription("List the symbols that have at least one rule."),
		mcp.WithOutputSchema[SymbolsResponse](),
	), mcp.NewStructuredToolHandler(s.handleListSymbols))

	// TOOL: get_rules
	s.mcpServer.AddTool(mcp.NewTool("get_rules",
		mcp.WithDescription("Get the rules registered for a symbol."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Symbol to inspect")),
		mcp.WithOutputSchema[RulesResponse](),
	), mcp.NewStructuredToolHandler(s.handleGetRules))
}

func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (GenerateResponse, error) {
	symbol, _ := args["symbol"].(string)
	if symbol == "" {
		return GenerateResponse{}, fmt.Errorf("%w: symbol is required", domain.ErrInvalidArgument)
	}

	var opts []rulegen.GenerateOption
	if seed, ok := args["seed"].(string); ok && seed != "" {
		opts = append(opts, rulegen.WithSeed(random.ParseSeed(seed)))
	}
	if depth, ok, err := intArg(args, "max_depth"); err != nil {
		return GenerateResponse{}, err
	} else if ok {
		opts = append(opts, rulegen.WithMaxDepth(depth))
	}
	if vars, ok := args["variables"].(map[string]interface{}); ok {
		strs := make(map[string]string, len(vars))
		for k, v := range vars {
			strs[k] = fmt.Sprint(v)
		}
		clean, err := sanitize.Variables(strs, sanitize.DefaultMaxInputSize)
		if err != nil {
			return GenerateResponse{}, err
		}
		opts = append(opts, rulegen.WithVariables(clean))
	}
	if allow, ok := args["allow_undefined"].(bool); ok && allow {
		opts = append(opts, rulegen.WithAllowUndefined(true))
	}

	count, ok, err := intArg(args, "count")
	if err != nil {
		return GenerateResponse{}, err
	}
	if !ok {
		count = 1
	}
	if count < 1 || count > domain.MaxCount {
		return GenerateResponse{}, fmt.Errorf("%w: count must be between 1 and %d, got %d", domain.ErrInvalidArgument, domain.MaxCount, count)
	}

	results, err := s.gen.GenerateN(symbol, count, opts...)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("generate failed: %w", err)
	}
	return GenerateResponse{Results: results}, nil
}

func (s *Server) handleListSymbols(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SymbolsResponse, error) {
	return SymbolsResponse{Symbols: s.gen.AvailableSymbols()}, nil
}

func (s *Server) handleGetRules(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RulesResponse, error) {
	symbol, _ := args["symbol"].(string)
	rules := s.gen.RulesForSymbol(symbol)
	if len(rules) == 0 {
		return RulesResponse{}, fmt.Errorf("symbol %q has no rules", symbol)
	}
	return RulesResponse{Symbol: symbol, Rules: rules}, nil
}

// intArg reads a whole number argument. JSON numbers arrive as float64.
func intArg(args map[string]interface{}, name string) (int, bool, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return 0, false, nil
	}
	f, ok := raw.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, false, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidArgument, name)
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false, fmt.Errorf("%w: %s is out of range", domain.ErrInvalidArgument, name)
	}
	return int(f), true, nil
}

func (s *Server) registerResources() {
	// EXPOSE: rulegen://symbols
	s.mcpServer.AddResource(mcp.NewResource(symbolsURI, "Loaded Symbols",
		mcp.WithResourceDescription("Every symbol with its rules"),
		mcp.WithMIMEType("application/json"),
	), s.handleSymbolsResource)
}

func (s *Server) handleSymbolsResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	grammar := make(map[string][]domain.Rule)
	for _, sym := range s.gen.AvailableSymbols() {
		grammar[sym] = s.gen.RulesForSymbol(sym)
	}
	jsonBytes, err := json.Marshal(grammar)
	if err != nil {
		return nil, fmt.Errorf("failed to encode symbols: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      symbolsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
