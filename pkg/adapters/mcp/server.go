// Package mcp exposes the gate as an MCP server so agent tooling can run
// validation checks before moving content through a workflow.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/palisade"
	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/ports"
)

// Gate defines the interface required by the MCP server to run checks.
type Gate interface {
	Check(ctx context.Context, def *domain.TransitionDefinition, item domain.Item) (*domain.Outcome, error)
}

// Server wraps the gate and exposes it as an MCP Server.
type Server struct {
	gate      Gate
	loader    ports.DefinitionLoader
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(gate Gate, loader ports.DefinitionLoader) *Server {
	s := &Server{
		gate:      gate,
		loader:    loader,
		mcpServer: server.NewMCPServer("palisade-mcp", strings.TrimSpace(palisade.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Println("\nShutdown signal received, shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// checkArgs are the decoded arguments of the gate_check tool. Either item_id
// or the inline item fields identify the content under validation.
type checkArgs struct {
	TransitionID string `mapstructure:"transition_id"`
	ItemID       string `mapstructure:"item_id"`
	ItemPath     string `mapstructure:"item_path"`
	Language     string `mapstructure:"language"`
	Version      int    `mapstructure:"version"`
}

func (s *Server) registerTools() {
	// TOOL: gate_check
	checkTool := mcp.NewTool("gate_check",
		mcp.WithDescription("Run the validation gate for a workflow transition and return the outcome (proceed, block, or abort_timeout)."),
		mcp.WithString("transition_id", mcp.Required(), mcp.Description("ID of the transition definition to evaluate")),
		mcp.WithString("item_id", mcp.Description("ID of an item known to the loader (alternative to inline item fields)")),
		mcp.WithString("item_path", mcp.Description("Content item path, e.g. /content/home")),
		mcp.WithString("language", mcp.Description("Item language, e.g. en")),
		mcp.WithNumber("version", mcp.Description("Item version number")),
		mcp.WithOutputSchema[domain.Outcome](),
	)
	s.mcpServer.AddTool(checkTool, mcp.NewStructuredToolHandler(s.handleCheck))

	// TOOL: list_transitions
	s.mcpServer.AddTool(mcp.NewTool("list_transitions",
		mcp.WithDescription("List the IDs of all known transition definitions."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids, err := s.loader.ListTransitions(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(ids)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleCheck(ctx context.Context, request mcp.CallToolRequest, raw map[string]interface{}) (domain.Outcome, error) {
	var args checkArgs
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &args,
	})
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("building decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return domain.Outcome{}, fmt.Errorf("invalid arguments: %w", err)
	}

	def, err := s.loader.GetTransition(ctx, args.TransitionID)
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("loading transition: %w", err)
	}

	item, err := s.resolveItem(ctx, args)
	if err != nil {
		return domain.Outcome{}, err
	}

	outcome, err := s.gate.Check(ctx, def, item)
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("check failed: %w", err)
	}
	return *outcome, nil
}

func (s *Server) resolveItem(ctx context.Context, args checkArgs) (domain.Item, error) {
	if args.ItemID != "" {
		item, err := s.loader.GetItem(ctx, args.ItemID)
		if err != nil {
			return domain.Item{}, fmt.Errorf("loading item: %w", err)
		}
		return *item, nil
	}
	if args.ItemPath == "" {
		return domain.Item{}, fmt.Errorf("item_id or item_path is required")
	}
	return domain.Item{
		Path:     args.ItemPath,
		Language: args.Language,
		Version:  args.Version,
	}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: palisade://transitions
	s.mcpServer.AddResource(mcp.NewResource("palisade://transitions", "Known Transition Definitions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.loader.ListTransitions(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing transitions: %w", err)
		}

		defs := make([]*domain.TransitionDefinition, 0, len(ids))
		for _, id := range ids {
			def, err := s.loader.GetTransition(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("loading transition %q: %w", id, err)
			}
			defs = append(defs, def)
		}
		jsonBytes, _ := json.Marshal(defs)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "palisade://transitions",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
