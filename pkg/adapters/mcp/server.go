package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/mystem/internal/dto"
	"github.com/aretw0/mystem/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/cors"
)

// TagsURI is the resource listing every tag code known to the decoder.
const TagsURI = "mystem://tags"

// StemmingArgs are the arguments of the "stemming" tool.
type StemmingArgs struct {
	Text string `json:"text"`
}

// StemmingResult aligns with the HTTP response and provides a unified structure across adapters.
type StemmingResult struct {
	Tokens []dto.Token `json:"tokens" jsonschema_description:"One entry per token, in worker order"`
}

// Server wraps an Analyzer and exposes it as an MCP Server.
type Server struct {
	analyzer  ports.Analyzer
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(analyzer ports.Analyzer, version string, opts ...Option) *Server {
	s := &Server{
		analyzer:  analyzer,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		mcpServer: server.NewMCPServer("mystem-mcp", strings.TrimSpace(version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           cors.AllowAll().Handler(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: stemming
	stemmingTool := mcp.NewTool("stemming",
		mcp.WithDescription("Lemmatize text and return part of speech and grammatical facts for every token. Punctuation and digits are ignored."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to analyze")),
		mcp.WithOutputSchema[StemmingResult](),
	)
	s.mcpServer.AddTool(stemmingTool, mcp.NewStructuredToolHandler(s.handleStemming))

	// TOOL: list_tags
	s.mcpServer.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("List every part-of-speech and grammeme code the decoder understands."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(dto.Tags())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleStemming(ctx context.Context, request mcp.CallToolRequest, args StemmingArgs) (StemmingResult, error) {
	results, err := s.analyzer.Stemming(ctx, args.Text)
	if err != nil {
		s.logger.Warn("MCP Stemming failed", "error", err, "size", len(args.Text))
		return StemmingResult{}, fmt.Errorf("stemming failed: %w", err)
	}
	return StemmingResult{Tokens: dto.FromTokens(results)}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: mystem://tags
	s.mcpServer.AddResource(mcp.NewResource(TagsURI, "Tag Tables",
		mcp.WithMIMEType("application/json"),
	), s.readTags)
}

func (s *Server) readTags(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(dto.Tags())
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      TagsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
