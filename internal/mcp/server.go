package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mbarlow/memoria-mcp/internal/chunker"
	"github.com/mbarlow/memoria-mcp/internal/config"
	"github.com/mbarlow/memoria-mcp/internal/corpus"
	"github.com/mbarlow/memoria-mcp/internal/embedcache"
	"github.com/mbarlow/memoria-mcp/internal/embedder"
	"github.com/mbarlow/memoria-mcp/internal/rerank"
	"github.com/mbarlow/memoria-mcp/internal/search"
)

const (
	// ServerName is the MCP server name.
	ServerName = "memoria-mcp"
	// ServerVersion is the current server version.
	ServerVersion = "1.0.0"

	// EnvAnthropicAPIKey enables the relevance judge when set.
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
)

// Server wraps the MCP server with the retrieval pipeline and its
// dependencies.
type Server struct {
	mcp      *server.MCPServer
	store    *corpus.Store
	pipeline *search.Pipeline
	embedder embedder.Embedder
	cache    embedcache.Cache
}

// NewServer wires a server from configuration. The embedding provider
// comes from the environment unless the config names one explicitly;
// the relevance judge activates only when an Anthropic key is present.
func NewServer(cfg config.Config) (*Server, error) {
	emb, err := newEmbedder(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize embedder: %w", err)
	}

	cache, err := newCache(cfg, emb.Model())
	if err != nil {
		return nil, fmt.Errorf("initialize embedding cache: %w", err)
	}

	var judge rerank.Judge
	if cfg.Rerank.Enabled {
		if key := os.Getenv(EnvAnthropicAPIKey); key != "" {
			judge = rerank.NewAnthropicJudge(key, cfg.Rerank.Model)
		}
	}

	store := corpus.NewStore(cfg.DataDir)

	var chunkOpts []chunker.Option
	if cfg.Chunking.Size > 0 {
		chunkOpts = append(chunkOpts, chunker.WithChunkSize(cfg.Chunking.Size))
	}
	if cfg.Chunking.Overlap > 0 {
		chunkOpts = append(chunkOpts, chunker.WithOverlap(cfg.Chunking.Overlap))
	}

	pipeline := search.NewPipeline(store, chunker.New(chunkOpts...), emb, cache, judge, search.Options{
		RerankTopN: cfg.Rerank.TopN,
		SnippetLen: cfg.Search.SnippetLength,
		CacheTTL:   time.Duration(cfg.Search.CacheTTLSeconds) * time.Second,
	})

	s := &Server{
		mcp:      server.NewMCPServer(ServerName, ServerVersion),
		store:    store,
		pipeline: pipeline,
		embedder: emb,
		cache:    cache,
	}
	s.registerTools()
	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	defer s.close()
	return server.ServeStdio(s.mcp)
}

func (s *Server) close() {
	_ = s.embedder.Close()
	if s.cache != nil {
		_ = s.cache.Close()
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(searchDocumentsTool(), s.handleSearchDocuments)
	s.mcp.AddTool(filterDocumentsTool(), s.handleFilterDocuments)
	s.mcp.AddTool(getDocumentsTool(), s.handleGetDocuments)
}

func newEmbedder(cfg config.Config) (embedder.Embedder, error) {
	if cfg.Embedding.Provider == "" {
		return embedder.NewFromEnv()
	}
	return embedder.New(embedder.Config{
		Provider:          cfg.Embedding.Provider,
		APIKey:            providerKey(cfg.Embedding.Provider),
		RequestsPerSecond: cfg.Embedding.RequestsPerSecond,
	})
}

func providerKey(provider string) string {
	switch provider {
	case embedder.ProviderGemini:
		return os.Getenv(embedder.EnvGeminiAPIKey)
	case embedder.ProviderOpenAI:
		return os.Getenv(embedder.EnvOpenAIAPIKey)
	}
	return ""
}

func newCache(cfg config.Config, model string) (embedcache.Cache, error) {
	switch cfg.CacheBackend {
	case config.CacheBackendSQLite:
		if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
			return nil, err
		}
		return embedcache.NewSQLite(filepath.Join(cfg.CacheDir, "embeddings.db"), model)
	default:
		return embedcache.NewDisk(cfg.CacheDir, model)
	}
}
