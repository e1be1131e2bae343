package search

import (
	"context"
	"crypto/sha256"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/mbarlow/memoria-mcp/internal/chunker"
	"github.com/mbarlow/memoria-mcp/internal/corpus"
	"github.com/mbarlow/memoria-mcp/internal/embedcache"
	"github.com/mbarlow/memoria-mcp/internal/embedder"
	"github.com/mbarlow/memoria-mcp/internal/rerank"
	"github.com/mbarlow/memoria-mcp/pkg/types"
)

// KindAll selects both corpora. KindEmail and KindNote restrict to one.
const KindAll = "all"

// Pipeline defaults.
const (
	DefaultLimit     = 10
	MaxLimit         = 100
	DefaultRerankTop = 30
	DefaultSnippet   = 150
	DefaultCacheTTL  = 5 * time.Minute

	cacheEntries = 1000
)

// Request is one retrieval invocation. Keywords drive lexical scoring,
// Query drives semantic scoring; at least one of Keywords, Query, or
// Conversation must be non-empty. Conversation, when present, gives the
// relevance judge context and stands in for a missing Query.
type Request struct {
	Keywords     []string
	Query        string
	Kind         string
	Limit        int
	Conversation []types.Message
}

// Response is the ranked, truncated result of a search.
type Response struct {
	Items []types.SearchItem `json:"items"`
}

// Options tune the pipeline. Zero values take defaults.
type Options struct {
	RerankTopN int
	SnippetLen int
	CacheTTL   time.Duration
}

type cacheEntry struct {
	response  *Response
	expiresAt time.Time
}

// Pipeline runs the full retrieval flow: load corpus, chunk, score
// lexically and semantically in parallel, fuse, rerank, render. A nil
// judge skips reranking; a judge failure degrades to the fused order.
type Pipeline struct {
	store    *corpus.Store
	chunker  *chunker.Chunker
	embedder embedder.Embedder
	cache    embedcache.Cache
	judge    rerank.Judge
	opts     Options

	queryCache *lru.Cache[[32]byte, *cacheEntry]
	cacheMu    sync.RWMutex
}

// NewPipeline wires the pipeline. cache and judge may be nil.
func NewPipeline(store *corpus.Store, ch *chunker.Chunker, emb embedder.Embedder, cache embedcache.Cache, judge rerank.Judge, opts Options) *Pipeline {
	if opts.RerankTopN <= 0 {
		opts.RerankTopN = DefaultRerankTop
	}
	if opts.SnippetLen <= 0 {
		opts.SnippetLen = DefaultSnippet
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	qc, err := lru.New[[32]byte, *cacheEntry](cacheEntries)
	if err != nil {
		panic("search: query cache: " + err.Error())
	}
	return &Pipeline{
		store:      store,
		chunker:    ch,
		embedder:   emb,
		cache:      cache,
		judge:      judge,
		opts:       opts,
		queryCache: qc,
	}
}

// Search executes the request and returns ranked results.
func (p *Pipeline) Search(ctx context.Context, req Request) (*Response, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	if resp, ok := p.checkCache(req); ok {
		return resp, nil
	}

	chunks, err := p.loadChunks(req.Kind)
	if err != nil {
		return nil, err
	}

	semanticQuery := req.Query
	if semanticQuery == "" {
		semanticQuery = QueryFromHistory(req.Conversation)
	}

	var lexical, semantic []Scored[types.Chunk]
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if len(req.Keywords) == 0 {
			return nil
		}
		lexical = dropZeroScores(NewBM25(chunks).Score(req.Keywords))
		return nil
	})
	g.Go(func() error {
		var err error
		semantic, err = SemanticRank(gctx, p.embedder, p.cache, semanticQuery, chunks)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	top := p.opts.RerankTopN
	fused := FuseRanked(types.Chunk.Identity, truncate(lexical, top), truncate(semantic, top))
	fused = truncate(fused, top)

	ranked := p.rerankFused(ctx, req, semanticQuery, fused)

	if len(ranked) > req.Limit {
		ranked = ranked[:req.Limit]
	}

	resp := &Response{Items: p.renderItems(ranked)}
	p.storeInCache(req, resp)
	return resp, nil
}

func validateRequest(req *Request) error {
	req.Query = strings.TrimSpace(req.Query)
	if len(req.Keywords) == 0 && req.Query == "" && len(req.Conversation) == 0 {
		return types.ErrEmptySearch
	}
	switch req.Kind {
	case "", KindAll:
		req.Kind = KindAll
	case string(types.KindEmail), string(types.KindNote):
	default:
		return types.ErrUnknownKind
	}
	if req.Limit <= 0 {
		req.Limit = DefaultLimit
	}
	if req.Limit > MaxLimit {
		req.Limit = MaxLimit
	}
	return nil
}

func (p *Pipeline) loadChunks(kind string) ([]types.Chunk, error) {
	var chunks []types.Chunk
	if kind == KindAll || kind == string(types.KindEmail) {
		emails, err := p.store.LoadEmails()
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, p.chunker.ChunkEmails(emails)...)
	}
	if kind == KindAll || kind == string(types.KindNote) {
		notes, err := p.store.LoadNotes()
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, p.chunker.ChunkNotes(notes)...)
	}
	return chunks, nil
}

// rerankFused runs the relevance judge over the fused candidates. The
// judge is advisory: any failure logs and falls back to the fused order
// rather than failing the search.
func (p *Pipeline) rerankFused(ctx context.Context, req Request, semanticQuery string, fused []Scored[types.Chunk]) []rerank.Result {
	results := make([]rerank.Result, len(fused))
	for i, s := range fused {
		results[i] = rerank.Result{Chunk: s.Item, Score: s.Score}
	}
	if p.judge == nil || len(results) == 0 {
		return results
	}

	judgeQuery := strings.TrimSpace(strings.Join(req.Keywords, " ") + " " + semanticQuery)
	selected, err := rerank.Rerank(ctx, p.judge, judgeQuery, req.Conversation, results)
	if err != nil {
		log.Printf("rerank failed, returning fused order: %v", err)
		return results
	}
	return selected
}

func (p *Pipeline) renderItems(results []rerank.Result) []types.SearchItem {
	items := make([]types.SearchItem, len(results))
	for i, r := range results {
		c := r.Chunk
		items[i] = types.SearchItem{
			ID:        c.DocumentID,
			Kind:      c.Kind,
			Subject:   c.Subject,
			Snippet:   Snippet(c.Body, p.opts.SnippetLen),
			Score:     r.Score,
			Timestamp: c.Timestamp,
			From:      c.From,
			To:        c.To,
			ThreadID:  c.ThreadID,
		}
	}
	return items
}

// QueryFromHistory derives a semantic query from conversation turns when
// the caller supplied none. The most recent turn is appended a second
// time so its terms dominate the embedding.
func QueryFromHistory(history []types.Message) string {
	if len(history) == 0 {
		return ""
	}
	parts := make([]string, 0, len(history)+1)
	for _, m := range history {
		parts = append(parts, m.Role+": "+m.Text)
	}
	last := history[len(history)-1]
	parts = append(parts, last.Role+": "+last.Text)
	return strings.Join(parts, "\n")
}

// Snippet trims text to at most budget runes, appending an ellipsis when
// the text was cut.
func Snippet(text string, budget int) string {
	runes := []rune(text)
	if len(runes) <= budget {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(string(runes[:budget])) + "..."
}

// dropZeroScores removes items the scorer gave no weight at all. BM25
// ranks every document, but a zero score means no keyword matched and
// the item should not count as a lexical hit during fusion.
func dropZeroScores(results []Scored[types.Chunk]) []Scored[types.Chunk] {
	kept := results[:0:0]
	for _, r := range results {
		if r.Score > 0 {
			kept = append(kept, r)
		}
	}
	return kept
}

func truncate[T any](results []Scored[T], n int) []Scored[T] {
	if len(results) > n {
		return results[:n]
	}
	return results
}

func (p *Pipeline) checkCache(req Request) (*Response, bool) {
	hash := computeRequestHash(req)
	now := time.Now()

	p.cacheMu.RLock()
	entry, found := p.queryCache.Get(hash)
	if !found {
		p.cacheMu.RUnlock()
		return nil, false
	}
	if now.After(entry.expiresAt) {
		p.cacheMu.RUnlock()
		p.cacheMu.Lock()
		p.queryCache.Remove(hash)
		p.cacheMu.Unlock()
		return nil, false
	}
	resp := copyResponse(entry.response)
	p.cacheMu.RUnlock()
	return resp, true
}

func (p *Pipeline) storeInCache(req Request, resp *Response) {
	entry := &cacheEntry{
		response:  copyResponse(resp),
		expiresAt: time.Now().Add(p.opts.CacheTTL),
	}
	p.cacheMu.Lock()
	p.queryCache.Add(computeRequestHash(req), entry)
	p.cacheMu.Unlock()
}

func copyResponse(resp *Response) *Response {
	out := &Response{Items: make([]types.SearchItem, len(resp.Items))}
	copy(out.Items, resp.Items)
	return out
}

// computeRequestHash builds a deterministic key over every field that
// affects the result, including conversation turns since they feed both
// the derived query and the judge.
func computeRequestHash(req Request) [32]byte {
	var data strings.Builder
	data.WriteString(req.Query)
	data.WriteString("|")
	data.WriteString(strings.Join(req.Keywords, ","))
	data.WriteString("|")
	data.WriteString(req.Kind)
	data.WriteString("|")
	data.WriteString(strconv.Itoa(req.Limit))
	for _, m := range req.Conversation {
		data.WriteString("|")
		data.WriteString(m.Role)
		data.WriteString(":")
		data.WriteString(m.Text)
	}
	return sha256.Sum256([]byte(data.String()))
}
