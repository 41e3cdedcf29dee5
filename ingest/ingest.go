// Package ingest loads the pages of a data source into the vector index.
// It coordinates URL discovery, fetching, text extraction, chunking,
// boilerplate removal, embedding and storage.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/webretriever"
	"github.com/fwojciec/webretriever/bloom"
	"golang.org/x/sync/errgroup"
)

// Defaults for the zero-valued Ingester fields.
const (
	DefaultConcurrency = 10
	DefaultMinChunks   = 32
)

// Ingester loads data sources into collections.
type Ingester struct {
	URLs        webretriever.URLSource
	Fetcher     webretriever.Fetcher
	Transformer webretriever.Transformer
	Splitter    webretriever.Splitter
	Stripper    webretriever.Stripper
	Embedder    webretriever.Embedder
	Collections webretriever.CollectionService
	Chunks      webretriever.ChunkService

	// RateLimiter, when set, throttles fetches per domain.
	RateLimiter webretriever.DomainLimiter

	// Archive, when set, keeps the transformed pages of each run.
	Archive webretriever.DocumentArchive

	Concurrency int
	RetryDelays []time.Duration

	// MinChunks is the chunk count at which a collection counts as ingested.
	MinChunks int

	Logger *slog.Logger
}

// Options controls a single ingestion run.
type Options struct {
	// Force re-ingests a collection that is already populated, replacing
	// its chunks.
	Force bool
}

// Result holds the outcome of an ingestion run.
type Result struct {
	CollectionID string
	Pages        int
	Failed       int
	Chunks       int
	Phrases      int
	Bytes        int

	// Skipped is set when the collection was already populated.
	Skipped bool
}

// ProgressEvent reports progress during an ingestion run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting ingestion progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single URL.
type pageResult struct {
	position int
	url      string
	text     string
	err      error
}

// Ingest makes sure the collection named by ds holds the data source's
// chunks. A collection with at least MinChunks chunks is left alone unless
// opts.Force is set. Pages that cannot be fetched or transformed are
// reported through progress and skipped.
func (in *Ingester) Ingest(ctx context.Context, ds webretriever.DataSource, opts Options, progress ProgressFunc) (*Result, error) {
	if ds.Collection == "" {
		return nil, webretriever.Errorf(webretriever.EINVALID, "data source %q has no collection", ds.Name)
	}

	collection, err := in.ensureCollection(ctx, ds.Collection)
	if err != nil {
		return nil, err
	}

	count, err := in.Chunks.CountChunks(ctx, collection.ID)
	if err != nil {
		return nil, fmt.Errorf("counting chunks: %w", err)
	}
	if count >= in.minChunks() && !opts.Force {
		return &Result{CollectionID: collection.ID, Chunks: count, Skipped: true}, nil
	}

	urls, err := in.URLs.Discover(ctx, ds)
	if err != nil {
		return nil, fmt.Errorf("discovering URLs: %w", err)
	}
	urls = bloom.NewFilter(uint(len(urls)), bloom.DefaultFalsePositiveRate).Dedupe(urls)
	if len(urls) == 0 {
		return nil, webretriever.Errorf(webretriever.EINVALID, "data source %q lists no pages", ds.Name)
	}

	docs, failed := in.fetchAll(ctx, urls, progress)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if len(docs) == 0 {
		return nil, webretriever.Errorf(webretriever.EUNAVAILABLE, "none of the %d pages of %q could be fetched", len(urls), ds.Name)
	}

	if err := in.archive(ctx, docs); err != nil {
		return nil, err
	}

	splits, err := in.Splitter.Split(docs)
	if err != nil {
		return nil, fmt.Errorf("splitting documents: %w", err)
	}
	stripped, phrases, err := in.Stripper.Strip(splits)
	if err != nil {
		return nil, fmt.Errorf("stripping common phrases: %w", err)
	}
	in.logger().Debug("stripped common phrases", "collection", ds.Collection, "phrases", len(phrases), "chunks", len(stripped))

	chunks, err := in.embed(ctx, collection.ID, stripped)
	if err != nil {
		return nil, err
	}

	if err := in.Chunks.ReplaceChunks(ctx, collection.ID, chunks); err != nil {
		return nil, fmt.Errorf("storing chunks: %w", err)
	}

	var bytes int
	for _, doc := range docs {
		bytes += len(doc.Content)
	}

	return &Result{
		CollectionID: collection.ID,
		Pages:        len(docs),
		Failed:       failed,
		Chunks:       len(chunks),
		Phrases:      len(phrases),
		Bytes:        bytes,
	}, nil
}

// ensureCollection finds the named collection or creates it.
func (in *Ingester) ensureCollection(ctx context.Context, name string) (*webretriever.Collection, error) {
	collection, err := in.Collections.FindCollectionByName(ctx, name)
	if err == nil {
		return collection, nil
	}
	if webretriever.ErrorCode(err) != webretriever.ENOTFOUND {
		return nil, err
	}

	collection = &webretriever.Collection{Name: name}
	err = in.Collections.CreateCollection(ctx, collection)
	if webretriever.ErrorCode(err) == webretriever.ECONFLICT {
		return in.Collections.FindCollectionByName(ctx, name)
	}
	if err != nil {
		return nil, err
	}
	return collection, nil
}

// fetchAll fetches and transforms urls concurrently. Documents come back in
// URL order, without the pages that failed.
func (in *Ingester) fetchAll(ctx context.Context, urls []string, progress ProgressFunc) ([]webretriever.Document, int) {
	total := len(urls)
	notify := func(e ProgressEvent) {
		if progress != nil {
			progress(e)
		}
	}
	notify(ProgressEvent{Type: ProgressStarted, Total: total})

	resultCh := make(chan pageResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(in.concurrency())

	go func() {
		for i, u := range urls {
			g.Go(func() error {
				resultCh <- in.processURL(gctx, i, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	results := make([]pageResult, total)
	for result := range resultCh {
		n := int(completed.Add(1))
		results[result.position] = result

		if result.err != nil {
			notify(ProgressEvent{Type: ProgressFailed, Completed: n, Total: total, URL: result.url, Error: result.err})
			continue
		}
		notify(ProgressEvent{Type: ProgressCompleted, Completed: n, Total: total, URL: result.url})
	}

	var docs []webretriever.Document
	var failed int
	for _, result := range results {
		if result.err != nil {
			failed++
			continue
		}
		docs = append(docs, webretriever.Document{Content: result.text, SourceURL: result.url})
	}

	notify(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return docs, failed
}

// processURL fetches and transforms a single URL.
func (in *Ingester) processURL(ctx context.Context, position int, url string) pageResult {
	result := pageResult{position: position, url: url}

	fetch := func(ctx context.Context, url string) (string, error) {
		if in.RateLimiter != nil {
			if err := in.RateLimiter.Wait(ctx, domainOf(url)); err != nil {
				return "", err
			}
		}
		return in.Fetcher.Fetch(ctx, url)
	}
	onRetry := func(url string, attempt int, err error) {
		in.logger().Debug("retrying fetch", "url", url, "attempt", attempt, "error", err)
	}

	html, err := FetchWithRetry(ctx, url, fetch, onRetry, in.retryDelays())
	if err != nil {
		result.err = err
		return result
	}

	text, err := in.Transformer.Transform(html)
	if err != nil {
		result.err = err
		return result
	}
	if strings.TrimSpace(text) == "" {
		result.err = webretriever.Errorf(webretriever.ENOTFOUND, "no text on %s", url)
		return result
	}

	result.text = text
	return result
}

// archive saves docs to the archive as one snapshot.
func (in *Ingester) archive(ctx context.Context, docs []webretriever.Document) error {
	if in.Archive == nil {
		return nil
	}
	for _, doc := range docs {
		if err := in.Archive.Save(ctx, doc); err != nil {
			_ = in.Archive.Abort()
			return fmt.Errorf("archiving %s: %w", doc.SourceURL, err)
		}
	}
	return in.Archive.Commit()
}

// embed turns the non-blank documents into chunks with embeddings. Chunks
// repeating an earlier chunk's content are dropped.
func (in *Ingester) embed(ctx context.Context, collectionID string, docs []webretriever.Document) ([]*webretriever.Chunk, error) {
	var kept []webretriever.Document
	seen := make(map[string]bool, len(docs))
	for _, doc := range docs {
		if strings.TrimSpace(doc.Content) == "" || seen[doc.Content] {
			continue
		}
		seen[doc.Content] = true
		kept = append(kept, doc)
	}
	if len(kept) == 0 {
		return nil, webretriever.Errorf(webretriever.EINVALID, "no text left to index")
	}

	texts := make([]string, len(kept))
	for i, doc := range kept {
		texts[i] = doc.Content
	}
	vectors, err := in.Embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding chunks: %w", err)
	}
	if len(vectors) != len(kept) {
		return nil, webretriever.Errorf(webretriever.EINTERNAL, "embedder returned %d vectors for %d chunks", len(vectors), len(kept))
	}

	chunks := make([]*webretriever.Chunk, len(kept))
	for i, doc := range kept {
		chunks[i] = &webretriever.Chunk{
			ID:           ChunkID(collectionID, doc.Content),
			CollectionID: collectionID,
			Content:      doc.Content,
			Embedding:    vectors[i],
			Metadata: webretriever.ChunkMetadata{
				SourceURL: doc.SourceURL,
				Title:     doc.Title,
				Position:  i,
			},
		}
	}
	return chunks, nil
}

func (in *Ingester) concurrency() int {
	if in.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return in.Concurrency
}

func (in *Ingester) minChunks() int {
	if in.MinChunks <= 0 {
		return DefaultMinChunks
	}
	return in.MinChunks
}

func (in *Ingester) retryDelays() []time.Duration {
	if in.RetryDelays == nil {
		return DefaultRetryDelays()
	}
	return in.RetryDelays
}

func (in *Ingester) logger() *slog.Logger {
	if in.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return in.Logger
}
