package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aster-cloud/cnl/internal/compiler/canon"
	"github.com/aster-cloud/cnl/internal/compiler/capability"
	"github.com/aster-cloud/cnl/internal/compiler/core"
	"github.com/aster-cloud/cnl/internal/compiler/effects"
	"github.com/aster-cloud/cnl/internal/compiler/lexer"
	"github.com/aster-cloud/cnl/internal/compiler/lexicon"
	"github.com/aster-cloud/cnl/internal/compiler/lowering"
	"github.com/aster-cloud/cnl/internal/compiler/parser"
	"github.com/aster-cloud/cnl/internal/compiler/pii"
	"github.com/aster-cloud/cnl/internal/compiler/typecheck"
	"github.com/aster-cloud/cnl/internal/diagnostics"
)

// AnalysisMetrics tracks performance and cache-efficiency counters for
// one diagnostics run.
type AnalysisMetrics struct {
	TotalFiles      int
	CacheHits       int
	CacheMisses     int
	FilesAnalyzed   int
	ParallelBatches int
	TotalDuration   time.Duration
	LexingDuration  time.Duration
	ParsingDuration time.Duration
	CheckingDuration time.Duration
	CachingDuration time.Duration
	StartTime       time.Time
	EndTime         time.Time
}

// CacheHitRate returns the cache hit rate as a percentage.
func (m *AnalysisMetrics) CacheHitRate() float64 {
	if m.TotalFiles == 0 {
		return 0.0
	}
	return float64(m.CacheHits) / float64(m.TotalFiles) * 100.0
}

// AnalysisResult is the outcome of running the diagnostics pipeline
// over a single file.
type AnalysisResult struct {
	Path        string
	Module      *core.Module
	Diagnostics []diagnostics.Diagnostic
	Hash        string
	Err         error
	Cached      bool
}

// Options configures the analysis pipeline a Coordinator runs per file.
type Options struct {
	Lexicon       *lexicon.Lexicon
	Manifest      *capability.Manifest
	StrictPii     bool
	ResolveImport Resolver
}

// Coordinator runs the lex -> parse -> lower -> check pipeline with
// content-hash caching and import-dependency-aware invalidation, the
// workspace-wide incremental diagnostics engine of §5.
type Coordinator struct {
	docs    *DocumentCache
	depGraph *DependencyGraph
	hasher  *FileHasher
	opts    Options

	mu      sync.Mutex
	metrics *AnalysisMetrics
}

// NewCoordinator creates a Coordinator backed by store (nil for the
// default in-memory Store) and opts.
func NewCoordinator(store Store, opts Options) *Coordinator {
	if opts.Lexicon == nil {
		opts.Lexicon = lexicon.EnglishUS
	}
	if opts.ResolveImport == nil {
		opts.ResolveImport = func(string) (string, bool) { return "", false }
	}
	return &Coordinator{
		docs:     NewDocumentCache(store),
		depGraph: NewDependencyGraph(),
		hasher:   NewFileHasher(),
		opts:     opts,
		metrics:  &AnalysisMetrics{},
	}
}

// AnalyzeFiles runs the pipeline over paths, either sequentially or — if
// parallel is true — in batches ordered by the import graph recorded by
// earlier analyses in this Coordinator, so a file only starts once every
// recorded import of it has finished. A file with no recorded imports
// (every file, on a first run) goes into the first batch.
func (c *Coordinator) AnalyzeFiles(paths []string, parallel bool) ([]*AnalysisResult, *AnalysisMetrics, error) {
	c.mu.Lock()
	c.metrics = &AnalysisMetrics{TotalFiles: len(paths), StartTime: time.Now()}
	c.mu.Unlock()

	var results []*AnalysisResult
	if parallel {
		results = c.analyzeParallel(paths)
	} else {
		results = c.analyzeSequential(paths)
	}

	c.mu.Lock()
	c.metrics.EndTime = time.Now()
	c.metrics.TotalDuration = c.metrics.EndTime.Sub(c.metrics.StartTime)
	metrics := c.metrics
	c.mu.Unlock()

	return results, metrics, nil
}

func (c *Coordinator) analyzeSequential(paths []string) []*AnalysisResult {
	results := make([]*AnalysisResult, len(paths))
	for i, path := range paths {
		results[i] = c.analyzeFile(path)
	}
	return results
}

func (c *Coordinator) analyzeParallel(paths []string) []*AnalysisResult {
	order, err := c.depGraph.GetTopologicalOrder()
	if err != nil {
		return c.analyzeSequential(paths)
	}

	pathSet := make(map[string]bool, len(paths))
	for _, p := range paths {
		pathSet[p] = true
	}

	orderedPaths := make([]string, 0, len(paths))
	for _, p := range order {
		if pathSet[p] {
			orderedPaths = append(orderedPaths, p)
		}
	}
	for _, p := range paths {
		found := false
		for _, op := range orderedPaths {
			if op == p {
				found = true
				break
			}
		}
		if !found {
			orderedPaths = append(orderedPaths, p)
		}
	}

	resultMap := make(map[string]*AnalysisResult)
	var resultMu sync.Mutex
	compiled := make(map[string]bool)
	batchNum := 0

	for len(compiled) < len(orderedPaths) {
		var batch []string
		for _, path := range orderedPaths {
			if compiled[path] {
				continue
			}
			ready := true
			for _, dep := range c.depGraph.GetDependencies(path) {
				if !compiled[dep] {
					ready = false
					break
				}
			}
			if ready {
				batch = append(batch, path)
			}
		}
		if len(batch) == 0 {
			break
		}

		batchNum++
		c.mu.Lock()
		c.metrics.ParallelBatches = batchNum
		c.mu.Unlock()

		var wg sync.WaitGroup
		for _, path := range batch {
			wg.Add(1)
			go func(p string) {
				defer wg.Done()
				result := c.analyzeFile(p)
				resultMu.Lock()
				resultMap[p] = result
				resultMu.Unlock()
			}(path)
		}
		wg.Wait()

		for _, path := range batch {
			compiled[path] = true
		}
	}

	results := make([]*AnalysisResult, len(orderedPaths))
	for i, path := range orderedPaths {
		if result, ok := resultMap[path]; ok {
			results[i] = result
		} else {
			results[i] = &AnalysisResult{Path: path, Err: fmt.Errorf("file not analyzed: %s", path)}
		}
	}
	return results
}

func (c *Coordinator) analyzeFile(path string) *AnalysisResult {
	hash, err := c.hasher.HashFile(path)
	if err != nil {
		return &AnalysisResult{Path: path, Err: fmt.Errorf("hash file: %w", err)}
	}

	if cached, ok := c.docs.Get(path); ok {
		if cached.Hash == hash && cached.Module != nil {
			c.mu.Lock()
			c.metrics.CacheHits++
			c.mu.Unlock()
			return &AnalysisResult{Path: path, Module: cached.Module, Diagnostics: cached.Diagnostics, Hash: hash, Cached: true}
		}
		c.docs.Invalidate(path)
	}

	c.mu.Lock()
	c.metrics.CacheMisses++
	c.metrics.FilesAnalyzed++
	c.mu.Unlock()

	content, err := os.ReadFile(path)
	if err != nil {
		return &AnalysisResult{Path: path, Err: fmt.Errorf("read file: %w", err)}
	}

	lexStart := time.Now()
	canonical := canon.Canonicalize(string(content), c.opts.Lexicon, canon.Options{})
	l := lexer.New(canonical.Text, c.opts.Lexicon)
	tokens, lexErrors := l.ScanTokens()
	c.mu.Lock()
	c.metrics.LexingDuration += time.Since(lexStart)
	c.mu.Unlock()
	if len(lexErrors) > 0 {
		return &AnalysisResult{Path: path, Err: fmt.Errorf("lexing errors: %d", len(lexErrors))}
	}

	parseStart := time.Now()
	ast, parseErrors := parser.New(tokens, c.opts.Lexicon).Parse()
	c.mu.Lock()
	c.metrics.ParsingDuration += time.Since(parseStart)
	c.mu.Unlock()
	if len(parseErrors) > 0 {
		return &AnalysisResult{Path: path, Err: fmt.Errorf("parse errors: %d", len(parseErrors))}
	}

	checkStart := time.Now()
	mod, lowerDiags := lowering.Lower(ast, path)
	diags := make([]diagnostics.Diagnostic, 0, len(lowerDiags))
	for _, d := range lowerDiags {
		diags = append(diags, diagnostics.Errorf(d.Code, core.Origin{StartLine: d.Line, StartColumn: d.Column, File: path}, "%s", d.Message))
	}
	if len(lowerDiags) == 0 {
		diags = append(diags, typecheck.Check(mod)...)
		_, effDiags := effects.Infer(mod, nil)
		diags = append(diags, effDiags...)
		diags = append(diags, capability.Check(mod, c.opts.Manifest)...)
		diags = append(diags, pii.Check(mod, c.opts.StrictPii)...)
	}
	c.mu.Lock()
	c.metrics.CheckingDuration += time.Since(checkStart)
	c.mu.Unlock()

	cacheStart := time.Now()
	c.docs.Set(path, mod, diags, hash)
	c.mu.Lock()
	c.metrics.CachingDuration += time.Since(cacheStart)
	c.mu.Unlock()

	c.depGraph.BuildDependencies(path, mod, c.opts.ResolveImport)

	return &AnalysisResult{Path: path, Module: mod, Diagnostics: diags, Hash: hash}
}

// InvalidateFile invalidates path and every file that transitively
// imports it, returning the full invalidated set.
func (c *Coordinator) InvalidateFile(path string) []string {
	dependents := c.depGraph.GetTransitiveDependents(path)
	c.docs.Invalidate(path)
	for _, dep := range dependents {
		c.docs.Invalidate(dep)
	}
	return append([]string{path}, dependents...)
}

// Watch re-analyzes changedFiles and everything that transitively
// imports them, in parallel.
func (c *Coordinator) Watch(changedFiles []string) ([]*AnalysisResult, *AnalysisMetrics, error) {
	allInvalidated := make(map[string]bool)
	for _, path := range changedFiles {
		for _, inv := range c.InvalidateFile(path) {
			allInvalidated[inv] = true
		}
	}
	filesToAnalyze := make([]string, 0, len(allInvalidated))
	for path := range allInvalidated {
		filesToAnalyze = append(filesToAnalyze, path)
	}
	return c.AnalyzeFiles(filesToAnalyze, true)
}

// GetMetrics returns a copy of the most recent run's metrics.
func (c *Coordinator) GetMetrics() *AnalysisMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	metrics := *c.metrics
	return &metrics
}

// GetCacheStats reports cache and dependency-graph sizes.
func (c *Coordinator) GetCacheStats() map[string]any {
	return map[string]any{
		"cache_size":     c.docs.Size(),
		"dep_graph_size": c.depGraph.Size(),
	}
}

// Clear resets every cache and the dependency graph.
func (c *Coordinator) Clear() {
	c.docs.InvalidateAll()
	c.depGraph.Clear()
	c.mu.Lock()
	c.metrics = &AnalysisMetrics{}
	c.mu.Unlock()
}

// ScanDirectory walks dir for CNL source files.
func ScanDirectory(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cnl" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
