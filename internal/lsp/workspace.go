package lsp

import (
	"sync"

	"github.com/aster-cloud/cnl/internal/cache"
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
	"github.com/aster-cloud/cnl/internal/index"
	"github.com/aster-cloud/cnl/internal/scheduler"
)

// WorkspaceOptions configures the lex -> parse -> lower -> check pipeline
// a Workspace runs per open document, mirroring cache.Options.
type WorkspaceOptions struct {
	Lexicon   *lexicon.Lexicon
	Manifest  *capability.Manifest
	StrictPii bool
	Roots     []string
}

// Workspace holds every piece of editor-facing state an LSP server needs
// across requests: the workspace symbol index, the per-document
// diagnostics cache, the import-dependency graph, and a background task
// queue whose metrics the health endpoint reports. It is the in-memory
// analogue of cache.Coordinator, driven by editor buffer content instead
// of files on disk, so a didChange is reflected before the edit is ever
// saved.
type Workspace struct {
	opts     WorkspaceOptions
	resolver *index.RootResolver

	idx   *index.Index
	diags *diagnostics.Engine
	deps  *cache.DependencyGraph
	queue *scheduler.Queue

	hasher *cache.FileHasher

	mu       sync.RWMutex
	modules  map[string]*core.Module
	versions map[string]int
}

// NewWorkspace creates a Workspace with its own index, diagnostics
// engine, dependency graph, and background task queue. The queue is
// started immediately; callers should Shutdown it with the server.
func NewWorkspace(opts WorkspaceOptions) *Workspace {
	if opts.Lexicon == nil {
		opts.Lexicon = lexicon.EnglishUS
	}

	idx := index.New()
	ws := &Workspace{
		opts:     opts,
		resolver: index.NewRootResolver(opts.Roots, opts.Lexicon),
		idx:      idx,
		diags:    diagnostics.NewEngine(nil, true),
		deps:     cache.NewDependencyGraph(),
		queue:    scheduler.New(),
		hasher:   cache.NewFileHasher(),
		modules:  make(map[string]*core.Module),
		versions: make(map[string]int),
	}
	ws.queue.Start()
	return ws
}

// Index exposes the workspace symbol index for editor-package calls.
func (ws *Workspace) Index() *index.Index { return ws.idx }

// Queue exposes the background task queue, for the health endpoint's
// queue stats; no request handler submits work to it.
func (ws *Workspace) Queue() *scheduler.Queue { return ws.queue }

// Module returns the last successfully lowered module for uri, if any.
func (ws *Workspace) Module(uri string) (*core.Module, bool) {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	mod, ok := ws.modules[uri]
	return mod, ok
}

// Shutdown stops the background task queue.
func (ws *Workspace) Shutdown() {
	ws.queue.Shutdown()
}

// Open analyzes a newly opened document and returns its diagnostics.
func (ws *Workspace) Open(uri, content string, version int) []diagnostics.Diagnostic {
	return ws.analyze(uri, content, version)
}

// Change re-analyzes a changed document, invalidating every document
// that transitively imports it (§4.12's "imported-module change"
// trigger) before re-running the pipeline on uri itself.
func (ws *Workspace) Change(uri, content string, version int) []diagnostics.Diagnostic {
	ws.diags.InvalidateDependents(ws.deps.GetTransitiveDependents(uri))
	return ws.analyze(uri, content, version)
}

// Close removes a document from the index and diagnostics cache.
func (ws *Workspace) Close(uri string) {
	ws.idx.Remove(uri)
	ws.diags.InvalidateDocument(uri)
	ws.deps.RemoveFile(uri)

	ws.mu.Lock()
	delete(ws.modules, uri)
	delete(ws.versions, uri)
	ws.mu.Unlock()
}

// Diagnostics returns the most recently pushed diagnostics for uri, at
// whatever version was last analyzed.
func (ws *Workspace) Diagnostics(uri string) []diagnostics.Diagnostic {
	ws.mu.RLock()
	version, ok := ws.versions[uri]
	ws.mu.RUnlock()
	if !ok {
		return nil
	}
	diags, _ := ws.diags.Pull(uri, version)
	return diags
}

// WorkspaceDiagnostics aggregates every open document's most recently
// cached diagnostics, for the §4.12 workspace-diagnostics surface.
func (ws *Workspace) WorkspaceDiagnostics() (map[string][]diagnostics.Diagnostic, bool) {
	return ws.diags.WorkspaceDiagnostics()
}

func (ws *Workspace) analyze(uri, content string, version int) []diagnostics.Diagnostic {
	ws.mu.Lock()
	ws.versions[uri] = version
	ws.mu.Unlock()

	l := lexer.New(content, ws.opts.Lexicon)
	tokens, lexErrors := l.ScanTokens()
	if len(lexErrors) > 0 {
		out := make([]diagnostics.Diagnostic, 0, len(lexErrors))
		for _, e := range lexErrors {
			out = append(out, diagnostics.Errorf("L0xx", core.Origin{StartLine: e.Line, StartColumn: e.Column, File: uri}, "%s", e.Message))
		}
		ws.diags.Push(uri, version, out)
		return out
	}

	astMod, parseErrors := parser.New(tokens, ws.opts.Lexicon).Parse()
	if len(parseErrors) > 0 {
		out := make([]diagnostics.Diagnostic, 0, len(parseErrors))
		for _, e := range parseErrors {
			out = append(out, diagnostics.Errorf("P0xx", core.Origin{StartLine: e.Line, StartColumn: e.Column, File: uri}, "%s", e.Message))
		}
		ws.diags.Push(uri, version, out)
		return out
	}

	mod, lowerDiags := lowering.Lower(astMod, uri)
	diags := make([]diagnostics.Diagnostic, 0, len(lowerDiags))
	for _, d := range lowerDiags {
		diags = append(diags, diagnostics.Errorf(d.Code, core.Origin{StartLine: d.Line, StartColumn: d.Column, File: uri}, "%s", d.Message))
	}
	if len(lowerDiags) == 0 {
		diags = append(diags, typecheck.Check(mod)...)
		_, effDiags := effects.Infer(mod, nil)
		diags = append(diags, effDiags...)
		diags = append(diags, capability.Check(mod, ws.opts.Manifest)...)
		diags = append(diags, pii.Check(mod, ws.opts.StrictPii)...)
	}

	ws.mu.Lock()
	ws.modules[uri] = mod
	ws.mu.Unlock()

	ws.idx.Update(uri, mod, ws.hasher.HashString(content))
	ws.deps.BuildDependencies(uri, mod, ws.resolver.Resolve)
	ws.diags.Push(uri, version, diags)
	return diags
}
