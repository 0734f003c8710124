package index

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/aster-cloud/cnl/internal/compiler/lexer"
	"github.com/aster-cloud/cnl/internal/compiler/lexicon"
	"github.com/aster-cloud/cnl/internal/compiler/parser"
)

// RootResolver resolves a dotted module name to a file path by scanning
// a configured list of workspace roots, per §6 ("a dotted module name is
// resolved by searching a configured list of roots for a file whose
// declared module-decl matches"). It is the concrete Resolver the
// cache package's DependencyGraph.BuildDependencies expects.
type RootResolver struct {
	roots []string
	lex   *lexicon.Lexicon

	mu       sync.Mutex
	byModule map[string][]string // module name -> declaring paths, in scan order
}

// NewRootResolver creates a resolver over the given workspace roots,
// using lex to tokenize candidate files (defaults to lexicon.EnglishUS).
func NewRootResolver(roots []string, lex *lexicon.Lexicon) *RootResolver {
	if lex == nil {
		lex = lexicon.EnglishUS
	}
	return &RootResolver{
		roots:    roots,
		lex:      lex,
		byModule: make(map[string][]string),
	}
}

// Resolve implements the cache.Resolver function shape.
func (r *RootResolver) Resolve(moduleName string) (string, bool) {
	r.rescan()
	r.mu.Lock()
	defer r.mu.Unlock()
	paths, ok := r.byModule[moduleName]
	if !ok || len(paths) == 0 {
		return "", false
	}
	return paths[0], true
}

// Shadows reports every module name declared by more than one file
// under the configured roots.
func (r *RootResolver) Shadows() []ShadowWarning {
	r.rescan()
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []ShadowWarning
	for name, paths := range r.byModule {
		if len(paths) > 1 {
			out = append(out, ShadowWarning{ModuleName: name, Paths: append([]string(nil), paths...)})
		}
	}
	return out
}

// rescan walks every root and rebuilds the module-name index. It always
// re-walks rather than caching by mtime: workspace roots are directory
// trees, not single files, so a cheap single-stat staleness check isn't
// available and a full walk is the simplest correct option.
func (r *RootResolver) rescan() {
	r.mu.Lock()
	fresh := make(map[string][]string)
	r.mu.Unlock()

	for _, root := range r.roots {
		_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil || info == nil || info.IsDir() {
				return nil
			}
			if filepath.Ext(path) != ".cnl" {
				return nil
			}
			name, ok := r.moduleNameOf(path)
			if !ok {
				return nil
			}
			fresh[name] = append(fresh[name], path)
			return nil
		})
	}

	r.mu.Lock()
	r.byModule = fresh
	r.mu.Unlock()
}

// moduleNameOf extracts a file's declared module name by lexing and
// parsing just far enough to read its header; a missing or malformed
// header yields ok=false and the file is excluded from resolution.
func (r *RootResolver) moduleNameOf(path string) (string, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	l := lexer.New(string(content), r.lex)
	tokens, _ := l.ScanTokens()
	mod, _ := parser.New(tokens, r.lex).Parse()
	if mod == nil || mod.Name == "" {
		return "", false
	}
	return mod.Name, true
}

