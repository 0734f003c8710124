package cache

import (
	"sync"

	"github.com/aster-cloud/cnl/internal/compiler/core"
)

// FileDependency tracks one file's position in the module-import graph.
type FileDependency struct {
	Path       string   // the file path
	DependsOn  []string // files this file imports
	DependedBy []string // files that import this file
	ModuleName string   // this file's declared module name, if any
}

// DependencyGraph tracks module-import dependencies between source
// files, resolved per §6 ("a dotted module name is resolved by
// searching a configured list of roots for a file whose declared
// module-decl matches").
type DependencyGraph struct {
	nodes map[string]*FileDependency
	mu    sync.RWMutex
}

// NewDependencyGraph creates a new dependency graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{nodes: make(map[string]*FileDependency)}
}

// AddFile adds a file to the dependency graph.
func (dg *DependencyGraph) AddFile(path, moduleName string) {
	dg.mu.Lock()
	defer dg.mu.Unlock()

	if _, exists := dg.nodes[path]; !exists {
		dg.nodes[path] = &FileDependency{Path: path, ModuleName: moduleName}
	} else {
		dg.nodes[path].ModuleName = moduleName
	}
}

// AddDependency records that from imports to.
func (dg *DependencyGraph) AddDependency(from, to string) {
	dg.mu.Lock()
	defer dg.mu.Unlock()

	if _, exists := dg.nodes[from]; !exists {
		dg.nodes[from] = &FileDependency{Path: from}
	}
	if _, exists := dg.nodes[to]; !exists {
		dg.nodes[to] = &FileDependency{Path: to}
	}

	if !contains(dg.nodes[from].DependsOn, to) {
		dg.nodes[from].DependsOn = append(dg.nodes[from].DependsOn, to)
	}
	if !contains(dg.nodes[to].DependedBy, from) {
		dg.nodes[to].DependedBy = append(dg.nodes[to].DependedBy, from)
	}
}

// GetDependencies returns the files the given file imports.
func (dg *DependencyGraph) GetDependencies(path string) []string {
	dg.mu.RLock()
	defer dg.mu.RUnlock()
	if node, exists := dg.nodes[path]; exists {
		result := make([]string, len(node.DependsOn))
		copy(result, node.DependsOn)
		return result
	}
	return []string{}
}

// GetDependents returns the files that import the given file.
func (dg *DependencyGraph) GetDependents(path string) []string {
	dg.mu.RLock()
	defer dg.mu.RUnlock()
	if node, exists := dg.nodes[path]; exists {
		result := make([]string, len(node.DependedBy))
		copy(result, node.DependedBy)
		return result
	}
	return []string{}
}

// GetTransitiveDependents returns every file that transitively imports
// the given file — the set whose diagnostics must be recomputed when it
// changes.
func (dg *DependencyGraph) GetTransitiveDependents(path string) []string {
	dg.mu.RLock()
	defer dg.mu.RUnlock()

	visited := make(map[string]bool)
	var result []string

	var visit func(string)
	visit = func(p string) {
		if visited[p] {
			return
		}
		visited[p] = true
		if node, exists := dg.nodes[p]; exists {
			for _, dependent := range node.DependedBy {
				result = append(result, dependent)
				visit(dependent)
			}
		}
	}

	visit(path)
	return result
}

// GetIndependentFiles returns files with no imports; these can be
// analyzed without waiting on anything else.
func (dg *DependencyGraph) GetIndependentFiles() []string {
	dg.mu.RLock()
	defer dg.mu.RUnlock()
	var result []string
	for path, node := range dg.nodes {
		if len(node.DependsOn) == 0 {
			result = append(result, path)
		}
	}
	return result
}

// GetTopologicalOrder returns files in import order: a file always
// appears after every file it imports.
func (dg *DependencyGraph) GetTopologicalOrder() ([]string, error) {
	dg.mu.RLock()
	defer dg.mu.RUnlock()

	inDegree := make(map[string]int)
	for path, node := range dg.nodes {
		inDegree[path] = len(node.DependsOn)
	}

	var queue []string
	for path, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, path)
		}
	}

	result := make([]string, 0, len(dg.nodes))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, current)

		if node, exists := dg.nodes[current]; exists {
			for _, dependent := range node.DependedBy {
				inDegree[dependent]--
				if inDegree[dependent] == 0 {
					queue = append(queue, dependent)
				}
			}
		}
	}

	if len(result) != len(dg.nodes) {
		return nil, &CycleError{Message: "circular module import detected"}
	}
	return result, nil
}

// RemoveFile removes a file and its edges from the graph.
func (dg *DependencyGraph) RemoveFile(path string) {
	dg.mu.Lock()
	defer dg.mu.Unlock()

	if node, exists := dg.nodes[path]; exists {
		for _, dependent := range node.DependedBy {
			if depNode, exists := dg.nodes[dependent]; exists {
				depNode.DependsOn = removeString(depNode.DependsOn, path)
			}
		}
		for _, dependency := range node.DependsOn {
			if depNode, exists := dg.nodes[dependency]; exists {
				depNode.DependedBy = removeString(depNode.DependedBy, path)
			}
		}
		delete(dg.nodes, path)
	}
}

// Clear removes every entry from the dependency graph.
func (dg *DependencyGraph) Clear() {
	dg.mu.Lock()
	defer dg.mu.Unlock()
	dg.nodes = make(map[string]*FileDependency)
}

// Size returns the number of files tracked.
func (dg *DependencyGraph) Size() int {
	dg.mu.RLock()
	defer dg.mu.RUnlock()
	return len(dg.nodes)
}

// Resolver maps a dotted module name to the file path that declares it,
// per §6's module-search-roots resolution. The second return is false
// when no configured root contains a matching module-decl.
type Resolver func(moduleName string) (path string, ok bool)

// BuildDependencies records path's import edges by resolving every
// core.Import in mod through resolve.
func (dg *DependencyGraph) BuildDependencies(path string, mod *core.Module, resolve Resolver) {
	dg.AddFile(path, mod.Name)

	for _, decl := range mod.Decls {
		imp, ok := decl.(*core.Import)
		if !ok {
			continue
		}
		target, ok := resolve(imp.Name)
		if !ok {
			continue
		}
		dg.AddDependency(path, target)
	}
}

// CycleError reports a circular module-import dependency.
type CycleError struct {
	Message string
}

func (e *CycleError) Error() string {
	return e.Message
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func removeString(slice []string, item string) []string {
	result := make([]string, 0, len(slice))
	for _, s := range slice {
		if s != item {
			result = append(result, s)
		}
	}
	return result
}
