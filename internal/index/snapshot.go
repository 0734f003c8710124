package index

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/aster-cloud/cnl/internal/compiler/core"
)

// snapshotVersion is the workspace-index-cache JSON format version, per
// §6. A file at a lower or unrecognized version is treated as absent.
const snapshotVersion = 1

// snapshotRecord is the JSON wire shape for one IndexRecord. Symbol
// origins are flattened into plain fields; core.Origin itself stays
// JSON-tagless internally since only the snapshot format needs stable
// field names.
type snapshotRecord struct {
	ID         string           `json:"id"`
	Path       string           `json:"path"`
	ModuleName string           `json:"moduleName"`
	Hash       string           `json:"hash"`
	UpdatedAt  time.Time        `json:"updatedAt"`
	Symbols    []snapshotSymbol `json:"symbols"`
}

type snapshotSymbol struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Kind          string `json:"kind"`
	ContainerName string `json:"containerName,omitempty"`
	Signature     string `json:"signature,omitempty"`
	StartLine     int    `json:"startLine"`
	StartColumn   int    `json:"startColumn"`
	EndLine       int    `json:"endLine"`
	EndColumn     int    `json:"endColumn"`
}

// snapshot is the top-level workspace-index-cache JSON document:
// {"version": 1, "generatedAt": ISO8601, "root": <abs path>, "files": [...]}
type snapshot struct {
	Version     int              `json:"version"`
	GeneratedAt time.Time        `json:"generatedAt"`
	Root        string           `json:"root"`
	Files       []snapshotRecord `json:"files"`
}

var kindNames = map[SymbolKind]string{
	SymbolKindFunc:        "func",
	SymbolKindData:        "data",
	SymbolKindField:       "field",
	SymbolKindEnum:        "enum",
	SymbolKindEnumVariant: "enum-variant",
	SymbolKindImport:      "import",
}

var kindsByName = func() map[string]SymbolKind {
	m := make(map[string]SymbolKind, len(kindNames))
	for k, v := range kindNames {
		m[v] = k
	}
	return m
}()

func toSnapshotRecord(rec *IndexRecord) snapshotRecord {
	out := snapshotRecord{
		ID:         rec.ID,
		Path:       rec.Path,
		ModuleName: rec.ModuleName,
		Hash:       rec.Hash,
		UpdatedAt:  rec.UpdatedAt,
	}
	for _, sym := range rec.Symbols {
		out.Symbols = append(out.Symbols, snapshotSymbol{
			ID:            sym.ID,
			Name:          sym.Name,
			Kind:          kindNames[sym.Kind],
			ContainerName: sym.ContainerName,
			Signature:     sym.Signature,
			StartLine:     sym.Origin.StartLine,
			StartColumn:   sym.Origin.StartColumn,
			EndLine:       sym.Origin.EndLine,
			EndColumn:     sym.Origin.EndColumn,
		})
	}
	return out
}

func fromSnapshotRecord(path string, sr snapshotRecord) *IndexRecord {
	rec := &IndexRecord{
		ID:         sr.ID,
		Path:       path,
		ModuleName: sr.ModuleName,
		Hash:       sr.Hash,
		UpdatedAt:  sr.UpdatedAt,
	}
	for _, ss := range sr.Symbols {
		rec.Symbols = append(rec.Symbols, &Symbol{
			ID:            ss.ID,
			Name:          ss.Name,
			Kind:          kindsByName[ss.Kind],
			ContainerName: ss.ContainerName,
			Signature:     ss.Signature,
			Origin: core.Origin{
				StartLine:   ss.StartLine,
				StartColumn: ss.StartColumn,
				EndLine:     ss.EndLine,
				EndColumn:   ss.EndColumn,
				File:        path,
			},
		})
	}
	return rec
}

// WriteSnapshot serializes the full index to path as a workspace-index-
// cache JSON document rooted at root.
func (idx *Index) WriteSnapshot(path, root string, now time.Time) error {
	idx.mu.RLock()
	snap := snapshot{Version: snapshotVersion, GeneratedAt: now, Root: root}
	for p, rec := range idx.byPath {
		sr := toSnapshotRecord(rec)
		sr.Path = p
		snap.Files = append(snap.Files, sr)
	}
	idx.mu.RUnlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadSnapshot reads a workspace-index-cache JSON document from path and
// replaces the index's contents with it. A missing file, a malformed
// file, or one at an unrecognized version is treated as empty, per §6
// ("absent or malformed file is treated as empty; the index rebuilds on
// demand") — the caller sees a zero-length index, not an error.
func LoadSnapshot(path string) *Index {
	idx := New()

	data, err := os.ReadFile(path)
	if err != nil {
		return idx
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return idx
	}
	if snap.Version != snapshotVersion {
		return idx
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, fr := range snap.Files {
		rec := fromSnapshotRecord(fr.Path, fr)
		idx.byPath[fr.Path] = rec
		if rec.ModuleName != "" {
			idx.byModule[rec.ModuleName] = append(idx.byModule[rec.ModuleName], fr.Path)
		}
		for _, sym := range rec.Symbols {
			idx.byName[sym.Name] = append(idx.byName[sym.Name], sym)
			idx.pathOfSym[sym.ID] = fr.Path
		}
	}
	return idx
}
