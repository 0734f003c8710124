// Package manifest loads the workspace capability manifest (§6) from
// disk and adapts it into the shape internal/compiler/capability
// consumes. It owns the JSON schema, optional JWT envelope, and the
// mtime read-through cache; capability.Manifest itself stays free of
// any loading concern to avoid an import cycle back into this package.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aster-cloud/cnl/internal/compiler/capability"
	"github.com/aster-cloud/cnl/internal/compiler/core"
)

// capabilityNames maps the lowercased JSON capability key to its closed
// core.CapabilityKind. Unknown keys are ignored per §6.
var capabilityNames = map[string]core.CapabilityKind{
	"http":    core.CapHttp,
	"sql":     core.CapSql,
	"db":      core.CapSql,
	"files":   core.CapFiles,
	"fs":      core.CapFiles,
	"secrets": core.CapSecrets,
	"time":    core.CapTime,
	"cpu":     core.CapCpu,
	"random":  core.CapRandom,
	"env":     core.CapEnv,
	"crypto":  core.CapCrypto,
}

// document is the raw on-disk JSON shape described in §6:
// { "allow": { "<capability-lowercased>": ["module.fn" | "module.*", ...] } }
type document struct {
	Allow map[string][]string `json:"allow"`
}

// signedEnvelope wraps a document as a JWT claim so a CI pipeline can
// verify a manifest was produced by a trusted authority before the
// capability checker trusts it. The envelope is only attempted when the
// raw bytes don't parse as the plain JSON document.
type signedEnvelope struct {
	Manifest document `json:"manifest"`
}

// Parse decodes raw manifest bytes into a capability.Manifest, trying
// the plain JSON document first and falling back to a JWT-enveloped
// manifest verified with verifyKey. A nil verifyKey skips the JWT
// fallback entirely (no envelope support configured).
func Parse(raw []byte, verifyKey []byte) (*capability.Manifest, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err == nil && doc.Allow != nil {
		return toCapabilityManifest(doc), nil
	}

	if verifyKey == nil {
		return nil, fmt.Errorf("manifest is not a valid {\"allow\":...} document and no JWT verify key is configured")
	}

	token, err := jwt.ParseWithClaims(strings.TrimSpace(string(raw)), &envelopeClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != "HS256" {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return verifyKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse manifest envelope: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("manifest envelope signature invalid")
	}
	claims, ok := token.Claims.(*envelopeClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected manifest envelope claims")
	}
	return toCapabilityManifest(claims.Manifest), nil
}

// envelopeClaims embeds the manifest document as a custom JWT claim
// alongside the registered claim set jwt/v5 validates (exp, iat, ...).
type envelopeClaims struct {
	jwt.RegisteredClaims
	Manifest document `json:"manifest"`
}

func toCapabilityManifest(doc document) *capability.Manifest {
	allow := map[core.CapabilityKind][]string{}
	for rawCap, entries := range doc.Allow {
		cap, ok := capabilityNames[strings.ToLower(rawCap)]
		if !ok {
			continue
		}
		allow[cap] = dedupe(append(allow[cap], entries...))
	}
	return &capability.Manifest{Allow: allow}
}

func dedupe(entries []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// cacheEntry holds the last load of a manifest file alongside the mtime
// it was loaded at.
type cacheEntry struct {
	manifest *capability.Manifest
	modTime  time.Time
}

// Cache is a read-through, mtime-invalidated cache over a single
// manifest file path. A missing file means no restrictions: Load
// returns a nil *capability.Manifest and a nil error, matching §6
// ("Missing file means no restrictions unless strict mode is set").
type Cache struct {
	path      string
	verifyKey []byte

	mu      sync.RWMutex
	entry   *cacheEntry
}

// NewCache returns a Cache reading manifest JSON (or JWT envelope, when
// verifyKey is non-nil) from path.
func NewCache(path string, verifyKey []byte) *Cache {
	return &Cache{path: path, verifyKey: verifyKey}
}

// Load returns the current manifest, re-reading path only if its mtime
// has advanced since the last successful load.
func (c *Cache) Load() (*capability.Manifest, error) {
	info, err := os.Stat(c.path)
	if os.IsNotExist(err) {
		c.mu.Lock()
		c.entry = nil
		c.mu.Unlock()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat manifest %s: %w", c.path, err)
	}

	c.mu.RLock()
	cached := c.entry
	c.mu.RUnlock()
	if cached != nil && !info.ModTime().After(cached.modTime) {
		return cached.manifest, nil
	}

	raw, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", c.path, err)
	}
	m, err := Parse(raw, c.verifyKey)
	if err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", c.path, err)
	}

	c.mu.Lock()
	c.entry = &cacheEntry{manifest: m, modTime: info.ModTime()}
	c.mu.Unlock()
	return m, nil
}

// Invalidate forces the next Load to re-read the file regardless of mtime.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.entry = nil
	c.mu.Unlock()
}
