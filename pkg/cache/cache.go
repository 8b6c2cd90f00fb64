// Package cache provides byte caching for analysis results and rendered
// graph artifacts.
//
// This package defines the Cache interface with implementations for
// different backends:
//   - file: File-based storage for CLI usage
//   - redis: Redis-backed storage for multi-instance server deployments
//   - null: No-op cache for tests and --no-cache runs
//
// # Keys
//
// Cache keys are derived from content hashes, never from user input. The
// Keyer interface centralizes key construction so that all backends agree
// on what identifies an entry:
//   - Analysis results are keyed by the snapshot's content hash
//   - Graph documents are keyed by snapshot hash plus graph kind
//   - Rendered artifacts are keyed by graph hash plus format options
//
// # Usage
//
//	c, err := cache.NewFileCache(dir)
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ArtifactKey(graphHash, cache.ArtifactKeyOpts{Format: "svg"})
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    return data
//	}
package cache

import (
	"context"
	"time"
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero or less means the entry never
	// expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// GraphKeyOpts are the options that distinguish graph cache entries built
// from the same snapshot.
type GraphKeyOpts struct {
	Kind string // "rag" or "wfg"
}

// ArtifactKeyOpts are the options that distinguish rendered artifacts built
// from the same graph.
type ArtifactKeyOpts struct {
	Format string // "dot", "svg", "png"
	Engine string // graphviz layout engine, e.g. "dot", "neato"
}

// Keyer generates cache keys for the different entry types.
type Keyer interface {
	// AnalysisKey generates a key for a detection result.
	AnalysisKey(snapshotHash string) string

	// GraphKey generates a key for a built graph document.
	GraphKey(snapshotHash string, opts GraphKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard Keyer implementation.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// AnalysisKey generates a key for a detection result.
// The snapshot hash is already collision-resistant, so the key is a plain
// prefixed concatenation.
func (k *DefaultKeyer) AnalysisKey(snapshotHash string) string {
	return "analysis:" + snapshotHash
}

// GraphKey generates a key for a built graph document.
func (k *DefaultKeyer) GraphKey(snapshotHash string, opts GraphKeyOpts) string {
	return hashKey("graph", snapshotHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
