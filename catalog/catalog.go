// Package catalog loads and indexes multiple compiled schemas concurrently,
// keyed by package name, so a process that juggles several wire formats at
// once (one per upstream service, say) can resolve "which schema and codec
// handles this package" in O(1) after a one-time concurrent load.
//
// This generalizes the descriptor-registry idea of looking up a decoder by a
// small integer id: here the lookup key is a schema's package name, and the
// payload is a whole compiled schema plus a ready-to-use value.Codec rather
// than a single message descriptor.
package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/eriksen/brineschema/binschema"
	"github.com/eriksen/brineschema/brineerr"
	"github.com/eriksen/brineschema/schema"
	"github.com/eriksen/brineschema/value"
)

// Entry is one loaded schema and the codec built against it.
type Entry struct {
	Schema schema.Schema
	Codec  *value.Codec

	// TrailingBytes is the number of bytes left over after decoding this
	// entry's payload. A well-formed schema artifact leaves this at 0; a
	// nonzero value usually means the payload carries an outer envelope
	// the caller stripped incompletely.
	TrailingBytes int
}

// Catalog indexes Entries by package name. A schema with no package
// declaration is indexed under the empty string; loading a second
// package-less schema, or two schemas sharing a package name, is an error.
type Catalog struct {
	entries map[string]*Entry
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]*Entry)}
}

// LoadAll decodes every binary schema payload concurrently, builds a
// value.Codec for each, and indexes the results by package name. Decoding
// and codec construction run in parallel across payloads via an errgroup;
// indexing the results into the Catalog is sequential and happens only
// after every payload has decoded successfully, so a single bad payload
// leaves the Catalog unchanged.
func (c *Catalog) LoadAll(ctx context.Context, payloads [][]byte) error {
	loaded := make([]*Entry, len(payloads))

	g, ctx := errgroup.WithContext(ctx)
	for i, payload := range payloads {
		i, payload := i, payload
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			s, trailing, err := binschema.DecodeConsumed(payload)
			if err != nil {
				return fmt.Errorf("catalog: payload %d: %w", i, err)
			}

			codec, err := value.NewCodec(s)
			if err != nil {
				return fmt.Errorf("catalog: payload %d: %w", i, err)
			}

			loaded[i] = &Entry{Schema: s, Codec: codec, TrailingBytes: trailing}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	// Validate every key against both the existing Catalog and the rest of
	// this batch before writing anything, so a conflict found on entry 3
	// cannot leave entries 1-2 committed despite the call reporting failure.
	staged := make(map[string]*Entry, len(loaded))
	for i, entry := range loaded {
		key := entry.Schema.Package
		if existing, ok := c.entries[key]; ok && key == "" {
			return fmt.Errorf("%w: payload %d: a package-less schema is already loaded (%d definitions)",
				brineerr.ErrSchemaDecode, i, len(existing.Schema.Definitions))
		}
		if _, ok := c.entries[key]; ok {
			return fmt.Errorf("%w: payload %d: package %q is already loaded", brineerr.ErrSchemaDecode, i, key)
		}
		if _, ok := staged[key]; ok {
			return fmt.Errorf("%w: payload %d: package %q is duplicated within this batch", brineerr.ErrSchemaDecode, i, key)
		}
		staged[key] = entry
	}

	for key, entry := range staged {
		c.entries[key] = entry
	}

	return nil
}

// Lookup returns the Entry loaded for the given package name. ok is false
// if no schema was loaded under that name.
func (c *Catalog) Lookup(pkg string) (*Entry, bool) {
	e, ok := c.entries[pkg]
	return e, ok
}

// Len returns the number of distinct packages currently loaded.
func (c *Catalog) Len() int { return len(c.entries) }
