package citation

import (
	"context"
	"log"
	"path/filepath"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"dec-assist-be/pkg/store"
)

// denylist holds corpus files that must never surface as citations. Their
// passages still feed synthesis; only the attribution is suppressed.
var denylist = map[string]bool{
	"PN-AAJ-839.txt": true,
	"PN-AAF-489.txt": true,
	"PD-AAU-562.txt": true,
}

// placeholderLink marks a citation whose document key had no metadata entry.
const placeholderLink = " "

// MetadataLookup resolves a document key (source file name without its
// extension) to its catalog title and permalink.
type MetadataLookup interface {
	Lookup(ctx context.Context, key string) (title, permalink string, ok bool, err error)
}

// Resolver turns the source keys of retrieved passages into ordered,
// deduplicated citations, split into a resolved and an unresolved tier
type Resolver struct {
	metadata MetadataLookup
	cache    *gocache.Cache
	logger   *log.Logger
}

// NewResolver creates a citation resolver. Metadata hits are cached since the
// catalog is effectively immutable between corpus reloads.
func NewResolver(metadata MetadataLookup, logger *log.Logger) *Resolver {
	return &Resolver{
		metadata: metadata,
		cache:    gocache.New(30*time.Minute, 10*time.Minute),
		logger:   logger,
	}
}

type cachedMeta struct {
	title     string
	permalink string
	ok        bool
}

// Resolve maps passage sources to citations. Denylisted sources are dropped
// and duplicates keep their first occurrence. Sources found in the metadata
// catalog land in the resolved tier with their title and permalink; the rest
// land in the unresolved tier with their raw key and a placeholder link, so
// callers can display the two tiers separately.
func (r *Resolver) Resolve(ctx context.Context, passages []store.Passage) (resolvedTier, unresolvedTier []store.Citation) {
	var resolved []store.Citation
	var unresolved []store.Citation
	seen := make(map[string]bool)

	for _, p := range passages {
		source := strings.TrimSpace(p.Source)
		if source == "" || denylist[source] || seen[source] {
			continue
		}
		seen[source] = true

		key := strings.TrimSuffix(source, filepath.Ext(source))
		meta, err := r.lookup(ctx, key)
		if err != nil {
			r.logger.Printf("[WARN] Metadata lookup failed for %q: %v", key, err)
			unresolved = append(unresolved, store.Citation{Title: key, Link: placeholderLink})
			continue
		}
		if meta.ok {
			resolved = append(resolved, store.Citation{Title: meta.title, Link: meta.permalink})
		} else {
			unresolved = append(unresolved, store.Citation{Title: key, Link: placeholderLink})
		}
	}

	return resolved, unresolved
}

func (r *Resolver) lookup(ctx context.Context, key string) (cachedMeta, error) {
	if v, found := r.cache.Get(key); found {
		return v.(cachedMeta), nil
	}

	title, permalink, ok, err := r.metadata.Lookup(ctx, key)
	if err != nil {
		return cachedMeta{}, err
	}

	meta := cachedMeta{title: title, permalink: permalink, ok: ok}
	r.cache.Set(key, meta, gocache.DefaultExpiration)
	return meta, nil
}
