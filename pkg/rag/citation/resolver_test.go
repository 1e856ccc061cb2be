package citation

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"dec-assist-be/pkg/store"
)

type fakeMetadata struct {
	entries map[string][2]string
	err     error
	lookups int
}

func (f *fakeMetadata) Lookup(ctx context.Context, key string) (string, string, bool, error) {
	f.lookups++
	if f.err != nil {
		return "", "", false, f.err
	}
	entry, ok := f.entries[key]
	return entry[0], entry[1], ok, nil
}

func testLogger() *log.Logger {
	return log.New(os.Stderr, "", 0)
}

func TestResolveResolvedAndUnresolvedTiers(t *testing.T) {
	meta := &fakeMetadata{entries: map[string][2]string{
		"PA-ABC-123": {"Impact Evaluation Handbook", "https://dec.example.org/PA-ABC-123"},
	}}
	r := NewResolver(meta, testLogger())

	passages := []store.Passage{
		{Content: "c1", Source: "XX-UNK-000.pdf"},
		{Content: "c2", Source: "PA-ABC-123.txt"},
	}

	resolved, unresolved := r.Resolve(context.Background(), passages)

	// The tiers stay separate so callers can render catalog matches with
	// their permalinks and list the rest by raw key.
	assert.Equal(t, []store.Citation{
		{Title: "Impact Evaluation Handbook", Link: "https://dec.example.org/PA-ABC-123"},
	}, resolved)
	assert.Equal(t, []store.Citation{
		{Title: "XX-UNK-000", Link: " "},
	}, unresolved)
}

func TestResolveDenylistAndDedup(t *testing.T) {
	meta := &fakeMetadata{entries: map[string][2]string{
		"PA-ABC-123": {"Handbook", "https://dec.example.org/PA-ABC-123"},
	}}
	r := NewResolver(meta, testLogger())

	passages := []store.Passage{
		{Content: "c1", Source: "PN-AAJ-839.txt"},
		{Content: "c2", Source: "PA-ABC-123.txt"},
		{Content: "c3", Source: "PA-ABC-123.txt"},
		{Content: "c4", Source: ""},
	}

	resolved, unresolved := r.Resolve(context.Background(), passages)

	assert.Len(t, resolved, 1)
	assert.Equal(t, "Handbook", resolved[0].Title)
	assert.Empty(t, unresolved)
}

func TestResolveCachesMetadataLookups(t *testing.T) {
	meta := &fakeMetadata{entries: map[string][2]string{
		"PA-ABC-123": {"Handbook", "https://dec.example.org/PA-ABC-123"},
	}}
	r := NewResolver(meta, testLogger())

	r.Resolve(context.Background(), []store.Passage{{Content: "c1", Source: "PA-ABC-123.txt"}})
	r.Resolve(context.Background(), []store.Passage{{Content: "c2", Source: "PA-ABC-123.txt"}})

	assert.Equal(t, 1, meta.lookups)
}

func TestResolveLookupErrorFallsToUnresolved(t *testing.T) {
	r := NewResolver(&fakeMetadata{err: errors.New("db down")}, testLogger())

	resolved, unresolved := r.Resolve(context.Background(), []store.Passage{{Content: "c1", Source: "PA-ABC-123.txt"}})

	assert.Empty(t, resolved)
	assert.Equal(t, []store.Citation{{Title: "PA-ABC-123", Link: " "}}, unresolved)
}

func TestCitationMarkdown(t *testing.T) {
	c := store.Citation{Title: "Handbook", Link: "https://dec.example.org/x"}
	assert.Equal(t, "[Handbook](https://dec.example.org/x)", c.Markdown())
}
