package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"dec-assist-be/pkg/store"
)

type fakeSearcher struct {
	results map[string][]store.Passage
	err     error
	queries []string
}

func (f *fakeSearcher) Search(ctx context.Context, query string, k int) ([]store.Passage, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[query], nil
}

func TestRetrieveUnionsVariantResults(t *testing.T) {
	shared := store.Passage{Content: "overlap", Source: "a.txt"}
	searcher := &fakeSearcher{results: map[string][]store.Passage{
		"original":  {shared, {Content: "from original", Source: "a.txt"}},
		"variant 1": {shared, {Content: "from variant", Source: "b.txt"}},
	}}
	fake := &fakeLLM{generate: func(prompt string) (string, error) {
		return "variant 1\n", nil
	}}

	m := NewMultiQueryRetriever(fake, searcher, testLogger())
	got, err := m.Retrieve(context.Background(), "original", 10)

	assert.NoError(t, err)
	assert.Equal(t, []store.Passage{
		shared,
		{Content: "from original", Source: "a.txt"},
		{Content: "from variant", Source: "b.txt"},
	}, got)
	assert.Equal(t, []string{"original", "variant 1"}, searcher.queries)
}

func TestRetrieveDegradesWhenVariantGenerationFails(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]store.Passage{
		"q": {{Content: "hit", Source: "a.txt"}},
	}}
	fake := &fakeLLM{generate: func(prompt string) (string, error) {
		return "", errors.New("provider down")
	}}

	m := NewMultiQueryRetriever(fake, searcher, testLogger())
	got, err := m.Retrieve(context.Background(), "q", 10)

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, []string{"q"}, searcher.queries)
}

func TestRetrieveFailsWhenOriginalSearchFails(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("index gone")}
	fake := &fakeLLM{generate: func(prompt string) (string, error) {
		return "", errors.New("skip variants")
	}}

	m := NewMultiQueryRetriever(fake, searcher, testLogger())
	_, err := m.Retrieve(context.Background(), "q", 10)

	assert.Error(t, err)
}

func TestGenerateVariantsCapsAndTrims(t *testing.T) {
	fake := &fakeLLM{generate: func(prompt string) (string, error) {
		return "one\n\n  two  \nq\nthree\nfour\n", nil
	}}
	m := NewMultiQueryRetriever(fake, &fakeSearcher{}, testLogger())

	variants := m.generateVariants(context.Background(), "q")

	// Blank lines and echoes of the original question are dropped, and the
	// list is capped at multiQueryVariants.
	assert.Equal(t, []string{"one", "two", "three"}, variants)
}
