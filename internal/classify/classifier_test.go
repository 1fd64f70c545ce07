package classify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AnuragRai017/paybot/internal/ai"
	"github.com/AnuragRai017/paybot/internal/model"
)

type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors[text], nil
}

func (f *fakeEmbedder) ModelName() string {
	return "fake"
}

func seedText(category model.Category) string {
	for _, seed := range categorySeeds {
		if seed.category == category {
			return seed.text
		}
	}
	return ""
}

func TestClassify_PicksHighestSimilarity(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"how much do I earn":                 {1, 0, 0},
		seedText(model.CategorySalary):       {1, 0, 0},
		seedText(model.CategoryDeductions):   {0, 1, 0},
		seedText(model.CategoryCalculations): {0, 0, 1},
	}}
	c := New(embedder)
	res := c.Classify(context.Background(), "how much do I earn")
	require.Equal(t, model.CategorySalary, res.Category)
	require.True(t, res.Embedded)
}

func TestClassify_Deterministic(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"what gets deducted":                 {0.1, 0.9, 0},
		seedText(model.CategorySalary):       {1, 0, 0},
		seedText(model.CategoryDeductions):   {0, 1, 0},
		seedText(model.CategoryCalculations): {0, 0, 1},
	}}
	c := New(embedder)
	first := c.Classify(context.Background(), "what gets deducted")
	second := c.Classify(context.Background(), "what gets deducted")
	require.Equal(t, first.Category, second.Category)
	require.Equal(t, model.CategoryDeductions, first.Category)
}

func TestClassify_TieBreaksToFirstCategory(t *testing.T) {
	// Salary and deductions seeds are identical vectors: exact tie, the
	// first category in enumeration order must win.
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"ambiguous":                          {1, 1, 0},
		seedText(model.CategorySalary):       {1, 1, 0},
		seedText(model.CategoryDeductions):   {1, 1, 0},
		seedText(model.CategoryCalculations): {0, 0, 1},
	}}
	c := New(embedder)
	res := c.Classify(context.Background(), "ambiguous")
	require.Equal(t, model.CategorySalary, res.Category)
}

func TestClassify_FallbackWhenEmbeddingUnavailable(t *testing.T) {
	for _, query := range []string{"what is my salary", "deduction please", "tax and pf", "tell me a joke"} {
		embedder := &fakeEmbedder{err: ai.ErrUnavailable}
		c := New(embedder)
		res := c.Classify(context.Background(), query)
		require.Equal(t, model.CategoryFallback, res.Category, "query %q", query)
		require.False(t, res.Embedded)
	}
}

func TestClassify_FallbackWhenSeedEmbeddingMissing(t *testing.T) {
	// Query embeds fine but a category description returns no vector.
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"what gets deducted":           {0.1, 0.9, 0},
		seedText(model.CategorySalary): {1, 0, 0},
	}}
	c := New(embedder)
	res := c.Classify(context.Background(), "what gets deducted")
	require.Equal(t, model.CategoryFallback, res.Category)
}

func TestClassify_NilEmbedder(t *testing.T) {
	c := New(nil)
	res := c.Classify(context.Background(), "anything")
	require.Equal(t, model.CategoryFallback, res.Category)
}

func TestKeywordHint(t *testing.T) {
	tests := []struct {
		query string
		want  model.Category
	}{
		{"What is my PF deduction this year?", model.CategoryDeductions},
		{"show my salary", model.CategorySalary},
		{"how is this calculated", model.CategoryCalculations},
		{"hello there", ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, KeywordHint(tt.query), "query %q", tt.query)
	}
}

func TestCosineSimilarity(t *testing.T) {
	require.InDelta(t, 1.0, float64(cosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3})), 1e-6)
	require.InDelta(t, 0.0, float64(cosineSimilarity([]float32{1, 0}, []float32{0, 1})), 1e-6)
	require.Equal(t, float32(0), cosineSimilarity([]float32{1, 2}, []float32{1, 2, 3}))
	require.Equal(t, float32(0), cosineSimilarity([]float32{0, 0}, []float32{1, 2}))
}
