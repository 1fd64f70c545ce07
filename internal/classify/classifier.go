// Package classify routes a free-text payroll query to one of the fixed
// response categories using embedding similarity. Classification failure is
// never an error, it degrades to the fallback category.
package classify

import (
	"context"
	"math"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/AnuragRai017/paybot/internal/ai"
	"github.com/AnuragRai017/paybot/internal/model"
)

const queryTaskType = "RETRIEVAL_QUERY"

// Seed description per embeddable category, scored against the query.
// Order matters: ties resolve to the first entry.
var categorySeeds = []struct {
	category model.Category
	text     string
}{
	{model.CategorySalary, "salary compensation package pay earnings income"},
	{model.CategoryDeductions, "deductions tax PF professional tax take home net salary"},
	{model.CategoryCalculations, "calculate compute how determined formula method"},
}

// Keywords used for the fast-path hint. The hint is advisory only, the
// embedding result is authoritative whenever embeddings succeed.
var keywordHints = []struct {
	word     string
	category model.Category
}{
	{"deduction", model.CategoryDeductions},
	{"tax", model.CategoryDeductions},
	{"pf", model.CategoryDeductions},
	{"salary", model.CategorySalary},
	{"calculat", model.CategoryCalculations},
}

// Result is the classification outcome. Embedded reports whether the
// category came from embedding similarity; when false the category is
// always CategoryFallback.
type Result struct {
	Category model.Category
	Hint     model.Category
	Embedded bool
}

type Classifier struct {
	embedder ai.IEmbedder
}

func New(embedder ai.IEmbedder) *Classifier {
	return &Classifier{embedder: embedder}
}

// Classify returns exactly one category for the query. It never fails: any
// embedding problem, for the query or for a seed, yields the fallback
// category.
func (c *Classifier) Classify(ctx context.Context, query string) Result {
	logger := logutil.GetLogger(ctx)
	hint := KeywordHint(query)
	if c == nil || c.embedder == nil {
		return Result{Category: model.CategoryFallback, Hint: hint}
	}
	queryVec, err := c.embedder.Embed(ctx, query, queryTaskType)
	if err != nil || len(queryVec) == 0 {
		logger.Warn("query embedding unavailable, routing to fallback", zap.Error(err))
		return Result{Category: model.CategoryFallback, Hint: hint}
	}
	best := Result{Category: model.CategoryFallback, Hint: hint}
	bestScore := float32(0)
	scored := false
	for _, seed := range categorySeeds {
		seedVec, err := c.embedder.Embed(ctx, seed.text, "RETRIEVAL_DOCUMENT")
		if err != nil || len(seedVec) == 0 {
			logger.Warn("category embedding unavailable, routing to fallback",
				zap.String("category", string(seed.category)), zap.Error(err))
			return Result{Category: model.CategoryFallback, Hint: hint}
		}
		score := cosineSimilarity(queryVec, seedVec)
		// Strict > keeps the first seed on exact ties.
		if !scored || score > bestScore {
			scored = true
			bestScore = score
			best.Category = seed.category
			best.Embedded = true
		}
	}
	if best.Hint != "" && best.Hint != best.Category {
		logger.Debug("keyword hint disagrees with embedding result",
			zap.String("hint", string(best.Hint)),
			zap.String("category", string(best.Category)))
	}
	return best
}

// KeywordHint is the lightweight substring pre-check. Empty when no keyword
// matches.
func KeywordHint(query string) model.Category {
	lowered := strings.ToLower(query)
	for _, hint := range keywordHints {
		if strings.Contains(lowered, hint.word) {
			return hint.category
		}
	}
	return ""
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
