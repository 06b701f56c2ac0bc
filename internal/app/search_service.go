package app

import (
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"syncpad/internal/ai"
	"syncpad/internal/model"
)

const searchResultCap = 5

// SearchStore is the read-only slice of the message repository that search
// needs.
type SearchStore interface {
	ListVectorized() ([]model.Message, error)
	SearchText(pageID uint, query string, limit int) ([]model.Message, error)
}

// SearchService answers best-effort queries over stored messages. Both
// entry points are side-effect-free and never fail: any internal error is
// logged and degrades to an empty result list.
type SearchService struct {
	store  SearchStore
	logger *zap.Logger
}

func NewSearchService(store SearchStore, logger *zap.Logger) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchService{
		store:  store,
		logger: logger.Named("SearchService"),
	}
}

// SearchSimilar embeds the query and ranks every vectorized message by
// cosine similarity, returning at most five results.
func (s *SearchService) SearchSimilar(query string) []model.Message {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	candidates, err := s.store.ListVectorized()
	if err != nil {
		s.logger.Warn("vector search degraded to empty result", zap.Error(err))
		return nil
	}
	if len(candidates) == 0 {
		return nil
	}

	queryVec := ai.TextVector(query)

	type scored struct {
		message model.Message
		score   float64
	}
	ranked := make([]scored, 0, len(candidates))
	for i := range candidates {
		ranked = append(ranked, scored{
			message: candidates[i],
			score:   cosineSimilarity(queryVec, candidates[i].Vector()),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	limit := searchResultCap
	if limit > len(ranked) {
		limit = len(ranked)
	}
	results := make([]model.Message, 0, limit)
	for _, item := range ranked[:limit] {
		results = append(results, item.message)
	}
	return results
}

// SearchText does a case-insensitive substring match within one page,
// capped at five results.
func (s *SearchService) SearchText(pageID uint, query string) []model.Message {
	query = strings.TrimSpace(query)
	if pageID == 0 || query == "" {
		return nil
	}

	results, err := s.store.SearchText(pageID, query, searchResultCap)
	if err != nil {
		s.logger.Warn("text search degraded to empty result", zap.Error(err))
		return nil
	}
	return results
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA <= 0 || normB <= 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
