package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ternarybob/consilium/internal/common"
	"github.com/ternarybob/consilium/internal/models"
)

// Compare runs the pipeline concurrently for each ticker and ranks the
// successful results by overall score. It fails only when every ticker
// fails.
func (p *Pipeline) Compare(ctx context.Context, tickers []common.Ticker) (*models.ComparisonResult, error) {
	if len(tickers) < common.MinCompareTickers || len(tickers) > common.MaxCompareTickers {
		return nil, fmt.Errorf("comparison requires between %d and %d tickers, got %d",
			common.MinCompareTickers, common.MaxCompareTickers, len(tickers))
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]*models.AnalysisResult)
		failed  = make(map[string]string)
	)
	for _, ticker := range tickers {
		wg.Add(1)
		go func(t common.Ticker) {
			defer wg.Done()
			result := p.Run(ctx, t)
			mu.Lock()
			defer mu.Unlock()
			if result.Status == models.PipelineCompleted {
				results[t.String()] = result
			} else {
				failed[t.String()] = result.Error
			}
		}(ticker)
	}
	wg.Wait()

	if len(results) == 0 {
		return nil, fmt.Errorf("analysis failed for all %d tickers", len(tickers))
	}

	return &models.ComparisonResult{
		Results:  results,
		Failed:   failed,
		Rankings: rankResults(results),
	}, nil
}

// rankResults orders successful analyses by overall score, best first.
func rankResults(results map[string]*models.AnalysisResult) []models.RankingEntry {
	rankings := make([]models.RankingEntry, 0, len(results))
	for ticker, result := range results {
		entry := models.RankingEntry{Ticker: ticker}
		if env, ok := result.Agents[models.AgentStrategy]; ok {
			if rec, ok := env.Data.(*models.Recommendation); ok {
				entry.OverallScore = rec.OverallScore
				entry.Action = rec.Action
			}
		}
		rankings = append(rankings, entry)
	}
	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].OverallScore != rankings[j].OverallScore {
			return rankings[i].OverallScore > rankings[j].OverallScore
		}
		return rankings[i].Ticker < rankings[j].Ticker
	})
	return rankings
}
