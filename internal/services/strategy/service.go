// Package strategy implements the strategy agent: it synthesizes the
// market, fundamental, and technical envelopes into a scored
// recommendation with target price, risk grade, and key factors.
package strategy

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/consilium/internal/common"
	"github.com/ternarybob/consilium/internal/models"
	"github.com/ternarybob/consilium/internal/services/llm"
)

// Confidence weights per upstream agent: market, fundamental, technical.
const (
	marketConfWeight      = 0.2
	fundamentalConfWeight = 0.5
	technicalConfWeight   = 0.3
)

// Service is the strategy agent.
type Service struct {
	insight llm.InsightGenerator
	logger  arbor.ILogger
}

// NewService creates a strategy service.
func NewService(insight llm.InsightGenerator, logger arbor.ILogger) *Service {
	return &Service{insight: insight, logger: logger}
}

// Synthesize combines the three upstream envelopes into a recommendation
// envelope. Error envelopes from the fundamental or technical agents
// degrade the scores toward neutral rather than failing the run.
func (s *Service) Synthesize(ctx context.Context, ticker common.Ticker, market, fundamental, technical models.Envelope) models.Envelope {
	snapshot := marketPayload(market)
	fundProfile := fundamentalPayload(fundamental)
	techProfile := technicalPayload(technical)

	fundScore := fundamentalScore(fundProfile)
	techScore := technicalScore(techProfile)
	overall := overallScore(fundScore, techScore)
	action, description := recommendAction(overall)

	var price float64
	if snapshot != nil {
		price = snapshot.CurrentPrice
	}

	rec := &models.Recommendation{
		Ticker:            ticker.String(),
		Action:            action,
		ActionDescription: description,
		OverallScore:      overall,
		FundamentalScore:  fundScore,
		TechnicalScore:    techScore,
		TargetPrice:       targetPrice(price, fundProfile, techProfile),
		Risk:              assessRisk(fundProfile, techProfile),
		KeyFactors:        collectKeyFactors(fundProfile, techProfile),
	}

	fallback := fmt.Sprintf(
		"%s: %s (score %d/100). %s. Risk level %s.",
		rec.Ticker, rec.Action, rec.OverallScore, rec.ActionDescription, rec.Risk.Level,
	)
	prompt := buildPrompt(rec)
	insight := s.insight.GenerateInsight(ctx, prompt, fallback)

	confidence := common.Round2(
		envelopeConfidence(market)*marketConfWeight +
			envelopeConfidence(fundamental)*fundamentalConfWeight +
			envelopeConfidence(technical)*technicalConfWeight,
	)

	return models.NewEnvelope(models.AgentStrategy, rec, insight, confidence)
}

func buildPrompt(rec *models.Recommendation) string {
	return fmt.Sprintf(
		"As a senior investment strategist, provide an investment recommendation for %s.\n\n"+
			"Fundamental score %d/100, technical score %d/100, overall %d/100.\n"+
			"Bullish factors: %s.\nBearish factors: %s.\n"+
			"Recommendation: %s. Target range %.2f to %.2f (upside %.1f%%). Risk level %s.\n\n"+
			"Give a clear investment thesis, the key reasons, what would change the view, "+
			"a suggested horizon, and position sizing advice for this risk level.",
		rec.Ticker, rec.FundamentalScore, rec.TechnicalScore, rec.OverallScore,
		joinFactors(rec.KeyFactors.Bullish), joinFactors(rec.KeyFactors.Bearish),
		rec.Action, rec.TargetPrice.Low, rec.TargetPrice.High, rec.TargetPrice.UpsidePercent,
		rec.Risk.Level,
	)
}

func joinFactors(factors []string) string {
	if len(factors) == 0 {
		return "none"
	}
	return strings.Join(factors, "; ")
}

// envelopeConfidence reads the confidence an upstream agent reported.
// Error envelopes carry zero, so a failed sub-analysis drags the blend
// down instead of counting as a coin flip.
func envelopeConfidence(env models.Envelope) float64 {
	return env.Confidence
}

func marketPayload(env models.Envelope) *models.MarketSnapshot {
	if env.Status != models.StatusSuccess {
		return nil
	}
	snapshot, _ := env.Data.(*models.MarketSnapshot)
	return snapshot
}

func fundamentalPayload(env models.Envelope) *models.FundamentalProfile {
	if env.Status != models.StatusSuccess {
		return nil
	}
	profile, _ := env.Data.(*models.FundamentalProfile)
	return profile
}

func technicalPayload(env models.Envelope) *models.TechnicalProfile {
	if env.Status != models.StatusSuccess {
		return nil
	}
	profile, _ := env.Data.(*models.TechnicalProfile)
	return profile
}
