// Package models defines the shared data structures passed between the
// analysis agents and returned by the API.
package models

import "time"

// AgentStatus indicates whether an agent produced a usable result.
type AgentStatus string

const (
	StatusSuccess AgentStatus = "success"
	StatusError   AgentStatus = "error"
)

// Envelope is the uniform result wrapper every agent returns. Data carries
// the agent-specific payload, Insight the narrative summary, and Confidence
// a self-assessed reliability score in [0,1].
type Envelope struct {
	Agent      string      `json:"agent"`
	Data       interface{} `json:"data,omitempty"`
	Insight    string      `json:"insight,omitempty"`
	Confidence float64     `json:"confidence"`
	Status     AgentStatus `json:"status"`
	Error      string      `json:"error,omitempty"`
}

// NewEnvelope creates a success envelope for an agent.
func NewEnvelope(agent string, data interface{}, insight string, confidence float64) Envelope {
	return Envelope{
		Agent:      agent,
		Data:       data,
		Insight:    insight,
		Confidence: confidence,
		Status:     StatusSuccess,
	}
}

// NewErrorEnvelope creates an error envelope for an agent.
func NewErrorEnvelope(agent string, err error) Envelope {
	return Envelope{
		Agent:  agent,
		Status: StatusError,
		Error:  err.Error(),
	}
}

// PipelineStatus indicates the outcome of a full analysis run.
type PipelineStatus string

const (
	PipelineCompleted PipelineStatus = "completed"
	PipelineFailed    PipelineStatus = "failed"
)

// AnalysisResult is the full output of one pipeline run for a ticker.
type AnalysisResult struct {
	RunID     string              `json:"run_id"`
	Ticker    string              `json:"ticker"`
	Name      string              `json:"name,omitempty"`
	Status    PipelineStatus      `json:"status"`
	Error     string              `json:"error,omitempty"`
	Agents    map[string]Envelope `json:"agents,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

// ComparisonResult is the output of a multi-ticker comparison.
type ComparisonResult struct {
	Results  map[string]*AnalysisResult `json:"results"`
	Failed   map[string]string          `json:"failed,omitempty"`
	Rankings []RankingEntry             `json:"rankings,omitempty"`
}

// RankingEntry is one row of a comparison ranking, ordered by overall score.
type RankingEntry struct {
	Ticker       string `json:"ticker"`
	OverallScore int    `json:"overall_score"`
	Action       string `json:"action"`
}
