package domain

import "context"

// AgentGateway is the external analysis runtime. Both calls are slow
// (tens of seconds) and are never retried by callers.
type AgentGateway interface {
	// AnalyzeJob reads the stored job by id and returns its derived fields.
	AnalyzeJob(ctx context.Context, jobID string) (*JobAnalysis, error)
	// EvaluateResume reads the stored candidate by id; jobID is informational.
	EvaluateResume(ctx context.Context, candidateID, jobID string) (*ResumeEvaluation, error)
}
