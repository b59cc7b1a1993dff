package domain

import (
	"context"
	"encoding/json"
	"time"
)

type CandidateStatus string

const (
	CandidateProcessing CandidateStatus = "processing"
	CandidateCompleted  CandidateStatus = "completed"
	CandidateError      CandidateStatus = "error"
)

// Candidate is a resume submitted against one job. Status "processing" is
// transient; evaluation fields may be stale or absent while in it.
type Candidate struct {
	ID             string          `json:"id"`
	JobID          string          `json:"job_id"`
	Status         CandidateStatus `json:"status"`
	ResumeText     string          `json:"resume_text"`
	ResumeSummary  json.RawMessage `json:"resume_summary,omitempty"`
	PIDetails      json.RawMessage `json:"pi_details,omitempty"`
	SkillsEval     json.RawMessage `json:"skills_eval,omitempty"`
	DesiredExpEval json.RawMessage `json:"desired_exp_eval,omitempty"`
	EducationEval  json.RawMessage `json:"education_eval,omitempty"`
	SparseResume   json.RawMessage `json:"sparse_resume,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type CandidateInput struct {
	ResumeText string `json:"resume_text" validate:"required,notblank,min=50,max=200000"`
}

// ResumeEvaluation is what the agent runtime returns for a resume.
type ResumeEvaluation struct {
	ResumeSummary  json.RawMessage `json:"resume_summary"`
	PIDetails      json.RawMessage `json:"pi_details"`
	SkillsEval     json.RawMessage `json:"skills_eval"`
	DesiredExpEval json.RawMessage `json:"desired_exp_eval"`
	EducationEval  json.RawMessage `json:"education_eval"`
	SparseResume   json.RawMessage `json:"sparse_resume,omitempty"`
	Status         string          `json:"status,omitempty"`
}

// FinalStatus is the terminal status to record for this evaluation. Only
// completed and error are ever stored from a result: an absent or
// processing status counts as completed, an unrecognised one as error.
func (e *ResumeEvaluation) FinalStatus() CandidateStatus {
	switch CandidateStatus(e.Status) {
	case "", CandidateCompleted, CandidateProcessing:
		return CandidateCompleted
	default:
		return CandidateError
	}
}

type CandidateRepository interface {
	// Create is guarded on id: an existing id yields ErrAlreadyExists.
	Create(ctx context.Context, candidate *Candidate) error
	GetByID(ctx context.Context, id string) (*Candidate, error)
	ListByJob(ctx context.Context, jobID string) ([]Candidate, error)
	// MarkProcessing overwrites resume_text and flips status to processing.
	// A missing id is not an error here; callers re-fetch to confirm.
	MarkProcessing(ctx context.Context, id, resumeText string, updatedAt time.Time) error
	SaveEvaluation(ctx context.Context, id string, eval *ResumeEvaluation, status CandidateStatus, updatedAt time.Time) error
}

type CandidateUsecase interface {
	CreateCandidate(ctx context.Context, jobID string, in CandidateInput) (*Candidate, error)
	GetCandidate(ctx context.Context, id string) (*Candidate, error)
	ListCandidates(ctx context.Context, jobID string) ([]Candidate, error)
	ReevaluateCandidate(ctx context.Context, id string, in CandidateInput) (*Candidate, error)
	ExportCandidates(ctx context.Context, jobID string) ([]byte, string, error)
}
