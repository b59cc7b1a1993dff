package usecase

import (
	"context"
	"errors"
	"time"

	"talent-workflow-api/internal/domain"
	"talent-workflow-api/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type candidateUsecase struct {
	candidateRepo domain.CandidateRepository
	jobRepo       domain.JobRepository
	gateway       domain.AgentGateway
	validate      *validator.Validate
	log           *zap.Logger
	now           func() time.Time
}

func NewCandidateUsecase(
	candidateRepo domain.CandidateRepository,
	jobRepo domain.JobRepository,
	gateway domain.AgentGateway,
	validate *validator.Validate,
	log *zap.Logger,
) domain.CandidateUsecase {
	return &candidateUsecase{
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
		gateway:       gateway,
		validate:      validate,
		log:           log,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (u *candidateUsecase) CreateCandidate(ctx context.Context, jobID string, in domain.CandidateInput) (*domain.Candidate, error) {
	if err := validateInput(u.validate, in); err != nil {
		return nil, err
	}

	if _, err := u.jobRepo.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}

	now := u.now()
	candidate := &domain.Candidate{
		ID:         uuid.NewString(),
		JobID:      jobID,
		Status:     domain.CandidateProcessing,
		ResumeText: in.ResumeText,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := u.candidateRepo.Create(ctx, candidate); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, apperror.Conflict("Candidate already exists")
		}
		return nil, apperror.Internal(err)
	}

	return u.evaluate(ctx, candidate.ID, jobID)
}

func (u *candidateUsecase) GetCandidate(ctx context.Context, id string) (*domain.Candidate, error) {
	candidate, err := u.candidateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate not found")
		}
		return nil, apperror.Internal(err)
	}
	return candidate, nil
}

func (u *candidateUsecase) ListCandidates(ctx context.Context, jobID string) ([]domain.Candidate, error) {
	candidates, err := u.candidateRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return candidates, nil
}

// ReevaluateCandidate replaces the resume text, flags the record as
// processing and runs a fresh evaluation.
func (u *candidateUsecase) ReevaluateCandidate(ctx context.Context, id string, in domain.CandidateInput) (*domain.Candidate, error) {
	if err := validateInput(u.validate, in); err != nil {
		return nil, err
	}

	if err := u.candidateRepo.MarkProcessing(ctx, id, in.ResumeText, u.now()); err != nil {
		return nil, apperror.Internal(err)
	}

	candidate, err := u.GetCandidate(ctx, id)
	if err != nil {
		return nil, err
	}

	return u.evaluate(ctx, candidate.ID, candidate.JobID)
}

// evaluate calls the runtime for a candidate already in processing. On
// failure the record is left in processing.
func (u *candidateUsecase) evaluate(ctx context.Context, candidateID, jobID string) (*domain.Candidate, error) {
	eval, err := u.gateway.EvaluateResume(ctx, candidateID, jobID)
	if err != nil {
		u.log.Error("resume evaluation failed; candidate left in processing",
			zap.String("candidate_id", candidateID),
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return nil, apperror.Upstream("Resume evaluation failed", err)
	}

	status := eval.FinalStatus()
	if err := u.candidateRepo.SaveEvaluation(ctx, candidateID, eval, status, u.now()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate not found")
		}
		return nil, apperror.Internal(err)
	}

	u.log.Info("resume evaluated",
		zap.String("candidate_id", candidateID),
		zap.String("job_id", jobID),
		zap.String("status", string(status)),
	)
	return u.GetCandidate(ctx, candidateID)
}
