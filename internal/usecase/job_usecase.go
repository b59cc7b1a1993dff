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

type jobUsecase struct {
	jobRepo  domain.JobRepository
	gateway  domain.AgentGateway
	validate *validator.Validate
	log      *zap.Logger
	now      func() time.Time
}

func NewJobUsecase(jobRepo domain.JobRepository, gateway domain.AgentGateway, validate *validator.Validate, log *zap.Logger) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:  jobRepo,
		gateway:  gateway,
		validate: validate,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateJob stores the editable fields first so the agent runtime can read
// the job by id, then writes back what it derived.
func (u *jobUsecase) CreateJob(ctx context.Context, in domain.JobInput) (*domain.Job, error) {
	if err := validateInput(u.validate, in); err != nil {
		return nil, err
	}

	now := u.now()
	job := &domain.Job{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.ApplyEditable(in)

	if err := u.jobRepo.Create(ctx, job); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, apperror.Conflict("Job already exists")
		}
		return nil, apperror.Internal(err)
	}

	analysis, err := u.gateway.AnalyzeJob(ctx, job.ID)
	if err != nil {
		u.log.Error("job analysis failed", zap.String("job_id", job.ID), zap.Error(err))
		return nil, apperror.Upstream("Job analysis failed", err)
	}

	if err := u.jobRepo.UpdateDerived(ctx, job.ID, analysis, u.now()); err != nil {
		return nil, apperror.Internal(err)
	}

	return u.GetJob(ctx, job.ID)
}

func (u *jobUsecase) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (u *jobUsecase) ListJobs(ctx context.Context) ([]domain.Job, error) {
	jobs, err := u.jobRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

// UpdateJob commits the new editable fields before asking the runtime to
// re-analyze. If the runtime fails, the edit stays and derived fields keep
// their previous values.
func (u *jobUsecase) UpdateJob(ctx context.Context, id string, in domain.JobInput) (*domain.Job, error) {
	if err := validateInput(u.validate, in); err != nil {
		return nil, err
	}

	job, err := u.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := u.jobRepo.UpdateEditable(ctx, id, in, u.now()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}

	analysis, err := u.gateway.AnalyzeJob(ctx, id)
	if err != nil {
		u.log.Error("job re-analysis failed", zap.String("job_id", id), zap.Error(err))
		return nil, apperror.Upstream("Job analysis failed", err)
	}

	job.ApplyEditable(in)
	job.ApplyAnalysis(analysis)
	job.UpdatedAt = u.now()

	if err := u.jobRepo.Overwrite(ctx, job); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, id string) error {
	if err := u.jobRepo.Delete(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
