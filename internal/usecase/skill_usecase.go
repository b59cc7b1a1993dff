package usecase

import (
	"context"
	"errors"
	"time"

	"talent-workflow-api/internal/domain"
	"talent-workflow-api/pkg/apperror"

	"go.uber.org/zap"
)

type skillUsecase struct {
	jobRepo domain.JobRepository
	log     *zap.Logger
	now     func() time.Time
}

func NewSkillUsecase(jobRepo domain.JobRepository, log *zap.Logger) domain.SkillUsecase {
	return &skillUsecase{
		jobRepo: jobRepo,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// EditSkills applies every intent in edit to the job's skills document and
// persists the result in one write. The agent runtime is not involved.
func (u *skillUsecase) EditSkills(ctx context.Context, jobID string, edit domain.SkillEdit) (*domain.Job, error) {
	if edit.Empty() {
		return nil, apperror.BadRequest("Nothing to update")
	}

	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}

	skills, err := edit.Apply(job.Skills)
	if err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	updatedAt := u.now()
	if err := u.jobRepo.UpdateSkills(ctx, jobID, skills, updatedAt); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}

	u.log.Debug("skills updated", zap.String("job_id", jobID))

	job.Skills = skills
	job.UpdatedAt = updatedAt
	return job, nil
}
