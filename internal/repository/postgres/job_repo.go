package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"talent-workflow-api/internal/domain"

	"github.com/jackc/pgx/v5"
)

type jobRepo struct {
	db DB
}

func NewJobRepository(db DB) domain.JobRepository {
	return &jobRepo{db: db}
}

const jobColumns = `id, title, years_of_experience, seniority_level, jd_text,
	skills, education_desired_experience, responsibilities, created_at, updated_at`

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	skills, resp, err := encodeDerived(job.Skills, job.Responsibilities)
	if err != nil {
		return err
	}

	query := `INSERT INTO jobs (` + jobColumns + `)
              VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7::jsonb, $8::jsonb, $9, $10)
              ON CONFLICT (id) DO NOTHING`
	tag, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.YearsOfExperience, job.SeniorityLevel, job.JDText,
		skills, rawArg(job.EducationDesiredExperience), resp,
		job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyExists
	}
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return job, nil
}

func (r *jobRepo) List(ctx context.Context) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) UpdateEditable(ctx context.Context, id string, in domain.JobInput, updatedAt time.Time) error {
	query := `UPDATE jobs SET title = $2, years_of_experience = $3, seniority_level = $4, jd_text = $5, updated_at = $6
              WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, in.Title, in.YearsOfExperience, in.SeniorityLevel, in.JDText, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) UpdateDerived(ctx context.Context, id string, analysis *domain.JobAnalysis, updatedAt time.Time) error {
	if analysis == nil {
		analysis = &domain.JobAnalysis{}
	}
	skills, resp, err := encodeDerived(analysis.Skills, analysis.Responsibilities)
	if err != nil {
		return err
	}

	query := `UPDATE jobs SET skills = $2::jsonb, education_desired_experience = $3::jsonb,
              responsibilities = $4::jsonb, updated_at = $5
              WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, skills, rawArg(analysis.EducationDesiredExperience), resp, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Overwrite(ctx context.Context, job *domain.Job) error {
	skills, resp, err := encodeDerived(job.Skills, job.Responsibilities)
	if err != nil {
		return err
	}

	query := `UPDATE jobs SET title = $2, years_of_experience = $3, seniority_level = $4, jd_text = $5,
              skills = $6::jsonb, education_desired_experience = $7::jsonb, responsibilities = $8::jsonb,
              updated_at = $9
              WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.YearsOfExperience, job.SeniorityLevel, job.JDText,
		skills, rawArg(job.EducationDesiredExperience), resp, job.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) UpdateSkills(ctx context.Context, id string, skills *domain.SkillsDocument, updatedAt time.Time) error {
	arg, err := jsonArg(skills)
	if err != nil {
		return fmt.Errorf("encode skills: %w", err)
	}

	tag, err := r.db.Exec(ctx, `UPDATE jobs SET skills = $2::jsonb, updated_at = $3 WHERE id = $1`, id, arg, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete is idempotent; candidates of the job are left untouched.
func (r *jobRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	return err
}

func encodeDerived(skills *domain.SkillsDocument, resp []domain.Responsibility) (*string, *string, error) {
	var skillsArg *string
	if skills != nil {
		var err error
		if skillsArg, err = jsonArg(skills); err != nil {
			return nil, nil, fmt.Errorf("encode skills: %w", err)
		}
	}
	var respArg *string
	if resp != nil {
		var err error
		if respArg, err = jsonArg(resp); err != nil {
			return nil, nil, fmt.Errorf("encode responsibilities: %w", err)
		}
	}
	return skillsArg, respArg, nil
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var (
		job                       domain.Job
		skills, education, duties []byte
	)
	err := row.Scan(
		&job.ID, &job.Title, &job.YearsOfExperience, &job.SeniorityLevel, &job.JDText,
		&skills, &education, &duties, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := decodeJobDerived(&job, skills, education, duties); err != nil {
		return nil, fmt.Errorf("job %s: %w", job.ID, err)
	}
	return &job, nil
}

func decodeJobDerived(job *domain.Job, skills, education, duties []byte) error {
	if len(skills) > 0 {
		job.Skills = &domain.SkillsDocument{}
		if err := json.Unmarshal(skills, job.Skills); err != nil {
			return fmt.Errorf("decode skills: %w", err)
		}
	}
	job.EducationDesiredExperience = rawColumn(education)
	if len(duties) > 0 {
		if err := json.Unmarshal(duties, &job.Responsibilities); err != nil {
			return fmt.Errorf("decode responsibilities: %w", err)
		}
	}
	return nil
}
