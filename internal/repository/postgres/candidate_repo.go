package postgres

import (
	"context"
	"time"

	"talent-workflow-api/internal/domain"

	"github.com/jackc/pgx/v5"
)

type candidateRepo struct {
	db DB
}

func NewCandidateRepository(db DB) domain.CandidateRepository {
	return &candidateRepo{db: db}
}

const candidateColumns = `id, job_id, status, resume_text, resume_summary, pi_details, skills_eval,
	desired_exp_eval, education_eval, sparse_resume, created_at, updated_at`

func (r *candidateRepo) Create(ctx context.Context, c *domain.Candidate) error {
	query := `INSERT INTO candidates (id, job_id, status, resume_text, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6)
              ON CONFLICT (id) DO NOTHING`
	tag, err := r.db.Exec(ctx, query, c.ID, c.JobID, c.Status, c.ResumeText, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyExists
	}
	return nil
}

func (r *candidateRepo) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	c, err := scanCandidate(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (r *candidateRepo) ListByJob(ctx context.Context, jobID string) ([]domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE job_id = $1 ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := []domain.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, *c)
	}
	return candidates, rows.Err()
}

func (r *candidateRepo) MarkProcessing(ctx context.Context, id, resumeText string, updatedAt time.Time) error {
	query := `UPDATE candidates SET status = $2, resume_text = $3, updated_at = $4 WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id, domain.CandidateProcessing, resumeText, updatedAt)
	return err
}

// SaveEvaluation merges the evaluation onto the record. resume_text is not
// touched, so a concurrent re-submission keeps its own text.
func (r *candidateRepo) SaveEvaluation(ctx context.Context, id string, eval *domain.ResumeEvaluation, status domain.CandidateStatus, updatedAt time.Time) error {
	if eval == nil {
		eval = &domain.ResumeEvaluation{}
	}

	query := `UPDATE candidates SET
                  resume_summary = $2::jsonb, pi_details = $3::jsonb, skills_eval = $4::jsonb,
                  desired_exp_eval = $5::jsonb, education_eval = $6::jsonb, sparse_resume = $7::jsonb,
                  status = $8, updated_at = $9
              WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id,
		rawArg(eval.ResumeSummary), rawArg(eval.PIDetails), rawArg(eval.SkillsEval),
		rawArg(eval.DesiredExpEval), rawArg(eval.EducationEval), rawArg(eval.SparseResume),
		status, updatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCandidate(row pgx.Row) (*domain.Candidate, error) {
	var (
		c                                               domain.Candidate
		summary, pi, skills, desired, education, sparse []byte
	)
	err := row.Scan(
		&c.ID, &c.JobID, &c.Status, &c.ResumeText,
		&summary, &pi, &skills, &desired, &education, &sparse,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.ResumeSummary = rawColumn(summary)
	c.PIDetails = rawColumn(pi)
	c.SkillsEval = rawColumn(skills)
	c.DesiredExpEval = rawColumn(desired)
	c.EducationEval = rawColumn(education)
	c.SparseResume = rawColumn(sparse)
	return &c, nil
}
