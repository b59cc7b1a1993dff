package v1

import (
	"context"
	"sort"
	"sync"
	"time"

	"talent-workflow-api/internal/domain"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*domain.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrAlreadyExists
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

type memJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*domain.Job
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{jobs: map[string]*domain.Job{}}
}

func (r *memJobRepo) put(job *domain.Job) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *job
	cp.Skills = job.Skills.Clone()
	r.jobs[job.ID] = &cp
}

func (r *memJobRepo) Create(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	_, exists := r.jobs[job.ID]
	r.mu.Unlock()
	if exists {
		return domain.ErrAlreadyExists
	}
	r.put(job)
	return nil
}

func (r *memJobRepo) GetByID(_ context.Context, id string) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *j
	cp.Skills = j.Skills.Clone()
	return &cp, nil
}

func (r *memJobRepo) List(_ context.Context) ([]domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		out = append(out, *j)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

func (r *memJobRepo) UpdateEditable(_ context.Context, id string, in domain.JobInput, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}
	j.ApplyEditable(in)
	j.UpdatedAt = updatedAt
	return nil
}

func (r *memJobRepo) UpdateDerived(_ context.Context, id string, a *domain.JobAnalysis, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}
	j.ApplyAnalysis(a)
	j.Skills = j.Skills.Clone()
	j.UpdatedAt = updatedAt
	return nil
}

func (r *memJobRepo) Overwrite(_ context.Context, job *domain.Job) error {
	r.put(job)
	return nil
}

func (r *memJobRepo) UpdateSkills(_ context.Context, id string, skills *domain.SkillsDocument, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}
	j.Skills = skills.Clone()
	j.UpdatedAt = updatedAt
	return nil
}

func (r *memJobRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.jobs, id)
	return nil
}

type memCandidateRepo struct {
	mu         sync.Mutex
	candidates map[string]*domain.Candidate
}

func newMemCandidateRepo() *memCandidateRepo {
	return &memCandidateRepo{candidates: map[string]*domain.Candidate{}}
}

func (r *memCandidateRepo) Create(_ context.Context, c *domain.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.candidates[c.ID]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *c
	r.candidates[c.ID] = &cp
	return nil
}

func (r *memCandidateRepo) GetByID(_ context.Context, id string) (*domain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.candidates[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memCandidateRepo) ListByJob(_ context.Context, jobID string) ([]domain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Candidate
	for _, c := range r.candidates {
		if c.JobID == jobID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memCandidateRepo) MarkProcessing(_ context.Context, id, resumeText string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.candidates[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Status = domain.CandidateProcessing
	c.ResumeText = resumeText
	c.UpdatedAt = updatedAt
	return nil
}

func (r *memCandidateRepo) SaveEvaluation(_ context.Context, id string, e *domain.ResumeEvaluation, status domain.CandidateStatus, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.candidates[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.ResumeSummary = e.ResumeSummary
	c.PIDetails = e.PIDetails
	c.SkillsEval = e.SkillsEval
	c.DesiredExpEval = e.DesiredExpEval
	c.EducationEval = e.EducationEval
	c.SparseResume = e.SparseResume
	c.Status = status
	c.UpdatedAt = updatedAt
	return nil
}

type stubGateway struct {
	analysis   *domain.JobAnalysis
	evaluation *domain.ResumeEvaluation
	err        error
}

func (g *stubGateway) AnalyzeJob(context.Context, string) (*domain.JobAnalysis, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.analysis, nil
}

func (g *stubGateway) EvaluateResume(context.Context, string, string) (*domain.ResumeEvaluation, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.evaluation, nil
}
