package usecase_test

import (
	"context"
	"time"

	"talent-workflow-api/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) List(ctx context.Context) ([]domain.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockJobRepo) UpdateEditable(ctx context.Context, id string, in domain.JobInput, updatedAt time.Time) error {
	return m.Called(ctx, id, in, updatedAt).Error(0)
}
func (m *MockJobRepo) UpdateDerived(ctx context.Context, id string, analysis *domain.JobAnalysis, updatedAt time.Time) error {
	return m.Called(ctx, id, analysis, updatedAt).Error(0)
}
func (m *MockJobRepo) Overwrite(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) UpdateSkills(ctx context.Context, id string, skills *domain.SkillsDocument, updatedAt time.Time) error {
	return m.Called(ctx, id, skills, updatedAt).Error(0)
}
func (m *MockJobRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) Create(ctx context.Context, c *domain.Candidate) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockCandidateRepo) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}
func (m *MockCandidateRepo) ListByJob(ctx context.Context, jobID string) ([]domain.Candidate, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Candidate), args.Error(1)
}
func (m *MockCandidateRepo) MarkProcessing(ctx context.Context, id, resumeText string, updatedAt time.Time) error {
	return m.Called(ctx, id, resumeText, updatedAt).Error(0)
}
func (m *MockCandidateRepo) SaveEvaluation(ctx context.Context, id string, eval *domain.ResumeEvaluation, status domain.CandidateStatus, updatedAt time.Time) error {
	return m.Called(ctx, id, eval, status, updatedAt).Error(0)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) AnalyzeJob(ctx context.Context, jobID string) (*domain.JobAnalysis, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobAnalysis), args.Error(1)
}
func (m *MockGateway) EvaluateResume(ctx context.Context, candidateID, jobID string) (*domain.ResumeEvaluation, error) {
	args := m.Called(ctx, candidateID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResumeEvaluation), args.Error(1)
}
