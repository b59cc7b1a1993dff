package domain

import (
	"context"
	"encoding/json"
	"time"
)

type SeniorityLevel string

const (
	SeniorityIntern    SeniorityLevel = "intern"
	SeniorityJunior    SeniorityLevel = "junior"
	SeniorityMid       SeniorityLevel = "mid"
	SenioritySenior    SeniorityLevel = "senior"
	SeniorityLead      SeniorityLevel = "lead"
	SeniorityPrincipal SeniorityLevel = "principal"
)

// Job is a posting. Skills, EducationDesiredExperience and Responsibilities
// are derived by the agent runtime and stay null until its first successful run.
type Job struct {
	ID                         string           `json:"id"`
	Title                      string           `json:"title"`
	YearsOfExperience          int              `json:"years_of_experience"`
	SeniorityLevel             SeniorityLevel   `json:"seniority_level"`
	JDText                     string           `json:"jd_text"`
	Skills                     *SkillsDocument  `json:"skills"`
	EducationDesiredExperience json.RawMessage  `json:"education_desired_experience"`
	Responsibilities           []Responsibility `json:"responsibilities"`
	CreatedAt                  time.Time        `json:"created_at"`
	UpdatedAt                  time.Time        `json:"updated_at"`
}

// JobInput holds the user-editable fields of a Job.
type JobInput struct {
	Title             string         `json:"title" validate:"required,notblank,min=2,max=120"`
	YearsOfExperience int            `json:"years_of_experience" validate:"min=0,max=50"`
	SeniorityLevel    SeniorityLevel `json:"seniority_level" validate:"required,oneof=intern junior mid senior lead principal"`
	JDText            string         `json:"jd_text" validate:"required,notblank,min=20,max=10000"`
}

type Responsibility struct {
	Text          string `json:"text"`
	SourceSection string `json:"source_section,omitempty"`
}

// JobAnalysis is what the agent runtime returns for a job description.
type JobAnalysis struct {
	Skills                     *SkillsDocument  `json:"skills"`
	EducationDesiredExperience json.RawMessage  `json:"education_desired_experience"`
	Responsibilities           []Responsibility `json:"responsibilities"`
}

// ApplyEditable copies the editable fields onto the job.
func (j *Job) ApplyEditable(in JobInput) {
	j.Title = in.Title
	j.YearsOfExperience = in.YearsOfExperience
	j.SeniorityLevel = in.SeniorityLevel
	j.JDText = in.JDText
}

// ApplyAnalysis replaces every derived field with the analysis result.
func (j *Job) ApplyAnalysis(a *JobAnalysis) {
	if a == nil {
		a = &JobAnalysis{}
	}
	j.Skills = a.Skills
	j.EducationDesiredExperience = a.EducationDesiredExperience
	j.Responsibilities = a.Responsibilities
}

type JobRepository interface {
	// Create is guarded on id: an existing id yields ErrAlreadyExists.
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	List(ctx context.Context) ([]Job, error)
	// UpdateEditable writes the editable fields only, leaving derived fields as they are.
	UpdateEditable(ctx context.Context, id string, in JobInput, updatedAt time.Time) error
	// UpdateDerived writes the derived fields only.
	UpdateDerived(ctx context.Context, id string, analysis *JobAnalysis, updatedAt time.Time) error
	// Overwrite writes editable and derived fields of job in a single statement.
	Overwrite(ctx context.Context, job *Job) error
	UpdateSkills(ctx context.Context, id string, skills *SkillsDocument, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, in JobInput) (*Job, error)
	GetJob(ctx context.Context, id string) (*Job, error)
	ListJobs(ctx context.Context) ([]Job, error)
	UpdateJob(ctx context.Context, id string, in JobInput) (*Job, error)
	DeleteJob(ctx context.Context, id string) error
}
