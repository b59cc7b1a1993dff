package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSkillPath is returned when a path does not address a skill in the document.
var ErrInvalidSkillPath = errors.New("invalid skill path")

// SkillsDocument is the nested skills tree attached to a job. A category
// holds either verticals (each with skills) or skills directly.
type SkillsDocument struct {
	Categories   []SkillCategory `json:"categories"`
	Unclassified []Skill         `json:"skills_unclassified,omitempty"`
}

type SkillCategory struct {
	Name      string          `json:"name,omitempty"`
	Verticals []SkillVertical `json:"verticals,omitempty"`
	Skills    []Skill         `json:"skills,omitempty"`
}

type SkillVertical struct {
	Name   string  `json:"name,omitempty"`
	Skills []Skill `json:"skills"`
}

type Skill struct {
	Skill    string `json:"skill"`
	Required bool   `json:"required"`
	Context  string `json:"context,omitempty"`
}

// Clone returns a deep copy so edits never alias a stored document.
func (d *SkillsDocument) Clone() *SkillsDocument {
	if d == nil {
		return nil
	}
	out := &SkillsDocument{
		Categories:   make([]SkillCategory, len(d.Categories)),
		Unclassified: cloneSkills(d.Unclassified),
	}
	for i, cat := range d.Categories {
		c := SkillCategory{Name: cat.Name, Skills: cloneSkills(cat.Skills)}
		if cat.Verticals != nil {
			c.Verticals = make([]SkillVertical, len(cat.Verticals))
			for j, v := range cat.Verticals {
				c.Verticals[j] = SkillVertical{Name: v.Name, Skills: cloneSkills(v.Skills)}
			}
		}
		out.Categories[i] = c
	}
	return out
}

func cloneSkills(in []Skill) []Skill {
	if in == nil {
		return nil
	}
	out := make([]Skill, len(in))
	copy(out, in)
	return out
}

// SkillPathKind tags which branch of the document a SkillPath addresses.
type SkillPathKind string

const (
	PathCategory     SkillPathKind = "cat"
	PathVertical     SkillPathKind = "vertical"
	PathUnclassified SkillPathKind = "unclassified"
)

// SkillPath locates one leaf skill. Only the indices relevant to Kind are
// read: cat uses Category+Skill, vertical uses Category+Vertical+Skill,
// unclassified uses Index. A path is only meaningful against the document
// version it was computed from.
type SkillPath struct {
	Kind     SkillPathKind `json:"type"`
	Category *int          `json:"catIdx,omitempty"`
	Vertical *int          `json:"vIdx,omitempty"`
	Skill    *int          `json:"skillIdx,omitempty"`
	Index    *int          `json:"idx,omitempty"`
}

func CategoryPath(cat, skill int) SkillPath {
	return SkillPath{Kind: PathCategory, Category: &cat, Skill: &skill}
}

func VerticalPath(cat, vertical, skill int) SkillPath {
	return SkillPath{Kind: PathVertical, Category: &cat, Vertical: &vertical, Skill: &skill}
}

func UnclassifiedPath(idx int) SkillPath {
	return SkillPath{Kind: PathUnclassified, Index: &idx}
}

func (p SkillPath) String() string {
	switch p.Kind {
	case PathCategory:
		return fmt.Sprintf("cat[%s].skills[%s]", idxString(p.Category), idxString(p.Skill))
	case PathVertical:
		return fmt.Sprintf("cat[%s].verticals[%s].skills[%s]", idxString(p.Category), idxString(p.Vertical), idxString(p.Skill))
	case PathUnclassified:
		return fmt.Sprintf("skills_unclassified[%s]", idxString(p.Index))
	default:
		return fmt.Sprintf("unknown(%q)", string(p.Kind))
	}
}

func idxString(i *int) string {
	if i == nil {
		return "?"
	}
	return fmt.Sprint(*i)
}

// list resolves the slice holding the addressed skill and the position in it.
func (d *SkillsDocument) list(p SkillPath) (*[]Skill, int, error) {
	if d == nil {
		return nil, 0, fmt.Errorf("%w: job has no skills", ErrInvalidSkillPath)
	}
	fail := func(reason string) (*[]Skill, int, error) {
		return nil, 0, fmt.Errorf("%w: %s: %s", ErrInvalidSkillPath, p, reason)
	}

	switch p.Kind {
	case PathUnclassified:
		if !inRange(p.Index, len(d.Unclassified)) {
			return fail("index out of range")
		}
		return &d.Unclassified, *p.Index, nil

	case PathCategory, PathVertical:
		if !inRange(p.Category, len(d.Categories)) {
			return fail("category out of range")
		}
		cat := &d.Categories[*p.Category]
		skills := &cat.Skills
		if p.Kind == PathVertical {
			if cat.Verticals == nil {
				return fail("category has no verticals")
			}
			if !inRange(p.Vertical, len(cat.Verticals)) {
				return fail("vertical out of range")
			}
			skills = &cat.Verticals[*p.Vertical].Skills
		} else if cat.Verticals != nil {
			return fail("category is split into verticals")
		}
		if !inRange(p.Skill, len(*skills)) {
			return fail("skill out of range")
		}
		return skills, *p.Skill, nil

	default:
		return fail("unknown path type")
	}
}

func inRange(i *int, n int) bool {
	return i != nil && *i >= 0 && *i < n
}

// Resolve returns the skill addressed by p.
func (d *SkillsDocument) Resolve(p SkillPath) (*Skill, error) {
	skills, i, err := d.list(p)
	if err != nil {
		return nil, err
	}
	return &(*skills)[i], nil
}

// ToggleRequired flips the required flag of the skill at p.
func (d *SkillsDocument) ToggleRequired(p SkillPath) error {
	s, err := d.Resolve(p)
	if err != nil {
		return err
	}
	s.Required = !s.Required
	return nil
}

// AddUnclassified appends a non-required freeform skill.
func (d *SkillsDocument) AddUnclassified(text string) {
	d.Unclassified = append(d.Unclassified, Skill{Skill: text, Required: false})
}

// RemoveAt deletes the skill at p.
func (d *SkillsDocument) RemoveAt(p SkillPath) error {
	skills, i, err := d.list(p)
	if err != nil {
		return err
	}
	*skills = append((*skills)[:i], (*skills)[i+1:]...)
	return nil
}

// RemoveUnclassified deletes the first unclassified skill whose text equals
// text exactly. It reports whether anything was removed.
func (d *SkillsDocument) RemoveUnclassified(text string) bool {
	for i, s := range d.Unclassified {
		if s.Skill == text {
			d.Unclassified = append(d.Unclassified[:i], d.Unclassified[i+1:]...)
			return true
		}
	}
	return false
}

// SkillEdit carries the intents of one skills update. They are applied in
// the order Replace, Toggle, Add, RemovePath, RemoveSkill.
type SkillEdit struct {
	Replace     *SkillsDocument
	Toggle      *SkillPath
	Add         *string
	RemovePath  *SkillPath
	RemoveSkill *string
}

func (e SkillEdit) Empty() bool {
	return e.Replace == nil && e.Toggle == nil && e.Add == nil && e.RemovePath == nil && e.RemoveSkill == nil
}

// Apply runs the edit against current and returns the resulting document.
// current is never mutated.
func (e SkillEdit) Apply(current *SkillsDocument) (*SkillsDocument, error) {
	doc := current.Clone()
	if e.Replace != nil {
		doc = e.Replace.Clone()
	}

	if e.Toggle != nil {
		if err := doc.ToggleRequired(*e.Toggle); err != nil {
			return nil, err
		}
	}

	if e.Add != nil {
		text := strings.TrimSpace(*e.Add)
		if text == "" {
			return nil, errors.New("add_skill must not be blank")
		}
		if doc == nil {
			doc = &SkillsDocument{Categories: []SkillCategory{}}
		}
		doc.AddUnclassified(text)
	}

	if e.RemovePath != nil {
		if err := doc.RemoveAt(*e.RemovePath); err != nil {
			return nil, err
		}
	}

	if e.RemoveSkill != nil && doc != nil {
		doc.RemoveUnclassified(*e.RemoveSkill)
	}

	return doc, nil
}

// MarshalJSON keeps an empty category list as [] rather than null.
func (d SkillsDocument) MarshalJSON() ([]byte, error) {
	type plain SkillsDocument
	if d.Categories == nil {
		d.Categories = []SkillCategory{}
	}
	return json.Marshal(plain(d))
}

type SkillUsecase interface {
	EditSkills(ctx context.Context, jobID string, edit SkillEdit) (*Job, error)
}
