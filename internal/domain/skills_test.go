package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSkills() *SkillsDocument {
	return &SkillsDocument{
		Categories: []SkillCategory{
			{
				Name: "Software Engineering",
				Verticals: []SkillVertical{
					{Name: "Backend", Skills: []Skill{
						{Skill: "Go", Required: true},
						{Skill: "PostgreSQL", Required: false, Context: "schema design"},
					}},
				},
			},
			{
				Name:   "Cloud",
				Skills: []Skill{{Skill: "AWS", Required: false}},
			},
		},
		Unclassified: []Skill{
			{Skill: "Mentoring", Required: false},
			{Skill: "Docker", Required: true},
			{Skill: "Mentoring", Required: true},
		},
	}
}

func TestSkillPathJSON(t *testing.T) {
	var p SkillPath
	require.NoError(t, json.Unmarshal([]byte(`{"type":"vertical","catIdx":0,"vIdx":0,"skillIdx":1}`), &p))
	assert.Equal(t, VerticalPath(0, 0, 1), p)

	var q SkillPath
	require.NoError(t, json.Unmarshal([]byte(`{"type":"unclassified","idx":2}`), &q))
	assert.Equal(t, UnclassifiedPath(2), q)
}

func TestResolve(t *testing.T) {
	doc := sampleSkills()

	s, err := doc.Resolve(VerticalPath(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, "PostgreSQL", s.Skill)

	s, err = doc.Resolve(CategoryPath(1, 0))
	require.NoError(t, err)
	assert.Equal(t, "AWS", s.Skill)

	s, err = doc.Resolve(UnclassifiedPath(1))
	require.NoError(t, err)
	assert.Equal(t, "Docker", s.Skill)
}

func TestResolveRejectsBadPaths(t *testing.T) {
	doc := sampleSkills()
	zero := 0

	cases := map[string]SkillPath{
		"category out of range":     CategoryPath(5, 0),
		"negative skill":            CategoryPath(1, -1),
		"vertical on flat category": VerticalPath(1, 0, 0),
		"flat path on verticals":    CategoryPath(0, 0),
		"vertical out of range":     VerticalPath(0, 3, 0),
		"skill out of range":        VerticalPath(0, 0, 9),
		"unclassified out of range": UnclassifiedPath(3),
		"missing index":             {Kind: PathUnclassified},
		"missing skill index":       {Kind: PathCategory, Category: &zero},
		"unknown type":              {Kind: "bogus", Index: &zero},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := doc.Resolve(p)
			assert.ErrorIs(t, err, ErrInvalidSkillPath)
		})
	}

	var empty *SkillsDocument
	_, err := empty.Resolve(UnclassifiedPath(0))
	assert.ErrorIs(t, err, ErrInvalidSkillPath)
}

func TestToggleTwiceRestoresDocument(t *testing.T) {
	paths := []SkillPath{VerticalPath(0, 0, 0), CategoryPath(1, 0), UnclassifiedPath(2)}
	for _, p := range paths {
		t.Run(p.String(), func(t *testing.T) {
			doc := sampleSkills()
			require.NoError(t, doc.ToggleRequired(p))
			assert.NotEqual(t, sampleSkills(), doc)
			require.NoError(t, doc.ToggleRequired(p))
			assert.Equal(t, sampleSkills(), doc)
		})
	}
}

func TestRemoveUnclassifiedRemovesFirstMatchOnly(t *testing.T) {
	doc := sampleSkills()
	assert.True(t, doc.RemoveUnclassified("Mentoring"))
	require.Len(t, doc.Unclassified, 2)
	assert.Equal(t, Skill{Skill: "Docker", Required: true}, doc.Unclassified[0])
	assert.Equal(t, Skill{Skill: "Mentoring", Required: true}, doc.Unclassified[1])

	assert.False(t, doc.RemoveUnclassified("mentoring"), "match is case-sensitive")
	assert.Len(t, doc.Unclassified, 2)
}

func TestRemoveAt(t *testing.T) {
	doc := sampleSkills()
	require.NoError(t, doc.RemoveAt(VerticalPath(0, 0, 0)))
	assert.Equal(t, []Skill{{Skill: "PostgreSQL", Context: "schema design"}}, doc.Categories[0].Verticals[0].Skills)

	assert.ErrorIs(t, doc.RemoveAt(CategoryPath(1, 4)), ErrInvalidSkillPath)
}

func TestSkillEditApply(t *testing.T) {
	t.Run("add on empty document", func(t *testing.T) {
		add := "Kubernetes"
		doc, err := SkillEdit{Add: &add}.Apply(nil)
		require.NoError(t, err)
		assert.Equal(t, []Skill{{Skill: "Kubernetes", Required: false}}, doc.Unclassified)

		raw, err := json.Marshal(doc)
		require.NoError(t, err)
		assert.JSONEq(t, `{"categories":[],"skills_unclassified":[{"skill":"Kubernetes","required":false}]}`, string(raw))
	})

	t.Run("does not mutate input", func(t *testing.T) {
		current := sampleSkills()
		p := UnclassifiedPath(0)
		_, err := SkillEdit{Toggle: &p, RemovePath: &p}.Apply(current)
		require.NoError(t, err)
		assert.Equal(t, sampleSkills(), current)
	})

	t.Run("replace then add then remove", func(t *testing.T) {
		add := "Terraform"
		remove := "Docker"
		replacement := &SkillsDocument{Unclassified: []Skill{{Skill: "Docker"}, {Skill: "Go"}}}
		doc, err := SkillEdit{Replace: replacement, Add: &add, RemoveSkill: &remove}.Apply(sampleSkills())
		require.NoError(t, err)
		assert.Equal(t, []Skill{{Skill: "Go"}, {Skill: "Terraform"}}, doc.Unclassified)
		assert.Empty(t, doc.Categories)
	})

	t.Run("remove path sees the added skill", func(t *testing.T) {
		add := "Rust"
		p := UnclassifiedPath(3)
		doc, err := SkillEdit{Add: &add, RemovePath: &p}.Apply(sampleSkills())
		require.NoError(t, err)
		assert.Len(t, doc.Unclassified, 3)
		assert.Equal(t, "Mentoring", doc.Unclassified[2].Skill)
	})

	t.Run("invalid path fails", func(t *testing.T) {
		p := CategoryPath(9, 9)
		_, err := SkillEdit{Toggle: &p}.Apply(sampleSkills())
		assert.ErrorIs(t, err, ErrInvalidSkillPath)
	})

	t.Run("blank add fails", func(t *testing.T) {
		add := "   "
		_, err := SkillEdit{Add: &add}.Apply(sampleSkills())
		assert.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		assert.True(t, SkillEdit{}.Empty())
		add := "x"
		assert.False(t, SkillEdit{Add: &add}.Empty())
	})
}
