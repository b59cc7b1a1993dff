package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"talent-workflow-api/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONArg(t *testing.T) {
	var nilDoc *domain.SkillsDocument
	arg, err := jsonArg(nilDoc)
	require.NoError(t, err)
	assert.Nil(t, arg)

	arg, err = jsonArg(&domain.SkillsDocument{})
	require.NoError(t, err)
	require.NotNil(t, arg)
	assert.JSONEq(t, `{"categories":[]}`, *arg)

	assert.Nil(t, rawArg(nil))
	assert.Nil(t, rawArg(json.RawMessage("null")))
	assert.Equal(t, `{"a":1}`, *rawArg(json.RawMessage(`{"a":1}`)))
}

func TestDecodeJobDerived(t *testing.T) {
	var job domain.Job
	err := decodeJobDerived(&job,
		[]byte(`{"categories":[],"skills_unclassified":[{"skill":"Go","required":false}]}`),
		nil,
		[]byte(`[{"text":"Ship features"}]`),
	)
	require.NoError(t, err)
	require.NotNil(t, job.Skills)
	assert.Equal(t, "Go", job.Skills.Unclassified[0].Skill)
	assert.Nil(t, job.EducationDesiredExperience)
	assert.Equal(t, "Ship features", job.Responsibilities[0].Text)

	var empty domain.Job
	require.NoError(t, decodeJobDerived(&empty, nil, nil, nil))
	assert.Nil(t, empty.Skills)
	assert.Nil(t, empty.Responsibilities)
}

func TestErrorMapping(t *testing.T) {
	assert.ErrorIs(t, notFound(fmt.Errorf("scan: %w", pgx.ErrNoRows)), domain.ErrNotFound)

	other := errors.New("conn reset")
	assert.Equal(t, other, notFound(other))

	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
}
