package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsEmbedded(t *testing.T) {
	migs, err := Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	assert.Equal(t, "0001_init", migs[0].Version)

	for _, table := range []string{"users", "jobs", "candidates"} {
		assert.True(t, strings.Contains(migs[0].SQL, "CREATE TABLE IF NOT EXISTS "+table), table)
	}
}
