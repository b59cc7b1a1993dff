package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	in := "  Jane Doe \r\n\r\n\r\n  Go, Kubernetes  \n\n\nPostgres\n"
	assert.Equal(t, "Jane Doe\n\nGo, Kubernetes\n\nPostgres", Normalize(in))
}

func TestExtractText_Plain(t *testing.T) {
	text, err := ExtractText("cv.txt", []byte("  Jane Doe\n\nBackend engineer  "))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\nBackend engineer", text)
}

func TestExtractText_Empty(t *testing.T) {
	_, err := ExtractText("cv.txt", []byte(" \n\t\n "))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestExtractText_InvalidUTF8(t *testing.T) {
	_, err := ExtractText("cv.txt", []byte{0xff, 0xfe, 0xfd})
	assert.Error(t, err)
}
