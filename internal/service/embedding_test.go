package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateEmbedding(t *testing.T) {
	vec := GenerateEmbedding("abc")
	assert.Equal(t, []float32{3, 1, 2}, vec.Slice())

	// Case-insensitive and deterministic.
	assert.Equal(t, GenerateEmbedding("Tomato Soup"), GenerateEmbedding("tomato soup"))
}
