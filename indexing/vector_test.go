package indexing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVector(t *testing.T) {
	tests := []struct {
		name     string
		input    []float32
		expected []float32
	}{
		{
			name:     "unit vector remains unchanged",
			input:    []float32{1.0, 0.0, 0.0},
			expected: []float32{1.0, 0.0, 0.0},
		},
		{
			name:     "scale non-unit vector",
			input:    []float32{3.0, 4.0},
			expected: []float32{0.6, 0.8},
		},
		{
			name:     "negative values",
			input:    []float32{-1.0, 1.0},
			expected: []float32{-1.0 / float32(math.Sqrt(2)), 1.0 / float32(math.Sqrt(2))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeVector(tt.input)
			require.Equal(t, len(tt.expected), len(result), "vector length mismatch")

			for i := range result {
				assert.InDelta(t, tt.expected[i], result[i], 1e-6, "element %d", i)
			}
		})
	}
}

func TestNormalizeVector_ZeroVector(t *testing.T) {
	result := NormalizeVector([]float32{0.0, 0.0, 0.0})
	assert.Equal(t, []float32{0.0, 0.0, 0.0}, result)
}

func TestNormalizeVector_Empty(t *testing.T) {
	assert.Empty(t, NormalizeVector(nil))
}

func TestAverageVectors(t *testing.T) {
	tests := []struct {
		name     string
		input    [][]float32
		expected []float32
	}{
		{
			name:     "single vector is its own mean",
			input:    [][]float32{{1.0, 2.0, 3.0}},
			expected: []float32{1.0, 2.0, 3.0},
		},
		{
			name:     "two vectors",
			input:    [][]float32{{0.0, 2.0}, {4.0, 0.0}},
			expected: []float32{2.0, 1.0},
		},
		{
			name:     "three vectors with negatives",
			input:    [][]float32{{1.0, -1.0}, {2.0, -2.0}, {3.0, -3.0}},
			expected: []float32{2.0, -2.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := AverageVectors(tt.input)
			require.NoError(t, err)
			require.Equal(t, len(tt.expected), len(result))
			for i := range result {
				assert.InDelta(t, tt.expected[i], result[i], 1e-6, "element %d", i)
			}
		})
	}
}

func TestAverageVectors_Empty(t *testing.T) {
	result, err := AverageVectors(nil)
	require.NoError(t, err)
	assert.Nil(t, result, "empty input averages to nil, not an error")
}

func TestAverageVectors_DimensionMismatch(t *testing.T) {
	_, err := AverageVectors([][]float32{{1.0, 2.0}, {1.0, 2.0, 3.0}})
	assert.ErrorIs(t, err, ErrDimensionMismatch, "mixed lengths are never truncated or padded")
}
