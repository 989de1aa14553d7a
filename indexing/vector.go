package indexing

import "math"

// NormalizeVector normalizes a vector to unit length.
// Returns a new vector. If the input is a zero vector, returns a zero vector.
func NormalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	// Calculate magnitude
	var magnitude float32
	for _, val := range v {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))

	// Can't normalize zero vector
	if magnitude == 0 {
		result := make([]float32, len(v))
		return result
	}

	// Normalize
	result := make([]float32, len(v))
	for i, val := range v {
		result[i] = val / magnitude
	}
	return result
}

// AverageVectors returns the element-wise mean of the given vectors.
// An empty input yields nil with no error. Vectors of differing lengths
// are rejected with ErrDimensionMismatch; inputs are never truncated or
// zero-padded to fit.
func AverageVectors(vectors [][]float32) ([]float32, error) {
	if len(vectors) == 0 {
		return nil, nil
	}

	dim := len(vectors[0])
	for _, v := range vectors[1:] {
		if len(v) != dim {
			return nil, ErrDimensionMismatch
		}
	}

	result := make([]float32, dim)
	for _, v := range vectors {
		for i, val := range v {
			result[i] += val
		}
	}

	n := float32(len(vectors))
	for i := range result {
		result[i] /= n
	}
	return result, nil
}
