package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentHash_Deterministic(t *testing.T) {
	a := ContentHash("video-1:12.5:18.0")
	b := ContentHash("video-1:12.5:18.0")
	c := ContentHash("video-1:18.0:24.0")

	assert.Equal(t, a, b, "identical content must hash identically")
	assert.NotEqual(t, a, c, "different content must hash differently")
	assert.Len(t, a, 16, "8 bytes hex encoded")
}

func TestModality_Dim(t *testing.T) {
	assert.Equal(t, 768, ModalityText.Dim())
	assert.Equal(t, 512, ModalityVisual.Dim())
	assert.Equal(t, 512, ModalityAudio.Dim())
	assert.Equal(t, 0, Modality(0).Dim())
}

func TestModality_Collection(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Modalities {
		name := m.Collection()
		require.NotEmpty(t, name)
		assert.False(t, seen[name], "collection names must be distinct")
		seen[name] = true
	}
}

func TestScene_Document(t *testing.T) {
	scene := &Scene{
		ID:            "s1",
		VideoID:       "v1",
		Text:          "A man walks into a bar.",
		Faces:         []string{"John", "Sarah"},
		Objects:       []string{"bar", "glass"},
		Emotions:      []string{"joy"},
		ShotType:      "wide",
		Location:      "interior",
		Transcription: "hello there",
	}

	doc := scene.Document()
	assert.Contains(t, doc, "A man walks into a bar.")
	assert.Contains(t, doc, "faces: John, Sarah")
	assert.Contains(t, doc, "objects: bar, glass")
	assert.Contains(t, doc, "shot: wide")
	assert.Contains(t, doc, "transcription: hello there")
}

func TestScene_RenameFace(t *testing.T) {
	scene := &Scene{Faces: []string{"Unknown Person 1", "Sarah"}}

	changed := scene.RenameFace("unknown person 1", "John")
	assert.True(t, changed)
	assert.Equal(t, []string{"John", "Sarah"}, scene.Faces)

	changed = scene.RenameFace("Nobody", "Anybody")
	assert.False(t, changed)
}

func TestIntentTypeFromString(t *testing.T) {
	tests := []struct {
		in   string
		want IntentType
	}{
		{"similarity", IntentSimilarity},
		{"Search", IntentSimilarity},
		{"ANALYTICS", IntentAnalytics},
		{"refinement", IntentRefinement},
		{"compilation", IntentCompilation},
		{"general", IntentGeneral},
		{"", IntentGeneral},
		{"nonsense", IntentGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IntentTypeFromString(tt.in))
		})
	}
}
