package core

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ContentHash generates a deterministic hex identifier from text content
// using BLAKE2b hashing. Identical content produces identical identifiers.
func ContentHash(text string) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// Modality identifies one of the three embedding spaces.
type Modality int

const (
	// ModalityText embeds the scene's textual document.
	ModalityText Modality = iota + 1
	// ModalityVisual embeds the scene's visual description.
	ModalityVisual
	// ModalityAudio embeds the scene's audio transcription.
	ModalityAudio
)

// Modalities lists all supported modalities in their canonical order.
var Modalities = []Modality{ModalityText, ModalityVisual, ModalityAudio}

// Dim returns the fixed embedding dimension for the modality.
func (m Modality) Dim() int {
	switch m {
	case ModalityText:
		return 768
	case ModalityVisual, ModalityAudio:
		return 512
	}
	return 0
}

// Collection returns the vector collection name for the modality.
func (m Modality) Collection() string {
	switch m {
	case ModalityText:
		return "scenes_text"
	case ModalityVisual:
		return "scenes_visual"
	case ModalityAudio:
		return "scenes_audio"
	}
	return ""
}

func (m Modality) String() string {
	switch m {
	case ModalityText:
		return "text"
	case ModalityVisual:
		return "visual"
	case ModalityAudio:
		return "audio"
	}
	return "unknown"
}

// Scene is a time-bounded semantic unit of a video, the atomic retrieval
// target. Scenes are immutable once embedded except for face renaming.
type Scene struct {
	ID            string
	VideoID       string
	StartTime     float64 // seconds from video start
	EndTime       float64
	Text          string
	Faces         []string
	Objects       []string
	Emotions      []string
	ShotType      string
	Camera        string
	Location      string
	Transcription string
	InsertedAt    time.Time
	UpdatedAt     time.Time
}

// Duration returns the scene length in seconds.
func (s *Scene) Duration() float64 {
	return s.EndTime - s.StartTime
}

// Document renders the canonical text document for the scene, the input to
// text embedding and the Document field of stored vector points.
func (s *Scene) Document() string {
	parts := make([]string, 0, 8)
	if s.Text != "" {
		parts = append(parts, s.Text)
	}
	if len(s.Faces) > 0 {
		parts = append(parts, "faces: "+strings.Join(s.Faces, ", "))
	}
	if len(s.Objects) > 0 {
		parts = append(parts, "objects: "+strings.Join(s.Objects, ", "))
	}
	if len(s.Emotions) > 0 {
		parts = append(parts, "emotions: "+strings.Join(s.Emotions, ", "))
	}
	if s.ShotType != "" {
		parts = append(parts, "shot: "+s.ShotType)
	}
	if s.Location != "" {
		parts = append(parts, "location: "+s.Location)
	}
	if s.Transcription != "" {
		parts = append(parts, "transcription: "+s.Transcription)
	}
	return strings.Join(parts, "\n")
}

// RenameFace replaces every matching face label on the scene.
// Returns true if any label changed.
func (s *Scene) RenameFace(from, to string) bool {
	changed := false
	for i, face := range s.Faces {
		if strings.EqualFold(face, from) {
			s.Faces[i] = to
			changed = true
		}
	}
	return changed
}

// JobState is the lifecycle state of an ingestion job.
type JobState int

const (
	// JobStateWaiting means the job is queued but not started.
	JobStateWaiting JobState = iota + 1
	// JobStateActive means the job is being processed.
	JobStateActive
	// JobStateCompleted means the job finished successfully.
	JobStateCompleted
	// JobStateFailed means the job finished with a fatal error.
	JobStateFailed
)

// JobStates lists all defined job states.
var JobStates = []JobState{JobStateWaiting, JobStateActive, JobStateCompleted, JobStateFailed}

func (s JobState) String() string {
	switch s {
	case JobStateWaiting:
		return "waiting"
	case JobStateActive:
		return "active"
	case JobStateCompleted:
		return "completed"
	case JobStateFailed:
		return "failed"
	}
	return "unknown"
}

// Job is a tracked asynchronous unit of ingestion work tied to an external
// integration identifier. State transitions follow the directed path
// waiting -> active -> {completed | failed}; a retry re-enqueues a fresh
// waiting job with the same IntegrationID.
type Job struct {
	ID            string
	IntegrationID string
	State         JobState
	Data          map[string]string
	CreatedAt     time.Time
}

// Sender identifies the author of a chat message.
type Sender int

const (
	// SenderUser is a human participant.
	SenderUser Sender = iota + 1
	// SenderAssistant is the system.
	SenderAssistant
)

func (s Sender) String() string {
	switch s {
	case SenderUser:
		return "user"
	case SenderAssistant:
		return "assistant"
	}
	return "unknown"
}

// ChatMessage is a single message in a conversation. Immutable once created.
type ChatMessage struct {
	ID        string
	Sender    Sender
	Text      string
	CreatedAt time.Time
}

// IntentType is the classified purpose of a chat prompt. The set is closed;
// anything unrecognized decodes to IntentGeneral.
type IntentType int

const (
	// IntentGeneral is plain conversational chat.
	IntentGeneral IntentType = iota
	// IntentSimilarity is a scene similarity search request.
	IntentSimilarity
	// IntentAnalytics asks for aggregate video statistics.
	IntentAnalytics
	// IntentRefinement refines labels on existing scenes (face renaming).
	IntentRefinement
	// IntentCompilation asks for an ordered cut list of scenes.
	IntentCompilation
)

func (t IntentType) String() string {
	switch t {
	case IntentSimilarity:
		return "similarity"
	case IntentAnalytics:
		return "analytics"
	case IntentRefinement:
		return "refinement"
	case IntentCompilation:
		return "compilation"
	default:
		return "general"
	}
}

// IntentTypeFromString maps a classifier label to an IntentType.
// Unknown labels map to IntentGeneral.
func IntentTypeFromString(s string) IntentType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "similarity", "search":
		return IntentSimilarity
	case "analytics":
		return IntentAnalytics
	case "refinement":
		return IntentRefinement
	case "compilation":
		return IntentCompilation
	default:
		return IntentGeneral
	}
}

// Intent is the per-prompt classification result. Derived, never persisted.
type Intent struct {
	Type           IntentType
	NeedsVideoData bool
	KeepPrevious   bool
}

// VideoAnalytics holds aggregate counts and durations computed on demand
// from scene data. Never cached across requests.
type VideoAnalytics struct {
	SceneCount    int
	TotalDuration float64 // seconds
	Emotions      map[string]int
	ShotTypes     map[string]int
	Objects       map[string]int
	Faces         []string
}

// ServiceStatus is a single health sample published by the status broadcaster.
type ServiceStatus struct {
	BackgroundJobsService bool
	MLService             bool
	Timestamp             time.Time
}

// VectorPoint is an (id, vector, metadata) triple stored in a vector
// collection. Document carries the source text the vector was derived from.
type VectorPoint struct {
	ID       string
	Vector   []float32
	Metadata map[string]string
	Document string
}

// Candidate is a vector query result row: a stored point plus its
// similarity score. Partial rows (missing metadata or document) are
// possible under eventual consistency and are skipped by the merge engine.
type Candidate struct {
	ID       string
	Vector   []float32
	Metadata map[string]string
	Document string
	Score    float32
}
