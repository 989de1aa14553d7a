package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateScene(t *testing.T) {
	tests := []struct {
		name    string
		scene   *Scene
		wantErr error
	}{
		{
			name:  "valid scene",
			scene: &Scene{ID: "s1", VideoID: "v1", StartTime: 1.0, EndTime: 2.0},
		},
		{
			name:    "nil scene",
			scene:   nil,
			wantErr: ErrInvalidScene,
		},
		{
			name:    "empty id",
			scene:   &Scene{VideoID: "v1"},
			wantErr: ErrEmptySceneID,
		},
		{
			name:    "empty video id",
			scene:   &Scene{ID: "s1"},
			wantErr: ErrEmptyVideoID,
		},
		{
			name:    "end before start",
			scene:   &Scene{ID: "s1", VideoID: "v1", StartTime: 5.0, EndTime: 2.0},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "negative start",
			scene:   &Scene{ID: "s1", VideoID: "v1", StartTime: -1.0, EndTime: 2.0},
			wantErr: ErrInvalidTimeRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScene(tt.scene)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateJob(t *testing.T) {
	assert.NoError(t, ValidateJob(&Job{ID: "j1", IntegrationID: "video-1", State: JobStateWaiting}))
	assert.ErrorIs(t, ValidateJob(nil), ErrInvalidJob)
	assert.ErrorIs(t, ValidateJob(&Job{ID: "j1", State: JobStateWaiting}), ErrEmptyIntegrationID)
	assert.ErrorIs(t, ValidateJob(&Job{ID: "j1", IntegrationID: "video-1", State: JobState(99)}), ErrInvalidJobState)
}

func TestValidateChatMessage(t *testing.T) {
	assert.NoError(t, ValidateChatMessage(&ChatMessage{Sender: SenderUser, Text: "hi"}))
	assert.ErrorIs(t, ValidateChatMessage(nil), ErrInvalidChatMessage)
	assert.ErrorIs(t, ValidateChatMessage(&ChatMessage{Sender: SenderUser}), ErrEmptyMessageText)
	assert.ErrorIs(t, ValidateChatMessage(&ChatMessage{Sender: Sender(7), Text: "hi"}), ErrInvalidSender)
}

func TestValidateModality(t *testing.T) {
	for _, m := range Modalities {
		assert.NoError(t, ValidateModality(m))
	}
	assert.ErrorIs(t, ValidateModality(Modality(0)), ErrInvalidModality)
}
