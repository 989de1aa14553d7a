// Copyright 2025 Ilias Haddad
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// ValidateScene validates a Scene according to domain rules.
//
// Validation rules:
//   - ID and VideoID must not be empty
//   - StartTime must not be negative (times are offsets from video start,
//     and the per-video index encodes them unsigned)
//   - EndTime must not precede StartTime
//
// NOT validated (populated downstream):
//   - Faces, Objects, Emotions (may be empty until analysis runs)
//   - Transcription (may be empty for silent scenes)
func ValidateScene(scene *Scene) error {
	if scene == nil {
		return fmt.Errorf("%w: scene is nil", ErrInvalidScene)
	}

	if scene.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidScene, ErrEmptySceneID)
	}

	if scene.VideoID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidScene, ErrEmptyVideoID)
	}

	if scene.StartTime < 0 || scene.EndTime < scene.StartTime {
		return fmt.Errorf("%w: %w", ErrInvalidScene, ErrInvalidTimeRange)
	}

	return nil
}

// ValidateJob validates a Job according to domain rules.
//
// Validation rules:
//   - IntegrationID must never be empty
//   - State must be one of the four defined states
func ValidateJob(job *Job) error {
	if job == nil {
		return fmt.Errorf("%w: job is nil", ErrInvalidJob)
	}

	if job.IntegrationID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidJob, ErrEmptyIntegrationID)
	}

	if err := ValidateJobState(job.State); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJob, err)
	}

	return nil
}

// ValidateJobState validates that a JobState has a defined value.
func ValidateJobState(state JobState) error {
	switch state {
	case JobStateWaiting, JobStateActive, JobStateCompleted, JobStateFailed:
		return nil
	}
	return fmt.Errorf("%w: value %d", ErrInvalidJobState, state)
}

// ValidateChatMessage validates a ChatMessage according to domain rules.
func ValidateChatMessage(message *ChatMessage) error {
	if message == nil {
		return fmt.Errorf("%w: message is nil", ErrInvalidChatMessage)
	}

	if message.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChatMessage, ErrEmptyMessageText)
	}

	if message.Sender != SenderUser && message.Sender != SenderAssistant {
		return fmt.Errorf("%w: %w", ErrInvalidChatMessage, ErrInvalidSender)
	}

	return nil
}

// ValidateModality validates that a Modality has a defined value.
func ValidateModality(m Modality) error {
	switch m {
	case ModalityText, ModalityVisual, ModalityAudio:
		return nil
	}
	return fmt.Errorf("%w: value %d", ErrInvalidModality, m)
}
