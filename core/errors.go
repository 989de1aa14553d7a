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

import "errors"

// Domain validation errors
var (
	// ErrInvalidScene indicates a Scene failed validation.
	ErrInvalidScene = errors.New("invalid scene")

	// ErrInvalidJob indicates a Job failed validation.
	ErrInvalidJob = errors.New("invalid job")

	// ErrInvalidChatMessage indicates a ChatMessage failed validation.
	ErrInvalidChatMessage = errors.New("invalid chat message")

	// ErrEmptySceneID indicates the scene ID field is empty.
	ErrEmptySceneID = errors.New("scene id cannot be empty")

	// ErrEmptyVideoID indicates the scene VideoID field is empty.
	ErrEmptyVideoID = errors.New("video id cannot be empty")

	// ErrInvalidTimeRange indicates EndTime precedes StartTime.
	ErrInvalidTimeRange = errors.New("scene end time precedes start time")

	// ErrEmptyIntegrationID indicates the job IntegrationID field is empty.
	ErrEmptyIntegrationID = errors.New("integration id cannot be empty")

	// ErrInvalidJobState indicates an undefined JobState value.
	ErrInvalidJobState = errors.New("invalid job state")

	// ErrEmptyMessageText indicates the chat message text is empty.
	ErrEmptyMessageText = errors.New("message text cannot be empty")

	// ErrInvalidSender indicates an undefined Sender value.
	ErrInvalidSender = errors.New("invalid sender")

	// ErrInvalidModality indicates an undefined Modality value.
	ErrInvalidModality = errors.New("invalid modality")
)
