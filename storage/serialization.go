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


package storage

import (
	"github.com/IliasHad/edit-mind-sub003/core"
)

// MarshalScene serializes a Scene to bytes.
func MarshalScene(scene *core.Scene) []byte {
	buf := make([]byte, core.SceneMUS.Size(*scene))
	core.SceneMUS.Marshal(*scene, buf)
	return buf
}

// UnmarshalScene deserializes a Scene from bytes.
func UnmarshalScene(data []byte) (*core.Scene, error) {
	scene, _, err := core.SceneMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &scene, nil
}

// MarshalJob serializes a Job to bytes.
func MarshalJob(job *core.Job) []byte {
	buf := make([]byte, core.JobMUS.Size(*job))
	core.JobMUS.Marshal(*job, buf)
	return buf
}

// UnmarshalJob deserializes a Job from bytes.
func UnmarshalJob(data []byte) (*core.Job, error) {
	job, _, err := core.JobMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// MarshalChatMessage serializes a ChatMessage to bytes.
func MarshalChatMessage(message *core.ChatMessage) []byte {
	buf := make([]byte, core.ChatMessageMUS.Size(*message))
	core.ChatMessageMUS.Marshal(*message, buf)
	return buf
}

// UnmarshalChatMessage deserializes a ChatMessage from bytes.
func UnmarshalChatMessage(data []byte) (*core.ChatMessage, error) {
	message, _, err := core.ChatMessageMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// MarshalVectorPoint serializes a VectorPoint to bytes.
func MarshalVectorPoint(point *core.VectorPoint) []byte {
	buf := make([]byte, core.VectorPointMUS.Size(*point))
	core.VectorPointMUS.Marshal(*point, buf)
	return buf
}

// UnmarshalVectorPoint deserializes a VectorPoint from bytes.
func UnmarshalVectorPoint(data []byte) (*core.VectorPoint, error) {
	point, _, err := core.VectorPointMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &point, nil
}
