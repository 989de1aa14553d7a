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


package search

import (
	"strconv"
	"strings"

	"github.com/IliasHad/edit-mind-sub003/core"
)

// Metadata keys for scene fields stored alongside each vector point.
// Every Scene field has a key so a scene can be rebuilt from a candidate
// without a repository round trip.
const (
	metaVideoID       = "videoId"
	metaStartTime     = "startTime"
	metaEndTime       = "endTime"
	metaText          = "text"
	metaFaces         = "faces"
	metaObjects       = "objects"
	metaEmotions      = "emotions"
	metaShotType      = "shotType"
	metaCamera        = "camera"
	metaLocation      = "location"
	metaTranscription = "transcription"
)

const listSeparator = ","

// SceneToPoint builds a vector point for a scene. The point ID is the scene
// ID, so re-indexing a scene replaces its previous vector. The document is
// the modality-specific text the vector was derived from.
func SceneToPoint(scene *core.Scene, vector []float32, document string) *core.VectorPoint {
	metadata := map[string]string{
		metaVideoID:   scene.VideoID,
		metaStartTime: strconv.FormatFloat(scene.StartTime, 'f', -1, 64),
		metaEndTime:   strconv.FormatFloat(scene.EndTime, 'f', -1, 64),
	}
	setIfPresent(metadata, metaText, scene.Text)
	setIfPresent(metadata, metaFaces, strings.Join(scene.Faces, listSeparator))
	setIfPresent(metadata, metaObjects, strings.Join(scene.Objects, listSeparator))
	setIfPresent(metadata, metaEmotions, strings.Join(scene.Emotions, listSeparator))
	setIfPresent(metadata, metaShotType, scene.ShotType)
	setIfPresent(metadata, metaCamera, scene.Camera)
	setIfPresent(metadata, metaLocation, scene.Location)
	setIfPresent(metadata, metaTranscription, scene.Transcription)

	return &core.VectorPoint{
		ID:       scene.ID,
		Vector:   vector,
		Metadata: metadata,
		Document: document,
	}
}

// sceneFromCandidate rebuilds a scene from a query candidate. The candidate
// must carry an ID, metadata, and a document; the merge engine skips
// candidates that do not.
func sceneFromCandidate(candidate *core.Candidate) *core.Scene {
	meta := candidate.Metadata
	startTime, _ := strconv.ParseFloat(meta[metaStartTime], 64)
	endTime, _ := strconv.ParseFloat(meta[metaEndTime], 64)

	return &core.Scene{
		ID:            candidate.ID,
		VideoID:       meta[metaVideoID],
		StartTime:     startTime,
		EndTime:       endTime,
		Text:          meta[metaText],
		Faces:         splitList(meta[metaFaces]),
		Objects:       splitList(meta[metaObjects]),
		Emotions:      splitList(meta[metaEmotions]),
		ShotType:      meta[metaShotType],
		Camera:        meta[metaCamera],
		Location:      meta[metaLocation],
		Transcription: meta[metaTranscription],
	}
}

func setIfPresent(metadata map[string]string, key, value string) {
	if value != "" {
		metadata[key] = value
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, listSeparator)
}
