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


package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/IliasHad/edit-mind-sub003/core"
	"github.com/IliasHad/edit-mind-sub003/storage"
)

// Analytics computes aggregate statistics over the scenes of the given
// videos. Results are computed on demand from the repository every call,
// never cached; the footage may have been re-indexed since the last ask.
func Analytics(ctx context.Context, scenes storage.SceneRepository, videoIDs []string) (*core.VideoAnalytics, error) {
	if scenes == nil {
		return nil, ErrSceneRepositoryRequired
	}

	analytics := &core.VideoAnalytics{
		Emotions:  make(map[string]int),
		ShotTypes: make(map[string]int),
		Objects:   make(map[string]int),
	}
	faces := make(map[string]bool)

	for _, videoID := range videoIDs {
		videoScenes, err := scenes.GetScenesByVideo(ctx, videoID)
		if err != nil {
			return nil, err
		}

		for _, scene := range videoScenes {
			analytics.SceneCount++
			analytics.TotalDuration += scene.Duration()
			for _, emotion := range scene.Emotions {
				analytics.Emotions[emotion]++
			}
			if scene.ShotType != "" {
				analytics.ShotTypes[scene.ShotType]++
			}
			for _, object := range scene.Objects {
				analytics.Objects[object]++
			}
			for _, face := range scene.Faces {
				faces[face] = true
			}
		}
	}

	analytics.Faces = make([]string, 0, len(faces))
	for face := range faces {
		analytics.Faces = append(analytics.Faces, face)
	}
	sort.Strings(analytics.Faces)

	return analytics, nil
}

// formatAnalytics renders analytics as plain lines for the narration prompt.
func formatAnalytics(a *core.VideoAnalytics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "scenes: %d\n", a.SceneCount)
	fmt.Fprintf(&b, "total duration: %.1f seconds\n", a.TotalDuration)
	if len(a.Faces) > 0 {
		fmt.Fprintf(&b, "people: %s\n", strings.Join(a.Faces, ", "))
	}
	writeCounts(&b, "emotions", a.Emotions)
	writeCounts(&b, "shot types", a.ShotTypes)
	writeCounts(&b, "objects", a.Objects)
	return b.String()
}

func writeCounts(b *strings.Builder, label string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = fmt.Sprintf("%s (%d)", key, counts[key])
	}
	fmt.Fprintf(b, "%s: %s\n", label, strings.Join(parts, ", "))
}
