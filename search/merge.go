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

import "github.com/IliasHad/edit-mind-sub003/core"

// MergeResults flattens ranked candidate lists into one deduplicated scene
// list. Lists are consumed in the order given and each list in its own
// rank order, so the output order encodes the caller's field priority
// first and store rank second.
//
// Duplicates are resolved first-seen: a scene already emitted is never
// replaced, even if a later list carries it with a higher score.
// Candidates missing an ID, metadata, or document are skipped silently;
// such rows occur when a point is read back before its metadata settles.
func MergeResults(resultSets ...[]*core.Candidate) []*core.Scene {
	seen := make(map[string]bool)
	scenes := make([]*core.Scene, 0)

	for _, set := range resultSets {
		for _, candidate := range set {
			if candidate == nil || candidate.ID == "" || len(candidate.Metadata) == 0 || candidate.Document == "" {
				continue
			}
			if seen[candidate.ID] {
				continue
			}
			seen[candidate.ID] = true
			scenes = append(scenes, sceneFromCandidate(candidate))
		}
	}
	return scenes
}
