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


// Package jobs tracks indexing runs across their lifecycle and answers
// "what happened to my last run" lookups per integration.
package jobs

import (
	"context"
	"log/slog"

	"github.com/IliasHad/edit-mind-sub003/core"
	"github.com/IliasHad/edit-mind-sub003/storage"
)

// ScanDepth is how many of the most recent jobs per state bucket a lookup
// inspects. Older jobs are invisible to FindLatestJob.
const ScanDepth = 50

// scanOrder is the fixed bucket precedence for lookups: a running job
// outranks a queued one, which outranks any finished one.
var scanOrder = []core.JobState{
	core.JobStateActive,
	core.JobStateWaiting,
	core.JobStateCompleted,
	core.JobStateFailed,
}

// Tracker answers job lookups and retries over the job repository.
type Tracker struct {
	jobRepository storage.JobRepository
	logger        *slog.Logger
}

// NewTracker creates a job tracker.
func NewTracker(jobRepository storage.JobRepository) (*Tracker, error) {
	if jobRepository == nil {
		return nil, ErrJobRepositoryRequired
	}
	return &Tracker{
		jobRepository: jobRepository,
		logger:        slog.Default().With("component", "job_tracker"),
	}, nil
}

// FindLatestJob returns the most relevant job for an integration. Buckets
// are scanned active first, then waiting, completed, failed; the first
// match wins and later buckets are not read. Within a bucket the most
// recently created match is returned.
//
// A bucket read failure is logged and the scan continues; only when every
// bucket read fails is ErrAllStatesUnavailable returned. No matching job
// in any bucket is not an error: the result is nil, nil.
func (t *Tracker) FindLatestJob(ctx context.Context, integrationID string) (*core.Job, error) {
	if integrationID == "" {
		return nil, ErrEmptyIntegrationID
	}

	failures := 0
	for _, state := range scanOrder {
		job, err := t.findInState(ctx, state, integrationID)
		if err != nil {
			t.logger.Warn("job state read failed, continuing scan",
				"state", state.String(), "integrationId", integrationID, "error", err)
			failures++
			continue
		}
		if job != nil {
			return job, nil
		}
	}

	if failures == len(scanOrder) {
		return nil, ErrAllStatesUnavailable
	}
	return nil, nil
}

// Retry re-enqueues the integration's most recent failed job as a fresh
// waiting job carrying the same Data. The failed job record is left in
// place for history.
func (t *Tracker) Retry(ctx context.Context, integrationID string) (*core.Job, error) {
	if integrationID == "" {
		return nil, ErrEmptyIntegrationID
	}

	failed, err := t.findInState(ctx, core.JobStateFailed, integrationID)
	if err != nil {
		return nil, err
	}
	if failed == nil {
		return nil, ErrNoFailedJob
	}

	job, err := t.jobRepository.Enqueue(ctx, &core.Job{
		IntegrationID: failed.IntegrationID,
		State:         core.JobStateWaiting,
		Data:          failed.Data,
	})
	if err != nil {
		return nil, err
	}

	t.logger.Info("failed job re-enqueued",
		"integrationId", integrationID, "failedJobId", failed.ID, "jobId", job.ID)
	return job, nil
}

func (t *Tracker) findInState(ctx context.Context, state core.JobState, integrationID string) (*core.Job, error) {
	batch, err := t.jobRepository.GetJobs(ctx, []core.JobState{state}, 0, ScanDepth, true)
	if err != nil {
		return nil, err
	}
	for _, job := range batch {
		if job.IntegrationID == integrationID {
			return job, nil
		}
	}
	return nil, nil
}
