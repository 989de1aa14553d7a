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


// Package status publishes periodic service health samples.
//
// The broadcaster probes its dependencies on a fixed interval and fans the
// sample out to subscribers. A failed probe degrades the sample, it never
// stops the loop: consumers decide what an unhealthy service means.
package status

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/IliasHad/edit-mind-sub003/ai"
	"github.com/IliasHad/edit-mind-sub003/core"
	"github.com/IliasHad/edit-mind-sub003/storage"
)

// DefaultInterval is how often a sample is broadcast.
const DefaultInterval = 30 * time.Second

// Broadcaster probes service health on an interval and fans samples out to
// subscribers.
type Broadcaster struct {
	jobRepository storage.JobRepository
	provider      ai.Provider
	interval      time.Duration
	logger        *slog.Logger

	mu          sync.Mutex
	subscribers map[int]chan core.ServiceStatus
	nextID      int
	stop        chan struct{}
	done        chan struct{}
	running     bool
}

// Option configures a Broadcaster.
type Option func(*Broadcaster)

// WithInterval sets the broadcast interval. Default is DefaultInterval.
func WithInterval(interval time.Duration) Option {
	return func(b *Broadcaster) {
		if interval > 0 {
			b.interval = interval
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Broadcaster) {
		if logger != nil {
			b.logger = logger.With("component", "status")
		}
	}
}

// NewBroadcaster creates a status broadcaster.
func NewBroadcaster(jobRepository storage.JobRepository, provider ai.Provider, opts ...Option) (*Broadcaster, error) {
	if jobRepository == nil {
		return nil, ErrJobRepositoryRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	b := &Broadcaster{
		jobRepository: jobRepository,
		provider:      provider,
		interval:      DefaultInterval,
		logger:        slog.Default().With("component", "status"),
		subscribers:   make(map[int]chan core.ServiceStatus),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Sample probes every dependency once. A probe failure degrades the
// corresponding flag rather than erroring; a status sample always exists.
func (b *Broadcaster) Sample(ctx context.Context) core.ServiceStatus {
	status := core.ServiceStatus{Timestamp: time.Now().UTC()}

	// The job queue is healthy when the backing store answers a read.
	if _, err := b.jobRepository.GetJobs(ctx, []core.JobState{core.JobStateWaiting}, 0, 1, false); err != nil {
		b.logger.Warn("background jobs probe failed", "err", err)
	} else {
		status.BackgroundJobsService = true
	}

	status.MLService = b.provider.Healthy(ctx)
	if !status.MLService {
		b.logger.Warn("ML service probe failed")
	}

	return status
}

// Subscribe registers a listener for future samples. Late subscribers see
// no replay; the first sample delivered is the next one broadcast. The
// returned func cancels the subscription and closes the channel.
func (b *Broadcaster) Subscribe() (<-chan core.ServiceStatus, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan core.ServiceStatus, 1)
	b.subscribers[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subscribers[id]; ok {
			delete(b.subscribers, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Start launches the broadcast loop. A second Start without a Stop in
// between is a no-op.
func (b *Broadcaster) Start(ctx context.Context) {
	b.mu.Lock()
	if b.running {
		b.mu.Unlock()
		return
	}
	b.running = true
	b.stop = make(chan struct{})
	b.done = make(chan struct{})
	b.mu.Unlock()

	go b.loop(ctx)
}

// Stop halts the broadcast loop and waits for it to exit. Subscriptions
// stay registered for a later Start.
func (b *Broadcaster) Stop() {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return
	}
	b.running = false
	stop, done := b.stop, b.done
	b.mu.Unlock()

	close(stop)
	<-done
}

func (b *Broadcaster) loop(ctx context.Context) {
	defer close(b.done)

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.broadcast(b.Sample(ctx))
		}
	}
}

// broadcast delivers the sample without blocking: a subscriber that has
// not drained its previous sample misses this one.
func (b *Broadcaster) broadcast(status core.ServiceStatus) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- status:
		default:
		}
	}
}
