// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package services

import (
	"context"
	"time"

	"github.com/tomtom215/canvas-console/internal/logging"
)

// DefaultJanitorInterval is how often expired console sessions are dropped.
const DefaultJanitorInterval = time.Minute

// Pruner drops expired entries and reports how many it removed.
type Pruner interface {
	Prune() int
}

// SessionJanitor prunes a session store on a fixed interval so that
// abandoned browser sessions do not hold tokens until the next sign-in.
type SessionJanitor struct {
	store    Pruner
	interval time.Duration
}

// NewSessionJanitor creates a janitor over store.
func NewSessionJanitor(store Pruner, interval time.Duration) *SessionJanitor {
	if interval <= 0 {
		interval = DefaultJanitorInterval
	}
	return &SessionJanitor{store: store, interval: interval}
}

// Serve implements suture.Service.
func (j *SessionJanitor) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := j.store.Prune(); n > 0 {
				logging.Debug().Int("pruned", n).Msg("Expired console sessions dropped")
			}
		}
	}
}

func (j *SessionJanitor) String() string {
	return "session-janitor"
}
