/*
Copyright The ModelVault Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package audit defines the write-only event stream the transfer
// coordinator reports into. Sinks are external collaborators; nothing in
// the subsystem reads audit events back.
package audit

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Kind names the lifecycle moment an event describes.
type Kind string

const (
	TransferStarted   Kind = "transfer_started"
	TransferCompleted Kind = "transfer_completed"
	TransferFailed    Kind = "transfer_failed"
	ArtifactDeleted   Kind = "artifact_deleted"
)

// Event is one audit record. Actor may be empty when the caller did not
// identify itself.
type Event struct {
	Kind       Kind
	ArtifactID string
	Actor      string
	Success    bool
	Detail     string
	Time       time.Time
}

// Sink receives audit events. Implementations must tolerate concurrent
// Record calls.
type Sink interface {
	Record(Event)
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) Record(Event) {}

// LogSink writes audit events through a logrus logger as structured
// fields.
type LogSink struct {
	log logrus.FieldLogger
}

// NewLogSink returns a Sink backed by the given logger.
func NewLogSink(log logrus.FieldLogger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Record(e Event) {
	entry := s.log.WithFields(logrus.Fields{
		"event":    string(e.Kind),
		"artifact": e.ArtifactID,
		"success":  e.Success,
	})
	if e.Actor != "" {
		entry = entry.WithField("actor", e.Actor)
	}
	if e.Detail != "" {
		entry = entry.WithField("detail", e.Detail)
	}
	if e.Success {
		entry.Info("audit")
	} else {
		entry.Warn("audit")
	}
}

// Recorder is a Sink that retains events in memory. It exists for tests.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Record(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
