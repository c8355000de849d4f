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

// Package transfer orchestrates artifact downloads: it enforces
// single-flight per artifact id, drives download, verification and
// publication, and reports every outcome to the audit sink.
package transfer

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/modelvault/modelvault/internal/fileutil"
	"github.com/modelvault/modelvault/pkg/audit"
	"github.com/modelvault/modelvault/pkg/catalog"
	"github.com/modelvault/modelvault/pkg/downloader"
	"github.com/modelvault/modelvault/pkg/getter"
	"github.com/modelvault/modelvault/pkg/integrity"
)

// marker records one active transfer. At most one marker per artifact id
// exists at any instant; the coordinator's mutex enforces it.
type marker struct {
	startedAt      time.Time
	lastProgressAt time.Time
}

// Coordinator is the only surface callers talk to. Construct one per
// process with New and share the handle; it owns no global state.
type Coordinator struct {
	catalog    *catalog.Catalog
	downloader *downloader.Downloader
	publisher  *Publisher
	audit      audit.Sink

	mu       sync.Mutex
	inflight map[string]*marker
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithDownloader replaces the default HTTP downloader.
func WithDownloader(d *downloader.Downloader) Option {
	return func(c *Coordinator) {
		c.downloader = d
	}
}

// WithAuditSink sets the sink transfer events are reported to.
func WithAuditSink(s audit.Sink) Option {
	return func(c *Coordinator) {
		c.audit = s
	}
}

// New returns a Coordinator for the given catalog.
func New(cat *catalog.Catalog, opts ...Option) *Coordinator {
	c := &Coordinator{
		catalog:    cat,
		downloader: downloader.New(getter.NewHTTPGetter()),
		publisher:  NewPublisher(cat.StoreDir()),
		audit:      audit.NopSink{},
		inflight:   make(map[string]*marker),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Catalog returns the registry this coordinator serves.
func (c *Coordinator) Catalog() *catalog.Catalog {
	return c.catalog
}

// Start runs one transfer for id to completion. A nil return means the
// artifact is available at its final path: either it was already present
// (one Complete sample, no network activity) or it was downloaded,
// verified and published during this call. Expected failures come back as
// *Error values; see FailureKind for the taxonomy.
//
// actor is the caller identity recorded in audit events; it may be empty.
func (c *Coordinator) Start(id string, report downloader.ProgressFunc, actor string) error {
	ent, err := c.catalog.Get(id)
	if err != nil {
		return newError(KindNotFound, id, "unknown artifact", err)
	}
	final, err := c.catalog.ResolvedPath(id)
	if err != nil {
		return newError(KindNotFound, id, "unresolvable artifact path", err)
	}

	if c.catalog.IsPresent(id) {
		emit(report, downloader.Sample{
			Downloaded: ent.Size,
			Total:      ent.Size,
			Percent:    100,
			Status:     downloader.StatusComplete,
		})
		return nil
	}

	if !c.acquire(id) {
		return newError(KindAlreadyInFlight, id, "transfer already in progress", nil)
	}
	// The marker must be cleared on every exit path, including panics
	// from a misbehaving progress callback.
	defer c.release(id)

	c.audit.Record(audit.Event{
		Kind:       audit.TransferStarted,
		ArtifactID: id,
		Actor:      actor,
		Success:    true,
		Time:       time.Now(),
	})

	if err := c.run(ent, final, report); err != nil {
		c.audit.Record(audit.Event{
			Kind:       audit.TransferFailed,
			ArtifactID: id,
			Actor:      actor,
			Success:    false,
			Detail:     err.Error(),
			Time:       time.Now(),
		})
		return err
	}

	c.audit.Record(audit.Event{
		Kind:       audit.TransferCompleted,
		ArtifactID: id,
		Actor:      actor,
		Success:    true,
		Time:       time.Now(),
	})
	return nil
}

// run drives download -> verify -> publish for one in-flight transfer and
// emits the transfer's single terminal sample on every return path.
func (c *Coordinator) run(ent *catalog.Entry, final string, report downloader.ProgressFunc) error {
	if err := os.MkdirAll(filepath.Dir(final), 0755); err != nil {
		return c.fail(report, 0, ent.Size, newError(KindTransfer, ent.ID, "preparing artifact store", err))
	}
	staging := fileutil.StagingPath(final)

	written, err := c.downloader.Download(ent.URL, staging, ent.Size, c.observe(ent.ID, report))
	if err != nil {
		// The downloader already removed the staging file.
		return c.fail(report, written, ent.Size, newError(KindTransfer, ent.ID, "download failed", err))
	}

	if written != ent.Size {
		os.Remove(staging)
		detail := fmt.Sprintf("size mismatch: got %d bytes, want %d", written, ent.Size)
		return c.fail(report, written, ent.Size, newError(KindIntegrity, ent.ID, detail, nil))
	}

	if ent.Checksum != "" {
		sum, err := integrity.DigestFile(staging)
		if err != nil {
			os.Remove(staging)
			return c.fail(report, written, ent.Size, newError(KindIntegrity, ent.ID, "digesting staged file", err))
		}
		if sum != ent.Checksum {
			os.Remove(staging)
			detail := fmt.Sprintf("checksum mismatch: got %s, want %s", sum, ent.Checksum)
			return c.fail(report, written, ent.Size, newError(KindIntegrity, ent.ID, detail, nil))
		}
	}

	if err := c.publisher.Publish(staging, final); err != nil {
		os.Remove(staging)
		return c.fail(report, written, ent.Size, newError(KindPublish, ent.ID, "publishing artifact", err))
	}

	emit(report, downloader.Sample{
		Downloaded: written,
		Total:      ent.Size,
		Percent:    100,
		Status:     downloader.StatusComplete,
	})
	return nil
}

// fail emits the terminal error sample and passes the failure through.
func (c *Coordinator) fail(report downloader.ProgressFunc, downloaded, total int64, ferr *Error) error {
	emit(report, downloader.Sample{
		Downloaded: downloaded,
		Total:      total,
		Percent:    downloader.Percent(downloaded, total),
		Status:     downloader.StatusError,
		Err:        ferr.Error(),
	})
	return ferr
}

func emit(report downloader.ProgressFunc, s downloader.Sample) {
	if report != nil {
		report(s)
	}
}

// observe wraps the caller's progress callback so every sample also
// refreshes the in-flight marker's last-progress timestamp.
func (c *Coordinator) observe(id string, report downloader.ProgressFunc) downloader.ProgressFunc {
	return func(s downloader.Sample) {
		c.mu.Lock()
		if m, ok := c.inflight[id]; ok {
			m.lastProgressAt = time.Now()
		}
		c.mu.Unlock()
		if report != nil {
			report(s)
		}
	}
}

// acquire claims the single-flight slot for id. The not-in-flight check
// and the insert happen under one lock acquisition, so two concurrent
// calls can never both pass.
func (c *Coordinator) acquire(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inflight[id]; busy {
		return false
	}
	now := time.Now()
	c.inflight[id] = &marker{startedAt: now, lastProgressAt: now}
	return true
}

func (c *Coordinator) release(id string) {
	c.mu.Lock()
	delete(c.inflight, id)
	c.mu.Unlock()
}

// State describes an artifact's position in the transfer lifecycle.
// Completed and Failed are not sticky states; once a transfer ends the
// artifact is simply downloaded or absent again.
type State string

const (
	StateAbsent      State = "absent"
	StateDownloading State = "downloading"
	StateDownloaded  State = "downloaded"
)

// Status is a point-in-time answer to "where is this artifact?".
type Status struct {
	ID    string
	State State
	// StartedAt and LastProgressAt are set only while downloading.
	StartedAt      time.Time
	LastProgressAt time.Time
}

// Status reports whether id is downloaded, downloading or absent.
func (c *Coordinator) Status(id string) (Status, error) {
	if _, err := c.catalog.Get(id); err != nil {
		return Status{}, newError(KindNotFound, id, "unknown artifact", err)
	}

	c.mu.Lock()
	m, busy := c.inflight[id]
	var st Status
	if busy {
		st = Status{
			ID:             id,
			State:          StateDownloading,
			StartedAt:      m.startedAt,
			LastProgressAt: m.lastProgressAt,
		}
	}
	c.mu.Unlock()
	if busy {
		return st, nil
	}

	if c.catalog.IsPresent(id) {
		return Status{ID: id, State: StateDownloaded}, nil
	}
	return Status{ID: id, State: StateAbsent}, nil
}

// Delete removes the published artifact file. It is idempotent: deleting
// an artifact that was never downloaded, or was already deleted, reports
// false with a nil error. Deleting while a transfer for id is in flight
// is not guarded.
func (c *Coordinator) Delete(id, actor string) (bool, error) {
	final, err := c.catalog.ResolvedPath(id)
	if err != nil {
		return false, newError(KindNotFound, id, "unknown artifact", err)
	}

	removed, err := c.publisher.Remove(final)
	if err != nil {
		return false, newError(KindPublish, id, "deleting artifact", err)
	}
	if removed {
		c.audit.Record(audit.Event{
			Kind:       audit.ArtifactDeleted,
			ArtifactID: id,
			Actor:      actor,
			Success:    true,
			Time:       time.Now(),
		})
	}
	return removed, nil
}

// Verify recomputes the on-disk evidence for id and compares it with the
// catalog's declared size and checksum. An absent artifact yields an
// invalid report, not an error.
func (c *Coordinator) Verify(id string) (integrity.Report, error) {
	ent, err := c.catalog.Get(id)
	if err != nil {
		return integrity.Report{}, newError(KindNotFound, id, "unknown artifact", err)
	}
	final, err := c.catalog.ResolvedPath(id)
	if err != nil {
		return integrity.Report{}, newError(KindNotFound, id, "unresolvable artifact path", err)
	}

	rep, err := integrity.File(final, ent.Size, ent.Checksum)
	if err != nil {
		return rep, newError(KindIntegrity, id, "verifying artifact", err)
	}
	return rep, nil
}
