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

package transfer

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"

	"github.com/modelvault/modelvault/internal/fileutil"
)

const lockFileName = ".store.lock"

// Publisher performs the two store mutations: making a verified staging
// file visible under its final name, and removing a published artifact.
// Both run under a store-level file lock so a second process operating on
// the same store cannot race them.
type Publisher struct {
	lockPath string
}

// NewPublisher returns a Publisher for the given store directory.
func NewPublisher(storeDir string) *Publisher {
	return &Publisher{lockPath: filepath.Join(storeDir, lockFileName)}
}

func (p *Publisher) withLock(fn func() error) error {
	fileLock := flock.New(p.lockPath)
	lockCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	locked, err := fileLock.TryLockContext(lockCtx, time.Second)
	if err == nil && locked {
		defer fileLock.Unlock()
	}
	if err != nil {
		return errors.Wrap(err, "locking artifact store")
	}
	return fn()
}

// Publish moves the staged file onto final in one atomic rename. Any
// concurrent reader of final sees either nothing or the complete file.
// Integrity has already been settled by the time this runs; Publish never
// re-verifies.
func (p *Publisher) Publish(staging, final string) error {
	return p.withLock(func() error {
		return fileutil.AtomicRename(staging, final)
	})
}

// Remove unlinks a published artifact. Reports false when there was
// nothing to remove, which keeps deletion idempotent.
func (p *Publisher) Remove(final string) (bool, error) {
	removed := false
	err := p.withLock(func() error {
		if err := os.Remove(final); err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return errors.Wrapf(err, "removing %s", final)
		}
		removed = true
		return nil
	})
	return removed, err
}
