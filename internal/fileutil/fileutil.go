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

package fileutil

import (
	"os"

	"github.com/pkg/errors"
)

// stagingSuffix is appended to an artifact's final file name while its
// bytes are still arriving. Deriving the staging name from the final name
// means a crash leaves at most one orphan per artifact, and never mixes
// two artifacts' data.
const stagingSuffix = ".part"

// StagingPath returns the private path a transfer writes into before the
// artifact becomes visible under its final name. The staging file lives in
// the same directory as the final file, which keeps the terminal rename on
// a single volume.
func StagingPath(final string) string {
	return final + stagingSuffix
}

// AtomicRename moves src onto dst with a single rename call. Within one
// volume the OS guarantees a reader of dst sees either the previous state
// or the complete new file, never a partial write. There is no copy
// fallback: staging and final paths share a directory by construction, so
// a cross-device error indicates store misconfiguration and is returned
// to the caller.
func AtomicRename(src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		return errors.Wrapf(err, "renaming %s to %s", src, dst)
	}
	return nil
}
