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

// Package catalog holds the process-lifetime registry of artifacts the
// subsystem knows how to fetch. Descriptors are loaded once and never
// mutated, so the catalog needs no locking.
package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/asaskevich/govalidator"
	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/gobwas/glob"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

// APIVersionV1 is the catalog file format this build reads.
const APIVersionV1 = "v1"

// ErrNotFound reports an artifact id the catalog does not know.
var ErrNotFound = errors.New("artifact not found in catalog")

// Entry describes one artifact: where it lives remotely, what it is
// called locally, and the evidence a complete copy must match.
type Entry struct {
	// ID is the unique key callers use for every operation.
	ID string `json:"id"`
	// Name is the human-facing display name.
	Name string `json:"name"`
	// FileName is the bare name the artifact is published under inside
	// the store directory.
	FileName string `json:"filename"`
	// URL is the remote location of the artifact bytes.
	URL string `json:"url"`
	// Size is the expected byte count of a complete copy.
	Size int64 `json:"size"`
	// Checksum is the expected lowercase hex SHA-256 digest. Optional;
	// when empty, downloads are confirmed by size alone.
	Checksum string `json:"checksum,omitempty"`
	// Version is an optional semantic version for the artifact.
	Version string `json:"version,omitempty"`
	// Description is free-form operator documentation.
	Description string `json:"description,omitempty"`
	// Recommended marks the entry operators should reach for first.
	Recommended bool `json:"recommended,omitempty"`
}

// File represents the catalog YAML file on disk.
type File struct {
	APIVersion string   `json:"apiVersion"`
	Artifacts  []*Entry `json:"artifacts"`
}

// Catalog is the immutable artifact registry, rooted at one store
// directory. Construct it once at process start and share the handle.
type Catalog struct {
	storeDir string
	order    []string
	entries  map[string]*Entry
}

// Load reads the catalog file at path and returns a Catalog rooted at
// storeDir. A malformed catalog is an operator error: Load reports every
// problem it finds and refuses the whole file.
func Load(path, storeDir string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading catalog file %s", path)
	}
	f := &File{}
	if err := yaml.Unmarshal(b, f); err != nil {
		return nil, errors.Wrapf(err, "parsing catalog file %s", path)
	}
	if f.APIVersion != APIVersionV1 {
		return nil, errors.Errorf("catalog file %s: unsupported apiVersion %q", path, f.APIVersion)
	}
	return New(f.Artifacts, storeDir)
}

// New builds a Catalog from already-decoded entries.
func New(entries []*Entry, storeDir string) (*Catalog, error) {
	c := &Catalog{
		storeDir: storeDir,
		entries:  make(map[string]*Entry, len(entries)),
	}
	var result *multierror.Error
	for i, e := range entries {
		if err := e.validate(); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "artifact %d (%s)", i, e.ID))
			continue
		}
		if _, dup := c.entries[e.ID]; dup {
			result = multierror.Append(result, errors.Errorf("artifact %d: duplicate id %q", i, e.ID))
			continue
		}
		c.entries[e.ID] = e
		c.order = append(c.order, e.ID)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return c, nil
}

// validate rejects an entry that could never download or verify cleanly.
func (e *Entry) validate() error {
	var result *multierror.Error
	if e.ID == "" {
		result = multierror.Append(result, errors.New("id must not be empty"))
	}
	if e.FileName == "" {
		result = multierror.Append(result, errors.New("filename must not be empty"))
	} else if e.FileName != filepath.Base(e.FileName) || e.FileName == ".." {
		result = multierror.Append(result, errors.Errorf("filename %q must be a bare file name", e.FileName))
	}
	if e.URL == "" {
		result = multierror.Append(result, errors.New("url must not be empty"))
	} else if !govalidator.IsRequestURL(e.URL) {
		result = multierror.Append(result, errors.Errorf("url %q is not a valid request URL", e.URL))
	}
	if e.Size <= 0 {
		result = multierror.Append(result, errors.New("size must be a positive byte count"))
	}
	if e.Checksum != "" {
		if e.Checksum != strings.ToLower(e.Checksum) || !govalidator.IsSHA256(e.Checksum) {
			result = multierror.Append(result, errors.Errorf("checksum %q must be lowercase hex SHA-256", e.Checksum))
		}
	}
	if e.Version != "" {
		if _, err := semver.NewVersion(e.Version); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "version %q", e.Version))
		}
	}
	return result.ErrorOrNil()
}

// StoreDir returns the directory artifacts are published into.
func (c *Catalog) StoreDir() string {
	return c.storeDir
}

// List returns every known artifact in catalog order.
func (c *Catalog) List() []*Entry {
	out := make([]*Entry, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.entries[id])
	}
	return out
}

// Get returns the descriptor for id, or ErrNotFound.
func (c *Catalog) Get(id string) (*Entry, error) {
	e, ok := c.entries[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "id %q", id)
	}
	return e, nil
}

// ResolvedPath returns the final on-disk path for id. The join is bounded
// to the store directory, so no entry can address a file outside it.
func (c *Catalog) ResolvedPath(id string) (string, error) {
	e, err := c.Get(id)
	if err != nil {
		return "", err
	}
	p, err := securejoin.SecureJoin(c.storeDir, e.FileName)
	if err != nil {
		return "", errors.Wrapf(err, "resolving path for %q", id)
	}
	return p, nil
}

// IsPresent reports whether a file exists at the artifact's final path.
// Presence is the only persistent record of a completed download.
func (c *Catalog) IsPresent(id string) bool {
	p, err := c.ResolvedPath(id)
	if err != nil {
		return false
	}
	fi, err := os.Stat(p)
	return err == nil && !fi.IsDir()
}

// ListPresent returns the artifacts whose final files exist.
func (c *Catalog) ListPresent() []*Entry {
	var out []*Entry
	for _, id := range c.order {
		if c.IsPresent(id) {
			out = append(out, c.entries[id])
		}
	}
	return out
}

// Search returns entries whose id or display name matches the glob
// pattern.
func (c *Catalog) Search(pattern string) ([]*Entry, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid filter %q", pattern)
	}
	var out []*Entry
	for _, id := range c.order {
		e := c.entries[id]
		if g.Match(e.ID) || g.Match(e.Name) {
			out = append(out, e)
		}
	}
	return out, nil
}
