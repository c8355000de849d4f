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

package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEntry() *Entry {
	return &Entry{
		ID:       "demo-1",
		Name:     "Demo",
		FileName: "demo.bin",
		URL:      "https://models.example.com/demo.bin",
		Size:     1000,
	}
}

func TestLoad(t *testing.T) {
	c, err := Load("testdata/catalog.yaml", t.TempDir())
	require.NoError(t, err)

	entries := c.List()
	require.Len(t, entries, 3)
	assert.Equal(t, "demo-1", entries[0].ID)
	assert.Equal(t, "Demo Small", entries[0].Name)
	assert.Equal(t, int64(1000), entries[0].Size)
	assert.True(t, entries[0].Recommended)
	assert.Empty(t, entries[1].Checksum)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), t.TempDir())
	require.Error(t, err)
}

func TestLoadRejectsUnknownAPIVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("apiVersion: v9\nartifacts: []\n"), 0644))

	_, err := Load(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apiVersion")
}

func TestGet(t *testing.T) {
	c, err := New([]*Entry{validEntry()}, t.TempDir())
	require.NoError(t, err)

	e, err := c.Get("demo-1")
	require.NoError(t, err)
	assert.Equal(t, "demo.bin", e.FileName)

	_, err = c.Get("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestValidationErrorsAggregate(t *testing.T) {
	bad := &Entry{
		ID:       "",
		FileName: "../escape.bin",
		URL:      "not a url",
		Size:     0,
		Checksum: "ABC",
		Version:  "not-semver",
	}
	_, err := New([]*Entry{bad}, t.TempDir())
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "id must not be empty")
	assert.Contains(t, msg, "bare file name")
	assert.Contains(t, msg, "not a valid request URL")
	assert.Contains(t, msg, "positive byte count")
	assert.Contains(t, msg, "SHA-256")
	assert.Contains(t, msg, "not-semver")
}

func TestValidationRejectsUppercaseChecksum(t *testing.T) {
	e := validEntry()
	e.Checksum = strings.ToUpper(strings.Repeat("ab", 32))
	_, err := New([]*Entry{e}, t.TempDir())
	require.Error(t, err)
}

func TestValidationRejectsDuplicateIDs(t *testing.T) {
	_, err := New([]*Entry{validEntry(), validEntry()}, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestResolvedPathStaysInStore(t *testing.T) {
	store := t.TempDir()
	c, err := New([]*Entry{validEntry()}, store)
	require.NoError(t, err)

	p, err := c.ResolvedPath("demo-1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store, "demo.bin"), p)

	_, err = c.ResolvedPath("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPresence(t *testing.T) {
	store := t.TempDir()
	c, err := New([]*Entry{validEntry()}, store)
	require.NoError(t, err)

	assert.False(t, c.IsPresent("demo-1"))
	assert.Empty(t, c.ListPresent())

	// A staging orphan must not count as presence.
	require.NoError(t, os.WriteFile(filepath.Join(store, "demo.bin.part"), []byte("x"), 0644))
	assert.False(t, c.IsPresent("demo-1"))

	require.NoError(t, os.WriteFile(filepath.Join(store, "demo.bin"), []byte("x"), 0644))
	assert.True(t, c.IsPresent("demo-1"))
	require.Len(t, c.ListPresent(), 1)
	assert.Equal(t, "demo-1", c.ListPresent()[0].ID)

	assert.False(t, c.IsPresent("missing"))
}

func TestSearch(t *testing.T) {
	c, err := Load("testdata/catalog.yaml", t.TempDir())
	require.NoError(t, err)

	got, err := c.Search("demo-*")
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = c.Search("Llama*")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "llama-7b", got[0].ID)

	_, err = c.Search("[")
	require.Error(t, err)
}
