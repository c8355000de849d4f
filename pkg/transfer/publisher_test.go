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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherPublish(t *testing.T) {
	store := t.TempDir()
	staging := filepath.Join(store, "demo.bin.part")
	final := filepath.Join(store, "demo.bin")
	require.NoError(t, os.WriteFile(staging, []byte("verified bytes"), 0644))

	p := NewPublisher(store)
	require.NoError(t, p.Publish(staging, final))

	got, err := os.ReadFile(final)
	require.NoError(t, err)
	assert.Equal(t, "verified bytes", string(got))

	_, err = os.Stat(staging)
	assert.True(t, os.IsNotExist(err))
}

func TestPublisherPublishMissingStaging(t *testing.T) {
	store := t.TempDir()
	p := NewPublisher(store)
	err := p.Publish(filepath.Join(store, "gone.part"), filepath.Join(store, "gone"))
	require.Error(t, err)
}

func TestPublisherRemove(t *testing.T) {
	store := t.TempDir()
	final := filepath.Join(store, "demo.bin")
	p := NewPublisher(store)

	removed, err := p.Remove(final)
	require.NoError(t, err)
	assert.False(t, removed)

	require.NoError(t, os.WriteFile(final, []byte("x"), 0644))
	removed, err = p.Remove(final)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = p.Remove(final)
	require.NoError(t, err)
	assert.False(t, removed)
}
