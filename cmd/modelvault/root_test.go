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

package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture writes a one-artifact catalog pointing at a loopback server and
// returns the arguments every command needs.
func fixture(t *testing.T, payload []byte) (commonArgs []string, store string) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	t.Cleanup(srv.Close)

	sum := sha256.Sum256(payload)
	dir := t.TempDir()
	store = filepath.Join(dir, "store")
	catalogPath := filepath.Join(dir, "catalog.yaml")
	content := fmt.Sprintf(`apiVersion: v1
artifacts:
  - id: demo-1
    name: Demo
    filename: demo.bin
    url: %s/demo.bin
    size: %d
    checksum: %s
    recommended: true
`, srv.URL, len(payload), hex.EncodeToString(sum[:]))
	require.NoError(t, os.WriteFile(catalogPath, []byte(content), 0644))

	return []string{"--catalog", catalogPath, "--store", store}, store
}

func run(t *testing.T, args []string) string {
	t.Helper()
	logger, _ := logrustest.NewNullLogger()
	var buf bytes.Buffer
	cmd := newRootCmd(logger, &buf)
	cmd.SetArgs(args)
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	require.NoError(t, cmd.Execute())
	return buf.String()
}

func TestPullListVerifyRemove(t *testing.T) {
	payload := []byte(strings.Repeat("x", 1000))
	commonArgs, store := fixture(t, payload)

	out := run(t, append([]string{"pull", "demo-1"}, commonArgs...))
	assert.Contains(t, out, "complete")

	got, err := os.ReadFile(filepath.Join(store, "demo.bin"))
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	out = run(t, append([]string{"list"}, commonArgs...))
	assert.Contains(t, out, "demo-1")
	assert.Contains(t, out, "yes")

	out = run(t, append([]string{"verify", "demo-1"}, commonArgs...))
	assert.Contains(t, out, "VALID")
	assert.Contains(t, out, "yes")

	out = run(t, append([]string{"status", "demo-1"}, commonArgs...))
	assert.Contains(t, out, "downloaded")

	out = run(t, append([]string{"remove", "demo-1"}, commonArgs...))
	assert.Contains(t, out, "removed")
	_, err = os.Stat(filepath.Join(store, "demo.bin"))
	assert.True(t, os.IsNotExist(err))

	out = run(t, append([]string{"remove", "demo-1"}, commonArgs...))
	assert.Contains(t, out, "nothing to remove")
}

func TestPullUnknownArtifactFails(t *testing.T) {
	commonArgs, _ := fixture(t, []byte("x"))

	logger, _ := logrustest.NewNullLogger()
	var buf bytes.Buffer
	cmd := newRootCmd(logger, &buf)
	cmd.SetArgs(append([]string{"pull", "nope"}, commonArgs...))
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	require.Error(t, cmd.Execute())
}
