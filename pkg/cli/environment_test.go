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

package cli

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	s := New()
	assert.Equal(t, "catalog.yaml", s.CatalogFile)
	assert.Equal(t, "artifacts", s.StoreDir)
	assert.False(t, s.Debug)
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("MODELVAULT_CATALOG", "/etc/modelvault/catalog.yaml")
	t.Setenv("MODELVAULT_STORE", "/var/lib/modelvault")
	t.Setenv("MODELVAULT_DEBUG", "1")

	s := New()
	assert.Equal(t, "/etc/modelvault/catalog.yaml", s.CatalogFile)
	assert.Equal(t, "/var/lib/modelvault", s.StoreDir)
	assert.True(t, s.Debug)
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("MODELVAULT_STORE", "/var/lib/modelvault")

	s := New()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	s.AddFlags(fs)
	require.NoError(t, fs.Parse([]string{"--store", "/tmp/store", "--debug"}))

	assert.Equal(t, "/tmp/store", s.StoreDir)
	assert.True(t, s.Debug)
}
