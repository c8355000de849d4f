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

package getter

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPGetterStreams(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.UserAgent()
		w.Write([]byte("artifact bytes"))
	}))
	defer srv.Close()

	g := NewHTTPGetter()
	body, length, err := g.Get(srv.URL)
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "artifact bytes", string(data))
	assert.Equal(t, int64(len("artifact bytes")), length)
	assert.Equal(t, "modelvault", gotAgent)
}

func TestHTTPGetterUserAgentOption(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.UserAgent()
	}))
	defer srv.Close()

	g := NewHTTPGetter(WithUserAgent("weights-sync/1.0"))
	body, _, err := g.Get(srv.URL)
	require.NoError(t, err)
	body.Close()
	assert.Equal(t, "weights-sync/1.0", gotAgent)
}

func TestHTTPGetterNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	g := NewHTTPGetter()
	_, _, err := g.Get(srv.URL + "/missing.bin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestHTTPGetterConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	g := NewHTTPGetter()
	_, _, err := g.Get(url)
	require.Error(t, err)
}
