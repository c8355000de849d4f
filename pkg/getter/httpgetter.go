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
	"sync"
	"time"

	"github.com/pkg/errors"
)

// DefaultTimeout bounds one whole transfer. Artifacts run to gigabytes, so
// the bound is generous; it exists to keep a dead connection from hanging
// a transfer forever, not to police slow ones.
const DefaultTimeout = 15 * time.Minute

const defaultUserAgent = "modelvault"

// HTTPGetter is the default HTTP(S) transport for artifact downloads.
type HTTPGetter struct {
	opts      options
	transport *http.Transport
	once      sync.Once
}

// NewHTTPGetter constructs an HTTP getter with the given options.
func NewHTTPGetter(opts ...Option) *HTTPGetter {
	g := &HTTPGetter{}
	for _, opt := range opts {
		opt(&g.opts)
	}
	return g
}

// Get issues one streaming GET for href. Responses other than 200 OK are
// errors; the body of a successful response is returned unread for the
// caller to stream.
func (g *HTTPGetter) Get(href string, options ...Option) (io.ReadCloser, int64, error) {
	// Copy the options so concurrent Get calls do not race.
	opts := g.opts
	for _, opt := range options {
		opt(&opts)
	}

	req, err := http.NewRequest(http.MethodGet, href, nil)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "building request for %s", href)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	if opts.userAgent != "" {
		req.Header.Set("User-Agent", opts.userAgent)
	}

	resp, err := g.httpClient(opts).Do(req)
	if err != nil {
		return nil, 0, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, 0, errors.Errorf("failed to fetch %s : %s", href, resp.Status)
	}
	return resp.Body, resp.ContentLength, nil
}

func (g *HTTPGetter) httpClient(opts options) *http.Client {
	timeout := opts.timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if opts.transport != nil {
		return &http.Client{
			Transport: opts.transport,
			Timeout:   timeout,
		}
	}

	// Share one transport across calls so connections are pooled.
	g.once.Do(func() {
		g.transport = &http.Transport{
			DisableCompression: true,
			Proxy:              http.ProxyFromEnvironment,
		}
	})
	return &http.Client{
		Transport: g.transport,
		Timeout:   timeout,
	}
}
