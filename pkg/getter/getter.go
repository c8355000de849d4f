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

// Package getter provides the transport used to fetch remote artifacts.
package getter

import (
	"io"
	"net/http"
	"time"
)

// Getter fetches a remote artifact as a byte stream.
type Getter interface {
	// Get issues a single request for href and returns the response body
	// along with the reported content length (-1 when unknown). The caller
	// owns closing the body. Artifacts are gigabyte-scale, so the body is
	// streamed rather than buffered.
	Get(href string, options ...Option) (io.ReadCloser, int64, error)
}

// options are the transport knobs a Getter accepts.
type options struct {
	timeout   time.Duration
	userAgent string
	transport http.RoundTripper
}

// Option configures a Getter at construction or per call.
type Option func(*options)

// WithTimeout sets the bound on one whole transfer.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithTransport sets a custom round tripper, mainly for tests.
func WithTransport(t http.RoundTripper) Option {
	return func(o *options) {
		o.transport = t
	}
}
