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

// Package downloader streams remote artifacts into staging files while
// reporting throttled progress.
package downloader

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/modelvault/modelvault/pkg/getter"
)

const (
	// DefaultChunkSize is the write granularity for staging files.
	DefaultChunkSize = 32 * 1024

	// DefaultSampleInterval throttles progress reporting. One sample per
	// second keeps callback overhead negligible on multi-gigabyte
	// transfers; the final chunk always samples regardless, so completion
	// feedback stays sub-second.
	DefaultSampleInterval = time.Second
)

// Downloader streams one remote artifact at a time into a staging file.
// Zero-valued fields fall back to the package defaults.
type Downloader struct {
	Getter         getter.Getter
	ChunkSize      int
	SampleInterval time.Duration
}

// New returns a Downloader using the given transport and default tuning.
func New(g getter.Getter) *Downloader {
	return &Downloader{
		Getter:         g,
		ChunkSize:      DefaultChunkSize,
		SampleInterval: DefaultSampleInterval,
	}
}

// Download fetches href into the staging path, truncating any orphan left
// by an earlier crash (transfers always restart from byte zero). total is
// the declared artifact size used for percentage math; when zero, the
// response's content length stands in.
//
// Progress samples are throttled to at most one per SampleInterval, except
// that the final chunk always yields one. Network and I/O failures remove
// the staging file and come back as ordinary errors; they are expected
// conditions, not panics. Returns the byte count received.
func (d *Downloader) Download(href, staging string, total int64, report ProgressFunc) (int64, error) {
	body, length, err := d.Getter.Get(href)
	if err != nil {
		return 0, errors.Wrapf(err, "fetching %s", href)
	}
	defer body.Close()
	if total <= 0 {
		total = length
	}

	f, err := os.OpenFile(staging, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, errors.Wrapf(err, "opening staging file %s", staging)
	}

	chunk := d.ChunkSize
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	interval := d.SampleInterval
	if interval <= 0 {
		interval = DefaultSampleInterval
	}

	var (
		written     int64
		sampleAt    = time.Now()
		sampleBytes int64
		sampled     bool
	)
	emit := func() {
		if report == nil {
			return
		}
		now := time.Now()
		elapsed := now.Sub(sampleAt)
		var speed float64
		if sampled && elapsed > 0 {
			speed = float64(written-sampleBytes) / elapsed.Seconds()
		}
		report(Sample{
			Downloaded:     written,
			Total:          total,
			Percent:        Percent(written, total),
			BytesPerSecond: speed,
			Status:         StatusDownloading,
		})
		sampleAt = now
		sampleBytes = written
		sampled = true
	}

	buf := make([]byte, chunk)
	for {
		n, rerr := body.Read(buf)
		if n > 0 {
			if _, werr := f.Write(buf[:n]); werr != nil {
				discard(f, staging)
				return written, errors.Wrapf(werr, "writing staging file %s", staging)
			}
			written += int64(n)
			if time.Since(sampleAt) >= interval {
				emit()
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			discard(f, staging)
			return written, errors.Wrapf(rerr, "reading %s", href)
		}
	}

	if err := f.Close(); err != nil {
		os.Remove(staging)
		return written, errors.Wrapf(err, "closing staging file %s", staging)
	}

	// The final chunk always yields a sample, so the receiver sees the
	// stream reach its last byte without waiting out the throttle window.
	if !sampled || sampleBytes != written {
		emit()
	}
	return written, nil
}

// discard abandons a staging file after a failed transfer.
func discard(f *os.File, staging string) {
	f.Close()
	os.Remove(staging)
}
