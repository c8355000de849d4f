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

package downloader

// Status describes where a progress sample sits in the transfer
// lifecycle.
type Status string

const (
	StatusDownloading Status = "downloading"
	StatusComplete    Status = "complete"
	StatusError       Status = "error"
	StatusPaused      Status = "paused"
)

// Sample is one point-in-time progress observation. Samples are transient;
// nothing persists them.
type Sample struct {
	// Downloaded is the byte count received so far.
	Downloaded int64
	// Total is the expected artifact size in bytes.
	Total int64
	// Percent is Downloaded relative to Total, 0 when Total is unknown.
	Percent float64
	// BytesPerSecond is the throughput since the previous sample. The
	// first sample of a transfer has no baseline and reports zero.
	BytesPerSecond float64
	// Status tells the receiver whether more samples will follow.
	Status Status
	// Err carries the failure text when Status is StatusError.
	Err string
}

// ProgressFunc receives throttled progress samples for one transfer.
// Within a transfer, Downloaded never decreases and exactly one terminal
// sample (StatusComplete or StatusError) arrives last.
type ProgressFunc func(Sample)

// Percent computes a percentage, tolerating an unknown total.
func Percent(downloaded, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(downloaded) / float64(total) * 100
}
