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

// Package integrity computes and checks the byte-exactness evidence for
// downloaded artifacts.
package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Digest hashes a reader and returns the canonical lowercase hex SHA-256
// digest. The reader is consumed in fixed-size chunks, so multi-gigabyte
// artifacts never occupy a single in-memory buffer.
func Digest(in io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, in); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// DigestFile computes the SHA-256 digest of the file at path.
func DigestFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return Digest(f)
}

// Report is the structured outcome of verifying one artifact against its
// catalog declaration.
type Report struct {
	// Present reports whether a file exists at the artifact's final path.
	Present bool
	// Valid is the overall verdict: size matched and, when a checksum was
	// declared, the digest matched too.
	Valid bool
	// SizeMatch reports whether the on-disk size equals the declared size.
	SizeMatch bool
	// ChecksumMatch reports whether the computed digest equals the
	// declared one. Meaningless when ChecksumSkipped is set.
	ChecksumMatch bool
	// ChecksumSkipped is set when the catalog declares no checksum. The
	// artifact then has no integrity evidence beyond its size, and the
	// report says so instead of claiming a silent success.
	ChecksumSkipped bool
	// Size is the on-disk byte count.
	Size int64
	// Digest is the computed lowercase hex SHA-256 digest, empty when the
	// file is absent or the checksum check was skipped.
	Digest string
	// ExpectedDigest echoes the catalog's declared checksum.
	ExpectedDigest string
}

// File verifies the file at path against an expected byte size and an
// optional expected lowercase hex SHA-256 digest. An absent file yields an
// invalid report and a nil error; verification of a missing artifact is an
// answer, not a failure.
func File(path string, wantSize int64, wantDigest string) (Report, error) {
	r := Report{ExpectedDigest: wantDigest}

	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return r, errors.Wrapf(err, "stat %s", path)
	}
	r.Present = true
	r.Size = fi.Size()
	r.SizeMatch = fi.Size() == wantSize

	if wantDigest == "" {
		r.ChecksumSkipped = true
		r.Valid = r.SizeMatch
		return r, nil
	}

	sum, err := DigestFile(path)
	if err != nil {
		return r, errors.Wrapf(err, "digesting %s", path)
	}
	r.Digest = sum
	r.ChecksumMatch = sum == wantDigest
	r.Valid = r.SizeMatch && r.ChecksumMatch
	return r, nil
}
