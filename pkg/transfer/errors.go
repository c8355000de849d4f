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
	stderrors "errors"
	"fmt"
)

// FailureKind classifies why a transfer operation did not succeed.
// Expected failures travel as tagged values; nothing in this package
// panics for a network fault, a bad digest, or a failed rename.
type FailureKind int

const (
	// KindNone means the error carries no transfer classification.
	KindNone FailureKind = iota
	// KindNotFound: the artifact id is not in the catalog. A caller
	// error; no side effects occurred.
	KindNotFound
	// KindAlreadyInFlight: a transfer for this id is already active.
	// A rejection signal rather than a fault; the caller should poll the
	// existing transfer instead of retrying.
	KindAlreadyInFlight
	// KindTransfer: the network stream or the staging write failed
	// mid-flight. Recoverable; the staging file has been cleaned up and
	// the caller may retry.
	KindTransfer
	// KindIntegrity: the downloaded bytes do not match the declared
	// size or checksum. Distinguished from KindTransfer so operators can
	// tell "bad network" from "wrong file", but handled the same way.
	KindIntegrity
	// KindPublish: the terminal rename could not complete.
	KindPublish
)

func (k FailureKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAlreadyInFlight:
		return "already_in_flight"
	case KindTransfer:
		return "transfer_failure"
	case KindIntegrity:
		return "integrity_failure"
	case KindPublish:
		return "publish_failure"
	}
	return "none"
}

// Error is the tagged failure the coordinator returns.
type Error struct {
	Kind   FailureKind
	ID     string
	Detail string
	cause  error
}

func newError(kind FailureKind, id, detail string, cause error) *Error {
	return &Error{Kind: kind, ID: id, Detail: detail, cause: cause}
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("artifact %q: %s", e.ID, e.Detail)
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf returns the failure kind carried by err, or KindNone when err is
// nil or untagged.
func KindOf(err error) FailureKind {
	var te *Error
	if stderrors.As(err, &te) {
		return te.Kind
	}
	return KindNone
}
