// Copyright 2026 Google LLC
// SPDX-License-Identifier: Apache-2.0

package typosquat

import "github.com/pkg/errors"

// DataQualityError indicates a popular-set description that the semantic
// model failed to embed when the candidate's description did embed
// successfully. Fatal: it means the popular set or the model is
// misconfigured, per spec.md §7.
type DataQualityError struct {
	Target string
	msg    string
}

func (e *DataQualityError) Error() string { return e.msg }

func newDataQualityError(target string) *DataQualityError {
	return &DataQualityError{
		Target: target,
		msg:    errors.Errorf("no embedding coverage for target %q despite having a description", target).Error(),
	}
}

// TransientNetworkError is an artifact download failure or unexpected HTTP
// status. Non-fatal: the caller should still emit the alert, substituting a
// placeholder file reference.
type TransientNetworkError struct {
	msg string
}

func (e *TransientNetworkError) Error() string { return e.msg }

func newTransientNetworkError(err error) *TransientNetworkError {
	return &TransientNetworkError{msg: err.Error()}
}

// MalformedInputError is a registry name or crate filename violating its
// grammar after retrieval from a trusted source. Fatal: indicates upstream
// corruption.
type MalformedInputError struct {
	msg string
}

func (e *MalformedInputError) Error() string { return e.msg }

func newMalformedInputError(format string, args ...any) *MalformedInputError {
	return &MalformedInputError{msg: errors.Errorf(format, args...).Error()}
}
