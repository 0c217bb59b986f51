// Copyright 2026 Google LLC
// SPDX-License-Identifier: Apache-2.0

package corpus

import "github.com/pkg/errors"

// ConfigError indicates an invariant violation discovered while loading the
// corpus or parsing configuration: fatal, the run must not proceed to the
// candidate loop.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string { return e.msg }

// NewConfigError builds a ConfigError with a formatted message.
func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{msg: errors.Errorf(format, args...).Error()}
}
