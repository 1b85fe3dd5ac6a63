// Copyright 2024 uwu-tools Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package retry re-runs filesystem calls that fail with transient errors
// (a busy file, a momentarily unavailable resource) under an
// exponential backoff budget.
package retry

import (
	"errors"
	"fmt"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

const retryBackoffRoundRatio = time.Millisecond / time.Nanosecond

// Transient reports whether err is worth retrying.
func Transient(err error) bool {
	return errors.Is(err, syscall.EBUSY) ||
		errors.Is(err, syscall.EAGAIN) ||
		errors.Is(err, syscall.EINTR)
}

// Do runs op until it succeeds, fails with a non-transient error, or the
// timeout elapses. A zero timeout runs op exactly once. The last error
// from op is returned unwrapped so callers can classify it.
func Do(op func() error, log *logrus.Entry, timeout time.Duration) error {
	if timeout <= 0 {
		return op()
	}

	var last error
	wrapped := func() error {
		last = op()
		if last != nil && !Transient(last) {
			return backoff.Permanent(last)
		}
		return last
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 10 * time.Millisecond
	b.MaxElapsedTime = timeout

	err := backoff.RetryNotify(
		wrapped,
		b,
		func(err error, duration time.Duration) {
			// Round to a whole number of milliseconds
			duration /= retryBackoffRoundRatio
			duration *= retryBackoffRoundRatio

			log.WithError(err).Debugf("transient filesystem error; retrying in %v", duration)
		},
	)
	if err == nil {
		return nil
	}
	if last != nil {
		return last
	}
	return errBackoff(err)
}

func errBackoff(e error) error {
	return fmt.Errorf("backoff error: %w", e)
}
