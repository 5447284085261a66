// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package retry provides context-aware retry with exponential backoff for
// transient failures like flaky network calls and slow external commands.
package retry

import (
	"context"
	"time"

	"github.com/NVIDIA/mlready/pkg/defaults"
)

// Policy controls retry behavior.
type Policy struct {
	// Attempts is the total number of tries, including the first one.
	Attempts int

	// Delay is the wait before the second attempt.
	Delay time.Duration

	// Backoff multiplies the delay after each failed attempt.
	Backoff float64

	// MaxDelay caps the grown delay. Zero means no cap.
	MaxDelay time.Duration
}

// Default returns the standard policy: 3 attempts starting at 1s with the
// delay doubling between tries, capped at 30s.
func Default() Policy {
	return Policy{
		Attempts: defaults.RetryAttempts,
		Delay:    defaults.RetryDelay,
		Backoff:  defaults.RetryBackoff,
		MaxDelay: defaults.RetryMaxDelay,
	}
}

// Do executes fn until it succeeds, the policy is exhausted, or the context
// is canceled. fn must return nil on success; any non-nil error is treated
// as retryable. The last error is returned when attempts run out.
func Do(ctx context.Context, policy Policy, fn func(ctx context.Context) error) error {
	if policy.Attempts < 1 {
		policy.Attempts = 1
	}

	var lastErr error
	delay := policy.Delay

	for attempt := 1; attempt <= policy.Attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == policy.Attempts {
			break
		}

		select {
		case <-time.After(delay):
			delay = time.Duration(float64(delay) * policy.Backoff)
			if policy.MaxDelay > 0 && delay > policy.MaxDelay {
				delay = policy.MaxDelay
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return lastErr
}

// DoValue executes fn like Do and returns its value on success.
// On failure the zero value is returned along with the last error.
func DoValue[T any](ctx context.Context, policy Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := Do(ctx, policy, func(ctx context.Context) error {
		var innerErr error
		result, innerErr = fn(ctx)
		return innerErr
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
