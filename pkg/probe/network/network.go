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

// Package network probes model hub reachability. Fine-tuning jobs pull
// base weights and tokenizers from the hub on first run; air-gapped
// hosts can still train from a warmed cache with HF_HUB_OFFLINE=1, so
// unreachability is a warning rather than a failure.
package network

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/NVIDIA/mlready/pkg/defaults"
	"github.com/NVIDIA/mlready/pkg/diagnostic"
	apperrors "github.com/NVIDIA/mlready/pkg/errors"
	"github.com/NVIDIA/mlready/pkg/retry"
)

const checkConnectivity = "Internet Connectivity"

// Probe checks that the model hub answers HTTP requests.
type Probe struct {
	// Client issues the requests. Nil gets a client with the probe's
	// per-attempt timeout.
	Client *http.Client

	// URL is the hub endpoint to probe.
	URL string

	// Policy drives the retry schedule across attempts.
	Policy retry.Policy
}

// Name implements the probe interface.
func (p *Probe) Name() string {
	return "network"
}

// Probe issues a GET against the hub with retries. Any response below
// 500 counts as reachable: auth challenges and redirects still prove the
// network path works.
func (p *Probe) Probe(ctx context.Context) ([]diagnostic.Result, error) {
	client := p.Client
	if client == nil {
		client = &http.Client{Timeout: defaults.NetworkProbeTimeout}
	}

	status, err := retry.DoValue(ctx, p.Policy, func(ctx context.Context) (int, error) {
		return p.fetch(ctx, client)
	})
	if err != nil {
		return []diagnostic.Result{{
			Name:     checkConnectivity,
			Status:   diagnostic.StatusOf(diagnostic.TokenWarn, "Cannot reach HF Hub"),
			Severity: diagnostic.SeverityWarning,
			Fix:      "Check internet connection and firewall settings, or set HF_HUB_OFFLINE=1 to train from a warmed cache",
			Details:  err.Error(),
		}}, nil
	}

	return []diagnostic.Result{{
		Name:     checkConnectivity,
		Status:   diagnostic.StatusOf(diagnostic.TokenPass, "HF Hub accessible"),
		Severity: diagnostic.SeverityInfo,
		Details:  fmt.Sprintf("GET %s returned %d", p.URL, status),
	}}, nil
}

func (p *Probe) fetch(ctx context.Context, client *http.Client) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrCodeInvalidInput, "building hub request", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrCodeUnavailable, "reaching hub", err)
	}
	defer resp.Body.Close()

	// Drain so the transport can reuse the connection across retries.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return resp.StatusCode, apperrors.NewWithContext(apperrors.ErrCodeUnavailable,
			"hub returned server error", map[string]any{"status": resp.StatusCode})
	}
	return resp.StatusCode, nil
}
