// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes Prometheus collectors for HTTP latency, quiz
// scoring and smart default outcomes. A *Metrics satisfies the
// smartdefaults.Observer interface.
package metrics
