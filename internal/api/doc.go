// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the datamock backend.
//
// The backend exposes a small REST surface plus one streaming endpoint:
//
//   - POST /auth/login          form-encoded credentials -> bearer token
//   - POST /auth/register       JSON profile -> created/conflict
//   - POST /auth/check-username JSON -> {exists}
//   - POST /auth/check-email    JSON -> {exists}
//   - POST /data/generate-ai-stream  bearer, {prompt} -> streamed text
//   - POST /data/generate-title      bearer, {prompt, sample} -> {title}
//
// All failures are converted to *ClientError with a Type before they leave
// this package; callers branch on the type, never on raw transport errors.
// Context cancellation is reported as ErrCancelled and is always
// distinguishable from genuine network failure.
package api
