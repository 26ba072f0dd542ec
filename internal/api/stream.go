// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jeranaias/datamock-tui/internal/extract"
	"github.com/jeranaias/datamock-tui/internal/model"
)

// =============================================================================
// STREAMING GENERATION
// =============================================================================

const streamReadChunk = 4096

type generateRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateStream sends prompt to the generation endpoint and accumulates the
// streamed body until EOF, returning the complete text. The stream is plain
// chunked text; chunks are accumulated as bytes so a multi-byte rune split
// across chunk boundaries reassembles correctly.
//
// Cancellation through ctx returns ErrCancelled, never a connection error,
// even when the cancel lands mid-stream.
func (c *Client) GenerateStream(ctx context.Context, token, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{Prompt: prompt})
	if err != nil {
		return "", newError(ErrTypeResponse, "encoding generate request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/data/generate-ai-stream", bytes.NewReader(payload))
	if err != nil {
		return "", newError(ErrTypeConnection, "building generate request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.streamHTTP.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", cancelErr(ctx)
		}
		return "", newError(ErrTypeConnection, "generate request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", newError(ErrTypeAuth, readErrorDetail(resp.Body), ErrUnauthorized)
	}
	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp)
	}

	var buf bytes.Buffer
	chunk := make([]byte, streamReadChunk)
	for {
		n, err := resp.Body.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if ctx.Err() != nil {
				return "", cancelErr(ctx)
			}
			return "", newError(ErrTypeConnection, "stream interrupted", err)
		}
	}
	return buf.String(), nil
}

// Generate runs the full pipeline: stream the response, then extract the
// record array from the accumulated text. extract.ErrNoData passes through
// unwrapped so callers can treat "model produced no table" as soft.
func (c *Client) Generate(ctx context.Context, token, prompt string) ([]*model.Record, error) {
	text, err := c.GenerateStream(ctx, token, prompt)
	if err != nil {
		return nil, err
	}
	return extract.Records(text)
}
