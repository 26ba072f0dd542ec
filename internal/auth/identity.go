// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth handles the client's view of the bearer credential.
//
// The backend issues an opaque three-part token. For display purposes the
// middle segment is base64-decoded and parsed as JSON claims; nothing is
// verified. This is a display-only decode, not a trust decision: expiry
// and signature checks belong to the backend, which rejects bad tokens on
// every request anyway.
package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// =============================================================================
// IDENTITY
// =============================================================================

// Identity is the displayable subject decoded from a credential.
type Identity struct {
	// Subject is the primary label, the backend's "sub" claim (the
	// account email in the current backend).
	Subject string

	// Username and FirstName are optional extra claims for friendlier
	// display. Either may be empty.
	Username  string
	FirstName string
}

// DecodeIdentity decodes the claims segment of a bearer credential.
//
// Every failure mode (wrong part count, bad base64, non-JSON payload,
// missing sub) returns nil. The caller treats nil as "not authenticated";
// no error ever escapes this function.
func DecodeIdentity(token string) *Identity {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil
	}

	payload, ok := decodeSegment(parts[1])
	if !ok {
		return nil
	}

	var claims struct {
		Sub       string `json:"sub"`
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil
	}
	if claims.Sub == "" {
		return nil
	}

	return &Identity{
		Subject:   claims.Sub,
		Username:  claims.Username,
		FirstName: claims.FirstName,
	}
}

// DisplayName returns the friendliest available label.
func (i *Identity) DisplayName() string {
	if i == nil {
		return ""
	}
	if i.FirstName != "" {
		return i.FirstName
	}
	if i.Username != "" {
		return i.Username
	}
	return i.Subject
}

// decodeSegment decodes a token segment that may or may not carry
// padding, in either the URL-safe or standard alphabet.
func decodeSegment(seg string) ([]byte, bool) {
	for _, enc := range []*base64.Encoding{
		base64.RawURLEncoding,
		base64.URLEncoding,
		base64.RawStdEncoding,
		base64.StdEncoding,
	} {
		if data, err := enc.DecodeString(seg); err == nil {
			return data, true
		}
	}
	return nil, false
}
