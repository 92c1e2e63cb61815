// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import "log"

// Config carries the settings shared by all targets.
type Config struct {
	// Extensions names the extension headers to generate, e.g. "xproto"
	// or "randr". Empty means every loaded extension.
	Extensions []string

	// ResolveDeps adds the extensions imported, transitively, by the
	// ones in Extensions.
	ResolveDeps bool

	// Logger receives skipped-request notices and progress (optional).
	Logger *log.Logger

	// Source describes where the protocol descriptions came from. It ends
	// up in the generated banner, next to the git ref and commit if known.
	Source     string
	Ref        string
	CommitHash string

	// Options holds target-specific settings.
	Options map[string]string
}

// Option returns a target-specific option, or defaultValue when unset.
func (c Config) Option(key, defaultValue string) string {
	if v, ok := c.Options[key]; ok {
		return v
	}
	return defaultValue
}
