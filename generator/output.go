// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/tools/txtar"
)

// Output contains generated files.
type Output struct {
	// Files maps filename to content.
	Files map[string][]byte
}

// NewOutput creates a new Output.
func NewOutput() *Output {
	return &Output{Files: make(map[string][]byte)}
}

// Add adds a file to the output.
func (o *Output) Add(name string, content []byte) {
	o.Files[name] = content
}

// Names returns the file names in sorted order.
func (o *Output) Names() []string {
	names := make([]string, 0, len(o.Files))
	for name := range o.Files {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Archive formats every file as one txtar archive, in name order.
func (o *Output) Archive() []byte {
	ar := &txtar.Archive{}
	for _, name := range o.Names() {
		ar.Files = append(ar.Files, txtar.File{Name: name, Data: o.Files[name]})
	}
	return txtar.Format(ar)
}

// WriteDir writes every file into dir, creating it if needed. It returns
// the paths written, in name order.
func (o *Output) WriteDir(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	var written []string
	for _, name := range o.Names() {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, o.Files[name], 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", name, err)
		}
		written = append(written, path)
	}
	return written, nil
}
