// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package fetch locates and loads the XCB protocol descriptions.
package fetch

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/albertocavalcante/gxgen/internal/xcbxml"
	"github.com/albertocavalcante/gxgen/model"
)

const (
	// XCBProtoRepo is the repository containing the protocol descriptions.
	XCBProtoRepo = "https://gitlab.freedesktop.org/xorg/proto/xcbproto.git"

	// DefaultRef is the default git reference (tag/branch) to use.
	DefaultRef = "xcb-proto-1.17.0"

	// ProtoPath is the directory holding the XML files within the repository.
	ProtoPath = "src"
)

// Options configures how to find the protocol descriptions.
type Options struct {
	// Ref is the git reference (tag or branch) to use.
	// If empty, DefaultRef is used.
	Ref string

	// Files are explicit protocol description files. If set, they are
	// loaded directly, together with their imports.
	Files []string

	// ProtoDir is a directory of <header>.xml files, such as an installed
	// xcb-proto's share/xcb.
	ProtoDir string

	// RepoDir is a path to an existing clone of xcb-proto.
	// If set, the repository is used instead of cloning.
	RepoDir string

	// Extensions names the headers to load from a directory, e.g.
	// "xproto" or "randr". If empty, every XML file is loaded.
	Extensions []string

	// Timeout for network operations.
	Timeout time.Duration
}

// Result contains the loaded protocol and metadata.
type Result struct {
	// Protocol is the loaded protocol description.
	Protocol *model.Protocol

	// Ref is the git reference that was used.
	Ref string

	// CommitHash is the git commit hash (if fetched from git).
	CommitHash string

	// Source describes where the descriptions were loaded from.
	Source string
}

// Fetch locates and loads the protocol descriptions.
func Fetch(ctx context.Context, opts Options) (*Result, error) {
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}

	// Priority: Files > ProtoDir > RepoDir > Clone
	if len(opts.Files) > 0 {
		return fetchFromFiles(opts.Files)
	}

	if opts.ProtoDir != "" {
		return fetchFromDir(opts.ProtoDir, opts.Extensions)
	}

	if opts.RepoDir != "" {
		return fetchFromRepo(opts.RepoDir, opts.Ref, opts.Extensions)
	}

	return fetchFromGit(ctx, opts)
}

// fetchFromFiles loads explicit files.
func fetchFromFiles(paths []string) (*Result, error) {
	p, err := xcbxml.LoadFiles(paths...)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	source := "file://" + paths[0]
	if len(paths) > 1 {
		source = "file://" + filepath.Dir(paths[0])
	}
	return &Result{
		Protocol: p,
		Source:   source,
	}, nil
}

// fetchFromDir loads the named headers, or every XML file, from dir.
func fetchFromDir(dir string, extensions []string) (*Result, error) {
	p, err := loadDir(dir, extensions)
	if err != nil {
		return nil, err
	}
	return &Result{
		Protocol: p,
		Source:   fmt.Sprintf("dir://%s", dir),
	}, nil
}

// fetchFromRepo loads the descriptions from an existing repository clone.
func fetchFromRepo(repoDir, ref string, extensions []string) (*Result, error) {
	p, err := loadDir(filepath.Join(repoDir, ProtoPath), extensions)
	if err != nil {
		return nil, fmt.Errorf("read from repo: %w", err)
	}

	// Try to get commit hash
	hash := getGitHash(repoDir)

	return &Result{
		Protocol:   p,
		Ref:        ref,
		CommitHash: hash,
		Source:     fmt.Sprintf("repo://%s", repoDir),
	}, nil
}

// fetchFromGit clones the repository and loads the descriptions.
func fetchFromGit(ctx context.Context, opts Options) (*Result, error) {
	ref := opts.Ref
	if ref == "" {
		ref = DefaultRef
	}

	// Create temporary directory
	tmpDir, err := os.MkdirTemp("", "gxgen-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	// Clone with shallow depth and sparse checkout
	cloneCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	cmd := exec.CommandContext(cloneCtx, "git", "clone",
		"--quiet",
		"--depth=1",
		"--filter=blob:none",
		"--sparse",
		"--branch="+ref,
		"--single-branch",
		XCBProtoRepo,
		tmpDir,
	)
	cmd.Stderr = io.Discard
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git clone: %w", err)
	}

	// Sparse checkout just the protocol directory
	cmd = exec.CommandContext(cloneCtx, "git", "-C", tmpDir, "sparse-checkout", "set", ProtoPath)
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("sparse checkout: %w", err)
	}

	p, err := loadDir(filepath.Join(tmpDir, ProtoPath), opts.Extensions)
	if err != nil {
		return nil, err
	}

	hash := getGitHash(tmpDir)

	return &Result{
		Protocol:   p,
		Ref:        ref,
		CommitHash: hash,
		Source:     fmt.Sprintf("%s@%s", XCBProtoRepo, ref),
	}, nil
}

// loadDir loads <header>.xml for each of extensions, or every XML file in
// dir in name order when extensions is empty.
func loadDir(dir string, extensions []string) (*model.Protocol, error) {
	var paths []string
	if len(extensions) == 0 {
		matches, err := filepath.Glob(filepath.Join(dir, "*.xml"))
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", dir, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no protocol descriptions in %s", dir)
		}
		slices.Sort(matches)
		paths = matches
	} else {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, ext+".xml"))
		}
	}

	p, err := xcbxml.LoadFiles(paths...)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return p, nil
}

// getGitHash returns the current commit hash for a repository.
func getGitHash(repoDir string) string {
	// Try reading HEAD directly
	headPath := filepath.Join(repoDir, ".git", "HEAD")
	data, err := os.ReadFile(headPath)
	if err != nil {
		return ""
	}

	content := strings.TrimSpace(string(data))

	// Direct hash (detached HEAD)
	if len(content) == 40 && isHex(content) {
		return content
	}

	// Reference (e.g., "ref: refs/heads/master")
	ref, ok := strings.CutPrefix(content, "ref: ")
	if !ok {
		return ""
	}
	data, err = os.ReadFile(filepath.Join(repoDir, ".git", ref))
	if err != nil {
		return packedRef(repoDir, ref)
	}
	hash := strings.TrimSpace(string(data))
	if len(hash) >= 40 && isHex(hash[:40]) {
		return hash[:40]
	}
	return ""
}

// packedRef looks ref up in .git/packed-refs, where git gc and fresh
// clones keep refs that have no loose file.
func packedRef(repoDir, ref string) string {
	data, err := os.ReadFile(filepath.Join(repoDir, ".git", "packed-refs"))
	if err != nil {
		return ""
	}
	for line := range strings.Lines(string(data)) {
		hash, name, ok := strings.Cut(strings.TrimSpace(line), " ")
		if ok && name == ref && len(hash) == 40 && isHex(hash) {
			return hash
		}
	}
	return ""
}

func isHex(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
