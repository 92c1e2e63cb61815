// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Command gxgen generates GObject-style C bindings from the XCB protocol
// descriptions.
//
// Usage:
//
//	gxgen [flags] [file.xml ...]
//
// Flags:
//
//	-o               Output directory (default: stdout)
//	-x               Comma-separated extension headers (default: all)
//	--proto-dir      Directory of protocol descriptions
//	--repo           Path to local xcb-proto clone
//	--ref            xcb-proto git ref
//	--target         Generator to run (default: gobject)
//	--dry-run        Print to stdout without writing files
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/albertocavalcante/gxgen/generator"
	"github.com/albertocavalcante/gxgen/internal/fetch"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version information")
	showHelp := flag.Bool("help", false, "Show help")

	// Generate flags
	output := flag.String("o", "", "Output directory (default: stdout)")
	extensions := flag.String("x", "", "Comma-separated extension headers to generate (default: all)")
	protoDir := flag.String("proto-dir", "", "Directory of protocol descriptions")
	repoDir := flag.String("repo", "", "Path to local xcb-proto clone")
	ref := flag.String("ref", fetch.DefaultRef, "xcb-proto git ref")
	target := flag.String("target", "gobject", "Generator to run")
	resolveDeps := flag.Bool("resolve-deps", true, "Include imported extensions")
	dryRun := flag.Bool("dry-run", false, "Print to stdout without writing files")
	verbose := flag.Bool("verbose", false, "Verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `gxgen - GObject XCB Binding Generator

Generate GObject-style C bindings from the XCB protocol descriptions.

Usage:
  gxgen [flags] [file.xml ...]

Flags:
  -o string          Output directory (default: stdout)
  -x string          Comma-separated extension headers (default: all)
  --proto-dir string Directory of protocol descriptions
  --repo string      Path to local xcb-proto clone
  --ref string       xcb-proto git ref (default: %s)
  --target string    Generator to run (default: gobject; one of %s)
  --resolve-deps     Include imported extensions (default: true)
  --dry-run          Print to stdout without writing files
  --verbose          Verbose output
  --version          Show version information
  --help             Show this help

Examples:
  # Generate everything from an installed xcb-proto
  gxgen --proto-dir /usr/share/xcb -o ./generated-code/

  # Generate the core protocol and RandR
  gxgen --proto-dir /usr/share/xcb -x xproto,randr -o ./generated-code/

  # Generate from explicit files and inspect the result
  gxgen --dry-run xproto.xml shape.xml

`, fetch.DefaultRef, strings.Join(generator.Targets(), ", "))
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		return nil
	}

	if *showVersion {
		fmt.Printf("gxgen %s (commit: %s, built: %s)\n", version, commit, date)
		return nil
	}

	gen, err := generator.Lookup(*target)
	if err != nil {
		return err
	}

	var exts []string
	if *extensions != "" {
		for _, x := range strings.Split(*extensions, ",") {
			if x = strings.TrimSpace(x); x != "" {
				exts = append(exts, x)
			}
		}
	}

	// Load the protocol descriptions
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if *verbose {
		fmt.Fprintln(os.Stderr, "Loading XCB protocol descriptions...")
	}

	fetchOpts := fetch.Options{
		Ref:        *ref,
		Files:      flag.Args(),
		ProtoDir:   *protoDir,
		RepoDir:    *repoDir,
		Extensions: exts,
		Timeout:    90 * time.Second,
	}

	result, err := fetch.Fetch(ctx, fetchOpts)
	if err != nil {
		return fmt.Errorf("load protocol: %w", err)
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d extensions from %s\n", len(result.Protocol.Extensions), result.Source)
		if result.CommitHash != "" {
			fmt.Fprintf(os.Stderr, "Commit: %s\n", result.CommitHash)
		}
	}

	// Configure code generation
	cfg := generator.Config{
		Extensions:  exts,
		ResolveDeps: *resolveDeps,
		Source:      result.Source,
		Ref:         result.Ref,
		CommitHash:  result.CommitHash,
	}
	if *verbose {
		cfg.Logger = log.New(os.Stderr, "", 0)
	}

	out, err := gen.Generate(ctx, result.Protocol, cfg)
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	// Output
	if *dryRun || *output == "" {
		_, err := os.Stdout.Write(out.Archive())
		return err
	}

	written, err := out.WriteDir(*output)
	if err != nil {
		return err
	}
	if *verbose {
		fmt.Fprintf(os.Stderr, "Wrote %d files to %s\n", len(written), *output)
	}

	return nil
}
