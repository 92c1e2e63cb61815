// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

var (
	mu      sync.RWMutex
	targets = make(map[string]Generator)
)

// Register makes a generator available as a target under its metadata
// name. Registering the same name twice panics.
func Register(g Generator) {
	mu.Lock()
	defer mu.Unlock()
	name := g.Metadata().Name
	if _, exists := targets[name]; exists {
		panic(fmt.Sprintf("target %q already registered", name))
	}
	targets[name] = g
}

// Lookup returns the generator registered for target.
func Lookup(target string) (Generator, error) {
	mu.RLock()
	g, ok := targets[target]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown target %q (available: %s)", target, strings.Join(Targets(), ", "))
	}
	return g, nil
}

// Targets returns the registered target names, sorted.
func Targets() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Reset clears the registry (for testing).
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	targets = make(map[string]Generator)
}
