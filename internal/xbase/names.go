// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package xbase

import (
	"regexp"
	"strings"
)

// wordPattern is xcb's name splitting pattern without its trailing
// (?![a-z]) lookahead, which RE2 lacks. Split restores it by hand.
var wordPattern = regexp.MustCompile(`^(?:[A-Z0-9][a-z]+|[A-Z0-9]+|[a-z]+)`)

// singleWords are compounds that must survive splitting as one word.
var singleWords = []string{"DECnet"}

// Split breaks a protocol identifier into words the way xcb's C binding
// generator does: "QueryTree" -> [Query Tree], "CHAR2B" -> [CHAR2B],
// "GetXIDRange" -> [Get XID Range], "DECnet" -> [DECnet].
// Characters outside [A-Za-z0-9] separate words and are dropped.
func Split(name string) []string {
	var words []string
	for i := 0; i < len(name); {
		if w := singleWordAt(name[i:]); w != "" {
			words = append(words, w)
			i += len(w)
			continue
		}
		loc := wordPattern.FindStringIndex(name[i:])
		if loc == nil {
			i++
			continue
		}
		end := i + loc[1]
		// A capital run directly followed by a lowercase letter gives up
		// its last capital to the next word.
		if end < len(name) && isLower(name[end]) && !isLower(name[end-1]) {
			end--
		}
		words = append(words, name[i:end])
		i = end
	}
	return words
}

func singleWordAt(s string) string {
	for _, w := range singleWords {
		if strings.HasPrefix(s, w) {
			return w
		}
	}
	return ""
}

func isLower(c byte) bool { return 'a' <= c && c <= 'z' }

// Lower joins words as lower_snake_case.
func Lower(words []string) string {
	return strings.ToLower(strings.Join(words, "_"))
}

// Upper joins words as UPPER_SNAKE_CASE.
func Upper(words []string) string {
	return strings.ToUpper(strings.Join(words, "_"))
}

// Camel joins words without separator and uppercases the first letter.
func Camel(words []string) string {
	return Capitalize(strings.Join(words, ""))
}

// Capitalize returns name with its first ASCII letter uppercased.
func Capitalize(name string) string {
	if name == "" || !isLower(name[0]) {
		return name
	}
	return string(name[0]-'a'+'A') + name[1:]
}

// multiWordExtensions are extension names that xcb splits into words.
// Every other extension name is a single word.
var multiWordExtensions = map[string]bool{
	"XPrint":      true,
	"XCMisc":      true,
	"BigRequests": true,
}

// ExtensionWords returns the words an extension contributes to the names
// of its definitions. name is the extension-name attribute, e.g. "RandR".
func ExtensionWords(name string) []string {
	if name == "" {
		return nil
	}
	if multiWordExtensions[name] {
		return Split(name)
	}
	return []string{name}
}
