// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package genre encodes genre lists into the single text column used by venues
and artists, and canonicalises user input against the genre catalogue.

# Storage Format

A list is stored as a brace-wrapped, comma-separated string:

	[]string{"Jazz", "Folk"} -> "{Jazz,Folk}"
	[]string{}               -> "{}"

[Decode] is total: it accepts anything [Encode] produces plus the legacy forms
seen in older rows (bare lists, quoted elements, empty strings). A value that
carries zero genres always decodes to an empty, non-nil slice.
*/
package genre

import (
	"strings"

	"github.com/taibuivan/encore/pkg/slug"
)

const (
	separator  = ","
	openBrace  = "{"
	closeBrace = "}"
)

// catalogue is the closed set of genres accepted on submissions.
var catalogue = []string{
	"Alternative",
	"Blues",
	"Classical",
	"Country",
	"Electronic",
	"Folk",
	"Funk",
	"Hip-Hop",
	"Heavy Metal",
	"Instrumental",
	"Jazz",
	"Musical Theatre",
	"Pop",
	"Punk",
	"R&B",
	"Reggae",
	"Rock n Roll",
	"Soul",
	"Other",
}

// bySlug indexes the catalogue for case and punctuation insensitive lookups.
var bySlug = func() map[string]string {
	index := make(map[string]string, len(catalogue))
	for _, name := range catalogue {
		index[key(name)] = name
	}
	return index
}()

// # Codec

// Encode joins genres into their stored representation.
func Encode(genres []string) string {
	return openBrace + strings.Join(genres, separator) + closeBrace
}

// Decode splits a stored value back into its genres.
func Decode(stored string) []string {
	inner := strings.TrimSpace(stored)
	inner = strings.TrimPrefix(inner, openBrace)
	inner = strings.TrimSuffix(inner, closeBrace)

	genres := []string{}
	for _, part := range strings.Split(inner, separator) {
		part = strings.Trim(strings.TrimSpace(part), `"`)
		if part != "" {
			genres = append(genres, part)
		}
	}
	return genres
}

// # Catalogue

// Catalogue returns a copy of every accepted genre name.
func Catalogue() []string {
	return append([]string(nil), catalogue...)
}

// Canonical resolves user input ("hip hop", "ROCK N ROLL") to its catalogue name.
func Canonical(name string) (string, bool) {
	canonical, ok := bySlug[key(name)]
	return canonical, ok
}

// Normalize maps every input to its catalogue name, dropping duplicates.
//
// It returns the canonical list (never nil) and the inputs that matched nothing.
func Normalize(names []string) (canonical []string, rejected []string) {
	canonical = []string{}
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		resolved, ok := Canonical(name)
		if !ok {
			rejected = append(rejected, name)
			continue
		}
		if seen[resolved] {
			continue
		}
		seen[resolved] = true
		canonical = append(canonical, resolved)
	}
	return canonical, rejected
}

// key reduces a genre to its slug; "&" is spelled out so "R&B" stays distinct.
func key(name string) string {
	return slug.From(strings.ReplaceAll(name, "&", " and "))
}
