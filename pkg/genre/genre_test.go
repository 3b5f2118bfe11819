// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/encore/pkg/genre"
)

/*
TestRoundTrip checks decode(encode(L)) == L, including the empty list.
*/
func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		genres []string
	}{
		{"empty", []string{}},
		{"single", []string{"Jazz"}},
		{"many", []string{"Jazz", "Reggae", "Swing", "Classical", "Folk"}},
		{"spaces_and_symbols", []string{"Rock n Roll", "R&B", "Hip-Hop"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.genres, genre.Decode(genre.Encode(tt.genres)))
		})
	}
}

func TestEncode(t *testing.T) {
	assert.Equal(t, "{}", genre.Encode(nil))
	assert.Equal(t, "{}", genre.Encode([]string{}))
	assert.Equal(t, "{Jazz,Folk}", genre.Encode([]string{"Jazz", "Folk"}))
}

/*
TestDecode_EmptyNeverYieldsBlankElement guards against the naive
strip-then-split result of [""] for records without genres.
*/
func TestDecode_EmptyNeverYieldsBlankElement(t *testing.T) {
	for _, stored := range []string{"", "{}", " { } ", "{,}", `{""}`} {
		decoded := genre.Decode(stored)
		require.NotNil(t, decoded, "stored=%q", stored)
		assert.Empty(t, decoded, "stored=%q", stored)
	}
}

func TestDecode_LegacyForms(t *testing.T) {
	assert.Equal(t, []string{"Jazz", "Folk"}, genre.Decode("Jazz,Folk"))
	assert.Equal(t, []string{"Rock n Roll", "Pop"}, genre.Decode(`{"Rock n Roll",Pop}`))
	assert.Equal(t, []string{"Blues", "Soul"}, genre.Decode("{Blues, Soul}"))
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		input string
		want  string
		found bool
	}{
		{"jazz", "Jazz", true},
		{"HIP HOP", "Hip-Hop", true},
		{"rock-n-roll", "Rock n Roll", true},
		{"r&b", "R&B", true},
		{"r and b", "R&B", true},
		{"polka", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := genre.Canonical(tt.input)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize(t *testing.T) {
	canonical, rejected := genre.Normalize([]string{"jazz", "Jazz", "folk", "polka"})

	assert.Equal(t, []string{"Jazz", "Folk"}, canonical)
	assert.Equal(t, []string{"polka"}, rejected)

	canonical, rejected = genre.Normalize(nil)
	assert.NotNil(t, canonical)
	assert.Empty(t, canonical)
	assert.Nil(t, rejected)
}

func TestCatalogue_IsCopy(t *testing.T) {
	list := genre.Catalogue()
	require.NotEmpty(t, list)
	list[0] = "Mutated"
	assert.NotEqual(t, "Mutated", genre.Catalogue()[0])
}
