// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/encore/pkg/query"
)

func TestContains(t *testing.T) {
	tests := []struct {
		term string
		want string
	}{
		{"", "%%"},
		{"Hop", "%Hop%"},
		{"100%", `%100\%%`},
		{"a_b", `%a\_b%`},
		{`c:\dir`, `%c:\\dir%`},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, query.Contains(tt.term))
		})
	}
}
