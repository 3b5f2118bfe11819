// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/encore/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hip-Hop", "hip-hop"},
		{"hip hop", "hip-hop"},
		{"  HIP__HOP  ", "hip-hop"},
		{"Musical Theatre", "musical-theatre"},
		{"Café Tacvba", "cafe-tacvba"},
		{"Rock n' Roll", "rock-n-roll"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.in))
		})
	}
}
