// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple", input: "Science Fiction", want: "science-fiction"},
		{name: "accents stripped", input: "Café Littéraire", want: "cafe-litteraire"},
		{name: "punctuation collapsed", input: "Rock & Roll!!", want: "rock-roll"},
		{name: "already a slug", input: "drama", want: "drama"},
		{name: "leading and trailing noise", input: "  --Movies--  ", want: "movies"},
		{name: "digits kept", input: "Top 10 Books", want: "top-10-books"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, From(tt.input))
		})
	}
}
