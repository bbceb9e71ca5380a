// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", url: "/titles", wantLimit: DefaultLimit, wantOffset: 0},
		{name: "explicit values", url: "/titles?limit=5&offset=40", wantLimit: 5, wantOffset: 40},
		{name: "excessive limit falls back", url: "/titles?limit=5000", wantLimit: DefaultLimit, wantOffset: 0},
		{name: "negative offset clamped", url: "/titles?offset=-3", wantLimit: DefaultLimit, wantOffset: 0},
		{name: "zero limit falls back", url: "/titles?limit=0", wantLimit: DefaultLimit, wantOffset: 0},
		{name: "garbage ignored", url: "/titles?limit=abc&offset=xyz", wantLimit: DefaultLimit, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", tt.url, nil)
			params := FromRequest(request)
			assert.Equal(t, tt.wantLimit, params.Limit)
			assert.Equal(t, tt.wantOffset, params.Offset)
		})
	}
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(Params{Limit: 10, Offset: 20}, 57)
	assert.Equal(t, 10, meta.Limit)
	assert.Equal(t, 20, meta.Offset)
	assert.Equal(t, 57, meta.Total)
}
