// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger_LevelFollowsDebugFlag(t *testing.T) {
	ctx := context.Background()

	quiet := newLogger(false)
	assert.True(t, quiet.Enabled(ctx, slog.LevelInfo))
	assert.False(t, quiet.Enabled(ctx, slog.LevelDebug))

	verbose := newLogger(true)
	assert.True(t, verbose.Enabled(ctx, slog.LevelDebug))
}
