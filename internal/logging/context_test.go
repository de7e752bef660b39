// Movieseed - MovieLens Bulk Seed Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieseed

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestGenerateRunID(t *testing.T) {
	t.Parallel()

	id1 := GenerateRunID()
	id2 := GenerateRunID()

	if len(id1) != 8 {
		t.Errorf("expected 8-character run ID, got %d", len(id1))
	}
	if id1 == id2 {
		t.Error("expected unique run IDs")
	}
}

func TestRunIDContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if got := RunIDFromContext(ctx); got != "" {
		t.Errorf("expected empty run ID, got %q", got)
	}

	ctx = ContextWithRunID(ctx, "run-1234")
	if got := RunIDFromContext(ctx); got != "run-1234" {
		t.Errorf("RunIDFromContext() = %q, want run-1234", got)
	}

	ctx = ContextWithNewRunID(context.Background())
	if got := RunIDFromContext(ctx); len(got) != 8 {
		t.Errorf("expected generated run ID, got %q", got)
	}
}

func TestCtx_AddsRunID(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	ctx = ContextWithRunID(ctx, "abc12345")

	Ctx(ctx).Info().Msg("with run")

	output := buf.String()
	if !strings.Contains(output, `"run_id":"abc12345"`) {
		t.Errorf("expected run_id field, got: %s", output)
	}
}

func TestCtx_WithoutRunID(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))

	Ctx(ctx).Info().Msg("plain")

	output := buf.String()
	if strings.Contains(output, "run_id") {
		t.Errorf("did not expect run_id field, got: %s", output)
	}
	if !strings.Contains(output, "plain") {
		t.Errorf("expected message, got: %s", output)
	}
}

func TestLoggerFromContext_FallsBackToGlobal(t *testing.T) {
	var buf bytes.Buffer
	original := Logger()
	defer SetLogger(original)
	SetLogger(NewTestLogger(&buf))

	logger := LoggerFromContext(context.Background())
	logger.Info().Msg("global")

	if !strings.Contains(buf.String(), "global") {
		t.Errorf("expected global logger to be used, got: %s", buf.String())
	}
}

func TestContextWithComponent(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	ctx = ContextWithRunID(ctx, "abc12345")
	ctx = ContextWithComponent(ctx, "aggregation")

	Ctx(ctx).Info().Msg("tagged")

	output := buf.String()
	if !strings.Contains(output, `"component":"aggregation"`) {
		t.Errorf("expected component field, got: %s", output)
	}
	if !strings.Contains(output, `"run_id":"abc12345"`) {
		t.Errorf("expected run_id field, got: %s", output)
	}
}
