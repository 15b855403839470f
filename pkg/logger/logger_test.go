package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}
}

func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithWriter(&buf); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := context.Background()
	Get().Info(ctx, "prediction served", String("developer", "Nintendo"), Float64("score", 8.7))

	out := buf.String()
	if !strings.Contains(out, "prediction served") {
		t.Errorf("expected message in output, got: %s", out)
	}
	if !strings.Contains(out, "developer=Nintendo") {
		t.Errorf("expected field in output, got: %s", out)
	}
	if !strings.Contains(out, "source=") {
		t.Errorf("expected caller annotation in output, got: %s", out)
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithWriter(&buf); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := context.Background()

	// Debug is filtered at the default info level.
	Get().Debug(ctx, "hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug message logged at info level")
	}

	if err := SetLevelString("debug"); err != nil {
		t.Fatalf("failed to set level: %v", err)
	}
	Get().Debug(ctx, "visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("debug message missing at debug level")
	}

	if err := SetLevelString("nonsense"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNamedLogger(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithWriter(&buf); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	named := Named("assembler")
	if named == nil {
		t.Fatal("named logger is nil")
	}
	named.Info(context.Background(), "built vector", Int("features", 10))
	if !strings.Contains(buf.String(), "built vector") {
		t.Error("named logger did not write")
	}
}
