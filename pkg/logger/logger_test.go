package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetupJSONAndLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		Setup("info", "console")
	})

	Setup("warn", "json")

	log.Info().Msg("hidden")
	log.Warn().Str("component", "sweep").Msg("visible")

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Errorf("Expected info line to be filtered, got %q", got)
	}
	if !strings.Contains(got, `"message":"visible"`) || !strings.Contains(got, `"component":"sweep"`) {
		t.Errorf("Expected JSON warn line, got %q", got)
	}
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	t.Cleanup(func() { SetLevel("info") })

	SetLevel("loud")
	if Log.GetLevel() != zerolog.InfoLevel {
		t.Errorf("Expected info level, got %s", Log.GetLevel())
	}
	SetLevel("debug")
	if Log.GetLevel() != zerolog.DebugLevel {
		t.Errorf("Expected debug level, got %s", Log.GetLevel())
	}
}
