package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Formats(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   string
	}{
		{name: "slog json", format: "json", want: `"msg":"hello"`},
		{name: "slog text", format: "text", want: "msg=hello"},
		{name: "zerolog json", format: "zerolog", want: `"message":"hello"`},
		{name: "console", format: "console", want: "hello"},
		{name: "unknown falls back to json", format: "xml", want: `"msg":"hello"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			New(tt.format, "info", &buf).Info(context.Background(), "hello", "k", "v")
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatZerolog} {
		var buf bytes.Buffer
		log := New(format, "warn", &buf)
		log.Info(context.Background(), "hidden")
		log.Warn(context.Background(), "shown")

		out := buf.String()
		assert.False(t, strings.Contains(out, "hidden"), format)
		assert.True(t, strings.Contains(out, "shown"), format)
	}
}

func TestNop(t *testing.T) {
	log := Nop().With("a", 1)
	log.Error(context.Background(), "nothing")
}
