package repomanager

import (
	"bytes"
	"context"
	"testing"

	"github.com/dmitrijs2005/eventdesk/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestGooseLogger(t *testing.T) {
	var buf bytes.Buffer
	g := gooseLogger{ctx: context.Background(), log: logging.New(logging.FormatText, "info", &buf)}

	g.Printf("OK   %s (%s)\n", "00001_init.sql", "1ms")
	assert.Contains(t, buf.String(), `msg="OK   00001_init.sql (1ms)"`)

	var code int
	orig := exit
	exit = func(c int) { code = c }
	defer func() { exit = orig }()

	g.Fatalf("broken %d", 7)
	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), `msg="broken 7"`)
}
