package repomanager

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/eventdesk/internal/logging"
)

// gooseLogger adapts logging.Logger to goose.Logger.
type gooseLogger struct {
	ctx context.Context
	log logging.Logger
}

// exit is a test seam for os.Exit.
var exit = os.Exit

func (g gooseLogger) Printf(format string, v ...any) {
	g.log.Info(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.log.Error(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
	exit(1)
}
