package helpers

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ZapLogger routes Logger calls to a zap logger at info level. Fields given
// to With are attached to every entry.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

var _ Logger = (*ZapLogger)(nil)

func NewZapLogger(z *zap.Logger) *ZapLogger {
	return &ZapLogger{sugar: z.Sugar()}
}

func (l *ZapLogger) With(fields ...zap.Field) *ZapLogger {
	return &ZapLogger{sugar: l.sugar.Desugar().With(fields...).Sugar()}
}

func (l *ZapLogger) Println(v ...any) {
	l.sugar.Info(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}
func (l *ZapLogger) Printf(format string, v ...any) {
	l.sugar.Info(strings.TrimSuffix(fmt.Sprintf(format, v...), "\n"))
}
func (l *ZapLogger) Print(v ...any) {
	l.sugar.Info(fmt.Sprint(v...))
}

func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}
