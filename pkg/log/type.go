package log

import (
	"io"

	"go.uber.org/zap"
)

type ZapConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
	// Service is attached as the logger name (NAME key) when set.
	Service string
	// Output defaults to os.Stderr.
	Output io.Writer
}

type zapLogger struct {
	sugarLogger *zap.SugaredLogger
	cfg         *ZapConfig
}
