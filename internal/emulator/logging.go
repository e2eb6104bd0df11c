package emulator

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewAccessLogger writes JSON access log lines to the rotated file named by
// s.AccessLog, or to stderr.
func NewAccessLogger(s Settings) (*zap.Logger, error) {
	var out zapcore.WriteSyncer = zapcore.Lock(os.Stderr)

	if s.AccessLog != "" {
		if err := os.MkdirAll(filepath.Dir(s.AccessLog), 0o755); err != nil {
			return nil, fmt.Errorf("creating access log directory: %w", err)
		}
		out = zapcore.AddSync(&lumberjack.Logger{
			Filename:   s.AccessLog,
			MaxSize:    s.AccessLogMaxSizeMB,
			MaxBackups: s.AccessLogMaxBackups,
			Compress:   true,
			LocalTime:  true,
		})
	}

	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return zap.New(zapcore.NewCore(encoder, out, zap.InfoLevel)).Named("access"), nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// AccessLog logs one line per request after next has answered it.
func AccessLog(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("host", r.Host),
				zap.String("uri", r.URL.RequestURI()),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
