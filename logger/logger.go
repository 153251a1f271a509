package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the process-wide logger. It discards everything until
	// Initialize is called.
	Logger = zap.NewNop().Sugar()

	// JSONOutput reports whether Initialize chose the JSON encoder.
	JSONOutput bool

	mu    sync.Mutex
	level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	floor int
)

// Initialize installs the global logger. verbosity is the -v count from the
// command line; SetVerbosity can raise it later but never lower it.
func Initialize(jsonOutput bool, verbosity int) error {
	return initializeTo(zapcore.Lock(os.Stderr), jsonOutput, verbosity)
}

// initializeTo builds the logger on top of w. Results go to stdout, so logs
// always go to a separate sink.
func initializeTo(w zapcore.WriteSyncer, jsonOutput bool, verbosity int) error {
	mu.Lock()
	defer mu.Unlock()

	floor = verbosity
	level.SetLevel(VerbosityToLevel(verbosity))
	JSONOutput = jsonOutput

	var enc zapcore.Encoder
	if jsonOutput {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.TimeKey = ""
		enc = zapcore.NewConsoleEncoder(cfg)
	}

	Logger = zap.New(zapcore.NewCore(enc, w, level)).Sugar()
	return nil
}

// SetVerbosity applies a verbosity from configuration. The level is the
// higher of v and the command-line verbosity, so a reloaded config can turn
// logging up or back down to where the flags left it.
func SetVerbosity(v int) {
	mu.Lock()
	defer mu.Unlock()
	if v < floor {
		v = floor
	}
	level.SetLevel(VerbosityToLevel(v))
}

// Enabled reports whether entries at lvl are currently written.
func Enabled(lvl zapcore.Level) bool {
	return level.Enabled(lvl)
}

// Cleanup flushes buffered entries.
func Cleanup() {
	_ = Logger.Sync()
}

// OrNop returns l, or a logger that discards everything when l is nil.
func OrNop(l *zap.SugaredLogger) *zap.SugaredLogger {
	if l == nil {
		return zap.NewNop().Sugar()
	}
	return l
}

func Infow(msg string, keysAndValues ...interface{}) {
	Logger.Infow(msg, keysAndValues...)
}

func Errorw(msg string, keysAndValues ...interface{}) {
	Logger.Errorw(msg, keysAndValues...)
}

func Warnw(msg string, keysAndValues ...interface{}) {
	Logger.Warnw(msg, keysAndValues...)
}

func Debugw(msg string, keysAndValues ...interface{}) {
	Logger.Debugw(msg, keysAndValues...)
}
