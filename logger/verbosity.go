package logger

import "go.uber.org/zap/zapcore"

// -v counts, shared by the command line and log.verbosity.
const (
	VerbosityQuiet = 0 // reports and warnings
	VerbosityInfo  = 1 // pass summaries, reloads
	VerbosityDebug = 2 // per-rule findings, endpoint traversal
)

// VerbosityToLevel maps a -v count to the lowest level that is written.
func VerbosityToLevel(verbosity int) zapcore.Level {
	if verbosity >= VerbosityDebug {
		return zapcore.DebugLevel
	}
	if verbosity == VerbosityInfo {
		return zapcore.InfoLevel
	}
	return zapcore.WarnLevel
}
