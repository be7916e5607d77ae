package logger

import "go.uber.org/zap/zapcore"

// Verbosity level constants for CLI flag counts.
//
// These levels control what a generation run reports, not just log severity:
//
//	0 (none): updated/removed files and errors only
//	1 (-v):   + per-source-file export listings
//	2 (-vv):  + commit decisions and translator fallbacks
const (
	VerbosityUser  = 0 // No flags: results and errors only
	VerbosityInfo  = 1 // -v: + exports per scanned file
	VerbosityDebug = 2 // -vv: + commit decisions, skipped generators
)

// VerbosityToLevel maps verbosity flags (-v, -vv) to zap log levels.
//
// Warnings always surface: a default-value translation failure at
// verbosity 0 must still be visible (it changes the generated R function).
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch verbosity {
	case VerbosityUser:
		return zapcore.WarnLevel
	case VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
