/*
Package logger wraps uber-go/zap behind a small interface with verbosity
levels and structured fields.

Basic Usage:

	log := logger.NewLogger(logger.Config{
	    Verbosity: 0, // Info, Warn, Error
	})

	log.Info("Report written")
	log.Debug("Entering directory") // verbosity >= 1
	log.Trace("Classified file")    // verbosity >= 2

Verbosity Levels:

	0: Info, Warn, Error (default)
	1: Debug + Level 0
	2: Trace + Level 1

Trace entries are written at debug level with a "TRACE: " message prefix.

Structured Logging:

	log.WithFields(logger.Fields{
	    "path":  "src/main.cpp",
	    "bytes": 2048,
	}).Debug("File copied into report")

Output Example (JSON, the default format):

	{"level":"debug","ts":"2024-01-20T15:04:05.000Z","message":"File copied into report","path":"src/main.cpp","bytes":2048}

With Format set to FormatConsole entries are written as tab separated text
with a coloured level, which is easier to read on a terminal.

Logs always go to stderr unless Output says otherwise; the report file never
contains log lines.
*/
package logger
