// Package logger builds the zap logger shared by the server and the CLI.
//
// Level is parsed with zapcore (debug, info, warn, error); debug switches to
// zap's development preset. Format selects json or console encoding. Every
// entry carries service=gamedata-wiki.
//
// WithRayID attaches the request's ray id (see middleware/rayid) so that
// handler logs can be correlated with the X-Ray-ID response header.
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	l := logger.WithRayID(log, c)
//	l.Warn("Dataset missing", zap.String("dataset", name))
package logger
