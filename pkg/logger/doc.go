// Package logger builds the application slog.Logger: JSON or text
// output, environment presets, and context extractors that stamp every
// record with request-scoped attributes such as the resolved trust key.
//
//	log := logger.New(
//		logger.WithEnvironment(os.Getenv("APP_ENV"), "schoolms"),
//		logger.WithContextExtractors(trust.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
package logger
