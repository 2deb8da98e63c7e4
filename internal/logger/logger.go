package logger

import (
	"go.uber.org/zap"

	"greenbasket/internal/config"
	"greenbasket/internal/database"
)

// NewLogger builds the application logger. Entries go to the console and,
// at warn level or above, to the app_logs collection via an async writer
// so a slow database never blocks a request.
func NewLogger(cfg *config.Config, mongodb *database.MongodbDB) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Environment == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.EncoderConfig.FunctionKey = "func"

	baseLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	writer := NewMongoLogWriter(mongodb, cfg)
	core := NewMongoCore(baseLogger.Core(), writer)

	return zap.New(core, zap.AddCaller()), nil
}
