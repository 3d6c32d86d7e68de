package config

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LoggerConfig struct {
	Level   string
	Env     string
	Service string
}

func (c *Config) Logger() LoggerConfig {
	return LoggerConfig{
		Level:   c.LogLevel,
		Env:     c.Env,
		Service: c.Telemetry.ServiceName,
	}
}

func NewLogger(cfg LoggerConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Env == "prod" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		var err error
		if level, err = zapcore.ParseLevel(cfg.Level); err != nil {
			return nil, err
		}
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}

	if cfg.Service != "" {
		logger = logger.With(zap.String("service", cfg.Service))
	}

	return logger, nil
}
