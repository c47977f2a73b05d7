package logger

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/config"
)

func TestInit(t *testing.T) {
	level, formatter := log.GetLevel(), log.StandardLogger().Formatter
	defer func() {
		log.SetLevel(level)
		log.SetFormatter(formatter)
	}()

	Init(config.LoggerConfig{Level: "debug", Format: "json"})
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	assert.IsType(t, &log.JSONFormatter{}, log.StandardLogger().Formatter)

	Init(config.LoggerConfig{Level: "loud", Format: "text"})
	assert.Equal(t, log.InfoLevel, log.GetLevel())
	assert.IsType(t, &log.TextFormatter{}, log.StandardLogger().Formatter)
}

func TestInitRestoresFormatter(t *testing.T) {
	before := log.StandardLogger().Formatter
	t.Run("init", TestInit)
	assert.Same(t, before, log.StandardLogger().Formatter)
}
