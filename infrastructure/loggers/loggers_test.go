package loggers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggers(t *testing.T) {
	t.Run("stdout logger with a valid level", func(t *testing.T) {
		logger, err := InitializeMultiLogger(true, "debug")
		assert.NoError(t, err, "error on InitializeMultiLogger: %v", err)
		assert.Len(t, logger.loggers, 1)
		logger.Info("sent %d of %d", 1, 2)
	})

	t.Run("no stdout logger", func(t *testing.T) {
		logger, err := InitializeMultiLogger(false, "info")
		assert.NoError(t, err, "error on InitializeMultiLogger: %v", err)
		assert.Empty(t, logger.loggers)
		logger.Warn("nobody hears this")
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := InitializeMultiLogger(true, "loud")
		assert.Error(t, err, "expected an error for an unknown level")
	})
}
