package application

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solver/internal/config"
)

func TestRunApp(t *testing.T) {
	t.Run("Missing redis host", func(t *testing.T) {
		// Given: a config with a port but no redis host
		logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
		conf := &config.Config{HTTPPort: "0", Redis: config.Redis{Port: "6379"}}

		// When: the app starts
		err := RunApp(logger, conf)

		// Then: it stops before dialing redis
		require.ErrorIs(t, err, ErrAddrNotFound)
	})
}
