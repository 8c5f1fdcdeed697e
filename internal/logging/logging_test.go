package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/sapper/internal/config"
)

func TestNew(t *testing.T) {
	c := config.Default()
	log, err := New(c)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	c.Mode = "production"
	log, err = New(c)
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewWithFile(t *testing.T) {
	c := config.Default()
	c.Log.File = filepath.Join(t.TempDir(), "sapper.log")

	log, err := New(c)
	require.NoError(t, err)
	log.WithField("game_session_id", "abc").Info("hello")

	b, err := os.ReadFile(c.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
	assert.Contains(t, string(b), `"game_session_id":"abc"`)
}
