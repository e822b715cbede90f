package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/cricklet/reversigo/internal/helpers"
	"github.com/cricklet/reversigo/internal/session"
	"github.com/stretchr/testify/assert"
)

func writeFile(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "config.json")
	assert.Nil(t, os.WriteFile(path, []byte(contents), 0664))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	config := DefaultConfig
	assert.True(t, IsNil(config.Validate()))
	assert.Equal(t, [2]session.PlayerKind{session.Human, session.Human}, config.PlayerKinds())
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeFile(t, `{"players": {"white": "computer"}, "log": {"quiet": true}}`)

	config, err := Load(path)
	assert.True(t, IsNil(err))
	assert.Equal(t, "human", config.Players.Black)
	assert.Equal(t, "computer", config.Players.White)
	assert.Equal(t, 8002, config.Server.Port)
	assert.True(t, config.Log.Quiet)
	assert.Equal(t, [2]session.PlayerKind{session.Human, session.Computer}, config.PlayerKinds())
}

func TestLoadRejectsInvalid(t *testing.T) {
	for _, contents := range []string{
		`{"players": {"black": "robot"}}`,
		`{"server": {"port": 70000}}`,
		`{not json`,
	} {
		_, err := Load(writeFile(t, contents))
		assert.False(t, IsNil(err), contents)
		assert.True(t, errors.Is(err, ErrInvalidConfig), contents)
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.False(t, IsNil(err))
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	config := DefaultConfig
	config.Players.Black = "computer"
	assert.True(t, IsNil(saveCfgFile(path, &config, 0664)))

	loaded, err := Load(path)
	assert.True(t, IsNil(err))
	assert.Equal(t, config, *loaded)
}
