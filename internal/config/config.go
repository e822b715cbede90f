package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/adrg/xdg"

	. "github.com/cricklet/reversigo/internal/helpers"
	"github.com/cricklet/reversigo/internal/session"
)

var (
	cfgFile = "reversigo/config.json"
)

var ErrInvalidConfig = errors.New("config error")

type PlayersConfig struct {
	Black string `json:"black"`
	White string `json:"white"`
}

type ServerConfig struct {
	Port      int    `json:"port"`
	StaticDir string `json:"static_dir"`
}

type LogConfig struct {
	Development bool `json:"development"`
	Quiet       bool `json:"quiet"`
}

type Config struct {
	Players PlayersConfig `json:"players"`
	Server  ServerConfig  `json:"server"`
	Log     LogConfig     `json:"log"`
}

// InitConfig reads the config file from the XDG config directories over
// DefaultConfig. A missing file is not an error.
func InitConfig() (*Config, Error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		config := DefaultConfig
		return &config, Wrap(config.Validate())
	}
	return Load(absPath)
}

func Load(filePath string) (*Config, Error) {
	config := DefaultConfig
	err := readCfgFile(filePath, &config)
	if !IsNil(err) {
		return nil, err
	}
	err = config.Validate()
	if !IsNil(err) {
		return nil, err
	}
	return &config, NilError
}

func (c *Config) Validate() Error {
	for _, kind := range []string{c.Players.Black, c.Players.White} {
		if _, err := session.PlayerKindFromString(kind); !IsNil(err) {
			return Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return Errorf("%w: port %v out of range", ErrInvalidConfig, c.Server.Port)
	}
	return NilError
}

func (c *Config) PlayerKinds() [2]session.PlayerKind {
	black, _ := session.PlayerKindFromString(c.Players.Black)
	white, _ := session.PlayerKindFromString(c.Players.White)
	return [2]session.PlayerKind{black, white}
}

func (c *Config) Save() Error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return Wrap(err)
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) Error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return Wrap(err)
	}
	return Wrap(os.WriteFile(filePath, jsonData, perm))
}

func readCfgFile(filePath string, a interface{}) Error {
	data, readErr := WrapReturn(os.ReadFile(filePath))
	if !IsNil(readErr) {
		return readErr
	}
	err := json.Unmarshal(data, a)
	if err != nil {
		return Errorf("%w: %v: %v", ErrInvalidConfig, filePath, err)
	}
	return NilError
}
