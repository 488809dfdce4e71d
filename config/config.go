package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/adrg/xdg"

	"termsuji-chess/logging"
)

var (
	cfgFile = "termsuji-chess/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	LightSquare int `json:"light"`
	DarkSquare  int `json:"dark"`
	WhitePiece  int `json:"white_piece"`
	BlackPiece  int `json:"black_piece"`
	Marker      int `json:"marker"`
	CursorBG    int `json:"cursor_bg"`
	SelectedBG  int `json:"selected_bg"`
}

type Theme struct {
	DrawCoordinates bool         `json:"draw_coordinates"`
	Colors          ConfigColors `json:"colors"`
}

// ServerConfig holds the game server connection settings.
type ServerConfig struct {
	URL            string `json:"url"`
	TimeoutSeconds int    `json:"timeout_seconds"` // 0 waits forever
	Fog            bool   `json:"fog"`             // initial perspective mode
}

// Timeout returns the HTTP timeout as a duration.
func (s ServerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

type Config struct {
	Theme    Theme        `json:"theme"`
	Server   ServerConfig `json:"server"`
	LogLevel string       `json:"log_level"`
}

func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if err := ValidateServerURL(c.Server.URL); err != nil {
		return err
	}
	if c.Server.TimeoutSeconds < 0 {
		return &InvalidConfig{"server timeout must not be negative"}
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return &InvalidConfig{err.Error()}
	}
	colors := c.Theme.Colors
	for _, code := range []int{colors.LightSquare, colors.DarkSquare, colors.WhitePiece, colors.BlackPiece,
		colors.Marker, colors.CursorBG, colors.SelectedBG} {
		if code < 0 || code > 255 {
			return &InvalidConfig{fmt.Sprintf("color %d is outside the 256-color palette", code)}
		}
	}
	return nil
}

// ValidateServerURL checks that raw is an absolute http(s) URL.
func ValidateServerURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return &InvalidConfig{fmt.Sprintf("server url: %s", err)}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &InvalidConfig{fmt.Sprintf("server url %q must be an absolute http or https URL", raw)}
	}
	return nil
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %s", filePath, err)}
	}
	return nil
}
