package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "cadence"

type Config struct {
	AudioFolder string `koanf:"audio_folder"` // default: XDG music dir
	VideoFolder string `koanf:"video_folder"` // default: XDG videos dir

	Log LogConfig `koanf:"log"`

	// mpv settings for the video backend
	MPV MPVConfig `koanf:"mpv"`

	Notifications *bool `koanf:"notifications"` // desktop "now playing" (default: true)
	MPRIS         *bool `koanf:"mpris"`         // media keys over D-Bus (default: true)
	Resume        *bool `koanf:"resume"`        // restore last track on start (default: true)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `koanf:"level"` // "trace" ... "error" (default: "info")
	File  bool   `koanf:"file"`  // log to the XDG state dir instead of stderr
	JSON  bool   `koanf:"json"`
}

// MPVConfig holds mpv configuration.
type MPVConfig struct {
	Binary string   `koanf:"binary"` // default: "mpv" on PATH
	Args   []string `koanf:"args"`   // extra arguments appended to the defaults
}

// Load reads the user config file then ./config.toml.
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given files in order; later files override earlier
// ones. Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		AudioFolder: xdg.UserDirs.Music,
		VideoFolder: xdg.UserDirs.Videos,
		Log:         LogConfig{Level: "info"},
		MPV:         MPVConfig{Binary: "mpv"},
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.AudioFolder = expandPath(cfg.AudioFolder)
	cfg.VideoFolder = expandPath(cfg.VideoFolder)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.MPV.Binary == "" {
		cfg.MPV.Binary = "mpv"
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/cadence/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func enabled(b *bool) bool {
	return b == nil || *b
}

// NotificationsEnabled reports whether desktop notifications are on.
func (c *Config) NotificationsEnabled() bool { return enabled(c.Notifications) }

// MPRISEnabled reports whether the MPRIS server should run.
func (c *Config) MPRISEnabled() bool { return enabled(c.MPRIS) }

// ResumeEnabled reports whether the last session is restored.
func (c *Config) ResumeEnabled() bool { return enabled(c.Resume) }

// Folder returns the configured folder for the media kind name ("audio" or
// "video").
func (c *Config) Folder(kind string) string {
	if kind == "video" {
		return c.VideoFolder
	}
	return c.AudioFolder
}
