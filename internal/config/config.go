// Package config loads the server's static configuration using viper, with
// a config.toml on disk as the source of truth and environment variables as
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// ServerConfig is the top-level on-disk configuration, written as TOML.
type ServerConfig struct {
	IP   string `mapstructure:"ip"`
	Port uint16 `mapstructure:"port"`

	MaxPlayers   int `mapstructure:"max_players"`
	ViewDistance int `mapstructure:"view_distance"`

	CompressionThreshold int `mapstructure:"compression_threshold"`

	MOTD string `mapstructure:"motd"`

	MetricsListen string `mapstructure:"metrics_listen"`

	// PluginHostAddr, if set, is a TCP address an external plugin
	// process listens on; each Play-state session dials it and opens a
	// yamux session for plugin-channel forwarding instead of using an
	// in-process loopback bus.
	PluginHostAddr string `mapstructure:"plugin_host_addr"`
}

// defaults mirrors ServerSettings::default() in spirit, extended with the
// fields this server adds beyond ip/port.
func defaults() ServerConfig {
	return ServerConfig{
		IP:                   "127.0.0.1",
		Port:                 25565,
		MaxPlayers:           20,
		ViewDistance:         10,
		CompressionThreshold: 256,
		MOTD:                 "An orewire server",
		MetricsListen:        ":9123",
	}
}

// Load reads path (creating it with defaults if absent, and falling back
// to the defaults with a logged warning if it cannot be parsed), applying
// ORW_-prefixed environment variable overrides on top.
func Load(path string) (*ServerConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	def := defaults()
	v.SetDefault("ip", def.IP)
	v.SetDefault("port", def.Port)
	v.SetDefault("max_players", def.MaxPlayers)
	v.SetDefault("view_distance", def.ViewDistance)
	v.SetDefault("compression_threshold", def.CompressionThreshold)
	v.SetDefault("motd", def.MOTD)
	v.SetDefault("metrics_listen", def.MetricsListen)
	v.SetDefault("plugin_host_addr", def.PluginHostAddr)

	v.SetEnvPrefix("ORW")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			logrus.WithError(err).Warn("config file is malformed, using defaults")
		} else {
			if err := Save(path, &def); err != nil {
				return nil, fmt.Errorf("write default config: %w", err)
			}
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read freshly written config: %w", err)
			}
		}
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Save writes cfg to path as TOML, overwriting any existing file.
func Save(path string, cfg *ServerConfig) error {
	v := viper.New()
	v.SetConfigType("toml")
	v.Set("ip", cfg.IP)
	v.Set("port", cfg.Port)
	v.Set("max_players", cfg.MaxPlayers)
	v.Set("view_distance", cfg.ViewDistance)
	v.Set("compression_threshold", cfg.CompressionThreshold)
	v.Set("motd", cfg.MOTD)
	v.Set("metrics_listen", cfg.MetricsListen)
	v.Set("plugin_host_addr", cfg.PluginHostAddr)
	return v.WriteConfigAs(path)
}

// Watch starts watching path for changes, invoking onChange with the
// reloaded config each time it's rewritten on disk. The returned function
// stops the watch.
func Watch(path string, onChange func(*ServerConfig)) (stop func() error, err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					continue
				}
				onChange(cfg)
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return watcher.Close, nil
}
