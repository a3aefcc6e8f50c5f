package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Listen   string   `koanf:"listen"`
	Vault    Vault    `koanf:"vault"`
	Frontend Frontend `koanf:"frontend"`
	Views    Views    `koanf:"views"`
}

type Vault struct {
	// Path is the root directory of the markdown vault.
	Path string `koanf:"path"`
	// WatchDebounceMs is how long the watcher waits after the last file
	// change before publishing a refresh.
	WatchDebounceMs int `koanf:"watchdebouncems"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

type Views struct {
	// StorePath is the YAML file holding per-view display configuration.
	StorePath string `koanf:"storepath"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Listen: ":8484",
		Vault: Vault{
			Path:            "./vault",
			WatchDebounceMs: 400,
		},
		Frontend: Frontend{
			Enabled: true,
		},
		Views: Views{
			StorePath: "./config/views.yaml",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "NOTECAL_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "NOTECAL_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
