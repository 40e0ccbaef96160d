package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/ardanlabs/conf"
	"gopkg.in/yaml.v2"
)

type configuration struct {
	Web struct {
		Host            string        `conf:"default:0.0.0.0:3000" yaml:"host"`
		ReadTimeout     time.Duration `conf:"default:5s" yaml:"readTimeout"`
		WriteTimeout    time.Duration `conf:"default:10s" yaml:"writeTimeout"`
		ShutdownTimeout time.Duration `conf:"default:5s" yaml:"shutdownTimeout"`
	} `yaml:"web"`
	DB struct {
		Filename string `conf:"default:birding.db" yaml:"filename"`
	} `yaml:"db"`
	Sessions struct {
		// hex encoded; the hash key signs cookies, the optional block key encrypts them
		HashKey  string `conf:"default:60e49c1d3ee9443a83f221d4d3b22ea929c0d5f48e25d9bd0cbfa10e3dd26c65" yaml:"hashKey"`
		BlockKey string `yaml:"blockKey"`
	} `yaml:"sessions"`
	Debug bool `conf:"default:false" yaml:"debug"`
}

const configFile = "config.yml"

// loadConfiguration gathers settings from flags and the environment, letting a
// local YAML file override both during development.
func loadConfiguration() (cfg configuration, err error) {
	if err = conf.Parse(os.Args[1:], "BIRDING", &cfg); err != nil {
		return cfg, err
	}

	if contents, fileErr := os.ReadFile(configFile); fileErr == nil {
		if err = yaml.Unmarshal(contents, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", configFile, err)
		}
	}

	return cfg, nil
}

// sessionKeys decodes the configured cookie keys; a missing block key is legal
// and results in signed but unencrypted cookies.
func sessionKeys(cfg configuration) (hashKey, blockKey []byte, err error) {
	if hashKey, err = hex.DecodeString(cfg.Sessions.HashKey); err != nil {
		return nil, nil, fmt.Errorf("invalid sessions hash key: %w", err)
	}
	if cfg.Sessions.BlockKey == "" {
		return hashKey, nil, nil
	}
	if blockKey, err = hex.DecodeString(cfg.Sessions.BlockKey); err != nil {
		return nil, nil, fmt.Errorf("invalid sessions block key: %w", err)
	}
	return hashKey, blockKey, nil
}
