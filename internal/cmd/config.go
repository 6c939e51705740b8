// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the content of a pkgres config file.
//
//	paths:
//	  - lib
//	  - bundle.zip
//	marker: __package__
//	debug: false
type Config struct {
	// Paths are the search roots. Relative paths are relative to the
	// directory of the config file.
	Paths  []string `yaml:"paths"`
	Marker string   `yaml:"marker"`
	Debug  bool     `yaml:"debug"`
}

// LoadConfig reads the YAML config file with the given name. Unknown keys
// are an error.
func LoadConfig(name string) (*Config, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var config Config

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config %s: %w", name, err)
	}

	dir := filepath.Dir(name)

	for idx, path := range config.Paths {
		if !filepath.IsAbs(path) {
			config.Paths[idx] = filepath.Join(dir, path)
		}
	}

	return &config, nil
}
