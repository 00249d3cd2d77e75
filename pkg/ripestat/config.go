/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package ripestat

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/carverauto/rsaw/pkg/models"
	"github.com/carverauto/rsaw/pkg/version"
)

const (
	DefaultBaseURL = "https://stat.ripe.net/data"
	DefaultTimeout = 30 * time.Second
)

// Config configures a Client.
type Config struct {
	BaseURL   string          `json:"base_url"`
	SourceApp string          `json:"source_app"` // sent as sourceapp, identifies the caller to RIPE NCC
	Timeout   models.Duration `json:"timeout"`
	UserAgent string          `json:"user_agent"`
}

// DefaultConfig returns a Config pointing at the public RIPEstat API.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   models.Duration(DefaultTimeout),
		UserAgent: version.UserAgent(),
	}
}

// applyDefaults fills zero-valued fields from DefaultConfig.
func (c *Config) applyDefaults() {
	d := DefaultConfig()

	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}

	if c.Timeout == 0 {
		c.Timeout = d.Timeout
	}

	if c.UserAgent == "" {
		c.UserAgent = d.UserAgent
	}

	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
}

// Validate implements config.Validator.
func (c *Config) Validate() error {
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil {
			return fmt.Errorf("%w: base_url: %w", ErrInvalidConfig, err)
		}

		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("%w: base_url must be http(s), got %q", ErrInvalidConfig, c.BaseURL)
		}

		if u.Host == "" {
			return fmt.Errorf("%w: base_url has no host", ErrInvalidConfig)
		}
	}

	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}

	return nil
}
