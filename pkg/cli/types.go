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

package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/carverauto/rsaw/pkg/logger"
	"github.com/carverauto/rsaw/pkg/ripestat"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

// CmdConfig holds the parsed command line.
type CmdConfig struct {
	Help       bool
	SubCmd     string
	Args       []string
	ConfigFile string
	DotEnvFile string
	Resource   string
	Params     ripestat.Params
	Format     string
	ASNDB      string
	SourceApp  string
	BaseURL    string
	Debug      bool
}

// AppConfig is the on-disk (or environment) configuration of rsaw.
type AppConfig struct {
	RIPEstat    ripestat.Config    `json:"ripestat"`
	Logging     *logger.Config     `json:"logging"`
	Tracing     *logger.OTelConfig `json:"tracing"`
	ASNDatabase string             `json:"asn_database"`
}

// Validate implements config.Validator.
func (c *AppConfig) Validate() error {
	return c.RIPEstat.Validate()
}

// paramsFlag collects repeated -param key=value flags.
type paramsFlag struct {
	params *ripestat.Params
}

func (p paramsFlag) String() string {
	if p.params == nil || len(*p.params) == 0 {
		return ""
	}

	pairs := make([]string, 0, len(*p.params))
	for k, v := range *p.params {
		pairs = append(pairs, k+"="+v)
	}

	sort.Strings(pairs)

	return strings.Join(pairs, ",")
}

func (p paramsFlag) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	key = strings.TrimSpace(key)

	if !ok || key == "" {
		return fmt.Errorf("%w: %q (expected key=value)", errInvalidParam, value)
	}

	if key == "resource" {
		return fmt.Errorf("%w: use -resource instead of -param resource=", errInvalidParam)
	}

	if *p.params == nil {
		*p.params = ripestat.Params{}
	}

	(*p.params)[key] = strings.TrimSpace(val)

	return nil
}
