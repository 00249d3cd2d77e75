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

// Package cli implements the rsaw command line.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/carverauto/rsaw/pkg/version"
)

// SubcommandHandler defines the interface for parsing subcommand flags.
type SubcommandHandler interface {
	Parse(args []string, cfg *CmdConfig) error
}

// LookingGlassHandler handles flags for the looking-glass subcommand.
type LookingGlassHandler struct{}

// Parse processes the command-line arguments for the looking-glass subcommand.
func (LookingGlassHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := flag.NewFlagSet("looking-glass", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	resource := fs.String("resource", "", "prefix, IP address or ASN to query")
	format := fs.String("format", formatTable, "output format: table or json")
	asnDB := fs.String("asn-db", "", "path to a GeoLite2-ASN mmdb used to annotate peers")
	configFile := fs.String("config", "", "path to rsaw.json config file")
	dotEnv := fs.String("env-file", "", "path to a .env file (default .env)")
	sourceApp := fs.String("sourceapp", "", "sourceapp identifier sent to RIPEstat")
	baseURL := fs.String("base-url", "", "RIPEstat data API base URL")
	debug := fs.Bool("debug", false, "enable debug logging")
	fs.Var(paramsFlag{params: &cfg.Params}, "param", "extra query parameter key=value (repeatable)")

	// flag stops at the first non-flag argument, so keep parsing after each
	// positional to accept "rsaw looking-glass 193.0.0.0/21 -format json".
	var positional []string

	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				cfg.Help = true
				return nil
			}

			return fmt.Errorf("parsing looking-glass flags: %w", err)
		}

		if fs.NArg() == 0 {
			break
		}

		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}

	switch {
	case len(positional) > 1:
		return fmt.Errorf("%w: %v", errUnexpectedArgs, positional[1:])
	case len(positional) == 1 && *resource != "":
		return fmt.Errorf("%w: %q given with -resource %q", errUnexpectedArgs, positional[0], *resource)
	case len(positional) == 1:
		*resource = positional[0]
	}

	if *resource == "" {
		return errMissingResource
	}

	if *format != formatTable && *format != formatJSON {
		return fmt.Errorf("%w: %q", errInvalidFormat, *format)
	}

	cfg.Resource = *resource
	cfg.Format = *format
	cfg.ASNDB = *asnDB
	cfg.ConfigFile = *configFile
	cfg.DotEnvFile = *dotEnv
	cfg.SourceApp = *sourceApp
	cfg.BaseURL = *baseURL
	cfg.Debug = *debug

	return nil
}

// VersionHandler handles the version subcommand.
type VersionHandler struct{}

// Parse accepts no flags.
func (VersionHandler) Parse(args []string, _ *CmdConfig) error {
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing version flags: %w", err)
	}

	return nil
}

func subcommands() map[string]SubcommandHandler {
	return map[string]SubcommandHandler{
		"looking-glass": LookingGlassHandler{},
		"version":       VersionHandler{},
	}
}

// ParseFlags parses the command line (without the program name).
func ParseFlags(args []string) (*CmdConfig, error) {
	cfg := &CmdConfig{Args: args}

	if len(args) == 0 {
		cfg.Help = true
		return cfg, nil
	}

	switch args[0] {
	case "-h", "-help", "--help", "help":
		cfg.Help = true
		return cfg, nil
	}

	cfg.SubCmd = args[0]

	handler, ok := subcommands()[cfg.SubCmd]
	if !ok {
		return cfg, fmt.Errorf("%w: %s", errUnknownSubcommand, cfg.SubCmd)
	}

	if err := handler.Parse(args[1:], cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Run executes the parsed command, writing results to out.
func Run(ctx context.Context, cfg *CmdConfig, out io.Writer) error {
	if cfg.Help {
		ShowHelp(out)
		return nil
	}

	switch cfg.SubCmd {
	case "looking-glass":
		return RunLookingGlass(ctx, cfg, out)
	case "version":
		_, err := fmt.Fprintf(out, "rsaw %s\n", version.GetFullVersion())
		return err
	default:
		return fmt.Errorf("%w: %s", errUnknownSubcommand, cfg.SubCmd)
	}
}
