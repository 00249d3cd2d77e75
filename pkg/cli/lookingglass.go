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
	"context"
	"fmt"
	"io"

	"github.com/carverauto/rsaw/pkg/config"
	"github.com/carverauto/rsaw/pkg/geoip"
	"github.com/carverauto/rsaw/pkg/logger"
	"github.com/carverauto/rsaw/pkg/ripestat"
	"github.com/carverauto/rsaw/pkg/ripestat/lookingglass"
	"github.com/carverauto/rsaw/pkg/version"
)

// LoadAppConfig builds the effective configuration: built-in defaults, then
// the .env file, the config source selected by CONFIG_SOURCE and finally the
// command line flags.
func LoadAppConfig(ctx context.Context, cfg *CmdConfig) (*AppConfig, error) {
	if err := config.LoadDotEnv(cfg.DotEnvFile); err != nil {
		return nil, err
	}

	tracing := logger.DefaultOTelConfig()

	app := &AppConfig{
		RIPEstat: *ripestat.DefaultConfig(),
		Logging:  logger.DefaultConfig(),
		Tracing:  &tracing,
	}

	if err := config.NewConfig(nil).LoadAndValidate(ctx, cfg.ConfigFile, app); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if cfg.SourceApp != "" {
		app.RIPEstat.SourceApp = cfg.SourceApp
	}

	if cfg.BaseURL != "" {
		app.RIPEstat.BaseURL = cfg.BaseURL
	}

	if cfg.ASNDB != "" {
		app.ASNDatabase = cfg.ASNDB
	}

	if cfg.Debug {
		if app.Logging == nil {
			app.Logging = logger.DefaultConfig()
		}

		app.Logging.Debug = true
	}

	if err := app.Validate(); err != nil {
		return nil, err
	}

	return app, nil
}

// RunLookingGlass handles the looking-glass subcommand.
func RunLookingGlass(ctx context.Context, cfg *CmdConfig, out io.Writer) error {
	app, err := LoadAppConfig(ctx, cfg)
	if err != nil {
		return err
	}

	if err := logger.Init(app.Logging); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	log := logger.Global()

	tp, err := logger.InitializeTracing(ctx, logger.TracingConfig{
		ServiceName:    "rsaw",
		ServiceVersion: version.GetVersion(),
		Logger:         log,
		OTel:           app.Tracing,
	})
	if err != nil {
		return err
	}

	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Failed to flush traces")
		}
	}()

	client, err := ripestat.NewClient(&app.RIPEstat, log)
	if err != nil {
		return err
	}

	var asn *geoip.ASNReader

	if app.ASNDatabase != "" {
		asn, err = geoip.OpenASN(app.ASNDatabase)
		if err != nil {
			return err
		}

		defer func() {
			if err := asn.Close(); err != nil {
				log.Warn().Err(err).Str("path", app.ASNDatabase).Msg("Failed to close ASN database")
			}
		}()
	}

	return queryLookingGlass(ctx, &lookingGlassQuery{
		getter: client,
		asn:    asn,
		log:    log,
		out:    out,
	}, cfg)
}

type lookingGlassQuery struct {
	getter ripestat.Getter
	asn    *geoip.ASNReader
	log    logger.Logger
	out    io.Writer
}

func queryLookingGlass(ctx context.Context, q *lookingGlassQuery, cfg *CmdConfig) error {
	lg, err := lookingglass.New(ctx, q.getter, cfg.Resource, cfg.Params)
	if err != nil {
		return fmt.Errorf("looking-glass %s: %w", cfg.Resource, err)
	}

	q.log.Info().
		Str("resource", cfg.Resource).
		Int("rrcs", lg.Len()).
		Int("peers", len(lg.Peers())).
		Bool("cached", lg.Output().Cached).
		Msg("Looking glass query finished")

	if cfg.Format == formatJSON {
		return renderJSON(q.out, cfg.Resource, lg, q.asn)
	}

	return renderTable(q.out, cfg.Resource, lg, q.asn)
}
