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
	"io"
)

// ShowHelp prints the usage text.
func ShowHelp(out io.Writer) {
	fmt.Fprint(out, `rsaw: RIPEstat data API client

Usage:
  rsaw <command> [options]

Commands:
  looking-glass    Show what the RIS route collectors see for a resource
  version          Print the rsaw version

Options for looking-glass:
  -resource string    prefix, IP address or ASN to query (may also be given as a positional argument)
  -param key=value    extra query parameter, repeatable (e.g. look_back_limit=3600)
  -format string      output format: table or json (default "table")
  -asn-db string      GeoLite2-ASN mmdb used to annotate peer routers with their AS
  -config string      path to rsaw.json
  -env-file string    .env file to load before reading the environment (default ".env")
  -sourceapp string   sourceapp identifier sent to RIPEstat
  -base-url string    RIPEstat data API base URL
  -debug              enable debug logging

Environment:
  CONFIG_SOURCE       "file" (default) or "env"
  CONFIG_ENV_PREFIX   prefix for env configuration (default "RSAW_"), e.g. RSAW_RIPESTAT_SOURCE_APP
  LOG_LEVEL, DEBUG, LOG_OUTPUT, LOG_TIME_FORMAT
  OTEL_TRACES_ENABLED, OTEL_EXPORTER_OTLP_TRACES_ENDPOINT

Examples:
  rsaw looking-glass -resource 140.78.0.0/16
  rsaw looking-glass -resource AS3333 -param look_back_limit=3600 -format json
  rsaw looking-glass -asn-db /usr/share/GeoIP/GeoLite2-ASN.mmdb 193.0.0.0/21
  rsaw looking-glass 193.0.0.0/21 -format json
`)
}
