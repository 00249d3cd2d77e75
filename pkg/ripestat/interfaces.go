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
	"context"
	"net/http"
)

//go:generate mockgen -destination=mock_ripestat.go -package=ripestat github.com/carverauto/rsaw/pkg/ripestat HTTPClient,Getter

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Getter performs one RIPEstat data call. path is the data call path
// (e.g. "/looking-glass/") and params are sent as the query string.
type Getter interface {
	Get(ctx context.Context, path string, params Params) (*Output, error)
}
