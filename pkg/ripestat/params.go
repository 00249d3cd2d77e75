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
	"maps"
	"net/url"
)

// Params holds the query parameters of a data call.
type Params map[string]string

// Encode returns the URL-encoded query string, sorted by key.
func (p Params) Encode() string {
	values := make(url.Values, len(p))
	for k, v := range p {
		values.Set(k, v)
	}

	return values.Encode()
}

// Clone returns a copy of p. Clone of a nil Params is an empty Params.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	maps.Copy(out, p)

	return out
}
