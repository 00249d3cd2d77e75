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
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const statusOK = "ok"

// Output is the envelope wrapped around every RIPEstat data call response.
// Data is left raw; each data call decodes it into its own types.
type Output struct {
	URL            string            `json:"-"`
	Messages       [][]string        `json:"messages"`
	SeeAlso        []json.RawMessage `json:"see_also"`
	Version        string            `json:"version"`
	DataCallName   string            `json:"data_call_name,omitempty"`
	DataCallStatus string            `json:"data_call_status"`
	Cached         bool              `json:"cached"`
	Data           json.RawMessage   `json:"data"`
	QueryID        string            `json:"query_id"`
	ProcessTime    int               `json:"process_time"`
	ServerID       string            `json:"server_id"`
	BuildVersion   string            `json:"build_version"`
	Status         string            `json:"status"`
	StatusCode     int               `json:"status_code"`
	Time           string            `json:"time"`
}

// NewOutput decodes a response body fetched from url.
func NewOutput(url string, body []byte) (*Output, error) {
	var out Output

	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}

	out.URL = url

	return &out, nil
}

// OK reports whether the envelope describes a successful call.
func (o *Output) OK() bool {
	if o.Status != statusOK {
		return false
	}

	return o.StatusCode == 0 || o.StatusCode == http.StatusOK
}

// Err returns nil for a successful envelope, otherwise an ErrAPIStatus
// carrying the API's error messages.
func (o *Output) Err() error {
	if o.OK() {
		return nil
	}

	msgs := o.MessagesOf("error")
	if len(msgs) == 0 {
		return fmt.Errorf("%w: status=%q status_code=%d", ErrAPIStatus, o.Status, o.StatusCode)
	}

	return fmt.Errorf("%w: status=%q status_code=%d: %s",
		ErrAPIStatus, o.Status, o.StatusCode, strings.Join(msgs, "; "))
}

// MessagesOf returns the message texts of the given level ("info", "warning", "error").
func (o *Output) MessagesOf(level string) []string {
	var out []string

	for _, m := range o.Messages {
		if len(m) >= 2 && strings.EqualFold(m[0], level) {
			out = append(out, m[1])
		}
	}

	return out
}
