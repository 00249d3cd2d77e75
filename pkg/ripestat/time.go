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
	"time"
)

// isoLayouts are the ISO-8601 shapes RIPEstat emits. Values without a zone
// are UTC. Fractional seconds are accepted after any seconds field.
var isoLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05-07",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses an ISO-8601 timestamp as found in RIPEstat payloads.
// Accepted forms, with optional fractional seconds where seconds appear:
//
//	2021-04-15T12:51:22          (UTC)
//	2021-04-15T12:51:22Z
//	2021-04-15T14:51:22+02:00
//	2021-04-15T14:51:22+0200
//	2021-04-15T14:51:22+02
//	2021-04-15T12:51             (UTC)
//	2021-04-15 12:51:22          (UTC)
//	2021-04-15                   (UTC midnight)
//
// Surrounding whitespace is rejected.
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty string", ErrInvalidTimestamp)
	}

	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}
