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

package lookingglass

import "errors"

var (
	// ErrMalformedPayload is returned when the data object is missing a key
	// or carries a value of the wrong type.
	ErrMalformedPayload = errors.New("malformed looking-glass payload")
	// ErrRRCNotFound is returned by Get for an unknown collector name.
	ErrRRCNotFound = errors.New("rrc not found")
)
