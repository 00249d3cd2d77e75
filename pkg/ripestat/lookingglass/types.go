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

import "slices"

// Peer is one BGP neighbour's routing entry for the queried resource, as
// reported by an RRC. Timestamps are kept exactly as the API sent them.
type Peer struct {
	ASNOrigin   string `json:"asn_origin"`
	ASPath      string `json:"as_path"`
	Community   string `json:"community"`
	LastUpdated string `json:"last_updated"`
	Prefix      string `json:"prefix"`
	Peer        string `json:"peer"`
	Origin      string `json:"origin"`
	NextHop     string `json:"next_hop"`
	LatestTime  string `json:"latest_time"`
}

// RRC is a Route Reporting Collector and the peers it reported.
type RRC struct {
	RRC      string `json:"rrc"`
	Location string `json:"location"`
	Peers    []Peer `json:"peers"`
}

func (r RRC) clone() RRC {
	r.Peers = slices.Clone(r.Peers)
	return r
}
