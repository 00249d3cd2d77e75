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

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/carverauto/rsaw/pkg/ripestat"
)

// The raw* types mirror the JSON with pointer fields so that an absent or
// null key can be told apart from an empty string.

type rawPeer struct {
	ASNOrigin   *string `json:"asn_origin"`
	ASPath      *string `json:"as_path"`
	Community   *string `json:"community"`
	LastUpdated *string `json:"last_updated"`
	Prefix      *string `json:"prefix"`
	Peer        *string `json:"peer"`
	Origin      *string `json:"origin"`
	NextHop     *string `json:"next_hop"`
	LatestTime  *string `json:"latest_time"`
}

type rawRRC struct {
	RRC      *string    `json:"rrc"`
	Location *string    `json:"location"`
	Peers    *[]rawPeer `json:"peers"`
}

type rawData struct {
	RRCs       *[]rawRRC `json:"rrcs"`
	QueryTime  *string   `json:"query_time"`
	LatestTime *string   `json:"latest_time"`
}

type parsed struct {
	names      []string
	rrcs       map[string]RRC
	queryTime  time.Time
	latestTime time.Time
}

func missing(path string) error {
	return fmt.Errorf("%w: missing %s", ErrMalformedPayload, path)
}

func need(path string, v *string) (string, error) {
	if v == nil {
		return "", missing(path)
	}

	return *v, nil
}

func parseData(data json.RawMessage) (*parsed, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, missing("data")
	}

	var raw rawData
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: data: %w", ErrMalformedPayload, err)
	}

	if raw.RRCs == nil {
		return nil, missing("data.rrcs")
	}

	p := &parsed{
		names: make([]string, 0, len(*raw.RRCs)),
		rrcs:  make(map[string]RRC, len(*raw.RRCs)),
	}

	for i := range *raw.RRCs {
		rrc, err := parseRRC(fmt.Sprintf("data.rrcs[%d]", i), &(*raw.RRCs)[i])
		if err != nil {
			return nil, err
		}

		if _, seen := p.rrcs[rrc.RRC]; !seen {
			p.names = append(p.names, rrc.RRC)
		}

		p.rrcs[rrc.RRC] = rrc
	}

	var err error

	if p.queryTime, err = parseTimestamp("data.query_time", raw.QueryTime); err != nil {
		return nil, err
	}

	if p.latestTime, err = parseTimestamp("data.latest_time", raw.LatestTime); err != nil {
		return nil, err
	}

	return p, nil
}

func parseRRC(path string, raw *rawRRC) (RRC, error) {
	var (
		rrc RRC
		err error
	)

	if rrc.RRC, err = need(path+".rrc", raw.RRC); err != nil {
		return RRC{}, err
	}

	if rrc.Location, err = need(path+".location", raw.Location); err != nil {
		return RRC{}, err
	}

	if raw.Peers == nil {
		return RRC{}, missing(path + ".peers")
	}

	rrc.Peers = make([]Peer, 0, len(*raw.Peers))

	for i := range *raw.Peers {
		peer, err := parsePeer(fmt.Sprintf("%s.peers[%d]", path, i), &(*raw.Peers)[i])
		if err != nil {
			return RRC{}, err
		}

		rrc.Peers = append(rrc.Peers, peer)
	}

	return rrc, nil
}

func parsePeer(path string, raw *rawPeer) (Peer, error) {
	var peer Peer

	fields := []struct {
		name string
		src  *string
		dst  *string
	}{
		{"asn_origin", raw.ASNOrigin, &peer.ASNOrigin},
		{"as_path", raw.ASPath, &peer.ASPath},
		{"community", raw.Community, &peer.Community},
		{"last_updated", raw.LastUpdated, &peer.LastUpdated},
		{"prefix", raw.Prefix, &peer.Prefix},
		{"peer", raw.Peer, &peer.Peer},
		{"origin", raw.Origin, &peer.Origin},
		{"next_hop", raw.NextHop, &peer.NextHop},
		{"latest_time", raw.LatestTime, &peer.LatestTime},
	}

	for _, f := range fields {
		v, err := need(path+"."+f.name, f.src)
		if err != nil {
			return Peer{}, err
		}

		*f.dst = v
	}

	return peer, nil
}

func parseTimestamp(path string, v *string) (time.Time, error) {
	s, err := need(path, v)
	if err != nil {
		return time.Time{}, err
	}

	t, err := ripestat.ParseTime(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}
