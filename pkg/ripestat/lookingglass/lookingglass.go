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

// Package lookingglass wraps the RIPEstat "looking-glass" data call, which
// reports what the RIS route collectors (RRCs) currently see for a prefix,
// IP address or ASN.
package lookingglass

import (
	"context"
	"fmt"
	"iter"
	"maps"
	"time"

	"github.com/carverauto/rsaw/pkg/ripestat"
)

const (
	// Path is the data call path on the RIPEstat API.
	Path = "/looking-glass/"
	// Version is the data call version sent as preferred_version.
	Version = "2.1"
)

// LookingGlass is a read-only view of one looking-glass response. RRCs keep
// the order in which the API listed them.
type LookingGlass struct {
	output     *ripestat.Output
	names      []string
	rrcs       map[string]RRC
	queryTime  time.Time
	latestTime time.Time
}

// New queries the looking-glass data call for resource through client.
// extra is passed through as additional query parameters and overrides the
// defaults on conflict. Errors from client are returned unchanged.
func New(ctx context.Context, client ripestat.Getter, resource string, extra ripestat.Params) (*LookingGlass, error) {
	params := ripestat.Params{
		"preferred_version": Version,
		"resource":          resource,
	}

	maps.Copy(params, extra)

	output, err := client.Get(ctx, Path, params)
	if err != nil {
		return nil, err
	}

	return Parse(output)
}

// Parse builds a LookingGlass from an already fetched response.
func Parse(output *ripestat.Output) (*LookingGlass, error) {
	if output == nil {
		return nil, fmt.Errorf("%w: nil output", ErrMalformedPayload)
	}

	p, err := parseData(output.Data)
	if err != nil {
		return nil, err
	}

	return &LookingGlass{
		output:     output,
		names:      p.names,
		rrcs:       p.rrcs,
		queryTime:  p.queryTime,
		latestTime: p.latestTime,
	}, nil
}

// Get returns the collector called name, e.g. "RRC00".
func (lg *LookingGlass) Get(name string) (RRC, error) {
	rrc, ok := lg.rrcs[name]
	if !ok {
		return RRC{}, fmt.Errorf("%w: %q", ErrRRCNotFound, name)
	}

	return rrc.clone(), nil
}

// All iterates over the collectors in response order.
func (lg *LookingGlass) All() iter.Seq[RRC] {
	return func(yield func(RRC) bool) {
		for _, name := range lg.names {
			if !yield(lg.rrcs[name].clone()) {
				return
			}
		}
	}
}

// Len returns the number of collectors.
func (lg *LookingGlass) Len() int {
	return len(lg.names)
}

// Names returns the collector names in response order.
func (lg *LookingGlass) Names() []string {
	out := make([]string, len(lg.names))
	copy(out, lg.names)

	return out
}

// RRCs returns a copy of the name to collector mapping. Use Names or All
// for ordered access.
func (lg *LookingGlass) RRCs() map[string]RRC {
	out := make(map[string]RRC, len(lg.rrcs))
	for name, rrc := range lg.rrcs {
		out[name] = rrc.clone()
	}

	return out
}

// Peers returns every peer of every collector, flattened in collector order.
func (lg *LookingGlass) Peers() []Peer {
	var n int
	for _, name := range lg.names {
		n += len(lg.rrcs[name].Peers)
	}

	out := make([]Peer, 0, n)
	for _, name := range lg.names {
		out = append(out, lg.rrcs[name].Peers...)
	}

	return out
}

// QueryTime is when RIPEstat answered the query.
func (lg *LookingGlass) QueryTime() time.Time {
	return lg.queryTime
}

// LatestTime is the time of the most recent data the collectors hold.
func (lg *LookingGlass) LatestTime() time.Time {
	return lg.latestTime
}

// Output returns the response envelope the view was built from.
func (lg *LookingGlass) Output() *ripestat.Output {
	return lg.output
}
