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
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/rsaw/pkg/logger"
	"github.com/carverauto/rsaw/pkg/ripestat"
)

const testResource = "140.78.0.0/16"

const testResponse = `{
	"messages": [],
	"see_also": [],
	"version": "2.1",
	"data_call_status": "supported",
	"cached": false,
	"data": {
		"rrcs": [
			{
				"rrc": "RRC00",
				"location": "Amsterdam, Netherlands",
				"peers": [
					{
						"asn_origin": "1205",
						"as_path": "34854 6939 1853 1853 1205",
						"community": "34854:1009",
						"last_updated": "2021-04-15T08:21:07",
						"prefix": "140.78.0.0/16",
						"peer": "2.56.11.1",
						"origin": "IGP",
						"next_hop": "2.56.11.1",
						"latest_time": "2021-04-15T12:51:19"
					}
				]
			}
		],
		"query_time": "2021-04-15T12:51:22",
		"latest_time": "2021-04-15T12:51:04",
		"parameters": {"resource": "140.78.0.0/16"}
	},
	"query_id": "20210415125122-96ed15ff-31d8-41b9-b1d0-d0c3f293f0c1",
	"process_time": 79,
	"server_id": "app114",
	"build_version": "live.2021.4.14.157",
	"status": "ok",
	"status_code": 200,
	"time": "2021-04-15T12:45:22.211516"
}`

// multiResponseData has three collectors, one of them without peers.
const multiResponseData = `{
	"rrcs": [
		{"rrc": "RRC03", "location": "Amsterdam, Netherlands", "peers": [
			{"asn_origin": "3333", "as_path": "1103 3333", "community": "", "last_updated": "2021-04-15T08:00:00",
			 "prefix": "193.0.0.0/21", "peer": "80.249.208.34", "origin": "IGP", "next_hop": "80.249.208.34",
			 "latest_time": "2021-04-15T12:00:00"},
			{"asn_origin": "3333", "as_path": "6939 3333", "community": "6939:1000", "last_updated": "2021-04-15T08:01:00",
			 "prefix": "193.0.0.0/21", "peer": "80.249.208.35", "origin": "IGP", "next_hop": "80.249.208.35",
			 "latest_time": "2021-04-15T12:00:01"}
		]},
		{"rrc": "RRC01", "location": "London, United Kingdom", "peers": []},
		{"rrc": "RRC21", "location": "Paris, France", "peers": [
			{"asn_origin": "3333", "as_path": "8218 3333", "community": "8218:102", "last_updated": "2021-04-15T09:00:00",
			 "prefix": "193.0.0.0/21", "peer": "37.49.236.1", "origin": "INCOMPLETE", "next_hop": "37.49.236.1",
			 "latest_time": "2021-04-15T12:00:02"}
		]}
	],
	"query_time": "2021-04-15T12:51:22",
	"latest_time": "2021-04-15T12:51:04"
}`

func testOutput(t *testing.T) *ripestat.Output {
	t.Helper()

	url := ripestat.DefaultBaseURL + Path + "data.json?resource=" + testResource

	out, err := ripestat.NewOutput(url, []byte(testResponse))
	require.NoError(t, err)

	return out
}

func dataOutput(data string) *ripestat.Output {
	return &ripestat.Output{Status: "ok", StatusCode: http.StatusOK, Data: json.RawMessage(data)}
}

func expectedParams() ripestat.Params {
	return ripestat.Params{
		"preferred_version": Version,
		"resource":          testResource,
	}
}

func newLookingGlass(t *testing.T) *LookingGlass {
	t.Helper()

	ctrl := gomock.NewController(t)
	getter := ripestat.NewMockGetter(ctrl)
	getter.EXPECT().Get(gomock.Any(), Path, expectedParams()).Return(testOutput(t), nil).Times(1)

	lg, err := New(context.Background(), getter, testResource, nil)
	require.NoError(t, err)

	return lg
}

func rawRRCCount(t *testing.T, data json.RawMessage) int {
	t.Helper()

	var raw struct {
		RRCs []json.RawMessage `json:"rrcs"`
	}

	require.NoError(t, json.Unmarshal(data, &raw))

	return len(raw.RRCs)
}

func TestNew_CallsGetterOnceWithParams(t *testing.T) {
	ctrl := gomock.NewController(t)
	getter := ripestat.NewMockGetter(ctrl)
	getter.EXPECT().Get(gomock.Any(), Path, expectedParams()).Return(testOutput(t), nil).Times(1)

	lg, err := New(context.Background(), getter, testResource, nil)
	require.NoError(t, err)
	require.NotNil(t, lg)

	rrc, err := lg.Get("RRC00")
	require.NoError(t, err)
	require.Len(t, rrc.Peers, 1)
	assert.Equal(t, "1205", rrc.Peers[0].ASNOrigin)
}

func TestNew_ExtraParams(t *testing.T) {
	ctrl := gomock.NewController(t)
	getter := ripestat.NewMockGetter(ctrl)

	want := ripestat.Params{
		"preferred_version": "2.0",
		"resource":          testResource,
		"look_back_limit":   "3600",
	}
	getter.EXPECT().Get(gomock.Any(), Path, want).Return(testOutput(t), nil)

	extra := ripestat.Params{"look_back_limit": "3600", "preferred_version": "2.0"}

	_, err := New(context.Background(), getter, testResource, extra)
	require.NoError(t, err)

	assert.Equal(t, ripestat.Params{"look_back_limit": "3600", "preferred_version": "2.0"}, extra)
}

func TestNew_PropagatesGetterError(t *testing.T) {
	errTransport := errors.New("dial tcp: i/o timeout")

	ctrl := gomock.NewController(t)
	getter := ripestat.NewMockGetter(ctrl)
	getter.EXPECT().Get(gomock.Any(), Path, gomock.Any()).Return(nil, errTransport)

	lg, err := New(context.Background(), getter, testResource, nil)
	require.Error(t, err)
	assert.Nil(t, lg)
	assert.Same(t, errTransport, err)
}

func TestNew_EndToEndOverHTTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockHTTP := ripestat.NewMockHTTPClient(ctrl)

	mockHTTP.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/data/looking-glass/data.json", req.URL.Path)
		assert.Equal(t, testResource, req.URL.Query().Get("resource"))
		assert.Equal(t, Version, req.URL.Query().Get("preferred_version"))
		assert.Len(t, req.URL.Query(), 2)

		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(testResponse)),
		}, nil
	}).Times(1)

	client, err := ripestat.NewClient(nil, logger.NewTestLogger(), ripestat.WithHTTPClient(mockHTTP))
	require.NoError(t, err)

	lg, err := New(context.Background(), client, testResource, nil)
	require.NoError(t, err)

	rrc, err := lg.Get("RRC00")
	require.NoError(t, err)
	assert.Equal(t, "1205", rrc.Peers[0].ASNOrigin)
	assert.Equal(t,
		"https://stat.ripe.net/data/looking-glass/data.json?preferred_version=2.1&resource=140.78.0.0%2F16",
		lg.Output().URL)
}

func TestGet(t *testing.T) {
	lg := newLookingGlass(t)

	rrc, err := lg.Get("RRC00")
	require.NoError(t, err)

	assert.Equal(t, "RRC00", rrc.RRC)
	assert.Equal(t, "Amsterdam, Netherlands", rrc.Location)
	require.Len(t, rrc.Peers, 1)
	assert.Equal(t, "140.78.0.0/16", rrc.Peers[0].Prefix)
}

func TestGet_NotFound(t *testing.T) {
	lg := newLookingGlass(t)

	_, err := lg.Get("RRC99")
	require.ErrorIs(t, err, ErrRRCNotFound)
	assert.Contains(t, err.Error(), "RRC99")
}

func TestAll(t *testing.T) {
	lg, err := Parse(dataOutput(multiResponseData))
	require.NoError(t, err)

	var first, second []string

	for rrc := range lg.All() {
		first = append(first, rrc.RRC)
	}

	for rrc := range lg.All() {
		second = append(second, rrc.RRC)
	}

	assert.Equal(t, []string{"RRC03", "RRC01", "RRC21"}, first)
	assert.Equal(t, first, second)
}

func TestAll_StopsEarly(t *testing.T) {
	lg, err := Parse(dataOutput(multiResponseData))
	require.NoError(t, err)

	var seen []string

	for rrc := range lg.All() {
		seen = append(seen, rrc.RRC)
		if len(seen) == 2 {
			break
		}
	}

	assert.Equal(t, []string{"RRC03", "RRC01"}, seen)
}

func TestLen(t *testing.T) {
	lg := newLookingGlass(t)
	assert.Equal(t, rawRRCCount(t, lg.Output().Data), lg.Len())

	multi, err := Parse(dataOutput(multiResponseData))
	require.NoError(t, err)
	assert.Equal(t, 3, multi.Len())
	assert.Equal(t, []string{"RRC03", "RRC01", "RRC21"}, multi.Names())
}

func TestRRCs(t *testing.T) {
	lg := newLookingGlass(t)

	rrcs := lg.RRCs()
	require.Len(t, rrcs, 1)

	want := RRC{
		RRC:      "RRC00",
		Location: "Amsterdam, Netherlands",
		Peers: []Peer{{
			ASNOrigin:   "1205",
			ASPath:      "34854 6939 1853 1853 1205",
			Community:   "34854:1009",
			LastUpdated: "2021-04-15T08:21:07",
			Prefix:      "140.78.0.0/16",
			Peer:        "2.56.11.1",
			Origin:      "IGP",
			NextHop:     "2.56.11.1",
			LatestTime:  "2021-04-15T12:51:19",
		}},
	}

	assert.Equal(t, want, rrcs["RRC00"])
}

func TestPeers(t *testing.T) {
	lg, err := Parse(dataOutput(multiResponseData))
	require.NoError(t, err)

	var concat []Peer
	for rrc := range lg.All() {
		concat = append(concat, rrc.Peers...)
	}

	peers := lg.Peers()
	require.Len(t, peers, 3)
	assert.Equal(t, concat, peers)
	assert.Equal(t, "80.249.208.34", peers[0].Peer)
	assert.Equal(t, "80.249.208.35", peers[1].Peer)
	assert.Equal(t, "37.49.236.1", peers[2].Peer)
}

func TestPeers_Empty(t *testing.T) {
	lg, err := Parse(dataOutput(`{"rrcs": [], "query_time": "2021-04-15T12:51:22", "latest_time": "2021-04-15T12:51:04"}`))
	require.NoError(t, err)

	assert.Equal(t, 0, lg.Len())
	assert.NotNil(t, lg.Peers())
	assert.Empty(t, lg.Peers())
}

func TestTimes(t *testing.T) {
	lg := newLookingGlass(t)

	assert.Equal(t, time.Date(2021, 4, 15, 12, 51, 22, 0, time.UTC), lg.QueryTime())
	assert.Equal(t, time.Date(2021, 4, 15, 12, 51, 4, 0, time.UTC), lg.LatestTime())
}

func TestAccessorsReturnCopies(t *testing.T) {
	lg := newLookingGlass(t)

	rrc, err := lg.Get("RRC00")
	require.NoError(t, err)
	rrc.Peers[0].ASNOrigin = "666"

	lg.RRCs()["RRC00"].Peers[0].Prefix = "0.0.0.0/0"
	lg.Peers()[0].NextHop = "192.0.2.1"
	lg.Names()[0] = "RRC99"

	for r := range lg.All() {
		r.Peers[0].Origin = "EGP"
	}

	again, err := lg.Get("RRC00")
	require.NoError(t, err)
	assert.Equal(t, "1205", again.Peers[0].ASNOrigin)
	assert.Equal(t, "140.78.0.0/16", again.Peers[0].Prefix)
	assert.Equal(t, "2.56.11.1", again.Peers[0].NextHop)
	assert.Equal(t, "IGP", again.Peers[0].Origin)
	assert.Equal(t, []string{"RRC00"}, lg.Names())
}

func TestParse_DuplicateRRCKeepsFirstPosition(t *testing.T) {
	data := `{"rrcs": [
		{"rrc": "RRC00", "location": "old", "peers": []},
		{"rrc": "RRC01", "location": "London", "peers": []},
		{"rrc": "RRC00", "location": "new", "peers": []}
	], "query_time": "2021-04-15T12:51:22", "latest_time": "2021-04-15T12:51:04"}`

	lg, err := Parse(dataOutput(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"RRC00", "RRC01"}, lg.Names())

	rrc, err := lg.Get("RRC00")
	require.NoError(t, err)
	assert.Equal(t, "new", rrc.Location)
}

func TestParse_Malformed(t *testing.T) {
	const times = `"query_time": "2021-04-15T12:51:22", "latest_time": "2021-04-15T12:51:04"`

	peerWithout := func(field string) string {
		fields := map[string]string{
			"asn_origin": "1205", "as_path": "1205", "community": "", "last_updated": "2021-04-15T08:21:07",
			"prefix": "140.78.0.0/16", "peer": "2.56.11.1", "origin": "IGP", "next_hop": "2.56.11.1",
			"latest_time": "2021-04-15T12:51:19",
		}
		delete(fields, field)

		b, _ := json.Marshal(fields)

		return string(b)
	}

	tests := []struct {
		name     string
		data     string
		wantPath string
	}{
		{name: "no data", data: "", wantPath: "data"},
		{name: "null data", data: "null", wantPath: "data"},
		{name: "data not an object", data: `[]`, wantPath: "data"},
		{name: "no rrcs", data: `{` + times + `}`, wantPath: "data.rrcs"},
		{name: "null rrcs", data: `{"rrcs": null, ` + times + `}`, wantPath: "data.rrcs"},
		{name: "rrcs wrong type", data: `{"rrcs": {}, ` + times + `}`, wantPath: "data"},
		{name: "rrc missing name", data: `{"rrcs": [{"location": "x", "peers": []}], ` + times + `}`, wantPath: "data.rrcs[0].rrc"},
		{name: "rrc missing location", data: `{"rrcs": [{"rrc": "RRC00", "peers": []}], ` + times + `}`, wantPath: "data.rrcs[0].location"},
		{name: "rrc missing peers", data: `{"rrcs": [{"rrc": "RRC00", "location": "x"}], ` + times + `}`, wantPath: "data.rrcs[0].peers"},
		{
			name:     "peer missing next_hop",
			data:     `{"rrcs": [{"rrc": "RRC00", "location": "x", "peers": [` + peerWithout("next_hop") + `]}], ` + times + `}`,
			wantPath: "data.rrcs[0].peers[0].next_hop",
		},
		{
			name:     "peer missing asn_origin",
			data:     `{"rrcs": [{"rrc": "RRC00", "location": "x", "peers": [` + peerWithout("asn_origin") + `]}], ` + times + `}`,
			wantPath: "data.rrcs[0].peers[0].asn_origin",
		},
		{
			name:     "peer field wrong type",
			data:     `{"rrcs": [{"rrc": "RRC00", "location": "x", "peers": [{"asn_origin": 1205}]}], ` + times + `}`,
			wantPath: "data",
		},
		{name: "no query_time", data: `{"rrcs": [], "latest_time": "2021-04-15T12:51:04"}`, wantPath: "data.query_time"},
		{name: "no latest_time", data: `{"rrcs": [], "query_time": "2021-04-15T12:51:22"}`, wantPath: "data.latest_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, err := Parse(dataOutput(tt.data))
			require.Error(t, err)
			assert.Nil(t, lg)
			require.ErrorIs(t, err, ErrMalformedPayload)
			assert.Contains(t, err.Error(), tt.wantPath)
		})
	}
}

func TestParse_InvalidTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantPath string
	}{
		{
			name:     "query_time",
			data:     `{"rrcs": [], "query_time": "yesterday", "latest_time": "2021-04-15T12:51:04"}`,
			wantPath: "data.query_time",
		},
		{
			name:     "latest_time",
			data:     `{"rrcs": [], "query_time": "2021-04-15T12:51:22", "latest_time": "2021-04-15 noon"}`,
			wantPath: "data.latest_time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(dataOutput(tt.data))
			require.ErrorIs(t, err, ripestat.ErrInvalidTimestamp)
			assert.Contains(t, err.Error(), tt.wantPath)
		})
	}
}

func TestParse_PeerTimestampsStayStrings(t *testing.T) {
	data := `{"rrcs": [{"rrc": "RRC00", "location": "x", "peers": [{
		"asn_origin": "1205", "as_path": "1205", "community": "", "last_updated": "not a time",
		"prefix": "140.78.0.0/16", "peer": "2.56.11.1", "origin": "IGP", "next_hop": "2.56.11.1",
		"latest_time": "also not a time"}]}],
		"query_time": "2021-04-15T12:51:22", "latest_time": "2021-04-15T12:51:04"}`

	lg, err := Parse(dataOutput(data))
	require.NoError(t, err)

	peers := lg.Peers()
	require.Len(t, peers, 1)
	assert.Equal(t, "not a time", peers[0].LastUpdated)
	assert.Equal(t, "also not a time", peers[0].LatestTime)
}

func TestParse_NilOutput(t *testing.T) {
	_, err := Parse(nil)
	require.ErrorIs(t, err, ErrMalformedPayload)
}
