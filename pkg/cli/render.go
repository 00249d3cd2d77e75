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
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/carverauto/rsaw/pkg/geoip"
	"github.com/carverauto/rsaw/pkg/ripestat/lookingglass"
)

// Dracula theme colors.
const (
	draculaForeground = "#F8F8F2"
	draculaCyan       = "#8BE9FD"
	draculaPink       = "#FF79C6"
	draculaPurple     = "#BD93F9"
	draculaRed        = "#FF5555"
	draculaComment    = "#6272A4"
)

const timeLayout = "2006-01-02 15:04:05 MST"

type styles struct {
	title, header, cell, muted, border, err lipgloss.Style
}

func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPink)).
			Bold(true),
		header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaCyan)).
			Bold(true).
			Padding(0, 1),
		cell: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaForeground)).
			Padding(0, 1),
		muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		border: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPurple)),
		err: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaRed)).
			Bold(true),
	}
}

// RenderError formats err for the terminal.
func RenderError(err error) string {
	return newStyles().err.Render("Error: " + err.Error())
}

func peerAS(asn *geoip.ASNReader, ip string) string {
	rec, ok := asn.LookupString(ip)
	if !ok {
		return ""
	}

	return rec.String()
}

func renderTable(out io.Writer, resource string, lg *lookingglass.LookingGlass, asn *geoip.ASNReader) error {
	s := newStyles()

	headers := []string{"RRC", "LOCATION", "PEER"}
	if asn != nil {
		headers = append(headers, "PEER AS")
	}

	headers = append(headers, "PREFIX", "AS PATH", "ORIGIN", "COMMUNITY", "NEXT HOP", "LAST UPDATED")

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.border).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header
			}

			return s.cell
		})

	var peers int

	for rrc := range lg.All() {
		if len(rrc.Peers) == 0 {
			row := []string{rrc.RRC, rrc.Location, "-"}
			for len(row) < len(headers) {
				row = append(row, "")
			}

			t.Row(row...)

			continue
		}

		for _, p := range rrc.Peers {
			row := []string{rrc.RRC, rrc.Location, p.Peer}
			if asn != nil {
				row = append(row, peerAS(asn, p.Peer))
			}

			row = append(row, p.Prefix, p.ASPath, p.Origin, p.Community, p.NextHop, p.LastUpdated)
			t.Row(row...)
			peers++
		}
	}

	title := s.title.Render("Looking glass for " + resource)
	summary := s.muted.Render(fmt.Sprintf("query %s | latest %s | %d RRCs, %d peers",
		lg.QueryTime().Format(timeLayout), lg.LatestTime().Format(timeLayout), lg.Len(), peers))

	_, err := fmt.Fprintf(out, "%s\n%s\n%s\n", title, summary, t.Render())

	return err
}

type peerJSON struct {
	lookingglass.Peer
	PeerAS string `json:"peer_as,omitempty"`
}

type rrcJSON struct {
	RRC      string     `json:"rrc"`
	Location string     `json:"location"`
	Peers    []peerJSON `json:"peers"`
}

type lookingGlassJSON struct {
	Resource   string    `json:"resource"`
	QueryTime  time.Time `json:"query_time"`
	LatestTime time.Time `json:"latest_time"`
	RRCs       []rrcJSON `json:"rrcs"`
}

func renderJSON(out io.Writer, resource string, lg *lookingglass.LookingGlass, asn *geoip.ASNReader) error {
	doc := lookingGlassJSON{
		Resource:   resource,
		QueryTime:  lg.QueryTime(),
		LatestTime: lg.LatestTime(),
		RRCs:       make([]rrcJSON, 0, lg.Len()),
	}

	for rrc := range lg.All() {
		r := rrcJSON{RRC: rrc.RRC, Location: rrc.Location, Peers: make([]peerJSON, 0, len(rrc.Peers))}

		for _, p := range rrc.Peers {
			r.Peers = append(r.Peers, peerJSON{Peer: p, PeerAS: peerAS(asn, p.Peer)})
		}

		doc.RRCs = append(doc.RRCs, r)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	return enc.Encode(doc)
}
