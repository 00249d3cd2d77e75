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

// Package geoip annotates IP addresses with their origin AS using a local
// MaxMind MMDB database.
package geoip

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"slices"
	"strings"

	"github.com/oschwald/maxminddb-golang"
)

var (
	ErrUnsupportedDatabase = errors.New("unsupported mmdb database type")
	errNilReader           = errors.New("asn reader is not open")
)

// supportedASNTypes lists the MMDB database types carrying ASN records.
var supportedASNTypes = []string{"GeoLite2-ASN", "GeoIP2-ISP", "DBIP-ASN-Lite", "sing-asn"}

// ASNRecord is the subset of a GeoLite2-ASN entry rsaw uses.
type ASNRecord struct {
	Number       uint   `maxminddb:"autonomous_system_number"`
	Organization string `maxminddb:"autonomous_system_organization"`
}

// String renders the record as "AS3333 RIPE-NCC".
func (r ASNRecord) String() string {
	if r.Number == 0 {
		return ""
	}

	if r.Organization == "" {
		return fmt.Sprintf("AS%d", r.Number)
	}

	return fmt.Sprintf("AS%d %s", r.Number, r.Organization)
}

// ASNReader looks up ASN records. A nil *ASNReader is valid and finds nothing.
type ASNReader struct {
	reader *maxminddb.Reader
}

// OpenASN opens an ASN database file.
func OpenASN(path string) (*ASNReader, error) {
	db, err := maxminddb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mmdb %q: %w", path, err)
	}

	dbType := db.Metadata.DatabaseType
	if !supportedType(dbType) {
		_ = db.Close()

		return nil, fmt.Errorf("%w: %q (expected one of %s)",
			ErrUnsupportedDatabase, dbType, strings.Join(supportedASNTypes, ", "))
	}

	return &ASNReader{reader: db}, nil
}

func supportedType(dbType string) bool {
	return slices.Contains(supportedASNTypes, dbType)
}

// Lookup returns the ASN record covering addr.
func (r *ASNReader) Lookup(addr netip.Addr) (ASNRecord, bool) {
	if r == nil || r.reader == nil || !addr.IsValid() {
		return ASNRecord{}, false
	}

	var record ASNRecord

	_, ok, err := r.reader.LookupNetwork(net.IP(addr.Unmap().AsSlice()), &record)
	if err != nil || !ok || record.Number == 0 {
		return ASNRecord{}, false
	}

	return record, true
}

// LookupString parses ip and looks it up. Unparseable input finds nothing.
func (r *ASNReader) LookupString(ip string) (ASNRecord, bool) {
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil {
		return ASNRecord{}, false
	}

	return r.Lookup(addr)
}

// Close releases the database.
func (r *ASNReader) Close() error {
	if r == nil || r.reader == nil {
		return errNilReader
	}

	return r.reader.Close()
}
