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

// Package geoiptest writes small ASN databases for tests.
package geoiptest

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/maxmind/mmdbwriter"
	"github.com/maxmind/mmdbwriter/mmdbtype"
)

// ASN is one network entry of a test database.
type ASN struct {
	Number       uint32
	Organization string
}

// WriteASN writes an MMDB of type dbType mapping each CIDR in networks to
// its ASN and returns the file path. The file lives in t.TempDir().
func WriteASN(t testing.TB, dbType string, networks map[string]ASN) string {
	t.Helper()

	tree, err := mmdbwriter.New(mmdbwriter.Options{
		DatabaseType: dbType,
		RecordSize:   24,
	})
	if err != nil {
		t.Fatalf("creating mmdb writer: %v", err)
	}

	for cidr, asn := range networks {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			t.Fatalf("parsing %s: %v", cidr, err)
		}

		record := mmdbtype.Map{
			"autonomous_system_number":       mmdbtype.Uint32(asn.Number),
			"autonomous_system_organization": mmdbtype.String(asn.Organization),
		}

		if err := tree.Insert(network, record); err != nil {
			t.Fatalf("inserting %s: %v", cidr, err)
		}
	}

	path := filepath.Join(t.TempDir(), dbType+".mmdb")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}

	defer func() {
		_ = f.Close()
	}()

	if _, err := tree.WriteTo(f); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}

	return path
}
