/*
 * Copyright (c) 2026 NimbusDB Authors.
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

package discovery

import (
	"net"
	"testing"

	"github.com/hashicorp/mdns"
)

func TestParseServiceEntry(t *testing.T) {
	entry := &mdns.ServiceEntry{
		Name:   "node1._nimbusdb._tcp.local.",
		AddrV4: net.ParseIP("192.168.1.10"),
		Port:   9042,
		InfoFields: []string{
			"cluster_name=production",
			"version=1.2.0",
			"malformed-no-equals",
		},
	}

	node := parseServiceEntry(entry)
	if node == nil {
		t.Fatal("Expected a node, got nil")
	}
	if node.Name != "node1" {
		t.Errorf("Expected name 'node1', got '%s'", node.Name)
	}
	if node.Addr != "192.168.1.10:9042" {
		t.Errorf("Expected addr '192.168.1.10:9042', got '%s'", node.Addr)
	}
	if node.ClusterName != "production" {
		t.Errorf("Expected cluster 'production', got '%s'", node.ClusterName)
	}
	if node.Version != "1.2.0" {
		t.Errorf("Expected version '1.2.0', got '%s'", node.Version)
	}
}

func TestParseServiceEntryNoAddress(t *testing.T) {
	entry := &mdns.ServiceEntry{
		Name: "ghost._nimbusdb._tcp.local.",
		Port: 9042,
	}
	if node := parseServiceEntry(entry); node != nil {
		t.Errorf("Expected entries without an address to be dropped, got %+v", node)
	}
}

func TestParseServiceEntryNil(t *testing.T) {
	if node := parseServiceEntry(nil); node != nil {
		t.Errorf("Expected nil for nil entry, got %+v", node)
	}
}

func TestInstanceName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"node1._nimbusdb._tcp.local.", "node1"},
		{"node1", "node1"},
		{"plain.", "plain"},
	}
	for _, tt := range tests {
		if got := instanceName(tt.input); got != tt.want {
			t.Errorf("instanceName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
