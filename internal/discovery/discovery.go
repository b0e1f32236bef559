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

// Package discovery finds NimbusDB nodes on the local network via
// mDNS. The shell uses it for the \discover command and for the
// --discover startup mode, where the first node found becomes the
// contact point.
package discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/mdns"
)

const (
	// ServiceType is the mDNS service type NimbusDB nodes advertise.
	ServiceType = "_nimbusdb._tcp"

	// DefaultTimeout is the default time to wait for responses.
	DefaultTimeout = 3 * time.Second
)

// Node represents a NimbusDB node found on the network.
type Node struct {
	Name         string
	Addr         string // host:port of the native protocol
	ClusterName  string
	Version      string
	DiscoveredAt time.Time
}

// Discover queries the local network for NimbusDB nodes and returns
// them sorted by name. It blocks until the timeout elapses or the
// context is cancelled.
func Discover(ctx context.Context, timeout time.Duration) ([]*Node, error) {
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	entriesCh := make(chan *mdns.ServiceEntry, 10)
	var mu sync.Mutex
	var nodes []*Node

	go func() {
		for entry := range entriesCh {
			if node := parseServiceEntry(entry); node != nil {
				mu.Lock()
				nodes = append(nodes, node)
				mu.Unlock()
			}
		}
	}()

	params := &mdns.QueryParam{
		Service:             ServiceType,
		Domain:              "local",
		Timeout:             timeout,
		Entries:             entriesCh,
		WantUnicastResponse: true,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- mdns.Query(params)
		close(entriesCh)
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-errCh:
		if err != nil {
			return nil, fmt.Errorf("mDNS query failed: %w", err)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Name < nodes[j].Name })
	return nodes, nil
}

// parseServiceEntry converts an mDNS service entry into a Node.
// Entries without a resolvable address are dropped.
func parseServiceEntry(entry *mdns.ServiceEntry) *Node {
	if entry == nil {
		return nil
	}

	var ip string
	if entry.AddrV4 != nil {
		ip = entry.AddrV4.String()
	} else if entry.AddrV6 != nil {
		ip = entry.AddrV6.String()
	}
	if ip == "" {
		return nil
	}

	node := &Node{
		Name:         instanceName(entry.Name),
		Addr:         fmt.Sprintf("%s:%d", ip, entry.Port),
		DiscoveredAt: time.Now(),
	}

	for _, txt := range entry.InfoFields {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) != 2 {
			continue
		}
		switch parts[0] {
		case "node_name":
			node.Name = parts[1]
		case "cluster_name":
			node.ClusterName = parts[1]
		case "version":
			node.Version = parts[1]
		}
	}

	return node
}

// instanceName strips the service and domain suffix from a full mDNS
// entry name ("node1._nimbusdb._tcp.local." becomes "node1").
func instanceName(full string) string {
	if idx := strings.Index(full, "."+ServiceType); idx != -1 {
		return full[:idx]
	}
	return strings.TrimSuffix(full, ".")
}
