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

package protocol

import "encoding/json"

// StartupMessage opens a session after the TCP connection is
// established.
type StartupMessage struct {
	SessionID string `json:"session_id"`
	Username  string `json:"username,omitempty"`
	Keyspace  string `json:"keyspace,omitempty"`
}

// Encode encodes the startup message to bytes.
func (m *StartupMessage) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// DecodeStartupMessage decodes a startup message from bytes.
func DecodeStartupMessage(data []byte) (*StartupMessage, error) {
	var m StartupMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ReadyMessage acknowledges a startup message.
type ReadyMessage struct {
	ServerVersion string `json:"server_version"`
	ClusterName   string `json:"cluster_name,omitempty"`
}

// Encode encodes the ready message to bytes.
func (m *ReadyMessage) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// DecodeReadyMessage decodes a ready message from bytes.
func DecodeReadyMessage(data []byte) (*ReadyMessage, error) {
	var m ReadyMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// QueryMessage carries one CQL statement.
type QueryMessage struct {
	Statement string `json:"statement"`
}

// Encode encodes the query message to bytes.
func (m *QueryMessage) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// DecodeQueryMessage decodes a query message from bytes.
func DecodeQueryMessage(data []byte) (*QueryMessage, error) {
	var m QueryMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ResultMessage carries the response to a query.
type ResultMessage struct {
	Success  bool       `json:"success"`
	Message  string     `json:"message,omitempty"`
	Columns  []string   `json:"columns,omitempty"`
	Rows     [][]string `json:"rows,omitempty"`
	RowCount int        `json:"row_count"`
}

// Encode encodes the result message to bytes.
func (m *ResultMessage) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// DecodeResultMessage decodes a result message from bytes.
func DecodeResultMessage(data []byte) (*ResultMessage, error) {
	var m ResultMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ErrorMessage represents a server-reported error.
type ErrorMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Encode encodes the error message to bytes.
func (m *ErrorMessage) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// DecodeErrorMessage decodes an error message from bytes.
func DecodeErrorMessage(data []byte) (*ErrorMessage, error) {
	var m ErrorMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// UseMessage switches the session keyspace.
type UseMessage struct {
	Keyspace string `json:"keyspace"`
}

// Encode encodes the use message to bytes.
func (m *UseMessage) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// DecodeUseMessage decodes a use message from bytes.
func DecodeUseMessage(data []byte) (*UseMessage, error) {
	var m UseMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
