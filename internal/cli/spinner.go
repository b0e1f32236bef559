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

package cli

import (
	"fmt"
	"sync"
	"time"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// Spinner shows an animated progress indicator on stdout while a slow
// operation (connecting, reconnecting) runs.
type Spinner struct {
	message string
	mu      sync.Mutex
	done    chan struct{}
	running bool
}

// NewSpinner creates a spinner with the given message. Call Start to
// begin animating.
func NewSpinner(message string) *Spinner {
	return &Spinner{message: message}
}

// Start begins the animation in a background goroutine.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.done = make(chan struct{})

	go func(done chan struct{}) {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		frame := 0
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fmt.Printf("\r%s %s", spinnerFrames[frame%len(spinnerFrames)], s.message)
				frame++
			}
		}
	}(s.done)
}

func (s *Spinner) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.done)
	// Clear the spinner line.
	fmt.Printf("\r%s\r", fmt.Sprintf("%*s", len(s.message)+2, ""))
}

// StopWithSuccess stops the spinner and prints a success line.
func (s *Spinner) StopWithSuccess(message string) {
	s.stop()
	PrintSuccess("%s", message)
}

// StopWithError stops the spinner and prints an error line.
func (s *Spinner) StopWithError(message string) {
	s.stop()
	PrintError("%s", message)
}
