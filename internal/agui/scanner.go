// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package agui implements the AG-UI streamed event protocol.
package agui

import (
	"encoding/json"
	"log"
	"strings"
)

// Protocol framing constants.
const (
	// RecordSeparator terminates each event record.
	RecordSeparator = "\n\n"

	// DataPrefix marks a deliverable record. Records without it (comments,
	// keep-alives) are dropped without affecting dispatcher state.
	DataPrefix = "data:"
)

// MaxRecordSize caps a single buffered record (64KB). A stream that never
// produces a separator would otherwise grow the buffer without bound.
const MaxRecordSize = 64 * 1024

// =============================================================================
// RECORD SCANNER
// =============================================================================

// RecordScanner incrementally splits a streamed response body into decoded
// events. Only text up to the last record separator is parsed; the trailing
// partial record is buffered until the next chunk (or Flush) completes it,
// so a truncated record is never emitted as if it were whole.
type RecordScanner struct {
	buf strings.Builder

	// Logf receives one line per malformed record. Defaults to log.Printf.
	Logf func(format string, args ...any)
}

// NewRecordScanner creates a scanner for one response stream.
func NewRecordScanner() *RecordScanner {
	return &RecordScanner{Logf: log.Printf}
}

// Push feeds the next chunk of body bytes and returns the events decoded
// from every record completed so far, in arrival order.
func (s *RecordScanner) Push(chunk []byte) []Event {
	s.buf.Write(chunk)

	text := s.buf.String()
	idx := strings.LastIndex(text, RecordSeparator)
	if idx < 0 {
		if s.buf.Len() > MaxRecordSize {
			s.logf("agui: dropping oversized record (%d bytes)", s.buf.Len())
			s.buf.Reset()
		}
		return nil
	}

	ready, rest := text[:idx], text[idx+len(RecordSeparator):]
	s.buf.Reset()
	s.buf.WriteString(rest)

	return s.decodeRecords(ready)
}

// Flush decodes whatever remains in the buffer. Call once at end of stream:
// a final record is valid even when the body does not end with a separator.
func (s *RecordScanner) Flush() []Event {
	text := s.buf.String()
	s.buf.Reset()
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return s.decodeRecords(text)
}

// ParseAll decodes a fully accumulated body in one pass. This is the
// fallback path for transports that cannot expose incremental reads.
func ParseAll(body []byte) []Event {
	s := NewRecordScanner()
	events := s.Push(body)
	return append(events, s.Flush()...)
}

// decodeRecords splits completed text into records and decodes each.
func (s *RecordScanner) decodeRecords(text string) []Event {
	var events []Event
	for _, record := range strings.Split(text, RecordSeparator) {
		ev, ok := s.decodeRecord(record)
		if ok {
			events = append(events, ev)
		}
	}
	return events
}

// decodeRecord parses one record. Records without the data prefix and
// records whose payload fails to decode are skipped, never fatal.
func (s *RecordScanner) decodeRecord(record string) (Event, bool) {
	record = strings.TrimSpace(record)
	if !strings.HasPrefix(record, DataPrefix) {
		return Event{}, false
	}

	payload := strings.TrimSpace(strings.TrimPrefix(record, DataPrefix))
	if payload == "" {
		return Event{}, false
	}

	var ev Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		s.logf("agui: skipping malformed record: %v", err)
		return Event{}, false
	}
	return ev, true
}

func (s *RecordScanner) logf(format string, args ...any) {
	if s.Logf != nil {
		s.Logf(format, args...)
	}
}
