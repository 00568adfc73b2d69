// Copyright 2026 The Clot Authors
// SPDX-License-Identifier: Apache-2.0

package torrent

import (
	"bytes"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// The validation policies below are small, independently composable
// checks. A field's behavior is the ordered application of the
// policies its constructor wired in: a shape check on the raw stored
// value, an optional transform (text decoding, epoch conversion), and
// the terminal content checks. Every error names the field key and
// the offending value.

// defaultSchemes is the allowed URL scheme set when a URL field does
// not override it.
var defaultSchemes = []string{"https", "http", "udp"}

func checkBounds(key string, value int64, minValue, maxValue *int64) error {
	if minValue != nil && value < *minValue {
		return fmt.Errorf("%s: expected %d to be at least %d", key, value, *minValue)
	}
	if maxValue != nil && value > *maxValue {
		return fmt.Errorf("%s: expected %d to be at most %d", key, value, *maxValue)
	}
	return nil
}

func checkNonEmptyString(key, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s: empty value is not allowed", key)
	}
	return nil
}

func checkNonEmptyBytes(key string, value []byte) error {
	if len(bytes.TrimSpace(value)) == 0 {
		return fmt.Errorf("%s: empty value is not allowed", key)
	}
	return nil
}

// intValue extracts a decoded integer. The decoder produces int64 for
// the signed range and uint64 above it.
func intValue(key string, raw any) (int64, error) {
	switch value := raw.(type) {
	case int64:
		return value, nil
	case uint64:
		if value > 1<<63-1 {
			return 0, fmt.Errorf("%s: expected %d to fit a signed 64-bit integer", key, value)
		}
		return int64(value), nil
	default:
		return 0, fmt.Errorf("%s: expected %v to be an integer", key, raw)
	}
}

// epochTime interprets seconds since the Unix epoch as a UTC
// timestamp. The result is bounded to years 1 through 9999; anything
// outside that range is a conversion error, not a timestamp.
func epochTime(key string, seconds int64) (time.Time, error) {
	converted := time.Unix(seconds, 0).UTC()
	if year := converted.Year(); year < 1 || year > 9999 {
		return time.Time{}, fmt.Errorf("%s: cannot convert %d to a timestamp", key, seconds)
	}
	return converted, nil
}

// textValue normalizes a raw value that must be UTF-8 text: decoded
// byte strings and already-decoded Go strings are both accepted.
func textValue(key string, raw any) (string, error) {
	switch value := raw.(type) {
	case string:
		return value, nil
	case []byte:
		if !utf8.Valid(value) {
			return "", fmt.Errorf("%s: cannot decode %q as UTF-8", key, value)
		}
		return string(value), nil
	default:
		return "", fmt.Errorf("%s: expected %v to be text or bytes", key, raw)
	}
}

// checkURL validates one URL. A whitespace-only value is reported as
// absent (ok=false) rather than an error, matching how such entries
// vanish from URL lists.
func checkURL(key, value string, schemes []string) (string, bool, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", false, nil
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", false, fmt.Errorf("%s: the value %q is ill-formed (%v)", key, trimmed, err)
	}

	var hostname string
	if strings.TrimSpace(parsed.Scheme) == "" {
		return "", false, fmt.Errorf("%s: the value %q is ill-formed (missing scheme)", key, trimmed)
	}
	allowed := false
	for _, scheme := range schemes {
		if parsed.Scheme == scheme {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", false, fmt.Errorf("%s: the value %q is ill-formed (unexpected scheme)", key, trimmed)
	}
	hostname = parsed.Hostname()
	if strings.TrimSpace(hostname) == "" {
		return "", false, fmt.Errorf("%s: the value %q is ill-formed (missing hostname)", key, trimmed)
	}

	return trimmed, true, nil
}

// checkNodePair validates a decoded [host, port] pair and returns its
// canonical "host:port" text form. Ports must be in 1-65535.
func checkNodePair(key string, item any) (string, bool, error) {
	pair, ok := item.([]any)
	if !ok {
		return "", false, fmt.Errorf("%s: expected %v to be a [host, port] pair", key, item)
	}
	if len(pair) != 2 {
		return "", false, fmt.Errorf("%s: expected %v to contain exactly 2 items", key, item)
	}

	host, err := textValue(key, pair[0])
	if err != nil {
		return "", false, err
	}
	if strings.TrimSpace(host) == "" {
		return "", false, fmt.Errorf("%s: host %q is empty", key, host)
	}

	port, err := intValue(key, pair[1])
	if err != nil {
		return "", false, err
	}
	if port < 1 || port > 65535 {
		return "", false, fmt.Errorf("%s: port %d is not within 1-65535", key, port)
	}

	return fmt.Sprintf("%s:%d", host, port), true, nil
}

// checkHostPort validates "host:port" text, the canonical form node
// list elements take after loading and on assignment. The split is at
// the last colon so IPv6 hosts with embedded colons pass through.
func checkHostPort(key, value string) (string, bool, error) {
	cut := strings.LastIndexByte(value, ':')
	if cut < 0 {
		return "", false, fmt.Errorf("%s: expected %q to be in host:port form", key, value)
	}
	host := value[:cut]
	if strings.TrimSpace(host) == "" {
		return "", false, fmt.Errorf("%s: host %q is empty", key, host)
	}
	port, err := strconv.ParseInt(value[cut+1:], 10, 64)
	if err != nil {
		return "", false, fmt.Errorf("%s: expected %q to be in host:port form", key, value)
	}
	if port < 1 || port > 65535 {
		return "", false, fmt.Errorf("%s: port %d is not within 1-65535", key, port)
	}
	return fmt.Sprintf("%s:%d", host, port), true, nil
}

// splitHostPort splits canonical "host:port" text at the last colon,
// so IPv6 hosts with embedded colons survive the round trip.
func splitHostPort(value string) (string, int64) {
	cut := strings.LastIndexByte(value, ':')
	port, _ := strconv.ParseInt(value[cut+1:], 10, 64)
	return value[:cut], port
}
