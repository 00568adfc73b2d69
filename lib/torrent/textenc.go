// Copyright 2026 The Clot Authors
// SPDX-License-Identifier: Apache-2.0

package torrent

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// decodeText converts a field's raw bytes to text, trying candidate
// character sets in priority order: the field's own fixed encoding if
// it has one; otherwise the record's "encoding" field, or its
// "codepage" field as cp<N>, when that names something other than
// UTF-8; then UTF-8 itself; then the caller-supplied fallback
// encoding. The first candidate that decodes cleanly wins. When none
// does, the error names every attempted encoding.
func (b *Backbone) decodeText(key string, raw []byte, fixedEncoding string) (string, error) {
	candidates, err := b.encodingCandidates(fixedEncoding)
	if err != nil {
		return "", err
	}

	for _, name := range candidates {
		text, ok, err := tryDecode(raw, name)
		if err != nil {
			return "", fmt.Errorf("%s: %w", key, err)
		}
		if ok {
			return text, nil
		}
	}
	return "", fmt.Errorf("%s: cannot decode %q as %s", key, raw, strings.Join(candidates, " or "))
}

func (b *Backbone) encodingCandidates(fixedEncoding string) ([]string, error) {
	if fixedEncoding != "" {
		return []string{fixedEncoding}, nil
	}

	var candidates []string

	context, err := b.contextEncoding()
	if err != nil {
		return nil, err
	}
	if context != "" && !isUTF8Name(context) {
		candidates = append(candidates, context)
	}

	candidates = append(candidates, "UTF-8")
	if b.fallbackEncoding != "" {
		candidates = append(candidates, b.fallbackEncoding)
	}
	return candidates, nil
}

// contextEncoding resolves the record-wide text encoding: the
// "encoding" field when present, else the "codepage" field mapped to
// a cp<N> code-page name. Resolving these loads them as a side
// effect, which the bulk load pass must not repeat.
func (b *Backbone) contextEncoding() (string, error) {
	if b.encodingField != nil {
		name, ok, err := b.encodingField.Get()
		if err != nil {
			return "", err
		}
		if ok && name != "" {
			return name, nil
		}
	}
	if b.codepageField != nil {
		codepage, ok, err := b.codepageField.Get()
		if err != nil {
			return "", err
		}
		if ok {
			return fmt.Sprintf("cp%d", codepage), nil
		}
	}
	return "", nil
}

func isUTF8Name(name string) bool {
	switch strings.ToUpper(strings.ReplaceAll(name, "_", "-")) {
	case "UTF-8", "UTF8":
		return true
	}
	return false
}

// tryDecode attempts one character set. ok=false with a nil error
// means the bytes do not form valid text in that set; an error means
// the set itself is unknown.
func tryDecode(raw []byte, name string) (string, bool, error) {
	normalized := strings.ToLower(strings.ReplaceAll(name, "_", "-"))

	switch normalized {
	case "utf-8", "utf8":
		if !utf8.Valid(raw) {
			return "", false, nil
		}
		return string(raw), true, nil
	case "ascii", "us-ascii":
		for _, c := range raw {
			if c >= 0x80 {
				return "", false, nil
			}
		}
		return string(raw), true, nil
	}

	enc, err := lookupEncoding(name, normalized)
	if err != nil {
		return "", false, err
	}

	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", false, nil
	}
	// x/text decoders substitute U+FFFD for unmapped bytes instead of
	// failing; treat any substitution as a failed candidate.
	if bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", false, nil
	}
	return string(decoded), true, nil
}

// lookupEncoding resolves a character-set name through the IANA
// registry first (which knows code-page aliases like cp437 for
// IBM437), then through the WHATWG label index (which knows informal
// labels like cp1251 and latin1).
func lookupEncoding(name, normalized string) (encoding.Encoding, error) {
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc, nil
	}
	if enc, err := htmlindex.Get(normalized); err == nil {
		return enc, nil
	}
	return nil, fmt.Errorf("unknown encoding %q", name)
}
