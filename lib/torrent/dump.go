// Copyright 2026 The Clot Authors
// SPDX-License-Identifier: Apache-2.0

package torrent

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// dumpTimeLayout renders timestamps with an explicit numeric offset,
// "+00:00" rather than "Z" for UTC.
const dumpTimeLayout = "2006-01-02 15:04:05-07:00"

// DumpOptions controls the JSON rendering of a record.
type DumpOptions struct {
	// Indent is the number of spaces per nesting level. Zero renders
	// everything on one line.
	Indent int
	// Tab indents with tabs instead of spaces and overrides Indent.
	Tab bool
	// SortKeys orders dictionary keys lexicographically. Otherwise
	// keys appear in unspecified order.
	SortKeys bool
	// Overwrite allows replacing an existing output file.
	Overwrite bool
}

// Dump saves all loaded fields and writes the record as JSON text to
// path. Byte strings that are not valid UTF-8 render as
// "hex::<hex digits>". Without Overwrite the write is exclusive-create
// and an existing file surfaces fs.ErrExist.
func (b *Backbone) Dump(path string, opts DumpOptions) error {
	var buf bytes.Buffer
	if err := b.DumpTo(&buf, opts); err != nil {
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if opts.Overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	file, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return err
	}
	if _, err := file.Write(buf.Bytes()); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// DumpTo renders the record as JSON text to w. The output always ends
// with a single newline, in every rendering mode.
func (b *Backbone) DumpTo(w io.Writer, opts DumpOptions) error {
	b.SaveFields()

	jw := &jsonWriter{sortKeys: opts.SortKeys}
	if opts.Tab {
		jw.indent = "\t"
	} else if opts.Indent > 0 {
		jw.indent = strings.Repeat(" ", opts.Indent)
	}

	if err := jw.value(b.Data); err != nil {
		return err
	}
	jw.buf.WriteByte('\n')
	_, err := w.Write(jw.buf.Bytes())
	return err
}

// jsonWriter renders the closed value universe a saved record can
// hold. encoding/json is unusable here: it base64s byte slices,
// force-sorts keys, and escapes HTML.
type jsonWriter struct {
	buf      bytes.Buffer
	indent   string
	sortKeys bool
	depth    int
}

func (w *jsonWriter) value(v any) error {
	switch value := v.(type) {
	case nil:
		w.buf.WriteString("null")
	case bool:
		if value {
			w.buf.WriteString("true")
		} else {
			w.buf.WriteString("false")
		}
	case int:
		w.buf.WriteString(strconv.FormatInt(int64(value), 10))
	case int64:
		w.buf.WriteString(strconv.FormatInt(value, 10))
	case uint64:
		w.buf.WriteString(strconv.FormatUint(value, 10))
	case string:
		w.text([]byte(value))
	case []byte:
		w.text(value)
	case time.Time:
		w.str(value.Format(dumpTimeLayout))
	case []any:
		return w.list(len(value), func(i int) error { return w.value(value[i]) })
	case []string:
		return w.list(len(value), func(i int) error { w.text([]byte(value[i])); return nil })
	case map[string]any:
		return w.dict(value)
	default:
		return fmt.Errorf("cannot dump value %v", v)
	}
	return nil
}

// text renders a byte string: as a JSON string when it is valid
// UTF-8, otherwise hex-encoded behind the hex:: prefix.
func (w *jsonWriter) text(data []byte) {
	if utf8.Valid(data) {
		w.str(string(data))
		return
	}
	w.str("hex::" + hex.EncodeToString(data))
}

func (w *jsonWriter) list(n int, item func(i int) error) error {
	w.buf.WriteByte('[')
	w.depth++
	for i := 0; i < n; i++ {
		w.separate(i)
		if err := item(i); err != nil {
			return err
		}
	}
	w.depth--
	w.close(n)
	w.buf.WriteByte(']')
	return nil
}

func (w *jsonWriter) dict(value map[string]any) error {
	keys := make([]string, 0, len(value))
	for key := range value {
		keys = append(keys, key)
	}
	if w.sortKeys {
		sort.Strings(keys)
	}

	w.buf.WriteByte('{')
	w.depth++
	for i, key := range keys {
		w.separate(i)
		w.text([]byte(key))
		w.buf.WriteString(": ")
		if err := w.value(value[key]); err != nil {
			return err
		}
	}
	w.depth--
	w.close(len(keys))
	w.buf.WriteByte('}')
	return nil
}

// separate writes the separator before item i: a comma after the
// first item, plus the newline-and-indent in indented mode.
func (w *jsonWriter) separate(i int) {
	if i > 0 {
		w.buf.WriteByte(',')
	}
	if w.indent == "" {
		if i > 0 {
			w.buf.WriteByte(' ')
		}
		return
	}
	w.buf.WriteByte('\n')
	for d := 0; d < w.depth; d++ {
		w.buf.WriteString(w.indent)
	}
}

// close drops the closing bracket to its own line in indented mode.
func (w *jsonWriter) close(n int) {
	if w.indent == "" || n == 0 {
		return
	}
	w.buf.WriteByte('\n')
	for d := 0; d < w.depth; d++ {
		w.buf.WriteString(w.indent)
	}
}

// str writes a JSON string literal. Only the characters JSON requires
// escaped are escaped; everything else passes through verbatim.
func (w *jsonWriter) str(s string) {
	w.buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			w.buf.WriteString(`\"`)
		case '\\':
			w.buf.WriteString(`\\`)
		case '\n':
			w.buf.WriteString(`\n`)
		case '\r':
			w.buf.WriteString(`\r`)
		case '\t':
			w.buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&w.buf, `\u%04x`, r)
			} else {
				w.buf.WriteRune(r)
			}
		}
	}
	w.buf.WriteByte('"')
}
