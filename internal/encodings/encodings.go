// Package encodings provides the named text encodings tried when decoding
// delimited text files, and a charset hint for files none of them fit.
//
// Every Encoding decodes strictly: a byte sequence that is not valid in the
// encoding is an error, never a replacement character. This is what lets a
// loader walk an ordered candidate list and stop at the first encoding that
// really fits the file.
package encodings

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// ErrInvalidBytes indicates input that is not valid in the encoding.
var ErrInvalidBytes = errors.New("invalid byte sequence")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Encoding decodes a whole file to UTF-8 text.
type Encoding interface {
	// Name returns the canonical encoding name.
	Name() string

	// Decode converts b to a UTF-8 string or fails with ErrInvalidBytes.
	Decode(b []byte) (string, error)
}

type utf8Encoding struct {
	stripBOM bool
}

func (e utf8Encoding) Name() string {
	if e.stripBOM {
		return "utf-8-sig"
	}
	return "utf-8"
}

func (e utf8Encoding) Decode(b []byte) (string, error) {
	if e.stripBOM {
		b = bytes.TrimPrefix(b, utf8BOM)
	}
	if off := invalidUTF8Offset(b); off >= 0 {
		return "", fmt.Errorf("%w at offset %d", ErrInvalidBytes, off)
	}
	return string(b), nil
}

func invalidUTF8Offset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}

// xtextEncoding adapts an x/text encoding. Its decoders substitute U+FFFD
// for bad input, so any replacement character in the output is a failure.
type xtextEncoding struct {
	name string
	enc  encoding.Encoding
	// validate runs before decoding to reject bytes outside a subset.
	validate func([]byte) error
}

func (e xtextEncoding) Name() string { return e.name }

func (e xtextEncoding) Decode(b []byte) (string, error) {
	if e.validate != nil {
		if err := e.validate(b); err != nil {
			return "", err
		}
	}
	out, err := e.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBytes, err)
	}
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", fmt.Errorf("%w: unmappable sequence", ErrInvalidBytes)
	}
	return string(out), nil
}

// validateEUCCN accepts only ASCII and GB2312 double-byte pairs.
func validateEUCCN(b []byte) error {
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c < 0x80 {
			continue
		}
		if c < 0xA1 || c > 0xF7 || i+1 >= len(b) || b[i+1] < 0xA1 || b[i+1] > 0xFE {
			return fmt.Errorf("%w at offset %d", ErrInvalidBytes, i)
		}
		i++
	}
	return nil
}

// Built-in encodings.
var (
	UTF8    Encoding = utf8Encoding{}
	UTF8SIG Encoding = utf8Encoding{stripBOM: true}
	GBK     Encoding = xtextEncoding{name: "gbk", enc: simplifiedchinese.GBK}
	GB2312  Encoding = xtextEncoding{name: "gb2312", enc: simplifiedchinese.GBK, validate: validateEUCCN}
	GB18030 Encoding = xtextEncoding{name: "gb18030", enc: simplifiedchinese.GB18030}
	Latin1  Encoding = xtextEncoding{name: "latin-1", enc: charmap.ISO8859_1}
)

// Registry maps encoding names and aliases to encodings.
type Registry struct {
	byName map[string]Encoding
}

// NewRegistry creates a registry holding the built-in encodings.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]Encoding)}
	r.Register(UTF8, "utf8")
	r.Register(UTF8SIG, "utf8-sig")
	r.Register(GBK, "cp936")
	r.Register(GB2312, "euc-cn")
	r.Register(GB18030)
	r.Register(Latin1, "latin1", "iso-8859-1", "iso8859-1")
	return r
}

// Register adds an encoding under its name and any aliases.
func (r *Registry) Register(e Encoding, aliases ...string) {
	r.byName[normaliseName(e.Name())] = e
	for _, alias := range aliases {
		r.byName[normaliseName(alias)] = e
	}
}

// Get looks up an encoding by name or alias, case-insensitively.
// Underscores and dashes are interchangeable.
func (r *Registry) Get(name string) (Encoding, bool) {
	e, ok := r.byName[normaliseName(name)]
	return e, ok
}

// Has returns true if name resolves to an encoding.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Resolve maps an ordered list of names to encodings, preserving order.
func (r *Registry) Resolve(names []string) ([]Encoding, error) {
	if len(names) == 0 {
		return nil, errors.New("no encodings configured")
	}
	out := make([]Encoding, 0, len(names))
	for _, name := range names {
		e, ok := r.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown encoding: %s", name)
		}
		out = append(out, e)
	}
	return out, nil
}

// Names returns the canonical names of all registered encodings, sorted.
func (r *Registry) Names() []string {
	seen := make(map[string]struct{})
	for _, e := range r.byName {
		seen[e.Name()] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normaliseName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}
