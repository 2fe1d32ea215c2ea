package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Calculator is an interface for computing data dictionary checksums.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// CalculateNormalized computes a checksum of normalized content.
	// Normalization makes checksums resilient to formatting changes.
	CalculateNormalized(content []byte) string
}

// SHA256 implements checksum calculation using SHA-256.
// Normalization:
//  1. Remove XML comments (<!-- -->) outside CDATA sections
//  2. Drop whitespace between tags
//  3. Collapse remaining whitespace runs to single spaces
//
// Case is preserved: element names, codes and labels are case-sensitive.
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content.
func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// CalculateNormalized computes SHA-256 of normalized content.
func (c SHA256) CalculateNormalized(content []byte) string {
	normalized := c.normalize(string(content))
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:])
}

const (
	commentOpen  = "<!--"
	commentClose = "-->"
	cdataOpen    = "<![CDATA["
	cdataClose   = "]]>"
)

type scanState int

const (
	ssNormal scanState = iota
	ssComment
	ssCDATA
)

// normalize applies the normalization rules to content.
func (c SHA256) normalize(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	state := ssNormal
	pendingSpace := false
	i := 0

	for i < len(content) {
		switch state {
		case ssNormal:
			switch {
			case strings.HasPrefix(content[i:], commentOpen):
				state = ssComment
				i += len(commentOpen)
				continue
			case strings.HasPrefix(content[i:], cdataOpen):
				flushSpace(&b, &pendingSpace, '<')
				state = ssCDATA
				b.WriteString(cdataOpen)
				i += len(cdataOpen)
				continue
			}

			r, size := utf8.DecodeRuneInString(content[i:])
			i += size
			if unicode.IsSpace(r) {
				pendingSpace = b.Len() > 0
				continue
			}
			flushSpace(&b, &pendingSpace, r)
			b.WriteRune(r)

		case ssComment:
			end := strings.Index(content[i:], commentClose)
			if end < 0 {
				i = len(content)
				continue
			}
			i += end + len(commentClose)
			state = ssNormal

		case ssCDATA:
			end := strings.Index(content[i:], cdataClose)
			if end < 0 {
				b.WriteString(content[i:])
				i = len(content)
				continue
			}
			b.WriteString(content[i : i+end+len(cdataClose)])
			i += end + len(cdataClose)
			state = ssNormal
		}
	}

	return b.String()
}

// flushSpace writes a pending single space before next, unless the space
// sits between two tags or closes a tag.
func flushSpace(b *strings.Builder, pending *bool, next rune) {
	if !*pending {
		return
	}
	*pending = false
	s := b.String()
	if next == '>' || (next == '<' && strings.HasSuffix(s, ">")) {
		return
	}
	b.WriteByte(' ')
}
