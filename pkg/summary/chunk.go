package summary

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultChunkSize is the chunk limit in characters.
const DefaultChunkSize = 4000

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Normalize strips markup and collapses whitespace.
func Normalize(content string) string {
	text := tagPattern.ReplaceAllString(content, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Sentences splits normalized text after '.', '!' or '?' followed by
// whitespace. The terminator stays with its sentence.
func Sentences(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if (r == '.' || r == '!' || r == '?') && i+size < len(text) {
			next, _ := utf8.DecodeRuneInString(text[i+size:])
			if unicode.IsSpace(next) {
				out = append(out, text[start:i+size])
				j := i + size
				for j < len(text) {
					ws, n := utf8.DecodeRuneInString(text[j:])
					if !unicode.IsSpace(ws) {
						break
					}
					j += n
				}
				start, i = j, j
				continue
			}
		}
		i += size
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

// Chunks packs the sentences of normalized text greedily into chunks of
// at most size characters, joined by single spaces. A sentence longer than
// size becomes a chunk of its own; text is never split mid-sentence.
// Text within size is returned as one chunk.
func Chunks(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if text == "" {
		return nil
	}
	if utf8.RuneCountInString(text) <= size {
		return []string{text}
	}

	var (
		chunks  []string
		current strings.Builder
		length  int
	)
	for _, sentence := range Sentences(text) {
		n := utf8.RuneCountInString(sentence)
		switch {
		case length == 0:
		case length+1+n <= size:
			current.WriteByte(' ')
			length++
		default:
			chunks = append(chunks, current.String())
			current.Reset()
			length = 0
		}
		current.WriteString(sentence)
		length += n
	}
	if length > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
