package ingest

import (
	"strings"
	"unicode/utf8"
)

// Piece is one window of a split document with its byte offset in the
// original text.
type Piece struct {
	Text       string
	StartIndex int
}

// Splitter cuts text into overlapping windows of roughly ChunkSize bytes,
// preferring to break at paragraph, line, and word boundaries.
type Splitter struct {
	ChunkSize int
	Overlap   int
}

var separators = []string{"\n\n", "\n", " "}

// Split returns the chunk windows for a document. A document at or under
// the chunk size is returned whole.
func (s Splitter) Split(text string) []Piece {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	// a window that cannot advance would loop forever
	if s.ChunkSize <= 0 || len(text) <= s.ChunkSize {
		return []Piece{{Text: text, StartIndex: 0}}
	}

	var pieces []Piece
	for start := 0; start < len(text); {
		end := start + s.ChunkSize
		if end >= len(text) {
			pieces = append(pieces, Piece{Text: text[start:], StartIndex: start})
			break
		}
		end = s.breakAt(text, start, end)
		pieces = append(pieces, Piece{Text: text[start:end], StartIndex: start})

		next := end - s.Overlap
		if next <= start {
			next = end
		}
		for next < len(text) && !utf8.RuneStart(text[next]) {
			next++
		}
		start = next
	}
	return pieces
}

// breakAt moves the window end back to the nearest separator in the second
// half of the window, so chunks end on natural boundaries when possible.
func (s Splitter) breakAt(text string, start, end int) int {
	window := text[start:end]
	floor := len(window) / 2
	for _, sep := range separators {
		if idx := strings.LastIndex(window, sep); idx > floor {
			return start + idx + len(sep)
		}
	}
	// no separator to cut at; keep the raw cut off the middle of a rune
	for end > start && !utf8.RuneStart(text[end]) {
		end--
	}
	if end == start {
		// window smaller than the rune it landed in; take the whole rune
		end = start + 1
		for end < len(text) && !utf8.RuneStart(text[end]) {
			end++
		}
	}
	return end
}
