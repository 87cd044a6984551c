// ABOUTME: Splits source documents into passages for embedding and indexing
// ABOUTME: Paragraph-based splitting with length merging for long documents
package index

import (
	"strings"

	"github.com/google/uuid"
	"github.com/harper/healthbot/internal/models"
)

// MaxChunkChars caps chunk size so each passage fits comfortably in a
// generation prompt alongside the other retrieved passages.
const MaxChunkChars = 1000

// SplitDocument splits document text into chunks for indexing. Paragraphs
// (blank-line separated) are the base unit; adjacent short paragraphs are
// merged up to MaxChunkChars, and oversized paragraphs are split on
// sentence boundaries.
func SplitDocument(source, text string) []models.Chunk {
	var pieces []string
	var current strings.Builder

	for _, para := range splitParagraphs(text) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if len(para) > MaxChunkChars {
			if current.Len() > 0 {
				pieces = append(pieces, current.String())
				current.Reset()
			}
			pieces = append(pieces, splitLongParagraph(para)...)
			continue
		}

		if current.Len() > 0 && current.Len()+len(para)+2 > MaxChunkChars {
			pieces = append(pieces, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	if current.Len() > 0 {
		pieces = append(pieces, current.String())
	}

	chunks := make([]models.Chunk, 0, len(pieces))
	for i, content := range pieces {
		chunks = append(chunks, models.Chunk{
			ChunkID: uuid.New().String(),
			Source:  source,
			Seq:     i,
			Content: content,
		})
	}
	return chunks
}

// splitParagraphs splits text by blank lines
func splitParagraphs(text string) []string {
	// Normalize Windows line endings first
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n\n")
}

// splitLongParagraph breaks an oversized paragraph on sentence boundaries
func splitLongParagraph(para string) []string {
	sentences := strings.Split(para, ". ")

	var pieces []string
	var current strings.Builder

	for i, sent := range sentences {
		sent = strings.TrimSpace(sent)
		if sent == "" {
			continue
		}
		if i < len(sentences)-1 && !strings.HasSuffix(sent, ".") {
			sent += "."
		}

		// A single sentence over the cap gets hard-split so MaxChunkChars
		// holds for every chunk
		if len(sent) > MaxChunkChars {
			if current.Len() > 0 {
				pieces = append(pieces, current.String())
				current.Reset()
			}
			pieces = append(pieces, hardSplit(sent)...)
			continue
		}

		if current.Len() > 0 && current.Len()+len(sent)+1 > MaxChunkChars {
			pieces = append(pieces, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sent)
	}
	if current.Len() > 0 {
		pieces = append(pieces, current.String())
	}
	return pieces
}

// hardSplit cuts text into MaxChunkChars pieces on rune boundaries
func hardSplit(text string) []string {
	runes := []rune(text)

	var pieces []string
	for len(runes) > 0 {
		n := MaxChunkChars
		if n > len(runes) {
			n = len(runes)
		}
		pieces = append(pieces, string(runes[:n]))
		runes = runes[n:]
	}
	return pieces
}
