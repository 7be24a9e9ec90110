package summary

import (
	"strings"
	"unicode"
)

// sentence-ending runes recognized by the splitter.
func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// SplitSentences splits text at whitespace runs that follow sentence-ending
// punctuation. The punctuation stays attached to its sentence.
func SplitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) || i+1 >= len(runes) || !unicode.IsSpace(runes[i+1]) {
			continue
		}
		sentences = append(sentences, string(runes[start:i+1]))
		i++
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			i++
		}
		start = i
		i--
	}
	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}
	return sentences
}

// Extract condenses text to its first, middle and last sentences, joined by
// single spaces. Texts of keep sentences or fewer pass through unchanged.
func Extract(text string, keep int) string {
	sentences := SplitSentences(text)
	if len(sentences) <= keep {
		return text
	}
	mid := len(sentences) / 2
	return strings.Join([]string{sentences[0], sentences[mid], sentences[len(sentences)-1]}, " ")
}
