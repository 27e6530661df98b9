package cleanread

import (
	"strconv"
	"strings"
)

// NoReadTime is shown when there is nothing to read.
const NoReadTime = "--"

// CountWords counts whitespace-separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// ReadTimeMinutes returns ceil(words / wpm).
func ReadTimeMinutes(words, wpm int) int {
	if words <= 0 {
		return 0
	}
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}
	return (words + wpm - 1) / wpm
}

// FormatReadTime renders minutes as "1 min" or "N mins"; zero renders as "--".
func FormatReadTime(minutes int) string {
	switch {
	case minutes <= 0:
		return NoReadTime
	case minutes == 1:
		return "1 min"
	default:
		return strconv.Itoa(minutes) + " mins"
	}
}
