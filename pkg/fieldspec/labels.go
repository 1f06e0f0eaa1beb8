package fieldspec

import (
	"regexp"
	"strings"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)

// DefaultLabel turns a field name such as "father_profession" into
// "Father Profession".
func DefaultLabel(name string) string {
	if name == "" {
		return ""
	}
	var segments []string
	for _, word := range splitWordsPattern.Split(name, -1) {
		if word == "" {
			continue
		}
		lower := strings.ToLower(word)
		segments = append(segments, strings.ToUpper(lower[:1])+lower[1:])
	}
	return strings.Join(segments, " ")
}
