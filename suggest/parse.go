package suggest

import (
	"regexp"
	"strings"
)

var (
	listItem  = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+(.+)$`)
	// "May" only counts when capitalised; lowercase "may" is the modal verb.
	timeWords = regexp.MustCompile(`\b(?:(?i:january|february|march|april|june|july|august|september|october|november|december|weeks?|months?|days?)|May)\b`)
	markup    = strings.NewReplacer("**", "", "__", "", "`", "")
)

// ParseReply pulls crops and timeline steps out of an unstructured completion.
// Crops are list items that do not mention a time; timeline steps are lines
// that do. Anything else is ignored and only kept in the raw text.
func ParseReply(text string) (crops, timeline []string) {
	crops, timeline = []string{}, []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(markup.Replace(line))
		if line == "" {
			continue
		}
		item := line
		isItem := false
		if m := listItem.FindStringSubmatch(line); m != nil {
			item, isItem = strings.TrimSpace(m[1]), true
		}
		switch {
		case timeWords.MatchString(item):
			timeline = append(timeline, item)
		case isItem:
			crops = append(crops, cropName(item))
		}
	}
	return crops, timeline
}

// cropName keeps the part before any explanation ("Maize: drought tolerant" -> "Maize").
func cropName(item string) string {
	for _, sep := range []string{":", " - ", " – ", "("} {
		if i := strings.Index(item, sep); i > 0 {
			item = item[:i]
		}
	}
	return strings.TrimSpace(item)
}
