package assistant

import "strings"

// query holds the two forms of one user input: the trimmed original for any
// echo-back, and a lower-cased whitespace-collapsed copy used for matching.
type query struct {
	display string
	text    string
}

var markupReplacer = strings.NewReplacer("<", "", ">", "")

// normalize strips markup characters so nothing matched here can inject tags
// into the rendered response. Total; never fails.
func normalize(raw string) query {
	display := strings.TrimSpace(markupReplacer.Replace(raw))
	text := strings.Join(strings.Fields(strings.ToLower(display)), " ")
	return query{display: display, text: text}
}
