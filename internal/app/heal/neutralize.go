package heal

import "strings"

// DisabledMarker prefixes every line this process comments out, so operators
// can tell our neutralizations apart from hand-written comments and revert
// them selectively.
const DisabledMarker = "# wardmind-disabled: "

// Neutralize comments out every line whose first token matches one of the
// directives. Blank lines, comments, and already-neutralized lines pass
// through untouched, so the transform is idempotent. Returns the rewritten
// text and the number of lines changed.
func Neutralize(text string, directives []string) (string, int) {
	if len(directives) == 0 {
		return text, 0
	}
	match := make(map[string]bool, len(directives))
	for _, d := range directives {
		match[d] = true
	}

	lines := strings.Split(text, "\n")
	changed := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		token := trimmed
		if idx := strings.IndexAny(trimmed, " \t"); idx >= 0 {
			token = trimmed[:idx]
		}
		if !match[token] {
			continue
		}
		lines[i] = DisabledMarker + line
		changed++
	}
	if changed == 0 {
		return text, 0
	}
	return strings.Join(lines, "\n"), changed
}
