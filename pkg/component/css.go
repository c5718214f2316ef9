package component

import (
	"strings"
	"unicode"
)

const bundledCSSMarker = "const __vite__css ="

// ExtractBundledCSS returns the stylesheet held by a bundler CSS module of
// the form
//
//	const __vite__css = "body { color: red }\n"
//
// Input without the marker is returned unchanged. Only \n and \t escapes
// are translated; any other escaped character stands for itself.
func ExtractBundledCSS(raw string) string {
	start := strings.Index(raw, bundledCSSMarker)
	if start < 0 {
		return raw
	}
	rest := strings.TrimLeftFunc(raw[start+len(bundledCSSMarker):], unicode.IsSpace)
	if rest == "" || (rest[0] != '"' && rest[0] != '\'') {
		return raw
	}
	quote := rest[0]

	var sb strings.Builder
	escaped := false
	for i := 1; i < len(rest); i++ {
		ch := rest[i]
		switch {
		case escaped:
			switch ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(ch)
			}
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == quote:
			return sb.String()
		default:
			sb.WriteByte(ch)
		}
	}
	return sb.String()
}
