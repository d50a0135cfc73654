package tsload

import (
	"strconv"
	"strings"
)

// unquote returns the value of a string literal written with single or
// double quotes. Escapes Go does not understand are kept verbatim.
func unquote(lit string) string {
	if len(lit) >= 2 && lit[0] == '\'' && lit[len(lit)-1] == '\'' {
		lit = requote(lit[1 : len(lit)-1])
	}
	if v, err := strconv.Unquote(lit); err == nil {
		return v
	}
	return strings.Trim(lit, `"'`)
}

// requote rewrites the body of a single-quoted literal as a double-quoted one.
func requote(body string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(body); i++ {
		switch ch := body[i]; {
		case ch == '\\' && i+1 < len(body):
			if body[i+1] != '\'' {
				sb.WriteByte(ch)
			}
			sb.WriteByte(body[i+1])
			i++
		case ch == '"':
			sb.WriteString(`\"`)
		default:
			sb.WriteByte(ch)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
