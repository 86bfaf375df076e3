package interpreter

import (
	"regexp"
	"strconv"
)

var escapeRegex = regexp.MustCompile(`\\([0-9]{3})`)

// decodeEscapes rewrites every \DDD sequence to the character with decimal code DDD.
func decodeEscapes(s string) string {
	if len(s) < 4 {
		return s
	}
	return escapeRegex.ReplaceAllStringFunc(s, func(m string) string {
		code, _ := strconv.Atoi(m[1:])
		return string(rune(code))
	})
}
