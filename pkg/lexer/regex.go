package lexer

import (
	"regexp"
)

const identChars = `[A-Za-z0-9_\-$&%*!?]`
const identStart = `[A-Za-z_\-$&%*!?]`

// Token regex patterns
var tokenRegexes = map[TokenType]*regexp.Regexp{
	HEADER: regexp.MustCompile(`^(?i)\.ippcode23`),
	VAR:    regexp.MustCompile(`^(GF|LF|TF)@` + identStart + identChars + `*`),
	INT:    regexp.MustCompile(`^int@[+-]?[0-9]+`),
	BOOL:   regexp.MustCompile(`^bool@(true|false)`),
	NIL:    regexp.MustCompile(`^nil@nil`),
	STRING: regexp.MustCompile(`^string@([^\s#\\]|\\[0-9]{3})*`),
	WORD:   regexp.MustCompile(`^` + identStart + identChars + `*`),
}

var (
	whitespaceRegex = regexp.MustCompile(`^[ \t\r\f\v]+`)
	commentRegex    = regexp.MustCompile(`^#[^\n]*`)
)

// Token precedence order for matching (prefixed forms before bare words)
var tokenPrecedenceOrder = []TokenType{
	HEADER, VAR, INT, BOOL, NIL, STRING, WORD,
}

// MatchToken matches the first token at the start of s. Whitespace and
// comments are reported as EOF with the skipped text as lexeme.
func MatchToken(s string) (TokenType, string, bool) {
	if s == "" {
		return EOF, "", false
	} else if match := whitespaceRegex.FindString(s); match != "" {
		return EOF, match, true
	} else if match := commentRegex.FindString(s); match != "" {
		return EOF, match, true
	}

	for _, tokenType := range tokenPrecedenceOrder {
		if match := tokenRegexes[tokenType].FindString(s); match != "" {
			if !atBoundary(s[len(match):]) {
				continue
			}
			return tokenType, match, true
		}
	}

	return ILLEGAL, s[:illegalLength(s)], false
}

// atBoundary reports whether a token may end right before rest
func atBoundary(rest string) bool {
	if rest == "" {
		return true
	}
	switch rest[0] {
	case ' ', '\t', '\r', '\n', '\f', '\v', '#':
		return true
	default:
		return false
	}
}

// illegalLength returns the length of the malformed word starting s
func illegalLength(s string) int {
	for n := 1; n < len(s); n++ {
		if atBoundary(s[n:]) {
			return n
		}
	}
	return len(s)
}
