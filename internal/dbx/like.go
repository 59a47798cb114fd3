package dbx

import "strings"

// LikeEscape is the escape character used by ContainsPattern. Queries must
// declare it with ESCAPE '\'.
const LikeEscape = `\`

var likeReplacer = strings.NewReplacer(
	`\`, `\\`,
	`%`, `\%`,
	`_`, `\_`,
)

// EscapeLike escapes the LIKE metacharacters in s.
func EscapeLike(s string) string {
	return likeReplacer.Replace(s)
}

// ContainsPattern builds a substring pattern for keyword.
func ContainsPattern(keyword string) string {
	return "%" + EscapeLike(keyword) + "%"
}
