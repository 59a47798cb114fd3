// Package models defines the records persisted by eventdesk and the value
// types passed between repositories and services.
package models

import (
	"strings"

	"github.com/dmitrijs2005/eventdesk/internal/common"
)

// Theme is a display preference stored per principal.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	DefaultTheme = ThemeLight
)

// ParseTheme accepts "light" or "dark" in any case.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", common.ErrInvalidTheme
}

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}
