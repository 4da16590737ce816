package config

import (
	"fmt"
	"strings"
)

// TableStyle names a border preset for listings.
type TableStyle string

const (
	StyleASCIIFull                 TableStyle = "ascii_full"
	StyleASCIIFullCondensed        TableStyle = "ascii_full_condensed"
	StyleASCIINoBorders            TableStyle = "ascii_no_borders"
	StyleASCIIBordersOnly          TableStyle = "ascii_borders_only"
	StyleASCIIBordersOnlyCondensed TableStyle = "ascii_borders_only_condensed"
	StyleASCIIHorizontalOnly       TableStyle = "ascii_horizontal_only"
	StyleASCIIMarkdown             TableStyle = "ascii_markdown"
	StyleUTF8Full                  TableStyle = "utf8_full"
	StyleUTF8FullCondensed         TableStyle = "utf8_full_condensed"
	StyleUTF8NoBorders             TableStyle = "utf8_no_borders"
	StyleUTF8BordersOnly           TableStyle = "utf8_borders_only"
	StyleUTF8HorizontalOnly        TableStyle = "utf8_horizontal_only"
	StyleNothing                   TableStyle = "nothing"
)

// TableStyles lists every accepted style.
var TableStyles = []TableStyle{
	StyleASCIIFull, StyleASCIIFullCondensed, StyleASCIINoBorders,
	StyleASCIIBordersOnly, StyleASCIIBordersOnlyCondensed, StyleASCIIHorizontalOnly,
	StyleASCIIMarkdown, StyleUTF8Full, StyleUTF8FullCondensed, StyleUTF8NoBorders,
	StyleUTF8BordersOnly, StyleUTF8HorizontalOnly, StyleNothing,
}

// TableStyleParseError is returned for unknown style names.
type TableStyleParseError struct {
	Value string
}

func (e *TableStyleParseError) Error() string {
	return fmt.Sprintf("invalid table style %q (expected one of %s)", e.Value, StyleNames())
}

// StyleNames returns the accepted style names, comma separated.
func StyleNames() string {
	names := make([]string, len(TableStyles))
	for i, s := range TableStyles {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// ParseTableStyle accepts snake_case, kebab-case and PascalCase style names
// ("utf8_full", "utf8-full", "Utf8Full").
func ParseTableStyle(s string) (TableStyle, error) {
	norm := compactStyle(s)
	for _, style := range TableStyles {
		if compactStyle(string(style)) == norm {
			return style, nil
		}
	}
	return "", &TableStyleParseError{Value: s}
}

func compactStyle(s string) string {
	return strings.NewReplacer("_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}

// Or returns s, or def when s is unset.
func (s TableStyle) Or(def TableStyle) TableStyle {
	if s == "" {
		return def
	}
	return s
}
