package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// chipLabel returns the display form of a popular term ("chickpea" -> "Chickpea").
// A Caser keeps state between calls, so each label gets its own.
func chipLabel(term string) string {
	return cases.Title(language.English).String(strings.TrimSpace(term))
}

// padRight pads a string with spaces to fill width terminal cells.
// Uses lipgloss.Width to correctly handle ANSI codes and full-width characters.
func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	sw := lipgloss.Width(s)
	if sw >= width {
		// Use ANSI-aware truncation
		return ansi.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-sw)
}

// truncateRunes truncates a string to fit within maxWidth terminal cells.
// Uses runewidth to correctly handle full-width characters (CJK, emoji, etc.)
// that occupy 2 terminal cells but count as 1 rune.
// Also sanitizes the string by removing newlines and other control characters
// that could break the display layout.
func truncateRunes(s string, maxWidth int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\t", " ")

	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// wrapText wraps text to fit within width terminal cells.
// Uses runewidth to correctly handle full-width characters (CJK, emoji, etc.)
func wrapText(text string, width int) []string {
	if width <= 0 {
		width = 80
	}

	var result []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.ReplaceAll(line, "\t", "    ")
		if runewidth.StringWidth(line) <= width {
			result = append(result, line)
			continue
		}

		runes := []rune(line)
		for len(runes) > 0 {
			// Find how many runes fit within width
			currentWidth := 0
			breakAt := 0
			lastSpace := -1

			for i, r := range runes {
				rw := runewidth.RuneWidth(r)
				if currentWidth+rw > width {
					break
				}
				currentWidth += rw
				breakAt = i + 1
				if r == ' ' {
					lastSpace = i
				}
			}

			// Prefer breaking at a space if we found one in the latter half
			if lastSpace > breakAt/2 && breakAt < len(runes) {
				breakAt = lastSpace
			}
			if breakAt == 0 {
				// Single character too wide, take it anyway
				breakAt = 1
			}

			result = append(result, string(runes[:breakAt]))
			runes = runes[breakAt:]

			// Skip leading spaces on continuation lines
			for len(runes) > 0 && runes[0] == ' ' {
				runes = runes[1:]
			}
		}
	}
	return result
}

// truncateToWidth returns the prefix of s that fits within maxWidth visual columns.
// Uses ANSI-aware truncation to preserve escape sequences.
func truncateToWidth(s string, maxWidth int) string {
	return ansi.Truncate(s, maxWidth, "")
}

// skipToWidth returns the suffix of s starting after skipWidth visual columns.
// Uses ANSI-aware cutting to preserve escape sequences.
func skipToWidth(s string, skipWidth int) string {
	return ansi.Cut(s, skipWidth, 10000)
}
