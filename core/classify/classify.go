// Package classify tests single report lines against the dialect rules.
// Every predicate expects a line already trimmed of surrounding whitespace
// and looks at nothing but that line.
package classify

import (
	"regexp"
	"strings"
)

// Kind is the block a line starts.
type Kind int

const (
	Blank Kind = iota
	TableRow
	Heading
	Bullet
	Numbered
	Rule
	Text
)

// String returns a short name for the kind, used by the inspect command.
func (k Kind) String() string {
	switch k {
	case Blank:
		return "blank"
	case TableRow:
		return "table"
	case Heading:
		return "heading"
	case Bullet:
		return "bullet"
	case Numbered:
		return "numbered"
	case Rule:
		return "rule"
	default:
		return "text"
	}
}

// MaxHeadingLevel is the deepest heading level; more '#' characters are
// treated as this level.
const MaxHeadingLevel = 4

var (
	separatorRegex = regexp.MustCompile(`^\|[\s\-:|]+\|$`)
	bulletRegex    = regexp.MustCompile(`^[-*]\s+`)
	numberedRegex  = regexp.MustCompile(`^\d+\.\s+`)
	ruleRegex      = regexp.MustCompile(`^[-*_]{3,}$`)
)

// IsBlank reports whether the line is empty.
func IsBlank(line string) bool {
	return line == ""
}

// IsTableRow reports whether the line starts and ends with '|' and has at
// least two of them.
func IsTableRow(line string) bool {
	return strings.HasPrefix(line, "|") &&
		strings.HasSuffix(line, "|") &&
		strings.Count(line, "|") >= 2
}

// IsTableSeparator reports whether the line is made only of pipes, dashes,
// colons and whitespace, e.g. "|---|:--:|".
func IsTableSeparator(line string) bool {
	return separatorRegex.MatchString(line)
}

func IsBulletPoint(line string) bool {
	return bulletRegex.MatchString(line)
}

func IsNumberedListItem(line string) bool {
	return numberedRegex.MatchString(line)
}

// IsHorizontalRule matches a whole line of three or more '-', '*' or '_'.
func IsHorizontalRule(line string) bool {
	return ruleRegex.MatchString(line)
}

func IsHeading(line string) bool {
	return strings.HasPrefix(line, "#")
}

// IsSpecial reports whether the line ends a paragraph.
func IsSpecial(line string) bool {
	return IsBlank(line) ||
		IsHeading(line) ||
		IsTableRow(line) ||
		IsTableSeparator(line) ||
		IsBulletPoint(line) ||
		IsNumberedListItem(line) ||
		IsHorizontalRule(line)
}

// Classify returns the first matching kind in the order
// blank, table, heading, bullet, numbered, rule, text.
func Classify(line string) Kind {
	switch {
	case IsBlank(line):
		return Blank
	case IsTableRow(line):
		return TableRow
	case IsHeading(line):
		return Heading
	case IsBulletPoint(line):
		return Bullet
	case IsNumberedListItem(line):
		return Numbered
	case IsHorizontalRule(line):
		return Rule
	default:
		return Text
	}
}

// HeadingLevel counts the leading '#' characters, capped at MaxHeadingLevel.
func HeadingLevel(line string) int {
	level := len(line) - len(strings.TrimLeft(line, "#"))
	if level > MaxHeadingLevel {
		level = MaxHeadingLevel
	}
	return level
}

// StripHeading removes the leading '#' characters and the whitespace after them.
func StripHeading(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, "#"))
}

// StripBullet removes a leading "-" or "*" marker and its whitespace.
func StripBullet(line string) string {
	return bulletRegex.ReplaceAllString(line, "")
}

// StripNumber removes a leading "N." marker and its whitespace.
func StripNumber(line string) string {
	return numberedRegex.ReplaceAllString(line, "")
}
