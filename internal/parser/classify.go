package parser

import (
	"regexp"
	"strings"
	"unicode"
)

// Line is one non-blank source line: its trimmed text and the width of its
// leading whitespace.
type Line struct {
	Text   string
	Indent int
}

// newLine trims raw and records its indentation.
func newLine(raw string) Line {
	trimmed := strings.TrimLeftFunc(raw, unicode.IsSpace)
	return Line{
		Text:   strings.TrimRightFunc(trimmed, unicode.IsSpace),
		Indent: len(raw) - len(trimmed),
	}
}

var (
	separatorRe     = regexp.MustCompile(`^=+$`)
	ruleRe          = regexp.MustCompile(`^-+$`)
	sectionRe       = regexp.MustCompile(`^(\d+)\.\s+(.+)$`)
	sectionStartRe  = regexp.MustCompile(`^\d+\.\s+[A-Z]`)
	subsectionRe    = regexp.MustCompile(`^(\d+)\.(\d+)\s+(.+)$`)
	fullPageImageRe = regexp.MustCompile(`(?i)^\[FULLPAGE_IMAGE:\s*(.+)\]$`)
	imageRe         = regexp.MustCompile(`(?i)^\[IMAGE:\s*(.+)\]$`)
	colonLabelRe    = regexp.MustCompile(`^[A-Z][A-Z\s&/()\-:]+:$`)
	bareLabelRe     = regexp.MustCompile(`^[A-Z][A-Z\s&/()\-]+$`)
	bulletRe        = regexp.MustCompile(`^[•\-*]\s+(.+)$`)
	numberedRe      = regexp.MustCompile(`^(\d+)\.\s+(.+)$`)
	fieldRe         = regexp.MustCompile(`(?i)^(Address|Phone|Email|Website):\s*(.*)$`)
	emphasisRe      = regexp.MustCompile(`(?i)^(?:EMPHASIS|IMPORTANT|CRITICAL):\s*(.+)$`)
	emailFieldRe    = regexp.MustCompile(`(?i)^(SUBJECT|FROM|TO):\s*(.*)$`)
)

// minLabelLength is the length a line must exceed to be an ALL-CAPS label.
const minLabelLength = 5

// BlockKind names the special block a line opens.
type BlockKind int

// Special block openers, in the order they are tried.
const (
	BlockNone BlockKind = iota
	BlockKeyPoints
	BlockEmail
	BlockHookPoint
	BlockExample
	BlockEmphasis
)

var blockOpeners = []struct {
	kind     BlockKind
	prefixes []string
}{
	{BlockKeyPoints, []string{"KEY", "NOTE:", "DATA TO CAPTURE"}},
	{BlockEmail, []string{"EMAIL TEMPLATE:", "SUBJECT:", "FROM:", "TO:"}},
	{BlockHookPoint, []string{"HOOK POINT:", "HOOK:"}},
	{BlockExample, []string{"EXAMPLE:", "CASE STUDY:"}},
	{BlockEmphasis, []string{"EMPHASIS:", "IMPORTANT:", "CRITICAL:"}},
}

// IsSeparator reports whether line consists solely of '=' characters.
func IsSeparator(line string) bool {
	return separatorRe.MatchString(line)
}

// IsRule reports whether line is a separator or a run of '-' characters.
func IsRule(line string) bool {
	return separatorRe.MatchString(line) || ruleRe.MatchString(line)
}

// SectionHeader matches "<int>. <title>" when next is a separator line.
func SectionHeader(line, next string) (number, title string, ok bool) {
	if !IsSeparator(next) {
		return "", "", false
	}
	m := sectionRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}

// IsSectionStart reports whether a table-of-contents line is really the
// first section header: "<int>. <Capital>" without a page reference.
func IsSectionStart(line string) bool {
	return sectionStartRe.MatchString(line) &&
		!strings.Contains(line, "TABLE OF CONTENTS") &&
		!strings.Contains(line, "Page")
}

// SubsectionHeader matches "<int>.<int> <title>".
func SubsectionHeader(line string) (section, number, title string, ok bool) {
	m := subsectionRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", "", false
	}
	return m[1], m[2], strings.TrimSpace(m[3]), true
}

// ImageDirective matches "[FULLPAGE_IMAGE: path]" or "[IMAGE: path]".
func ImageDirective(line string) (path string, fullPage, ok bool) {
	if m := fullPageImageRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), true, true
	}
	if m := imageRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), false, true
	}
	return "", false, false
}

// IsLabel reports whether line is an ALL-CAPS label rendered as an h4:
// uppercase letters with & / ( ) - and spaces, optionally ending with a
// colon, longer than five characters and not starting with "TOTAL".
func IsLabel(line string) bool {
	if len(line) <= minLabelLength || strings.HasPrefix(line, "TOTAL") {
		return false
	}
	return colonLabelRe.MatchString(line) || bareLabelRe.MatchString(line)
}

// LabelText strips the trailing colon of a label line.
func LabelText(line string) string {
	return strings.TrimSpace(strings.TrimSuffix(line, ":"))
}

// IsBoundaryLabel reports whether line is a colon-terminated ALL-CAPS
// heading, the terminator used by boxes, lists and paragraphs.
func IsBoundaryLabel(line string) bool {
	return colonLabelRe.MatchString(line)
}

// IsCategory reports whether line is a bare ALL-CAPS grouping label such as
// "VINEYARD/WINERY".
func IsCategory(line string) bool {
	return len(line) > minLabelLength && bareLabelRe.MatchString(line)
}

// BlockOpener returns the special block line opens, matched by a
// case-insensitive prefix.
func BlockOpener(line string) BlockKind {
	upper := strings.ToUpper(line)
	for _, o := range blockOpeners {
		for _, p := range o.prefixes {
			if strings.HasPrefix(upper, p) {
				return o.kind
			}
		}
	}
	return BlockNone
}

// ListMarker matches a bullet or numbered item and returns its text.
func ListMarker(line string) (text string, numbered, ok bool) {
	if m := bulletRe.FindStringSubmatch(line); m != nil {
		return m[1], false, true
	}
	if m := numberedRe.FindStringSubmatch(line); m != nil {
		return m[2], true, true
	}
	return "", false, false
}

// NumberedItem matches "<int>. <text>".
func NumberedItem(line string) (number, text string, ok bool) {
	m := numberedRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}

// ProspectField matches "Address:", "Phone:", "Email:" or "Website:".
// name is lowercased.
func ProspectField(line string) (name, value string, ok bool) {
	m := fieldRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return strings.ToLower(m[1]), strings.TrimSpace(m[2]), true
}

// IsProspectStart reports whether lines[i] opens a prospect record: a
// numbered line followed, within the next four lines and before another
// numbered line, by a prospect field.
func IsProspectStart(lines []Line, i int) bool {
	if _, _, ok := NumberedItem(lines[i].Text); !ok {
		return false
	}
	for j := i + 1; j < len(lines) && j < i+prospectLookahead; j++ {
		if _, _, ok := ProspectField(lines[j].Text); ok {
			return true
		}
		if _, _, ok := NumberedItem(lines[j].Text); ok {
			return false
		}
	}
	return false
}
