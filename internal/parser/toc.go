package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/doctree"
)

var (
	tocSectionRe    = regexp.MustCompile(`^(\d+)\.\s+(.+?)\s+\.{3,}\s+Page\s+(\d+)$`)
	tocSubsectionRe = regexp.MustCompile(`^\s+(\d+)\.(\d+)\s+(.+)$`)
)

// parseTOC reads the literal contents page: "N. Title ..... Page P" entries,
// each followed by indented "N.M Title" subentries. Unrecognized lines are
// ignored.
func parseTOC(raw []string) []doctree.TOCEntry {
	var entries []doctree.TOCEntry

	for _, r := range raw {
		if m := tocSectionRe.FindStringSubmatch(strings.TrimSpace(r)); m != nil {
			n, _ := strconv.Atoi(m[1])
			page, _ := strconv.Atoi(m[3])
			entries = append(entries, doctree.TOCEntry{
				Number:     n,
				Title:      strings.TrimSpace(m[2]),
				PageNumber: page,
			})
			continue
		}

		m := tocSubsectionRe.FindStringSubmatch(strings.TrimRight(r, " \t"))
		if m == nil || len(entries) == 0 {
			continue
		}
		last := &entries[len(entries)-1]
		last.Subsections = append(last.Subsections, doctree.TOCSubentry{
			Number: m[2],
			Title:  strings.TrimSpace(m[3]),
			ID:     doctree.SubsectionID(last.Number, m[2]),
		})
	}
	return entries
}
