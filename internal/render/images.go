package render

import (
	"path"
	"regexp"
	"strings"

	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/config"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/textfmt"
)

// imageRule is a config.ImageRule with lowercased keywords.
type imageRule struct {
	config.ImageRule
	keywords []string
}

// productCue is a compiled config.ProductCue.
type productCue struct {
	image    string
	contains []string
	pattern  *regexp.Regexp
	requires []string
}

func compileImages(rules []config.ImageRule) ([]imageRule, map[string]imageRule) {
	list := make([]imageRule, 0, len(rules))
	byKey := make(map[string]imageRule, len(rules))
	for _, r := range rules {
		rule := imageRule{ImageRule: r, keywords: lowerAll(r.Keywords)}
		list = append(list, rule)
		byKey[r.Key] = rule
	}
	return list, byKey
}

func compileProducts(cues []config.ProductCue) ([]productCue, error) {
	out := make([]productCue, 0, len(cues))
	for _, c := range cues {
		cue := productCue{
			image:    c.Image,
			contains: lowerAll(c.Contains),
			requires: lowerAll(c.Requires),
		}
		if c.Pattern != "" {
			re, err := regexp.Compile("(?i)" + c.Pattern)
			if err != nil {
				return nil, err
			}
			cue.pattern = re
		}
		out = append(out, cue)
	}
	return out, nil
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// matches reports whether text introduces the cue's product.
func (c productCue) matches(text string) bool {
	lower := strings.ToLower(text)
	if containsAny(lower, c.contains) {
		return true
	}
	return c.pattern != nil && c.pattern.MatchString(lower) && containsAny(lower, c.requires)
}

// productStart returns the image key of the product text introduces, or ""
// when it introduces none.
func (r *Renderer) productStart(text string) string {
	for _, c := range r.products {
		if c.matches(text) {
			return c.image
		}
	}
	return ""
}

// titleImage returns the first rule whose keyword appears in title. Rules
// already placed in this render are skipped unless they wrap, since wrapped
// images belong to their subsection.
func (s *state) titleImage(title string) (imageRule, bool) {
	lower := strings.ToLower(title)
	for _, rule := range s.r.images {
		if rule.Placement != config.PlacementWrap && s.placed[rule.Key] {
			continue
		}
		if containsAny(lower, rule.keywords) {
			return rule, true
		}
	}
	return imageRule{}, false
}

// writeRuleImage writes the captioned container of a configured image and
// marks it placed.
func (s *state) writeRuleImage(rule imageRule) {
	s.placed[rule.Key] = true

	class := "image-container"
	if rule.Class != "" {
		class += " " + rule.Class
	}
	writeImage(&s.b, class, textfmt.EscapeHTML(rule.Src), textfmt.EscapeHTML(rule.Alt), textfmt.EscapeHTML(rule.Caption))
}

func writeImage(b *strings.Builder, class, src, alt, caption string) {
	b.WriteString(`<div class="` + class + `">` + "\n")
	b.WriteString(`<img src="` + src + `" alt="` + alt + `" />` + "\n")
	if caption != "" {
		b.WriteString(`<div class="image-caption">` + caption + "</div>\n")
	}
	b.WriteString("</div>\n")
}

// imageCaption derives a caption from an image path: the file name
// without directory or extension.
func imageCaption(p string) string {
	base := path.Base(strings.ReplaceAll(p, `\`, "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}
