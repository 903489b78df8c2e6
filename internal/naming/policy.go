package naming

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Policy holds the compiled codec tag pattern and ignored prefixes.
type Policy struct {
	pattern  *regexp.Regexp
	prefixes []string
}

// New compiles a Policy. Tags are matched case-insensitively inside square
// brackets; prefixes are tried in order and at most one is removed.
func New(codecTags, ignoredPrefixes []string) (*Policy, error) {
	tags := make([]string, 0, len(codecTags))
	for _, tag := range codecTags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, regexp.QuoteMeta(tag))
		}
	}
	if len(tags) == 0 {
		return nil, errors.New("naming: at least one codec tag is required")
	}
	// Longest first so overlapping alternatives resolve predictably.
	sort.SliceStable(tags, func(i, j int) bool { return len(tags[i]) > len(tags[j]) })

	pattern, err := regexp.Compile(`(?i)\[(?:` + strings.Join(tags, "|") + `)\]`)
	if err != nil {
		return nil, err
	}
	return &Policy{
		pattern:  pattern,
		prefixes: append([]string(nil), ignoredPrefixes...),
	}, nil
}

// DestinationName returns the bare folder name for source transcoded to codec.
func (p *Policy) DestinationName(source, codec string) string {
	// Casers carry state, so one is built per call.
	tag := "[" + cases.Upper(language.Und).String(codec) + "]"

	name, replaced := p.replaceTags(source, tag)
	if !replaced {
		name = strings.TrimRightFunc(source, isSpace) + " " + tag
	}
	name = lastSegment(name)

	for _, prefix := range p.prefixes {
		if strings.HasPrefix(name, prefix) {
			name = name[len(prefix):]
			break
		}
	}
	return name
}

// HasCodecTag reports whether the final segment of source carries a known tag.
func (p *Policy) HasCodecTag(source string) bool {
	return len(p.finalSegmentMatches(source)) > 0
}

// replaceTags rewrites the first qualifying tag to tag and removes any further
// qualifying tags so the result is tagged exactly once.
func (p *Policy) replaceTags(source, tag string) (string, bool) {
	matches := p.finalSegmentMatches(source)
	if len(matches) == 0 {
		return source, false
	}
	var b strings.Builder
	last := 0
	for i, m := range matches {
		start, end := m[0], m[1]
		if i == 0 {
			b.WriteString(source[last:start])
			b.WriteString(tag)
		} else {
			b.WriteString(strings.TrimRightFunc(source[last:start], isSpace))
		}
		last = end
	}
	b.WriteString(source[last:])
	return b.String(), true
}

// finalSegmentMatches returns tag locations not followed by a slash.
func (p *Policy) finalSegmentMatches(source string) [][]int {
	var out [][]int
	for _, m := range p.pattern.FindAllStringIndex(source, -1) {
		if strings.Contains(source[m[1]:], "/") {
			continue
		}
		out = append(out, m)
	}
	return out
}

func lastSegment(name string) string {
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}
