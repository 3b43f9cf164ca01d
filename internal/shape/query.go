package shape

import (
	"fmt"
	"strings"
)

// EvalTagQuery evaluates a tag-query expression (the -q option) over a
// design list and returns the matching subset, in original order. Query
// syntax is a comma-separated list of [+|-]tag terms, plus the built-ins
// "(all)" and "(undoc)". The command surface that prints query results
// (the -q handler itself) belongs to an external collaborator; this is
// only the evaluator.
//
//   - A bare term or a "+tag" term requires the design to carry that tag.
//   - A "-tag" term excludes designs carrying that tag.
//   - "(all)" matches every design.
//   - "(undoc)" matches designs with no tags at all (undocumented).
//
// Terms are ANDed together: a design survives only if it satisfies every
// term in the query.
func EvalTagQuery(query string, designs []*Design) ([]*Design, error) {
	terms, err := parseTagQuery(query)
	if err != nil {
		return nil, err
	}
	var out []*Design
	for _, d := range designs {
		if matchesQuery(d, terms) {
			out = append(out, d)
		}
	}
	return out, nil
}

type tagTerm struct {
	tag     string
	exclude bool
	all     bool
	undoc   bool
}

func parseTagQuery(query string) ([]tagTerm, error) {
	var terms []tagTerm
	for _, raw := range strings.Split(query, ",") {
		t := strings.TrimSpace(raw)
		if t == "" {
			continue
		}
		switch strings.ToLower(t) {
		case "(all)":
			terms = append(terms, tagTerm{all: true})
			continue
		case "(undoc)":
			terms = append(terms, tagTerm{undoc: true})
			continue
		}
		term := tagTerm{}
		switch {
		case strings.HasPrefix(t, "+"):
			term.tag = t[1:]
		case strings.HasPrefix(t, "-"):
			term.tag = t[1:]
			term.exclude = true
		default:
			term.tag = t
		}
		if !isTagLike(term.tag) {
			return nil, fmt.Errorf("tag query: invalid tag %q", term.tag)
		}
		terms = append(terms, term)
	}
	return terms, nil
}

// isTagLike validates a tag token as a lowercase id-like string.
func isTagLike(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

func matchesQuery(d *Design, terms []tagTerm) bool {
	for _, t := range terms {
		switch {
		case t.all:
			continue
		case t.undoc:
			if len(d.Tags) != 0 {
				return false
			}
		case t.exclude:
			if d.Tags[t.tag] {
				return false
			}
		default:
			if !d.Tags[t.tag] {
				return false
			}
		}
	}
	return true
}
