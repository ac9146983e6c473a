// Package regexast defines the regex node algebra used by Seq.MatchesRegex
// This is a pure data algebra, not an executable regex
// engine: Matches interprets it directly. Concrete evaluation calls
// Matches, and the reference solver backend reaches it only by evaluating
// each candidate assignment concretely; no backend encodes it into
// regex-theory constraints. The BDD backend refuses
// every Regex node: a backend has no sort for Seq<Char> at all.
package regexast

import "fmt"

// Kind identifies which regex node shape a Regex value is.
type Kind int

const (
	KindLiteral Kind = iota
	KindRange
	KindConcat
	KindUnion
	KindStar
	KindInter
	KindNeg
)

// Regex is one node of the regex algebra.
type Regex struct {
	Kind     Kind
	Lo, Hi   rune     // KindRange: [Lo, Hi]; KindLiteral uses Lo only
	Children []*Regex // KindConcat/KindUnion/KindInter: operands; KindStar/KindNeg: single child
}

// Literal matches exactly the rune r.
func Literal(r rune) *Regex { return &Regex{Kind: KindLiteral, Lo: r, Hi: r} }

// RuneRange matches any single rune in [lo, hi].
func RuneRange(lo, hi rune) *Regex { return &Regex{Kind: KindRange, Lo: lo, Hi: hi} }

// Concat matches each operand in sequence.
func Concat(parts ...*Regex) *Regex { return &Regex{Kind: KindConcat, Children: parts} }

// Union matches any one of its operands.
func Union(alts ...*Regex) *Regex { return &Regex{Kind: KindUnion, Children: alts} }

// Star matches zero or more repetitions of r.
func Star(r *Regex) *Regex { return &Regex{Kind: KindStar, Children: []*Regex{r}} }

// Inter matches strings accepted by every operand (SMT regex intersection theory).
func Inter(parts ...*Regex) *Regex { return &Regex{Kind: KindInter, Children: parts} }

// Neg matches any string not accepted by r.
func Neg(r *Regex) *Regex { return &Regex{Kind: KindNeg, Children: []*Regex{r}} }

func (r *Regex) String() string {
	switch r.Kind {
	case KindLiteral:
		return fmt.Sprintf("%q", r.Lo)
	case KindRange:
		return fmt.Sprintf("[%c-%c]", r.Lo, r.Hi)
	case KindConcat:
		return joinChildren("concat", r.Children)
	case KindUnion:
		return joinChildren("union", r.Children)
	case KindStar:
		return "star(" + r.Children[0].String() + ")"
	case KindInter:
		return joinChildren("inter", r.Children)
	case KindNeg:
		return "neg(" + r.Children[0].String() + ")"
	default:
		return "<invalid regex>"
	}
}

func joinChildren(op string, children []*Regex) string {
	s := op + "("
	for i, c := range children {
		if i > 0 {
			s += ", "
		}
		s += c.String()
	}
	return s + ")"
}

// Matches is the concrete (non-SMT) regex algebra interpreter, used by the
// concrete interpreter (internal/symeval/concrete) and by the reference
// backend's model validation.
func Matches(r *Regex, s []rune) bool {
	remaining := matchPrefixes(r, s)
	for _, rem := range remaining {
		if len(rem) == 0 {
			return true
		}
	}
	return false
}

// matchPrefixes returns every suffix of s left over after consuming a
// prefix that r can account for (a small Thompson-style backtracking
// matcher; the node set is tiny and match lengths are bounded in
// practice by FSeq/Seq depth bounds, so naive backtracking is sufficient).
func matchPrefixes(r *Regex, s []rune) [][]rune {
	switch r.Kind {
	case KindLiteral:
		if len(s) > 0 && s[0] == r.Lo {
			return [][]rune{s[1:]}
		}
		return nil
	case KindRange:
		if len(s) > 0 && s[0] >= r.Lo && s[0] <= r.Hi {
			return [][]rune{s[1:]}
		}
		return nil
	case KindConcat:
		frontier := [][]rune{s}
		for _, c := range r.Children {
			var next [][]rune
			for _, rem := range frontier {
				next = append(next, matchPrefixes(c, rem)...)
			}
			frontier = next
			if len(frontier) == 0 {
				return nil
			}
		}
		return frontier
	case KindUnion:
		var out [][]rune
		for _, c := range r.Children {
			out = append(out, matchPrefixes(c, s)...)
		}
		return out
	case KindStar:
		seen := map[int]bool{len(s): true}
		frontier := [][]rune{s}
		out := [][]rune{s}
		for len(frontier) > 0 {
			var next [][]rune
			for _, rem := range frontier {
				for _, after := range matchPrefixes(r.Children[0], rem) {
					if len(after) == len(rem) {
						continue // avoid infinite loop on a zero-width match
					}
					if !seen[len(after)] {
						seen[len(after)] = true
						next = append(next, after)
						out = append(out, after)
					}
				}
			}
			frontier = next
		}
		return out
	case KindInter:
		sets := make([]map[int][]rune, len(r.Children))
		for i, c := range r.Children {
			sets[i] = byLength(matchPrefixes(c, s))
		}
		var out [][]rune
		for length, rem := range sets[0] {
			inAll := true
			for _, set := range sets[1:] {
				if _, ok := set[length]; !ok {
					inAll = false
					break
				}
			}
			if inAll {
				out = append(out, rem)
			}
		}
		return out
	case KindNeg:
		matched := byLength(matchPrefixes(r.Children[0], s))
		var out [][]rune
		for l := 0; l <= len(s); l++ {
			if _, ok := matched[len(s)-l]; !ok {
				out = append(out, s[l:])
			}
		}
		return out
	default:
		return nil
	}
}

func byLength(rems [][]rune) map[int][]rune {
	m := make(map[int][]rune, len(rems))
	for _, r := range rems {
		m[len(r)] = r
	}
	return m
}
