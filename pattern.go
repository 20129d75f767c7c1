package texpect

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Fragment delimiters in golden lines. There is no escape character: a
// literal '<' in expected output has to be written as the fragment <[<]>.
const (
	OpenFragment  = '<'
	CloseFragment = '>'
)

// Compilation errors for malformed golden lines.
var (
	ErrUnclosedFragment = errors.New("unclosed '<' fragment")
	ErrEmptyFragment    = errors.New("empty '<>' fragment")
)

// SegKind tells how a segment of a golden line is matched.
type SegKind int

const (
	// SegLiteral segments match their text verbatim, metacharacters included.
	SegLiteral SegKind = iota
	// SegFragment segments are caller-authored regexp source, used unescaped.
	SegFragment
)

// Segment is one literal or fragment span of a golden line.
type Segment struct {
	Kind SegKind
	// Text is the literal text, or the fragment source between '<' and '>'.
	Text string
}

// Pattern is a single golden line compiled for anchored prefix matching.
// Literal spans only match their exact text, fragment spans match whatever
// their regexp source matches. The pattern is compiled so that '.' also
// matches line terminators and '^'/'$' refer to the whole remaining text,
// never to single lines of it.
type Pattern struct {
	text    string
	segs    []Segment
	rgx     *regexp.Regexp
	srcLine int
}

// Compile scans line left to right into literal and fragment segments and
// compiles their concatenation. Literal runs end at the next '<'; a '<' must
// be closed by '>' on the same line and must enclose at least one character.
// Fragment source is passed to the regexp engine without any escaping.
func Compile(line string) (*Pattern, error) {
	p := &Pattern{text: line, srcLine: -1}
	rest := line
	for rest != "" {
		i := strings.IndexByte(rest, OpenFragment)
		if i < 0 {
			p.segs = append(p.segs, Segment{SegLiteral, rest})
			break
		}
		if i > 0 {
			p.segs = append(p.segs, Segment{SegLiteral, rest[:i]})
		}
		rest = rest[i+1:]
		j := strings.IndexByte(rest, CloseFragment)
		if j < 0 {
			return nil, ErrUnclosedFragment
		}
		if j == 0 {
			return nil, ErrEmptyFragment
		}
		p.segs = append(p.segs, Segment{SegFragment, rest[:j]})
		rest = rest[j+1:]
	}
	// The source goes into a group so that the anchor covers all of it; a
	// fragment with a top-level '|' must not leave its other alternatives
	// unanchored.
	rgx, err := regexp.Compile(`\A(?s:` + p.Source() + `)`)
	if err != nil {
		return nil, fmt.Errorf("fragment does not compile: %w", err)
	}
	p.rgx = rgx
	return p, nil
}

// Text returns the golden line the pattern was compiled from, including its
// line terminator if it had one.
func (p *Pattern) Text() string { return p.text }

// Segments returns the literal and fragment segments in line order.
func (p *Pattern) Segments() []Segment { return p.segs }

// Line returns the 0-based ordinal of the golden line within its file, or -1
// for patterns compiled outside a GoldenReader.
func (p *Pattern) Line() int { return p.srcLine }

// Source returns the regexp source the pattern matches with, without the
// anchoring wrapper. Literal segments appear QuoteMeta-escaped, fragment
// segments verbatim. Compiling the same line twice yields the same source.
func (p *Pattern) Source() string {
	var sb strings.Builder
	for _, seg := range p.segs {
		if seg.Kind == SegLiteral {
			sb.WriteString(regexp.QuoteMeta(seg.Text))
		} else {
			sb.WriteString(seg.Text)
		}
	}
	return sb.String()
}

// MatchPrefix matches the pattern anchored at the start of text. It returns
// the number of bytes matched, following standard greedy regexp semantics.
// It never searches: either some prefix of text matches or nothing does.
func (p *Pattern) MatchPrefix(text string) (n int, ok bool) {
	loc := p.rgx.FindStringIndex(text)
	if loc == nil {
		return 0, false
	}
	return loc[1], true
}
