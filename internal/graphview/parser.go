package graphview

import (
	"strings"
	"unicode/utf8"
)

// Statement is one parsed line: Edges[i] joins Nodes[i] and Nodes[i+1].
type Statement struct {
	Nodes []*Cell
	Edges []Edge
}

var closers = map[byte]byte{'(': ')', '[': ']', '{': '}'}

var shapes = map[byte]Shape{'(': Round, '[': Square, '{': Circle}

// ParseLine splits a line into alternating node and edge tokens. It never
// fails: a line with no recognizable node becomes a single node named after
// the whole trimmed line.
func ParseLine(line string) Statement {
	s := &scanner{src: line}
	first, ok := s.node()
	if !ok {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return Statement{}
		}
		return Statement{Nodes: []*Cell{NewCell(trimmed, trimmed, Round)}}
	}

	st := Statement{Nodes: []*Cell{first}}
	prev := first
	for s.remaining() >= 3 {
		mark := s.pos
		dir, label, ok := s.edge()
		if !ok {
			break
		}
		next, ok := s.node()
		if !ok {
			s.pos = mark
			break
		}
		st.Edges = append(st.Edges, Edge{Dir: dir, Src: prev.ID, Dst: next.ID, Label: label})
		st.Nodes = append(st.Nodes, next)
		prev = next
	}
	return st
}

// ClassifyArrow maps the arrow text of an edge token, with spaces and label
// removed, onto a Direction.
func ClassifyArrow(text string) Direction {
	switch {
	case strings.HasPrefix(text, "<-") && strings.HasSuffix(text, "->"):
		return Double
	case strings.HasPrefix(text, "<-"):
		return Left
	case strings.HasSuffix(text, "->"):
		return Right
	case strings.HasSuffix(text, "-^"):
		return Up
	case strings.HasSuffix(text, "-v"):
		return Down
	case strings.HasPrefix(text, "<^-"):
		return LeftUp
	case strings.HasPrefix(text, "<v-"):
		return LeftDown
	case strings.HasPrefix(text, "-^>"):
		return RightUp
	case strings.HasPrefix(text, "-v>"):
		return RightDown
	default:
		return None
	}
}

type scanner struct {
	src string
	pos int
}

func (s *scanner) remaining() int {
	return utf8.RuneCountInString(strings.TrimSpace(s.src[s.pos:]))
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.src) && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
		s.pos++
	}
}

func isEdgeStart(c byte) bool {
	return c == '-' || c == '<'
}

func (s *scanner) node() (*Cell, bool) {
	s.skipSpace()
	start := s.pos
	for s.pos < len(s.src) && !isEdgeStart(s.src[s.pos]) {
		if _, ok := closers[s.src[s.pos]]; ok {
			break
		}
		s.pos++
	}
	id := strings.TrimSpace(s.src[start:s.pos])

	if s.pos < len(s.src) {
		if closer, ok := closers[s.src[s.pos]]; ok {
			open := s.src[s.pos]
			end := strings.IndexByte(s.src[s.pos+1:], closer)
			if end >= 0 {
				label := s.src[s.pos+1 : s.pos+1+end]
				s.pos += end + 2
				if id == "" {
					id = strings.TrimSpace(strings.ReplaceAll(label, `\n`, " "))
				}
				if id == "" {
					return nil, false
				}
				return NewCell(id, label, shapes[open]), true
			}
			// unterminated bracket: it is just part of the identifier
			for s.pos < len(s.src) && !isEdgeStart(s.src[s.pos]) {
				s.pos++
			}
			id = strings.TrimSpace(s.src[start:s.pos])
		}
	}
	if id == "" {
		return nil, false
	}
	return NewCell(id, id, Round), true
}

func (s *scanner) edge() (Direction, string, bool) {
	s.skipSpace()
	if s.pos >= len(s.src) || !isEdgeStart(s.src[s.pos]) {
		return None, "", false
	}
	var arrow strings.Builder
	label := ""
	prev := byte(0)
scan:
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '-' || c == '<' || c == '>':
			arrow.WriteByte(c)
		case c == ' ' || c == '\t':
		case c == '^' && (prev == '-' || prev == '<'):
			arrow.WriteByte(c)
		case c == 'v' && (prev == '-' || prev == '<') && s.arrowFollows():
			arrow.WriteByte(c)
		case c == '|':
			end := strings.IndexByte(s.src[s.pos+1:], '|')
			if end < 0 {
				break scan
			}
			label = strings.TrimSpace(s.src[s.pos+1 : s.pos+1+end])
			s.pos += end + 2
			prev = '|'
			continue
		default:
			break scan
		}
		prev = c
		s.pos++
	}
	text := arrow.String()
	if !strings.Contains(text, "-") {
		return None, "", false
	}
	return ClassifyArrow(text), label, true
}

// arrowFollows reports whether the `v` at pos is an arrow glyph rather than
// the first letter of the next identifier.
func (s *scanner) arrowFollows() bool {
	if s.pos+1 >= len(s.src) {
		return true
	}
	switch s.src[s.pos+1] {
	case ' ', '\t', '-', '>', '|':
		return true
	}
	return false
}
