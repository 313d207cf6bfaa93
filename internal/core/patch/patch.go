// Package patch inserts text blocks into existing source files exactly once, relative to
// anchor markers, without disturbing the rest of the file.
//
// Apply is pure: it takes the current file text and returns the new text. Reading and
// writing the file is the caller's job.
package patch

import (
	"fmt"
	"strings"
)

// Position says where a block goes relative to its anchor.
type Position int

const (
	// After inserts on the line following the first line containing the marker.
	After Position = iota
	// Before inserts on the line preceding the first line containing the marker.
	// Used for end-of-block anchors such as "};" or an END marker.
	Before
	// SectionEnd inserts after the last entry of the section headed by a comment line
	// equal to the marker. Inserted lines take the header's indentation.
	SectionEnd
	// End appends the block after the last line. The marker is ignored.
	End
)

func (p Position) String() string {
	switch p {
	case After:
		return "after"
	case Before:
		return "before"
	case SectionEnd:
		return "section-end"
	case End:
		return "end"
	default:
		return fmt.Sprintf("position(%d)", int(p))
	}
}

// Anchor locates an insertion point.
type Anchor struct {
	Marker   string
	Position Position
}

// Patch is one idempotent insertion.
type Patch struct {
	Name   string
	Anchor Anchor
	Insert string

	// Present reports whether the patch is already applied to text. When nil, the
	// patch counts as applied if every non-blank line of Insert already occurs in text.
	Present func(text string) bool

	// Separator, when set, is appended to the entry preceding the insertion point
	// if that entry lacks it (e.g. "," between object literal members).
	Separator string
}

func (p Patch) present(text string) bool {
	if p.Present != nil {
		return p.Present(text)
	}
	found := false
	for _, l := range strings.Split(p.Insert, "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if !strings.Contains(text, l) {
			return false
		}
		found = true
	}
	return found
}

// Warning records a patch that could not be placed because its anchor is missing.
type Warning struct {
	Patch  string
	Marker string
}

func (w Warning) String() string {
	return fmt.Sprintf("patch %q skipped: anchor %q not found", w.Patch, w.Marker)
}

// Result is the outcome of Apply.
type Result struct {
	Text     string
	Applied  []string
	Skipped  []string
	Warnings []Warning
}

// Changed reports whether any patch modified the text.
func (r Result) Changed() bool {
	return len(r.Applied) > 0
}

// Apply runs patches in order against the progressively updated text. Patches whose
// Present test already holds are skipped, and patches whose anchor is missing leave the
// text unchanged and produce a Warning. Applying the same patches twice yields the
// same text as applying them once.
func Apply(source string, patches []Patch) Result {
	result := Result{Text: source}
	doc := Parse(source)

	for _, p := range patches {
		name := p.Name
		if name == "" {
			name = firstLine(p.Insert)
		}

		current := doc.String()
		if p.present(current) {
			result.Skipped = append(result.Skipped, name)
			continue
		}

		at, indent, ok := locate(doc, p.Anchor)
		if !ok {
			result.Warnings = append(result.Warnings, Warning{Patch: name, Marker: p.Anchor.Marker})
			continue
		}

		doc.repairSeparator(at, p.Separator)
		doc.insert(at, blockLines(p.Insert, indent))
		result.Applied = append(result.Applied, name)
	}

	result.Text = doc.String()
	return result
}

// locate finds the line index before which the block is inserted and the indentation
// to apply to it.
func locate(doc *Document, a Anchor) (int, string, bool) {
	switch a.Position {
	case After:
		i := doc.findLine(a.Marker)
		if i < 0 {
			return 0, "", false
		}
		return i + 1, "", true
	case Before:
		i := doc.findLine(a.Marker)
		if i < 0 {
			return 0, "", false
		}
		return i, "", true
	case SectionEnd:
		h := doc.findHeader(a.Marker)
		if h < 0 {
			return 0, "", false
		}
		return doc.sectionEnd(h), indentOf(doc.lines[h].Text), true
	case End:
		return doc.Len(), "", true
	default:
		return 0, "", false
	}
}

func blockLines(insert, indent string) []string {
	insert = strings.TrimRight(insert, "\r\n")
	if insert == "" {
		return nil
	}
	raw := strings.Split(insert, "\n")
	out := make([]string, len(raw))
	for i, l := range raw {
		l = strings.TrimRight(l, "\r")
		if indent != "" && strings.TrimSpace(l) != "" {
			l = indent + l
		}
		out[i] = l
	}
	return out
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
