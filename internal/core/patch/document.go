package patch

import "strings"

// line is one line of a document. EOL holds the exact terminator ("\n", "\r\n" or ""
// for a final unterminated line) so the document re-serialises byte for byte.
type line struct {
	Text string
	EOL  string
}

// Document is a minimal structured view of a source file: an ordered list of lines
// where comment lines act as section tags. Everything the patcher does not touch is
// kept as opaque text.
type Document struct {
	lines []line
	eol   string
}

// Parse splits text into a Document.
func Parse(text string) *Document {
	doc := &Document{eol: "\n"}
	if strings.Contains(text, "\r\n") {
		doc.eol = "\r\n"
	}

	for len(text) > 0 {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			doc.lines = append(doc.lines, line{Text: text})
			break
		}
		content := text[:idx]
		eol := "\n"
		if strings.HasSuffix(content, "\r") {
			content = content[:len(content)-1]
			eol = "\r\n"
		}
		doc.lines = append(doc.lines, line{Text: content, EOL: eol})
		text = text[idx+1:]
	}

	return doc
}

// String re-serialises the document.
func (d *Document) String() string {
	var b strings.Builder
	for _, l := range d.lines {
		b.WriteString(l.Text)
		b.WriteString(l.EOL)
	}
	return b.String()
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return len(d.lines)
}

// findLine returns the index of the first line containing marker, or -1.
func (d *Document) findLine(marker string) int {
	for i, l := range d.lines {
		if strings.Contains(l.Text, marker) {
			return i
		}
	}
	return -1
}

// findHeader returns the index of the first line whose trimmed text equals marker, or -1.
func (d *Document) findHeader(marker string) int {
	want := strings.TrimSpace(marker)
	for i, l := range d.lines {
		if strings.TrimSpace(l.Text) == want {
			return i
		}
	}
	return -1
}

// sectionEnd returns the index just past the last entry of the section opened by the
// header at index h. A section ends at the first blank line, the next comment header at
// the same indentation, or a line indented less than the header (a closing brace).
func (d *Document) sectionEnd(h int) int {
	indent := indentOf(d.lines[h].Text)
	end := h + 1

	for i := h + 1; i < len(d.lines); i++ {
		text := d.lines[i].Text
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			break
		}
		lineIndent := indentOf(text)
		if len(lineIndent) < len(indent) {
			break
		}
		if lineIndent == indent && strings.HasPrefix(trimmed, "//") {
			break
		}
		end = i + 1
	}

	return end
}

// insert places block lines before index at.
func (d *Document) insert(at int, block []string) {
	if len(block) == 0 {
		return
	}

	newLines := make([]line, len(block))
	for i, text := range block {
		newLines[i] = line{Text: text, EOL: d.eol}
	}

	// Appending after an unterminated final line: terminate it and leave the
	// new last line unterminated instead.
	if at == len(d.lines) && at > 0 && d.lines[at-1].EOL == "" {
		d.lines[at-1].EOL = d.eol
		newLines[len(newLines)-1].EOL = ""
	}

	d.lines = append(d.lines[:at], append(newLines, d.lines[at:]...)...)
}

// repairSeparator appends sep to the entry line just before index at when it is missing.
// A trailing line comment stays after the repaired entry. Comment lines, openers and
// blank lines are left alone.
func (d *Document) repairSeparator(at int, sep string) {
	if sep == "" || at <= 0 || at > len(d.lines) {
		return
	}
	prev := &d.lines[at-1]
	code, comment := splitLineComment(prev.Text)
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return
	}
	if strings.HasSuffix(trimmed, sep) || strings.HasSuffix(trimmed, "{") ||
		strings.HasSuffix(trimmed, "[") || strings.HasSuffix(trimmed, "(") {
		return
	}
	body := strings.TrimRight(code, " \t")
	prev.Text = body + sep + code[len(body):] + comment
}

// splitLineComment splits s before a // comment that is not inside a string literal.
func splitLineComment(s string) (string, string) {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			return s[:i], s[i:]
		}
	}
	return s, ""
}

func indentOf(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}
