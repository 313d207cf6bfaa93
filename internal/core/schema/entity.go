package schema

import (
	"regexp"
	"strings"
)

var propLine = regexp.MustCompile(`^\s*(?:readonly\s+)?([A-Za-z_$][\w$]*)(\?)?\s*:\s*([^;]+);?\s*$`)

// FieldsFromEntity reads the attributes of an existing domain entity from the
// `<Pascal>Props` interface the entity template declares. It returns nil when the
// interface cannot be found, so callers fall back to default fields.
func FieldsFromEntity(source, pascalName string) []Field {
	header := "interface " + pascalName + "Props"
	start := strings.Index(source, header)
	if start < 0 {
		return nil
	}
	body := source[start+len(header):]
	open := strings.IndexByte(body, '{')
	end := strings.IndexByte(body, '}')
	if open < 0 || end < open {
		return nil
	}

	var fields []Field
	for _, l := range strings.Split(body[open+1:end], "\n") {
		m := propLine.FindStringSubmatch(l)
		if m == nil {
			continue
		}
		switch m[1] {
		case "id", "createdAt", "updatedAt":
			continue
		}
		fields = append(fields, Field{
			Name:     m[1],
			Type:     fieldType(strings.TrimSpace(m[3])),
			Required: m[2] == "",
		})
	}
	return fields
}

// fieldType maps a TypeScript property type onto a field type.
func fieldType(ts string) string {
	switch {
	case ts == "number":
		return "number"
	case ts == "boolean":
		return "boolean"
	case ts == "Date":
		return "date"
	case strings.HasSuffix(ts, "[]") || strings.HasPrefix(ts, "Array<"):
		return "array"
	case strings.HasPrefix(ts, "Record<") || strings.HasPrefix(ts, "{"):
		return "object"
	default:
		return "string"
	}
}
