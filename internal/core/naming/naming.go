// Package naming derives the case variants of an identifier used to fill template slots.
// Every function here is pure.
package naming

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Variants holds every naming convention derived from one source identifier.
type Variants struct {
	CamelCase          string // orderItem
	PascalCase         string // OrderItem
	KebabCase          string // order-item
	SnakeCase          string // order_item
	Lowercase          string // orderitem
	Uppercase          string // ORDERITEM
	PluralCamelCase    string // orderItems
	PluralPascalCase   string // OrderItems
	PluralKebabCase    string // order-items
	SingularCamelCase  string // orderItem
	SingularPascalCase string // OrderItem
}

// Derive builds all naming variants for input. It never fails.
func Derive(input string) Variants {
	plural := Pluralize(input)
	singular := Singularize(input)

	return Variants{
		CamelCase:          ToCamel(input),
		PascalCase:         ToPascal(input),
		KebabCase:          ToKebab(input),
		SnakeCase:          ToSnake(input),
		Lowercase:          strings.ToLower(input),
		Uppercase:          strings.ToUpper(input),
		PluralCamelCase:    ToCamel(plural),
		PluralPascalCase:   ToPascal(plural),
		PluralKebabCase:    ToKebab(plural),
		SingularCamelCase:  ToCamel(singular),
		SingularPascalCase: ToPascal(singular),
	}
}

// Map returns the variants keyed the way templates and output paths reference them
// (e.g. "pascalCase", "pluralKebabCase").
func (v Variants) Map() map[string]any {
	return map[string]any{
		"camelCase":          v.CamelCase,
		"pascalCase":         v.PascalCase,
		"kebabCase":          v.KebabCase,
		"snakeCase":          v.SnakeCase,
		"lowercase":          v.Lowercase,
		"uppercase":          v.Uppercase,
		"pluralCamelCase":    v.PluralCamelCase,
		"pluralPascalCase":   v.PluralPascalCase,
		"pluralKebabCase":    v.PluralKebabCase,
		"singularCamelCase":  v.SingularCamelCase,
		"singularPascalCase": v.SingularPascalCase,
	}
}

func isSeparator(r rune) bool {
	return r == '-' || r == '_' || unicode.IsSpace(r)
}

// ToCamel converts s to camelCase. Existing capitals are kept, the first letter of
// each separator-delimited segment after the first is upper-cased.
func ToCamel(s string) string {
	var b strings.Builder
	first := true
	segmentStart := false

	for _, r := range s {
		if isSeparator(r) {
			if !first {
				segmentStart = true
			}
			continue
		}
		switch {
		case first:
			b.WriteRune(unicode.ToLower(r))
			first = false
		case segmentStart:
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteRune(r)
		}
		segmentStart = false
	}

	return b.String()
}

// ToPascal converts s to PascalCase.
func ToPascal(s string) string {
	return upperFirst(ToCamel(s))
}

var (
	caseBoundary = regexp.MustCompile(`([a-z])([A-Z])`)
	kebabRuns    = regexp.MustCompile(`[\s_]+`)
	snakeRuns    = regexp.MustCompile(`[\s-]+`)
)

// ToKebab converts s to kebab-case.
func ToKebab(s string) string {
	out := caseBoundary.ReplaceAllString(s, "$1-$2")
	out = kebabRuns.ReplaceAllString(out, "-")
	return strings.ToLower(out)
}

// ToSnake converts s to snake_case.
func ToSnake(s string) string {
	out := caseBoundary.ReplaceAllString(s, "${1}_$2")
	out = snakeRuns.ReplaceAllString(out, "_")
	return strings.ToLower(out)
}

// Pluralize applies a small English pluralization heuristic.
func Pluralize(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)

	if strings.HasSuffix(lower, "y") && len(lower) > 1 && !isVowel(lower[len(lower)-2]) {
		return s[:len(s)-1] + "ies"
	}
	for _, suffix := range []string{"s", "sh", "ch", "x", "z"} {
		if strings.HasSuffix(lower, suffix) {
			return s + "es"
		}
	}
	return s + "s"
}

// Singularize reverses Pluralize for the forms it produces.
func Singularize(s string) string {
	lower := strings.ToLower(s)

	switch {
	case strings.HasSuffix(lower, "ies") && len(lower) > 3:
		return s[:len(s)-3] + "y"
	case hasAnySuffix(lower, "sses", "shes", "ches", "xes", "zes"):
		return s[:len(s)-2]
	case hasAnySuffix(lower, "ss", "us", "is"):
		return s
	case strings.HasSuffix(lower, "s") && len(lower) > 1:
		return s[:len(s)-1]
	}
	return s
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
