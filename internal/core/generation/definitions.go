package generation

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

// TemplateType says whether a definition renders one template or a whole directory.
type TemplateType string

const (
	FileTemplate      TemplateType = "file"
	DirectoryTemplate TemplateType = "directory"
)

// Condition operators.
const (
	OpEquals    = "equals"
	OpNotEquals = "not-equals"
	OpExists    = "exists"
	OpNotExists = "not-exists"
)

// Condition gates a template on a value of the generation context.
type Condition struct {
	Field    string `yaml:"field"`
	Operator string `yaml:"operator"`
	Value    any    `yaml:"value,omitempty"`
}

// TemplateDefinition maps a template source to an output path.
type TemplateDefinition struct {
	Name       string       `yaml:"name"`
	Path       string       `yaml:"path"`
	Type       TemplateType `yaml:"type"`
	OutputPath string       `yaml:"outputPath"`
	Conditions []Condition  `yaml:"conditions,omitempty"`
}

// GeneratorConfig describes one generator: what it needs and which templates it renders.
type GeneratorConfig struct {
	Name            string               `yaml:"name"`
	Type            string               `yaml:"type"`
	Description     string               `yaml:"description"`
	Requires        []string             `yaml:"requires,omitempty"`
	RequiresProject bool                 `yaml:"requiresProject,omitempty"`
	RequiresDomain  bool                 `yaml:"requiresDomain,omitempty"`
	Templates       []TemplateDefinition `yaml:"templates"`
}

type configFile struct {
	Generators []GeneratorConfig `yaml:"generators"`
}

// ParseConfigs decodes a YAML generator registry and validates every definition.
func ParseConfigs(data []byte) ([]GeneratorConfig, error) {
	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse generator config: %w", err)
	}

	seen := make(map[string]bool)
	for i := range file.Generators {
		cfg := &file.Generators[i]
		if cfg.Type == "" {
			return nil, fmt.Errorf("generator %d has no type", i+1)
		}
		if seen[cfg.Type] {
			return nil, fmt.Errorf("generator type %q defined twice", cfg.Type)
		}
		seen[cfg.Type] = true

		for j := range cfg.Templates {
			tmpl := &cfg.Templates[j]
			if tmpl.Type == "" {
				tmpl.Type = FileTemplate
			}
			if err := tmpl.Validate(); err != nil {
				return nil, fmt.Errorf("generator %q: %w", cfg.Type, err)
			}
		}
	}

	return file.Generators, nil
}

// Validate checks that the definition is complete.
func (d TemplateDefinition) Validate() error {
	if d.Name == "" || d.Path == "" || d.OutputPath == "" {
		return fmt.Errorf("template %q is missing required fields", d.Name)
	}
	if d.Type != FileTemplate && d.Type != DirectoryTemplate {
		return fmt.Errorf("template %q has unknown type %q", d.Name, d.Type)
	}
	for _, c := range d.Conditions {
		switch c.Operator {
		case OpEquals, OpNotEquals, OpExists, OpNotExists:
		default:
			return fmt.Errorf("template %q has unknown condition operator %q", d.Name, c.Operator)
		}
	}
	return nil
}

// EvaluateConditions reports whether every condition holds for ctx.
func EvaluateConditions(conditions []Condition, ctx *Context) bool {
	for _, c := range conditions {
		value, found := ctx.Lookup(c.Field)
		var ok bool
		switch c.Operator {
		case OpEquals:
			ok = found && fmt.Sprint(value) == fmt.Sprint(c.Value)
		case OpNotEquals:
			ok = !found || fmt.Sprint(value) != fmt.Sprint(c.Value)
		case OpExists:
			ok = found
		case OpNotExists:
			ok = !found
		}
		if !ok {
			return false
		}
	}
	return true
}

// Applicable returns the templates of cfg whose conditions hold for ctx.
func Applicable(cfg GeneratorConfig, ctx *Context) []TemplateDefinition {
	var out []TemplateDefinition
	for _, t := range cfg.Templates {
		if EvaluateConditions(t.Conditions, ctx) {
			out = append(out, t)
		}
	}
	return out
}

var placeholder = regexp.MustCompile(`\{([A-Za-z0-9_.]+)\}`)

// ResolveOutputPath substitutes {field.path} placeholders with values from ctx.
// Placeholders that do not resolve are left as they are.
func ResolveOutputPath(pattern string, ctx *Context) string {
	return placeholder.ReplaceAllStringFunc(pattern, func(m string) string {
		v, ok := ctx.Lookup(m[1 : len(m)-1])
		if !ok {
			return m
		}
		return fmt.Sprint(v)
	})
}
