// Package generation contains the pure logic of generator dispatch: generation context,
// template definitions and their conditions, guards, write and patch planning, and the
// patch targets that wire generated code into a project.
package generation

import (
	"path/filepath"
	"strings"

	"github.com/gelo7212/express-ts-backend-generator/internal/core/naming"
)

// Context carries everything a generator needs for one request.
type Context struct {
	ProjectPath  string
	DomainName   string
	EntityName   string
	TemplateData map[string]any
	Options      map[string]any
}

// NewContext builds a Context. Options are copied into the template data, then
// overrides (from a --config file) are merged shallowly on top, and finally the naming
// variants are set so they are always present.
func NewContext(projectPath, domainName, entityName string, options, overrides map[string]any) *Context {
	ctx := &Context{
		ProjectPath:  projectPath,
		DomainName:   strings.TrimSpace(domainName),
		EntityName:   strings.TrimSpace(entityName),
		TemplateData: make(map[string]any),
		Options:      make(map[string]any),
	}

	for k, v := range options {
		ctx.Options[k] = v
		ctx.TemplateData[k] = v
	}
	for k, v := range overrides {
		ctx.TemplateData[k] = v
	}

	ctx.setNames()
	return ctx
}

func (c *Context) setNames() {
	var primary map[string]any
	if c.DomainName != "" {
		primary = naming.Derive(c.DomainName).Map()
		c.TemplateData["domainName"] = c.DomainName
		c.TemplateData["domainNames"] = primary
	}
	if c.EntityName != "" {
		entity := naming.Derive(c.EntityName).Map()
		c.TemplateData["entityName"] = c.EntityName
		c.TemplateData["entityNames"] = entity
		primary = entity
	}
	if primary != nil {
		c.TemplateData["names"] = primary
	}
}

// SetProjectName records the name of a project being created. Project generation has
// no domain, so the project name provides the naming variants.
func (c *Context) SetProjectName(name string) {
	names := naming.Derive(name).Map()
	c.TemplateData["projectName"] = name
	c.TemplateData["projectNames"] = names
	if c.DomainName == "" && c.EntityName == "" {
		c.TemplateData["names"] = names
	}
}

// Names returns the naming variants of the primary artifact (the entity name when set,
// otherwise the domain name).
func (c *Context) Names() naming.Variants {
	if c.EntityName != "" {
		return naming.Derive(c.EntityName)
	}
	return naming.Derive(c.DomainName)
}

// DomainNames returns the naming variants of the domain.
func (c *Context) DomainNames() naming.Variants {
	return naming.Derive(c.DomainName)
}

// HasNames reports whether the naming variants are populated in the template data.
func (c *Context) HasNames() bool {
	names, ok := c.TemplateData["names"].(map[string]any)
	return ok && names["pascalCase"] != ""
}

// Bool reads a boolean flag from template data, falling back to options.
func (c *Context) Bool(key string) bool {
	v, ok := c.Lookup(key)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// String reads a string value from template data, falling back to options.
func (c *Context) String(key string) string {
	v, ok := c.Lookup(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Lookup resolves a dotted path against template data, then options.
func (c *Context) Lookup(path string) (any, bool) {
	if v, ok := lookupPath(c.TemplateData, path); ok {
		return v, true
	}
	return lookupPath(c.Options, path)
}

// Abs joins a project-relative path onto the project root.
func (c *Context) Abs(rel string) string {
	return filepath.Join(c.ProjectPath, filepath.FromSlash(rel))
}

// DomainDir returns the project-relative directory of the context's domain.
func (c *Context) DomainDir() string {
	return "src/domain/" + c.DomainNames().Lowercase
}

func lookupPath(data map[string]any, path string) (any, bool) {
	var current any = data
	for _, part := range strings.Split(path, ".") {
		switch m := current.(type) {
		case map[string]any:
			v, ok := m[part]
			if !ok {
				return nil, false
			}
			current = v
		case map[string]string:
			v, ok := m[part]
			if !ok {
				return nil, false
			}
			current = v
		default:
			return nil, false
		}
	}
	if current == nil {
		return nil, false
	}
	return current, true
}
