// Package templates provides the embedded generator registry and the TypeScript
// templates rendered into generated projects.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"text/template"

	"github.com/spf13/afero"

	"github.com/gelo7212/express-ts-backend-generator/internal/core/naming"
	"github.com/gelo7212/express-ts-backend-generator/internal/ports/secondary"
)

//go:embed generators.yaml all:files
var embedded embed.FS

// Suffix is stripped from template file names to form output names.
const Suffix = ".tmpl"

// Generators returns the embedded generator registry.
func Generators() ([]byte, error) {
	return embedded.ReadFile("generators.yaml")
}

// Source returns the template tree to render from. An empty dir selects the embedded
// templates; otherwise templates are read from dir on fsys.
func Source(fsys afero.Fs, dir string) (fs.FS, error) {
	if dir == "" {
		return fs.Sub(embedded, "files")
	}
	ok, err := afero.DirExists(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to check templates dir: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("templates dir %s not found", dir)
	}
	return afero.NewIOFS(afero.NewBasePathFs(fsys, dir)), nil
}

// Funcs returns the functions available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"toLower":  strings.ToLower,
		"toUpper":  strings.ToUpper,
		"join":     strings.Join,
		"camel":    naming.ToCamel,
		"pascal":   naming.ToPascal,
		"kebab":    naming.ToKebab,
		"snake":    naming.ToSnake,
		"plural":   naming.Pluralize,
		"singular": naming.Singularize,
		"quote":    func(s string) string { return "'" + strings.ReplaceAll(s, "'", "\\'") + "'" },
		"add":      func(a, b int) int { return a + b },
	}
}

// Renderer renders templates from a source tree.
type Renderer struct {
	source fs.FS
	funcs  template.FuncMap
}

var _ secondary.TemplateRenderer = (*Renderer)(nil)

// NewRenderer creates a Renderer over source.
func NewRenderer(source fs.FS) *Renderer {
	return &Renderer{source: source, funcs: Funcs()}
}

// Render executes the template at name with data.
func (r *Renderer) Render(name string, data map[string]any) (string, error) {
	content, err := fs.ReadFile(r.source, name)
	if err != nil {
		return "", fmt.Errorf("template %s not found: %w", name, err)
	}

	tmpl, err := template.New(path.Base(name)).Funcs(r.funcs).Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}

// List returns the template files beneath dir, relative to dir, in lexical order.
func (r *Renderer) List(dir string) ([]string, error) {
	var files []string
	err := fs.WalkDir(r.source, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel := strings.TrimPrefix(p, dir+"/")
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list templates in %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// OutputName strips the template suffix from a file name.
func OutputName(name string) string {
	return strings.TrimSuffix(name, Suffix)
}
