package generation

import (
	"fmt"
	"strings"

	"github.com/gelo7212/express-ts-backend-generator/internal/core/naming"
	"github.com/gelo7212/express-ts-backend-generator/internal/core/patch"
)

// Shared project files kept in sync with generated code.
const (
	TypesFile     = "src/infrastructure/types.ts"
	ContainerFile = "src/infrastructure/container.ts"
	RoutesFile    = "src/presentation/http/routes/index.ts"
)

// Section headers of the generated types.ts and container.ts, and the route markers.
const (
	SectionDomain         = "// Domain"
	SectionApplication    = "// Application"
	SectionInfrastructure = "// Infrastructure"
	SectionPresentation   = "// Presentation"
	SectionRepositories   = "// Repositories"
	SectionDomainServices = "// Domain Services"
	SectionUseCases       = "// Use Cases"
	SectionControllers    = "// Controllers"
	SectionDatabase       = "// Database Repositories"

	MarkerRouteImports = "// END_GENERATED_IMPORTS"
	MarkerRoutes       = "// END_GENERATED_ROUTES"
)

// targetSet accumulates patches per file, keeping file order stable.
type targetSet struct {
	types     []patch.Patch
	container []patch.Patch
	routes    []patch.Patch
	other     []PatchTarget
}

func (s *targetSet) build() []PatchTarget {
	var out []PatchTarget
	if len(s.types) > 0 {
		out = append(out, PatchTarget{Path: TypesFile, Patches: s.types})
	}
	if len(s.container) > 0 {
		out = append(out, PatchTarget{Path: ContainerFile, Patches: s.container})
	}
	if len(s.routes) > 0 {
		out = append(out, PatchTarget{Path: RoutesFile, Patches: s.routes})
	}
	return append(out, s.other...)
}

// symbol registers name in the TYPES map under section.
func (s *targetSet) symbol(section, name string) {
	entry := fmt.Sprintf("%s: Symbol.for('%s')", name, name)
	s.types = append(s.types, patch.Patch{
		Name:      "TYPES." + name,
		Anchor:    patch.Anchor{Marker: section, Position: patch.SectionEnd},
		Insert:    entry + ",",
		Separator: ",",
		Present: func(text string) bool {
			return strings.Contains(text, entry)
		},
	})
}

// importLine adds an import of name from module to a container.ts import section.
func (s *targetSet) importLine(section, name, module string) {
	line := fmt.Sprintf("import { %s } from '%s';", name, module)
	s.container = append(s.container, patch.Patch{
		Name:   "import " + name,
		Anchor: patch.Anchor{Marker: section, Position: patch.SectionEnd},
		Insert: line,
		Present: func(text string) bool {
			return strings.Contains(text, line)
		},
	})
}

// binding adds a container registration of impl for the TYPES symbol.
func (s *targetSet) binding(section, method, iface, symbol, impl string) {
	fragment := fmt.Sprintf("(TYPES.%s).to(%s)", symbol, impl)
	line := fmt.Sprintf("container.%s<%s>%s;", method, iface, fragment)
	s.container = append(s.container, patch.Patch{
		Name:   "bind " + symbol + " to " + impl,
		Anchor: patch.Anchor{Marker: section, Position: patch.SectionEnd},
		Insert: line,
		Present: func(text string) bool {
			return strings.Contains(text, fragment)
		},
	})
}

// route registers an Express router module in the route registry.
func (s *targetSet) route(n naming.Variants) {
	routerVar := n.CamelCase + "Routes"
	importLine := fmt.Sprintf("import %s from './%s.routes';", routerVar, n.KebabCase)
	s.routes = append(s.routes,
		patch.Patch{
			Name:   "import " + routerVar,
			Anchor: patch.Anchor{Marker: MarkerRouteImports, Position: patch.Before},
			Insert: importLine,
			Present: func(text string) bool {
				return strings.Contains(text, importLine)
			},
		},
		patch.Patch{
			Name:   "register " + routerVar,
			Anchor: patch.Anchor{Marker: MarkerRoutes, Position: patch.Before},
			Insert: fmt.Sprintf(`RouteRegistry.register({
  path: '/%s',
  router: %s,
  name: '%s Routes',
  description: '%s management endpoints',
});`, n.PluralKebabCase, routerVar, n.PascalCase, n.PascalCase),
			Present: func(text string) bool {
				return strings.Contains(text, "router: "+routerVar+",")
			},
		},
	)
}

func (s *targetSet) repository(d, e naming.Variants) {
	iface := "I" + e.PascalCase + "Repository"
	impl := e.PascalCase + "Repository"
	s.symbol(SectionRepositories, impl)
	s.importLine(SectionDomain, iface,
		fmt.Sprintf("../domain/%s/repositories/%s.repository.interface", d.Lowercase, e.KebabCase))
	s.importLine(SectionInfrastructure, impl, "./repositories/"+e.KebabCase+".repository")
	s.binding(SectionRepositories, "bind", iface, impl, impl)
}

func (s *targetSet) domainService(d naming.Variants, class, file string) {
	s.symbol(SectionDomainServices, class)
	s.importLine(SectionDomain, class, fmt.Sprintf("../domain/%s/services/%s", d.Lowercase, file))
	s.binding(SectionDomainServices, "bind", class, class, class)
}

func (s *targetSet) useCase(d naming.Variants, class, file string) {
	s.symbol(SectionUseCases, class)
	s.importLine(SectionApplication, class, fmt.Sprintf("../application/use-cases/%s/%s", d.Lowercase, file))
	s.binding(SectionUseCases, "bind", class, class, class)
}

func (s *targetSet) controller(c naming.Variants) {
	class := c.PascalCase + "Controller"
	s.symbol(SectionControllers, class)
	s.importLine(SectionPresentation, class, "../presentation/http/controllers/"+c.KebabCase+".controller")
	s.binding(SectionControllers, "bind", class, class, class)
}

// databaseRepository rebinds the domain repository symbol to a persistence-backed
// implementation generated under src/infrastructure/database.
func (s *targetSet) databaseRepository(d naming.Variants, kind, classPrefix string) {
	iface := "I" + d.PascalCase + "Repository"
	symbol := d.PascalCase + "Repository"
	impl := d.PascalCase + classPrefix + "Repository"
	s.importLine(SectionDomain, iface,
		fmt.Sprintf("../domain/%s/repositories/%s.repository.interface", d.Lowercase, d.KebabCase))
	s.importLine(SectionInfrastructure, impl,
		fmt.Sprintf("./database/%s/%s/repositories/%s.repository", d.KebabCase, kind, d.KebabCase))
	s.binding(SectionDatabase, "rebind", iface, symbol, impl)
}

// sharedExport re-exports the persistence layer of d from the index of the domain
// whose connection it uses. The index is seeded with the connection export when the
// shared domain has none yet.
func (s *targetSet) sharedExport(shared string, d naming.Variants, kind string) {
	line := fmt.Sprintf("export * from '../../%s/%s';", d.KebabCase, kind)
	s.other = append(s.other, PatchTarget{
		Path: fmt.Sprintf("src/infrastructure/database/%s/%s/index.ts", shared, kind),
		Seed: "export * from './connection';\n",
		Patches: []patch.Patch{{
			Name:   "export " + d.KebabCase,
			Anchor: patch.Anchor{Position: patch.End},
			Insert: line,
		}},
	})
}

// PatchTargets returns the shared-file patches a generator applies after writing its
// files. Generators that only add standalone files return nil.
func PatchTargets(generatorType string, ctx *Context) []PatchTarget {
	var s targetSet
	d := ctx.DomainNames()
	n := ctx.Names()

	switch generatorType {
	case "domain":
		s.domainService(d, d.PascalCase+"DomainService", d.KebabCase+"-domain.service")
		for _, verb := range []string{"Create", "Get", "Update", "Delete"} {
			s.useCase(d, verb+d.PascalCase+"UseCase",
				strings.ToLower(verb)+"-"+d.KebabCase+".use-case")
		}
		s.repository(d, d)
		s.controller(d)
		s.route(d)
	case "use-case":
		s.useCase(d, n.PascalCase+"UseCase", n.KebabCase+".use-case")
	case "repository":
		s.repository(d, n)
	case "service":
		s.domainService(d, n.PascalCase+"Service", n.KebabCase+".service")
	case "controller":
		s.controller(n)
	case "presentation-http":
		s.controller(d)
		s.route(d)
	case "mongodb-lazy":
		s.databaseRepository(d, "mongodb", "Mongo")
		if shared := ctx.String("sharedDomain"); shared != "" {
			s.sharedExport(shared, d, "mongodb")
		}
	case "mysql-lazy":
		s.databaseRepository(d, "mysql", "MySql")
		if shared := ctx.String("sharedDomain"); shared != "" {
			s.sharedExport(shared, d, "mysql")
		}
	default:
		return nil
	}

	return s.build()
}
