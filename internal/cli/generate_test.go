package cli

import (
	"reflect"
	"testing"

	"github.com/gelo7212/express-ts-backend-generator/internal/ports/primary"
)

func TestGeneratorCommand_Request(t *testing.T) {
	tests := []struct {
		name string
		cmd  string
		args []string
		want primary.GenerateRequest
	}{
		{
			name: "domain",
			cmd:  "generate:domain",
			args: []string{"order"},
			want: primary.GenerateRequest{Generator: "domain", DomainName: "order"},
		},
		{
			name: "entity",
			cmd:  "generate:entity",
			args: []string{"order", "LineItem"},
			want: primary.GenerateRequest{Generator: "entity", DomainName: "order", Name: "LineItem"},
		},
		{
			name: "use case missing name",
			cmd:  "generate:use-case",
			args: []string{"order"},
			want: primary.GenerateRequest{Generator: "use-case", DomainName: "order"},
		},
		{
			name: "no arguments",
			cmd:  "generate:presentation-http",
			want: primary.GenerateRequest{Generator: "presentation-http"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var found bool
			for _, g := range generatorCommands {
				if g.name != tt.cmd {
					continue
				}
				found = true
				if got := g.request(tt.args); !reflect.DeepEqual(got, tt.want) {
					t.Errorf("request() = %+v, want %+v", got, tt.want)
				}
			}
			if !found {
				t.Fatalf("command %s not registered", tt.cmd)
			}
		})
	}
}

func TestGenerateCmds_NamesAndAliases(t *testing.T) {
	seen := make(map[string]string)
	for _, cmd := range GenerateCmds() {
		for _, name := range append([]string{cmd.Name()}, cmd.Aliases...) {
			if owner, ok := seen[name]; ok {
				t.Errorf("%s is used by both %s and %s", name, owner, cmd.Name())
			}
			seen[name] = cmd.Name()
		}
		if cmd.Flags().Lookup("force") == nil || cmd.Flags().Lookup("config") == nil {
			t.Errorf("%s lacks the generation flags", cmd.Name())
		}
	}

	for alias, want := range map[string]string{
		"g:d":            "generate:domain",
		"g-d":            "generate:domain",
		"g:vo":           "generate:value-object",
		"g:uc":           "generate:use-case",
		"g:p-http":       "generate:presentation-http",
		"g:ml":           "generate:mongodb:lazy",
		"gen:mongo:lazy": "generate:mongodb:lazy",
		"g:sl":           "generate:mysql:lazy",
	} {
		if seen[alias] != want {
			t.Errorf("alias %s resolves to %q, want %s", alias, seen[alias], want)
		}
	}
}

func TestGenerateCmds_DomainFlags(t *testing.T) {
	for _, cmd := range GenerateCmds() {
		if cmd.Name() != "generate:domain" {
			continue
		}
		for _, flag := range []string{"skip-tests", "skip-entity"} {
			if cmd.Flags().Lookup(flag) == nil {
				t.Errorf("generate:domain lacks --%s", flag)
			}
		}
		if err := cmd.Args(cmd, []string{"a", "b"}); err == nil {
			t.Error("generate:domain should reject a second argument")
		}
		return
	}
	t.Fatal("generate:domain not registered")
}

func TestSchemaCommand_Request(t *testing.T) {
	tests := []struct {
		name  string
		cmd   int // index into schemaCommands
		flags map[string]string
		want  primary.GenerateRequest
	}{
		{
			name: "defaults leave options empty",
			cmd:  0,
			want: primary.GenerateRequest{Generator: "mongodb-lazy", DomainName: "product", Options: map[string]any{}},
		},
		{
			name:  "mongodb with fields and shared connection",
			cmd:   0,
			flags: map[string]string{"fields": `[{"name":"title","type":"string"}]`, "shared": "UserAccount"},
			want: primary.GenerateRequest{
				Generator:  "mongodb-lazy",
				DomainName: "product",
				Fields:     `[{"name":"title","type":"string"}]`,
				Options:    map[string]any{"sharedDomain": "user-account"},
			},
		},
		{
			name:  "mysql connection flags",
			cmd:   1,
			flags: map[string]string{"host": "db.internal", "port": "3307", "dialect": "mariadb", "db-name": "shop"},
			want: primary.GenerateRequest{
				Generator:  "mysql-lazy",
				DomainName: "product",
				Options:    map[string]any{"host": "db.internal", "port": 3307, "dialect": "mariadb", "dbName": "shop"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := schemaCommands[tt.cmd]
			cmd := s.command()
			for k, v := range tt.flags {
				if err := cmd.Flags().Set(k, v); err != nil {
					t.Fatalf("Set(%s) error = %v", k, err)
				}
			}
			if got := s.request(cmd, []string{"product"}); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("request() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSchemaCommand_DialectOnlyForMySQL(t *testing.T) {
	if schemaCommands[0].command().Flags().Lookup("dialect") != nil {
		t.Error("mongodb command should not take --dialect")
	}
	if schemaCommands[1].command().Flags().Lookup("dialect") == nil {
		t.Error("mysql command should take --dialect")
	}
}
