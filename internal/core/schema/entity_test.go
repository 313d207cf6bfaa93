package schema

import (
	"reflect"
	"testing"
)

func TestFieldsFromEntity(t *testing.T) {
	source := `import { Entity } from '../../shared/entity';

export interface CustomerProps {
  name: string;
  description?: string;
  isActive: boolean;
  readonly signedUpAt: Date;
  tags?: string[];
  loyalty: number;
  meta: Record<string, unknown>;
}

export class Customer extends Entity<CustomerProps> {
  get name(): string {
    return this.props.name;
  }
}
`
	want := []Field{
		{Name: "name", Type: "string", Required: true},
		{Name: "description", Type: "string"},
		{Name: "isActive", Type: "boolean", Required: true},
		{Name: "signedUpAt", Type: "date", Required: true},
		{Name: "tags", Type: "array"},
		{Name: "loyalty", Type: "number", Required: true},
		{Name: "meta", Type: "object", Required: true},
	}

	if got := FieldsFromEntity(source, "Customer"); !reflect.DeepEqual(got, want) {
		t.Errorf("FieldsFromEntity() = %+v, want %+v", got, want)
	}
}

func TestFieldsFromEntity_NoProps(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"empty", ""},
		{"other entity", "export interface OrderProps {\n  total: number;\n}\n"},
		{"unterminated", "export interface CustomerProps {\n  name: string;\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FieldsFromEntity(tt.source, "Customer"); got != nil {
				t.Errorf("FieldsFromEntity() = %+v, want nil", got)
			}
		})
	}
}

func TestDecodeFields(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    []string
		wantErr bool
	}{
		{name: "nil", input: nil},
		{name: "flag string", input: `[{"name":"title","type":"string"}]`, want: []string{"title"}},
		{
			name: "decoded config array",
			input: []any{
				map[string]any{"name": "title", "type": "string", "required": true},
				map[string]any{"name": "price", "type": "number"},
			},
			want: []string{"title", "price"},
		},
		{
			name:  "toml array of tables",
			input: []map[string]any{{"name": "sku", "type": "string"}},
			want:  []string{"sku"},
		},
		{name: "invalid type", input: []any{map[string]any{"name": "x", "type": "blob"}}, wantErr: true},
		{name: "not an array", input: map[string]any{"name": "x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := DecodeFields(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeFields() error = %v, wantErr %v", err, tt.wantErr)
			}
			var names []string
			for _, f := range fields {
				names = append(names, f.Name)
			}
			if !reflect.DeepEqual(names, tt.want) {
				t.Errorf("DecodeFields() names = %v, want %v", names, tt.want)
			}
		})
	}
}
