// Package schema parses persistence field definitions supplied with --fields and maps
// them onto the types of the generated TypeScript, mongoose and sequelize code.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field describes one persisted attribute of a generated schema.
type Field struct {
	Name      string   `json:"name" validate:"required"`
	Type      string   `json:"type" validate:"required,oneof=string text number float decimal boolean date enum json uuid array object"`
	Required  bool     `json:"required,omitempty"`
	Unique    bool     `json:"unique,omitempty"`
	Index     bool     `json:"index,omitempty"`
	Default   any      `json:"default,omitempty"`
	Trim      bool     `json:"trim,omitempty"`
	Lowercase bool     `json:"lowercase,omitempty"`
	Uppercase bool     `json:"uppercase,omitempty"`
	MinLength *int     `json:"minlength,omitempty" validate:"omitempty,gte=0"`
	MaxLength *int     `json:"maxlength,omitempty" validate:"omitempty,gte=0"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	Enum      []string `json:"enum,omitempty" validate:"required_if=Type enum"`
}

var validate = validator.New()

// ParseFields decodes a JSON array of field definitions. Single-quoted input, as left
// behind by some shells, is accepted by retrying with the quotes swapped.
func ParseFields(raw string) ([]Field, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		swapped := strings.ReplaceAll(raw, "'", `"`)
		if swapped == raw || json.Unmarshal([]byte(swapped), &decoded) != nil {
			return nil, fmt.Errorf("invalid fields JSON: %w", err)
		}
		raw = swapped
	}

	items, ok := decoded.([]any)
	if !ok {
		return nil, errors.New("fields must be a JSON array of {name, type} objects")
	}
	for i, item := range items {
		if _, ok := item.(map[string]any); !ok {
			return nil, fmt.Errorf("field %d must be an object", i+1)
		}
	}

	var fields []Field
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("invalid fields JSON: %w", err)
	}

	for i := range fields {
		fields[i].Type = strings.ToLower(strings.TrimSpace(fields[i].Type))
		if err := validate.Struct(fields[i]); err != nil {
			return nil, fmt.Errorf("field %d (%q): %w", i+1, fields[i].Name, describe(err))
		}
	}

	return fields, nil
}

// DecodeFields accepts fields from either source: the raw --fields string or the
// already decoded value of a "fields" key in a --config file. Both go through ParseFields.
func DecodeFields(v any) ([]Field, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return ParseFields(t)
	case []Field:
		return t, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("invalid fields: %w", err)
	}
	return ParseFields(string(data))
}

// describe turns validator errors into a short message.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, strings.ToLower(fe.Field())+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("unsupported type %q", fe.Value()))
		case "required_if":
			msgs = append(msgs, "enum values are required for enum fields")
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// DefaultMongoFields is used when no --fields are given to the MongoDB generator.
func DefaultMongoFields() []Field {
	return []Field{
		{Name: "name", Type: "string", Required: true, Trim: true},
		{Name: "email", Type: "string", Required: true, Unique: true, Lowercase: true, Trim: true},
		{Name: "isActive", Type: "boolean", Default: true},
	}
}

// DefaultMySQLFields is used when no --fields are given to the MySQL generator.
func DefaultMySQLFields() []Field {
	return []Field{
		{Name: "name", Type: "string", Required: true},
		{Name: "description", Type: "text"},
		{Name: "isActive", Type: "boolean", Default: true},
	}
}

// TSType returns the TypeScript type of the field.
func (f Field) TSType() string {
	switch f.Type {
	case "number", "float", "decimal":
		return "number"
	case "boolean":
		return "boolean"
	case "date":
		return "Date"
	case "array":
		return "any[]"
	case "object", "json":
		return "Record<string, any>"
	case "enum":
		if len(f.Enum) > 0 {
			quoted := make([]string, len(f.Enum))
			for i, v := range f.Enum {
				quoted[i] = "'" + v + "'"
			}
			return strings.Join(quoted, " | ")
		}
		return "string"
	default:
		return "string"
	}
}

// MongooseType returns the mongoose schema type of the field.
func (f Field) MongooseType() string {
	switch f.Type {
	case "number", "float", "decimal":
		return "Number"
	case "boolean":
		return "Boolean"
	case "date":
		return "Date"
	case "array":
		return "[Schema.Types.Mixed]"
	case "object", "json":
		return "Schema.Types.Mixed"
	default:
		return "String"
	}
}

// SequelizeType returns the sequelize DataTypes expression of the field.
func (f Field) SequelizeType() string {
	switch f.Type {
	case "text":
		return "DataTypes.TEXT"
	case "number":
		return "DataTypes.INTEGER"
	case "float":
		return "DataTypes.FLOAT"
	case "decimal":
		return "DataTypes.DECIMAL"
	case "boolean":
		return "DataTypes.BOOLEAN"
	case "date":
		return "DataTypes.DATE"
	case "uuid":
		return "DataTypes.UUID"
	case "enum":
		quoted := make([]string, len(f.Enum))
		for i, v := range f.Enum {
			quoted[i] = "'" + v + "'"
		}
		return "DataTypes.ENUM(" + strings.Join(quoted, ", ") + ")"
	case "json", "array", "object":
		return "DataTypes.JSON"
	default:
		return "DataTypes.STRING"
	}
}

// DefaultLiteral renders the default value as a TypeScript literal, or "" when unset.
func (f Field) DefaultLiteral() string {
	if f.Default == nil {
		return ""
	}
	switch v := f.Default.(type) {
	case string:
		return "'" + strings.ReplaceAll(v, "'", `\'`) + "'"
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
