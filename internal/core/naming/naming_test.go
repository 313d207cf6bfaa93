package naming

import (
	"strings"
	"testing"
	"unicode"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		input string
		want  Variants
	}{
		{
			input: "order",
			want: Variants{
				CamelCase:          "order",
				PascalCase:         "Order",
				KebabCase:          "order",
				SnakeCase:          "order",
				Lowercase:          "order",
				Uppercase:          "ORDER",
				PluralCamelCase:    "orders",
				PluralPascalCase:   "Orders",
				PluralKebabCase:    "orders",
				SingularCamelCase:  "order",
				SingularPascalCase: "Order",
			},
		},
		{
			input: "OrderItem",
			want: Variants{
				CamelCase:          "orderItem",
				PascalCase:         "OrderItem",
				KebabCase:          "order-item",
				SnakeCase:          "order_item",
				Lowercase:          "orderitem",
				Uppercase:          "ORDERITEM",
				PluralCamelCase:    "orderItems",
				PluralPascalCase:   "OrderItems",
				PluralKebabCase:    "order-items",
				SingularCamelCase:  "orderItem",
				SingularPascalCase: "OrderItem",
			},
		},
		{
			input: "product-category",
			want: Variants{
				CamelCase:          "productCategory",
				PascalCase:         "ProductCategory",
				KebabCase:          "product-category",
				SnakeCase:          "product_category",
				Lowercase:          "product-category",
				Uppercase:          "PRODUCT-CATEGORY",
				PluralCamelCase:    "productCategories",
				PluralPascalCase:   "ProductCategories",
				PluralKebabCase:    "product-categories",
				SingularCamelCase:  "productCategory",
				SingularPascalCase: "ProductCategory",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Derive(tt.input)
			if got != tt.want {
				t.Errorf("Derive(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestToCamel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"user", "user"},
		{"User", "user"},
		{"user_profile", "userProfile"},
		{"user-profile", "userProfile"},
		{"user profile", "userProfile"},
		{"userProfile", "userProfile"},
		{"UserProfile", "userProfile"},
		{"a", "a"},
		{"", ""},
		{"__order__", "order"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ToCamel(tt.input); got != tt.want {
				t.Errorf("ToCamel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToKebabAndSnake(t *testing.T) {
	tests := []struct {
		input     string
		wantKebab string
		wantSnake string
	}{
		{"OrderItem", "order-item", "order_item"},
		{"order_item", "order-item", "order_item"},
		{"order item", "order-item", "order_item"},
		{"order-item", "order-item", "order_item"},
		{"orderItemLine", "order-item-line", "order_item_line"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ToKebab(tt.input); got != tt.wantKebab {
				t.Errorf("ToKebab(%q) = %q, want %q", tt.input, got, tt.wantKebab)
			}
			if got := ToSnake(tt.input); got != tt.wantSnake {
				t.Errorf("ToSnake(%q) = %q, want %q", tt.input, got, tt.wantSnake)
			}
		})
	}
}

func TestPluralizeSingularize(t *testing.T) {
	tests := []struct {
		singular string
		plural   string
	}{
		{"order", "orders"},
		{"category", "categories"},
		{"day", "days"},
		{"box", "boxes"},
		{"address", "addresses"},
		{"match", "matches"},
		{"dish", "dishes"},
		{"quiz", "quizes"},
	}

	for _, tt := range tests {
		t.Run(tt.singular, func(t *testing.T) {
			if got := Pluralize(tt.singular); got != tt.plural {
				t.Errorf("Pluralize(%q) = %q, want %q", tt.singular, got, tt.plural)
			}
			if got := Singularize(tt.plural); got != tt.singular {
				t.Errorf("Singularize(%q) = %q, want %q", tt.plural, got, tt.singular)
			}
		})
	}

	if got := Singularize("status"); got != "status" {
		t.Errorf("Singularize(status) = %q, want unchanged", got)
	}
}

func TestPascalCaseProperties(t *testing.T) {
	inputs := []string{"order", "Order", "order-item", "order_item", "order item", "x", "HTTPServer", "user profile settings"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			pascal := Derive(input).PascalCase
			first := []rune(pascal)[0]
			if !unicode.IsUpper(first) {
				t.Errorf("PascalCase %q does not start with an uppercase letter", pascal)
			}
			if strings.ContainsAny(pascal, "-_ ") {
				t.Errorf("PascalCase %q contains a separator", pascal)
			}
		})
	}
}

func TestCamelCaseIdempotent(t *testing.T) {
	inputs := []string{"order", "OrderItem", "order-item", "user_profile_settings", "HTTPServer", "a b c"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			camel := Derive(input).CamelCase
			if again := Derive(camel).CamelCase; again != camel {
				t.Errorf("Derive(%q).CamelCase = %q, want %q", camel, again, camel)
			}
		})
	}
}

func TestVariantsMap(t *testing.T) {
	m := Derive("order").Map()
	if len(m) != 11 {
		t.Errorf("Map() has %d keys, want 11", len(m))
	}
	if m["pascalCase"] != "Order" {
		t.Errorf("Map()[pascalCase] = %v, want Order", m["pascalCase"])
	}
}
