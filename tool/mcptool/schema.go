// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package mcptool

import (
	"fmt"
	"slices"

	"github.com/bytedance/sonic"
	"github.com/google/jsonschema-go/jsonschema"
	"google.golang.org/genai"

	"github.com/go-a2a/mcp-agent/types"
)

// ToGeminiSchema converts the input schema of an MCP tool to a Gemini Schema object.
//
// inputSchema may be any value that encodes to a JSON schema, typically the
// decoded map received from the server or a [*jsonschema.Schema]. Fields
// Gemini does not understand are dropped:
//
//   - a missing type becomes "object" unless the schema is defined by other keywords
//   - ["T", "null"] becomes T with nullable set
//   - formats other than int32/int64 on numbers and date-time/enum on strings are removed
func ToGeminiSchema(inputSchema any) (*genai.Schema, error) {
	if inputSchema == nil {
		return nil, nil
	}

	data, err := sonic.ConfigStd.Marshal(inputSchema)
	if err != nil {
		return nil, fmt.Errorf("encode input schema: %w", err)
	}
	var schema jsonschema.Schema
	if err := sonic.ConfigStd.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("decode input schema: %w", err)
	}

	return convertSchema(&schema), nil
}

func convertSchema(s *jsonschema.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	typ, nullable := schemaType(s)
	out := &genai.Schema{
		Type:        geminiType(typ),
		Description: s.Description,
		Pattern:     s.Pattern,
		Format:      geminiFormat(typ, s.Format),
		Minimum:     s.Minimum,
		Maximum:     s.Maximum,
	}
	if nullable {
		out.Nullable = types.ToPtr(true)
	}
	if len(s.Required) > 0 {
		out.Required = slices.Clone(s.Required)
	}
	for _, e := range s.Enum {
		if str, ok := e.(string); ok {
			out.Enum = append(out.Enum, str)
		}
	}

	out.MinLength = toInt64Ptr(s.MinLength)
	out.MaxLength = toInt64Ptr(s.MaxLength)
	out.MinItems = toInt64Ptr(s.MinItems)
	out.MaxItems = toInt64Ptr(s.MaxItems)
	out.MinProperties = toInt64Ptr(s.MinProperties)
	out.MaxProperties = toInt64Ptr(s.MaxProperties)

	out.Items = convertSchema(s.Items)
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = convertSchema(prop)
		}
	}
	for _, sub := range s.AnyOf {
		out.AnyOf = append(out.AnyOf, convertSchema(sub))
	}

	return out
}

// schemaType resolves the single JSON type of s and whether null is allowed.
func schemaType(s *jsonschema.Schema) (typ string, nullable bool) {
	typ = s.Type
	for _, t := range s.Types {
		switch {
		case t == "null":
			nullable = true
		case typ == "":
			typ = t
		}
	}
	if typ == "null" {
		typ, nullable = "object", true
	}
	if typ == "" && (len(s.Properties) > 0 || !hasDefiningFields(s)) {
		typ = "object"
	}
	if typ == "" && nullable {
		typ = "object"
	}

	return typ, nullable
}

func hasDefiningFields(s *jsonschema.Schema) bool {
	return s.Items != nil || s.AllOf != nil || s.AnyOf != nil || s.OneOf != nil ||
		s.Enum != nil || s.Const != nil ||
		s.Minimum != nil || s.Maximum != nil || s.MinLength != nil || s.MaxLength != nil
}

func geminiType(typ string) genai.Type {
	switch typ {
	case "":
		return ""
	case "string":
		return genai.TypeString
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	default:
		return genai.TypeObject
	}
}

// geminiFormat returns format when Gemini supports it for typ.
func geminiFormat(typ, format string) string {
	switch {
	case (typ == "integer" || typ == "number") && (format == "int32" || format == "int64"):
		return format
	case typ == "string" && (format == "date-time" || format == "enum"):
		return format
	default:
		return ""
	}
}

func toInt64Ptr(v *int) *int64 {
	if v == nil {
		return nil
	}
	return types.ToPtr(int64(*v))
}
