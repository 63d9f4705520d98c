// Copyright (c) GDSKit contributors. All rights reserved.
// Licensed under the MIT License.

//go:build ignore

// gen_schema.go generates a JSON schema from the GDSKit project config types
// and writes it to gdskit-config.schema.json, so editors can validate and
// complete gdskit.yaml files.
//
// Usage:
//
//	go run gen_schema.go [output-path]
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/gdstools/gdskit/pkg/apis/project/v1alpha1"
	"github.com/gdstools/gdskit/pkg/geo/raster"
	"github.com/gdstools/gdskit/pkg/geo/warp"
)

const (
	dirPermissions  = 0o750
	filePermissions = 0o600
)

func main() {
	if err := run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Mapper:                    enumTypeMapper,
	}
	schema := reflector.Reflect(&v1alpha1.Project{})

	customizeSchema(schema)

	schemaJSON, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	outputPath := "gdskit-config.schema.json"
	if len(args) > 1 {
		outputPath = args[1]
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), dirPermissions); err != nil {
		return fmt.Errorf("create directory for %s: %w", outputPath, err)
	}

	if err := os.WriteFile(outputPath, schemaJSON, filePermissions); err != nil {
		return fmt.Errorf("write schema to %s: %w", outputPath, err)
	}

	fmt.Printf("gen_schema: wrote %s (%d bytes)\n", outputPath, len(schemaJSON))

	return nil
}

// customizeSchema applies all schema customizations.
func customizeSchema(schema *jsonschema.Schema) {
	schema.ID = ""
	schema.Title = "GDSKit Project Configuration"
	schema.Description = "JSON schema for GDSKit project configuration (gdskit.yaml)"

	// Clear required (all fields use omitzero).
	walkSchema(schema, func(s *jsonschema.Schema) {
		s.Required = nil
	})

	// Restore root-level spec requirement.
	schema.Required = []string{"spec"}

	// Set kind/apiVersion enums from constants.
	if schema.Properties != nil {
		if p, ok := schema.Properties.Get("kind"); ok && p != nil {
			p.Enum = []any{v1alpha1.Kind}
		}

		if p, ok := schema.Properties.Get("apiVersion"); ok && p != nil {
			p.Enum = []any{v1alpha1.APIVersion}
		}
	}
}

// walkSchema traverses the schema tree and calls fn on each node.
func walkSchema(schema *jsonschema.Schema, fn func(*jsonschema.Schema)) {
	if schema == nil {
		return
	}

	fn(schema)

	if schema.Properties != nil {
		for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
			walkSchema(pair.Value, fn)
		}
	}

	if schema.Items != nil {
		walkSchema(schema.Items, fn)
	}

	if schema.AdditionalProperties != nil {
		walkSchema(schema.AdditionalProperties, fn)
	}
}

// enumTypeMapper renders the cell type, resampling, and compression fields
// as string enums.
func enumTypeMapper(t reflect.Type) *jsonschema.Schema {
	switch t {
	case reflect.TypeFor[raster.DType]():
		return enumSchema(dtypeValues())
	case reflect.TypeFor[warp.Resample]():
		return enumSchema([]string{
			string(warp.ResampleNear),
			string(warp.ResampleBilinear),
		})
	case reflect.TypeFor[raster.Compression]():
		return enumSchema([]string{
			string(raster.CompressionNone),
			string(raster.CompressionDeflate),
			string(raster.CompressionLZW),
			string(raster.CompressionJPEG),
		})
	}

	return nil
}

func enumSchema(values []string) *jsonschema.Schema {
	enumVals := make([]any, len(values))
	for i, value := range values {
		enumVals[i] = value
	}

	return &jsonschema.Schema{Type: "string", Enum: enumVals}
}

// dtypeValues lists the configurable cell types. DTypeUnknown is a parse
// result, not a value anyone would configure.
func dtypeValues() []string {
	dtypes := raster.AllDTypes()

	values := make([]string, 0, len(dtypes))

	for _, dtype := range dtypes {
		if dtype == raster.DTypeUnknown {
			continue
		}

		values = append(values, string(dtype))
	}

	return values
}
