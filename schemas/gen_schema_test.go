// Copyright (c) GDSKit contributors. All rights reserved.
// Licensed under the MIT License.

package schemas_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestGeneratedSchema(t *testing.T) {
	outDir := t.TempDir()
	outPath := filepath.Join(outDir, "gdskit-config.schema.json")

	// Run the generator from the schemas/ directory.
	cmd := exec.Command("go", "run", "gen_schema.go", outPath)
	cmd.Dir = filepath.Join("..", "schemas")

	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("generator failed: %v\noutput:\n%s", err, string(out))
	}

	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read generated schema: %v", err)
	}

	var schema map[string]any
	if err := json.Unmarshal(b, &schema); err != nil {
		t.Fatalf("unmarshal generated schema: %v", err)
	}

	t.Run("root metadata", func(t *testing.T) {
		if got := schema["title"]; got != "GDSKit Project Configuration" {
			t.Errorf("title = %q, want %q", got, "GDSKit Project Configuration")
		}

		if got := schema["additionalProperties"]; got != false {
			t.Errorf("additionalProperties = %v, want false", got)
		}

		req, ok := schema["required"].([]any)
		if !ok || len(req) != 1 || req[0] != "spec" {
			t.Errorf("required = %v, want [spec]", schema["required"])
		}
	})

	t.Run("kind enum", func(t *testing.T) {
		kindProp := mustProp(t, schema, "kind")
		assertEnum(t, kindProp, []string{"Project"})
	})

	t.Run("apiVersion enum", func(t *testing.T) {
		apiProp := mustProp(t, schema, "apiVersion")
		assertEnum(t, apiProp, []string{"gdskit.dev/v1alpha1"})
	})

	t.Run("resample enum", func(t *testing.T) {
		spec := mustProp(t, schema, "spec")
		props := mustMap(t, spec["properties"], "spec.properties")
		resample := mustMap(t, props["resample"], "resample")
		assertEnum(t, resample, []string{"near", "bilinear"})
	})

	t.Run("compress enum", func(t *testing.T) {
		spec := mustProp(t, schema, "spec")
		props := mustMap(t, spec["properties"], "spec.properties")
		compress := mustMap(t, props["compress"], "compress")
		assertEnum(t, compress, []string{"NONE", "DEFLATE", "LZW", "JPEG"})
	})

	t.Run("dtype enum", func(t *testing.T) {
		spec := mustProp(t, schema, "spec")
		props := mustMap(t, spec["properties"], "spec.properties")
		dtype := mustMap(t, props["dtype"], "dtype")
		assertEnum(t, dtype, []string{
			"Byte", "UInt16", "Int16", "UInt32", "Int32",
			"Float32", "Float64",
			"CInt16", "CInt32", "CFloat32", "CFloat64",
		})
	})

	t.Run("no required fields on nested objects", func(t *testing.T) {
		// The generator clears required on all nested objects (omitzero).
		spec := mustProp(t, schema, "spec")
		if spec["required"] != nil {
			t.Errorf("spec should have no required fields, got %v", spec["required"])
		}
	})
}

func mustProp(t *testing.T, schema map[string]any, key string) map[string]any {
	t.Helper()

	props := mustMap(t, schema["properties"], "properties")

	return mustMap(t, props[key], key)
}

func mustMap(t *testing.T, v any, path string) map[string]any {
	t.Helper()

	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected %s to be an object, got %T", path, v)
	}

	return m
}

func assertEnum(t *testing.T, prop map[string]any, want []string) {
	t.Helper()

	got, ok := prop["enum"].([]any)
	if !ok {
		t.Fatalf("expected enum to be an array, got %T", prop["enum"])
	}

	if len(got) != len(want) {
		t.Fatalf("enum length = %d, want %d: %v", len(got), len(want), got)
	}

	for i, w := range want {
		if got[i] != w {
			t.Errorf("enum[%d] = %v, want %v", i, got[i], w)
		}
	}
}
