// Copyright (c) GDSKit contributors. All rights reserved.
// Licensed under the MIT License.

//go:build ignore

// gen_docs_prose.go contains prose constants used by gen_docs.go to build the
// reference pages. Separated to keep gen_docs.go focused on logic.
package main

// bt is a single backtick helper for embedding in raw strings.
const bt = "`"

// cbt is the triple-backtick code-block marker.
const cbt = bt + bt + bt

// cliFrontmatter is the YAML frontmatter for the CLI reference page.
const cliFrontmatter = `---
title: CLI Reference
description: Every GDSKit command with its arguments and flags, generated from the command tree.
---`

// cliIntroProse introduces the CLI reference.
const cliIntroProse = `This page lists every GDSKit command with its arguments and flags. It is generated from the command tree, so the listings match the installed binary exactly.

All commands accept the global flags listed at the bottom of this page in addition to their own.`

// configFrontmatter is the YAML frontmatter for the configuration reference page.
const configFrontmatter = `---
title: Declarative Configuration
description: Complete reference for gdskit.yaml - the project-level configuration file that sets workspace-wide defaults.
---`

// configIntroProse introduces the configuration file.
const configIntroProse = `GDSKit reads workspace-wide defaults from a declarative YAML configuration file. This page describes ` + bt + `gdskit.yaml` + bt + ` — the project-level configuration file that commands fall back to when the matching flags are not set.

## What is gdskit.yaml?

A GDSKit workspace can include a ` + bt + `gdskit.yaml` + bt + ` file next to the data it processes. The file can be committed to version control so everyone working on the same datasets shares the same defaults.

The configuration file uses the ` + bt + `gdskit.dev/v1alpha1` + bt + ` API version and follows the ` + bt + `Project` + bt + ` kind schema:

` + cbt + `yaml
apiVersion: gdskit.dev/v1alpha1
kind: Project
spec:
  dataRoot: ~/data/colorado
  noData: -9999
  dtype: Float32
  resample: bilinear
  compress: DEFLATE
  workers: 4
  overwrite: false
` + cbt

// configFieldsProse documents each spec field.
const configFieldsProse = `## Fields

All fields are optional. An absent field leaves the matching flag's default in effect.

- ` + bt + `spec.dataRoot` + bt + ` — anchors relative dataset paths, so commands can be run from anywhere. A leading ` + bt + `~/` + bt + ` expands to the home directory. Absolute paths on the command line are never rewritten.
- ` + bt + `spec.noData` + bt + ` — the marker value written to cells that carry no data. Defaults to ` + bt + `-9999` + bt + `.
- ` + bt + `spec.dtype` + bt + ` — the default cell type for produced rasters, for example ` + bt + `Float32` + bt + ` or ` + bt + `Int16` + bt + `.
- ` + bt + `spec.resample` + bt + ` — the default sampling kernel for reprojection, ` + bt + `near` + bt + ` or ` + bt + `bilinear` + bt + `.
- ` + bt + `spec.compress` + bt + ` — the default compression for produced GeoTIFFs, ` + bt + `NONE` + bt + ` or ` + bt + `DEFLATE` + bt + `.
- ` + bt + `spec.workers` + bt + ` — caps concurrent workers in batch operations such as tiling. Zero selects a cap based on the CPU count.
- ` + bt + `spec.overwrite` + bt + ` — lets commands replace existing output files without the ` + bt + `--overwrite` + bt + ` flag.`

// configPrecedenceProse documents where values come from.
const configPrecedenceProse = `## Precedence

Values are resolved from highest to lowest priority:

1. Command-line flags
2. Environment variables with the ` + bt + `GDSKIT_` + bt + ` prefix, for example ` + bt + `GDSKIT_SPEC_DATAROOT` + bt + `
3. ` + bt + `gdskit.yaml` + bt + ` in the current directory, then in the home directory
4. Built-in defaults`
