// Copyright (c) GDSKit contributors. All rights reserved.
// Licensed under the MIT License.

//go:build ignore

// gen_docs.go generates the reference documentation pages under reference/
// from the command tree and the prose constants in gen_docs_prose.go. The
// CLI page is rebuilt from the live cobra commands so flag listings never
// drift from the code.
//
// Usage:
//
//	go run gen_docs.go gen_docs_prose.go
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gdstools/gdskit/pkg/cli/cmd"
)

const (
	outputDir       = "reference"
	dirPermissions  = 0o750
	filePermissions = 0o644
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := os.MkdirAll(outputDir, dirPermissions); err != nil {
		return fmt.Errorf("create %s: %w", outputDir, err)
	}

	rootCmd := cmd.NewRootCmd("dev", "none", "unknown")

	if err := writePage(filepath.Join(outputDir, "cli.md"), buildCLIPage(rootCmd)); err != nil {
		return err
	}

	return writePage(filepath.Join(outputDir, "configuration.md"), buildConfigPage())
}

func writePage(path, content string) error {
	if err := os.WriteFile(path, []byte(content), filePermissions); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Printf("gen_docs: wrote %s (%d bytes)\n", path, len(content))

	return nil
}

// buildCLIPage renders one section per command, root first.
func buildCLIPage(rootCmd *cobra.Command) string {
	var builder strings.Builder

	builder.WriteString(cliFrontmatter)
	builder.WriteString("\n\n")
	builder.WriteString(cliIntroProse)
	builder.WriteString("\n")

	writeCommandSection(&builder, rootCmd, 2)

	builder.WriteString("\n## Global Flags\n\n")
	builder.WriteString(cbt + "\n")
	builder.WriteString(rootCmd.PersistentFlags().FlagUsages())
	builder.WriteString(cbt + "\n")

	return builder.String()
}

// writeCommandSection renders one command and recurses into its children,
// one heading level deeper per generation.
func writeCommandSection(builder *strings.Builder, command *cobra.Command, depth int) {
	if command.Hidden {
		return
	}

	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("#", depth))
	builder.WriteString(" ")
	builder.WriteString(command.CommandPath())
	builder.WriteString("\n\n")

	description := command.Long
	if description == "" {
		description = command.Short
	}

	builder.WriteString(description)
	builder.WriteString("\n\n")
	builder.WriteString(cbt + "\n" + command.UseLine() + "\n" + cbt + "\n")

	if flags := command.NonInheritedFlags().FlagUsages(); flags != "" {
		builder.WriteString("\n" + cbt + "\n")
		builder.WriteString(flags)
		builder.WriteString(cbt + "\n")
	}

	for _, sub := range command.Commands() {
		writeCommandSection(builder, sub, depth+1)
	}
}

// buildConfigPage assembles the configuration reference from prose.
func buildConfigPage() string {
	var builder strings.Builder

	builder.WriteString(configFrontmatter)
	builder.WriteString("\n\n")
	builder.WriteString(configIntroProse)
	builder.WriteString("\n\n")
	builder.WriteString(configFieldsProse)
	builder.WriteString("\n\n")
	builder.WriteString(configPrecedenceProse)
	builder.WriteString("\n")

	return builder.String()
}
