// Package docs provides go:generate directives for generating reference
// documentation (CLI flags and configuration reference) from Go source code.
//
// Run: go generate ./docs/...
package docs

//go:generate go run gen_docs.go gen_docs_prose.go
