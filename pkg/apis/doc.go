// Package apis provides API type definitions for GDSKit resources.
//
// This package contains versioned API types following Kubernetes API conventions:
//
//   - project: Project configuration types for GDSKit declarative configuration
//
// The API types are designed to be serializable to YAML and support
// declarative configuration workflows.
package apis
