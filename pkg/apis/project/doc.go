// Package project provides project configuration API types.
//
// This package contains versioned API types for GDSKit project configuration:
//
//   - v1alpha1: Current API version for project configuration
//
// The project types define the declarative configuration format used
// in gdskit.yaml files.
package project
