// Package configmanager loads the declarative gdskit.yaml project
// configuration and exposes its fields as command flags.
//
// Precedence, lowest to highest: field selector defaults, config file
// values, GDSKIT_ environment variables, explicitly set flags.
package configmanager
