// Package types defines the Catalog interface, entity types, and standard
// errors for the shelfmark library system.
package types
