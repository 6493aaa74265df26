// Package resources registers every API resource with the core registry.
// Import this package to ensure all resources are registered.
package resources

// This file exists to provide a single import point.
// Each resource file uses init() to register its resources.
