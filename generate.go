//go:build ignore

package main

// This file exists solely to provide a go:generate directive at the project root.
// Run `go generate` to regenerate every *_dcx.go file in the examples.
//
// Usage:
//   go generate
//
// For individual packages, add this directive to any Go file:
//   //go:generate go run github.com/grindlemire/btngen/cmd/btngen generate

//go:generate go run ./cmd/btngen generate ./examples/...
