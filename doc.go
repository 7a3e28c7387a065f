// Package btngen expands compact button descriptions into Go code that
// builds chat-message controls.
//
// A component is written as a kind invocation followed by a label:
//
//	btn!("confirm") => emoji!('✔') "Confirm"
//	btn!("delete", styles.Danger) => Delete
//	url!(docsURL) => Docs
//
// Component expands one description into a builder chain. SplitComponents
// expands a comma-separated list, packing consecutive controls into action
// rows of at most MaxRowSize; row!() forces a new row.
//
// Most users run the btngen command on .dcx files instead:
//
//	//go:generate go run github.com/grindlemire/btngen/cmd/btngen generate ./...
package btngen
