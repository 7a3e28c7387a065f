// Package formatter provides a code formatter for .dcx component files.
//
// It parses .dcx source, normalizes whitespace, indentation, and import
// ordering, aligns the arrows of split_components lists, then pretty-prints
// the result. Used by the "btngen fmt" command.
package formatter
