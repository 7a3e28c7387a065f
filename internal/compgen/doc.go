// Package compgen compiles .dcx component files into Go builder chains.
//
// The pipeline consists of:
//   - [Lexer]: tokenizes .dcx source into a token stream
//   - [Parser]: builds an AST from the token stream
//   - [Analyzer]: checks declarations and row homogeneity, collects imports
//   - [Generator]: emits Go source code from the analyzed AST
//
// [ExpandComponent] and [ExpandComponents] expand a single snippet without a
// surrounding file. [PackRows] groups a flat component list into action rows.
package compgen
