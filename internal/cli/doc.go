// Package cli implements the gtadapter command tree.
package cli
