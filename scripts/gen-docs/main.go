// Command gen-docs writes the shell completion scripts and man pages that are
// bundled into gtadapter release archives.
//
// Usage:
//
//	go run ./scripts/gen-docs [completions-dir [man-dir]]
//
// The defaults are "completions" and "man/man1".
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/AbdelazizMoustafa10m/gtadapter/internal/cli"
)

func main() {
	completionsDir, manDir := "completions", filepath.Join("man", "man1")
	if len(os.Args) > 1 {
		completionsDir = os.Args[1]
	}
	if len(os.Args) > 2 {
		manDir = os.Args[2]
	}

	root := cli.NewRootCmd()
	if err := writeCompletions(root, completionsDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := writeManPages(root, manDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func writeCompletions(root *cobra.Command, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	scripts := map[string]func(io.Writer) error{
		"gtadapter.bash": func(w io.Writer) error { return root.GenBashCompletionV2(w, true) },
		"_gtadapter":     root.GenZshCompletion,
		"gtadapter.fish": func(w io.Writer) error { return root.GenFishCompletion(w, true) },
		"gtadapter.ps1":  root.GenPowerShellCompletionWithDesc,
	}
	for name, gen := range scripts {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		if err := gen(f); err != nil {
			f.Close()
			return fmt.Errorf("generating %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", path, err)
		}
		fmt.Printf("Generated %s\n", path)
	}
	return nil
}

func writeManPages(root *cobra.Command, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	header := &doc.GenManHeader{
		Title:   "GTADAPTER",
		Section: "1",
		Source:  "gtadapter",
		Manual:  "gtadapter Manual",
	}
	if err := doc.GenManTree(root, header, dir); err != nil {
		return fmt.Errorf("generating man pages: %w", err)
	}
	fmt.Printf("Man pages generated in %s/\n", dir)
	return nil
}
