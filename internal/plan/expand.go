package plan

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandExecutables turns executable arguments into absolute paths. Arguments
// containing glob syntax are expanded with doublestar and must match at least
// one file; plain paths are kept whether or not they exist. The result is
// sorted and free of duplicates.
func ExpandExecutables(args []string) ([]string, error) {
	seen := make(map[string]struct{}, len(args))
	var out []string
	add := func(p string) error {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", p, err)
		}
		if _, ok := seen[abs]; ok {
			return nil
		}
		seen[abs] = struct{}{}
		out = append(out, abs)
		return nil
	}

	for _, arg := range args {
		if !hasMeta(arg) {
			if err := add(arg); err != nil {
				return nil, err
			}
			continue
		}
		if !doublestar.ValidatePathPattern(arg) {
			return nil, fmt.Errorf("invalid executable pattern %q", arg)
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("pattern %q matched no executables", arg)
		}
		for _, m := range matches {
			if err := add(m); err != nil {
				return nil, err
			}
		}
	}

	sort.Strings(out)
	return out, nil
}

func hasMeta(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
