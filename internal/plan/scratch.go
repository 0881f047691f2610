package plan

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// scratchPrefix starts the per-solution directory under the scratch root.
const scratchPrefix = "gta_"

// SolutionKey names the scratch directory shared by every thread of one
// solution. Different solutions get different keys so concurrent runs do not
// share test directories.
func SolutionKey(solutionDir string) string {
	return fmt.Sprintf("%s%016x", scratchPrefix, xxhash.Sum64String(solutionDir))
}

// ScratchDir is the $(TestDir) of one execution thread.
func ScratchDir(root, solutionDir string, threadID int) string {
	return filepath.Join(root, SolutionKey(solutionDir), strconv.Itoa(threadID))
}
