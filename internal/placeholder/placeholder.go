// Package placeholder expands the tokens gtadapter settings strings may
// contain: the solution directory, the test executable's path and directory,
// the per-thread scratch directory, the thread id, and environment variables.
//
// Resolution is a fixed pipeline of literal replacements:
//
//	$(SolutionDir) -> $(TestDir), $(ThreadId) -> $(ExecutableDir), $(ExecutablePath) -> %VAR%, ${VAR}
//
// Each stage replaces every occurrence of its own tokens exactly once, so a
// value inserted by a stage is never rescanned for that stage's tokens, but
// later stages do see it: a solution directory of `%HOME%\src` gets its
// variable expanded by the final stage. There is no escaping; literal token
// text is always treated as a token.
//
// All functions are pure and safe for concurrent use.
package placeholder

import (
	"os"
	"strings"
)

// Tokens are part of the persisted settings format and are case-sensitive.
const (
	TokenSolutionDir    = "$(SolutionDir)"
	TokenExecutablePath = "$(ExecutablePath)"
	TokenExecutableDir  = "$(ExecutableDir)"
	TokenTestDir        = "$(TestDir)"
	TokenThreadID       = "$(ThreadId)"
)

// EnvFunc looks up an environment variable.
type EnvFunc func(key string) (string, bool)

// Resolver carries the inputs shared by every resolution for one solution.
// The zero value resolves $(SolutionDir) to "" and reads the live process
// environment.
type Resolver struct {
	SolutionDir string
	// LookupEnv is consulted at resolution time; nil means os.LookupEnv.
	LookupEnv EnvFunc
}

// ResolveForExecutionWorkingDirectory resolves the working directory of a
// test process running on thread threadID with scratch directory testDir.
func (r Resolver) ResolveForExecutionWorkingDirectory(tmpl, executable, testDir, threadID string) string {
	return r.resolveExecution(tmpl, executable, testDir, threadID)
}

// ResolveForDiscoveryWorkingDirectory resolves the working directory used
// while listing an executable's tests. $(TestDir) and $(ThreadId) resolve to
// "" because discovery has neither.
func (r Resolver) ResolveForDiscoveryWorkingDirectory(tmpl, executable string) string {
	return r.resolveDiscovery(tmpl, executable)
}

// ResolveGenericForExecution resolves any other string consumed while
// executing tests, such as extra arguments or setup batch files.
func (r Resolver) ResolveGenericForExecution(tmpl, executable, testDir, threadID string) string {
	return r.resolveExecution(tmpl, executable, testDir, threadID)
}

// ResolveGenericForDiscovery resolves any other string consumed during
// discovery, such as symbol search paths.
func (r Resolver) ResolveGenericForDiscovery(tmpl, executable string) string {
	return r.resolveDiscovery(tmpl, executable)
}

func (r Resolver) resolveExecution(tmpl, executable, testDir, threadID string) string {
	if strings.TrimSpace(tmpl) == "" {
		return ""
	}
	s := replaceSolutionDir(tmpl, r.SolutionDir)
	s = replaceTestDirAndThread(s, testDir, threadID)
	s = replaceExecutable(s, executable)
	return ExpandEnv(s, r.lookupEnv())
}

func (r Resolver) resolveDiscovery(tmpl, executable string) string {
	if strings.TrimSpace(tmpl) == "" {
		return ""
	}
	s := replaceSolutionDir(tmpl, r.SolutionDir)
	s = replaceTestDirAndThread(s, "", "")
	s = replaceExecutable(s, executable)
	return ExpandEnv(s, r.lookupEnv())
}

func (r Resolver) lookupEnv() EnvFunc {
	if r.LookupEnv != nil {
		return r.LookupEnv
	}
	return os.LookupEnv
}

// replaceSolutionDir removes the token when no solution directory is known.
func replaceSolutionDir(s, solutionDir string) string {
	return strings.ReplaceAll(s, TokenSolutionDir, solutionDir)
}

func replaceTestDirAndThread(s, testDir, threadID string) string {
	return strings.NewReplacer(
		TokenTestDir, testDir,
		TokenThreadID, threadID,
	).Replace(s)
}

// replaceExecutable assumes a well-formed executable path.
func replaceExecutable(s, executable string) string {
	if !strings.Contains(s, TokenExecutableDir) && !strings.Contains(s, TokenExecutablePath) {
		return s
	}
	return strings.NewReplacer(
		TokenExecutableDir, ExecutableDir(executable),
		TokenExecutablePath, executable,
	).Replace(s)
}

// ExecutableDir returns the directory part of an executable path. Both '/'
// and '\' separate elements regardless of the host, so Windows paths stored
// in settings resolve the same everywhere. A bare file name yields ".".
func ExecutableDir(executable string) string {
	i := strings.LastIndexAny(executable, `/\`)
	switch {
	case i < 0:
		return "."
	case i == 0:
		return executable[:1]
	case i == 2 && executable[1] == ':':
		return executable[:3]
	}
	return executable[:i]
}
