package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	"github.com/AbdelazizMoustafa10m/gtadapter/internal/logging"
)

// Store is the read-only settings store: one clamped baseline plus the
// precomputed override of every [[executables]] section. Contexts handed
// out by a Store are shared and must not be modified.
type Store struct {
	// Path is the solution settings file, empty when none was found.
	Path string
	// SolutionDir replaces $(SolutionDir); empty when unknown.
	SolutionDir string
	// Sources records the layer each baseline option came from.
	Sources map[string]Source
	// Validation lists every clamped value, baseline and overrides.
	Validation *ValidationResult

	baseline  *Options
	overrides []override
	logger    *log.Logger
}

type override struct {
	pattern string
	regex   *regexp.Regexp
	options *Options
}

// LoadOptions controls Load.
type LoadOptions struct {
	// ConfigPath is an explicit settings file. When empty the file is
	// searched upwards from StartDir.
	ConfigPath string
	StartDir   string
	// UserConfigPath is the user-level file; a missing file is ignored.
	UserConfigPath string
	// SolutionDir overrides the directory derived from the settings file.
	SolutionDir string
	LookupEnv   EnvFunc
	Set         map[string]string
	// CPUCount bounds max_nr_of_threads; zero means runtime.NumCPU().
	CPUCount int
	Logger   *log.Logger
}

// Load reads the user and solution settings files and builds a Store.
func Load(opts LoadOptions) (*Store, error) {
	path := opts.ConfigPath
	if path == "" {
		start := opts.StartDir
		if start == "" {
			start = "."
		}
		found, err := FindConfigFile(start)
		if err != nil {
			return nil, fmt.Errorf("finding settings file: %w", err)
		}
		path = found
	}

	var solution *File
	if path != "" {
		f, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		solution = f
	}

	user, err := LoadOptionalFile(opts.UserConfigPath)
	if err != nil {
		return nil, err
	}

	return NewStore(StoreInput{
		Defaults:    NewDefaults(),
		User:        user,
		Solution:    solution,
		SolutionDir: opts.SolutionDir,
		LookupEnv:   opts.LookupEnv,
		Set:         opts.Set,
		CPUCount:    opts.CPUCount,
		Logger:      opts.Logger,
	})
}

// StoreInput is the already-parsed input of NewStore.
type StoreInput struct {
	Defaults    *Options
	User        *File
	Solution    *File
	SolutionDir string
	LookupEnv   EnvFunc
	Set         map[string]string
	CPUCount    int
	Logger      *log.Logger
}

// NewStore resolves the baseline and every override. Overrides from the
// solution file are matched before those from the user file.
func NewStore(in StoreInput) (*Store, error) {
	cpu := in.CPUCount
	if cpu <= 0 {
		cpu = runtime.NumCPU()
	}
	logger := in.Logger
	if logger == nil {
		logger = logging.New("settings")
	}

	rc, err := Resolve(in.Defaults, Layers{
		User:      in.User,
		Solution:  in.Solution,
		LookupEnv: in.LookupEnv,
		Set:       in.Set,
	})
	if err != nil {
		return nil, err
	}

	s := &Store{
		Sources:    rc.Sources,
		Validation: &ValidationResult{},
		baseline:   rc.Options,
		logger:     logger,
	}
	Clamp(s.baseline, cpu, "settings.", s.Validation)

	switch {
	case in.SolutionDir != "":
		s.SolutionDir = in.SolutionDir
	case in.Solution != nil:
		s.SolutionDir = in.Solution.solutionDir()
	}

	var sections []ExecutableOverride
	var origins []string
	if in.Solution != nil {
		s.Path = in.Solution.Path
		for range in.Solution.Executables {
			origins = append(origins, in.Solution.Path)
		}
		sections = append(sections, in.Solution.Executables...)
	}
	if in.User != nil {
		for range in.User.Executables {
			origins = append(origins, in.User.Path)
		}
		sections = append(sections, in.User.Executables...)
	}

	for i, sec := range sections {
		prefix := fmt.Sprintf("executables[%d].settings.", i)
		ov, err := newOverride(sec, s.baseline, cpu, prefix, s.Validation)
		if err != nil {
			return nil, fmt.Errorf("%s: executables[%d]: %w", origins[i], i, err)
		}
		s.overrides = append(s.overrides, ov)
	}

	for _, issue := range s.Validation.Issues {
		logger.Warn("clamped setting", "field", issue.Field, "reason", issue.Message)
	}
	return s, nil
}

func newOverride(sec ExecutableOverride, baseline *Options, cpu int, prefix string, vr *ValidationResult) (override, error) {
	ov := override{pattern: sec.Pattern}
	switch {
	case sec.Pattern == "" && sec.Regex == "":
		return ov, fmt.Errorf("one of pattern or regex is required")
	case sec.Pattern != "" && sec.Regex != "":
		return ov, fmt.Errorf("pattern and regex are mutually exclusive")
	case sec.Pattern != "":
		if !doublestar.ValidatePattern(sec.Pattern) {
			return ov, fmt.Errorf("invalid pattern %q", sec.Pattern)
		}
	default:
		re, err := regexp.Compile(sec.Regex)
		if err != nil {
			return ov, fmt.Errorf("invalid regex %q: %w", sec.Regex, err)
		}
		ov.regex = re
	}

	opts := baseline.Clone()
	if err := ApplyPartial(opts, sec.Settings); err != nil {
		return ov, err
	}
	Clamp(opts, cpu, prefix, vr)
	ov.options = opts
	return ov, nil
}

// matches reports whether target is covered by the override. Globs without
// a slash match the file name; others match the slash-separated path with
// any leading separator removed.
func (ov override) matches(target string) bool {
	if ov.regex != nil {
		return ov.regex.MatchString(target)
	}
	slashed := filepath.ToSlash(target)
	if !strings.Contains(ov.pattern, "/") {
		ok, _ := doublestar.Match(ov.pattern, filepath.Base(target))
		return ok
	}
	ok, _ := doublestar.Match(ov.pattern, strings.TrimPrefix(slashed, "/"))
	return ok
}

func (ov override) describe() string {
	if ov.regex != nil {
		return "regex " + ov.regex.String()
	}
	return "pattern " + ov.pattern
}

// Baseline returns the solution-wide context.
func (s *Store) Baseline() *Options {
	return s.baseline
}

// Override returns the context of the first override matching target.
// Repeated lookups return the same pointer.
func (s *Store) Override(target string) (*Options, bool) {
	var found *override
	for i := range s.overrides {
		if !s.overrides[i].matches(target) {
			continue
		}
		if found == nil {
			found = &s.overrides[i]
			continue
		}
		s.logger.Debug("ignoring later matching override",
			"target", target, "used", found.describe(), "ignored", s.overrides[i].describe())
	}
	if found == nil {
		return nil, false
	}
	return found.options, true
}

// OverrideCount is the number of [[executables]] sections.
func (s *Store) OverrideCount() int {
	return len(s.overrides)
}

// DefaultLoadOptions fills LoadOptions from the process environment.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		UserConfigPath: UserConfigFile(os.LookupEnv),
		LookupEnv:      os.LookupEnv,
	}
}
