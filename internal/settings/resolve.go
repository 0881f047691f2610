package settings

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Source identifies the layer a baseline value came from.
type Source string

const (
	SourceDefault Source = "default"
	SourceUser    Source = "user"
	SourceFile    Source = "file"
	SourceEnv     Source = "env"
	SourceCLI     Source = "cli"
)

// ErrUnknownOption is returned when a layer names an option that does not exist.
var ErrUnknownOption = errors.New("unknown option")

// EnvFunc looks up an environment variable. os.LookupEnv in production,
// a map in tests.
type EnvFunc func(key string) (string, bool)

// EnvPrefix prefixes the environment variable of every option, e.g.
// GTA_MAX_NR_OF_THREADS for max_nr_of_threads.
const EnvPrefix = "GTA_"

// EnvKey returns the environment variable that overrides option name.
func EnvKey(name string) string {
	return EnvPrefix + strings.ToUpper(name)
}

// Layers are the inputs stacked on top of the defaults, lowest first:
// user file, solution file, environment, then --set values.
type Layers struct {
	User      *File
	Solution  *File
	LookupEnv EnvFunc
	Set       map[string]string
}

// Resolved is an unclamped baseline with per-option source tracking.
type Resolved struct {
	Options *Options
	Sources map[string]Source
}

// Resolve stacks layers over defaults. A nil defaults starts from the zero
// Options.
func Resolve(defaults *Options, layers Layers) (*Resolved, error) {
	if defaults == nil {
		defaults = &Options{}
	}

	rc := &Resolved{
		Options: defaults.Clone(),
		Sources: make(map[string]Source, len(optionFields)),
	}
	for _, name := range OptionNames() {
		rc.Sources[name] = SourceDefault
	}

	if layers.User != nil {
		if err := rc.apply(layers.User.Settings, SourceUser); err != nil {
			return nil, fmt.Errorf("user settings %s: %w", layers.User.Path, err)
		}
	}
	if layers.Solution != nil {
		if err := rc.apply(layers.Solution.Settings, SourceFile); err != nil {
			return nil, fmt.Errorf("settings %s: %w", layers.Solution.Path, err)
		}
	}
	if layers.LookupEnv != nil {
		if err := rc.apply(envValues(layers.LookupEnv), SourceEnv); err != nil {
			return nil, fmt.Errorf("environment: %w", err)
		}
	}
	if len(layers.Set) > 0 {
		values := make(map[string]any, len(layers.Set))
		for k, v := range layers.Set {
			values[k] = v
		}
		if err := rc.apply(values, SourceCLI); err != nil {
			return nil, fmt.Errorf("--set: %w", err)
		}
	}

	return rc, nil
}

func (rc *Resolved) apply(values map[string]any, source Source) error {
	if err := ApplyPartial(rc.Options, values); err != nil {
		return err
	}
	for k := range values {
		rc.Sources[k] = source
	}
	return nil
}

// envValues collects GTA_* variables for every known option.
func envValues(lookupEnv EnvFunc) map[string]any {
	values := make(map[string]any)
	for _, name := range OptionNames() {
		if v, ok := lookupEnv(EnvKey(name)); ok {
			values[name] = v
		}
	}
	return values
}

var traitRulesType = reflect.TypeOf([]RegexTraitRule(nil))

// traitRulesHook lets a rule list be written in its persisted string form.
func traitRulesHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != traitRulesType || from.Kind() != reflect.String {
		return data, nil
	}
	return ParseTraitRules(data.(string))
}

// ApplyPartial decodes values onto dst. Only the keys present in values are
// touched; strings are converted to the option's type, so "4" sets an int
// and "true" a bool.
func ApplyPartial(dst *Options, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}

	var unknown []string
	for k := range values {
		if !IsKnownOption(k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: %s", ErrUnknownOption, strings.Join(unknown, ", "))
	}

	// Replace rule lists wholesale; mapstructure would otherwise reuse the
	// existing backing array and keep trailing elements.
	if _, ok := values["traits_regexes_before"]; ok {
		dst.TraitsRegexesBefore = nil
	}
	if _, ok := values["traits_regexes_after"]; ok {
		dst.TraitsRegexesAfter = nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		TagName:          "toml",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(traitRulesHook),
	})
	if err != nil {
		return fmt.Errorf("building decoder: %w", err)
	}
	if err := dec.Decode(values); err != nil {
		return fmt.Errorf("decoding options: %w", err)
	}

	for _, rules := range [][]RegexTraitRule{dst.TraitsRegexesBefore, dst.TraitsRegexesAfter} {
		for _, r := range rules {
			if err := r.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// ParseSetFlags turns repeated key=value flag values into a map. Later
// values for the same key win.
func ParseSetFlags(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --set %q: expected key=value", p)
		}
		out[k] = v
	}
	return out, nil
}
