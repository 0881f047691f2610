package settings

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"
)

//go:embed templates/gtadapter.toml.tmpl
var settingsTemplate string

var tmpl = template.Must(template.New("gtadapter.toml").
	Funcs(template.FuncMap{"toml": tomlString}).
	Parse(settingsTemplate))

// tomlString quotes s as a TOML basic string.
func tomlString(s string) (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(map[string]string{"v": s}); err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.TrimPrefix(buf.String(), "v = ")), nil
}

// TemplateVars are the values written by `gtadapter init`.
type TemplateVars struct {
	SolutionDir                   string
	WorkingDir                    string
	PrintTestOutput               bool
	ParallelTestExecution         bool
	MaxNrOfThreads                int
	TestDiscoveryTimeoutInSeconds int
}

// DefaultTemplateVars mirrors NewDefaults.
func DefaultTemplateVars() TemplateVars {
	d := NewDefaults()
	return TemplateVars{
		WorkingDir:                    d.WorkingDir,
		PrintTestOutput:               d.PrintTestOutput,
		ParallelTestExecution:         d.ParallelTestExecution,
		MaxNrOfThreads:                d.MaxNrOfThreads,
		TestDiscoveryTimeoutInSeconds: d.TestDiscoveryTimeoutInSeconds,
	}
}

// RenderTemplate renders a settings file and checks that it parses.
func RenderTemplate(vars TemplateVars) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return nil, fmt.Errorf("rendering settings template: %w", err)
	}

	var f File
	md, err := toml.Decode(buf.String(), &f)
	if err != nil {
		return nil, fmt.Errorf("rendered settings do not parse: %w", err)
	}
	if len(md.Undecoded()) > 0 {
		return nil, fmt.Errorf("rendered settings contain unknown keys: %v", md.Undecoded())
	}
	if err := ApplyPartial(NewDefaults(), f.Settings); err != nil {
		return nil, fmt.Errorf("rendered settings: %w", err)
	}
	return buf.Bytes(), nil
}
