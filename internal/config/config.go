package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Hash-based .pyc validation modes accepted by --check-hash-based-pycs.
const (
	CheckHashDefault = "default"
	CheckHashAlways  = "always"
	CheckHashNever   = "never"
)

// Limits for -X int_max_str_digits / PYTHONINTMAXSTRDIGITS.
const (
	IntMaxStrDigitsUnlimited = 0
	IntMaxStrDigitsThreshold = 640
)

// HelpTopic names the help text requested on the command line.
type HelpTopic uint8

const (
	HelpNone HelpTopic = iota
	HelpUsage
	HelpEnv
	HelpXOptions
	HelpAll
)

// RuntimeConfig is the resolved set of interpreter startup options.
//
// Values are passed and returned by value; every layer works on its own
// copy (see Clone), so a failed layer never leaves a half-applied config
// behind.
type RuntimeConfig struct {
	Argv        []string `yaml:"argv"`
	XOptions    []string `yaml:"xoptions"`
	WarnOptions []string `yaml:"warnoptions"`

	Isolated       TriState `yaml:"isolated"`
	UseEnvironment TriState `yaml:"use_environment"`
	DevMode        TriState `yaml:"dev_mode"`
	UTF8Mode       TriState `yaml:"utf8_mode"`
	WriteBytecode  TriState `yaml:"write_bytecode"`
	BufferedStdio  TriState `yaml:"buffered_stdio"`
	UserSite       TriState `yaml:"user_site_directory"`
	SiteImport     TriState `yaml:"site_import"`
	SafePath       TriState `yaml:"safe_path"`

	Verbose           int `yaml:"verbose"`
	OptimizationLevel int `yaml:"optimization_level"`
	ParserDebug       int `yaml:"parser_debug"`
	BytesWarning      int `yaml:"bytes_warning"`
	Inspect           int `yaml:"inspect"`
	Quiet             int `yaml:"quiet"`
	SkipFirstLine     int `yaml:"skip_source_first_line"`

	RunCommand  string `yaml:"run_command,omitempty"`
	RunModule   string `yaml:"run_module,omitempty"`
	RunFilename string `yaml:"run_filename,omitempty"`

	CheckHashPycsMode string `yaml:"check_hash_pycs_mode"`
	IntMaxStrDigits   int    `yaml:"int_max_str_digits"`

	// Set when the command line requested help or version output.
	HelpTopic        HelpTopic `yaml:"-"`
	VersionVerbosity int       `yaml:"-"`

	frozen bool
}

// resolveTable holds the values Finalize gives to tri-state flags that no
// layer decided.
type resolveTable struct {
	Isolated        bool `yaml:"isolated"`
	DevMode         bool `yaml:"dev_mode"`
	UTF8Mode        bool `yaml:"utf8_mode"`
	WriteBytecode   bool `yaml:"write_bytecode"`
	BufferedStdio   bool `yaml:"buffered_stdio"`
	UserSite        bool `yaml:"user_site_directory"`
	SiteImport      bool `yaml:"site_import"`
	SafePath        bool `yaml:"safe_path"`
	IntMaxStrDigits int  `yaml:"int_max_str_digits"`
}

type defaultsFile struct {
	Config  RuntimeConfig `yaml:"config"`
	Resolve resolveTable  `yaml:"resolve"`
}

//go:embed defaults.yaml
var defaultsYAML []byte

var compatDefaults = sync.OnceValue(func() defaultsFile {
	var d defaultsFile
	if err := yaml.Unmarshal(defaultsYAML, &d); err != nil {
		panic(fmt.Sprintf("config: embedded defaults.yaml: %v", err))
	}
	return d
})

// InitCompat returns a config filled with the backward-compatible defaults.
// Tri-state flags are left Unset.
func InitCompat() RuntimeConfig {
	return compatDefaults().Config.Clone()
}

// Clone returns a deep copy of c. The copy is never frozen.
func (c RuntimeConfig) Clone() RuntimeConfig {
	out := c
	out.Argv = cloneStrings(c.Argv)
	out.XOptions = cloneStrings(c.XOptions)
	out.WarnOptions = cloneStrings(c.WarnOptions)
	out.frozen = false
	return out
}

// Frozen reports whether c was produced by Finalize.
func (c RuntimeConfig) Frozen() bool { return c.frozen }

// XOption looks up -X name[=value]. The last occurrence wins; a bare
// "-X name" yields an empty value.
func (c RuntimeConfig) XOption(name string) (string, bool) {
	value, found := "", false
	for _, opt := range c.XOptions {
		key, v, _ := strings.Cut(opt, "=")
		if key == name {
			value, found = v, true
		}
	}
	return value, found
}

// Interactive reports whether an interactive loop should run: either -i
// or PYTHONINSPECT asked for it, or nothing else is to be run and stdin
// is a terminal.
func (c RuntimeConfig) Interactive(stdinIsTTY bool) bool {
	if c.Inspect > 0 {
		return true
	}
	if c.RunCommand != "" || c.RunModule != "" || c.RunFilename != "" {
		return false
	}
	return stdinIsTTY
}

// YAML renders c as a YAML document.
func (c RuntimeConfig) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// LookupFunc reads one environment variable, as os.LookupEnv does.
type LookupFunc func(name string) (string, bool)

// OSEnv reads the process environment.
var OSEnv LookupFunc = os.LookupEnv

// MapEnv returns a LookupFunc backed by m.
func MapEnv(m map[string]string) LookupFunc {
	return func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	}
}

// getEnv returns the value of name, treating empty values as absent.
func getEnv(lookup LookupFunc, name string) string {
	if lookup == nil {
		return ""
	}
	v, ok := lookup(name)
	if !ok {
		return ""
	}
	return v
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}
