package config

import (
	"strconv"
	"strings"
)

// envVar describes one recognised environment variable. When xoption is
// set, a -X option of that name on the command line takes the variable's
// place and the variable is not read.
type envVar struct {
	name    string
	apply   func(cfg *RuntimeConfig, value string) Status
	xoption string
}

// envTable lists every variable the environment layer reads. Anything else
// in the environment is ignored.
var envTable = []envVar{
	{"PYTHONDEBUG", envLevel(func(c *RuntimeConfig) *int { return &c.ParserDebug }), ""},
	{"PYTHONVERBOSE", envLevel(func(c *RuntimeConfig) *int { return &c.Verbose }), ""},
	{"PYTHONOPTIMIZE", envLevel(func(c *RuntimeConfig) *int { return &c.OptimizationLevel }), ""},
	{"PYTHONINSPECT", envLevel(func(c *RuntimeConfig) *int { return &c.Inspect }), ""},
	{"PYTHONDONTWRITEBYTECODE", envSwitch(func(c *RuntimeConfig) *TriState { return &c.WriteBytecode }, False), ""},
	{"PYTHONUNBUFFERED", envSwitch(func(c *RuntimeConfig) *TriState { return &c.BufferedStdio }, False), ""},
	{"PYTHONNOUSERSITE", envSwitch(func(c *RuntimeConfig) *TriState { return &c.UserSite }, False), ""},
	{"PYTHONSAFEPATH", func(c *RuntimeConfig, _ string) Status {
		c.SafePath = True
		return OK()
	}, ""},
	{"PYTHONDEVMODE", func(c *RuntimeConfig, _ string) Status {
		c.DevMode = True
		return OK()
	}, ""},
	{"PYTHONUTF8", func(c *RuntimeConfig, v string) Status {
		t, valid := parseUTF8Value(v, false)
		if !valid {
			return Errorf(ClassEnvironment, "ApplyEnvironment", "invalid PYTHONUTF8 environment variable value")
		}
		c.UTF8Mode = t
		return OK()
	}, "utf8"},
	{"PYTHONWARNINGS", func(c *RuntimeConfig, v string) Status {
		for _, w := range strings.Split(v, ",") {
			if w = strings.TrimSpace(w); w != "" {
				c.WarnOptions = append(c.WarnOptions, w)
			}
		}
		return OK()
	}, ""},
	{"PYTHONINTMAXSTRDIGITS", func(c *RuntimeConfig, v string) Status {
		n, ok := parseIntMaxStrDigits(v)
		if !ok {
			return Errorf(ClassEnvironment, "ApplyEnvironment",
				"PYTHONINTMAXSTRDIGITS: invalid limit; must be >= %d or 0 for unlimited", IntMaxStrDigitsThreshold)
		}
		c.IntMaxStrDigits = n
		return OK()
	}, "int_max_str_digits"},
}

// ApplyEnvironment merges the recognised environment variables into cfg.
// When useEnvironment is false it returns cfg unchanged: -E and -I
// suppress every read. Empty variables count as absent, and PYTHONUTF8 and
// PYTHONINTMAXSTRDIGITS are skipped when cfg already carries -X utf8 or
// -X int_max_str_digits.
func ApplyEnvironment(cfg RuntimeConfig, useEnvironment bool, lookup LookupFunc) (RuntimeConfig, Status) {
	return applyEnvironment(cfg, useEnvironment, lookup, cfg.XOptions)
}

// applyEnvironment is ApplyEnvironment with the -X options that shadow
// variables given explicitly, as the preliminary scan found them.
func applyEnvironment(cfg RuntimeConfig, useEnvironment bool, lookup LookupFunc, xoptions []string) (RuntimeConfig, Status) {
	if cfg.frozen {
		return cfg, Errorf(ClassConflict, "ApplyEnvironment", "configuration is already finalized")
	}
	if !useEnvironment {
		return cfg, OK()
	}

	shadow := RuntimeConfig{XOptions: xoptions}
	out := cfg.Clone()
	for _, ev := range envTable {
		if ev.xoption != "" {
			if _, ok := shadow.XOption(ev.xoption); ok {
				continue
			}
		}
		value := getEnv(lookup, ev.name)
		if value == "" {
			continue
		}
		if st := ev.apply(&out, value); st.IsException() {
			return cfg, st
		}
	}
	return out, OK()
}

// envLevel handles integer "level" variables such as PYTHONVERBOSE=2.
// Malformed or non-positive values leave the field as it was.
func envLevel(field func(*RuntimeConfig) *int) func(*RuntimeConfig, string) Status {
	return func(c *RuntimeConfig, v string) Status {
		if n, ok := parseEnvInt(v); ok && n > 0 {
			*field(c) = n
		}
		return OK()
	}
}

// envSwitch handles variables whose positive integer value sets a flag.
func envSwitch(field func(*RuntimeConfig) *TriState, to TriState) func(*RuntimeConfig, string) Status {
	return func(c *RuntimeConfig, v string) Status {
		if n, ok := parseEnvInt(v); ok && n > 0 {
			*field(c) = to
		}
		return OK()
	}
}

// parseEnvInt parses a decimal integer, rejecting trailing garbage and
// values that overflow an int.
func parseEnvInt(v string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseIntMaxStrDigits(v string) (int, bool) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	if n != IntMaxStrDigitsUnlimited && n < IntMaxStrDigitsThreshold {
		return 0, false
	}
	return n, true
}
