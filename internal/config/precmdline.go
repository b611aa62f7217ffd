package config

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/dkoosis/pyinit/internal/getopt"
)

// PreliminaryCommandLine is what a quick scan of the command line reveals
// before the full parse: enough to decide whether the environment layer
// may run. It is discarded once the RuntimeConfig is built.
type PreliminaryCommandLine struct {
	Argv     []string
	XOptions []string

	Isolated       TriState
	UseEnvironment TriState
	DevMode        TriState
	UTF8Mode       TriState
}

// ReadPreliminary decodes args and scans them for -I, -E and -X. base
// supplies the values the command line does not override. Every tri-state
// in the result is set.
//
// Unknown or malformed options are skipped here; ApplyArguments reports
// them. The only failure is an argument that is not valid UTF-8.
func ReadPreliminary(base RuntimeConfig, args []string, lookup LookupFunc) (PreliminaryCommandLine, Status) {
	if st := decodeArgs(args); st.IsException() {
		return PreliminaryCommandLine{}, st
	}

	pre := PreliminaryCommandLine{
		Argv:           cloneStrings(args),
		XOptions:       []string{},
		Isolated:       base.Isolated,
		UseEnvironment: base.UseEnvironment,
		DevMode:        base.DevMode,
		UTF8Mode:       base.UTF8Mode,
	}

	s := getopt.New(args, shortOptions, longOptions)
	for {
		opt, ok, err := s.Next()
		if err != nil {
			continue
		}
		if !ok || opt.Val == 'c' || opt.Val == 'm' {
			break
		}
		switch opt.Val {
		case 'E':
			pre.UseEnvironment = False
		case 'I':
			pre.Isolated = True
		case 'X':
			pre.XOptions = append(pre.XOptions, opt.Arg)
		}
	}

	pre.Isolated = pre.Isolated.Or(false)
	if pre.Isolated.IsTrue() {
		pre.UseEnvironment = False
	}
	pre.UseEnvironment = pre.UseEnvironment.Or(true)
	useEnv := pre.UseEnvironment.IsTrue()

	snapshot := RuntimeConfig{XOptions: pre.XOptions}
	if !pre.DevMode.IsSet() {
		_, devOpt := snapshot.XOption("dev")
		if devOpt || (useEnv && getEnv(lookup, "PYTHONDEVMODE") != "") {
			pre.DevMode = True
		}
	}
	pre.DevMode = pre.DevMode.Or(false)

	if v, ok := snapshot.XOption("utf8"); ok {
		if t, valid := parseUTF8Value(v, true); valid {
			pre.UTF8Mode = t
		}
	} else if useEnv && !pre.UTF8Mode.IsSet() {
		if t, valid := parseUTF8Value(getEnv(lookup, "PYTHONUTF8"), false); valid {
			pre.UTF8Mode = t
		}
	}
	pre.UTF8Mode = pre.UTF8Mode.Or(false)

	return pre, OK()
}

// apply copies the decisions taken before the environment layer into cfg.
func (p PreliminaryCommandLine) apply(cfg RuntimeConfig) (RuntimeConfig, Status) {
	out := cfg.Clone()
	out.Isolated = p.Isolated
	out.UseEnvironment = p.UseEnvironment
	out.DevMode = p.DevMode
	out.UTF8Mode = p.UTF8Mode
	return out, OK()
}

// decodeArgs rejects arguments that are not valid UTF-8.
func decodeArgs(args []string) Status {
	for i, arg := range args {
		if _, _, err := transform.String(encoding.UTF8Validator, arg); err != nil {
			return Errorf(ClassEncoding, "ReadPreliminary",
				"unable to decode the command line argument #%d: %v", i+1, err)
		}
	}
	return OK()
}

// parseUTF8Value interprets a -X utf8 or PYTHONUTF8 value. An empty value
// means "on" for the -X form and "not set" for the variable.
func parseUTF8Value(v string, xoption bool) (TriState, bool) {
	switch v {
	case "1":
		return True, true
	case "0":
		return False, true
	case "":
		if xoption {
			return True, true
		}
		return Unset, true
	default:
		return Unset, false
	}
}
