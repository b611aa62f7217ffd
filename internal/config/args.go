package config

import (
	"errors"

	"github.com/dkoosis/pyinit/internal/getopt"
)

// shortOptions is the fixed short option table; ':' marks an argument.
const shortOptions = "bBc:dEhiIm:OPqsSuvVW:xX:?"

// Values reported for long options that have no short form.
const (
	optCheckHashPycs rune = 0x10000 + iota
	optHelpEnv
	optHelpXOptions
	optHelpAll
)

var longOptions = []getopt.LongOption{
	{Name: "check-hash-based-pycs", HasArg: true, Val: optCheckHashPycs},
	{Name: "help", Val: 'h'},
	{Name: "help-env", Val: optHelpEnv},
	{Name: "help-xoptions", Val: optHelpXOptions},
	{Name: "help-all", Val: optHelpAll},
	{Name: "version", Val: 'V'},
}

// counters tallies repeatable options seen on the command line.
type counters struct {
	verbose, optimize, debug, bytesWarning, inspect, quiet int
}

// ApplyArguments parses args (without the program name) and overwrites
// every field the command line sets. Repeatable options (-v, -O, -d, -b,
// -i, -q) replace the environment value with their count.
//
// -h and --help* return StatusExit with HelpTopic set; -V returns
// StatusExit with VersionVerbosity set once the whole line has parsed.
func ApplyArguments(cfg RuntimeConfig, args []string) (RuntimeConfig, Status) {
	const fn = "ApplyArguments"
	if cfg.frozen {
		return cfg, Errorf(ClassConflict, fn, "configuration is already finalized")
	}

	out := cfg.Clone()
	if out.XOptions == nil {
		out.XOptions = []string{}
	}
	var n counters
	var cmdWarn []string

	s := getopt.New(args, shortOptions, longOptions)
scan:
	for {
		opt, ok, err := s.Next()
		if err != nil {
			var oe *getopt.Error
			if errors.As(err, &oe) {
				return cfg, Errorf(ClassArgument, fn, "%s", oe.Error())
			}
			return cfg, Errorf(ClassArgument, fn, "%v", err)
		}
		if !ok {
			break
		}

		switch opt.Val {
		case 'c':
			out.RunCommand = opt.Arg + "\n"
			break scan
		case 'm':
			out.RunModule = opt.Arg
			break scan
		case optCheckHashPycs:
			switch opt.Arg {
			case CheckHashDefault, CheckHashAlways, CheckHashNever:
				out.CheckHashPycsMode = opt.Arg
			default:
				return cfg, Errorf(ClassArgument, fn,
					"--check-hash-based-pycs must be one of 'default', 'always', or 'never'")
			}
		case 'b':
			n.bytesWarning++
		case 'B':
			out.WriteBytecode = False
		case 'd':
			n.debug++
		case 'E':
			out.UseEnvironment = False
		case 'i':
			n.inspect++
		case 'I':
			out.Isolated = True
		case 'O':
			n.optimize++
		case 'P':
			out.SafePath = True
		case 'q':
			n.quiet++
		case 's':
			out.UserSite = False
		case 'S':
			out.SiteImport = False
		case 'u':
			out.BufferedStdio = False
		case 'v':
			n.verbose++
		case 'x':
			out.SkipFirstLine = 1
		case 'V':
			out.VersionVerbosity++
		case 'W':
			cmdWarn = append(cmdWarn, opt.Arg)
		case 'X':
			if st := applyXOption(&out, opt.Arg); st.IsException() {
				return cfg, st
			}
			out.XOptions = append(out.XOptions, opt.Arg)
		case 'h', '?':
			out.HelpTopic = HelpUsage
			return out, Exit(0)
		case optHelpEnv:
			out.HelpTopic = HelpEnv
			return out, Exit(0)
		case optHelpXOptions:
			out.HelpTopic = HelpXOptions
			return out, Exit(0)
		case optHelpAll:
			out.HelpTopic = HelpAll
			return out, Exit(0)
		}
	}

	if out.VersionVerbosity > 0 {
		return out, Exit(0)
	}

	setCount(&out.Verbose, n.verbose)
	setCount(&out.OptimizationLevel, n.optimize)
	setCount(&out.ParserDebug, n.debug)
	setCount(&out.BytesWarning, n.bytesWarning)
	setCount(&out.Inspect, n.inspect)
	setCount(&out.Quiet, n.quiet)
	out.WarnOptions = append(out.WarnOptions, cmdWarn...)

	rest := s.Rest()
	switch {
	case out.RunCommand != "":
		out.Argv = append([]string{"-c"}, rest...)
	case out.RunModule != "":
		out.Argv = append([]string{"-m"}, rest...)
	case len(rest) > 0:
		if rest[0] != "-" {
			out.RunFilename = rest[0]
		}
		out.Argv = rest
	default:
		out.Argv = []string{""}
	}
	return out, OK()
}

// applyXOption applies the -X options that change configuration fields.
// Other -X values are only recorded.
func applyXOption(cfg *RuntimeConfig, opt string) Status {
	const fn = "ApplyArguments"
	probe := RuntimeConfig{XOptions: []string{opt}}

	if _, ok := probe.XOption("dev"); ok {
		cfg.DevMode = True
	}
	if v, ok := probe.XOption("utf8"); ok {
		t, valid := parseUTF8Value(v, true)
		if !valid {
			return Errorf(ClassArgument, fn, "invalid -X utf8 option value")
		}
		cfg.UTF8Mode = t
	}
	if v, ok := probe.XOption("int_max_str_digits"); ok {
		limit, valid := parseIntMaxStrDigits(v)
		if !valid {
			return Errorf(ClassArgument, fn,
				"-X int_max_str_digits: invalid limit; must be >= %d or 0 for unlimited", IntMaxStrDigitsThreshold)
		}
		cfg.IntMaxStrDigits = limit
	}
	return OK()
}

func setCount(field *int, count int) {
	if count > 0 {
		*field = count
	}
}
