package design

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/pyinit/internal/config"
)

// Entry is one row of a help table.
type Entry struct {
	Name string
	Text string
}

var optionEntries = []Entry{
	{"-b", "issue warnings about comparing bytes with str (-bb: errors)"},
	{"-B", "don't write .pyc files on import; also PYTHONDONTWRITEBYTECODE=x"},
	{"-c cmd", "program passed in as string (terminates option list)"},
	{"-d", "turn on parser debugging output; also PYTHONDEBUG=x"},
	{"-E", "ignore PYTHON* environment variables"},
	{"-h", "print this help message and exit (also -? or --help)"},
	{"-i", "inspect interactively after running script; also PYTHONINSPECT=x"},
	{"-I", "isolate from the user's environment (implies -E, -P and -s)"},
	{"-m mod", "run library module as a script (terminates option list)"},
	{"-O", "remove assert statements; also PYTHONOPTIMIZE=x"},
	{"-OO", "do -O changes and also discard docstrings"},
	{"-P", "don't prepend a potentially unsafe path to sys.path; also PYTHONSAFEPATH"},
	{"-q", "don't print version and copyright messages on interactive startup"},
	{"-s", "don't add user site directory to sys.path; also PYTHONNOUSERSITE=x"},
	{"-S", "don't imply 'import site' on initialization"},
	{"-u", "force the stdout and stderr streams to be unbuffered; also PYTHONUNBUFFERED=x"},
	{"-v", "verbose (trace import statements); also PYTHONVERBOSE=x"},
	{"-V", "print the version number and exit (also --version); -VV for build info"},
	{"-W arg", "warning control; also PYTHONWARNINGS=arg"},
	{"-x", "skip first line of source"},
	{"-X opt", "set implementation-specific option"},
	{"--check-hash-based-pycs always|default|never", "control how hash-based .pyc files are validated"},
	{"--help-env", "print help about environment variables and exit"},
	{"--help-xoptions", "print help about -X options and exit"},
	{"--help-all", "print complete help information and exit"},
}

var envEntries = []Entry{
	{"PYTHONDEBUG", "same as the -d option"},
	{"PYTHONDEVMODE", "enable development mode; same as -X dev"},
	{"PYTHONDONTWRITEBYTECODE", "same as the -B option"},
	{"PYTHONINSPECT", "same as the -i option"},
	{"PYTHONINTMAXSTRDIGITS", "limit for int/str conversions; same as -X int_max_str_digits"},
	{"PYTHONNOUSERSITE", "same as the -s option"},
	{"PYTHONOPTIMIZE", "same as the -O option"},
	{"PYTHONSAFEPATH", "same as the -P option"},
	{"PYTHONUNBUFFERED", "same as the -u option"},
	{"PYTHONUTF8", "1 enables UTF-8 mode, 0 disables it; same as -X utf8"},
	{"PYTHONVERBOSE", "same as the -v option"},
	{"PYTHONWARNINGS", "comma-separated list of -W arguments"},
	{"NO_COLOR", "disable colored output"},
}

var xoptionEntries = []Entry{
	{"-X dev", "enable development mode"},
	{"-X int_max_str_digits=N", "limit int/str conversions to N digits; 0 disables the limit"},
	{"-X showconfig", "print the resolved configuration as YAML and exit"},
	{"-X utf8[=0|1]", "enable (1) or disable (0) UTF-8 mode"},
}

// Usage returns the one-line synopsis.
func Usage(prog string) string {
	return fmt.Sprintf("usage: %s [option] ... [-c cmd | -m mod | file | -] [arg] ...", prog)
}

// TryHelp returns the hint printed after a command line error.
func TryHelp(prog string) string {
	return fmt.Sprintf("Try `%s -h' for more information.", prog)
}

// Help renders the help text for topic.
func Help(topic config.HelpTopic, prog string, th Theme) string {
	var b strings.Builder
	section := func(title string, entries []Entry) {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(th.Heading.Render(title))
		b.WriteString("\n")
		b.WriteString(Table(entries, th))
	}

	switch topic {
	case config.HelpEnv:
		section("Environment variables:", envEntries)
	case config.HelpXOptions:
		section("The following implementation-specific options are available:", xoptionEntries)
	case config.HelpAll:
		b.WriteString(Usage(prog) + "\n")
		section("Options:", optionEntries)
		section("Environment variables:", envEntries)
		section("-X options:", xoptionEntries)
	default:
		b.WriteString(Usage(prog) + "\n")
		section("Options:", optionEntries)
	}
	return b.String()
}

// Table lays entries out in two columns. Names longer than the column
// width get their description on the following line.
func Table(entries []Entry, th Theme) string {
	const maxColumn = 28
	width := 0
	for _, e := range entries {
		if w := runewidth.StringWidth(e.Name); w <= maxColumn && w > width {
			width = w
		}
	}

	var b strings.Builder
	indent := strings.Repeat(" ", width+4)
	for _, e := range entries {
		w := runewidth.StringWidth(e.Name)
		b.WriteString("  ")
		b.WriteString(th.Flag.Render(e.Name))
		if w > width {
			b.WriteString("\n" + indent)
		} else {
			b.WriteString(strings.Repeat(" ", width-w+2))
		}
		b.WriteString(e.Text)
		b.WriteString("\n")
	}
	return b.String()
}

// ErrorLine formats a command line error for stderr.
func ErrorLine(prog, msg string, th Theme) string {
	return th.Error.Render(prog+": "+msg) + "\n" + th.Muted.Render(TryHelp(prog)) + "\n"
}

// Banner formats the greeting printed before an interactive session.
func Banner(title string, th Theme) string {
	return th.Banner.Render(title) + "\n" + th.Muted.Render("Type Ctrl+D to exit.")
}
