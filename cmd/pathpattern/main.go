package main

import (
	"io"
	"os"
	"strings"

	fmt "github.com/jhunt/go-ansi"
	"github.com/jhunt/go-cli"
	env "github.com/jhunt/go-envirotron"
	"github.com/jhunt/go-log"
	"github.com/jhunt/go-table"

	"github.com/krew-solutions/ascetic-path-go/asceticpath/option"
	p "github.com/krew-solutions/ascetic-path-go/asceticpath/pattern/domain"
	pattern "github.com/krew-solutions/ascetic-path-go/asceticpath/pattern/infrastructure"
)

var Version = ""

type Options struct {
	Help    bool `cli:"-h, --help"`
	Version bool `cli:"-v, --version"`
	Debug   bool `cli:"-D, --debug" env:"PATHPATTERN_DEBUG"`

	Config     string   `cli:"-c, --config"     env:"PATHPATTERN_CONFIG"`
	Separators string   `cli:"-s, --separators" env:"PATHPATTERN_SEPARATORS"`
	Unanchored bool     `cli:"-u, --unanchored" env:"PATHPATTERN_UNANCHORED"`
	Require    []string `cli:"-r, --require"`
	Tokens     bool     `cli:"-t, --tokens"`

	Inspect struct{} `cli:"inspect"`
	Match   struct{} `cli:"match"`
	Routes  struct{} `cli:"routes"`
}

var errNoMatch = fmt.Errorf("no match")

func bail(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "@R{!!! %s}\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("USAGE: @G{pathpattern} [OPTIONS] COMMAND [ARGUMENTS]\n")
	fmt.Printf("\n")
	fmt.Printf("@B{Commands:}\n")
	fmt.Printf("  inspect PATTERN               Show the parameters and the compiled expression.\n")
	fmt.Printf("  match PATTERN CANDIDATE...    Match candidate paths against one pattern.\n")
	fmt.Printf("  routes CANDIDATE...           Find the first route from --config matching each path.\n")
	fmt.Printf("\n")
	fmt.Printf("@B{Options:}\n")
	fmt.Printf("  -h, --help                    Show this help screen.\n")
	fmt.Printf("  -v, --version                 Print the version and exit.\n")
	fmt.Printf("  -D, --debug                   Enable debugging output. (@W{$PATHPATTERN_DEBUG})\n")
	fmt.Printf("  -c, --config FILE             YAML route table. (@W{$PATHPATTERN_CONFIG})\n")
	fmt.Printf("  -s, --separators CHARS        Characters a parameter cannot span. (@W{$PATHPATTERN_SEPARATORS})\n")
	fmt.Printf("  -u, --unanchored              Match a prefix of the candidate. (@W{$PATHPATTERN_UNANCHORED})\n")
	fmt.Printf("  -r, --require NAME=REGEXP     Constrain a parameter; may be repeated.\n")
	fmt.Printf("  -t, --tokens                  Match token by token instead of by regexp.\n")
}

func main() {
	var opts Options
	env.Override(&opts)

	command, args, err := cli.Parse(&opts)
	bail(err)

	if opts.Version {
		if Version == "" {
			fmt.Printf("pathpattern (development)\n")
		} else {
			fmt.Printf("pathpattern v%s\n", Version)
		}
		os.Exit(0)
	}
	if opts.Help || command == "" {
		usage()
		os.Exit(0)
	}

	level := "warning"
	if opts.Debug {
		level = "debug"
	}
	log.SetupLogging(log.LogConfig{Type: "console", Level: level})

	err = run(os.Stdout, opts, command, args)
	if err == errNoMatch {
		os.Exit(2)
	}
	bail(err)
}

func run(out io.Writer, opts Options, command string, args []string) error {
	switch command {
	case "inspect":
		if len(args) != 1 {
			return fmt.Errorf("usage: pathpattern inspect PATTERN")
		}
		pt, err := compile(opts, args[0])
		if err != nil {
			return err
		}
		inspect(out, pt)
		return nil

	case "match":
		if len(args) < 2 {
			return fmt.Errorf("usage: pathpattern match PATTERN CANDIDATE...")
		}
		pt, err := compile(opts, args[0])
		if err != nil {
			return err
		}
		if !match(out, pt, args[1:], opts.Tokens) {
			return errNoMatch
		}
		return nil

	case "routes":
		if len(args) == 0 {
			return fmt.Errorf("usage: pathpattern routes CANDIDATE...")
		}
		config, err := ReadConfig(opts.Config)
		if err != nil {
			return err
		}
		if opts.Separators != "" {
			config.Separators = strings.Split(opts.Separators, "")
		}
		ok, err := routes(out, config, args)
		if err != nil {
			return err
		}
		if !ok {
			return errNoMatch
		}
		return nil
	}
	return fmt.Errorf("unrecognized command '%s'", command)
}

func compile(opts Options, path string) (*pattern.Pattern, error) {
	requirements, err := ParseRequirements(opts.Require)
	if err != nil {
		return nil, err
	}
	separators := pattern.DefaultSeparators
	if opts.Separators != "" {
		separators = opts.Separators
	}
	var strexpOpts []pattern.StrexpOption
	if opts.Unanchored {
		strexpOpts = append(strexpOpts, pattern.Unanchored())
	}
	exp := pattern.NewStrexp(path, requirements, strings.Split(separators, ""), strexpOpts...)
	log.Debugf("compiling %s", path)
	return pattern.New(exp)
}

func inspect(out io.Writer, pt *pattern.Pattern) {
	optional := make(map[string]bool)
	for _, name := range pt.OptionalNames() {
		optional[name] = true
	}
	offsets := pt.Offsets()

	tbl := table.NewTable("#", "Name", "Presence", "Group")
	for i, name := range pt.Names() {
		presence := "required"
		if optional[name] {
			presence = "optional"
		}
		group := "-"
		if idx, ok := p.PhysicalIndex(offsets, i+1); ok {
			group = fmt.Sprintf("%d", idx)
		}
		tbl.Row(name, fmt.Sprintf("%d", i+1), name, presence, group)
	}
	tbl.Output(out)

	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "regexp:   %s\n", pt.Source())
	fmt.Fprintf(out, "offsets:  %v\n", offsets)
}

// match reports whether every candidate matched.
func match(out io.Writer, pt *pattern.Pattern, candidates []string, tokens bool) bool {
	all := true
	tbl := table.NewTable("Candidate", "Match", "Parameters")
	for _, candidate := range candidates {
		var value func(k int, name string) option.Option[string]
		var err error
		ok := true
		if tokens {
			var params map[string]string
			params, err = pt.MatchPath(candidate)
			ok = err == nil
			value = func(_ int, name string) option.Option[string] {
				if v, found := params[name]; found {
					return option.Some(v)
				}
				return option.Nothing[string]()
			}
		} else {
			var md *pattern.MatchData
			md, ok = pt.Match(candidate)
			if ok {
				value = func(k int, _ string) option.Option[string] {
					return md.At(k)
				}
			}
		}

		switch {
		case err != nil:
			tbl.Row(candidate, candidate, "no", err.Error())
		case !ok:
			tbl.Row(candidate, candidate, "no", "")
		default:
			tbl.Row(candidate, candidate, "yes", formatParams(candidate, pt.Names(), value))
		}
		all = all && ok
	}
	tbl.Output(out)
	return all
}

// routes reports whether every candidate matched some route.
func routes(out io.Writer, config Config, candidates []string) (bool, error) {
	cache := pattern.NewCache(config.CacheSize)
	all := true
	tbl := table.NewTable("Candidate", "Route", "Parameters")
	for _, candidate := range candidates {
		found := false
		for _, route := range config.Routes {
			pt, err := cache.Get(route.Strexp(config.Separators))
			if err != nil {
				return false, fmt.Errorf("route %s: %s", route.Name, err)
			}
			md, ok := pt.Match(candidate)
			if !ok {
				continue
			}
			log.Debugf("%s matched route %s", candidate, route.Name)
			tbl.Row(candidate, candidate, route.Name, formatParams(candidate, pt.Names(), func(k int, _ string) option.Option[string] {
				return md.At(k)
			}))
			found = true
			break
		}
		if !found {
			tbl.Row(candidate, candidate, "-", "")
			all = false
		}
	}
	tbl.Output(out)
	return all, nil
}

// formatParams lists name=value pairs in parameter order; parameters that
// did not participate print as "-".
func formatParams(candidate string, names []string, value func(k int, name string) option.Option[string]) string {
	pairs := make([]string, len(names))
	for i, name := range names {
		v := value(i+1, name)
		log.Debugf("%s: %s = %s", candidate, name, v)
		pairs[i] = name + "=" + v.UnwrapOr("-")
	}
	return strings.Join(pairs, " ")
}
