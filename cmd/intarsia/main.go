package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/wbrown/intarsia"
	"github.com/wbrown/intarsia/project"
)

const banner = `
 _       _                  _
(_)_ __ | |_ __ _ _ __ ___ (_) __ _
| | '_ \| __/ _' | '__/ __|| |/ _' |
| | | | | || (_| | |  \__ \| | (_| |
|_|_| |_|\__\__,_|_|  |___/|_|\__,_|

Turn photographs into crochet and cross-stitch patterns.
`

func usage() {
	fmt.Fprint(os.Stderr, banner)
	fmt.Fprintln(os.Stderr, `
Usage: intarsia [-root dir] <command> [flags] [args]

Commands:
  new <name>           create a project from an image
  remove <name>        delete a project
  show <name>          open a project image in the system viewer
  list                 list all projects
  instructions <name>  print row-by-row stitch instructions

Global flags:`)
	flag.PrintDefaults()
}

func main() {
	root := flag.String("root", "",
		"Directory holding projects (default $"+project.EnvRoot+" or ~/.intarsia)")
	verbose := flag.Bool("v", false, "Log pipeline progress")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(1)
	}
	if !*verbose {
		intarsia.SetLogger(nil)
	}

	if *root == "" {
		r, err := project.DefaultRoot()
		if err != nil {
			fail("Could not determine project root", err)
		}
		*root = r
	}
	store := project.NewStore(*root)

	cmd, args := flag.Arg(0), flag.Args()[1:]
	switch cmd {
	case "new":
		runNew(store, args)
	case "remove":
		runRemove(store, args)
	case "show":
		runShow(store, args)
	case "list":
		runList(store, args)
	case "instructions":
		runInstructions(store, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", cmd)
		usage()
		os.Exit(1)
	}
}

// fail prints "<what>: <err>" to stderr and exits with status 1.
func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", what, err)
	os.Exit(1)
}

// parseNamed parses a subcommand's flags, accepting the project name
// either before or after them.
func parseNamed(fs *flag.FlagSet, args []string) string {
	var name string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		name, args = args[0], args[1:]
	}
	_ = fs.Parse(args)
	if name == "" && fs.NArg() > 0 {
		name = fs.Arg(0)
	}
	if name == "" {
		fmt.Fprintf(os.Stderr, "Please provide a project name\n")
		fs.PrintDefaults()
		os.Exit(1)
	}
	return name
}

func runNew(store *project.Store, args []string) {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	image := fs.String("image", "",
		"Path to the image the pattern is made from (required)")
	width := fs.Int("width", 0, "Pattern width in stitches (required)")
	height := fs.Int("height", 0, "Pattern height in rows (required)")
	colours := fs.Int("colours", 0, "Number of colours in the pattern (required)")
	axes := fs.Bool("axes", false, "Draw numbered axes around the pattern")
	method := fs.String("method", string(intarsia.MethodDominant),
		"Palette extraction method: dominant or kmeans")
	keepStages := fs.Bool("keep-stages", false,
		"Also save the intermediate mosaic images")
	name := parseNamed(fs, args)

	if *image == "" {
		fmt.Println("Please provide the image using the -image flag")
		fs.PrintDefaults()
		os.Exit(1)
	}

	start := time.Now()
	p, err := store.Build(name, *image, project.BuildOptions{
		Grid:       intarsia.GridSpec{Width: *width, Height: *height},
		Colors:     *colours,
		Axes:       *axes,
		Method:     intarsia.Method(strings.ToLower(*method)),
		KeepStages: *keepStages,
	})
	if err != nil {
		fail("Could not create new project", err)
	}
	fmt.Printf("Successfully created project %s, stored at %s\n", p.Name, p.Path)
	fmt.Printf("Grid %s, %d colours, processing time %v\n",
		p.Manifest.Grid(), p.Manifest.Colors, time.Since(start).Round(time.Millisecond))
}

func runRemove(store *project.Store, args []string) {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	name := parseNamed(fs, args)
	if err := store.Remove(name); err != nil {
		fail("Could not remove project", err)
	}
	fmt.Printf("Successfully removed project %s\n", name)
}

func runShow(store *project.Store, args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	kindName := fs.String("type", string(project.KindProcessed),
		"Image to display: original, processed or legend")
	name := parseNamed(fs, args)

	kind, err := project.ParseImageKind(*kindName)
	if err != nil {
		fail("Could not display image", err)
	}
	p, err := store.Load(name)
	if err != nil {
		fail("Could not load existing project", err)
	}
	if err := p.Show(kind); err != nil {
		fail("Could not display image", err)
	}
}

func runList(store *project.Store, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	_ = fs.Parse(args)

	manifests, err := store.List()
	if err != nil {
		fail("Could not list projects", err)
	}
	if len(manifests) == 0 {
		fmt.Printf("No projects in %s\n", store.Root)
		return
	}
	for _, m := range manifests {
		stitches := 0
		for _, n := range m.Counts {
			stitches += n
		}
		created := "unknown"
		if !m.CreatedAt.IsZero() {
			created = humanize.Time(m.CreatedAt)
		}
		fmt.Printf("%-20s %9s %3d colours %10s stitches  created %s\n",
			m.Name, m.Grid(), m.Colors, humanize.Comma(int64(stitches)), created)
	}
}

func runInstructions(store *project.Store, args []string) {
	fs := flag.NewFlagSet("instructions", flag.ExitOnError)
	row := fs.Int("row", 1, "Row to start from, counted from the bottom")
	name := parseNamed(fs, args)

	p, err := store.Load(name)
	if err != nil {
		fail("Could not load existing project", err)
	}
	chart, err := p.Chart()
	if err != nil {
		fail("Could not read pattern chart", err)
	}
	for _, line := range chart.Legend() {
		fmt.Println(line)
	}
	fmt.Println()
	for _, line := range chart.Instructions(*row) {
		fmt.Println(line)
	}
}
