// Command isotope converts and renders nuclear material definitions.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/zoobzio/isotope"
	"github.com/zoobzio/isotope/internal/config"
	"github.com/zoobzio/isotope/library/bolt"
	"github.com/zoobzio/isotope/library/sqlite"
	"github.com/zoobzio/isotope/mcnp"
	"github.com/zoobzio/isotope/nucdata"

	_ "github.com/zoobzio/isotope/alara"
	_ "github.com/zoobzio/isotope/openmc"
)

var (
	dbname   = flag.String("db", "", "material library, sqlite or *.bolt (default $ISOTOPE_DB)")
	datafile = flag.String("nucdata", "", "nuclear data YAML table (default $ISOTOPE_NUCDATA or built-in)")
)

var cfg config.Config

var cmds = NewCmdSet()

func init() {
	cmds.RegisterDiv("Materials")
	cmds.Register("render", "render a material file or library entry in a target format", doRender)
	cmds.Register("convert", "re-encode a material file (json, yaml, xml, msgpack, bson, text)", doConvert)
	cmds.Register("info", "show mass and atom fractions of a material", doInfo)
	cmds.Register("formats", "list the available render formats", doFormats)
	cmds.RegisterDiv("Library")
	cmds.Register("save", "store a material file in the library", doSave)
	cmds.Register("load", "print a library entry as json", doLoad)
	cmds.Register("list", "list library entries", doList)
	cmds.Register("delete", "remove a library entry", doDelete)
}

func main() {
	log.SetFlags(0)
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: isotope [-db <library>] [-nucdata <table>] <subcommand> [flags...] [args...]")
		fmt.Println("Converts and renders nuclear material definitions.")
		fmt.Println("\nOptions:")
		flag.CommandLine.PrintDefaults()
		fmt.Println("\nSub-commands:")
		tw := tabwriter.NewWriter(os.Stdout, 2, 2, 2, ' ', 0)
		for i := range cmds.Names {
			if cmds.IsDiv(i) {
				fmt.Fprintf(tw, "\n\t[%v]\n", cmds.Names[i])
			} else {
				fmt.Fprintf(tw, "\t\t%v\t%v\n", cmds.Names[i], cmds.Helps[i])
			}
		}
		tw.Flush()
	}
	flag.Parse()

	var err error
	cfg, err = config.ParseEnv()
	fatalif(err)
	if *dbname != "" {
		cfg.DB = *dbname
	}
	if *datafile != "" {
		cfg.NucData = *datafile
	}

	if flag.NArg() < 1 {
		flag.CommandLine.Usage()
		os.Exit(2)
	}
	fatalif(cmds.Execute(flag.Args()))
}

func doRender(cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	format := fs.String("format", mcnp.FormatName, "target format")
	number := fs.Int("number", cfg.MaterialNumber, "material number/id for mcnp and openmc")
	lib := fs.String("lib", cfg.MCNPLibrary, "mcnp cross-section library suffix, e.g. .70c")
	atom := fs.Bool("atom", false, "write atom fractions instead of mass fractions")
	unsigned := fs.Bool("unsigned", false, "write mcnp mass fractions without the negative sign")
	alias := fs.Bool("alias", false, "encode metastable states in mcnp zaids")
	name := fs.String("name", "", "render a library entry instead of a file")
	fs.Parse(args)

	m, err := source(*name, fs.Args())
	if err != nil {
		return err
	}

	fc := isotope.FormatConfig{
		Number:          *number,
		Library:         *lib,
		Unsigned:        *unsigned,
		MetastableAlias: *alias,
	}
	if *atom {
		fc.Basis = isotope.BasisAtom
	}
	f, err := isotope.NewFormat(*format, fc)
	if err != nil {
		return err
	}
	out, err := isotope.RenderWith(context.Background(), f, m)
	if err != nil {
		return err
	}
	_, err = fmt.Print(out)
	return err
}

func doConvert(cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	to := fs.String("to", "json", "output encoding")
	fs.Parse(args)

	m, err := source("", fs.Args())
	if err != nil {
		return err
	}
	data, err := encode(*to, m)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func doInfo(cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	name := fs.String("name", "", "describe a library entry instead of a file")
	fs.Parse(args)

	m, err := source(*name, fs.Args())
	if err != nil {
		return err
	}
	return describe(os.Stdout, m)
}

func doFormats(string, []string) error {
	for _, name := range isotope.Formats() {
		fmt.Println(name)
	}
	return nil
}

func doSave(cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	name := fs.String("name", "", "library entry name (default: the material name)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("save takes exactly one material file")
	}
	m, err := readFile(fs.Arg(0))
	if err != nil {
		return err
	}
	key := *name
	if key == "" {
		key = m.Name()
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Save(context.Background(), key, m)
}

func doLoad(cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("load takes exactly one entry name")
	}
	m, err := source(fs.Arg(0), nil)
	if err != nil {
		return err
	}
	data, err := encode("json", m)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func doList(string, []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	names, err := store.List(context.Background())
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func doDelete(cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() == 0 {
		return fmt.Errorf("delete takes one or more entry names")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	for _, name := range fs.Args() {
		if err := store.Delete(context.Background(), name); err != nil {
			return err
		}
	}
	return nil
}

// source loads the library entry name when set, else the single file in args.
func source(name string, args []string) (*isotope.Material, error) {
	if name != "" {
		store, err := openStore()
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.Load(context.Background(), name)
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("expected exactly one material file, got %d", len(args))
	}
	p, err := provider()
	if err != nil {
		return nil, err
	}
	return readFile(args[0], isotope.WithProvider(p))
}

// materialStore is the library surface shared by the sqlite and bolt backends.
type materialStore interface {
	Save(ctx context.Context, name string, m *isotope.Material) error
	Load(ctx context.Context, name string) (*isotope.Material, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
	Close() error
}

// openStore opens cfg.DB with the bolt backend for .bolt and .bbolt files
// and sqlite otherwise.
func openStore() (materialStore, error) {
	if cfg.DB == "" {
		return nil, fmt.Errorf("no library: set -db or ISOTOPE_DB")
	}
	p, err := provider()
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(cfg.DB)) {
	case ".bolt", ".bbolt":
		s, err := bolt.Open(cfg.DB, bolt.WithProvider(p))
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		s, err := sqlite.Open(cfg.DB, sqlite.WithProvider(p))
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

func provider() (*nucdata.Table, error) {
	table, err := cfg.Provider()
	if err != nil {
		return nil, fmt.Errorf("nuclear data: %w", err)
	}
	return table, nil
}

func fatalif(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

type CmdSet struct {
	funcs map[string]func(string, []string) error // map[cmdname]func(cmdname, args)
	Names []string
	Helps []string
}

func NewCmdSet() *CmdSet {
	return &CmdSet{funcs: map[string]func(string, []string) error{}}
}

func (cs *CmdSet) IsDiv(i int) bool {
	_, ok := cs.funcs[cs.Names[i]]
	return !ok
}

func (cs *CmdSet) RegisterDiv(name string) {
	cs.Names = append(cs.Names, name)
	cs.Helps = append(cs.Helps, "")
}

func (cs *CmdSet) Register(name, brief string, f func(string, []string) error) {
	cs.Names = append(cs.Names, name)
	cs.Helps = append(cs.Helps, brief)
	cs.funcs[name] = f
}

func (cs *CmdSet) Execute(args []string) error {
	cmd := args[0]
	f, ok := cs.funcs[cmd]
	if !ok {
		return fmt.Errorf("unknown subcommand %q", cmd)
	}
	return f(cmd, args[1:])
}
