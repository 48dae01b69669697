package main

import (
	"log/slog"
	"os"

	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/tabuladb/tabula/internal/catalog"
	"github.com/tabuladb/tabula/internal/config"
	"github.com/tabuladb/tabula/internal/engine"
	"github.com/tabuladb/tabula/internal/logging"
	"github.com/tabuladb/tabula/internal/render"
	"github.com/tabuladb/tabula/internal/repl"
)

var (
	app = kingpin.New("tabula",
		"An in-memory filter-and-join engine for tabular files.")

	config_path = app.Flag("config", "The configuration file.").Short('c').
			Envar("TABULA_CONFIG").String()

	verbose_flag = app.Flag("verbose", "Enable verbose logging.").Short('v').
			Default("false").Bool()

	repl_cmd = app.Command("repl", "Start the interactive statement loop.").Default()

	run_cmd        = app.Command("run", "Run statements from a script file.")
	run_cmd_script = run_cmd.Arg("script", "Statement script to execute.").
			Required().String()

	render_cmd         = app.Command("render", "Render a mounted dataset to stdout.")
	render_cmd_dataset = render_cmd.Arg("dataset", "Dataset to render.").
				Required().String()
	render_format = render_cmd.Flag("format", "Output format.").
			Default("text").Enum("text", "html", "json", "csv")
)

func main() {
	app.HelpFlag.Short('h')
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg, err := config.Load(*config_path)
	kingpin.FatalIfError(err, "config")

	level := logging.ParseLevel(cfg.LogLevel)
	if *verbose_flag {
		level = slog.LevelDebug
	}
	logger, closeFn := logging.SetupLogger(level, cfg.SeqURL)
	defer closeFn()
	slog.SetDefault(logger)

	registry := catalog.NewRegistry()
	if cfg.Manifest != "" {
		manifest, err := catalog.LoadManifest(cfg.Manifest)
		kingpin.FatalIfError(err, "manifest")
		kingpin.FatalIfError(registry.Mount(manifest, cfg.DataDir), "manifest")
	}

	eng := engine.New(registry, cfg.DataDir)
	eng.AddObserver(engine.NewLoggingObserver())

	opts := render.Options{
		MaxRows:   cfg.Render.MaxRows,
		ShowTypes: cfg.Render.ShowTypes,
	}

	switch command {
	case repl_cmd.FullCommand():
		repl.Start(eng, opts)

	case run_cmd.FullCommand():
		doRun(eng, opts)

	case render_cmd.FullCommand():
		doRender(registry, opts)
	}
}

func doRun(eng *engine.Engine, opts render.Options) {
	f, err := os.Open(*run_cmd_script)
	kingpin.FatalIfError(err, "script")
	defer f.Close()

	kingpin.FatalIfError(repl.Script(f, os.Stdout, eng, opts), "script")
}

func doRender(registry *catalog.Registry, opts render.Options) {
	ds, err := registry.Get(*render_cmd_dataset)
	kingpin.FatalIfError(err, "render")

	switch *render_format {
	case "text":
		err = render.Text(os.Stdout, ds, opts)
	case "html":
		err = render.HTML(os.Stdout, ds, render.HTMLOptions{Striped: true, Hover: true})
	case "json":
		err = render.JSON(os.Stdout, ds)
	case "csv":
		err = render.CSV(os.Stdout, ds)
	}
	kingpin.FatalIfError(err, "render")
}
