// Command tekhne is a CUDA to WGSL transpiler CLI.
//
// Usage:
//
//	tekhne [options] <input.cu>
//
// Examples:
//
//	tekhne kernel.cu                  # Translate to kernel.wgsl
//	tekhne -o out.wgsl kernel.cu      # Translate to a chosen path
//	tekhne -d kernel.cu               # Show debug information
//	tekhne -t kernel.cu               # Also save the AST to parse-tree.png
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/boingboomtschak/tekhne"
	"github.com/boingboomtschak/tekhne/cuda"
	"github.com/boingboomtschak/tekhne/viz"
	"github.com/boingboomtschak/tekhne/wgsl"
)

var (
	output    = flag.String("o", "", "path to output .wgsl file (default: input basename + .wgsl)")
	debug     = flag.Bool("d", false, "show debug information")
	fileLog   = flag.Bool("f", false, "store logs to 'tekhne.log'")
	parseTree = flag.Bool("t", false, "save parse tree to 'parse-tree.png'")
	dotOut    = flag.String("dot", "", "save parse tree as Graphviz DOT to the given path")
	version   = flag.Bool("version", false, "print version")
)

const tekhneVersion = "0.2.0-dev"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("tekhne version %s\n", tekhneVersion)
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}

	log := setupLogger()
	inputPath := args[0]

	log.Debug("reading input file")
	source, err := os.ReadFile(inputPath)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Error(fmt.Sprintf("'%s' not found", inputPath))
		case errors.Is(err, fs.ErrPermission):
			log.Error(fmt.Sprintf("no permission to read '%s'", inputPath))
		default:
			log.Error(fmt.Sprintf("reading '%s': %v", inputPath, err))
		}
		os.Exit(1)
	}

	log.Debug("parsing input")
	program, err := tekhne.Parse(string(source))
	if err != nil {
		var se *cuda.SyntaxError
		if errors.As(err, &se) {
			fmt.Fprint(os.Stderr, se.FormatWithContext())
		} else {
			log.Error(err.Error())
		}
		os.Exit(1)
	}

	if *parseTree {
		log.Debug("generating parse tree", "path", "parse-tree.png")
		writeDiagram(log, program, "parse-tree.png")
	}
	if *dotOut != "" {
		log.Debug("generating parse tree", "path", *dotOut)
		writeDOT(log, program, *dotOut)
	}

	log.Debug("running code generator")
	opts := wgsl.DefaultOptions()
	opts.Logger = log
	out, info, err := tekhne.Generate(program, opts)
	if err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
	if info.Degraded() {
		log.Warn("output is incomplete; some constructs had no translation rule")
	}

	outputPath := *output
	if outputPath == "" {
		base := filepath.Base(inputPath)
		outputPath = strings.TrimSuffix(base, filepath.Ext(base)) + ".wgsl"
	}
	if err := os.WriteFile(outputPath, []byte(out), 0644); err != nil {
		log.Error(fmt.Sprintf("writing '%s': %v", outputPath, err))
		os.Exit(1)
	}
	log.Info(fmt.Sprintf("translated %s to %s", inputPath, outputPath))
}

// setupLogger builds the diagnostics sink: a colored console handler on
// stderr, plus a timestamped text handler on tekhne.log with -f.
func setupLogger() *slog.Logger {
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}

	color := term.IsTerminal(int(os.Stderr.Fd()))
	var handler slog.Handler = newConsoleHandler(os.Stderr, level, color)

	if *fileLog {
		f, err := os.OpenFile("tekhne.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening tekhne.log: %v\n", err)
		} else {
			fileHandler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
			handler = &teeHandler{handlers: []slog.Handler{handler, fileHandler}}
		}
	}

	return slog.New(handler)
}

func writeDiagram(log *slog.Logger, program *cuda.Program, path string) {
	f, err := os.Create(path)
	if err != nil {
		log.Error(fmt.Sprintf("creating '%s': %v", path, err))
		return
	}
	defer f.Close()
	if err := viz.WritePNG(f, program); err != nil {
		log.Error(fmt.Sprintf("rendering '%s': %v", path, err))
	}
}

func writeDOT(log *slog.Logger, program *cuda.Program, path string) {
	f, err := os.Create(path)
	if err != nil {
		log.Error(fmt.Sprintf("creating '%s': %v", path, err))
		return
	}
	defer f.Close()
	if err := viz.WriteDOT(f, program); err != nil {
		log.Error(fmt.Sprintf("writing '%s': %v", path, err))
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: tekhne [options] <input.cu>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  tekhne kernel.cu              Translate to kernel.wgsl\n")
	fmt.Fprintf(os.Stderr, "  tekhne -o out.wgsl kernel.cu  Translate to a chosen path\n")
	fmt.Fprintf(os.Stderr, "  tekhne -t kernel.cu           Save the AST to parse-tree.png\n")
}
