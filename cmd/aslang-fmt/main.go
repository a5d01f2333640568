package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/aslang-lang/aslang/internal/cli"
	"github.com/aslang-lang/aslang/internal/format"
	"github.com/aslang-lang/aslang/internal/watch"
)

// aslang-fmt rewrites aslang source into the canonical style.
// With no files it reads stdin and writes the result to stdout,
// gofmt-style.
func main() {
	var (
		writeInPlace = flag.Bool("w", false, "write result to (source) file instead of stdout")
		listOnly     = flag.Bool("l", false, "list files whose formatting differs")
		showDiff     = flag.Bool("d", false, "print a unified diff instead of the formatted source")
		watchMode    = flag.Bool("watch", false, "reformat files whenever they change (implies -w)")
		indentSize   = flag.Int("indent", 0, "indentation width (default from config)")
		useTabs      = flag.Bool("tabs", false, "indent with tabs")
		showVersion  = flag.Bool("version", false, "show version information")
		jsonOutput   = flag.Bool("json", false, "output version in JSON format")
		configPath   = flag.String("config", "", "path to .aslang.yaml (default: working directory)")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [file.as...]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Format aslang source files in the canonical style.\n\n")
		fmt.Fprintf(os.Stderr, "OPTIONS:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *showVersion {
		cli.PrintVersion("aslang-fmt", *jsonOutput)
		os.Exit(0)
	}

	config, err := cli.LoadConfig(*configPath)
	if err != nil {
		cli.ExitWithError("%v", err)
	}
	if err := cli.CheckRequiredVersion(config.RequiredVersion); err != nil {
		cli.ExitWithError("%v", err)
	}

	options := format.Options{
		IndentSize:           config.Formatter.IndentSize,
		PreferTabs:           config.Formatter.UseTabs,
		SpaceAroundOperators: true,
	}
	if *indentSize > 0 {
		options.IndentSize = *indentSize
	}
	if *useTabs {
		options.PreferTabs = true
	}

	f := &formatter{
		options:      options,
		writeInPlace: *writeInPlace || *watchMode,
		listOnly:     *listOnly,
		showDiff:     *showDiff,
	}

	files := flag.Args()
	if len(files) == 0 {
		if *watchMode {
			cli.ExitWithError("--watch requires file arguments")
		}
		os.Exit(f.formatStdin())
	}

	if *watchMode {
		runWatch(f, files)
		return
	}

	exitCode := 0
	for _, path := range files {
		if !f.formatFile(path) {
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

type formatter struct {
	options      format.Options
	writeInPlace bool
	listOnly     bool
	showDiff     bool
}

func (f *formatter) formatStdin() int {
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	out, err := format.Source("<stdin>", src, f.options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	if f.showDiff {
		fmt.Print(format.Diff("<stdin>", string(src), string(out)))
		return 0
	}

	os.Stdout.Write(out)
	return 0
}

// formatFile formats one file according to the selected mode. It
// returns false when the file failed to read, parse, or write.
func (f *formatter) formatFile(path string) bool {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return false
	}

	out, err := format.Source(path, src, f.options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return false
	}

	switch {
	case f.listOnly:
		if !bytes.Equal(out, src) {
			fmt.Println(path)
		}
	case f.showDiff:
		fmt.Print(format.Diff(path, string(src), string(out)))
	case f.writeInPlace:
		if !bytes.Equal(out, src) {
			if err := os.WriteFile(path, out, 0o644); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return false
			}
		}
	default:
		os.Stdout.Write(out)
	}

	return true
}

func runWatch(f *formatter, files []string) {
	for _, path := range files {
		f.formatFile(path)
	}

	w, err := watch.New(func(path string) {
		f.formatFile(path)
	}, func(err error) {
		fmt.Fprintf(os.Stderr, "watch: %v\n", err)
	})
	if err != nil {
		cli.ExitWithError("failed to start watcher: %v", err)
	}
	defer w.Close()

	for _, path := range files {
		if err := w.Add(path); err != nil {
			cli.ExitWithError("failed to watch %s: %v", path, err)
		}
	}

	select {}
}
