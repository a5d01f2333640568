package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/aslang-lang/aslang/internal/cli"
	"github.com/aslang-lang/aslang/internal/format"
	"github.com/aslang-lang/aslang/internal/lexer"
	"github.com/aslang-lang/aslang/internal/parser"
	"github.com/aslang-lang/aslang/internal/position"
	"github.com/aslang-lang/aslang/internal/watch"
)

// aslang-check parses the given source files and reports the first
// diagnostic of each. Nothing is executed: a file either parses in
// full or produces exactly one error.
func main() {
	var (
		showVersion = flag.Bool("version", false, "show version information")
		jsonOutput  = flag.Bool("json", false, "output version in JSON format")
		showTokens  = flag.Bool("tokens", false, "dump the token stream of each file")
		showAST     = flag.Bool("ast", false, "dump the parsed program in canonical form")
		watchMode   = flag.Bool("watch", false, "re-check files whenever they change")
		verbose     = flag.Bool("verbose", false, "enable verbose output")
		debugMode   = flag.Bool("debug", false, "enable debug output")
		configPath  = flag.String("config", "", "path to .aslang.yaml (default: working directory)")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] <file.as>...\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Parse aslang source files and report diagnostics.\n\n")
		fmt.Fprintf(os.Stderr, "OPTIONS:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *showVersion {
		cli.PrintVersion("aslang-check", *jsonOutput)
		os.Exit(0)
	}

	logger := cli.NewLogger(*verbose, *debugMode)

	config, err := cli.LoadConfig(*configPath)
	if err != nil {
		cli.ExitWithError("%v", err)
	}
	if err := cli.CheckRequiredVersion(config.RequiredVersion); err != nil {
		cli.ExitWithError("%v", err)
	}

	files := flag.Args()
	if len(files) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	c := &checker{
		logger:     logger,
		showTokens: *showTokens,
		showAST:    *showAST,
	}

	if *watchMode {
		runWatch(c, files)
		return
	}

	exitCode := 0
	for _, path := range files {
		if !c.checkFile(path) {
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

type checker struct {
	logger     *cli.Logger
	showTokens bool
	showAST    bool
}

// checkFile parses one file and reports the outcome. It returns false
// when the file failed to read or parse.
func (c *checker) checkFile(path string) bool {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return false
	}

	c.logger.Debug("checking %s (%d bytes)", path, len(src))

	if c.showTokens {
		if !c.dumpTokens(path, string(src)) {
			return false
		}
	}

	program, err := parser.ParseFile(path, string(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		printCaret(path, string(src), err)
		return false
	}

	c.logger.Info("%s: %d top-level statements", path, len(program.Statements))

	if c.showAST {
		fmt.Print(format.Format(program))
	}

	return true
}

func (c *checker) dumpTokens(path, src string) bool {
	tokens, err := lexer.NewWithFilename(src, path).Tokenize()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return false
	}
	for _, tok := range tokens {
		fmt.Printf("%s\t%s\t%q\n", tok.Span.Start, tok.Type, tok.Literal)
	}
	return true
}

// printCaret renders the offending line with a caret under the error
// position, when the error carries one.
func printCaret(path, src string, err error) {
	var pos position.Position

	var lexErr *lexer.LexError
	var synErr *parser.SyntaxError
	switch {
	case errors.As(err, &lexErr):
		pos = lexErr.Pos
	case errors.As(err, &synErr):
		pos = synErr.Pos
	default:
		return
	}

	file := position.NewSourceFile(path, src)
	if out := file.HighlightAt(pos); out != "" {
		fmt.Fprint(os.Stderr, out)
	}
}

func runWatch(c *checker, files []string) {
	for _, path := range files {
		c.checkFile(path)
	}

	w, err := watch.New(func(path string) {
		fmt.Printf("--- %s changed\n", path)
		c.checkFile(path)
	}, func(err error) {
		c.logger.Error("watch: %v", err)
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

	c.logger.Info("watching %d files, Ctrl-C to stop", len(files))
	select {}
}
