package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/aslang-lang/aslang/internal/cli"
	"github.com/aslang-lang/aslang/internal/format"
	"github.com/aslang-lang/aslang/internal/lexer"
	"github.com/aslang-lang/aslang/internal/parser"
)

// aslang-repl is the interactive front end: each line is parsed and
// echoed back in canonical form, or its diagnostic is printed.
// Evaluation belongs to the external interpreter; the REPL never runs
// anything.
func main() {
	var (
		showVersion = flag.Bool("version", false, "show version information")
		jsonOutput  = flag.Bool("json", false, "output version in JSON format")
		noPrompt    = flag.Bool("no-prompt", false, "disable interactive prompt")
		parseStr    = flag.String("parse", "", "parse one source string and exit")
		loadFile    = flag.String("load", "", "parse a file before starting the REPL")
		historyFile = flag.String("history", ".aslang_history", "history file path")
		maxHistory  = flag.Int("max-history", 1000, "maximum history entries")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "aslang interactive front end (parse and echo).\n\n")
		fmt.Fprintf(os.Stderr, "OPTIONS:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nREPL COMMANDS:\n")
		fmt.Fprintf(os.Stderr, "  :help, :h          Show help\n")
		fmt.Fprintf(os.Stderr, "  :quit, :q, exit    Exit REPL\n")
		fmt.Fprintf(os.Stderr, "  :tokens <src>      Show the token stream of a line\n")
		fmt.Fprintf(os.Stderr, "  :ast <src>         Show the parsed form of a line\n")
		fmt.Fprintf(os.Stderr, "  :load <file>       Parse a file\n")
		fmt.Fprintf(os.Stderr, "  :history           Show input history\n")
	}

	flag.Parse()

	if *showVersion {
		cli.PrintVersion("aslang-repl", *jsonOutput)
		os.Exit(0)
	}

	if *parseStr != "" {
		out, err := parseLine(*parseStr)
		if err != nil {
			cli.ExitWithError("%v", err)
		}
		fmt.Println(out)
		os.Exit(0)
	}

	repl := NewREPL(*historyFile, *maxHistory)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nGoodbye!")
		repl.SaveHistory()
		os.Exit(0)
	}()

	repl.LoadHistory()

	if *loadFile != "" {
		if err := repl.LoadFile(*loadFile); err != nil {
			cli.ExitWithError("failed to load file %s: %v", *loadFile, err)
		}
	}

	if !*noPrompt {
		repl.PrintWelcome()
	}

	repl.Run(*noPrompt)
}

type REPL struct {
	historyFile string
	maxHistory  int
	history     []string
	scanner     *bufio.Scanner
}

func NewREPL(historyFile string, maxHistory int) *REPL {
	return &REPL{
		historyFile: historyFile,
		maxHistory:  maxHistory,
		history:     make([]string, 0),
		scanner:     bufio.NewScanner(os.Stdin),
	}
}

func (r *REPL) PrintWelcome() {
	info := cli.GetVersionInfo()
	fmt.Printf("aslang v%s\n", info.Version)
	fmt.Printf("Type :help for help, :quit to exit\n")
	fmt.Println()
}

func (r *REPL) Run(noPrompt bool) {
	for {
		if !noPrompt {
			fmt.Print("as > ")
		}

		if !r.scanner.Scan() {
			break
		}

		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" {
			fmt.Println("Goodbye!")
			break
		}

		r.AddToHistory(line)

		if strings.HasPrefix(line, ":") {
			if r.HandleCommand(line) {
				break
			}
			continue
		}

		out, err := parseLine(line)
		if err != nil {
			fmt.Printf("%v\n", err)
			continue
		}
		fmt.Printf("=> %s\n", out)
	}

	r.SaveHistory()
}

func (r *REPL) HandleCommand(cmd string) bool {
	name, rest, _ := strings.Cut(cmd, " ")
	rest = strings.TrimSpace(rest)

	switch name {
	case ":help", ":h":
		r.PrintHelp()
	case ":quit", ":q", ":exit":
		fmt.Println("Goodbye!")
		return true
	case ":tokens":
		if rest == "" {
			fmt.Println("Usage: :tokens <src>")
		} else {
			printTokens(rest)
		}
	case ":ast":
		if rest == "" {
			fmt.Println("Usage: :ast <src>")
		} else if out, err := parseLine(rest); err != nil {
			fmt.Printf("%v\n", err)
		} else {
			fmt.Println(out)
		}
	case ":load":
		if rest == "" {
			fmt.Println("Usage: :load <file>")
		} else if err := r.LoadFile(rest); err != nil {
			fmt.Printf("Error loading file: %v\n", err)
		}
	case ":history":
		r.ShowHistory()
	default:
		fmt.Printf("Unknown command: %s\n", name)
		fmt.Println("Type :help for available commands")
	}

	return false
}

func (r *REPL) PrintHelp() {
	fmt.Println("REPL Commands:")
	fmt.Println("  :help, :h          Show this help")
	fmt.Println("  :quit, :q, exit    Exit REPL")
	fmt.Println("  :tokens <src>      Show the token stream of a line")
	fmt.Println("  :ast <src>         Show the parsed form of a line")
	fmt.Println("  :load <file>       Parse a file")
	fmt.Println("  :history           Show input history")
	fmt.Println()
	fmt.Println("Any other input is parsed and echoed back in canonical form.")
}

// parseLine parses one source unit and renders it canonically, one
// statement per line.
func parseLine(src string) (string, error) {
	program, err := parser.ParseFile("<repl>", src)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(format.Format(program), "\n"), nil
}

func printTokens(src string) {
	tokens, err := lexer.NewWithFilename(src, "<repl>").Tokenize()
	if err != nil {
		fmt.Printf("%v\n", err)
		return
	}
	for _, tok := range tokens {
		fmt.Printf("%s\t%s\t%q\n", tok.Span.Start, tok.Type, tok.Literal)
	}
}

func (r *REPL) LoadFile(filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	program, err := parser.ParseFile(filename, string(content))
	if err != nil {
		return err
	}

	fmt.Printf("Loaded %s: %d top-level statements\n", filename, len(program.Statements))
	fmt.Print(format.Format(program))
	return nil
}

func (r *REPL) AddToHistory(line string) {
	r.history = append(r.history, line)
	if len(r.history) > r.maxHistory {
		r.history = r.history[1:]
	}
}

func (r *REPL) ShowHistory() {
	if len(r.history) == 0 {
		fmt.Println("No history")
		return
	}

	fmt.Println("Input history:")
	for i, line := range r.history {
		fmt.Printf("%3d: %s\n", i+1, line)
	}
}

func (r *REPL) LoadHistory() {
	content, err := os.ReadFile(r.historyFile)
	if err != nil {
		return // no history yet
	}

	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			r.history = append(r.history, line)
		}
	}

	if len(r.history) > r.maxHistory {
		r.history = r.history[len(r.history)-r.maxHistory:]
	}
}

func (r *REPL) SaveHistory() {
	if len(r.history) == 0 {
		return
	}

	content := strings.Join(r.history, "\n") + "\n"
	os.WriteFile(r.historyFile, []byte(content), 0o644)
}
