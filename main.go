// Command fathom parses data-description modules and reports syntax
// diagnostics. With no arguments and a terminal on stdin it runs a
// read-parse-print loop over single terms.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/must"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/QPC-github/fathom/arena"
	"github.com/QPC-github/fathom/symbol"
	"github.com/QPC-github/fathom/syntax"
)

var (
	exprFlag     = flag.Bool("expr", false, "Treat the command-line arguments as terms, not file paths")
	printASTFlag = flag.Bool("print-ast", false, "Print the parsed syntax tree for each input")
)

// parseFile parses one module and prints its diagnostics. It returns
// true if the module parsed cleanly.
func parseFile(ctx context.Context, tbl *symbol.Table, path string) bool {
	data, err := file.ReadFile(ctx, path)
	if err != nil {
		log.Panicf("%v", errors.Wrapf(err, "read %s", path))
	}
	ar := arena.New()
	msgs := &syntax.Messages{}
	mod := syntax.ParseModule(data, tbl, ar, msgs)
	for _, m := range msgs.Slice() {
		fmt.Fprintf(os.Stderr, "%s:%s\n", path, m)
	}
	if *printASTFlag {
		fmt.Println(mod.Render(tbl))
	}
	return msgs.Empty()
}

// parseTerm parses a single term and prints it back, plus any
// diagnostics. It returns true if the term parsed cleanly.
func parseTerm(tbl *symbol.Table, src string) bool {
	ar := arena.New()
	msgs := &syntax.Messages{}
	t := syntax.ParseTerm([]byte(src), tbl, ar, msgs)
	for _, m := range msgs.Slice() {
		fmt.Fprintln(os.Stderr, m)
	}
	fmt.Println(t.Render(tbl))
	return msgs.Empty()
}

func repl(tbl *symbol.Table) {
	rl, err := readline.New("fathom> ")
	must.Nil(err)
	defer rl.Close()
	for {
		line, err := rl.Readline()
		switch err {
		case nil:
		case readline.ErrInterrupt:
			continue
		case io.EOF:
			return
		default:
			must.Nil(err)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		parseTerm(tbl, line)
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()
	tbl := symbol.NewTable()
	args := flag.Args()

	ok := true
	switch {
	case *exprFlag:
		must.True(len(args) > 0, "-expr requires at least one argument")
		for _, src := range args {
			ok = parseTerm(tbl, src) && ok
		}
	case len(args) > 0:
		for _, path := range args {
			ok = parseFile(ctx, tbl, path) && ok
		}
	default:
		must.True(term.IsTerminal(int(os.Stdin.Fd())),
			"no input files and stdin is not a terminal")
		repl(tbl)
	}
	if !ok {
		os.Exit(1)
	}
}
