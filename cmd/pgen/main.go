package main

import (
	"bufio"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/pgen"
	"github.com/npillmayer/pgen/gen"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// tracer traces with key 'pgen.cli'.
func tracer() tracing.Trace {
	return tracing.Select("pgen.cli")
}

// main() starts the pgen grammar workbench. Given a grammar file argument it
// compiles the grammar and prints a summary; without one it drops into an
// interactive session where users enter grammar rules line by line, compile
// them, and inspect symbols, labels, first-sets and the per-rule automata.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	dotfile := flag.String("dot", "", "Export compiled DFAs to a Graphviz Dot file")
	htmlfile := flag.String("html", "", "Export compiled tables to an HTML file")
	flag.Parse()
	tracer().SetTraceLevel(traceLevel(*tlevel))
	pterm.Info.Println("Welcome to the pgen grammar workbench")
	//
	wb := &Workbench{ns: pgen.NewStdTokens()}
	if flag.NArg() > 0 { // batch mode: compile the given grammar file
		src, err := ioutil.ReadFile(flag.Arg(0))
		if err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}
		wb.rules = string(src)
		if !wb.compile() {
			os.Exit(2)
		}
		wb.export(*dotfile, *htmlfile)
		wb.summary()
		return
	}
	repl, err := readline.New("pgen> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	wb.repl = repl
	tracer().Infof("Quit with <ctrl>D")
	wb.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}

// Workbench is our interactive session object.
type Workbench struct {
	rules   string // accumulated grammar source
	grammar *gen.Grammar
	ns      *pgen.StdTokens
	repl    *readline.Instance
}

// REPL starts interactive mode. Lines starting with a dot are commands,
// everything else is collected as grammar source for the next compile.
func (wb *Workbench) REPL() {
	for {
		line, err := wb.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if !strings.HasPrefix(line, ".") {
			wb.rules += line + "\n"
			continue
		}
		args := strings.Fields(line)
		if quit := wb.execute(args[0], args[1:]); quit {
			break
		}
	}
	println("Good bye!")
}

func (wb *Workbench) execute(cmd string, args []string) bool {
	switch cmd {
	case ".quit":
		return true
	case ".reset":
		wb.rules = ""
		wb.grammar = nil
		wb.ns = pgen.NewStdTokens()
	case ".load":
		if len(args) == 0 {
			pterm.Error.Println("usage: .load <file>")
			break
		}
		wb.load(args[0])
	case ".compile":
		if wb.compile() {
			wb.summary()
		}
	case ".symbols":
		wb.printSymbols()
	case ".labels":
		wb.printLabels()
	case ".first":
		if len(args) == 0 {
			pterm.Error.Println("usage: .first <rule>")
			break
		}
		wb.printFirst(args[0])
	case ".dfa":
		if len(args) == 0 {
			pterm.Error.Println("usage: .dfa <rule>")
			break
		}
		wb.printDFA(args[0])
	case ".dot":
		if len(args) == 0 {
			pterm.Error.Println("usage: .dot <file>")
			break
		}
		if wb.compiled() {
			wb.export(args[0], "")
		}
	case ".help":
		pterm.Info.Println(".load .compile .symbols .labels .first .dfa .dot .reset .quit")
	default:
		pterm.Error.Printf("unknown command %s (try .help)\n", cmd)
	}
	return false
}

func (wb *Workbench) load(filename string) {
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("unable to open grammar file: %s", filename)
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		wb.rules += scanner.Text() + "\n"
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("error while reading grammar file: " + err.Error())
	}
}

func (wb *Workbench) compile() bool {
	if strings.TrimSpace(wb.rules) == "" {
		pterm.Error.Println("no grammar rules yet")
		return false
	}
	wb.ns = pgen.NewStdTokens()
	g, err := gen.GenerateGrammar(wb.rules, wb.ns)
	if err != nil {
		pterm.Error.Println(err.Error())
		return false
	}
	wb.grammar = g
	return true
}

func (wb *Workbench) summary() {
	g := wb.grammar
	pterm.Info.Printf("compiled %d rules, %d labels, start symbol %s\n",
		len(g.SymbolToNumber), len(g.Labels), g.Start)
	pterm.Info.Printf("fingerprint %s\n", g.Fingerprint())
}

func (wb *Workbench) export(dotfile, htmlfile string) {
	if dotfile != "" {
		wb.grammar.DFAsToGraphViz(dotfile)
		pterm.Info.Printf("DFAs exported to %s\n", dotfile)
	}
	if htmlfile != "" {
		f, err := os.Create(htmlfile)
		if err != nil {
			pterm.Error.Println(err.Error())
			return
		}
		defer f.Close()
		gen.GrammarAsHTML(wb.grammar, f)
		pterm.Info.Printf("tables exported to %s\n", htmlfile)
	}
}

func (wb *Workbench) printSymbols() {
	if !wb.compiled() {
		return
	}
	for _, num := range sortedNumbers(wb.grammar.NumberToSymbol) {
		fmt.Printf("%5d  %s\n", num, wb.grammar.NumberToSymbol[num])
	}
}

func (wb *Workbench) printLabels() {
	if !wb.compiled() {
		return
	}
	for id := range wb.grammar.Labels {
		fmt.Printf("%5d  %s\n", id, wb.grammar.LabelString(id))
	}
}

func (wb *Workbench) printFirst(rule string) {
	if !wb.compiled() {
		return
	}
	num, ok := wb.grammar.SymbolToNumber[rule]
	if !ok {
		pterm.Error.Printf("no rule %s\n", rule)
		return
	}
	var labels []string
	for id := range wb.grammar.DFAs[num].First {
		labels = append(labels, wb.grammar.LabelString(id))
	}
	sort.Strings(labels)
	fmt.Printf("FIRST(%s) = %s\n", rule, strings.Join(labels, " "))
}

func (wb *Workbench) printDFA(rule string) {
	if !wb.compiled() {
		return
	}
	num, ok := wb.grammar.SymbolToNumber[rule]
	if !ok {
		pterm.Error.Printf("no rule %s\n", rule)
		return
	}
	for i, arcs := range wb.grammar.DFAs[num].States {
		var parts []string
		for _, a := range arcs {
			parts = append(parts, fmt.Sprintf("%s->%d", wb.grammar.LabelString(a.Label), a.To))
		}
		fmt.Printf("state %d: %s\n", i, strings.Join(parts, "  "))
	}
}

func (wb *Workbench) compiled() bool {
	if wb.grammar == nil {
		pterm.Error.Println("no compiled grammar (use .compile)")
		return false
	}
	return true
}

func sortedNumbers(m map[int]string) []int {
	nums := make([]int, 0, len(m))
	for num := range m {
		nums = append(nums, num)
	}
	sort.Ints(nums)
	return nums
}
