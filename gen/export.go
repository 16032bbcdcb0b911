package gen

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/npillmayer/pgen"
)

// Export helpers for grammar introspection. Intended for debugging and for
// tooling that wants to inspect a compiled grammar; the parser itself never
// reads these formats.

// DFAsToGraphViz exports the compiled rule automata to the Graphviz Dot
// format, given a filename. One subgraph cluster per rule; final states are
// drawn with a double circle.
func (g *Grammar) DFAsToGraphViz(filename string) {
	f, err := os.Create(filename)
	if err != nil {
		panic(fmt.Sprintf("file open error: %v", err.Error()))
	}
	defer f.Close()
	g.WriteDot(f)
}

// WriteDot writes the Dot rendering of all rule automata to w.
func (g *Grammar) WriteDot(w io.Writer) {
	io.WriteString(w, `digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=circle, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, num := range g.ruleNumbers() {
		name := g.NumberToSymbol[num]
		rule := g.DFAs[num]
		io.WriteString(w, fmt.Sprintf("subgraph cluster_%d {\nlabel=\"%s\"\n", num, name))
		for i, arcs := range rule.States {
			shape := "circle"
			if hasAcceptArc(arcs, i) {
				shape = "doublecircle"
			}
			io.WriteString(w, fmt.Sprintf("s%d_%d [shape=%s label=\"%d\"]\n", num, i, shape, i))
		}
		for i, arcs := range rule.States {
			for _, a := range arcs {
				if a.Label == AcceptLabel && a.To == i {
					continue // the accept self-arc is rendered as the node shape
				}
				io.WriteString(w, fmt.Sprintf("s%d_%d -> s%d_%d [label=\"%s\"]\n",
					num, i, num, a.To, g.LabelString(a.Label)))
			}
		}
		io.WriteString(w, "}\n")
	}
	io.WriteString(w, "}\n")
}

// GrammarAsHTML exports the symbol table, label space and per-rule state
// tables in HTML format.
func GrammarAsHTML(g *Grammar, w io.Writer) {
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("<h2>Grammar, start symbol = %s</h2>\n", g.Start))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td>label</td><td>meaning</td></tr>\n")
	for id := range g.Labels {
		io.WriteString(w, fmt.Sprintf("<tr><td>%d</td><td>%s</td></tr>\n", id, g.LabelString(id)))
	}
	io.WriteString(w, "</table>\n")
	for _, num := range g.ruleNumbers() {
		rule := g.DFAs[num]
		io.WriteString(w, fmt.Sprintf("<h3>%s (%d)</h3>\n", g.NumberToSymbol[num], num))
		io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
		io.WriteString(w, "<tr bgcolor=#cccccc><td>state</td><td>arcs</td></tr>\n")
		for i, arcs := range rule.States {
			io.WriteString(w, fmt.Sprintf("<tr><td>%d</td><td>", i))
			for k, a := range arcs {
				if k > 0 {
					io.WriteString(w, ", ")
				}
				io.WriteString(w, fmt.Sprintf("%s&rarr;%d", g.LabelString(a.Label), a.To))
			}
			io.WriteString(w, "</td></tr>\n")
		}
		io.WriteString(w, "</table>\n")
	}
	io.WriteString(w, "</body></html>\n")
}

// LabelString returns a human-readable rendering of a label id.
func (g *Grammar) LabelString(id int) string {
	if id == AcceptLabel {
		return "#accept"
	}
	if id < 0 || id >= len(g.Labels) {
		return fmt.Sprintf("#%d?", id)
	}
	entry := g.Labels[id]
	if entry.Value != "" {
		return "'" + entry.Value + "'"
	}
	if entry.Type >= pgen.FirstNonterminal {
		return g.NumberToSymbol[entry.Type]
	}
	return fmt.Sprintf("T%d", entry.Type)
}

func (g *Grammar) ruleNumbers() []int {
	nums := make([]int, 0, len(g.DFAs))
	for num := range g.DFAs {
		nums = append(nums, num)
	}
	sort.Ints(nums)
	return nums
}

func hasAcceptArc(arcs []Arc, self int) bool {
	for _, a := range arcs {
		if a.Label == AcceptLabel && a.To == self {
			return true
		}
	}
	return false
}
