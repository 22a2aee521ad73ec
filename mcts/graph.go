package mcts

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/awalterschulze/gographviz"

	"github.com/gorgonia/reversi/game"
)

type statefulNode struct {
	*Node
}

func (s statefulNode) Player() game.Player { return s.player() }

func (s statefulNode) Ratio() string { return fmt.Sprintf("%.3f", s.Node.Ratio()) }

func (s statefulNode) State() string {
	var buf bytes.Buffer
	for i, c := range s.board {
		if i%game.Size == 0 {
			fmt.Fprint(&buf, "⎢ ")
		}
		fmt.Fprintf(&buf, "%s ", c)
		if (i+1)%game.Size == 0 {
			fmt.Fprint(&buf, "⎥<BR />")
		}
	}
	return buf.String()
}

// ToDot renders the tree in the graphviz dot format. Nodes deeper than maxDepth are left out,
// a negative maxDepth renders the whole tree.
func (t *Tree) ToDot(maxDepth int) string {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		panic(err)
	}
	if err := g.SetDir(true); err != nil {
		panic(err)
	}

	var buf bytes.Buffer
	var walk func(n naughty, depth int)
	walk = func(n naughty, depth int) {
		N := t.nodeFromNaughty(n)
		buf.Reset()
		if err := tmpl.Execute(&buf, statefulNode{N}); err != nil {
			panic(err)
		}
		attrs := map[string]string{
			"fontname": "Monaco",
			"shape":    "none",
			"label":    strings.TrimSpace(buf.String()),
		}
		if err := g.AddNode("G", nodeName(n), attrs); err != nil {
			panic(err)
		}
		if maxDepth >= 0 && depth >= maxDepth {
			return
		}

		kids := append([]naughty(nil), t.Children(n)...)
		sort.Slice(kids, func(i, j int) bool { return t.nodeFromNaughty(kids[i]).move < t.nodeFromNaughty(kids[j]).move })
		for _, kid := range kids {
			walk(kid, depth+1)
			if err := g.AddEdge(nodeName(n), nodeName(kid), true, nil); err != nil {
				panic(err)
			}
		}
	}
	walk(0, 0)
	return g.String()
}

func nodeName(n naughty) string { return fmt.Sprintf("n%d", n) }

const tmplRaw = `<
<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0">
<TR><TD>Node ID</TD><TD>{{.ID}}</TD></TR>
<TR><TD>Move</TD><TD>{{.Move}}</TD></TR>
<TR><TD>Player</TD><TD>{{.Player}}</TD></TR>
<TR><TD>Visits</TD><TD>{{.Visits}}</TD></TR>
<TR><TD>Wins</TD><TD>{{.Wins}}</TD></TR>
<TR><TD>Ratio</TD><TD>{{.Ratio}}</TD></TR>
<TR><TD>State</TD><TD>{{.State}}</TD></TR>
</TABLE>
>
`

var tmpl *template.Template

func init() {
	tmpl = template.Must(template.New("name").Parse(tmplRaw))
}
