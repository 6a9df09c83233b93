package render

import (
	"io"
	"strconv"

	"github.com/Ahmed-Sermani/go-pagerank/sparse"
	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"golang.org/x/xerrors"
)

// DOT writes the graph described by mat to w in graphviz DOT format. Node i
// stands for row i; every stored cell becomes an edge labelled with its
// weight.
func DOT(mat *sparse.Matrix, w io.Writer) error {
	gv := graphviz.New()
	defer func() { _ = gv.Close() }()

	g, err := gv.Graph()
	if err != nil {
		return xerrors.Errorf("create graph: %w", err)
	}
	defer func() { _ = g.Close() }()

	m, n := mat.Dims()
	size := m
	if n > size {
		size = n
	}
	nodes := make([]*cgraph.Node, size)
	for i := range nodes {
		if nodes[i], err = g.CreateNode(strconv.Itoa(i)); err != nil {
			return xerrors.Errorf("create node %d: %w", i, err)
		}
	}

	for i := 0; i < m; i++ {
		for j, cell := range mat.Row(i) {
			e, err := g.CreateEdge(edgeName(i, j), nodes[i], nodes[cell.Column])
			if err != nil {
				return xerrors.Errorf("create edge %d -> %d: %w", i, cell.Column, err)
			}
			e.SetLabel(strconv.FormatFloat(cell.Value, 'g', 4, 64))
		}
	}

	if err := gv.Render(g, graphviz.XDOT, w); err != nil {
		return xerrors.Errorf("render graph: %w", err)
	}
	return nil
}

func edgeName(row, idx int) string {
	return strconv.Itoa(row) + "_" + strconv.Itoa(idx)
}
