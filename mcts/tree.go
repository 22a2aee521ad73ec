package mcts

import (
	"github.com/gorgonia/reversi/game"
)

// Tree is the search tree of one root move. The nodes live in an arena and refer to each other by
// naughty handles, the aim being to build MCTS without much pointer chasing.
//
// A Tree is owned by a single goroutine while it is being searched.
type Tree struct {
	Config
	move game.PlayerMove // the root move this tree evaluates
	rand game.Rand

	// memory related fields
	nodes    []Node
	children [][]naughty

	iterations int

	lumberjack
}

// newTree creates the tree for the root move m, played on b.
func newTree(b game.Board, m game.PlayerMove, conf Config, r game.Rand) *Tree {
	t := &Tree{
		Config:     conf,
		move:       m,
		rand:       r,
		nodes:      make([]Node, 0, 1024),
		children:   make([][]naughty, 0, 1024),
		lumberjack: makeLumberJack(),
	}
	t.New(b.WithMove(m), m.Player.Opponent(), m.Point, nilNode)
	return t
}

// New creates a new node
func (t *Tree) New(b game.Board, toMove game.Player, move game.Point, parent naughty) naughty {
	n := t.alloc()
	N := t.nodeFromNaughty(n)
	N.board = b
	N.toMove = toMove
	N.move = move
	N.parent = parent
	return n
}

// alloc allocates a node in the arena.
func (t *Tree) alloc() naughty {
	n := naughty(len(t.nodes))
	t.nodes = append(t.nodes, Node{id: n, parent: nilNode})
	t.children = append(t.children, nil)
	return n
}

func (t *Tree) nodeFromNaughty(n naughty) *Node { return &t.nodes[int(n)] }

// Children returns the children of the node.
func (t *Tree) Children(of naughty) []naughty { return t.children[int(of)] }

// Root returns the node reached by playing the root move.
func (t *Tree) Root() *Node { return &t.nodes[0] }

// Move is the root move evaluated by the tree.
func (t *Tree) Move() game.PlayerMove { return t.move }

func (t *Tree) Nodes() int      { return len(t.nodes) }
func (t *Tree) Iterations() int { return t.iterations }

// Ratio is the win ratio of the root move.
func (t *Tree) Ratio() float32 { return t.Root().Ratio() }

// iterate runs one selection, expansion, simulation and backpropagation.
func (t *Tree) iterate() {
	n := t.selection()
	n = t.expand(n)
	N := t.nodeFromNaughty(n)
	end := game.Playout(t.rand, N.board, N.toMove, t.Anti)
	t.backpropagate(n, end)
	t.iterations++
	t.log("iteration %d: %v -> %v", t.iterations, N.move, end)
}

// selection walks down from the root, always taking the child with the highest UCT,
// until it reaches a node without children.
func (t *Tree) selection() naughty {
	n := naughty(0)
	for {
		children := t.Children(n)
		if len(children) == 0 {
			return n
		}
		parentVisits := t.nodeFromNaughty(n).visits
		best := nilNode
		bestValue := float32(-1)
		for _, kid := range children {
			v := t.nodeFromNaughty(kid).uct(parentVisits, t.Exploration)
			if v > bestValue {
				best, bestValue = kid, v
			}
		}
		n = best
	}
}

// expand generates every child of n and returns one of them at random. A node whose player to move
// has nothing to play is marked as a leaf instead, and is returned as it is.
func (t *Tree) expand(n naughty) naughty {
	N := t.nodeFromNaughty(n)
	if N.leaf {
		return n
	}
	moves := N.board.LegalMoves(N.toMove)
	if len(moves) == 0 {
		N.leaf = true
		return n
	}

	b, toMove := N.board, N.toMove
	kids := make([]naughty, 0, len(moves))
	for _, m := range moves {
		// N may move when the arena grows
		kids = append(kids, t.New(b.WithMove(m), toMove.Opponent(), m.Point, n))
	}
	t.children[int(n)] = kids
	return kids[t.rand.Intn(len(kids))]
}

// backpropagate credits the result of a playout to every node from n to the root.
func (t *Tree) backpropagate(n naughty, end game.EndState) {
	for n.isValid() {
		N := t.nodeFromNaughty(n)
		N.credit(end)
		n = N.parent
	}
}
