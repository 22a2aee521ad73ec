package mcts

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/gorgonia/reversi/game"
)

// Node is a position in a Tree. A node is only ever touched by the goroutine that owns its tree,
// so unlike a shared tree there is no need for atomics.
type Node struct {
	board  game.Board
	toMove game.Player
	move   game.Point // the move that led here

	wins   uint32 // playouts won by the player who moved into this node
	visits uint32 // playouts through this node

	// leaf is set on expansion when toMove has nothing to play. Such nodes are never expanded.
	leaf bool

	id, parent naughty
}

func (n *Node) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "{NodeID: %v Move: %v ToMove: %v Wins: %d Visits: %d Leaf: %t}", n.id, n.move, n.toMove, n.wins, n.visits, n.leaf)
	if s.Flag('+') {
		fmt.Fprintf(s, "\n%v", n.board)
	}
}

func (n *Node) ID() int             { return int(n.id) }
func (n *Node) Move() game.Point    { return n.move }
func (n *Node) ToMove() game.Player { return n.toMove }
func (n *Node) Board() game.Board   { return n.board }
func (n *Node) Visits() uint32      { return n.visits }
func (n *Node) Wins() uint32        { return n.wins }
func (n *Node) IsLeaf() bool        { return n.leaf }
func (n *Node) IsNotVisited() bool  { return n.visits == 0 }
func (n *Node) player() game.Player { return n.toMove.Opponent() }
func (n *Node) isRoot() bool        { return !n.parent.isValid() }

// credit counts a playout that ended in e.
func (n *Node) credit(e game.EndState) { n.update(e.Won(n.player())) }

// Ratio is the fraction of playouts won by the player who moved into this node.
func (n *Node) Ratio() float32 { return ratio(n.wins, n.visits) }

// uct is the upper confidence bound of the node, as seen by its parent.
//
//	UCT = w/n + C * sqrt(ln(N)/n)
//
// where w and n are the wins and visits of the node and N the visits of its parent.
// Unvisited nodes are always tried first.
func (n *Node) uct(parentVisits uint32, c float32) float32 {
	if n.visits == 0 {
		return math32.Inf(1)
	}
	visits := float32(n.visits)
	return float32(n.wins)/visits + c*math32.Sqrt(math32.Log(float32(parentVisits))/visits)
}

func (n *Node) update(won bool) {
	n.visits++
	if won {
		n.wins++
	}
}
