package mcts

// naughty is a handle into the node arena of a Tree. It's essentially *Node
type naughty int32

func (n naughty) isValid() bool { return n >= 0 }

const (
	nilNode naughty = -1
)
