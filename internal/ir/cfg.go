package ir

import "sort"

// InstNode is the per-instruction layout side-table: which block an
// instruction belongs to, and the id of the next instruction in that
// block (NoInst for the last instruction of a block). It backs both CFG
// construction (to find which block owns a branch target) and dump
// traversal.
type InstNode struct {
	Block BlockId
	Next  InstId
}

// BasicBlock is a maximal straight-line run of instructions with a
// single entry and a single terminator.
type BasicBlock struct {
	ID          BlockId
	Preds       []BlockId
	Succs       []BlockId
	First, Last InstId
}

// BuildCFG partitions f's linear IR into basic blocks and rewrites its
// pre-CFG control-flow instructions into terminator form in place. f
// must be non-empty and must not already have a CFG.
func BuildCFG(f *Function) {
	if len(f.Insts) == 0 {
		panic("internal error: BuildCFG called on an empty function")
	}
	if len(f.Blocks) != 0 {
		panic("internal error: BuildCFG called twice on the same function")
	}

	leaders := computeLeaders(f)
	partitionBlocks(f, leaders)
	rewriteTerminatorsAndWireEdges(f)
}

func computeLeaders(f *Function) []InstId {
	leaderSet := map[InstId]bool{0: true}

	for id, inst := range f.Insts {
		switch t := inst.(type) {
		case *IfFalseInst:
			leaderSet[t.Target()] = true
			leaderSet[InstId(id)+1] = true
		case *GotoInst:
			leaderSet[t.Target()] = true
			leaderSet[InstId(id)+1] = true
		}
	}

	leaders := make([]InstId, 0, len(leaderSet))
	for id := range leaderSet {
		if int(id) < len(f.Insts) {
			leaders = append(leaders, id)
		}
	}
	sort.Slice(leaders, func(i, j int) bool { return leaders[i] < leaders[j] })
	return leaders
}

func partitionBlocks(f *Function, leaders []InstId) {
	f.Layout = make([]InstNode, len(f.Insts))

	for i, leader := range leaders {
		end := InstId(len(f.Insts))
		if i+1 < len(leaders) {
			end = leaders[i+1]
		}

		blockID := BlockId(i)
		block := &BasicBlock{ID: blockID, First: leader, Last: end - 1}
		f.Blocks = append(f.Blocks, block)

		for id := leader; id < end; id++ {
			next := NoInst
			if id+1 < end {
				next = id + 1
			}
			f.Layout[id] = InstNode{Block: blockID, Next: next}
		}
	}
}

func (f *Function) blockOf(id InstId) BlockId {
	return f.Layout[id].Block
}

func addEdge(f *Function, from, to BlockId) {
	fromBlock := f.Blocks[from]
	fromBlock.Succs = append(fromBlock.Succs, to)
	toBlock := f.Blocks[to]
	toBlock.Preds = append(toBlock.Preds, from)
}

func rewriteTerminatorsAndWireEdges(f *Function) {
	for i, block := range f.Blocks {
		isLast := i == len(f.Blocks)-1
		lastInst := f.Insts[block.Last]

		switch t := lastInst.(type) {
		case *IfFalseInst:
			falseBlock := f.blockOf(t.Target())
			f.Insts[block.Last] = BranchInst{Op1: t.Op1, Op2: t.Op2, Cc: t.Cc}
			trueBlock := BlockId(i) + 1
			addEdge(f, block.ID, trueBlock)
			addEdge(f, block.ID, falseBlock)

		case *GotoInst:
			target := f.blockOf(t.Target())
			f.Insts[block.Last] = JumpInst{}
			addEdge(f, block.ID, target)

		default:
			if isLast {
				continue
			}
			// A non-last block must end in a two-way Branch or a
			// one-way Jump so every successor edge is explicit; a
			// Return/ReturnVoid (or anything else) that falls through
			// to the next block gets a synthetic Jump appended after
			// it, which becomes the block's real terminator.
			if !isBranchOrJump(lastInst) {
				id := f.CreateInst(JumpInst{})
				appendToBlock(f, block, id)
				addEdge(f, block.ID, BlockId(i)+1)
			}
		}
	}
}

func appendToBlock(f *Function, block *BasicBlock, id InstId) {
	f.Layout = append(f.Layout, InstNode{Block: block.ID, Next: NoInst})
	f.Layout[block.Last].Next = id
	block.Last = id
}

func isBranchOrJump(inst InstData) bool {
	switch inst.(type) {
	case BranchInst, JumpInst:
		return true
	default:
		return false
	}
}
