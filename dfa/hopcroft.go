package dfa

import (
	"sort"

	derivex "github.com/coregx/derivex"
	"github.com/coregx/derivex/internal/sparse"
)

// Minimize returns a new DFA equivalent to d with the minimum possible
// number of states, via Hopcroft partition refinement: states are grouped
// into blocks by their accept class, and the partition is iteratively
// split using the inverse transition relation until no block can be split
// any further. The resulting states are renumbered deterministically with
// the sink block first and the start block second, matching d's own
// convention.
func (d *DFA) Minimize() *DFA {
	n := d.NumStates()
	k := len(d.classes)

	// inv[c][t] = states s with d.next[s][c] == t.
	inv := make([][][]int, k)
	for c := 0; c < k; c++ {
		inv[c] = make([][]int, n)
	}
	for s := 0; s < n; s++ {
		for c := 0; c < k; c++ {
			t := d.next[s][c]
			inv[c][t] = append(inv[c][t], s)
		}
	}

	blockOf := make([]int, n)
	blocks := map[int][]int{}
	nextID := 0

	initial := map[int][]int{}
	for s := 0; s < n; s++ {
		initial[d.accept[s]] = append(initial[d.accept[s]], s)
	}
	labels := make([]int, 0, len(initial))
	for label := range initial {
		labels = append(labels, label)
	}
	sort.Ints(labels)
	for _, label := range labels {
		id := nextID
		nextID++
		members := append([]int(nil), initial[label]...)
		sort.Ints(members)
		blocks[id] = members
		for _, s := range members {
			blockOf[s] = id
		}
	}

	// Upper bound on the number of block IDs ever allocated: at most n
	// initial blocks, and each split replaces one block with two (net +1
	// block, at most n-1 splits before every state is its own block).
	worklist := make([]int, 0, nextID)
	inWorklist := sparse.New(4 * (n + 2))
	for id := 0; id < nextID; id++ {
		worklist = append(worklist, id)
		inWorklist.Insert(uint32(id))
	}

	for len(worklist) > 0 {
		a := worklist[0]
		worklist = worklist[1:]
		if !inWorklist.Contains(uint32(a)) {
			continue // stale: a was split away after being queued
		}
		inWorklist.Remove(uint32(a))
		aMembers := blocks[a]

		for c := 0; c < k; c++ {
			xSet := map[int]bool{}
			for _, t := range aMembers {
				for _, s := range inv[c][t] {
					xSet[s] = true
				}
			}
			if len(xSet) == 0 {
				continue
			}

			affected := map[int][]int{}
			for s := range xSet {
				affected[blockOf[s]] = append(affected[blockOf[s]], s)
			}

			for y, xy := range affected {
				yMembers := blocks[y]
				if len(xy) == len(yMembers) {
					continue // X ⊇ Y: no split
				}

				inXY := make(map[int]bool, len(xy))
				for _, s := range xy {
					inXY[s] = true
				}
				yMinusX := make([]int, 0, len(yMembers)-len(xy))
				for _, s := range yMembers {
					if !inXY[s] {
						yMinusX = append(yMinusX, s)
					}
				}

				sort.Ints(xy)
				sort.Ints(yMinusX)

				id1, id2 := nextID, nextID+1
				nextID += 2
				blocks[id1] = xy
				blocks[id2] = yMinusX
				delete(blocks, y)
				for _, s := range xy {
					blockOf[s] = id1
				}
				for _, s := range yMinusX {
					blockOf[s] = id2
				}

				if inWorklist.Contains(uint32(y)) {
					inWorklist.Remove(uint32(y))
					worklist = append(worklist, id1, id2)
					inWorklist.Insert(uint32(id1))
					inWorklist.Insert(uint32(id2))
				} else if len(xy) <= len(yMinusX) {
					worklist = append(worklist, id1)
					inWorklist.Insert(uint32(id1))
				} else {
					worklist = append(worklist, id2)
					inWorklist.Insert(uint32(id2))
				}
			}
		}
	}

	sinkBlock := blockOf[d.SinkState()]
	startBlock := blockOf[d.StartState()]

	liveIDs := make([]int, 0, len(blocks))
	for id := range blocks {
		liveIDs = append(liveIDs, id)
	}
	sort.Slice(liveIDs, func(i, j int) bool {
		bi, bj := liveIDs[i], liveIDs[j]
		switch {
		case bi == sinkBlock && bj != sinkBlock:
			return true
		case bj == sinkBlock && bi != sinkBlock:
			return false
		case bi == startBlock && bj != startBlock:
			return true
		case bj == startBlock && bi != startBlock:
			return false
		default:
			return blocks[bi][0] < blocks[bj][0]
		}
	})

	newIndex := make(map[int]int, len(liveIDs))
	for i, id := range liveIDs {
		newIndex[id] = i
	}

	newStates := make([][]derivex.RegEx, len(liveIDs))
	newAccept := make([]int, len(liveIDs))
	newNext := make([][]int, len(liveIDs))
	for i, id := range liveIDs {
		rep := blocks[id][0]
		newStates[i] = d.states[rep]
		newAccept[i] = d.accept[rep]
		row := make([]int, k)
		for c := 0; c < k; c++ {
			row[c] = newIndex[blockOf[d.next[rep][c]]]
		}
		newNext[i] = row
	}

	return &DFA{
		patterns: d.patterns,
		states:   newStates,
		classes:  d.classes,
		next:     newNext,
		accept:   newAccept,
	}
}
