// Package search holds the breadth-first traversals the heuristics are built
// on. Every traversal enqueues a cell at most once, so each call is O(cells).
package search

import "github.com/Cameron-Kurotori/caseclosed/grid"

// Unreached marks cells a distance map never visited.
const Unreached = -1

// FloodFillSize counts the free cells reachable from start, start included.
// A blocked or out-of-bounds start has no room at all.
func FloodFillSize(g *grid.Grid, start grid.Cell) int {
	if !g.IsFree(start) {
		return 0
	}

	visited := make([]bool, g.Size())
	visited[g.Index(start)] = true
	queue := []grid.Cell{start}
	count := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		count++
		for _, nb := range g.Neighbors(cur, true) {
			if visited[g.Index(nb.Cell)] || !g.IsFree(nb.Cell) {
				continue
			}
			visited[g.Index(nb.Cell)] = true
			queue = append(queue, nb.Cell)
		}
	}
	return count
}

// ShortestPathLength is the minimum number of moves from start to goal
// through free cells. The goal itself may be occupied, as an opponent's head
// is. ok is false when no path exists.
func ShortestPathLength(g *grid.Grid, start, goal grid.Cell) (length int, ok bool) {
	if !g.IsFree(start) || !g.InBounds(goal) {
		return 0, false
	}
	if start == goal {
		return 0, true
	}

	dist := make([]int, g.Size())
	for i := range dist {
		dist[i] = Unreached
	}
	dist[g.Index(start)] = 0
	queue := []grid.Cell{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		d := dist[g.Index(cur)]
		for _, nb := range g.Neighbors(cur, true) {
			if nb.Cell == goal {
				return d + 1, true
			}
			if dist[g.Index(nb.Cell)] != Unreached || !g.IsFree(nb.Cell) {
				continue
			}
			dist[g.Index(nb.Cell)] = d + 1
			queue = append(queue, nb.Cell)
		}
	}
	return 0, false
}

// Distances returns a row-major map of move counts from start, stopping at
// maxDepth moves (maxDepth <= 0 is unlimited). The start is seeded even when
// it is occupied so a head can be measured from.
func Distances(g *grid.Grid, start grid.Cell, maxDepth int) []int {
	dist := make([]int, g.Size())
	for i := range dist {
		dist[i] = Unreached
	}
	if !g.InBounds(start) {
		return dist
	}

	dist[g.Index(start)] = 0
	queue := []grid.Cell{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		d := dist[g.Index(cur)]
		if maxDepth > 0 && d >= maxDepth {
			continue
		}
		for _, nb := range g.Neighbors(cur, true) {
			if dist[g.Index(nb.Cell)] != Unreached || !g.IsFree(nb.Cell) {
				continue
			}
			dist[g.Index(nb.Cell)] = d + 1
			queue = append(queue, nb.Cell)
		}
	}
	return dist
}

// Contested is the share of the cells you can reach within maxDepth that the
// opponent reaches at least as fast. 0 means the area is uncontested.
func Contested(g *grid.Grid, you, opponent grid.Cell, maxDepth int) float64 {
	mine := Distances(g, you, maxDepth)
	theirs := Distances(g, opponent, maxDepth)

	total, threatened := 0, 0
	for i, d := range mine {
		if d == Unreached {
			continue
		}
		total++
		if theirs[i] != Unreached && theirs[i] <= d {
			threatened++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(threatened) / float64(total)
}
