package board

// The 49-cell hex footprint, embedded in an 11(W)x5(H) bounding grid, using
// the exact row/column layout of original_source/IO.c's field_row/field_col/
// field_index tables so that move-text coordinates (e.g. "F3") map to the
// same cell index the reference implementation uses.
var (
	cellRow = [N]int{
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
		2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
		3, 3, 3, 3, 3, 3, 3, 3, 3, 3,
		4, 4, 4, 4, 4, 4, 4, 4, 4,
	}
	cellCol = [N]int{
		0, 1, 2, 3, 4, 5, 6, 7, 8,
		0, 1, 2, 3, 4, 5, 6, 7, 8, 9,
		0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
		1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
		2, 3, 4, 5, 6, 7, 8, 9, 10,
	}
	// cellIndex[r][c] is -1 for cells outside the hex footprint.
	cellIndex = [H][W]int{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, -1, -1},
		{9, 10, 11, 12, 13, 14, 15, 16, 17, 18, -1},
		{19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29},
		{-1, 30, 31, 32, 33, 34, 35, 36, 37, 38, 39},
		{-1, -1, 40, 41, 42, 43, 44, 45, 46, 47, 48},
	}
)

// Six hex-neighbour directions, in the axial (dr, dc) form used throughout
// original_source/Game.c.
var (
	dirRow = [6]int{-1, -1, 0, 0, 1, 1}
	dirCol = [6]int{-1, 0, -1, 1, 0, 1}
)

// neighbourDirs[n] lists, for each direction 0..5, the neighbouring cell
// index if it lies within the footprint. Built once at init so no runtime
// bounds check is ever needed again (design note §9: "bounds and off-board
// cells are handled by pre-filtering the table, not by runtime checks").
var neighbourDirs [N][]int8

// neighbourMask[n] is the 6-bit mask of directions that have a neighbour
// at all (on the empty board, this never changes; IsEdgeCell reads it, and
// an edge cell's Field.Mobile is always 1).
var neighbourMask [N]uint8

// steps[k][n] lists the single cell reachable by moving a stack of height k
// from cell n in each of the six directions that stays on the footprint
// (absolute destination indices; a Go slice already carries its own
// length, so no sentinel terminator is needed the way the C steps[][]
// arrays required one).
var steps [N + 1][N][]int8

func init() {
	for n := 0; n < N; n++ {
		r, c := cellRow[n], cellCol[n]
		for d := 0; d < 6; d++ {
			nr, nc := r+dirRow[d], c+dirCol[d]
			if nr < 0 || nr >= H || nc < 0 || nc >= W {
				continue
			}
			if m := cellIndex[nr][nc]; m >= 0 {
				neighbourDirs[n] = append(neighbourDirs[n], int8(m))
				neighbourMask[n] |= 1 << uint(d)
			}
		}
	}

	for k := 1; k <= N; k++ {
		for n := 0; n < N; n++ {
			r, c := cellRow[n], cellCol[n]
			for d := 0; d < 6; d++ {
				nr, nc := r+dirRow[d]*k, c+dirCol[d]*k
				if nr < 0 || nr >= H || nc < 0 || nc >= W {
					continue
				}
				if m := cellIndex[nr][nc]; m >= 0 {
					steps[k][n] = append(steps[k][n], int8(m))
				}
			}
		}
	}
}

// CellIndex returns the cell index for a (column, row) pair in algebraic
// coordinates (col 0='A'..10='K', row 0..4), or -1 if outside the footprint.
// Exported for notation's move-text codec.
func CellIndex(col, row int) int {
	if row < 0 || row >= H || col < 0 || col >= W {
		return -1
	}
	return cellIndex[row][col]
}

// CellCoords returns the (column, row) pair for a cell index.
func CellCoords(n int) (col, row int) {
	return cellCol[n], cellRow[n]
}

// Neighbours returns the cell indices adjacent to n (equivalent to a stack
// of height 1 moving from n), in fixed direction order.
func Neighbours(n int) []int8 {
	return neighbourDirs[n]
}

// Steps returns the cell indices reachable by moving a stack of height k
// from n, in fixed direction order.
func Steps(k, n int) []int8 {
	return steps[k][n]
}

// IsEdgeCell reports whether n lacks at least one of its six potential
// neighbours, i.e. sits on the boundary of the hex footprint
// (original_source/Eval.c's `board_neighbours[n] != (1<<6)-1`). This is a
// static property of the footprint, independent of which cells are
// currently removed from play.
func IsEdgeCell(n int) bool {
	return neighbourMask[n] != 0x3f
}
