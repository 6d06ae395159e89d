package board

// Incremental Zobrist hashing, following the init-time-random-table,
// XOR-to-update idiom of blunext-chess/board/zobrist.go, generalized from a
// 12-piece-type chessboard to Dvonn's cellCode() encoding (spec.md §4.1).
//
// Keys are generated by a fixed-seed splitmix64 stream rather than
// math/rand, so the key table (and therefore every hash value) is
// reproducible across builds and platforms without depending on the
// standard library's PRNG algorithm remaining stable across Go versions.

const zobristSeed uint64 = 0x9e3779b97f4a7c15

// cellCodes run 0..4N+3 (cellCode's formula folds the stack height in, and
// a stack can in principle hold every piece on the board; pieces never
// exceeds N, so 4N+4 rows cover every code without bounding it tightly).
const zobristCodes = 4*N + 4

var (
	zobristInitial  uint64
	zobristSideKey  uint64
	zobristPhaseKey uint64
	zobristCell     [zobristCodes][N]uint64
)

func splitmix64(state *uint64) uint64 {
	*state += zobristSeed
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func init() {
	state := zobristSeed
	zobristInitial = splitmix64(&state)
	zobristSideKey = splitmix64(&state)
	zobristPhaseKey = splitmix64(&state)
	for code := 0; code < zobristCodes; code++ {
		for n := 0; n < N; n++ {
			zobristCell[code][n] = splitmix64(&state)
		}
	}
}

// toggleCell XORs the key for (code, n) into the board's running hash; it is
// its own inverse, so placing and removing the same code at the same cell
// cancels out (the property Do/Undo rely on).
func (b *Board) toggleCell(n, code int) {
	b.Hash ^= zobristCell[code][n]
}

// toggleSide flips the side-to-move component of the hash. cellCode already
// folds the owning player into each occupied cell's key, but a hash built
// only from Fields cannot distinguish "White to move" from "Black to move"
// on an otherwise-identical board (the position immediately before and
// after a Pass, for instance) — toggleSide is the independent key spec.md
// §4.1 requires for exactly that distinction. Do calls it whenever
// NextPlayer() actually flips across a ply; it is its own inverse.
func (b *Board) toggleSide() {
	b.Hash ^= zobristSideKey
}

// togglePhase flips the placement/stacking component of the hash, the
// second independent toggle key spec.md §4.1 requires alongside side to
// move. Do calls it exactly once, on the ply where Moves crosses N.
func (b *Board) togglePhase() {
	b.Hash ^= zobristPhaseKey
}

// recomputeHash rebuilds the Zobrist hash from scratch; used by Validate and
// by tests asserting the incremental hash never drifts from a recompute
// (spec.md §8 property 2). White-to-move, Placing is the zero state for the
// side/phase keys, matching the fresh board Clear() produces; toggleSide/
// togglePhase XOR the same two keys in as Moves crosses those boundaries,
// so this stays in lockstep with the incremental hash by induction.
func (b *Board) recomputeHash() uint64 {
	h := zobristInitial
	for n := range b.Fields {
		f := &b.Fields[n]
		if code := cellCode(f); code != 0 {
			h ^= zobristCell[code][n]
		}
	}
	if b.NextPlayer() == Black {
		h ^= zobristSideKey
	}
	if b.Phase() == Stacking {
		h ^= zobristPhaseKey
	}
	return h
}

// fallbackHash computes a non-incremental FNV-1 digest of the board,
// matching original_source/TT.c's degraded-mode hash used when the engine
// is built without Zobrist support. It is never used by the live TT, and
// being unexported it is not available to notation's state-string codec
// either; it is a self-contained, dependency-free way to fingerprint a
// position from inside this package.
func (b *Board) fallbackHash() uint64 {
	const fnvOffset64 = 14695981039346656037
	const fnvPrime64 = 1099511628211

	h := uint64(fnvOffset64)
	mix := func(x uint64) {
		h *= fnvPrime64
		h ^= x
	}
	mix(uint64(b.Moves))
	for n := range b.Fields {
		f := &b.Fields[n]
		mix(uint64(cellCode(f)))
	}
	return h
}
