package engine

import "github.com/maksverver/dvonn-engine/board"

// ExtractPV walks the transposition table's killer-move chain from the
// current position to reconstruct the principal variation the last search
// found, replaying each move onto b and undoing them all before
// returning. Capped at maxLen to guard against a corrupted or cyclic
// chain (a stale killer entry pointing back into a position already on
// the path) looping forever.
func ExtractPV(b *board.Board, tt *TranspositionTable, maxLen int) []board.Move {
	pv := make([]board.Move, 0, maxLen)
	undos := make([]board.UndoInfo, 0, maxLen)
	defer func() {
		for i := len(undos) - 1; i >= 0; i-- {
			b.Undo(undos[i])
		}
	}()

	for len(pv) < maxLen {
		entry, ok := tt.Probe(b.Hash)
		if !ok || !entry.Killer.Valid {
			break
		}
		m := entry.Killer.AsMove()
		if !b.ValidMove(m) {
			break
		}
		undos = append(undos, b.Do(m))
		pv = append(pv, m)
	}
	return pv
}
