package board

import "fmt"

func errHashMismatch(got, want uint64) error {
	return fmt.Errorf("board: incremental hash %#016x does not match recomputed hash %#016x", got, want)
}

func errDvonnBitsMismatch(got, want uint64) error {
	return fmt.Errorf("board: DvonnBits %#014x does not match fields' actual Dvonn cells %#014x", got, want)
}
