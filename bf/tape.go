package bf

// TapeSize is the number of cells on a tape, the conventional 30k. Both
// execution strategies use the same fixed capacity with wraparound
// addressing.
const TapeSize = 30_000

// Tape is the cell memory a program operates on: TapeSize unsigned 8-bit
// cells, all zero initially, with one movable pointer starting at cell zero.
// The pointer wraps modulo TapeSize in both directions; cell values wrap
// modulo 256.
type Tape struct {
	cells []uint8
	ptr   int
}

func NewTape() *Tape {
	return &Tape{cells: make([]uint8, TapeSize)}
}

func wrap_index(i int, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Move adjusts the pointer by delta, wrapping around either end.
func (t *Tape) Move(delta int) {
	t.ptr = wrap_index(t.ptr+delta, len(t.cells))
}

// Get reads the current cell.
func (t *Tape) Get() uint8 {
	return t.cells[t.ptr]
}

// Set writes the current cell.
func (t *Tape) Set(v uint8) {
	t.cells[t.ptr] = v
}

// Adjust adds delta to the current cell, mod 256.
func (t *Tape) Adjust(delta int) {
	t.cells[t.ptr] = uint8(int(t.cells[t.ptr]) + delta)
}

// Pointer returns the current cell index.
func (t *Tape) Pointer() int {
	return t.ptr
}

// At reads the cell at index j. Negative and out-of-range indices wrap, so
// tests can probe relative to either end.
func (t *Tape) At(j int32) uint8 {
	return t.cells[wrap_index(int(j), len(t.cells))]
}

func (t *Tape) Len() int {
	return len(t.cells)
}

func (t *Tape) Reset() {
	t.ptr = 0
	clear(t.cells)
}

// Cells exposes the backing cell array. The compiled path passes its base
// address to the generated code as the sole argument.
func (t *Tape) Cells() []uint8 {
	return t.cells
}
