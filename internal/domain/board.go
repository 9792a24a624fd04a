package domain

// Board is indexed [row][col]. Row 0 is the top of the board and row
// Height()-1 is the bottom, where pieces land first.
type Board [][]PlayerID

func NewBoard(width, height int) Board {
	board := make(Board, height)
	for i := range board {
		board[i] = make([]PlayerID, width)
	}
	return board
}

func (b Board) Height() int {
	return len(b)
}

func (b Board) Width() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

func (b Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.Height() && col >= 0 && col < b.Width()
}

func (b Board) IsValidColumn(column int) bool {
	return column >= 0 && column < b.Width()
}

// FindSpot returns the lowest empty row in column, scanning from the
// bottom up. ok is false when the column is full. column must be valid.
func (b Board) FindSpot(column int) (row int, ok bool) {
	for row := b.Height() - 1; row >= 0; row-- {
		if b[row][column] == Empty {
			return row, true
		}
	}
	return -1, false
}

func (b Board) DropDisk(column int, player PlayerID) (int, error) {
	if !b.IsValidColumn(column) {
		return -1, ErrInvalidColumn
	}
	row, ok := b.FindSpot(column)
	if !ok {
		return -1, ErrColumnFull
	}
	b[row][column] = player
	return row, nil
}

func (b Board) IsFull() bool {
	for _, row := range b {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}
	return true
}

// OpenColumns lists the columns that can still take a piece, left to right.
func (b Board) OpenColumns() []int {
	open := []int{}
	if b.Height() == 0 {
		return open
	}
	for col := 0; col < b.Width(); col++ {
		if b[0][col] == Empty {
			open = append(open, col)
		}
	}
	return open
}

// this creates a deep copy of the board
func (b Board) Copy() Board {
	newBoard := make(Board, len(b))
	for i := range b {
		newBoard[i] = make([]PlayerID, len(b[i]))
		copy(newBoard[i], b[i])
	}
	return newBoard
}

// Ints flattens seats to plain ints for JSON payloads.
func (b Board) Ints() [][]int {
	intBoard := make([][]int, len(b))
	for i := range b {
		intBoard[i] = make([]int, len(b[i]))
		for j := range b[i] {
			intBoard[i][j] = int(b[i][j])
		}
	}
	return intBoard
}
