package domain

// direction vectors as (deltaRow, deltaCol); rows grow downwards
var directions = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal down-right
	{1, -1}, // diagonal down-left
}

// CheckForWin scans every cell as the anchor of a four-cell line in each
// direction. It is O(width*height) per call; CheckWinAt gives the same
// answer for the lines through a single cell.
func (b Board) CheckForWin(player PlayerID) bool {
	if player == Empty {
		return false
	}
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			for _, dir := range directions {
				if b.lineOwnedBy(y, x, dir[0], dir[1], player) {
					return true
				}
			}
		}
	}
	return false
}

func (b Board) lineOwnedBy(row, col, deltaRow, deltaCol int, player PlayerID) bool {
	for step := 0; step < ToWin; step++ {
		r, c := row+deltaRow*step, col+deltaCol*step
		if !b.InBounds(r, c) || b[r][c] != player {
			return false
		}
	}
	return true
}

// CheckWinAt only looks at lines passing through (row, column), which is
// enough after a piece has just been placed there.
func (b Board) CheckWinAt(row, column int, player PlayerID) bool {
	if player == Empty || !b.InBounds(row, column) || b[row][column] != player {
		return false
	}
	for _, dir := range directions {
		total := 1 +
			b.CountDiskInDirection(row, column, dir[0], dir[1], player) +
			b.CountDiskInDirection(row, column, -dir[0], -dir[1], player)
		if total >= ToWin {
			return true
		}
	}
	return false
}

// this counts the number of disks in a specific direction
func (b Board) CountDiskInDirection(row, column, deltaRow, deltaCol int, player PlayerID) int {
	count := 0
	r, c := row+deltaRow, column+deltaCol
	for b.InBounds(r, c) && b[r][c] == player {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}
