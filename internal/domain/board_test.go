package domain

import (
	"testing"
)

// boardFrom builds a board from rows of seat digits, '.' being empty.
func boardFrom(rows ...string) Board {
	b := NewBoard(len(rows[0]), len(rows))
	for r, line := range rows {
		for c, ch := range line {
			if ch != '.' {
				b[r][c] = PlayerID(ch - '0')
			}
		}
	}
	return b
}

func TestNewBoardIsEmpty(t *testing.T) {
	for _, dims := range [][2]int{{7, 6}, {1, 1}, {10, 3}, {4, 9}} {
		width, height := dims[0], dims[1]
		b := NewBoard(width, height)

		if b.Height() != height || b.Width() != width {
			t.Fatalf("NewBoard(%d, %d) is %dx%d", width, height, b.Width(), b.Height())
		}
		for r := range b {
			for c := range b[r] {
				if b[r][c] != Empty {
					t.Errorf("cell (%d,%d) = %d, want empty", r, c, b[r][c])
				}
			}
		}
	}
}

func TestFindSpot(t *testing.T) {
	empty := NewBoard(7, 6)
	for col := 0; col < 7; col++ {
		if row, ok := empty.FindSpot(col); !ok || row != 5 {
			t.Errorf("empty board column %d: got (%d, %v), want (5, true)", col, row, ok)
		}
	}

	partial := boardFrom(
		".......",
		".......",
		".......",
		".......",
		"....1.2",
		"2.1.211",
	)
	cases := []struct {
		col  int
		want int
	}{
		{0, 4},
		{1, 5},
		{4, 3},
		{6, 3},
	}
	for _, tc := range cases {
		if row, ok := partial.FindSpot(tc.col); !ok || row != tc.want {
			t.Errorf("column %d: got (%d, %v), want (%d, true)", tc.col, row, ok, tc.want)
		}
	}

	full := boardFrom(
		"1..",
		"2..",
		"1..",
	)
	if row, ok := full.FindSpot(0); ok {
		t.Errorf("full column reported row %d", row)
	}
}

func TestDropDisk(t *testing.T) {
	b := NewBoard(3, 2)

	if _, err := b.DropDisk(3, 1); err != ErrInvalidColumn {
		t.Fatalf("expected ErrInvalidColumn, got %v", err)
	}
	if row, err := b.DropDisk(1, 1); err != nil || row != 1 {
		t.Fatalf("first drop: got (%d, %v)", row, err)
	}
	if row, err := b.DropDisk(1, 2); err != nil || row != 0 {
		t.Fatalf("second drop: got (%d, %v)", row, err)
	}
	if _, err := b.DropDisk(1, 1); err != ErrColumnFull {
		t.Fatalf("expected ErrColumnFull, got %v", err)
	}
}

func TestOpenColumnsAndFull(t *testing.T) {
	b := boardFrom(
		"1.2",
		"211",
	)
	open := b.OpenColumns()
	if len(open) != 1 || open[0] != 1 {
		t.Fatalf("OpenColumns = %v, want [1]", open)
	}
	if b.IsFull() {
		t.Fatal("board with an empty cell reported full")
	}
	b[0][1] = 1
	if !b.IsFull() {
		t.Fatal("filled board not reported full")
	}
	if len(b.OpenColumns()) != 0 {
		t.Fatalf("full board has open columns %v", b.OpenColumns())
	}
}

func TestCopyIsDeep(t *testing.T) {
	b := NewBoard(2, 2)
	c := b.Copy()
	c[1][1] = 2
	if b[1][1] != Empty {
		t.Fatal("mutating the copy changed the original")
	}
}
