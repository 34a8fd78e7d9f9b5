package domain

// Person is one row of a score matrix.
// Index is the row position; Name is the label read from the input table.
type Person struct {
	Index int
	Name  string
}

// Room is one column of a score matrix.
type Room struct {
	Index int
	Name  string
}
