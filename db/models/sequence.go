package models

// Sequence : allocator state for human-readable invoice/payment numbers.
// NextValue is only ever advanced with an atomic UPDATE ... RETURNING so
// concurrent allocations can never hand out the same number.
type Sequence struct {
	ID        int64  `bun:",pk,autoincrement"`
	Kind      string `bun:",unique,notnull"`
	NextValue int64  `bun:",notnull,default:0"`
}
