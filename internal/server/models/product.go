package models

// Product is a user-owned catalog record. IDs are supplied by the client on
// creation. UserID always tracks the last authenticated writer.
type Product struct {
	ID     int64
	Title  string
	UserID string

	// Owner is populated by read queries that join the users table.
	Owner *User
}
