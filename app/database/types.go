package database

import (
	"database/sql"
)

type Author struct {
	ID   int64
	Name string
}

type Series struct {
	ID    int64
	Title string
}

// NewItem holds the column values for one item row.
type NewItem struct {
	Title       string
	Description sql.NullString
	Duration    sql.NullInt64
	URL         string
	Date        string // written to both date and pub_date
	AuthorID    sql.NullInt64
	Filename    string
	URLType     string
	CoAuthors   sql.NullString
}
