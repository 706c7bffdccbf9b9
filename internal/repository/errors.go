// Package repository holds the data access layer.  Each entity gets its
// own repo over *sql.DB with context-aware methods; lookups that find
// nothing return per-entity sentinel errors so handlers can map them to
// 404 responses without inspecting SQL error strings.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// IsDuplicateEntry reports whether err is a MySQL unique-key violation
// (error 1062).  The application checks uniqueness before inserting,
// but the store-level constraint can still fire under concurrent
// writes; handlers map it to the same validation response as the
// pre-check.
func IsDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
