// Package database owns the shared MySQL handle: it opens the
// connection, bounds the pool, and bootstraps missing tables before the
// server starts accepting requests.
package database

import (
	"context"
	"database/sql"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Pool bounds and the startup ping deadline.  Reservation admission
// holds a room row lock for the length of one transaction, so the pool
// is sized well above the expected number of concurrent writers.
const (
	maxOpenConns    = 25
	maxIdleConns    = 25
	connMaxLifetime = 30 * time.Minute
	pingTimeout     = 5 * time.Second
)

// dsn builds the driver DSN through the driver's own config type.
// ParseTime makes DATETIME columns scan into time.Time, and the
// driver's default UTC location keeps every stored timestamp on one
// clock regardless of the server zone; the interval comparisons assume
// exactly that.
func dsn(user, pass, host, port, name string) string {
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = pass
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, port)
	cfg.DBName = name
	cfg.ParseTime = true
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

// Open connects to MySQL, applies the pool bounds, and verifies the
// connection with a short ping so a misconfigured database fails the
// process at startup instead of on the first request.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn(user, pass, host, port, name))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
