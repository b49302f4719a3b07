// Package repository implements the persistence layer over MySQL. Sentinel
// errors defined here let handlers map storage failures onto HTTP statuses
// without string matching: ErrEmailExists becomes a 409 on signup, while
// plain sql.ErrNoRows is passed through for "not found" cases.
package repository

import "errors"

// ErrEmailExists is returned when an insert collides with the unique email
// index. Two requests racing to sign up the same address are resolved by
// that index; the loser observes this error.
var ErrEmailExists = errors.New("email already exists")
