// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package memstore is an in-process relational store used when STORAGE_DRIVER is
"memory" and by the unit tests of every repository.

Rows are column maps keyed by the names in [schema], so the memory
repositories mirror the PostgreSQL layout one-to-one.

# Atomicity

[DB.Update] runs its callback against a copy-on-write working set. The live
tables are swapped in only when the callback returns nil; any error (including
an injected fault) discards the working set, leaving storage untouched.
*/
package memstore

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

var (
	// ErrNoRow is returned when a keyed lookup or mutation matches nothing.
	ErrNoRow = errors.New("memstore: no row")

	// ErrReadOnly is returned when a mutation is attempted inside [DB.View].
	ErrReadOnly = errors.New("memstore: read-only transaction")
)

// Row is a single record keyed by column name.
type Row map[string]any

// OpKind identifies a mutation for fault injection.
type OpKind string

const (
	OpInsert  OpKind = "insert"
	OpReplace OpKind = "replace"
	OpDelete  OpKind = "delete"
)

// Op describes a mutation about to be applied to the working set.
type Op struct {
	Kind  OpKind
	Table string
	ID    int
}

// FaultFunc is consulted before every mutation. A non-nil error aborts the
// mutation and, through it, the whole transaction.
type FaultFunc func(Op) error

type table struct {
	seq  int
	rows map[int]Row
}

func (t *table) clone() *table {
	return &table{seq: t.seq, rows: maps.Clone(t.rows)}
}

// DB holds every table behind a single lock.
type DB struct {
	mu     sync.Mutex
	tables map[string]*table
	fault  FaultFunc
}

// New creates a store with the named tables.
func New(tables ...string) *DB {
	db := &DB{tables: make(map[string]*table, len(tables))}
	for _, name := range tables {
		db.tables[name] = &table{rows: map[int]Row{}}
	}
	return db
}

// InjectFault installs a hook that can fail mutations. Pass nil to clear it.
func (db *DB) InjectFault(fault FaultFunc) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.fault = fault
}

// View runs fn against the live tables without allowing writes.
func (db *DB) View(fn func(*Tx) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	return fn(&Tx{tables: db.tables})
}

// Update runs fn inside an all-or-nothing unit of work.
func (db *DB) Update(fn func(*Tx) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	working := make(map[string]*table, len(db.tables))
	for name, t := range db.tables {
		working[name] = t.clone()
	}

	if err := fn(&Tx{tables: working, writable: true, fault: db.fault}); err != nil {
		return err
	}

	db.tables = working
	return nil
}

// Tx is the handle passed to [DB.View] and [DB.Update] callbacks.
// It must not be retained after the callback returns.
type Tx struct {
	tables   map[string]*table
	writable bool
	fault    FaultFunc
}

// Get returns a copy of the row with the given id.
func (tx *Tx) Get(name string, id int) (Row, error) {
	t, err := tx.table(name)
	if err != nil {
		return nil, err
	}

	row, ok := t.rows[id]
	if !ok {
		return nil, ErrNoRow
	}
	return maps.Clone(row), nil
}

// Exists reports whether a row with the given id is present.
func (tx *Tx) Exists(name string, id int) (bool, error) {
	t, err := tx.table(name)
	if err != nil {
		return false, err
	}
	_, ok := t.rows[id]
	return ok, nil
}

// Scan visits every row in ascending id order until fn returns false.
func (tx *Tx) Scan(name string, fn func(id int, row Row) bool) error {
	t, err := tx.table(name)
	if err != nil {
		return err
	}

	for _, id := range slices.Sorted(maps.Keys(t.rows)) {
		if !fn(id, maps.Clone(t.rows[id])) {
			return nil
		}
	}
	return nil
}

// Insert stores row under a freshly generated id and returns that id.
func (tx *Tx) Insert(name string, row Row) (int, error) {
	t, err := tx.mutable(name)
	if err != nil {
		return 0, err
	}

	id := t.seq + 1
	if err := tx.check(Op{Kind: OpInsert, Table: name, ID: id}); err != nil {
		return 0, err
	}

	t.seq = id
	t.rows[id] = maps.Clone(row)
	return id, nil
}

// Replace overwrites the row with the given id.
func (tx *Tx) Replace(name string, id int, row Row) error {
	t, err := tx.mutable(name)
	if err != nil {
		return err
	}

	if _, ok := t.rows[id]; !ok {
		return ErrNoRow
	}
	if err := tx.check(Op{Kind: OpReplace, Table: name, ID: id}); err != nil {
		return err
	}

	t.rows[id] = maps.Clone(row)
	return nil
}

// Delete removes the row with the given id.
func (tx *Tx) Delete(name string, id int) error {
	t, err := tx.mutable(name)
	if err != nil {
		return err
	}

	if _, ok := t.rows[id]; !ok {
		return ErrNoRow
	}
	if err := tx.check(Op{Kind: OpDelete, Table: name, ID: id}); err != nil {
		return err
	}

	delete(t.rows, id)
	return nil
}

// DeleteWhere removes every row matching match and returns how many were removed.
func (tx *Tx) DeleteWhere(name string, match func(Row) bool) (int, error) {
	t, err := tx.mutable(name)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, id := range slices.Sorted(maps.Keys(t.rows)) {
		if !match(t.rows[id]) {
			continue
		}
		if err := tx.check(Op{Kind: OpDelete, Table: name, ID: id}); err != nil {
			return removed, err
		}
		delete(t.rows, id)
		removed++
	}
	return removed, nil
}

func (tx *Tx) table(name string) (*table, error) {
	t, ok := tx.tables[name]
	if !ok {
		return nil, fmt.Errorf("memstore: unknown table %q", name)
	}
	return t, nil
}

func (tx *Tx) mutable(name string) (*table, error) {
	if !tx.writable {
		return nil, ErrReadOnly
	}
	return tx.table(name)
}

func (tx *Tx) check(op Op) error {
	if tx.fault == nil {
		return nil
	}
	return tx.fault(op)
}
