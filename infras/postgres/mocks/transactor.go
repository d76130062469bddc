package mocks

import (
	"context"
	"storeflight/infras/postgres"

	"github.com/jmoiron/sqlx"
)

type transactor struct {
	err error
}

// WithTx implements postgres.Transactor. It runs fn without a real
// transaction so repository mocks receive a nil *sqlx.Tx.
func (t *transactor) WithTx(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	if t.err != nil {
		return t.err
	}

	return fn(nil)
}

func NewTransactor() postgres.Transactor {
	return &transactor{}
}

// NewFailingTransactor returns a Transactor whose BeginTx fails with err.
func NewFailingTransactor(err error) postgres.Transactor {
	return &transactor{err: err}
}
