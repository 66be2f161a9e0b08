package main

import (
	"fmt"

	gamebook "github.com/alnah/go-gamebook"
)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() CLIConverter
	Release(CLIConverter)
	Size() int
	InitErr() error
	Close() error
}

// PoolFactory creates the pool of one run once its options are known.
type PoolFactory func(size int, opts ...gamebook.Option) Pool

// poolAdapter wraps *gamebook.ConverterPool to implement Pool.
type poolAdapter struct {
	pool *gamebook.ConverterPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

// newConverterPool is the production PoolFactory.
func newConverterPool(size int, opts ...gamebook.Option) Pool {
	return &poolAdapter{pool: gamebook.NewConverterPool(size, opts...)}
}

// Acquire returns a nil interface, not a typed nil, when creation failed.
func (a *poolAdapter) Acquire() CLIConverter {
	conv := a.pool.Acquire()
	if conv == nil {
		return nil
	}
	return conv
}

// Release panics on a converter the pool did not hand out.
func (a *poolAdapter) Release(c CLIConverter) {
	conv, ok := c.(*gamebook.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

func (a *poolAdapter) InitErr() error {
	return a.pool.InitErr()
}

func (a *poolAdapter) Close() error {
	return a.pool.Close()
}
