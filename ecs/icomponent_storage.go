package ecs

import "iter"

// iComponentStorage is an interface for a type-erased component storage.
// Storage slots are entity slot indices.
type iComponentStorage interface {
	Set(index int, item any) bool
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	IndexOf(ptr any) int
	Len() int
	Clear()
	Iter() iter.Seq[int]
}
