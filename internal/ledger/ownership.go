package ledger

import (
	"slices"

	"github.com/feral-file/ff-collection-ledger/internal/domain"
)

// Record is an explicit ownership entry stored at a token index.
// A retired record has an empty holder.
type Record struct {
	Holder  domain.Address
	Retired bool
}

// ownershipIndex stores explicit records keyed by token index. Any index without a
// record belongs to the nearest lower explicit record (its predecessor), so a batch of
// any size costs a single entry.
type ownershipIndex struct {
	keys    []uint64 // sorted explicit indices
	records map[uint64]Record
}

func newOwnershipIndex() *ownershipIndex {
	return &ownershipIndex{
		records: make(map[uint64]Record),
	}
}

// get returns the explicit record at index, if any
func (o *ownershipIndex) get(index uint64) (Record, bool) {
	r, ok := o.records[index]
	return r, ok
}

// put writes an explicit record at index
func (o *ownershipIndex) put(index uint64, r Record) {
	if _, ok := o.records[index]; !ok {
		pos, _ := slices.BinarySearch(o.keys, index)
		o.keys = slices.Insert(o.keys, pos, index)
	}
	o.records[index] = r
}

// remove drops the explicit record at index, making it implicit again.
// Only journal reverts call this.
func (o *ownershipIndex) remove(index uint64) {
	if _, ok := o.records[index]; !ok {
		return
	}
	delete(o.records, index)
	if pos, found := slices.BinarySearch(o.keys, index); found {
		o.keys = slices.Delete(o.keys, pos, pos+1)
	}
}

// predecessor returns the explicit record at the greatest key <= index
func (o *ownershipIndex) predecessor(index uint64) (uint64, Record, bool) {
	pos, found := slices.BinarySearch(o.keys, index)
	if found {
		return index, o.records[index], true
	}
	if pos == 0 {
		return 0, Record{}, false
	}
	key := o.keys[pos-1]
	return key, o.records[key], true
}

// len returns the number of explicit records
func (o *ownershipIndex) len() int {
	return len(o.keys)
}

// each calls fn for every explicit record in index order
func (o *ownershipIndex) each(fn func(index uint64, r Record)) {
	for _, k := range o.keys {
		fn(k, o.records[k])
	}
}
