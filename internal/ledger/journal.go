package ledger

import (
	"github.com/feral-file/ff-collection-ledger/internal/domain"
)

// journalEntry is one ledger modification that can be undone
type journalEntry interface {
	// revert undoes the change on the collection
	revert(*Collection)
	// touch marks the state key modified by the change
	touch(*dirtySet)
}

// dirtySet collects the state keys modified since the last commit
type dirtySet struct {
	records   map[uint64]struct{}
	balances  map[domain.Address]struct{}
	spenders  map[uint64]struct{}
	operators map[operatorKey]struct{}
}

func newDirtySet() *dirtySet {
	return &dirtySet{
		records:   make(map[uint64]struct{}),
		balances:  make(map[domain.Address]struct{}),
		spenders:  make(map[uint64]struct{}),
		operators: make(map[operatorKey]struct{}),
	}
}

// journal holds the modifications applied since the last commit. Every public
// call snapshots the journal length first and reverts to it on failure, so a
// failed call leaves no trace; the host reverts the whole journal when
// persisting a successful call fails.
type journal struct {
	entries []journalEntry
}

func newJournal() *journal {
	return &journal{}
}

func (j *journal) append(entry journalEntry) {
	j.entries = append(j.entries, entry)
}

// revert undoes entries back to the snapshot, newest first
func (j *journal) revert(c *Collection, snapshot int) {
	for i := len(j.entries) - 1; i >= snapshot; i-- {
		j.entries[i].revert(c)
	}
	j.entries = j.entries[:snapshot]
}

func (j *journal) length() int {
	return len(j.entries)
}

func (j *journal) reset() {
	j.entries = nil
}

// committedCounters returns the minted and burned counts before the first pending
// change, given their current values
func (j *journal) committedCounters(minted, burned uint64) (uint64, uint64) {
	seenMinted, seenBurned := false, false
	for _, e := range j.entries {
		switch ch := e.(type) {
		case mintedChange:
			if !seenMinted {
				minted, seenMinted = ch.prev, true
			}
		case burnedChange:
			if !seenBurned {
				burned, seenBurned = ch.prev, true
			}
		}
	}
	return minted, burned
}

func (j *journal) dirty() *dirtySet {
	d := newDirtySet()
	for _, e := range j.entries {
		e.touch(d)
	}
	return d
}

type (
	recordChange struct {
		index   uint64
		prev    Record
		existed bool
	}
	balanceChange struct {
		holder domain.Address
		prev   uint64
	}
	spenderChange struct {
		index uint64
		prev  domain.Address
	}
	operatorChange struct {
		key  operatorKey
		prev bool
	}
	mintedChange struct {
		prev uint64
	}
	burnedChange struct {
		prev uint64
	}
	receiverChange struct {
		prev domain.Address
	}
	metadataBaseChange struct {
		prev string
	}
	contractURIChange struct {
		prev string
	}
	adminChange struct {
		prev domain.Address
	}
	eventChange struct{}
)

func (ch recordChange) revert(c *Collection) {
	if ch.existed {
		c.owners.put(ch.index, ch.prev)
		return
	}
	c.owners.remove(ch.index)
}

func (ch recordChange) touch(d *dirtySet) {
	d.records[ch.index] = struct{}{}
}

func (ch balanceChange) revert(c *Collection) {
	if ch.prev == 0 {
		delete(c.balances, ch.holder)
		return
	}
	c.balances[ch.holder] = ch.prev
}

func (ch balanceChange) touch(d *dirtySet) {
	d.balances[ch.holder] = struct{}{}
}

func (ch spenderChange) revert(c *Collection) {
	c.approvals.setSpender(ch.index, ch.prev)
}

func (ch spenderChange) touch(d *dirtySet) {
	d.spenders[ch.index] = struct{}{}
}

func (ch operatorChange) revert(c *Collection) {
	c.approvals.setOperator(ch.key.owner, ch.key.operator, ch.prev)
}

func (ch operatorChange) touch(d *dirtySet) {
	d.operators[ch.key] = struct{}{}
}

func (ch mintedChange) revert(c *Collection) {
	c.counters.Minted = ch.prev
}

func (ch mintedChange) touch(*dirtySet) {}

func (ch burnedChange) revert(c *Collection) {
	c.counters.Burned = ch.prev
}

func (ch burnedChange) touch(*dirtySet) {}

func (ch receiverChange) revert(c *Collection) {
	c.royalty.receiver = ch.prev
}

func (ch receiverChange) touch(*dirtySet) {}

func (ch metadataBaseChange) revert(c *Collection) {
	c.metadataBase = ch.prev
}

func (ch metadataBaseChange) touch(*dirtySet) {}

func (ch contractURIChange) revert(c *Collection) {
	c.contractURI = ch.prev
}

func (ch contractURIChange) touch(*dirtySet) {}

func (ch adminChange) revert(c *Collection) {
	c.gate.admin = ch.prev
}

func (ch adminChange) touch(*dirtySet) {}

func (ch eventChange) revert(c *Collection) {
	if n := len(c.events); n > 0 {
		c.events = c.events[:n-1]
	}
}

func (ch eventChange) touch(*dirtySet) {}
