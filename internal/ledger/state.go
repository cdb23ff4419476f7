package ledger

import (
	"fmt"

	"github.com/feral-file/ff-collection-ledger/internal/domain"
)

// State is the full persisted layout of a collection
type State struct {
	Config            Config // RoyaltyReceiver, BaseURI, ContractURI and Admin hold current values
	Minted            uint64
	Burned            uint64
	Records           map[uint64]Record
	Balances          map[domain.Address]uint64
	TokenApprovals    map[uint64]domain.Address
	OperatorApprovals []OperatorApproval
}

// ChangeSet is the part of State modified by the pending calls. Collection-level
// fields always carry their current value; the keyed sections only hold dirty keys.
// A zero balance or a zero spender means the row should be removed.
// BaseMinted and BaseBurned are the counters the changes were made on; storage
// applies the set only while the persisted counters still hold those values.
type ChangeSet struct {
	BaseMinted uint64
	BaseBurned uint64

	Minted          uint64
	Burned          uint64
	RoyaltyReceiver domain.Address
	MetadataBase    string
	ContractURI     string
	Admin           domain.Address

	Records           map[uint64]Record
	Balances          map[domain.Address]uint64
	TokenApprovals    map[uint64]domain.Address
	OperatorApprovals []OperatorApproval
}

// Empty reports whether no keyed state changed
func (cs *ChangeSet) Empty() bool {
	return len(cs.Records) == 0 &&
		len(cs.Balances) == 0 &&
		len(cs.TokenApprovals) == 0 &&
		len(cs.OperatorApprovals) == 0
}

// Restore rebuilds a collection from persisted state
func Restore(st *State, opts ...Option) (*Collection, error) {
	if st == nil {
		return nil, fmt.Errorf("%w: nil state", domain.ErrInvalidConfig)
	}

	c, err := New(st.Config, opts...)
	if err != nil {
		return nil, err
	}
	if st.Minted > st.Config.Cap || st.Burned > st.Minted {
		return nil, fmt.Errorf("%w: counters minted=%d burned=%d cap=%d",
			domain.ErrInvalidConfig, st.Minted, st.Burned, st.Config.Cap)
	}

	c.counters.Minted = st.Minted
	c.counters.Burned = st.Burned
	for index, r := range st.Records {
		if index >= st.Minted {
			return nil, fmt.Errorf("%w: record at unminted index %d", domain.ErrInvalidConfig, index)
		}
		c.owners.put(index, r)
	}
	for holder, n := range st.Balances {
		if n > 0 {
			c.balances[holder] = n
		}
	}
	for index, spender := range st.TokenApprovals {
		c.approvals.setSpender(index, spender)
	}
	for _, op := range st.OperatorApprovals {
		c.approvals.setOperator(op.Owner, op.Operator, op.Approved)
	}

	return c, nil
}

// Export returns a copy of the collection's full state, including pending changes
func (c *Collection) Export() *State {
	st := &State{
		Config: Config{
			Name:            c.name,
			Symbol:          c.symbol,
			BaseURI:         c.metadataBase,
			ContractURI:     c.contractURI,
			Cap:             c.counters.Cap,
			BatchCap:        c.counters.BatchCap,
			RoyaltyBps:      c.royalty.bps,
			RoyaltyReceiver: c.royalty.receiver,
			Admin:           c.gate.admin,
		},
		Minted:         c.counters.Minted,
		Burned:         c.counters.Burned,
		Records:        make(map[uint64]Record, c.owners.len()),
		Balances:       make(map[domain.Address]uint64, len(c.balances)),
		TokenApprovals: make(map[uint64]domain.Address, len(c.approvals.tokens)),
	}

	c.owners.each(func(index uint64, r Record) {
		st.Records[index] = r
	})
	for holder, n := range c.balances {
		st.Balances[holder] = n
	}
	for index, spender := range c.approvals.tokens {
		st.TokenApprovals[index] = spender
	}
	for key := range c.approvals.operators {
		st.OperatorApprovals = append(st.OperatorApprovals, OperatorApproval{
			Owner:    key.owner,
			Operator: key.operator,
			Approved: true,
		})
	}

	return st
}

// Pending returns the changes and events of all calls since the last Commit
func (c *Collection) Pending() (*ChangeSet, []domain.LedgerEvent) {
	dirty := c.journal.dirty()
	baseMinted, baseBurned := c.journal.committedCounters(c.counters.Minted, c.counters.Burned)

	cs := &ChangeSet{
		BaseMinted:      baseMinted,
		BaseBurned:      baseBurned,
		Minted:          c.counters.Minted,
		Burned:          c.counters.Burned,
		RoyaltyReceiver: c.royalty.receiver,
		MetadataBase:    c.metadataBase,
		ContractURI:     c.contractURI,
		Admin:           c.gate.admin,
		Records:         make(map[uint64]Record, len(dirty.records)),
		Balances:        make(map[domain.Address]uint64, len(dirty.balances)),
		TokenApprovals:  make(map[uint64]domain.Address, len(dirty.spenders)),
	}

	for index := range dirty.records {
		if r, ok := c.owners.get(index); ok {
			cs.Records[index] = r
		}
	}
	for holder := range dirty.balances {
		cs.Balances[holder] = c.balances[holder]
	}
	for index := range dirty.spenders {
		cs.TokenApprovals[index] = c.approvals.spender(index)
	}
	for key := range dirty.operators {
		cs.OperatorApprovals = append(cs.OperatorApprovals, OperatorApproval{
			Owner:    key.owner,
			Operator: key.operator,
			Approved: c.approvals.isOperator(key.owner, key.operator),
		})
	}

	events := make([]domain.LedgerEvent, len(c.events))
	copy(events, c.events)

	return cs, events
}

// Commit accepts all pending changes
func (c *Collection) Commit() {
	c.journal.reset()
	c.events = nil
}

// Rollback undoes all pending changes
func (c *Collection) Rollback() {
	c.journal.revert(c, 0)
	c.events = nil
}
