package ledger

import (
	"fmt"
	"strconv"

	"github.com/holiman/uint256"

	"github.com/feral-file/ff-collection-ledger/internal/domain"
)

// ReceiveHook is called while a batch mint credits the recipient's balance, before
// the call completes. Returning an error fails the whole batch mint.
type ReceiveHook func(c *Collection, to domain.Address, start, quantity uint64) error

// Option configures a Collection
type Option func(*Collection)

// WithReceiveHook installs a hook invoked during the batch mint credit step
func WithReceiveHook(hook ReceiveHook) Option {
	return func(c *Collection) {
		c.receiveHook = hook
	}
}

// Collection is the ownership ledger of one fixed-size certificate collection.
//
// A Collection is not safe for concurrent use; the host must serialize calls.
// Every mutating method is all-or-nothing: on error the collection is exactly as
// before the call. Successful mutations stay pending until Commit or Rollback.
type Collection struct {
	name   string
	symbol string

	counters  Counters
	owners    *ownershipIndex
	balances  map[domain.Address]uint64
	approvals *approvalTable
	royalty   royaltyRegister
	gate      accessGate
	latch     latch

	metadataBase string
	contractURI  string

	journal     *journal
	events      []domain.LedgerEvent
	receiveHook ReceiveHook
}

// New creates an empty collection
func New(cfg Config, opts ...Option) (*Collection, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Collection{
		name:   cfg.Name,
		symbol: cfg.Symbol,
		counters: Counters{
			Cap:      cfg.Cap,
			BatchCap: cfg.BatchCap,
		},
		owners:       newOwnershipIndex(),
		balances:     make(map[domain.Address]uint64),
		approvals:    newApprovalTable(),
		royalty:      royaltyRegister{bps: cfg.RoyaltyBps, receiver: cfg.RoyaltyReceiver},
		gate:         accessGate{admin: cfg.Admin},
		metadataBase: cfg.BaseURI,
		contractURI:  cfg.ContractURI,
		journal:      newJournal(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// =============================================================================
// Minting (admin only)
// =============================================================================

// MintOne mints the next token to to and returns its index
func (c *Collection) MintOne(caller, to domain.Address) (index uint64, err error) {
	defer c.revertOnError(c.journal.length(), &err)

	grant, err := c.gate.authorize(caller)
	if err != nil {
		return 0, err
	}
	return c.mintOne(grant, to)
}

func (c *Collection) mintOne(_ adminGrant, to domain.Address) (uint64, error) {
	if domain.IsZeroAddress(to) {
		return 0, fmt.Errorf("%w: cannot mint to zero address", domain.ErrZeroAddress)
	}
	if err := c.counters.checkMintOne(); err != nil {
		return 0, err
	}

	index := c.counters.Minted
	c.writeRecord(index, Record{Holder: to})
	c.setMinted(index + 1)
	c.setBalance(to, c.balances[to]+1)

	c.emit(domain.LedgerEvent{
		Type:       domain.EventTypeTokenMinted,
		To:         domain.AddressPtr(to),
		TokenIndex: index,
		Quantity:   1,
	})

	return index, nil
}

// MintBatch mints quantity consecutive tokens to to and returns the first index.
// Only the first index of the batch receives an explicit record.
func (c *Collection) MintBatch(caller, to domain.Address, quantity uint64) (start uint64, err error) {
	defer c.revertOnError(c.journal.length(), &err)

	grant, err := c.gate.authorize(caller)
	if err != nil {
		return 0, err
	}

	if err := c.latch.acquire(); err != nil {
		return 0, err
	}
	defer c.latch.release()

	return c.mintBatch(grant, to, quantity)
}

func (c *Collection) mintBatch(_ adminGrant, to domain.Address, quantity uint64) (uint64, error) {
	if domain.IsZeroAddress(to) {
		return 0, fmt.Errorf("%w: cannot mint to zero address", domain.ErrZeroAddress)
	}
	if err := c.counters.checkBatch(quantity); err != nil {
		return 0, err
	}

	start := c.counters.Minted
	c.writeRecord(start, Record{Holder: to})
	c.setMinted(start + quantity)

	// credit the whole batch in one step
	c.setBalance(to, c.balances[to]+quantity)
	if c.receiveHook != nil {
		if err := c.receiveHook(c, to, start, quantity); err != nil {
			return 0, fmt.Errorf("receive hook failed: %w", err)
		}
	}

	c.emit(domain.LedgerEvent{
		Type:       domain.EventTypeBatchMinted,
		To:         domain.AddressPtr(to),
		TokenIndex: start,
		Quantity:   quantity,
	})

	return start, nil
}

// =============================================================================
// Holder operations
// =============================================================================

// Transfer moves token index from from to to on behalf of caller. The caller must be
// from, the approved spender of the token, or an operator of from.
func (c *Collection) Transfer(caller, from, to domain.Address, index uint64) (err error) {
	defer c.revertOnError(c.journal.length(), &err)

	if domain.IsZeroAddress(to) {
		return fmt.Errorf("%w: cannot transfer to zero address", domain.ErrZeroAddress)
	}

	owner, err := c.resolve(index)
	if err != nil {
		return err
	}
	if owner != from {
		return domain.ErrIncorrectOwner
	}
	if !c.approvals.canManage(caller, from, index) {
		return domain.ErrUnauthorized
	}

	c.preserveRange(index, from)
	c.writeRecord(index, Record{Holder: to})
	c.clearSpender(index)
	c.setBalance(from, c.balances[from]-1)
	c.setBalance(to, c.balances[to]+1)

	c.emit(domain.LedgerEvent{
		Type:       domain.EventTypeTransfer,
		From:       domain.AddressPtr(from),
		To:         domain.AddressPtr(to),
		TokenIndex: index,
	})

	return nil
}

// Retire burns token index on behalf of caller. The index is never reused.
func (c *Collection) Retire(caller domain.Address, index uint64) (err error) {
	defer c.revertOnError(c.journal.length(), &err)

	owner, err := c.resolve(index)
	if err != nil {
		return err
	}
	if !c.approvals.canManage(caller, owner, index) {
		return domain.ErrUnauthorized
	}

	c.preserveRange(index, owner)
	c.writeRecord(index, Record{Retired: true})
	c.setBurned(c.counters.Burned + 1)
	c.setBalance(owner, c.balances[owner]-1)
	c.clearSpender(index)

	c.emit(domain.LedgerEvent{
		Type:       domain.EventTypeTokenBurned,
		From:       domain.AddressPtr(owner),
		TokenIndex: index,
	})

	return nil
}

// Approve sets spender as the single approved address of a token. A zero spender
// clears the approval.
func (c *Collection) Approve(caller, spender domain.Address, index uint64) (err error) {
	defer c.revertOnError(c.journal.length(), &err)

	owner, err := c.resolve(index)
	if err != nil {
		return err
	}
	if spender == owner {
		return domain.ErrApprovalToOwner
	}
	if caller != owner && !c.approvals.isOperator(owner, caller) {
		return domain.ErrUnauthorized
	}

	c.setSpender(index, spender)
	c.emit(domain.LedgerEvent{
		Type:       domain.EventTypeApproval,
		From:       domain.AddressPtr(owner),
		To:         domain.AddressPtr(spender),
		TokenIndex: index,
	})

	return nil
}

// SetApprovalForAll enables or disables operator for all of owner's tokens.
// Unlike the unconditional toggle of the reference token standard, a zero
// operator fails with ErrZeroAddress and owner == operator fails with
// ErrSelfApproval; neither changes state nor emits an event.
func (c *Collection) SetApprovalForAll(owner, operator domain.Address, enabled bool) (err error) {
	defer c.revertOnError(c.journal.length(), &err)

	if domain.IsZeroAddress(owner) || domain.IsZeroAddress(operator) {
		return domain.ErrZeroAddress
	}
	if owner == operator {
		return domain.ErrSelfApproval
	}

	c.setOperator(owner, operator, enabled)
	c.emit(domain.LedgerEvent{
		Type:     domain.EventTypeApprovalForAll,
		From:     domain.AddressPtr(owner),
		To:       domain.AddressPtr(operator),
		Approved: enabled,
	})

	return nil
}

// =============================================================================
// Admin settings
// =============================================================================

// SetRoyaltyReceiver changes the royalty receiver. The rate never changes.
func (c *Collection) SetRoyaltyReceiver(caller, receiver domain.Address) (err error) {
	defer c.revertOnError(c.journal.length(), &err)

	if _, err := c.gate.authorize(caller); err != nil {
		return err
	}
	if domain.IsZeroAddress(receiver) {
		return fmt.Errorf("%w: invalid royalty receiver", domain.ErrZeroAddress)
	}

	c.journal.append(receiverChange{prev: c.royalty.receiver})
	c.royalty.receiver = receiver
	c.emit(domain.LedgerEvent{
		Type: domain.EventTypeRoyaltyReceiverUpdated,
		To:   domain.AddressPtr(receiver),
	})

	return nil
}

// SetMetadataBase changes the base used to build token URIs
func (c *Collection) SetMetadataBase(caller domain.Address, base string) (err error) {
	defer c.revertOnError(c.journal.length(), &err)

	if _, err := c.gate.authorize(caller); err != nil {
		return err
	}

	c.journal.append(metadataBaseChange{prev: c.metadataBase})
	c.metadataBase = base
	c.emit(domain.LedgerEvent{
		Type:  domain.EventTypeMetadataBaseUpdated,
		Value: base,
	})

	return nil
}

// SetContractURI changes the collection-level metadata pointer
func (c *Collection) SetContractURI(caller domain.Address, uri string) (err error) {
	defer c.revertOnError(c.journal.length(), &err)

	if _, err := c.gate.authorize(caller); err != nil {
		return err
	}

	c.journal.append(contractURIChange{prev: c.contractURI})
	c.contractURI = uri
	c.emit(domain.LedgerEvent{
		Type:  domain.EventTypeContractURIUpdated,
		Value: uri,
	})

	return nil
}

// TransferAdmin hands the admin role to newAdmin in a single step
func (c *Collection) TransferAdmin(caller, newAdmin domain.Address) (err error) {
	defer c.revertOnError(c.journal.length(), &err)

	grant, err := c.gate.authorize(caller)
	if err != nil {
		return err
	}
	if domain.IsZeroAddress(newAdmin) {
		return fmt.Errorf("%w: new admin", domain.ErrZeroAddress)
	}

	c.journal.append(adminChange{prev: c.gate.admin})
	c.gate.admin = newAdmin
	c.emit(domain.LedgerEvent{
		Type: domain.EventTypeAdminTransferred,
		From: domain.AddressPtr(grant.admin),
		To:   domain.AddressPtr(newAdmin),
	})

	return nil
}

// =============================================================================
// Reads
// =============================================================================

// Name returns the collection name
func (c *Collection) Name() string { return c.name }

// Symbol returns the collection symbol
func (c *Collection) Symbol() string { return c.symbol }

// Admin returns the current admin address
func (c *Collection) Admin() domain.Address { return c.gate.admin }

// Counters returns a copy of the counter set
func (c *Collection) Counters() Counters { return c.counters }

func (c *Collection) TotalMinted() uint64     { return c.counters.Minted }
func (c *Collection) TotalBurned() uint64     { return c.counters.Burned }
func (c *Collection) TotalSupply() uint64     { return c.counters.Supply() }
func (c *Collection) RemainingSupply() uint64 { return c.counters.Remaining() }
func (c *Collection) MaxSupply() uint64       { return c.counters.Cap }
func (c *Collection) MaxBatchSize() uint64    { return c.counters.BatchCap }

// RoyaltyBasisPoints returns the fixed royalty rate
func (c *Collection) RoyaltyBasisPoints() uint64 { return c.royalty.bps }

// RoyaltyReceiver returns the current royalty receiver
func (c *Collection) RoyaltyReceiver() domain.Address { return c.royalty.receiver }

// MetadataBase returns the base used to build token URIs
func (c *Collection) MetadataBase() string { return c.metadataBase }

// ContractURI returns the collection-level metadata pointer
func (c *Collection) ContractURI() string { return c.contractURI }

// Exists reports whether index was minted and not burned
func (c *Collection) Exists(index uint64) bool {
	_, err := c.resolve(index)
	return err == nil
}

// OwnerOf returns the holder of token index
func (c *Collection) OwnerOf(index uint64) (domain.Address, error) {
	return c.resolve(index)
}

// BalanceOf returns the number of tokens held by holder
func (c *Collection) BalanceOf(holder domain.Address) (uint64, error) {
	if domain.IsZeroAddress(holder) {
		return 0, domain.ErrZeroAddress
	}
	return c.balances[holder], nil
}

// GetApproved returns the approved spender of a token, or the zero address
func (c *Collection) GetApproved(index uint64) (domain.Address, error) {
	if _, err := c.resolve(index); err != nil {
		return domain.ZeroAddress, err
	}
	return c.approvals.spender(index), nil
}

// IsApprovedForAll reports whether operator may manage all of owner's tokens
func (c *Collection) IsApprovedForAll(owner, operator domain.Address) bool {
	return c.approvals.isOperator(owner, operator)
}

// RoyaltyInfo returns the receiver and the royalty owed on salePrice for token index
func (c *Collection) RoyaltyInfo(index uint64, salePrice *uint256.Int) (domain.Address, *uint256.Int, error) {
	if _, err := c.resolve(index); err != nil {
		return domain.ZeroAddress, nil, err
	}
	return c.royalty.receiver, c.royalty.quote(salePrice), nil
}

// TokenURI returns base + index + ".json", or an empty string when no base is set
func (c *Collection) TokenURI(index uint64) (string, error) {
	if _, err := c.resolve(index); err != nil {
		return "", err
	}
	if c.metadataBase == "" {
		return "", nil
	}
	return c.metadataBase + strconv.FormatUint(index, 10) + domain.TOKEN_URI_SUFFIX, nil
}

// ExplicitRecords returns how many ownership records are stored
func (c *Collection) ExplicitRecords() int {
	return c.owners.len()
}

// =============================================================================
// Internals
// =============================================================================

// resolve finds the holder of index from the nearest explicit record at or below it.
// Retire and transfer copy the previous holder to index+1 when that slot is implicit,
// so the nearest record is never a retired one unless index itself is retired.
func (c *Collection) resolve(index uint64) (domain.Address, error) {
	if index >= c.counters.Minted {
		return domain.ZeroAddress, fmt.Errorf("%w: %d", domain.ErrNonexistentToken, index)
	}

	_, rec, ok := c.owners.predecessor(index)
	if !ok || rec.Retired || domain.IsZeroAddress(rec.Holder) {
		return domain.ZeroAddress, fmt.Errorf("%w: %d", domain.ErrNonexistentToken, index)
	}

	return rec.Holder, nil
}

// preserveRange makes index+1 explicit with holder when it is minted but implicit,
// so rewriting index does not change who owns the rest of its range
func (c *Collection) preserveRange(index uint64, holder domain.Address) {
	next := index + 1
	if next >= c.counters.Minted {
		return
	}
	if _, ok := c.owners.get(next); ok {
		return
	}
	c.writeRecord(next, Record{Holder: holder})
}

func (c *Collection) revertOnError(snapshot int, err *error) {
	if *err != nil {
		c.journal.revert(c, snapshot)
	}
}

func (c *Collection) writeRecord(index uint64, r Record) {
	prev, existed := c.owners.get(index)
	c.journal.append(recordChange{index: index, prev: prev, existed: existed})
	c.owners.put(index, r)
}

func (c *Collection) setBalance(holder domain.Address, value uint64) {
	c.journal.append(balanceChange{holder: holder, prev: c.balances[holder]})
	if value == 0 {
		delete(c.balances, holder)
		return
	}
	c.balances[holder] = value
}

func (c *Collection) setSpender(index uint64, spender domain.Address) {
	c.journal.append(spenderChange{index: index, prev: c.approvals.spender(index)})
	c.approvals.setSpender(index, spender)
}

func (c *Collection) clearSpender(index uint64) {
	if domain.IsZeroAddress(c.approvals.spender(index)) {
		return
	}
	c.setSpender(index, domain.ZeroAddress)
}

func (c *Collection) setOperator(owner, operator domain.Address, approved bool) {
	key := operatorKey{owner: owner, operator: operator}
	c.journal.append(operatorChange{key: key, prev: c.approvals.isOperator(owner, operator)})
	c.approvals.setOperator(owner, operator, approved)
}

func (c *Collection) setMinted(value uint64) {
	c.journal.append(mintedChange{prev: c.counters.Minted})
	c.counters.Minted = value
}

func (c *Collection) setBurned(value uint64) {
	c.journal.append(burnedChange{prev: c.counters.Burned})
	c.counters.Burned = value
}

func (c *Collection) emit(event domain.LedgerEvent) {
	c.journal.append(eventChange{})
	c.events = append(c.events, event)
}
