package ledger

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-collection-ledger/internal/domain"
)

var (
	admin           = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	user1           = common.HexToAddress("0x0000000000000000000000000000000000000001")
	user2           = common.HexToAddress("0x0000000000000000000000000000000000000002")
	attacker        = common.HexToAddress("0x00000000000000000000000000000000000000ee")
	royaltyReceiver = common.HexToAddress("0x8eB8Bf106EbC9834a2586D04F73866C7436Ce298")
)

const (
	testBaseURI   = "ipfs://bafybeigrddomoknbxbqlfoy6wsmgdk5nlrckxwd6q7v6pzo5tfiiuycuwi/"
	testMaxSupply = 50
	testRoyalty   = 500
)

func testConfig() Config {
	return Config{
		Name:            "Kotkata",
		Symbol:          "KTKT",
		BaseURI:         testBaseURI,
		Cap:             testMaxSupply,
		BatchCap:        domain.DEFAULT_MAX_BATCH_SIZE,
		RoyaltyBps:      testRoyalty,
		RoyaltyReceiver: royaltyReceiver,
		Admin:           admin,
	}
}

func newTestCollection(t *testing.T, opts ...Option) *Collection {
	t.Helper()
	c, err := New(testConfig(), opts...)
	require.NoError(t, err)
	return c
}

func eth(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), uint256.NewInt(1_000_000_000_000_000_000))
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "zero cap", mutate: func(c *Config) { c.Cap = 0 }, wantErr: domain.ErrInvalidConfig},
		{name: "zero batch cap", mutate: func(c *Config) { c.BatchCap = 0 }, wantErr: domain.ErrInvalidConfig},
		{name: "empty name", mutate: func(c *Config) { c.Name = "" }, wantErr: domain.ErrInvalidConfig},
		{name: "royalty above 100%", mutate: func(c *Config) { c.RoyaltyBps = 10001 }, wantErr: domain.ErrInvalidRoyalty},
		{name: "royalty exactly 100%", mutate: func(c *Config) { c.RoyaltyBps = 10000 }},
		{name: "zero royalty receiver", mutate: func(c *Config) { c.RoyaltyReceiver = domain.ZeroAddress }, wantErr: domain.ErrZeroAddress},
		{name: "zero admin", mutate: func(c *Config) { c.Admin = domain.ZeroAddress }, wantErr: domain.ErrZeroAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			c, err := New(cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Kotkata", c.Name())
			assert.Equal(t, "KTKT", c.Symbol())
			assert.Equal(t, admin, c.Admin())
			assert.Equal(t, uint64(testMaxSupply), c.MaxSupply())
		})
	}
}

func TestMintOne(t *testing.T) {
	c := newTestCollection(t)

	index, err := c.MintOne(admin, user1)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), index)

	owner, err := c.OwnerOf(0)
	require.NoError(t, err)
	assert.Equal(t, user1, owner)
	assert.Equal(t, uint64(1), c.TotalMinted())

	_, events := c.Pending()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypeTokenMinted, events[0].Type)
	assert.Equal(t, user1, *events[0].To)
	assert.Equal(t, uint64(0), events[0].TokenIndex)
	assert.Equal(t, uint64(1), events[0].Quantity)
}

func TestMintOne_Rejections(t *testing.T) {
	c := newTestCollection(t)

	_, err := c.MintOne(attacker, user1)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = c.MintOne(admin, domain.ZeroAddress)
	assert.ErrorIs(t, err, domain.ErrZeroAddress)

	assert.Equal(t, uint64(0), c.TotalMinted())
	_, events := c.Pending()
	assert.Empty(t, events)
}

func TestMintBatch(t *testing.T) {
	c := newTestCollection(t)

	start, err := c.MintBatch(admin, user1, 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), start)

	assert.Equal(t, uint64(5), c.TotalMinted())
	balance, err := c.BalanceOf(user1)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), balance)

	for i := uint64(0); i < 5; i++ {
		owner, err := c.OwnerOf(i)
		require.NoError(t, err)
		assert.Equal(t, user1, owner, "index %d", i)
	}

	// one explicit record regardless of quantity
	assert.Equal(t, 1, c.ExplicitRecords())

	_, events := c.Pending()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypeBatchMinted, events[0].Type)
	assert.Equal(t, uint64(0), events[0].TokenIndex)
	assert.Equal(t, uint64(5), events[0].Quantity)
}

func TestMintBatch_ExplicitRecordsIndependentOfQuantity(t *testing.T) {
	cfg := testConfig()
	cfg.Cap = 1_000_000
	cfg.BatchCap = 1_000_000
	c, err := New(cfg)
	require.NoError(t, err)

	_, err = c.MintBatch(admin, user1, 1_000_000)
	require.NoError(t, err)
	assert.Equal(t, 1, c.ExplicitRecords())

	owner, err := c.OwnerOf(999_999)
	require.NoError(t, err)
	assert.Equal(t, user1, owner)
}

func TestMintBatch_Limits(t *testing.T) {
	// cap=50, batchCap=100
	t.Run("batch of the full cap then one more", func(t *testing.T) {
		c := newTestCollection(t)
		_, err := c.MintBatch(admin, user1, testMaxSupply)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), c.RemainingSupply())

		_, err = c.MintOne(admin, user2)
		assert.ErrorIs(t, err, domain.ErrSupplyExceeded)
		assert.Equal(t, uint64(testMaxSupply), c.TotalMinted())
	})

	t.Run("quantity over batch cap", func(t *testing.T) {
		c := newTestCollection(t)
		_, err := c.MintBatch(admin, user1, 101)
		assert.ErrorIs(t, err, domain.ErrBatchTooLarge)
	})

	t.Run("quantity over remaining supply", func(t *testing.T) {
		c := newTestCollection(t)
		_, err := c.MintBatch(admin, user1, testMaxSupply+1)
		assert.ErrorIs(t, err, domain.ErrSupplyExceeded)
	})

	t.Run("zero quantity", func(t *testing.T) {
		c := newTestCollection(t)
		_, err := c.MintBatch(admin, user1, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})

	t.Run("zero recipient", func(t *testing.T) {
		c := newTestCollection(t)
		_, err := c.MintBatch(admin, domain.ZeroAddress, 1)
		assert.ErrorIs(t, err, domain.ErrZeroAddress)
	})

	t.Run("non admin", func(t *testing.T) {
		c := newTestCollection(t)
		_, err := c.MintBatch(attacker, user1, 5)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("mint one up to the cap", func(t *testing.T) {
		c := newTestCollection(t)
		_, err := c.MintBatch(admin, user1, testMaxSupply-1)
		require.NoError(t, err)
		index, err := c.MintOne(admin, user2)
		require.NoError(t, err)
		assert.Equal(t, uint64(testMaxSupply-1), index)
		_, err = c.MintOne(admin, user2)
		assert.ErrorIs(t, err, domain.ErrSupplyExceeded)
	})
}

func TestMintBatch_ReentrantCallFails(t *testing.T) {
	var innerErr error
	hook := func(c *Collection, to domain.Address, start, quantity uint64) error {
		_, innerErr = c.MintBatch(admin, to, quantity)
		return innerErr
	}
	c := newTestCollection(t, WithReceiveHook(hook))

	_, err := c.MintBatch(admin, user1, 5)
	assert.ErrorIs(t, err, domain.ErrReentrantCall)
	assert.ErrorIs(t, innerErr, domain.ErrReentrantCall)

	// nothing from the outer call survives
	assert.Equal(t, uint64(0), c.TotalMinted())
	balance, err := c.BalanceOf(user1)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)
	assert.Equal(t, 0, c.ExplicitRecords())
	_, events := c.Pending()
	assert.Empty(t, events)

	// the latch is released afterwards
	c.receiveHook = nil
	_, err = c.MintBatch(admin, user1, 5)
	require.NoError(t, err)
}

func TestMintBatch_HookFailureLeavesNoPartialCredit(t *testing.T) {
	hookErr := errors.New("receiver rejected")
	c := newTestCollection(t, WithReceiveHook(func(*Collection, domain.Address, uint64, uint64) error {
		return hookErr
	}))

	_, err := c.MintOne(admin, user1)
	require.NoError(t, err)

	_, err = c.MintBatch(admin, user1, 10)
	assert.ErrorIs(t, err, hookErr)

	assert.Equal(t, uint64(1), c.TotalMinted())
	balance, _ := c.BalanceOf(user1)
	assert.Equal(t, uint64(1), balance)
	assert.False(t, c.Exists(1))
}

func TestMultipleMintsInSequence(t *testing.T) {
	c := newTestCollection(t)

	_, err := c.MintOne(admin, user1)
	require.NoError(t, err)
	_, err = c.MintOne(admin, user2)
	require.NoError(t, err)
	start, err := c.MintBatch(admin, user1, 3)
	require.NoError(t, err)

	assert.Equal(t, uint64(2), start)
	assert.Equal(t, uint64(5), c.TotalMinted())

	owner, _ := c.OwnerOf(1)
	assert.Equal(t, user2, owner)
	owner, _ = c.OwnerOf(4)
	assert.Equal(t, user1, owner)
}

func TestTransfer_InsideBatch(t *testing.T) {
	c := newTestCollection(t)
	_, err := c.MintBatch(admin, user1, 3)
	require.NoError(t, err)

	require.NoError(t, c.Transfer(user1, user1, user2, 1))

	expected := []domain.Address{user1, user2, user1}
	for i, want := range expected {
		owner, err := c.OwnerOf(uint64(i))
		require.NoError(t, err)
		assert.Equal(t, want, owner, "index %d", i)
	}

	b1, _ := c.BalanceOf(user1)
	b2, _ := c.BalanceOf(user2)
	assert.Equal(t, uint64(2), b1)
	assert.Equal(t, uint64(1), b2)
}

func TestTransfer_ChainOfHolders(t *testing.T) {
	c := newTestCollection(t)
	_, err := c.MintBatch(admin, user1, 3)
	require.NoError(t, err)

	require.NoError(t, c.Transfer(user1, user1, user2, 1))
	require.NoError(t, c.Transfer(user2, user2, attacker, 1))

	owner, err := c.OwnerOf(1)
	require.NoError(t, err)
	assert.Equal(t, attacker, owner)
}

func TestTransfer_Authorization(t *testing.T) {
	t.Run("stranger cannot transfer", func(t *testing.T) {
		c := newTestCollection(t)
		_, _ = c.MintOne(admin, user1)
		err := c.Transfer(attacker, user1, attacker, 0)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("wrong from", func(t *testing.T) {
		c := newTestCollection(t)
		_, _ = c.MintOne(admin, user1)
		err := c.Transfer(user2, user2, attacker, 0)
		assert.ErrorIs(t, err, domain.ErrIncorrectOwner)
	})

	t.Run("zero recipient", func(t *testing.T) {
		c := newTestCollection(t)
		_, _ = c.MintOne(admin, user1)
		err := c.Transfer(user1, user1, domain.ZeroAddress, 0)
		assert.ErrorIs(t, err, domain.ErrZeroAddress)
	})

	t.Run("nonexistent token", func(t *testing.T) {
		c := newTestCollection(t)
		err := c.Transfer(user1, user1, user2, 0)
		assert.ErrorIs(t, err, domain.ErrNonexistentToken)
	})

	t.Run("approved spender transfers and approval is cleared", func(t *testing.T) {
		c := newTestCollection(t)
		_, _ = c.MintOne(admin, user1)
		require.NoError(t, c.Approve(user1, user2, 0))

		spender, err := c.GetApproved(0)
		require.NoError(t, err)
		assert.Equal(t, user2, spender)

		require.NoError(t, c.Transfer(user2, user1, user2, 0))
		owner, _ := c.OwnerOf(0)
		assert.Equal(t, user2, owner)

		spender, err = c.GetApproved(0)
		require.NoError(t, err)
		assert.Equal(t, domain.ZeroAddress, spender)
	})

	t.Run("operator transfers several tokens", func(t *testing.T) {
		c := newTestCollection(t)
		_, _ = c.MintBatch(admin, user1, 3)
		require.NoError(t, c.SetApprovalForAll(user1, user2, true))

		require.NoError(t, c.Transfer(user2, user1, user2, 0))
		require.NoError(t, c.Transfer(user2, user1, user2, 1))

		b2, _ := c.BalanceOf(user2)
		assert.Equal(t, uint64(2), b2)
		// operator approval survives transfers
		assert.True(t, c.IsApprovedForAll(user1, user2))
	})

	t.Run("revoked operator", func(t *testing.T) {
		c := newTestCollection(t)
		_, _ = c.MintOne(admin, user1)
		require.NoError(t, c.SetApprovalForAll(user1, user2, true))
		require.NoError(t, c.SetApprovalForAll(user1, user2, false))
		err := c.Transfer(user2, user1, user2, 0)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestApprove(t *testing.T) {
	c := newTestCollection(t)
	_, _ = c.MintOne(admin, user1)

	assert.ErrorIs(t, c.Approve(user1, user1, 0), domain.ErrApprovalToOwner)
	assert.ErrorIs(t, c.Approve(attacker, attacker, 0), domain.ErrUnauthorized)
	assert.ErrorIs(t, c.Approve(user1, user2, 7), domain.ErrNonexistentToken)

	require.NoError(t, c.SetApprovalForAll(user1, attacker, true))
	require.NoError(t, c.Approve(attacker, user2, 0), "operator may approve")

	spender, _ := c.GetApproved(0)
	assert.Equal(t, user2, spender)

	require.NoError(t, c.Approve(user1, domain.ZeroAddress, 0))
	spender, _ = c.GetApproved(0)
	assert.Equal(t, domain.ZeroAddress, spender)
}

func TestSetApprovalForAll_Rejections(t *testing.T) {
	c := newTestCollection(t)
	assert.ErrorIs(t, c.SetApprovalForAll(user1, user1, true), domain.ErrSelfApproval)
	assert.ErrorIs(t, c.SetApprovalForAll(user1, domain.ZeroAddress, true), domain.ErrZeroAddress)
	assert.ErrorIs(t, c.SetApprovalForAll(user1, user1, false), domain.ErrSelfApproval)

	assert.False(t, c.IsApprovedForAll(user1, user1))
	assert.False(t, c.IsApprovedForAll(user1, domain.ZeroAddress))
	changes, events := c.Pending()
	assert.Empty(t, events)
	assert.Empty(t, changes.OperatorApprovals)
}

func TestRetire(t *testing.T) {
	t.Run("owner burns", func(t *testing.T) {
		c := newTestCollection(t)
		_, _ = c.MintOne(admin, user1)

		require.NoError(t, c.Retire(user1, 0))
		assert.Equal(t, uint64(1), c.TotalBurned())
		assert.Equal(t, uint64(0), c.TotalSupply())

		_, err := c.OwnerOf(0)
		assert.ErrorIs(t, err, domain.ErrNonexistentToken)
		_, err = c.TokenURI(0)
		assert.ErrorIs(t, err, domain.ErrNonexistentToken)

		_, events := c.Pending()
		last := events[len(events)-1]
		assert.Equal(t, domain.EventTypeTokenBurned, last.Type)
		assert.Equal(t, user1, *last.From)
	})

	t.Run("approved spender burns", func(t *testing.T) {
		c := newTestCollection(t)
		_, _ = c.MintOne(admin, user1)
		require.NoError(t, c.Approve(user1, user2, 0))
		require.NoError(t, c.Retire(user2, 0))
		b1, _ := c.BalanceOf(user1)
		assert.Equal(t, uint64(0), b1)
	})

	t.Run("stranger cannot burn", func(t *testing.T) {
		c := newTestCollection(t)
		_, _ = c.MintOne(admin, user1)
		assert.ErrorIs(t, c.Retire(attacker, 0), domain.ErrUnauthorized)
		assert.Equal(t, uint64(0), c.TotalBurned())
	})

	t.Run("burned twice", func(t *testing.T) {
		c := newTestCollection(t)
		_, _ = c.MintOne(admin, user1)
		require.NoError(t, c.Retire(user1, 0))
		assert.ErrorIs(t, c.Retire(user1, 0), domain.ErrNonexistentToken)
		assert.Equal(t, uint64(1), c.TotalBurned())
	})

	t.Run("burn inside a batch keeps the rest of the range", func(t *testing.T) {
		c := newTestCollection(t)
		_, _ = c.MintBatch(admin, user1, 10)

		require.NoError(t, c.Retire(user1, 4))

		owner, err := c.OwnerOf(5)
		require.NoError(t, err)
		assert.Equal(t, user1, owner)
		owner, err = c.OwnerOf(9)
		require.NoError(t, err)
		assert.Equal(t, user1, owner)
		owner, err = c.OwnerOf(3)
		require.NoError(t, err)
		assert.Equal(t, user1, owner)

		b1, _ := c.BalanceOf(user1)
		assert.Equal(t, uint64(9), b1)
	})

	t.Run("burn the last minted index then mint again", func(t *testing.T) {
		c := newTestCollection(t)
		_, _ = c.MintBatch(admin, user1, 3)
		require.NoError(t, c.Retire(user1, 2))
		_, err := c.MintBatch(admin, user2, 2)
		require.NoError(t, err)

		owner, _ := c.OwnerOf(3)
		assert.Equal(t, user2, owner)
		owner, _ = c.OwnerOf(4)
		assert.Equal(t, user2, owner)
		_, err = c.OwnerOf(2)
		assert.ErrorIs(t, err, domain.ErrNonexistentToken)
	})
}

func TestSupplyTracking(t *testing.T) {
	c := newTestCollection(t)
	_, err := c.MintBatch(admin, user1, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), c.TotalSupply())
	assert.Equal(t, uint64(0), c.TotalBurned())

	for i := uint64(0); i < 3; i++ {
		require.NoError(t, c.Retire(user1, i))
	}

	assert.Equal(t, uint64(10), c.TotalMinted())
	assert.Equal(t, uint64(7), c.TotalSupply())
	assert.Equal(t, uint64(3), c.TotalBurned())
	assert.Equal(t, uint64(testMaxSupply-10), c.RemainingSupply())
}

func TestRoyalty(t *testing.T) {
	c := newTestCollection(t)
	_, _ = c.MintOne(admin, user1)

	receiver, amount, err := c.RoyaltyInfo(0, eth(1))
	require.NoError(t, err)
	assert.Equal(t, royaltyReceiver, receiver)
	assert.Equal(t, "50000000000000000", amount.Dec())

	_, _, err = c.RoyaltyInfo(3, eth(1))
	assert.ErrorIs(t, err, domain.ErrNonexistentToken)

	// floor division
	_, amount, err = c.RoyaltyInfo(0, uint256.NewInt(19))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), amount.Uint64())
	_, amount, _ = c.RoyaltyInfo(0, uint256.NewInt(399))
	assert.Equal(t, uint64(19), amount.Uint64())

	// prices near the top of the 256-bit range do not overflow
	top := new(uint256.Int).SetAllOne()
	_, amount, err = c.RoyaltyInfo(0, top)
	require.NoError(t, err)
	assert.True(t, amount.Lt(top))
	assert.False(t, amount.IsZero())
}

func TestSetRoyaltyReceiver(t *testing.T) {
	c := newTestCollection(t)
	_, _ = c.MintOne(admin, user1)

	assert.ErrorIs(t, c.SetRoyaltyReceiver(attacker, attacker), domain.ErrUnauthorized)
	assert.ErrorIs(t, c.SetRoyaltyReceiver(admin, domain.ZeroAddress), domain.ErrZeroAddress)

	require.NoError(t, c.SetRoyaltyReceiver(admin, user1))
	receiver, _, err := c.RoyaltyInfo(0, eth(1))
	require.NoError(t, err)
	assert.Equal(t, user1, receiver)
	assert.Equal(t, uint64(testRoyalty), c.RoyaltyBasisPoints())

	_, events := c.Pending()
	last := events[len(events)-1]
	assert.Equal(t, domain.EventTypeRoyaltyReceiverUpdated, last.Type)
	assert.Equal(t, user1, *last.To)
}

func TestTokenURI(t *testing.T) {
	c := newTestCollection(t)
	_, _ = c.MintBatch(admin, user1, 3)

	for i, want := range []string{"0.json", "1.json", "2.json"} {
		uri, err := c.TokenURI(uint64(i))
		require.NoError(t, err)
		assert.Equal(t, testBaseURI+want, uri)
	}

	_, err := c.TokenURI(999)
	assert.ErrorIs(t, err, domain.ErrNonexistentToken)

	assert.ErrorIs(t, c.SetMetadataBase(attacker, "ipfs://malicious/"), domain.ErrUnauthorized)
	require.NoError(t, c.SetMetadataBase(admin, "https://meta.example/"))
	uri, _ := c.TokenURI(2)
	assert.Equal(t, "https://meta.example/2.json", uri)

	require.NoError(t, c.SetMetadataBase(admin, ""))
	uri, err = c.TokenURI(2)
	require.NoError(t, err)
	assert.Empty(t, uri)
}

func TestContractURIAndAdmin(t *testing.T) {
	c := newTestCollection(t)

	assert.ErrorIs(t, c.SetContractURI(attacker, "ipfs://malicious"), domain.ErrUnauthorized)
	require.NoError(t, c.SetContractURI(admin, "ipfs://collection.json"))
	assert.Equal(t, "ipfs://collection.json", c.ContractURI())

	assert.ErrorIs(t, c.TransferAdmin(admin, domain.ZeroAddress), domain.ErrZeroAddress)
	require.NoError(t, c.TransferAdmin(admin, user2))
	assert.Equal(t, user2, c.Admin())

	_, err := c.MintOne(admin, user1)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = c.MintOne(user2, user1)
	require.NoError(t, err)
}

func TestBalanceOf_ZeroAddress(t *testing.T) {
	c := newTestCollection(t)
	_, err := c.BalanceOf(domain.ZeroAddress)
	assert.ErrorIs(t, err, domain.ErrZeroAddress)
}

func TestPendingCommitRollback(t *testing.T) {
	c := newTestCollection(t)
	_, err := c.MintBatch(admin, user1, 5)
	require.NoError(t, err)
	c.Commit()

	require.NoError(t, c.Transfer(user1, user1, user2, 2))
	require.NoError(t, c.Approve(user1, user2, 0))
	require.NoError(t, c.SetApprovalForAll(user1, attacker, true))

	changes, events := c.Pending()
	assert.Len(t, events, 3)
	assert.Equal(t, Record{Holder: user2}, changes.Records[2])
	assert.Equal(t, Record{Holder: user1}, changes.Records[3], "range preserved for index 3")
	assert.Equal(t, uint64(4), changes.Balances[user1])
	assert.Equal(t, uint64(1), changes.Balances[user2])
	assert.Equal(t, user2, changes.TokenApprovals[0])
	require.Len(t, changes.OperatorApprovals, 1)
	assert.True(t, changes.OperatorApprovals[0].Approved)
	assert.Equal(t, uint64(5), changes.Minted)

	c.Rollback()

	owner, _ := c.OwnerOf(2)
	assert.Equal(t, user1, owner)
	b1, _ := c.BalanceOf(user1)
	assert.Equal(t, uint64(5), b1)
	spender, _ := c.GetApproved(0)
	assert.Equal(t, domain.ZeroAddress, spender)
	assert.False(t, c.IsApprovedForAll(user1, attacker))
	assert.Equal(t, 1, c.ExplicitRecords())

	changes, events = c.Pending()
	assert.Empty(t, events)
	assert.True(t, changes.Empty())
}

func TestPending_BaseCounters(t *testing.T) {
	c := newTestCollection(t)
	_, err := c.MintBatch(admin, user1, 5)
	require.NoError(t, err)

	changes, _ := c.Pending()
	assert.Equal(t, uint64(0), changes.BaseMinted)
	assert.Equal(t, uint64(5), changes.Minted)
	c.Commit()

	_, err = c.MintOne(admin, user2)
	require.NoError(t, err)
	_, err = c.MintBatch(admin, user2, 3)
	require.NoError(t, err)
	require.NoError(t, c.Retire(user1, 1))

	changes, _ = c.Pending()
	assert.Equal(t, uint64(5), changes.BaseMinted)
	assert.Equal(t, uint64(0), changes.BaseBurned)
	assert.Equal(t, uint64(9), changes.Minted)
	assert.Equal(t, uint64(1), changes.Burned)
	c.Commit()

	require.NoError(t, c.Approve(user2, user1, 5))
	changes, _ = c.Pending()
	assert.Equal(t, uint64(9), changes.BaseMinted)
	assert.Equal(t, uint64(1), changes.BaseBurned)
}

func TestExportRestore(t *testing.T) {
	c := newTestCollection(t)
	_, _ = c.MintBatch(admin, user1, 10)
	_, _ = c.MintOne(admin, user2)
	require.NoError(t, c.Transfer(user1, user1, user2, 3))
	require.NoError(t, c.Retire(user1, 6))
	require.NoError(t, c.Approve(user1, attacker, 8))
	require.NoError(t, c.SetApprovalForAll(user2, user1, true))
	require.NoError(t, c.SetRoyaltyReceiver(admin, user2))
	c.Commit()

	restored, err := Restore(c.Export())
	require.NoError(t, err)

	assert.Equal(t, c.Counters(), restored.Counters())
	assert.Equal(t, c.RoyaltyReceiver(), restored.RoyaltyReceiver())
	for i := uint64(0); i < c.TotalMinted(); i++ {
		want, wantErr := c.OwnerOf(i)
		got, gotErr := restored.OwnerOf(i)
		assert.Equal(t, want, got, "index %d", i)
		assert.Equal(t, wantErr == nil, gotErr == nil, "index %d", i)
	}
	spender, _ := restored.GetApproved(8)
	assert.Equal(t, attacker, spender)
	assert.True(t, restored.IsApprovedForAll(user2, user1))
}

func TestRestore_RejectsInconsistentCounters(t *testing.T) {
	st := newTestCollection(t).Export()
	st.Minted = 3
	st.Burned = 4
	_, err := Restore(st)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	st.Burned = 0
	st.Records[5] = Record{Holder: user1}
	_, err = Restore(st)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}
