package ledger

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-collection-ledger/internal/domain"
)

// model is a naive per-index ownership table used to check the sparse index
type model struct {
	holders []domain.Address // zero address means burned
	burned  uint64
}

func (m *model) owner(index uint64) (domain.Address, bool) {
	if index >= uint64(len(m.holders)) || domain.IsZeroAddress(m.holders[index]) {
		return domain.ZeroAddress, false
	}
	return m.holders[index], true
}

func TestCollection_MatchesNaiveModel(t *testing.T) {
	cfg := testConfig()
	cfg.Cap = 2000
	cfg.BatchCap = 40
	c, err := New(cfg)
	require.NoError(t, err)

	holders := []domain.Address{
		common.HexToAddress("0x1001"),
		common.HexToAddress("0x1002"),
		common.HexToAddress("0x1003"),
		common.HexToAddress("0x1004"),
	}
	m := &model{}
	rng := rand.New(rand.NewPCG(42, 1337))

	for step := 0; step < 3000; step++ {
		who := holders[rng.IntN(len(holders))]
		minted := uint64(len(m.holders))

		switch op := rng.IntN(10); {
		case op < 2:
			q := uint64(rng.IntN(int(cfg.BatchCap)) + 1)
			_, err := c.MintBatch(admin, who, q)
			if minted+q > cfg.Cap {
				require.ErrorIs(t, err, domain.ErrSupplyExceeded)
				continue
			}
			require.NoError(t, err)
			for i := uint64(0); i < q; i++ {
				m.holders = append(m.holders, who)
			}
		case op < 3:
			_, err := c.MintOne(admin, who)
			if minted >= cfg.Cap {
				require.ErrorIs(t, err, domain.ErrSupplyExceeded)
				continue
			}
			require.NoError(t, err)
			m.holders = append(m.holders, who)
		case op < 8:
			if minted == 0 {
				continue
			}
			index := rng.Uint64N(minted)
			from, ok := m.owner(index)
			to := holders[rng.IntN(len(holders))]
			err := c.Transfer(from, from, to, index)
			if !ok {
				require.ErrorIs(t, err, domain.ErrNonexistentToken)
				continue
			}
			require.NoError(t, err)
			m.holders[index] = to
		default:
			if minted == 0 {
				continue
			}
			index := rng.Uint64N(minted)
			owner, ok := m.owner(index)
			if !ok {
				require.ErrorIs(t, c.Retire(who, index), domain.ErrNonexistentToken)
				continue
			}
			require.NoError(t, c.Retire(owner, index))
			m.holders[index] = domain.ZeroAddress
			m.burned++
		}

		if step%100 == 0 {
			c.Commit()
		}
	}

	assertMatchesModel(t, c, m, holders)

	restored, err := Restore(c.Export())
	require.NoError(t, err)
	assertMatchesModel(t, restored, m, holders)
}

func assertMatchesModel(t *testing.T, c *Collection, m *model, holders []domain.Address) {
	t.Helper()

	require.Equal(t, uint64(len(m.holders)), c.TotalMinted())
	require.Equal(t, m.burned, c.TotalBurned())
	require.Equal(t, c.TotalMinted()-c.TotalBurned(), c.TotalSupply())

	counts := make(map[domain.Address]uint64)
	for i := range m.holders {
		index := uint64(i)
		want, ok := m.owner(index)
		got, err := c.OwnerOf(index)
		if !ok {
			require.True(t, errors.Is(err, domain.ErrNonexistentToken), "index %d", index)
			continue
		}
		require.NoError(t, err, "index %d", index)
		require.Equal(t, want, got, "index %d", index)
		counts[got]++
	}

	var total uint64
	for _, h := range holders {
		balance, err := c.BalanceOf(h)
		require.NoError(t, err)
		require.Equal(t, counts[h], balance, "holder %s", h.Hex())
		total += balance
	}
	require.Equal(t, c.TotalSupply(), total)
	require.LessOrEqual(t, c.ExplicitRecords(), len(m.holders))
}
