package ledger

import (
	"github.com/feral-file/ff-collection-ledger/internal/domain"
)

// adminGrant proves the admin check passed for the current call. Gated
// operations take it as a parameter instead of consulting the admin field.
type adminGrant struct {
	admin domain.Address
}

// accessGate is the single-admin authorization check
type accessGate struct {
	admin domain.Address
}

func (g *accessGate) authorize(caller domain.Address) (adminGrant, error) {
	if domain.IsZeroAddress(caller) || caller != g.admin {
		return adminGrant{}, domain.ErrUnauthorized
	}
	return adminGrant{admin: caller}, nil
}

// latch rejects re-entry into batch mint while a batch mint is in progress
type latch struct {
	held bool
}

func (l *latch) acquire() error {
	if l.held {
		return domain.ErrReentrantCall
	}
	l.held = true
	return nil
}

func (l *latch) release() {
	l.held = false
}
