package ledger

import (
	"github.com/feral-file/ff-collection-ledger/internal/domain"
)

// OperatorApproval is one (owner, operator) entry of the operator relation
type OperatorApproval struct {
	Owner    domain.Address
	Operator domain.Address
	Approved bool
}

type operatorKey struct {
	owner    domain.Address
	operator domain.Address
}

// approvalTable holds per-token spenders and the per-owner operator relation.
// Token approvals are cleared by every transfer and burn; operator approvals
// survive transfers.
type approvalTable struct {
	tokens    map[uint64]domain.Address
	operators map[operatorKey]bool
}

func newApprovalTable() *approvalTable {
	return &approvalTable{
		tokens:    make(map[uint64]domain.Address),
		operators: make(map[operatorKey]bool),
	}
}

// spender returns the single approved spender of a token, or the zero address
func (a *approvalTable) spender(index uint64) domain.Address {
	return a.tokens[index]
}

func (a *approvalTable) setSpender(index uint64, spender domain.Address) {
	if domain.IsZeroAddress(spender) {
		delete(a.tokens, index)
		return
	}
	a.tokens[index] = spender
}

func (a *approvalTable) isOperator(owner, operator domain.Address) bool {
	return a.operators[operatorKey{owner: owner, operator: operator}]
}

func (a *approvalTable) setOperator(owner, operator domain.Address, approved bool) {
	key := operatorKey{owner: owner, operator: operator}
	if !approved {
		delete(a.operators, key)
		return
	}
	a.operators[key] = true
}

// canManage reports whether caller may move or burn a token held by owner
func (a *approvalTable) canManage(caller, owner domain.Address, index uint64) bool {
	if caller == owner {
		return true
	}
	if a.isOperator(owner, caller) {
		return true
	}
	spender := a.spender(index)
	return !domain.IsZeroAddress(spender) && spender == caller
}
