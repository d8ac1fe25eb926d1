package fitness

import (
	"fmt"
)

// NewTransaction records a payment dated now.
func NewTransaction(id string, member *Member, amount float64, service string) *Transaction {
	return &Transaction{
		ID:          id,
		Member:      member,
		AmountPaid:  amount,
		Service:     service,
		PaymentDate: now(),
	}
}

// ProcessPayment overwrites the payment details and re-stamps the date.
//
// Deprecated: construct a new Transaction with NewTransaction instead.
func (t *Transaction) ProcessPayment(member *Member, amount float64, service string) bool {
	t.Member = member
	t.AmountPaid = amount
	t.Service = service
	t.PaymentDate = now()
	return true
}

// GenerateReceipt renders a plain-text receipt from the current fields.
func (t *Transaction) GenerateReceipt() string {
	memberName := ""
	if t.Member != nil {
		memberName = t.Member.Name
	}
	return fmt.Sprintf("Receipt for Transaction #%s\nMember: %s\nMembership: %s\nDate: %s\nAmount Paid: $%.2f\n",
		t.ID,
		memberName,
		t.Service,
		t.PaymentDate.Format("2006-01-02"),
		t.AmountPaid,
	)
}
