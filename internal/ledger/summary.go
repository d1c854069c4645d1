package ledger

import "github.com/shopspring/decimal"

// Summary is the derived view over the current ledger. It is recomputed on
// every read and never persisted or cached.
type Summary struct {
	// RevenuePaidHT is the tax-exclusive sum over PAID invoices.
	RevenuePaidHT decimal.Decimal
	// OutstandingPendingHT is the tax-exclusive sum over PENDING invoices.
	OutstandingPendingHT decimal.Decimal
	// ClientCount is the number of distinct clients by id.
	ClientCount int
}

// Summarize folds the invoice and client collections into a Summary.
//
// The fold is commutative: reordering either input leaves the result
// unchanged. Empty inputs yield the zero summary.
func Summarize(invoices []Invoice, clients []Client) Summary {
	var s Summary
	for _, inv := range invoices {
		switch inv.Status {
		case StatusPaid:
			s.RevenuePaidHT = s.RevenuePaidHT.Add(inv.TotalHT)
		case StatusPending:
			s.OutstandingPendingHT = s.OutstandingPendingHT.Add(inv.TotalHT)
		}
	}
	seen := make(map[int]struct{}, len(clients))
	for _, c := range clients {
		seen[c.ID] = struct{}{}
	}
	s.ClientCount = len(seen)
	return s
}

// ClientByID resolves a client from the collection, reporting whether it
// was found.
func ClientByID(clients []Client, id int) (Client, bool) {
	for _, c := range clients {
		if c.ID == id {
			return c, true
		}
	}
	return Client{}, false
}
