package ledger

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
)

func amount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, nil)
	if !s.RevenuePaidHT.IsZero() || !s.OutstandingPendingHT.IsZero() || s.ClientCount != 0 {
		t.Errorf("Summarize(nil, nil) = %+v, want all zero", s)
	}
}

func TestSummarize(t *testing.T) {
	invoices := []Invoice{
		{Number: "FAC-1", ClientID: 1, Label: "Consulting", TotalHT: amount(t, "100"), TotalTTC: amount(t, "120"), Status: StatusPaid},
		{Number: "FAC-2", ClientID: 2, Label: "Hosting", TotalHT: amount(t, "50"), TotalTTC: amount(t, "60"), Status: StatusPending},
	}
	clients := []Client{
		{ID: 1, Name: "Acme"},
		{ID: 2, Name: "Globex"},
	}

	s := Summarize(invoices, clients)

	if got := s.RevenuePaidHT.StringFixed(2); got != "100.00" {
		t.Errorf("RevenuePaidHT = %s, want 100.00", got)
	}
	if got := s.OutstandingPendingHT.StringFixed(2); got != "50.00" {
		t.Errorf("OutstandingPendingHT = %s, want 50.00", got)
	}
	if s.ClientCount != 2 {
		t.Errorf("ClientCount = %d, want 2", s.ClientCount)
	}
}

func TestSummarize_DuplicateClients(t *testing.T) {
	clients := []Client{{ID: 7}, {ID: 7}, {ID: 9}}
	if s := Summarize(nil, clients); s.ClientCount != 2 {
		t.Errorf("ClientCount = %d, want 2 (distinct by id)", s.ClientCount)
	}
}

func TestSummarize_OrderIndependent(t *testing.T) {
	invoices := []Invoice{
		{TotalHT: amount(t, "10.50"), Status: StatusPaid},
		{TotalHT: amount(t, "20.25"), Status: StatusPending},
		{TotalHT: amount(t, "0.01"), Status: StatusPaid},
		{TotalHT: amount(t, "99.99"), Status: StatusPending},
		{TotalHT: amount(t, "3.33"), Status: StatusPaid},
	}
	clients := []Client{{ID: 1}, {ID: 2}, {ID: 3}}

	want := Summarize(invoices, clients)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]Invoice(nil), invoices...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := Summarize(shuffled, clients)
		if !got.RevenuePaidHT.Equal(want.RevenuePaidHT) ||
			!got.OutstandingPendingHT.Equal(want.OutstandingPendingHT) ||
			got.ClientCount != want.ClientCount {
			t.Fatalf("permutation %d changed the summary: got %+v, want %+v", i, got, want)
		}
	}
}

func TestMarkPaid_Idempotent(t *testing.T) {
	inv := Invoice{Number: "FAC-1", ClientID: 1, Label: "Consulting", Status: StatusPending}

	inv.MarkPaid()
	if inv.Status != StatusPaid {
		t.Fatalf("after MarkPaid, status = %s, want %s", inv.Status, StatusPaid)
	}

	inv.MarkPaid()
	if inv.Status != StatusPaid {
		t.Errorf("second MarkPaid changed status to %s", inv.Status)
	}
}

func TestInvoiceValidate(t *testing.T) {
	valid := Invoice{Number: "FAC-1", ClientID: 1, Label: "Consulting",
		TotalHT: amount(t, "100"), TotalTTC: amount(t, "120")}

	tests := []struct {
		name    string
		mutate  func(*Invoice)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Invoice) {}},
		{name: "missing number", mutate: func(i *Invoice) { i.Number = "" }, wantErr: true},
		{name: "missing client", mutate: func(i *Invoice) { i.ClientID = 0 }, wantErr: true},
		{name: "missing label", mutate: func(i *Invoice) { i.Label = "" }, wantErr: true},
		{name: "negative total", mutate: func(i *Invoice) { i.TotalHT = amount(t, "-1") }, wantErr: true},
		{name: "ttc below ht", mutate: func(i *Invoice) { i.TotalTTC = amount(t, "99") }, wantErr: true},
		{name: "zero tax ok", mutate: func(i *Invoice) { i.TotalTTC = i.TotalHT }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := valid
			tt.mutate(&inv)
			err := inv.Validate()
			if tt.wantErr && err == nil {
				t.Errorf("Validate() = nil, want error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestClientByID(t *testing.T) {
	clients := []Client{{ID: 1, Name: "Acme"}, {ID: 2, Name: "Globex"}}

	if c, ok := ClientByID(clients, 2); !ok || c.Name != "Globex" {
		t.Errorf("ClientByID(2) = %+v, %v; want Globex, true", c, ok)
	}
	if _, ok := ClientByID(clients, 99); ok {
		t.Error("ClientByID(99) found a client that does not exist")
	}
}
