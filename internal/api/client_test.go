package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"linkvault/internal/ledger"
)

func authedSession() *Session {
	return &Session{Access: "access-token", Refresh: "refresh-token"}
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/token/" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var creds map[string]string
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatalf("decode credentials: %v", err)
		}
		if creds["username"] != "alice" || creds["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access": "a1", "refresh": "r1"})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	sess, err := c.Login(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Access != "a1" || sess.Refresh != "r1" {
		t.Errorf("session = %+v, want access a1 / refresh r1", sess)
	}

	if _, err := New(srv.URL, nil).Login(context.Background(), "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("bad password: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestBearerHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]ledger.Todo{})
	}))
	defer srv.Close()

	c := New(srv.URL, authedSession())
	if _, err := c.ListTodos(context.Background()); err != nil {
		t.Fatalf("ListTodos: %v", err)
	}
	if gotAuth != "Bearer access-token" {
		t.Errorf("Authorization = %q, want Bearer access-token", gotAuth)
	}
}

func TestSessionExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, authedSession())
	if _, err := c.ListInvoices(context.Background()); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("401 on authed call: err = %v, want ErrSessionExpired", err)
	}
}

func TestNoSession(t *testing.T) {
	c := New("http://127.0.0.1:0", nil)
	if _, err := c.ListInvoices(context.Background()); !errors.Is(err, ErrNoSession) {
		t.Errorf("err = %v, want ErrNoSession", err)
	}
}

func TestRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"number":["invoice with this number already exists."]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, authedSession())
	_, err := c.CreateClient(context.Background(), ledger.Client{Name: "Acme"})

	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("err = %v, want *RemoteError", err)
	}
	if remote.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", remote.Status)
	}
	if remote.Body == "" {
		t.Error("Body should carry the response detail")
	}
}

func TestListInvoices_DecodesDecimalStrings(t *testing.T) {
	// The remote service serializes decimal fields as strings.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"number":"FAC-1","client":2,"label":"Consulting",
			"total_ht":"100.00","total_ttc":"120.00","status":"PAID","created_at":"2026-03-15T10:00:00Z"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, authedSession())
	invoices, err := c.ListInvoices(context.Background())
	if err != nil {
		t.Fatalf("ListInvoices: %v", err)
	}
	if len(invoices) != 1 {
		t.Fatalf("got %d invoices, want 1", len(invoices))
	}
	inv := invoices[0]
	if got := inv.TotalHT.StringFixed(2); got != "100.00" {
		t.Errorf("TotalHT = %s, want 100.00", got)
	}
	if inv.Status != ledger.StatusPaid {
		t.Errorf("Status = %s, want PAID", inv.Status)
	}
}

func TestCreateInvoice_ReturnsServerRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var inv ledger.Invoice
		if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
			t.Fatalf("decode invoice: %v", err)
		}
		inv.ID = 12
		json.NewEncoder(w).Encode(inv)
	}))
	defer srv.Close()

	c := New(srv.URL, authedSession())
	created, err := c.CreateInvoice(context.Background(), ledger.Invoice{
		Number: "FAC-1", ClientID: 2, Label: "Consulting", Status: ledger.StatusPending,
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if created.ID != 12 {
		t.Errorf("created.ID = %d, want server-assigned 12", created.ID)
	}
}

func TestCreateInvoice_ValidatesBeforeRemoteCall(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := New(srv.URL, authedSession())
	_, err := c.CreateInvoice(context.Background(), ledger.Invoice{Number: "FAC-1"})
	if !errors.Is(err, ledger.ErrInvalidInvoice) {
		t.Errorf("err = %v, want ErrInvalidInvoice", err)
	}
	if called {
		t.Error("invalid invoice reached the remote service")
	}
}

func TestMarkInvoicePaid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/billing/invoices/7/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var patch map[string]string
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			t.Fatalf("decode patch: %v", err)
		}
		if patch["status"] != "PAID" {
			t.Errorf("patch = %v, want status PAID", patch)
		}
		w.Write([]byte(`{"id":7,"number":"FAC-7","client":1,"label":"Consulting",
			"total_ht":"10.00","total_ttc":"12.00","status":"PAID"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, authedSession())
	updated, err := c.MarkInvoicePaid(context.Background(), 7)
	if err != nil {
		t.Fatalf("MarkInvoicePaid: %v", err)
	}
	if !updated.Paid() {
		t.Errorf("updated.Status = %s, want PAID", updated.Status)
	}
}

func TestLedger_FetchesBothCollections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/billing/invoices/":
			w.Write([]byte(`[{"id":1,"number":"FAC-1","client":1,"label":"A","total_ht":"1.00","total_ttc":"1.20","status":"PENDING"}]`))
		case "/billing/clients/":
			w.Write([]byte(`[{"id":1,"name":"Acme"},{"id":2,"name":"Globex"}]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, authedSession())
	invoices, clients, err := c.Ledger(context.Background())
	if err != nil {
		t.Fatalf("Ledger: %v", err)
	}
	if len(invoices) != 1 || len(clients) != 2 {
		t.Errorf("got %d invoices, %d clients; want 1, 2", len(invoices), len(clients))
	}
}

func TestSetTodoCompleted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/todos/3/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"id":3,"title":"Read article","completed":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, authedSession())
	updated, err := c.SetTodoCompleted(context.Background(), 3, true)
	if err != nil {
		t.Fatalf("SetTodoCompleted: %v", err)
	}
	if !updated.Completed {
		t.Error("updated.Completed = false, want true")
	}
}

func TestDeleteTodo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/todos/3/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, authedSession())
	if err := c.DeleteTodo(context.Background(), 3); err != nil {
		t.Fatalf("DeleteTodo: %v", err)
	}
}

func TestRefreshToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/token/refresh/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["refresh"] != "refresh-token" {
			t.Errorf("refresh = %q, want refresh-token", body["refresh"])
		}
		json.NewEncoder(w).Encode(map[string]string{"access": "a2"})
	}))
	defer srv.Close()

	c := New(srv.URL, authedSession())
	sess, err := c.RefreshToken(context.Background())
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	if sess.Access != "a2" {
		t.Errorf("Access = %q, want a2", sess.Access)
	}
	if sess.Refresh != "refresh-token" {
		t.Errorf("Refresh = %q, should be kept when the response omits it", sess.Refresh)
	}
}
