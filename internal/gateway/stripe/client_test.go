package stripe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func refundServer(t *testing.T, keys *[]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/refunds" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		*keys = append(*keys, r.Header.Get("Idempotency-Key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"re_1","status":"succeeded","amount":560000}`))
	}))
}

func TestRefund_RepeatedCallsReuseIdempotencyKey(t *testing.T) {
	var keys []string
	srv := refundServer(t, &keys)
	defer srv.Close()

	c := NewClient("sk_test", testSecret, srv.URL)
	for i := 0; i < 2; i++ {
		res, err := c.Refund(context.Background(), "pi_1", 5600, "guest cancelled")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ID != "re_1" || res.Amount != 5600 {
			t.Fatalf("refund not converted from subunits: %+v", res)
		}
	}

	if len(keys) != 2 || keys[0] == "" {
		t.Fatalf("expected two keyed requests, got %v", keys)
	}
	if keys[0] != keys[1] {
		t.Fatalf("same refund produced different idempotency keys: %v", keys)
	}
}

func TestRefund_DistinctRefundsGetDistinctKeys(t *testing.T) {
	var keys []string
	srv := refundServer(t, &keys)
	defer srv.Close()

	c := NewClient("sk_test", testSecret, srv.URL)
	if _, err := c.Refund(context.Background(), "pi_1", 5600, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.Refund(context.Background(), "pi_1", 2800, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.Refund(context.Background(), "pi_2", 5600, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := map[string]bool{}
	for _, k := range keys {
		if seen[k] {
			t.Fatalf("key reused across distinct refunds: %v", keys)
		}
		seen[k] = true
	}
}

func TestCreateIntent_SendsSubunitsAndFreshKey(t *testing.T) {
	var keys []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("bad form: %v", err)
		}
		if got := r.PostForm.Get("amount"); got != "1680000" {
			t.Errorf("amount not converted to subunits: %s", got)
		}
		if got := r.PostForm.Get("metadata[booking_id]"); got != "7" {
			t.Errorf("metadata lost: %s", got)
		}
		keys = append(keys, r.Header.Get("Idempotency-Key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_1","client_secret":"pi_1_secret","status":"requires_payment_method","amount":1680000,"currency":"inr"}`))
	}))
	defer srv.Close()

	c := NewClient("sk_test", testSecret, srv.URL)
	for i := 0; i < 2; i++ {
		intent, err := c.CreateIntent(context.Background(), 16800, "inr", map[string]string{"booking_id": "7"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if intent.ID != "pi_1" || intent.Amount != 16800 {
			t.Fatalf("intent not decoded: %+v", intent)
		}
	}

	if len(keys) != 2 || keys[0] == "" || keys[0] == keys[1] {
		t.Fatalf("expected fresh key per intent, got %v", keys)
	}
}
