package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"
)

const testSecret = "whsec_test"

func sign(t *testing.T, secret string, ts int64, payload []byte) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(ts, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyWebhook_ValidSignature(t *testing.T) {
	c := NewClient("sk_test", testSecret, "")
	payload := []byte(`{
		"id": "evt_1",
		"type": "payment_intent.succeeded",
		"data": {"object": {
			"id": "pi_1",
			"status": "succeeded",
			"amount": 1680000,
			"amount_received": 1680000,
			"currency": "inr",
			"latest_charge": "ch_1",
			"metadata": {"booking_id": "7"}
		}}
	}`)

	event, err := c.VerifyWebhook(payload, sign(t, testSecret, time.Now().Unix(), payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Type != "payment_intent.succeeded" || event.Intent == nil {
		t.Fatalf("event not decoded: %+v", event)
	}
	if event.Intent.ID != "pi_1" || event.Intent.Amount != 16800 {
		t.Fatalf("intent not converted from subunits: %+v", event.Intent)
	}
	if event.Intent.Metadata["booking_id"] != "7" {
		t.Fatalf("metadata lost: %+v", event.Intent.Metadata)
	}
}

func TestVerifyWebhook_WrongSecret(t *testing.T) {
	c := NewClient("sk_test", testSecret, "")
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)

	_, err := c.VerifyWebhook(payload, sign(t, "whsec_other", time.Now().Unix(), payload))
	if !errors.Is(err, errSignatureNoHit) {
		t.Fatalf("expected signature mismatch, got %v", err)
	}
}

func TestVerifyWebhook_TamperedPayload(t *testing.T) {
	c := NewClient("sk_test", testSecret, "")
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)
	header := sign(t, testSecret, time.Now().Unix(), payload)

	_, err := c.VerifyWebhook([]byte(`{"id":"evt_2","type":"payment_intent.succeeded"}`), header)
	if !errors.Is(err, errSignatureNoHit) {
		t.Fatalf("expected signature mismatch, got %v", err)
	}
}

func TestVerifyWebhook_StaleTimestamp(t *testing.T) {
	c := NewClient("sk_test", testSecret, "")
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)

	old := time.Now().Add(-10 * time.Minute).Unix()
	_, err := c.VerifyWebhook(payload, sign(t, testSecret, old, payload))
	if !errors.Is(err, errSignatureStale) {
		t.Fatalf("expected stale timestamp error, got %v", err)
	}
}

func TestVerifyWebhook_MalformedHeader(t *testing.T) {
	c := NewClient("sk_test", testSecret, "")

	for _, header := range []string{"", "t=abc,v1=00", "v1=00", "t=123"} {
		if _, err := c.VerifyWebhook([]byte("{}"), header); !errors.Is(err, errNoSignature) {
			t.Fatalf("header %q: expected errNoSignature, got %v", header, err)
		}
	}
}
