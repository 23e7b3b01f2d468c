package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"stayinn/internal/modules/payment"
)

// signatureTolerance bounds how old a signed timestamp may be, which limits
// replay of captured webhook requests.
const signatureTolerance = 5 * time.Minute

var (
	errNoSignature    = errors.New("missing or malformed Stripe-Signature header")
	errSignatureStale = errors.New("webhook timestamp outside tolerance")
	errSignatureNoHit = errors.New("no matching v1 signature")
)

// VerifyWebhook checks the Stripe-Signature header against the raw payload
// and decodes the event. The header carries `t=<unix>,v1=<hex hmac>` pairs;
// the HMAC-SHA256 is computed over "<t>.<payload>" with the endpoint secret.
func (c *Client) VerifyWebhook(payload []byte, sigHeader string) (*payment.Event, error) {
	ts, signatures, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return nil, err
	}
	if d := time.Since(time.Unix(ts, 0)); d > signatureTolerance || d < -signatureTolerance {
		return nil, errSignatureStale
	}

	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write([]byte(strconv.FormatInt(ts, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := mac.Sum(nil)

	matched := false
	for _, sig := range signatures {
		decoded, decErr := hex.DecodeString(sig)
		if decErr == nil && hmac.Equal(decoded, expected) {
			matched = true
			break
		}
	}
	if !matched {
		return nil, errSignatureNoHit
	}

	var raw struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Data struct {
			Object json.RawMessage `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("malformed event payload: %w", err)
	}

	event := &payment.Event{ID: raw.ID, Type: raw.Type}
	if strings.HasPrefix(raw.Type, "payment_intent.") && len(raw.Data.Object) > 0 {
		var p intentPayload
		if err := json.Unmarshal(raw.Data.Object, &p); err != nil {
			return nil, fmt.Errorf("malformed intent object: %w", err)
		}
		event.Intent = p.toIntent()
	}
	return event, nil
}

func parseSignatureHeader(header string) (ts int64, signatures []string, err error) {
	if header == "" {
		return 0, nil, errNoSignature
	}
	for _, pair := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			ts, err = strconv.ParseInt(v, 10, 64)
			if err != nil {
				return 0, nil, errNoSignature
			}
		case "v1":
			signatures = append(signatures, v)
		}
	}
	if ts == 0 || len(signatures) == 0 {
		return 0, nil, errNoSignature
	}
	return ts, signatures, nil
}
