package payment

type CreateIntentRequest struct {
	BookingID int64 `json:"booking_id" binding:"required"`
}

type CreateIntentResponse struct {
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret,omitempty"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type ConfirmPaymentRequest struct {
	BookingID int64  `json:"booking_id" binding:"required"`
	IntentID  string `json:"intent_id" binding:"required"`
}

type RefundRequest struct {
	BookingID int64  `json:"booking_id" binding:"required"`
	Reason    string `json:"reason" binding:"max=500"`
}

// GatewayResult is the normalized outcome of a payment attempt, fed to
// ApplyGatewayResult from both the client confirm path and the webhook.
type GatewayResult struct {
	IntentID      string
	Status        string
	AmountPaid    int64
	Method        string
	TransactionID string
}

const intentSucceeded = "succeeded"

func (r GatewayResult) succeeded() bool { return r.Status == intentSucceeded }
