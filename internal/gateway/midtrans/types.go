package midtrans

// Transaction statuses the provider reports. Anything outside this list is
// treated as metadata-only by the reconciliation engine.
const (
	StatusCapture    = "capture"
	StatusSettlement = "settlement"
	StatusPending    = "pending"
	StatusCancel     = "cancel"
	StatusDeny       = "deny"
	StatusExpire     = "expire"

	FraudAccept    = "accept"
	FraudChallenge = "challenge"
)

// TransactionStatus is the provider's view of one transaction. The same shape
// arrives via the webhook notification and via the status query endpoint;
// order_id carries our order ID, which we use as the transaction reference.
type TransactionStatus struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	GrossAmount       string `json:"gross_amount"`
	StatusCode        string `json:"status_code"`
	TransactionID     string `json:"transaction_id"`
}

// Settled reports whether the money is confirmed: a settlement, or a capture
// that passed the fraud check.
func (t TransactionStatus) Settled() bool {
	if t.TransactionStatus == StatusSettlement {
		return true
	}
	return t.TransactionStatus == StatusCapture && t.FraudStatus == FraudAccept
}

// Failed reports whether the provider closed the transaction without payment.
func (t TransactionStatus) Failed() bool {
	switch t.TransactionStatus {
	case StatusCancel, StatusDeny, StatusExpire:
		return true
	}
	return false
}
