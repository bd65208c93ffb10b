// internal/app/features/payments/types.go
package payments

// payRequest is the POST /pay body: a proof-of-transfer image against a bill.
type payRequest struct {
	BillID   string `json:"billId"`
	ImageURL string `json:"imageUrl"`
}

// cancelRequest is the POST /cancel body.
type cancelRequest struct {
	PaymentID string `json:"paymentId"`
}

// verifyRequest is the POST /verify body (admin). Status true approves the
// pending attempt, false rejects it.
type verifyRequest struct {
	BillID string `json:"billId"`
	Status bool   `json:"status"`
}

// paymentReceipt is the payload for pay and verify: what was settled and how
// much the participant transfers (or transferred).
type paymentReceipt struct {
	PaymentID string `json:"payment_id"`
	BillID    string `json:"bill_id"`
	Total     int64  `json:"total_payment"`
}
