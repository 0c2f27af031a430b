package dto

// PaymentLinkRequest customizes a generated UPI link, amount in rupees.
type PaymentLinkRequest struct {
	Amount      float64 `json:"amount,omitempty"`
	Description string  `json:"description,omitempty"`
}

// PaymentLinkResponse carries the upi://pay deep link.
type PaymentLinkResponse struct {
	PaymentLink string  `json:"paymentLink"`
	Amount      float64 `json:"amount"`
}

// PaymentConfirmRequest reports a UPI transaction result.
type PaymentConfirmRequest struct {
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
	Success       bool    `json:"success"`
}

// PaymentStatusResponse reports an order's payment state.
type PaymentStatusResponse struct {
	OrderID       string  `json:"orderId"`
	PaymentStatus string  `json:"paymentStatus"`
	TotalAmount   float64 `json:"totalAmount"`
}

// PaymentHistoryResponse lists the caller's orders with the paid aggregate.
type PaymentHistoryResponse struct {
	Orders      []OrderResponse `json:"orders"`
	Total       int             `json:"total"`
	TotalPages  int             `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
	TotalPaid   float64         `json:"totalPaid"`
}
