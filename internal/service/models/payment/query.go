package payment

// QueryPaymentsModel represents filter parameters for querying payments.
type QueryPaymentsModel struct {
	Statuses []Status `json:"statuses,omitempty"`
	OrderIds []int64  `json:"orderIds,omitempty"`
	Limit    int      `json:"limit,omitempty"`
	Offset   int      `json:"offset,omitempty"`
}
