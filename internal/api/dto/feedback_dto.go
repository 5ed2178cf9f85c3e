package dto

// FeedbackSubmitRequest payload.
type FeedbackSubmitRequest struct {
	EmployeeID string `json:"employee_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	OrderCode  string `json:"order_code"`
	Source     string `json:"source"`
	Device     string `json:"device"`
}

// FeedbackRecordResponse mirrors one stored record.
type FeedbackRecordResponse struct {
	Timestamp  string `json:"timestamp"`
	EmployeeID string `json:"employee_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	OrderCode  string `json:"order_code"`
	Source     string `json:"source"`
	Device     string `json:"device"`
}

// FeedbackSubmitResponse reports the submission outcome and the
// transient notice the client should show.
type FeedbackSubmitResponse struct {
	Record          FeedbackRecordResponse `json:"record"`
	Relayed         bool                   `json:"relayed"`
	Notice          string                 `json:"notice"`
	NoticeTTLMillis int                    `json:"notice_ttl_ms"`
}

// EnrichedRecordResponse is one record in the admin listing.
type EnrichedRecordResponse struct {
	FeedbackRecordResponse
	Employee string `json:"employee"`
}
