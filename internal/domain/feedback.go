package domain

// Rating bounds for a submission. Zero means "not chosen yet" and is
// never allowed into the store.
const (
	RatingMin = 1
	RatingMax = 5
)

// Fallback values for environment fields the client did not report.
const (
	DefaultSource = "web"
	DefaultDevice = "unknown"
)

// FeedbackRecord is one persisted submission. Records are immutable
// after creation and the collection is append-only. The JSON tags are
// the storage format under the fixed key and the relay payload alike.
type FeedbackRecord struct {
	Timestamp  string `json:"timestamp"`
	EmployeeID string `json:"employeeId"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	OrderCode  string `json:"orderCode"`
	Source     string `json:"source"`
	Device     string `json:"device"`
}

// ValidRating reports whether r is an allowed star rating.
func ValidRating(r int) bool {
	return r >= RatingMin && r <= RatingMax
}
