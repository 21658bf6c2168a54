// File: services/intelligence/interface.go
package intelligence

// Intent is the classified purpose of a guest message.
type Intent string

const (
	IntentGreeting    Intent = "greeting"
	IntentFarewell    Intent = "farewell"
	IntentOrderFood   Intent = "order_food"
	IntentBookTable   Intent = "book_table"
	IntentCheckHours  Intent = "check_hours"
	IntentCheckMenu   Intent = "check_menu"
	IntentOrderStatus Intent = "order_status"
	IntentCancel      Intent = "cancel"
	IntentHelp        Intent = "help"
	IntentAffirm      Intent = "affirm"
	IntentDeny        Intent = "deny"
	IntentUnknown     Intent = "unknown"
)

// IntentOrder is the scoring order. When two intents score the same, the one listed first wins.
// order_food precedes order_status, so "where is my order" (one hit each) classifies as
// order_food; order_status needs a second hit such as "order status".
var IntentOrder = []Intent{
	IntentGreeting,
	IntentFarewell,
	IntentOrderFood,
	IntentBookTable,
	IntentCheckHours,
	IntentCheckMenu,
	IntentOrderStatus,
	IntentCancel,
	IntentHelp,
	IntentAffirm,
	IntentDeny,
}

// Confidence policy.
const (
	ConfidencePerHit  = 0.2
	MaxConfidence     = 0.95
	UnknownConfidence = 0.1
)

// Classification is the result of classifying one message.
type Classification struct {
	Intent     Intent   `json:"intent"`
	Confidence float64  `json:"confidence"`
	Entities   Entities `json:"entities"`
}

// Classifier turns a raw message into an intent with its entities.
type Classifier interface {
	Classify(text string) Classification
}
