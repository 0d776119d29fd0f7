package plan

const (
	StateDraft    = "Draft"
	StateApproved = "Approved"
	StateClosed   = "Closed"
)

const (
	ActivityVisit         = "Visit"
	ActivityAssistedVisit = "Assisted Visit"
	ActivityCall          = "Call"
	ActivityEmail         = "Email"
	ActivityQuotation     = "Quotation"
	ActivitySale          = "Sale"
)

var validStates = map[string]bool{
	StateDraft:    true,
	StateApproved: true,
	StateClosed:   true,
}

var validActivityTypes = map[string]bool{
	ActivityVisit:         true,
	ActivityAssistedVisit: true,
	ActivityCall:          true,
	ActivityEmail:         true,
	ActivityQuotation:     true,
	ActivitySale:          true,
}

var validWeekdays = map[string]bool{
	"Monday":    true,
	"Tuesday":   true,
	"Wednesday": true,
	"Thursday":  true,
	"Friday":    true,
	"Saturday":  true,
}

// ValidState reports whether s is one of the three lifecycle states. Any
// transition between valid states is allowed; there is no forward-only rule.
func ValidState(s string) bool {
	return validStates[s]
}

func ValidActivityType(s string) bool {
	return validActivityTypes[s]
}

func ValidWeekday(s string) bool {
	return validWeekdays[s]
}
