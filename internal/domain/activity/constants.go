package activity

// Visit outcomes, as the mobile client reports them.
const (
	OutcomeInterested   = "Interested"
	OutcomeInEvaluation = "In Evaluation"
	OutcomeSaleClosed   = "Sale Closed"
	OutcomeNoInterest   = "Not Interested"
)

var validOutcomes = map[string]bool{
	OutcomeInterested:   true,
	OutcomeInEvaluation: true,
	OutcomeSaleClosed:   true,
	OutcomeNoInterest:   true,
}

func ValidOutcome(s string) bool {
	return s == "" || validOutcomes[s]
}
