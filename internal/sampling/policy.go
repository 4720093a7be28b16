package sampling

// Reason identifies why a generation loop stopped.
type Reason int

const (
	// ReasonIncomplete is the zero value. It marks a result whose loop
	// aborted before any stop rule fired, such as a scorer failure; the
	// token suffix is partial.
	ReasonIncomplete Reason = iota
	ReasonBudgetExhausted
	ReasonEndToken
	ReasonLengthCap
	ReasonCancelled
)

func (r Reason) String() string {
	switch r {
	case ReasonBudgetExhausted:
		return "budget-exhausted"
	case ReasonEndToken:
		return "end-token"
	case ReasonLengthCap:
		return "length-cap"
	case ReasonCancelled:
		return "cancelled"
	default:
		return "incomplete"
	}
}

// StopPolicy applies the stop rules in priority order: exhausted budget,
// then end token, then length cap. The first rule to fire decides the
// reason; after that the policy is terminal and later checks are ignored.
type StopPolicy struct {
	endToken int
	maxNew   int
	reason   Reason
	halted   bool
}

func NewStopPolicy(endToken, maxNew int) *StopPolicy {
	return &StopPolicy{endToken: endToken, maxNew: maxNew}
}

// BudgetExhausted halts when the remaining confidence is negative. A
// balance of exactly zero continues.
func (p *StopPolicy) BudgetExhausted(remaining float64) bool {
	if !p.halted && remaining < 0 {
		p.halt(ReasonBudgetExhausted)
	}
	return p.halted
}

// EndToken halts when id is the end-of-text token.
func (p *StopPolicy) EndToken(id int) bool {
	if !p.halted && id == p.endToken {
		p.halt(ReasonEndToken)
	}
	return p.halted
}

// LengthReached halts once the generated count meets the cap.
func (p *StopPolicy) LengthReached(generated int) bool {
	if !p.halted && generated >= p.maxNew {
		p.halt(ReasonLengthCap)
	}
	return p.halted
}

// Cancelled records a clean context-driven stop.
func (p *StopPolicy) Cancelled() {
	if !p.halted {
		p.halt(ReasonCancelled)
	}
}

func (p *StopPolicy) halt(r Reason) {
	p.halted = true
	p.reason = r
}

// Halted reports whether any rule has fired.
func (p *StopPolicy) Halted() bool { return p.halted }

// Reason returns the first rule that fired, or ReasonIncomplete while the
// policy is still live.
func (p *StopPolicy) Reason() Reason { return p.reason }
