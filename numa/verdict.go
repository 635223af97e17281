package numa

type Verdict int

const (
	VerdictUnknown = Verdict(0)
	VerdictGood    = Verdict(1)
	VerdictBad     = Verdict(2)
)

func (verdict Verdict) String() string {
	switch verdict {
	default:
		return "unknown"
	case VerdictGood:
		return "Good NUMA allocation"
	case VerdictBad:
		return "Bad NUMA allocation"
	}
}

// Short is the one-word form used in csv output and metric labels.
func (verdict Verdict) Short() string {
	switch verdict {
	default:
		return "unknown"
	case VerdictGood:
		return "good"
	case VerdictBad:
		return "bad"
	}
}

func NewVerdict(input string) Verdict {
	switch input {
	default:
		return VerdictUnknown
	case "Good NUMA allocation", "good":
		return VerdictGood
	case "Bad NUMA allocation", "bad":
		return VerdictBad
	}
}

func (verdict Verdict) MarshalText() ([]byte, error) {
	return []byte(verdict.String()), nil
}

func (verdict *Verdict) UnmarshalText(text []byte) error {
	*verdict = NewVerdict(string(text))
	return nil
}
