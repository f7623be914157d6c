package wizard

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatUSD renders whole dollars with thousands separators, e.g. $100,000.
func FormatUSD(a Amount) string {
	return printer.Sprintf("$%d", a.Value.IntPart())
}

// Explanation is the full-screen text shown for a terminal status.
type Explanation struct {
	Title string
	Body  string
}

func Explain(s Status, a Answers) Explanation {
	switch s {
	case StatusDisqualifiedSelfExcluded:
		return Explanation{
			Title: "Eligibility Issue: Self-Exclusion",
			Body: "Due to a recent self-exclusion or account ban, you are currently not eligible to proceed " +
				"with the VIP transfer. If your circumstances change, please feel free to use this assistant again later.",
		}
	case StatusDisqualifiedPlatform:
		return Explanation{
			Title: "Eligibility Issue: Platform Not Supported",
			Body: "We currently only support VIP transfers from specific platforms. Your selection is not on " +
				"the list of accepted sites. Please contact support directly if you have questions.",
		}
	case StatusDisqualifiedWagerLow:
		source := "Your provided wager of " + FormatUSD(a.TotalWagered)
		if a.Platform == PlatformStake && a.Attestation.Status == AttestationSuccess {
			source = "Your verified wager of " + FormatUSD(a.Attestation.Wager)
		}

		return Explanation{
			Title: "Eligibility Issue: Low Wager",
			Body: source + " does not meet the minimum requirement of " + FormatUSD(NewAmount(MinWagerTotal)) +
				". Please ensure your information is accurate or contact support if you believe there's an error.",
		}
	case StatusUserUnavailable:
		return Explanation{
			Title: "Application Paused",
			Body: "Understood. Please return when you are available to complete the application process. " +
				"Your progress is not saved, so you will need to start over.",
		}
	}

	return Explanation{}
}
