package model

// Suggestions is the structured advice returned by the completion service
type Suggestions struct {
	PrimarySuggestion    string   `json:"primarySuggestion"`
	SecondarySuggestions []string `json:"secondarySuggestions"`
}

// FallbackSuggestions returns the fixed advice used whenever the completion service fails.
// Every caller must use this function so the payload stays identical.
func FallbackSuggestions() *Suggestions {
	return &Suggestions{
		PrimarySuggestion: "Review and optimize your current testing processes",
		SecondarySuggestions: []string{
			"Increase test automation coverage",
			"Implement more rigorous defect tracking",
		},
	}
}

// GeneratedTestCase is a test case draft produced from user stories or code
type GeneratedTestCase struct {
	Description     string `json:"test_case_description"`
	Preconditions   string `json:"preconditions"`
	TestSteps       string `json:"test_steps"`
	ExpectedResults string `json:"expected_results"`
}
