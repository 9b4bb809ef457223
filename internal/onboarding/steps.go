// Package onboarding drives the four-step setup wizard shown after
// registration. Step progress is stored on the user's profile row.
package onboarding

// Step is one fixed wizard step.
type Step struct {
	ID          string `json:"id"`
	StepNumber  int    `json:"step_number"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// StepView is a Step decorated with the user's progress.
type StepView struct {
	Step
	IsCompleted bool `json:"is_completed"`
	IsActive    bool `json:"is_active"`
}

// The wizard steps, in order. TotalSteps is derived from this list.
var steps = []Step{
	{
		ID:          "company-profile",
		StepNumber:  1,
		Title:       "Company Profile",
		Description: "Set up your company information, preferences, and hiring goals to personalize your SmartHire AI experience.",
		Icon:        "building",
	},
	{
		ID:          "first-job-description",
		StepNumber:  2,
		Title:       "First Job Description",
		Description: "Create your first job description to help our AI understand your hiring criteria and requirements.",
		Icon:        "file-text",
	},
	{
		ID:          "upload-cv-demo",
		StepNumber:  3,
		Title:       "Upload CV Demo",
		Description: "Upload a sample CV to see our AI-powered matching and analysis capabilities in action.",
		Icon:        "upload",
	},
	{
		ID:          "first-ai-match",
		StepNumber:  4,
		Title:       "First AI Match",
		Description: "Experience your first AI-powered candidate match and see detailed compatibility insights.",
		Icon:        "zap",
	},
}

// TotalSteps is the number of wizard steps.
const TotalSteps = 4

// Steps returns a copy of the step catalog.
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

func stepByID(id string) (Step, bool) {
	for _, s := range steps {
		if s.ID == id {
			return s, true
		}
	}
	return Step{}, false
}
