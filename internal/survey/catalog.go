package survey

// QuestionType distinguishes single-select from multi-select questions.
type QuestionType string

const (
	// SingleSelect questions hold exactly one choice.
	SingleSelect QuestionType = "single"
	// MultiSelect questions hold any non-empty subset of the options.
	MultiSelect QuestionType = "multiple"
)

// Question is one entry of the static catalog. The catalog is read-only and
// shared by the wizard client and the advisor's context rendering.
type Question struct {
	ID      string       `json:"id"`
	Prompt  string       `json:"question"`
	Type    QuestionType `json:"type"`
	Options []string     `json:"options"`
	Label   string       `json:"-"` // short label for advisor context lines
}

// Questions is the fixed onboarding questionnaire, in presentation order.
var Questions = []Question{
	{
		ID:     "employment",
		Prompt: "What's your current employment status?",
		Type:   SingleSelect,
		Options: []string{
			"Full-time employed",
			"Part-time / gig worker",
			"Student",
			"Between jobs",
			"Self-employed",
			"Retired",
		},
		Label: "Employment Status",
	},
	{
		ID:     "finances",
		Prompt: "How would you describe your monthly finances?",
		Type:   SingleSelect,
		Options: []string{
			"I have money left over after expenses",
			"I break even most months",
			"I struggle to cover basic expenses",
			"I rely on credit cards to get by",
			"I'm not sure / it varies a lot",
		},
		Label: "Monthly Finances",
	},
	{
		ID:     "debt",
		Prompt: "Do you have any of the following? (Select all that apply)",
		Type:   MultiSelect,
		Options: []string{
			"Credit card debt",
			"Student loans",
			"Car loan",
			"Medical debt",
			"Payday loans",
			"No debt",
			"Prefer not to say",
		},
		Label: "Debt Status",
	},
	{
		ID:     "emergency_savings",
		Prompt: "Do you have emergency savings?",
		Type:   SingleSelect,
		Options: []string{
			"Yes, 3+ months of expenses",
			"Yes, but less than $1,000",
			"No, but I'm working on it",
			"No, and I don't know where to start",
		},
		Label: "Emergency Savings",
	},
	{
		ID:     "financial_knowledge",
		Prompt: "How confident are you explaining these terms to a friend? APR, credit score, compound interest",
		Type:   SingleSelect,
		Options: []string{
			"Very confident",
			"Somewhat confident",
			"Not confident",
			"Never heard of these",
		},
		Label: "Financial Knowledge",
	},
	{
		ID:     "budget_experience",
		Prompt: "Have you ever created a budget?",
		Type:   SingleSelect,
		Options: []string{
			"Yes, and I stick to it",
			"Yes, but I don't follow it",
			"I've tried but it felt too complicated",
			"No, never",
		},
		Label: "Budgeting Experience",
	},
	{
		ID:     "learning_sources",
		Prompt: "Where do you currently learn about money? (Select all)",
		Type:   MultiSelect,
		Options: []string{
			"Family/friends",
			"Social media (TikTok, YouTube)",
			"School/formal education",
			"Trial and error",
			"I don't—I'm here to start",
		},
		Label: "Learning Sources",
	},
	{
		ID:     "financial_worry",
		Prompt: "What's your biggest financial worry right now?",
		Type:   SingleSelect,
		Options: []string{
			"Not having enough for emergencies",
			"Credit card debt piling up",
			"Not understanding where my money goes",
			"Never being able to buy a home / big purchase",
			"Retirement feels impossible",
			"I don't have a specific worry",
		},
		Label: "Biggest Financial Worry",
	},
	{
		ID:     "financial_success",
		Prompt: "What would financial success look like for you in 6 months?",
		Type:   SingleSelect,
		Options: []string{
			"Having $500-$1000 saved for emergencies",
			"Paying off a credit card",
			"Sticking to a budget",
			"Understanding my credit score",
			"Feeling less stressed about money",
			"Just learning the basics",
		},
		Label: "Six-Month Goal",
	},
}

// LabelFor returns the human-readable label for a question ID, falling back
// to the raw identifier for unknown IDs.
func LabelFor(questionID string) string {
	for _, q := range Questions {
		if q.ID == questionID {
			if q.Label != "" {
				return q.Label
			}
			return q.ID
		}
	}
	return questionID
}
