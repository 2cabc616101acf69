package dto

// WeekOutput is the transport shape of one schedule row.
type WeekOutput struct {
	Month          string `json:"month"`
	Index          int    `json:"index"`
	WeekLabel      string `json:"week_label"`
	Subject        string `json:"subject"`
	StartDate      string `json:"start_date"`
	PlanText       string `json:"plan_text"`
	SampleQuestion string `json:"sample_question"`
	Done           bool   `json:"done"`
}

// UpdateWeekInput edits one row by Index. Nil fields stay as they are.
type UpdateWeekInput struct {
	Index          int     `json:"index"`
	Subject        *string `json:"subject,omitempty"`
	PlanText       *string `json:"plan_text,omitempty"`
	SampleQuestion *string `json:"sample_question,omitempty"`
	Done           *bool   `json:"done,omitempty"`
}

type ReindexOutput struct {
	Weeks int `json:"weeks"`
}
