package dto

type GoalOutput struct {
	Month string `json:"month"`
	Text  string `json:"text"`
}

type SetGoalInput struct {
	Month string `json:"month"`
	Text  string `json:"text"`
}
