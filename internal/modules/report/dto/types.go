package dto

type RateOutput struct {
	Key     string  `json:"key"`
	Done    int     `json:"done"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

type SummaryOutput struct {
	Overall  RateOutput   `json:"overall"`
	Months   []RateOutput `json:"months"`
	Subjects []RateOutput `json:"subjects"`
}

type ExportInput struct {
	Full bool   `json:"full"`
	Dir  string `json:"dir,omitempty"`
}

type ExportOutput struct {
	FileName string `json:"file_name"`
	Path     string `json:"path,omitempty"`
	Rows     int    `json:"rows"`
	Content  []byte `json:"-"`
}

type MonthNoteInput struct {
	Month string `json:"month"`
	Dir   string `json:"dir,omitempty"`
}

type MonthNoteOutput struct {
	Month   string `json:"month"`
	Path    string `json:"path,omitempty"`
	Content string `json:"content"`
}
