package model

// NewsItem is a headline row from the intranet news list.
type NewsItem struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Link    string `json:"link"`
	Date    string `json:"date"`
}

// CalendarEvent is one row from the shared calendar list.
type CalendarEvent struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Location string `json:"location"`
}

// Partner is one row from the partner directory list.
type Partner struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Contact  string `json:"contact"`
	Website  string `json:"website"`
}
