package api

type CourseMenuEntry struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Title string `json:"title"`
	Day   string `json:"day"`
}

type CourseResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Day       string `json:"day"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Teacher   string `json:"teacher,omitempty"`
	Room      string `json:"room,omitempty"`
}

type ConflictsResponse struct {
	Reference CourseResponse   `json:"reference"`
	Conflicts []CourseResponse `json:"conflicts"`
}
