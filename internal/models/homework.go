package models

// Status is the review state of a homework as reported by Practicum.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// Homework is a single review record from the homework_statuses endpoint.
type Homework struct {
	ID              int64  `json:"id"`
	Name            string `json:"homework_name"`
	Status          Status `json:"status"`
	ReviewerComment string `json:"reviewer_comment"`
	LessonName      string `json:"lesson_name"`
	DateUpdated     string `json:"date_updated"`
}

// StatusResponse is a validated homework_statuses payload.
type StatusResponse struct {
	Homeworks   []Homework `json:"homeworks"`
	CurrentDate int64      `json:"current_date"`
}
