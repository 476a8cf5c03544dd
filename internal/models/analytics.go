package models

// ClassProgress summarizes activity in one class.
type ClassProgress struct {
	EnrolledCount   int64 `json:"enrolledCount"`
	AssignmentCount int64 `json:"assignmentCount"`
	SubmissionCount int64 `json:"submissionCount"`
}

// PlatformStats are the platform-wide totals shown on the landing page.
type PlatformStats struct {
	TotalUsers       int64 `json:"totalUsers"`
	TotalClasses     int64 `json:"totalClasses"`
	TotalEnrollments int64 `json:"totalEnrollments"`
}

// Percentiles is a generic struct for storing percentiles for any distribution of data.
type Percentiles struct {
	P50 float64 `json:"p50"`
	P90 float64 `json:"p90"`
}

// RatingSummary describes the distribution of feedback ratings for a class.
type RatingSummary struct {
	ClassID string      `json:"classId"`
	Count   int         `json:"count"`
	Average float64     `json:"average"`
	Ratings Percentiles `json:"percentiles"`
}
