package dto

type TopicPerformanceDTO struct {
	Topic        string  `json:"topic"`
	AttemptCount int     `json:"attemptCount"`
	AverageScore float64 `json:"averageScore"` // percentage 0-100
}

type StudentProgressResponse struct {
	AttemptCount int                   `json:"attemptCount"`
	AverageScore float64               `json:"averageScore"`
	RecentScores []float64             `json:"recentScores"`
	WeakTopics   []string              `json:"weakTopics"`
	StrongTopics []string              `json:"strongTopics"`
	Topics       []TopicPerformanceDTO `json:"topics"`
}

type StudentOverviewDTO struct {
	StudentId    string  `json:"studentId"`
	AttemptCount int     `json:"attemptCount"`
	AverageScore float64 `json:"averageScore"`
}

type ClassOverviewResponse struct {
	StudentCount int                   `json:"studentCount"`
	AttemptCount int                   `json:"attemptCount"`
	AverageScore float64               `json:"averageScore"`
	Topics       []TopicPerformanceDTO `json:"topics"`
	Students     []StudentOverviewDTO  `json:"students"`
}
