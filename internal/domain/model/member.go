package model

import (
	"time"

	"gorm.io/datatypes"
)

// Member is a community member tracked by the contest tracker. The rollup
// fields are denormalised copies; statistics are always recomputed from
// submissions.
type Member struct {
	Record
	Name               string                      `json:"name" validate:"required"`
	Username           string                      `json:"username" gorm:"index" validate:"required"`
	Email              string                      `json:"email" validate:"required,email"`
	ProfileImage       *string                     `json:"profileImage,omitempty"`
	ClassesJoined      datatypes.JSONSlice[string] `json:"classesJoined,omitempty"`
	LeetcodeUsername   *string                     `json:"leetcodeUsername,omitempty"`
	CodeforcesUsername *string                     `json:"codeforcesUsername,omitempty"`
	GfgUsername        *string                     `json:"gfgUsername,omitempty"`
	TotalScore         float64                     `json:"totalScore"`
	ProblemsSolved     int                         `json:"problemsSolved" validate:"min=0"`
	Accuracy           int                         `json:"accuracy" validate:"min=0,max=100"`
}

// Submission is one solution attempt by a member.
type Submission struct {
	Record
	ClassID        *string    `json:"classId,omitempty" gorm:"index"`
	MemberID       string     `json:"memberId" gorm:"index" validate:"required"`
	MemberUsername string     `json:"memberUsername"`
	ProblemName    string     `json:"problemName" validate:"required"`
	ProblemLink    *string    `json:"problemLink,omitempty"`
	Verdict        Verdict    `json:"verdict" validate:"required,enum"`
	Language       Language   `json:"language" validate:"omitempty,enum"`
	CodeSubmitted  *string    `json:"codeSubmitted,omitempty"`
	SubmissionTime *time.Time `json:"submissionTime,omitempty"`
	Attempts       int        `json:"attempts" validate:"min=0"`
	TimeTaken      *float64   `json:"timeTaken,omitempty" validate:"omitempty,min=0"`
	Score          *float64   `json:"score,omitempty"`
	Platform       *string    `json:"platform,omitempty"`
	IsLatestAC     bool       `json:"isLatestAC"`
}

// ApplyDefaults fills schema defaults.
func (s *Submission) ApplyDefaults() {
	if s.Attempts == 0 {
		s.Attempts = 1
	}
}

// Accepted reports whether the submission was judged AC.
func (s Submission) Accepted() bool { return s.Verdict == VerdictAccepted }

// Points returns the submission score, 0 when absent.
func (s Submission) Points() float64 {
	if s.Score == nil {
		return 0
	}
	return *s.Score
}

// Duration returns the recorded solve time, 0 when absent.
func (s Submission) Duration() float64 {
	if s.TimeTaken == nil {
		return 0
	}
	return *s.TimeTaken
}
