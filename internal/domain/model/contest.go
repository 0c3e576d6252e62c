package model

import (
	"time"

	"gorm.io/datatypes"
)

// Problem is one problem covered by a class or contest.
type Problem struct {
	ProblemName string          `json:"problemName" validate:"required"`
	ProblemLink *string         `json:"problemLink,omitempty"`
	Platform    Platform        `json:"platform,omitempty" validate:"omitempty,enum"`
	Category    ProblemCategory `json:"category,omitempty" validate:"omitempty,enum"`
	Tags        []string        `json:"tags,omitempty"`
}

// ClassContest is a class session or contest run by the community.
type ClassContest struct {
	Record
	Date           string                       `json:"date" validate:"required,datetime=2006-01-02"`
	ClassName      string                       `json:"className" validate:"required"`
	ContentCovered string                       `json:"contentCovered"`
	Problems       datatypes.JSONSlice[Problem] `json:"problems" validate:"dive"`
	ClassNotes     *string                      `json:"classNotes,omitempty"`
	InstructorName *string                      `json:"instructorName,omitempty"`
	Duration       *int                         `json:"duration,omitempty" validate:"omitempty,min=0"`
	IsContest      bool                         `json:"isContest"`
	ContestEndTime *time.Time                   `json:"contestEndTime,omitempty"`
}

// Certificate is a completion or achievement certificate for a member.
// Blank member and class names are filled from the referenced records on save.
type Certificate struct {
	Record
	MemberID            string          `json:"memberId" gorm:"index" validate:"required"`
	MemberName          string          `json:"memberName"`
	ClassID             string          `json:"classId" validate:"required"`
	ClassName           string          `json:"className"`
	Score               *float64        `json:"score,omitempty"`
	CompletionDate      string          `json:"completionDate" validate:"required,datetime=2006-01-02"`
	InstructorName      *string         `json:"instructorName,omitempty"`
	InstructorSignature *string         `json:"instructorSignature,omitempty"`
	CertificateType     CertificateType `json:"certificateType" validate:"required,enum"`
	CertificateURL      *string         `json:"certificateUrl,omitempty"`
	IsIssued            bool            `json:"isIssued"`
}

// TableName keeps class contests in a short table.
func (ClassContest) TableName() string { return "classes" }
