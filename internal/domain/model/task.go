package model

import "gorm.io/datatypes"

// Task is an item on the owner's personal tracker board.
type Task struct {
	Record
	Title       string                      `json:"title" validate:"required"`
	Description *string                     `json:"description,omitempty"`
	Category    TaskCategory                `json:"category" validate:"enum"`
	Tags        datatypes.JSONSlice[string] `json:"tags,omitempty"`
	Status      TaskStatus                  `json:"status" validate:"enum"`
	Priority    TaskPriority                `json:"priority" validate:"enum"`
	DueDate     *string                     `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ApplyDefaults fills schema defaults.
func (t *Task) ApplyDefaults() {
	if t.Category == "" {
		t.Category = TaskOther
	}
	if t.Status == "" {
		t.Status = StatusTodo
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
}

// Badge is an achievement awarded to the portfolio owner.
type Badge struct {
	Record
	BadgeName   string    `json:"badgeName" validate:"required"`
	BadgeIcon   string    `json:"badgeIcon" validate:"required"`
	Criteria    string    `json:"criteria" validate:"required"`
	BadgeType   BadgeType `json:"badgeType" validate:"required,enum"`
	DateAwarded *string   `json:"dateAwarded,omitempty" validate:"omitempty,datetime=2006-01-02"`
	UserID      string    `json:"userId" validate:"required"`
}
