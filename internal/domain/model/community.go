package model

import "gorm.io/datatypes"

// ProjectStatus is the lifecycle stage of a portfolio project.
type ProjectStatus string

// ProjectStatus values.
const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectDeployed   ProjectStatus = "deployed"
)

func (s ProjectStatus) Valid() bool {
	return oneOf(s, ProjectPlanning, ProjectInProgress, ProjectCompleted, ProjectDeployed)
}

// Project is a showcase project of the portfolio owner.
type Project struct {
	Record
	Title       string                      `json:"title" validate:"required"`
	Description string                      `json:"description" validate:"required"`
	GithubURL   *string                     `json:"github_url,omitempty" validate:"omitempty,url"`
	LiveURL     *string                     `json:"live_url,omitempty" validate:"omitempty,url"`
	Tags        datatypes.JSONSlice[string] `json:"tags,omitempty"`
	Status      ProjectStatus               `json:"status" validate:"enum"`
	Featured    bool                        `json:"featured"`
}

// ApplyDefaults fills schema defaults.
func (p *Project) ApplyDefaults() {
	if p.Status == "" {
		p.Status = ProjectPlanning
	}
}

// PostType classifies a journal post.
type PostType string

// PostType values.
const (
	PostUpdate      PostType = "update"
	PostAchievement PostType = "achievement"
	PostLearning    PostType = "learning"
	PostReflection  PostType = "reflection"
)

func (t PostType) Valid() bool {
	return oneOf(t, PostUpdate, PostAchievement, PostLearning, PostReflection)
}

// Post is a journal entry of the portfolio owner.
type Post struct {
	Record
	Title   string                      `json:"title" validate:"required"`
	Content string                      `json:"content" validate:"required"`
	Tags    datatypes.JSONSlice[string] `json:"tags,omitempty"`
	Type    PostType                    `json:"type" validate:"enum"`
}

// ApplyDefaults fills schema defaults.
func (p *Post) ApplyDefaults() {
	if p.Type == "" {
		p.Type = PostUpdate
	}
}

// TaskPlatform is where a community task is solved.
type TaskPlatform string

// TaskPlatform values.
const (
	TaskPlatformLeetCode   TaskPlatform = "LeetCode"
	TaskPlatformGitHub     TaskPlatform = "GitHub"
	TaskPlatformGFG        TaskPlatform = "GFG"
	TaskPlatformHackerRank TaskPlatform = "HackerRank"
	TaskPlatformProject    TaskPlatform = "Project"
	TaskPlatformOther      TaskPlatform = "Other"
)

func (p TaskPlatform) Valid() bool {
	return oneOf(p, TaskPlatformLeetCode, TaskPlatformGitHub, TaskPlatformGFG,
		TaskPlatformHackerRank, TaskPlatformProject, TaskPlatformOther)
}

// Difficulty grades a community task.
type Difficulty string

// Difficulty values.
const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

func (d Difficulty) Valid() bool { return oneOf(d, DifficultyEasy, DifficultyMedium, DifficultyHard) }

// CommunityTask is a challenge an administrator posts for community members.
type CommunityTask struct {
	Record
	Title       string       `json:"title" validate:"required"`
	Description *string      `json:"description,omitempty"`
	Platform    TaskPlatform `json:"platform" validate:"required,enum"`
	Link        *string      `json:"link,omitempty" validate:"omitempty,url"`
	Deadline    *string      `json:"deadline,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Difficulty  Difficulty   `json:"difficulty" validate:"enum"`
	Points      *float64     `json:"points" validate:"required,min=0"`
}

// ApplyDefaults fills schema defaults.
func (t *CommunityTask) ApplyDefaults() {
	if t.Difficulty == "" {
		t.Difficulty = DifficultyMedium
	}
}
