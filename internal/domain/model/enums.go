package model

// Verdict is the outcome code of a submitted solution.
type Verdict string

// Verdict values.
const (
	VerdictAccepted          Verdict = "AC"
	VerdictWrongAnswer       Verdict = "WA"
	VerdictTimeLimit         Verdict = "TLE"
	VerdictRuntimeError      Verdict = "RE"
	VerdictCompileError      Verdict = "CE"
	VerdictPresentationError Verdict = "PE"
	VerdictOutputLimit       Verdict = "OLE"
)

// Valid reports whether v is a known verdict.
func (v Verdict) Valid() bool {
	return oneOf(v, VerdictAccepted, VerdictWrongAnswer, VerdictTimeLimit, VerdictRuntimeError,
		VerdictCompileError, VerdictPresentationError, VerdictOutputLimit)
}

// Language is the programming language of a submission.
type Language string

// Language values.
const (
	LanguageCPP        Language = "C++"
	LanguagePython     Language = "Python"
	LanguageJava       Language = "Java"
	LanguageJavaScript Language = "JavaScript"
	LanguageC          Language = "C"
	LanguageGo         Language = "Go"
	LanguageRust       Language = "Rust"
	LanguageOther      Language = "Other"
)

func (l Language) Valid() bool {
	return oneOf(l, LanguageCPP, LanguagePython, LanguageJava, LanguageJavaScript,
		LanguageC, LanguageGo, LanguageRust, LanguageOther)
}

// Platform is a judge site hosting a class problem.
type Platform string

// Platform values.
const (
	PlatformLeetCode   Platform = "LeetCode"
	PlatformGFG        Platform = "GFG"
	PlatformCodeforces Platform = "Codeforces"
	PlatformHackerRank Platform = "HackerRank"
	PlatformOther      Platform = "Other"
)

func (p Platform) Valid() bool {
	return oneOf(p, PlatformLeetCode, PlatformGFG, PlatformCodeforces, PlatformHackerRank, PlatformOther)
}

// ProblemCategory classifies a class problem by difficulty or topic.
type ProblemCategory string

// ProblemCategory values.
const (
	ProblemEasy   ProblemCategory = "Easy"
	ProblemMedium ProblemCategory = "Medium"
	ProblemHard   ProblemCategory = "Hard"
	ProblemDP     ProblemCategory = "DP"
	ProblemGreedy ProblemCategory = "Greedy"
	ProblemGraph  ProblemCategory = "Graph"
	ProblemArray  ProblemCategory = "Array"
	ProblemString ProblemCategory = "String"
	ProblemTree   ProblemCategory = "Tree"
	ProblemOther  ProblemCategory = "Other"
)

func (c ProblemCategory) Valid() bool {
	return oneOf(c, ProblemEasy, ProblemMedium, ProblemHard, ProblemDP, ProblemGreedy,
		ProblemGraph, ProblemArray, ProblemString, ProblemTree, ProblemOther)
}

// SkillCategory groups skills in the tracker.
type SkillCategory string

// SkillCategory values.
const (
	SkillTechnical SkillCategory = "Technical"
	SkillSoft      SkillCategory = "Soft Skill"
	SkillLanguage  SkillCategory = "Language"
	SkillCreative  SkillCategory = "Creative"
	SkillBusiness  SkillCategory = "Business"
	SkillOther     SkillCategory = "Other"
)

func (c SkillCategory) Valid() bool {
	return oneOf(c, SkillTechnical, SkillSoft, SkillLanguage, SkillCreative, SkillBusiness, SkillOther)
}

// TaskCategory groups personal tracker tasks.
type TaskCategory string

// TaskCategory values.
const (
	TaskDSA      TaskCategory = "DSA"
	TaskUIUX     TaskCategory = "UI/UX"
	TaskReading  TaskCategory = "Reading"
	TaskCoding   TaskCategory = "Coding"
	TaskLearning TaskCategory = "Learning"
	TaskProject  TaskCategory = "Project"
	TaskOther    TaskCategory = "Other"
)

func (c TaskCategory) Valid() bool {
	return oneOf(c, TaskDSA, TaskUIUX, TaskReading, TaskCoding, TaskLearning, TaskProject, TaskOther)
}

// TaskStatus is the progress state of a task.
type TaskStatus string

// TaskStatus values.
const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool { return oneOf(s, StatusTodo, StatusInProgress, StatusDone) }

// TaskPriority orders tasks by urgency.
type TaskPriority string

// TaskPriority values.
const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool { return oneOf(p, PriorityLow, PriorityMedium, PriorityHigh) }

// CertificateType describes what a certificate was issued for.
type CertificateType string

// CertificateType values.
const (
	CertificateClassCompletion  CertificateType = "Class Completion"
	CertificateContestWinner    CertificateType = "Contest Winner"
	CertificateCourseCompletion CertificateType = "Course Completion"
	CertificateAchievement      CertificateType = "Achievement"
)

func (c CertificateType) Valid() bool {
	return oneOf(c, CertificateClassCompletion, CertificateContestWinner, CertificateCourseCompletion, CertificateAchievement)
}

// BadgeType is the rule family a badge was earned under.
type BadgeType string

// BadgeType values.
const (
	BadgeSkillCount  BadgeType = "skill_count"
	BadgeProficiency BadgeType = "proficiency"
	BadgeCertificate BadgeType = "certificate"
	BadgeCategory    BadgeType = "category"
	BadgeSpecial     BadgeType = "special"
)

func (b BadgeType) Valid() bool {
	return oneOf(b, BadgeSkillCount, BadgeProficiency, BadgeCertificate, BadgeCategory, BadgeSpecial)
}

func oneOf[T comparable](v T, allowed ...T) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
