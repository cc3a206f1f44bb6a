package prime

// Sort orders accepted by list endpoints
var (
	BadgeSort = Enum{Name: "sort", Default: "name", Values: []string{"name", "-name"}}

	CatalogSort = Enum{Name: "sort", Default: "name", Values: []string{
		"name", "-name", "dateCreated", "-dateCreated", "dateUpdated", "-dateUpdated",
	}}

	JobSort = Enum{Name: "sort", Default: "id", Values: []string{"id", "-id", "dateCreated", "-dateCreated"}}

	SkillSort = Enum{Name: "sort", Default: "name", Values: []string{"name", "-name"}}

	LearningObjectSort = Enum{Name: "sort", Default: "name", Values: []string{
		"name", "-name", "date", "-date", "dueDate", "effectiveness", "rating", "-rating",
	}}

	UserGroupSort = Enum{Name: "sort", Default: "name", Values: []string{
		"name", "-name", "dateCreated", "-dateCreated",
	}}

	UserGroupSearchSort = Enum{Name: "sort", Default: "name", Values: []string{"name", "-name"}}

	UserSort = Enum{Name: "sort", Default: "id", Values: []string{"id", "-id", "name", "-name"}}

	UserGroupsOfUserSort = Enum{Name: "sort", Default: "name", Values: []string{"name", "-name"}}

	AchievementSort = Enum{Name: "sort", Default: "dateAchieved", Values: []string{"dateAchieved", "-dateAchieved"}}

	SkillInterestSort = Enum{Name: "sort", Default: "dateCreated", Values: []string{"dateCreated", "-dateCreated"}}

	EnrollmentSort = Enum{Name: "sort", Default: "dateEnrolled", Values: []string{"dateEnrolled", "-dateEnrolled"}}
)

// Filters
var (
	SkillInterestTypes = Enum{Name: "filter.skillInterestTypes", Default: "ADMIN_DEFINED", Values: []string{
		"ADMIN_DEFINED", "INDUSTRY_ALIGNED",
	}}

	LearningObjectTypes = Enum{Name: "filter.loTypes", Default: "course", Values: []string{
		"course", "learningProgram", "jobAid", "certification",
	}}

	EcommerceLearningObjectTypes = Enum{Name: "filter.loTypes", Default: "course", Values: []string{
		"course", "learningProgram", "certification",
	}}

	UserGroupStates = Enum{Name: "filter.states", Values: []string{"Active", "Deleted"}}

	EnrollmentStates = Enum{Name: "filter.states", Values: []string{"active"}}

	UserFilters = Enum{Name: "filter", Values: []string{"gamification", "gamificationAll"}}

	ExternalProfileUserStates = Enum{Name: "filter.userStates", Values: []string{"ACTIVE", "DELETED", "SUSPENDED"}}

	NotificationChannels = Enum{Name: "userSelectedChannels", Values: []string{
		"jobAid::adminEnrollment",
		"certification::adminEnrollment",
		"certification::autoEnrollment",
		"certification::completed",
		"certification::badgeIssued",
		"certification::completionReminder",
		"certification::expired",
		"certification::recurrenceEnrollment",
		"certification::republished",
		"certification::learnerCertificationApprovalRequestApproved",
		"certification::learnerCertificationApprovalRequestDenied",
		"certification::deadlineMissed",
		"course::adminEnrollment",
		"course::autoEnrollment",
		"course::badgeIssued",
		"course::l1FeedbackPrompt",
		"course::deadlineMissed",
		"course::completed",
		"course::completionReminder",
		"course::sessionReminder",
		"course::republished",
		"course::courseOpenForEnrollment",
		"course::learnerEnrollmentRequestApproved",
		"course::learnerEnrollmentRequestDenied",
		"course::waitListCleared",
		"course::learnerNominationRequest",
		"learningProgram::adminEnrollment",
		"learningProgram::autoEnrollment",
		"learningProgram::badgeIssued",
		"learningProgram::republished",
		"learningProgram::deadlineMissed",
		"learningProgram::completionReminder",
		"learningProgram::completed",
		"learningProgram::l1Feedback",
		"competency::assigned",
		"competency::badgeIssued",
		"competency::achieved",
		"manager::added",
		"admin::added",
		"author::added",
		"integrationAdmin::added",
		"social::commentedOnPost",
		"social::curationRequest",
		"social::commentedOnComment",
		"social::postLive",
		"social::postRejected",
		"social::reportAbuse",
		"social::addedAsModerator",
		"social::postUploadFailed",
		"announcement::received",
	}}
)
