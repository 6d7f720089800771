package constants

// Session / context keys
const (
	SessionCookieName = "roomly_session"
	ContextKeyUserID  = "user_id"
	ContextKeyChore   = "chore"
)

// Validation limits
const MinPasswordLength = 8

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// AI chore generation
const MaxAIGeneratedChores = 15
