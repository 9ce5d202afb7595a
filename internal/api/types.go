package api

// Role is the membership role inside an organisation.
// The backend only ever issues these two values.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Organisation is the organisation block of the session payload
type Organisation struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
	Role Role   `json:"role"`
}

// SessionPayload is the response shape of GET /session.
// An absent or malformed cookie yields isLoggedIn=false with every
// other field empty.
type SessionPayload struct {
	IsLoggedIn             bool          `json:"isLoggedIn"`
	Email                  string        `json:"email,omitempty"`
	Firstname              string        `json:"firstname,omitempty"`
	Lastname               string        `json:"lastname,omitempty"`
	Organisation           *Organisation `json:"organisation,omitempty"`
	HasCompletedOnboarding bool          `json:"hasCompletedOnboarding"`
}

// Credentials is the request body for POST /login
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SignupRequest is the request body for POST /signup
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Firstname string `json:"firstname" validate:"required"`
	Lastname  string `json:"lastname" validate:"required"`
}

// CreateOrganisationRequest is the request body for POST /create-organization
type CreateOrganisationRequest struct {
	OrganisationName string `json:"organisationName" validate:"required,min=2"`
}

// JoinByInviteRequest is the request body for POST /join-by-invite
type JoinByInviteRequest struct {
	InviteCode string `json:"inviteCode" validate:"required"`
}

// OnboardingResponsesRequest is the request body for POST /onboarding-responses.
// OptionIDs may be empty when the organisation defined no questions.
type OnboardingResponsesRequest struct {
	OptionIDs []int `json:"option_ids"`
}

// QuestionOption is a selectable option of an onboarding question
type QuestionOption struct {
	ID         int    `json:"id"`
	OptionText string `json:"option_text"`
}

// Question is one entry of GET /onboarding-questions
type Question struct {
	ID           int              `json:"id"`
	QuestionText string           `json:"question_text"`
	Position     int              `json:"position"`
	Options      []QuestionOption `json:"options"`
}

// QuestionsResponse is the response shape of GET /onboarding-questions
type QuestionsResponse struct {
	Questions []Question `json:"questions"`
}
