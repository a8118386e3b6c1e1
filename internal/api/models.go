package api

import (
	"strings"
	"time"

	"github.com/phrazzld/onboard-api/internal/domain"
)

// CreateUserRequest defines the payload for creating a user.
// Age must be a JSON integer; any other type fails decoding.
type CreateUserRequest struct {
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name"  validate:"required"`
	Email     string  `json:"email"      validate:"required,email"`
	Password  string  `json:"password"   validate:"required"`
	Age       *int    `json:"age"`
	Gender    *string `json:"gender"`
}

// Normalize trims surrounding whitespace from the text fields.
func (r *CreateUserRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
}

// ToNewUser converts the request to the repository input.
func (r CreateUserRequest) ToNewUser() domain.NewUser {
	var gender *domain.Gender
	if r.Gender != nil {
		g := domain.Gender(*r.Gender)
		gender = &g
	}
	return domain.NewUser{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Password:  r.Password,
		Age:       r.Age,
		Gender:    gender,
	}
}

// CreateUserResponse is returned after a user is created.
type CreateUserResponse struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

// UpdateUserRequest defines the payload for updating a user.
// Only email and password may change.
type UpdateUserRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UpdateUserResponse carries the identifying fields of an updated user.
// The password never appears in a response.
type UpdateUserResponse struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	UserID    int64   `json:"user_id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Age       *int    `json:"age"`
	Gender    *string `json:"gender"`
}

// CreateQuestionnaireRequest defines the payload for submitting a questionnaire.
type CreateQuestionnaireRequest struct {
	UserID       int64  `json:"user_id"      validate:"gt=0"`
	Description  string `json:"description"  validate:"required"`
	Goals        string `json:"goals"        validate:"required"`
	Challenges   string `json:"challenges"   validate:"required"`
	Expectations string `json:"expectations" validate:"required"`
}

// Normalize trims surrounding whitespace from the text fields, so blank
// answers fail the required check.
func (r *CreateQuestionnaireRequest) Normalize() {
	r.Description = strings.TrimSpace(r.Description)
	r.Goals = strings.TrimSpace(r.Goals)
	r.Challenges = strings.TrimSpace(r.Challenges)
	r.Expectations = strings.TrimSpace(r.Expectations)
}

// CreateQuestionnaireResponse is returned after a questionnaire is stored.
type CreateQuestionnaireResponse struct {
	QuestionnaireID int64  `json:"questionnaire_id"`
	Message         string `json:"message"`
}

// QuestionnaireResponse is the public view of a questionnaire.
type QuestionnaireResponse struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Description  string    `json:"description"`
	Goals        string    `json:"goals"`
	Challenges   string    `json:"challenges"`
	Expectations string    `json:"expectations"`
	Completed    bool      `json:"completed"`
	CreatedAt    time.Time `json:"created_at"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// userToResponse converts a domain.User to a UserResponse, dropping the password hash.
func userToResponse(u *domain.User) UserResponse {
	var gender *string
	if u.Gender != nil {
		g := string(*u.Gender)
		gender = &g
	}
	return UserResponse{
		UserID:    u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Age:       u.Age,
		Gender:    gender,
	}
}

// questionnaireToResponse converts a domain.Questionnaire to a QuestionnaireResponse
func questionnaireToResponse(q *domain.Questionnaire) QuestionnaireResponse {
	return QuestionnaireResponse{
		ID:           q.ID,
		UserID:       q.UserID,
		Description:  q.Description,
		Goals:        q.Goals,
		Challenges:   q.Challenges,
		Expectations: q.Expectations,
		Completed:    q.Completed,
		CreatedAt:    q.CreatedAt,
	}
}
