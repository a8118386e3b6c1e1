package domain

// Gender is the optional self-reported gender of a user.
type Gender string

// Accepted gender values.
const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Genders lists every accepted Gender value.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// User is a persisted user account.
//
// Password always holds the bcrypt hash, never the plaintext. Callers that
// expose a User outside the process are responsible for dropping it.
type User struct {
	ID        int64   `db:"user_id"`
	FirstName string  `db:"first_name"`
	LastName  string  `db:"last_name"`
	Email     string  `db:"email"`
	Password  string  `db:"password"`
	Age       *int    `db:"age"`
	Gender    *Gender `db:"gender"`
}

// NewUser holds the input for creating a user. Password is plaintext and is
// hashed before it reaches the database.
type NewUser struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Age       *int
	Gender    *Gender
}

// UserUpdate lists the fields of a user that may change after creation.
// A nil field is left untouched.
type UserUpdate struct {
	Email    *string
	Password *string
}

// IsEmpty reports whether the update carries no field at all.
func (u UserUpdate) IsEmpty() bool {
	return (u.Email == nil || *u.Email == "") && (u.Password == nil || *u.Password == "")
}

// UpdatedUser is the result of a successful user update.
type UpdatedUser struct {
	ID    int64  `db:"user_id"`
	Email string `db:"email"`
}
