package user

// User is a candidate account. Password holds the bcrypt hash and is never
// serialized.
type User struct {
	ID            string `json:"id" bson:"_id,omitempty"`
	Email         string `json:"email" bson:"email"`
	Password      string `json:"-" bson:"password"`
	Name          string `json:"name,omitempty" bson:"name,omitempty"`
	ResumeSummary string `json:"resumeSummary,omitempty" bson:"resumeSummary,omitempty"`
}
