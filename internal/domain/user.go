package domain

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID       string `json:"id" bson:"_id"`
	Name     string `json:"name" bson:"name"`
	Email    string `json:"email" bson:"email"`
	Password string `json:"-" bson:"password"`
	Role     Role   `json:"role" bson:"role"`
}

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}
