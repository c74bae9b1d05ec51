package model

type UserRole string

const (
	Student UserRole = "STUDENT"
	Admin   UserRole = "ADMIN"
)

type User struct {
	ID          int      `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Nickname    string   `json:"nickname"`
	PhoneNumber string   `json:"phone_number,omitempty"`
	IsActive    bool     `json:"is_active"`
	Role        UserRole `json:"role"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == Admin
}

type RegisterRequest struct {
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Nickname    string   `json:"nickname"`
	PhoneNumber string   `json:"phone_number"`
	IsActive    bool     `json:"is_active"`
	Role        UserRole `json:"role"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type UserUpdate struct {
	Nickname string `json:"nickname"`
}
