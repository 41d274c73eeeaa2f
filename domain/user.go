package domain

// Role is the operator's role as reported by the backend.
type Role struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// User represents the authenticated operator's profile.
type User struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email,omitempty"`
	FullName    string `json:"full_name,omitempty"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
	Role        *Role  `json:"role,omitempty"`
}

func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
