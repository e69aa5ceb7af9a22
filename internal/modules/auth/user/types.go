package user

import "time"

type SignupDTO struct {
	Username string `json:"username" binding:"required,max=64"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserDTO struct {
	UserID   string `json:"userId"`
	Username string `json:"username" binding:"required,max=64"`
	Password string `json:"password" binding:"omitempty,min=6,max=72"`
}

type LoginResponse struct {
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	JoinDate  time.Time `json:"joinDate"`
	TopMoods  []string  `json:"topMoods"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type profileResponse struct {
	UserID       string     `json:"userId"`
	Username     string     `json:"username"`
	JoinDate     time.Time  `json:"joinDate"`
	LastActivity *time.Time `json:"lastActivity,omitempty"`
	CurrentMood  string     `json:"currentMood,omitempty"`
	TopMoods     []string   `json:"topMoods"`
	LikedSongs   []string   `json:"likedSongs"`
}
