package model

// LeaderboardEntry est une ligne du classement général par points
type LeaderboardEntry struct {
	UserID     string `json:"userId"`
	UserName   string `json:"userName"`
	Avatar     string `json:"avatar,omitempty"`
	Rank       int    `json:"rank"` // rang dense : les ex aequo partagent le rang
	Points     int    `json:"points"`
	Level      int    `json:"level"`
	StreakDays int    `json:"streakDays"`
}
