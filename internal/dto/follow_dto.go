package dto

type FollowForm struct {
	Username string `form:"username" json:"username"`
}

type FollowListResponse struct {
	Following []UserResponse `json:"following"`
	Followers []UserResponse `json:"followers"`
}
