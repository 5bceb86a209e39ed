package api

import "github.com/eventz-dev/eventz/internal/domain"

type UpdateUserRequest struct {
	domain.UserPatch
}

type UserListResponse struct {
	Users []domain.User `json:"users"`
}

type UploadResponse struct {
	Url string `json:"url"`
}
