package handler

import (
	"github.com/d60-Lab/social-interaction/internal/service"
)

// Handler HTTP 处理器集合
type Handler struct {
	userService service.UserService
}

func NewHandler(userService service.UserService) *Handler {
	return &Handler{userService: userService}
}
