package handlers

import (
	"newsroom-cms/helper"
	"newsroom-cms/middleware"
	"newsroom-cms/models"
	"newsroom-cms/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService services.UserService
	feedService services.FeedService
	Helper      *helper.HTTPHelper
}

func NewUserHandler(userService services.UserService, feedService services.FeedService, h *helper.HTTPHelper) *UserHandler {
	return &UserHandler{userService: userService, feedService: feedService, Helper: h}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.GetProfile(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Profile loaded", user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindError(c, err)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Profile updated", user)
}

func (h *UserHandler) GetRoles(c *gin.Context) {
	flags, err := h.userService.RoleFlags(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Roles loaded", flags)
}

func (h *UserHandler) AssignRole(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	var req models.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindError(c, err)
		return
	}

	user, err := h.userService.AssignRole(c.Request.Context(), middleware.CurrentActor(c), id, req.Role)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Role assigned", user)
}

func (h *UserHandler) GetSubscriptions(c *gin.Context) {
	subscriptions, err := h.userService.Subscriptions(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Subscriptions loaded", subscriptions)
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.SubscribePublisher(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Subscribed", h.Helper.EmptyJsonMap())
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.UnsubscribePublisher(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Unsubscribed", h.Helper.EmptyJsonMap())
}

func (h *UserHandler) Follow(c *gin.Context) {
	if err := h.userService.FollowJournalist(c.Request.Context(), middleware.CurrentActor(c), c.Param("username")); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Following "+c.Param("username"), h.Helper.EmptyJsonMap())
}

func (h *UserHandler) Unfollow(c *gin.Context) {
	if err := h.userService.UnfollowJournalist(c.Request.Context(), middleware.CurrentActor(c), c.Param("username")); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Unfollowed "+c.Param("username"), h.Helper.EmptyJsonMap())
}

func (h *UserHandler) ReaderDashboard(c *gin.Context) {
	dashboard, err := h.feedService.ReaderDashboard(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Dashboard loaded", dashboard)
}
