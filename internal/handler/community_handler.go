package handler

import (
	"net/http"
	"strconv"

	"toolshare/internal/service"

	"github.com/gin-gonic/gin"
)

type CommunityHandler struct {
	svc *service.CommunityService
}

type CommunityCreateReq struct {
	Name string `json:"name"`
}

type InviteCreateReq struct {
	Email string `json:"email" binding:"required,email"`
}

type InviteActionReq struct {
	Action string `json:"action" binding:"required,oneof=accept reject"`
}

func NewCommunityHandler(svc *service.CommunityService) *CommunityHandler {
	return &CommunityHandler{svc: svc}
}

func (h *CommunityHandler) Create(c *gin.Context) {
	var req CommunityCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	community, err := h.svc.CreateCommunity(c.Request.Context(), req.Name, userID(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": community.ID, "name": community.Name})
}

func (h *CommunityHandler) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid community id"})
		return
	}

	community, err := h.svc.GetCommunity(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	members := make([]gin.H, 0, len(community.Members))
	for _, m := range community.Members {
		members = append(members, gin.H{
			"user_id":    m.UserID,
			"email":      m.User.Email,
			"first_name": m.User.FirstName,
			"last_name":  m.User.LastName,
			"permission": m.Permission.Name,
		})
	}
	invites := make([]gin.H, 0, len(community.Invites))
	for _, i := range community.Invites {
		invites = append(invites, gin.H{
			"id":     i.ID,
			"email":  i.UserEmail,
			"status": i.Status.Name,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      community.ID,
		"name":    community.Name,
		"members": members,
		"invites": invites,
	})
}

func (h *CommunityHandler) Mine(c *gin.Context) {
	list, err := h.svc.GetMyCommunities(c.Request.Context(), userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *CommunityHandler) Permissions(c *gin.Context) {
	list, err := h.svc.GetMemberPermissions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *CommunityHandler) CreateInvite(c *gin.Context) {
	communityID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid community id"})
		return
	}

	var req InviteCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	invite, err := h.svc.CreateInvite(c.Request.Context(), communityID, req.Email)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": invite.ID, "email": invite.UserEmail})
}

// MyInvites 当前用户邮箱名下的邀请
func (h *CommunityHandler) MyInvites(c *gin.Context) {
	list, err := h.svc.GetInvitesByUserEmail(c.Request.Context(), userEmail(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}

	out := make([]gin.H, 0, len(list))
	for _, i := range list {
		out = append(out, gin.H{
			"id":        i.ID,
			"community": i.Community.Name,
			"status":    i.Status.Name,
			"created":   i.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"list": out})
}

func (h *CommunityHandler) ActionInvite(c *gin.Context) {
	inviteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid invite id"})
		return
	}

	var req InviteActionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	invite, err := h.svc.ActionInvite(c.Request.Context(), inviteID, req.Action == "accept", userID(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": invite.ID, "status": invite.Status.Name})
}
