package router

import (
	"toolshare/internal/handler"
	"toolshare/internal/middleware"
	"toolshare/internal/service"

	"github.com/gin-gonic/gin"
)

func InitRouter(userSvc *service.UserService, communitySvc *service.CommunityService, toolSvc *service.ToolService) *gin.Engine {
	r := gin.Default()

	user := handler.NewUserHandler(userSvc)
	community := handler.NewCommunityHandler(communitySvc)
	tool := handler.NewToolHandler(toolSvc)

	// 用户相关接口
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", user.Register)
		userGroup.POST("/login", user.Login)
	}

	// token相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.TokenRefresh)
	}

	// 登录态接口
	authGroup := r.Group("/api/auth")
	authGroup.Use(middleware.AuthMiddleware())
	{
		authGroup.POST("/logout", user.Logout)
		authGroup.POST("/change-password", user.ChangePassword)
	}

	// 社区与邀请相关接口
	communityGroup := r.Group("/api/community")
	communityGroup.Use(middleware.AuthMiddleware())
	{
		communityGroup.POST("/create", community.Create)
		communityGroup.GET("/mine", community.Mine)
		communityGroup.GET("/permissions", community.Permissions)
		communityGroup.GET("/invites", community.MyInvites)
		communityGroup.POST("/invites/:id", community.ActionInvite)
		communityGroup.GET("/:id", community.Detail)
		communityGroup.POST("/:id/invites", community.CreateInvite)
	}

	// 工具相关接口
	toolGroup := r.Group("/api/tool")
	toolGroup.Use(middleware.AuthMiddleware())
	{
		toolGroup.POST("/create", tool.Create)
		toolGroup.GET("/mine", tool.Mine)
		toolGroup.GET("/borrowable", tool.Borrowable)
		toolGroup.GET("/categories", tool.Categories)
		toolGroup.GET("/subcategories", tool.SubCategories)
		toolGroup.GET("/:id", tool.Detail)
	}

	return r
}
