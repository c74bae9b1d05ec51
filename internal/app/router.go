package app

import (
	"edu_portal/internal/middleware"
	"edu_portal/internal/model"
	"edu_portal/internal/view"
	"edu_portal/pkg/monitoring"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)
	router.StaticFS("/static", view.StaticFS())
	router.NoRoute(c.pages.NotFound)

	router.GET("/", func(ctx *gin.Context) {
		ctx.Redirect(http.StatusFound, "/courses")
	})

	// 1. 公共页面（无需登录）
	a.registerPublicRoutes(router, c)

	// 2. 题目流程：未登录时请求不带 Authorization，由后端返回 401
	a.registerMissionRoutes(router, c)

	// 3. 需要登录的页面
	a.registerMemberRoutes(router, c)

	// 4. 管理员后台
	a.registerAdminRoutes(router, c)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	router.GET("/login", c.auth.LoginPage)
	router.POST("/login", c.auth.Login)
	router.GET("/register", c.auth.RegisterPage)
	router.POST("/register", c.auth.Register)
	router.POST("/logout", c.auth.Logout)

	courses := router.Group("/courses")
	{
		courses.GET("", c.course.List)
		courses.GET("/search", c.course.Search)
		courses.GET("/popular", c.course.Popular)
		courses.GET("/roadmap", c.course.Roadmap)
		courses.GET("/:id", c.course.Detail)
		courses.GET("/:id/lessons/:lessonId", c.course.Lesson)
	}

	router.GET("/checkout", c.payment.Checkout)
	router.POST("/checkout/coupon", c.payment.ApplyCoupon)
	router.POST("/checkout/pay", c.payment.Pay)
}

func (a *App) registerMissionRoutes(router *gin.Engine, c *controllers) {
	missions := router.Group("/missions")
	{
		missions.GET("", c.mission.List)
		missions.GET("/:id", c.mission.Detail)
		missions.POST("/:id/submit", c.mission.Submit)
	}
}

func (a *App) registerMemberRoutes(router *gin.Engine, c *controllers) {
	member := router.Group("/")
	member.Use(middleware.RequireLogin())
	{
		member.GET("/profile", c.user.Profile)
		member.GET("/profile/edit", c.user.EditPage)
		member.POST("/profile/edit", c.user.Update)
		member.POST("/profile/delete", c.user.Delete)

		member.GET("/courses/progress", c.course.Progress)
		member.POST("/courses/:id/enroll", c.course.Enroll)
		member.POST("/courses/:id/reviews", c.course.Review)
		member.POST("/courses/:id/lessons/:lessonId/progress", c.course.UpdateProgress)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers) {
	admin := router.Group("/admin")
	admin.Use(middleware.RequireLogin(), middleware.RoleMiddleware(c.pages.Denied, model.Admin))
	{
		admin.GET("", c.admin.Dashboard)
		admin.GET("/users", c.admin.Users)
		admin.GET("/users/:id", c.admin.User)

		admin.GET("/courses", c.admin.Courses)
		admin.GET("/courses/new", c.admin.NewCoursePage)
		admin.POST("/courses/new", c.admin.CreateCourse)
		admin.GET("/courses/:id/edit", c.admin.EditCoursePage)
		admin.POST("/courses/:id/edit", c.admin.UpdateCourse)
		admin.GET("/courses/:id/lessons/new", c.admin.NewLessonPage)
		admin.POST("/courses/:id/lessons/new", c.admin.CreateLesson)
		admin.GET("/courses/:id/lessons/:lessonId/edit", c.admin.EditLessonPage)
		admin.POST("/courses/:id/lessons/:lessonId/edit", c.admin.UpdateLesson)
		admin.POST("/courses/:id/lessons/:lessonId/delete", c.admin.DeleteLesson)

		admin.GET("/missions", c.admin.Missions)
		admin.GET("/missions/new", c.admin.NewMissionPage)
		admin.POST("/missions/new", c.admin.CreateMission)
	}
}
