package controller

import (
	"edu_portal/internal/service"
	"edu_portal/internal/util"
	"edu_portal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserController struct {
	*Pages
	UserService *service.UserService
}

func NewUserController(pages *Pages, userService *service.UserService) *UserController {
	return &UserController{
		Pages:       pages,
		UserService: userService,
	}
}

// Profile 管理员的“个人资料”入口就是后台
func (c *UserController) Profile(ctx *gin.Context) {
	user, err := c.UserService.Profile(ctx.Request.Context(), util.GetToken(ctx))
	if err != nil {
		page := c.Page(ctx, "내 프로필", nil)
		status := c.Fail(ctx, page, "사용자 정보를 불러오는데 실패했습니다", err)
		c.Render(ctx, status, "error", page)
		return
	}
	if user.IsAdmin() {
		ctx.Redirect(http.StatusSeeOther, "/admin")
		return
	}
	c.Render(ctx, http.StatusOK, "profile", c.Page(ctx, "내 프로필", user))
}

func (c *UserController) EditPage(ctx *gin.Context) {
	user, err := c.UserService.Profile(ctx.Request.Context(), util.GetToken(ctx))
	if err != nil {
		page := c.Page(ctx, "프로필 수정", service.ProfileForm{})
		status := c.Fail(ctx, page, "사용자 정보를 불러오는데 실패했습니다", err)
		c.Render(ctx, status, "profile_edit", page)
		return
	}
	c.Render(ctx, http.StatusOK, "profile_edit", c.Page(ctx, "프로필 수정", service.ProfileForm{Nickname: user.Nickname}))
}

func (c *UserController) Update(ctx *gin.Context) {
	var form service.ProfileForm
	err := bindForm(ctx, &form, "닉네임을 입력해주세요.")
	if err == nil {
		_, err = c.UserService.UpdateProfile(ctx.Request.Context(), util.GetToken(ctx), form)
	}
	if err != nil {
		page := c.Page(ctx, "프로필 수정", form)
		status := c.Fail(ctx, page, "프로필 수정에 실패했습니다", err)
		c.Render(ctx, status, "profile_edit", page)
		return
	}
	Redirect(ctx, "/profile", "profile-updated")
}

// Delete 需要表单中的确认字段
func (c *UserController) Delete(ctx *gin.Context) {
	if ctx.PostForm("confirm") != "yes" {
		Redirect(ctx, "/profile", "")
		return
	}

	if err := c.UserService.DeleteAccount(ctx.Request.Context(), util.GetToken(ctx)); err != nil {
		page := c.Page(ctx, "내 프로필", nil)
		status := c.Fail(ctx, page, "계정 삭제에 실패했습니다", err)
		c.Render(ctx, status, "error", page)
		return
	}

	if err := c.Sessions.Clear(ctx.Writer, ctx.Request); err != nil {
		logger.Log.Warn("clear session failed", zap.Error(err))
	}
	Redirect(ctx, "/login", "account-deleted")
}
