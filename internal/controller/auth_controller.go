package controller

import (
	"edu_portal/internal/service"
	"edu_portal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthController struct {
	*Pages
	AuthService *service.AuthService
}

func NewAuthController(pages *Pages, authService *service.AuthService) *AuthController {
	return &AuthController{
		Pages:       pages,
		AuthService: authService,
	}
}

func (c *AuthController) LoginPage(ctx *gin.Context) {
	c.Render(ctx, http.StatusOK, "login", c.Page(ctx, "로그인", service.LoginRequest{}))
}

func (c *AuthController) Login(ctx *gin.Context) {
	var req service.LoginRequest
	err := bindForm(ctx, &req, "아이디와 비밀번호를 입력해주세요.")

	var token string
	if err == nil {
		token, err = c.AuthService.Login(ctx.Request.Context(), req)
	}
	if err != nil {
		req.Password = ""
		page := c.Page(ctx, "로그인", req)
		status := c.Fail(ctx, page, "로그인에 실패했습니다", err)
		c.Render(ctx, status, "login", page)
		return
	}

	if err := c.Sessions.SetToken(ctx.Writer, ctx.Request, token); err != nil {
		logger.Log.Error("save session failed", zap.Error(err))
		page := c.Page(ctx, "로그인", req)
		page.Fail("로그인 상태를 저장할 수 없습니다.")
		c.Render(ctx, http.StatusInternalServerError, "login", page)
		return
	}

	Redirect(ctx, "/courses", "")
}

func (c *AuthController) RegisterPage(ctx *gin.Context) {
	c.Render(ctx, http.StatusOK, "register", c.Page(ctx, "회원가입", service.RegisterForm{}))
}

func (c *AuthController) Register(ctx *gin.Context) {
	var form service.RegisterForm
	err := bindForm(ctx, &form, "필수 항목을 올바르게 입력해주세요.")
	if err == nil {
		_, err = c.AuthService.Register(ctx.Request.Context(), form)
	}
	if err != nil {
		form.Password = ""
		page := c.Page(ctx, "회원가입", form)
		status := c.Fail(ctx, page, "회원가입에 실패했습니다", err)
		c.Render(ctx, status, "register", page)
		return
	}

	Redirect(ctx, "/login", "registered")
}

func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.Sessions.Clear(ctx.Writer, ctx.Request); err != nil {
		logger.Log.Warn("clear session failed", zap.Error(err))
	}
	Redirect(ctx, "/login", "logged-out")
}

// bindForm 表单绑定或校验失败统一转换为 ValidationError，字段有提示时使用字段提示
func bindForm(ctx *gin.Context, obj interface{}, message string) error {
	if err := ctx.ShouldBind(obj); err != nil {
		logger.Log.Debug("bind form failed", zap.Error(err), zap.String("path", ctx.Request.URL.Path))
		return service.FormError(obj, err, message)
	}
	return nil
}
