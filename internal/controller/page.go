package controller

import (
	"edu_portal/internal/util"
	"edu_portal/internal/view"
	"edu_portal/pkg/logger"
	"edu_portal/pkg/session"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// 重定向后通过 ?notice= 传递的提示
var notices = map[string]string{
	"registered":      "회원가입이 완료되었습니다. 로그인해주세요.",
	"logged-out":      "로그아웃되었습니다.",
	"account-deleted": "계정이 삭제되었습니다.",
	"profile-updated": "프로필이 수정되었습니다.",
	"enrolled":        "수강 신청이 완료되었습니다.",
	"review-created":  "리뷰가 등록되었습니다.",
	"progress-saved":  "학습 진행 상황이 저장되었습니다.",
	"course-saved":    "강좌가 저장되었습니다.",
	"lesson-saved":    "레슨이 저장되었습니다.",
	"lesson-deleted":  "레슨이 삭제되었습니다.",
	"mission-created": "미션이 성공적으로 추가되었습니다.",
	"select-option":   "답안을 선택해주세요.",
	"invalid-option":  "잘못된 선택지입니다.",
}

// Pages 各控制器共用的页面渲染与错误处理
type Pages struct {
	Renderer *view.Renderer
	Sessions session.Store
}

func NewPages(renderer *view.Renderer, sessions session.Store) *Pages {
	return &Pages{Renderer: renderer, Sessions: sessions}
}

func (p *Pages) Page(ctx *gin.Context, title string, data interface{}) *view.Page {
	page := &view.Page{
		Title: title,
		Nav:   view.NavFor(util.GetCurrentUser(ctx), util.GetToken(ctx) != ""),
		CSRF:  csrf.TemplateField(ctx.Request),
		Data:  data,
	}

	if msg := ctx.GetString(util.ContextKeyNotice); msg != "" {
		page.Fail(msg)
	} else if msg, ok := notices[ctx.Query("notice")]; ok {
		page.Info(msg)
	} else if msg, ok := notices[ctx.Query("prompt")]; ok {
		page.Fail(msg)
	}
	return page
}

func (p *Pages) Render(ctx *gin.Context, status int, name string, page *view.Page) {
	p.Renderer.HTML(ctx, status, name, page)
}

// Fail 把一次操作的错误转换成页面上唯一的一条提示。令牌失效时同时退出登录
func (p *Pages) Fail(ctx *gin.Context, page *view.Page, action string, err error) int {
	if errors.Is(err, util.ErrAuth) {
		if clearErr := p.Sessions.Clear(ctx.Writer, ctx.Request); clearErr != nil {
			logger.Log.Warn("clear session failed", zap.Error(clearErr))
		}
		ctx.Set(util.ContextKeyToken, "")
		ctx.Set(util.ContextKeyCurrentUser, nil)
		page.Nav = view.Nav{}
	}

	if !errors.Is(err, util.ErrValidation) {
		util.LogActionError(ctx, action, err)
	}
	page.Fail(util.Notice(action, err))
	return util.StatusFor(err)
}

// Redirect 303，附带提示代码
func Redirect(ctx *gin.Context, path, notice string) {
	if notice != "" {
		path += "?notice=" + url.QueryEscape(notice)
	}
	ctx.Redirect(http.StatusSeeOther, path)
}

// Denied 非管理员访问后台
func (p *Pages) Denied(ctx *gin.Context) {
	page := p.Page(ctx, "접근 권한 없음", nil)
	page.Fail("관리자만 접근할 수 있습니다.")
	p.Render(ctx, http.StatusForbidden, "error", page)
}

func (p *Pages) NotFound(ctx *gin.Context) {
	page := p.Page(ctx, "페이지를 찾을 수 없습니다", nil)
	p.Render(ctx, http.StatusNotFound, "error", page)
}
