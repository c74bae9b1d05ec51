package controller

import (
	"edu_portal/internal/model"
	"edu_portal/internal/service"
	"edu_portal/internal/util"
	"edu_portal/internal/view"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type MissionController struct {
	*Pages
	MissionService *service.MissionService
}

func NewMissionController(pages *Pages, missionService *service.MissionService) *MissionController {
	return &MissionController{
		Pages:          pages,
		MissionService: missionService,
	}
}

// List 列表视图
func (c *MissionController) List(ctx *gin.Context) {
	v, err := c.MissionService.Open(ctx.Request.Context(), util.GetToken(ctx))
	page := c.Page(ctx, "미션 목록", view.NewMissionList(v))
	status := http.StatusOK
	if err != nil {
		status = c.Fail(ctx, page, "미션 목록을 불러오는데 실패했습니다", err)
	}
	c.Render(ctx, status, "missions", page)
}

// Detail 每次进入详情都重新获取题目
func (c *MissionController) Detail(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		c.backToList(ctx, "미션 정보를 불러오는데 실패했습니다", err)
		return
	}

	v, err := c.MissionService.Select(ctx.Request.Context(), util.GetToken(ctx), id)
	if err != nil {
		c.backToList(ctx, "미션 정보를 불러오는데 실패했습니다", err)
		return
	}
	c.renderDetail(ctx, http.StatusOK, v, nil)
}

// Submit 选择题未选择时直接重定向回详情页，不发出任何请求
func (c *MissionController) Submit(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		c.backToList(ctx, "제출에 실패했습니다", err)
		return
	}

	missionType := model.MissionType(ctx.PostForm("type"))
	answer, err := service.ParseAnswer(missionType, ctx.Request.PostForm)
	if err != nil {
		if errors.Is(err, util.ErrValidation) {
			prompt := "select-option"
			if ctx.PostForm("selected_option") != "" {
				prompt = "invalid-option"
			}
			ctx.Redirect(http.StatusSeeOther, fmt.Sprintf("/missions/%d?prompt=%s", id, prompt))
			return
		}
		c.backToList(ctx, "제출에 실패했습니다", err)
		return
	}

	token := util.GetToken(ctx)
	v, err := c.MissionService.Select(ctx.Request.Context(), token, id)
	if err != nil {
		c.backToList(ctx, "미션 정보를 불러오는데 실패했습니다", err)
		return
	}

	submitted, err := c.MissionService.Submit(ctx.Request.Context(), token, v, answer)
	if err != nil {
		// 提交失败时保留刚写的答案
		v.Draft = answer
		c.renderDetail(ctx, http.StatusOK, v, func(page *view.Page) int {
			return c.Fail(ctx, page, "제출에 실패했습니다", err)
		})
		return
	}
	c.renderDetail(ctx, http.StatusOK, submitted, nil)
}

func (c *MissionController) renderDetail(ctx *gin.Context, status int, v service.MissionView, onPage func(*view.Page) int) {
	detail, err := view.NewMissionDetail(v)
	if err != nil {
		c.backToList(ctx, "미션 정보를 표시할 수 없습니다", util.UnhandledVariant(err.Error()))
		return
	}

	page := c.Page(ctx, detail.Question, detail)
	if onPage != nil {
		status = onPage(page)
	}
	c.Render(ctx, status, "mission_detail", page)
}

// backToList 出错时停留在列表视图并显示一条提示
func (c *MissionController) backToList(ctx *gin.Context, action string, err error) {
	page := c.Page(ctx, "미션 목록", view.MissionListView{Missions: []model.MissionSummary{}})
	status := c.Fail(ctx, page, action, err)

	if !errors.Is(err, util.ErrAuth) {
		if v, listErr := c.MissionService.Open(ctx.Request.Context(), util.GetToken(ctx)); listErr == nil {
			page.Data = view.NewMissionList(v)
		}
	}
	c.Render(ctx, status, "missions", page)
}
