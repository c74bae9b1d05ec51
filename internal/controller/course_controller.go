package controller

import (
	"edu_portal/internal/model"
	"edu_portal/internal/service"
	"edu_portal/internal/util"
	"edu_portal/internal/view"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	*Pages
	CourseService *service.CourseService
}

func NewCourseController(pages *Pages, courseService *service.CourseService) *CourseController {
	return &CourseController{
		Pages:         pages,
		CourseService: courseService,
	}
}

func (c *CourseController) List(ctx *gin.Context) {
	courses, err := c.CourseService.List(ctx.Request.Context(), util.GetToken(ctx))
	c.renderList(ctx, view.CourseListView{Heading: "강좌 목록", Courses: courses}, "강좌 목록을 불러오는데 실패했습니다", err)
}

func (c *CourseController) Search(ctx *gin.Context) {
	query := ctx.Query("query")
	courses, err := c.CourseService.Search(ctx.Request.Context(), util.GetToken(ctx), query)
	c.renderList(ctx, view.CourseListView{Heading: "검색 결과", Query: query, Courses: courses}, "강좌 검색에 실패했습니다", err)
}

func (c *CourseController) Popular(ctx *gin.Context) {
	courses, err := c.CourseService.Popular(ctx.Request.Context(), util.GetToken(ctx), ctx.Query("limit"))
	c.renderList(ctx, view.CourseListView{Heading: "인기 강좌", Courses: courses}, "인기 강좌를 불러오는데 실패했습니다", err)
}

func (c *CourseController) renderList(ctx *gin.Context, data view.CourseListView, action string, err error) {
	if data.Courses == nil {
		data.Courses = []model.Course{}
	}
	page := c.Page(ctx, data.Heading, data)
	status := http.StatusOK
	if err != nil {
		status = c.Fail(ctx, page, action, err)
	}
	c.Render(ctx, status, "courses", page)
}

func (c *CourseController) Roadmap(ctx *gin.Context) {
	roadmap, err := c.CourseService.Roadmap(ctx.Request.Context(), util.GetToken(ctx))
	page := c.Page(ctx, "학습 로드맵", roadmap)
	status := http.StatusOK
	if err != nil {
		status = c.Fail(ctx, page, "로드맵을 불러오는데 실패했습니다", err)
	}
	c.Render(ctx, status, "roadmap", page)
}

func (c *CourseController) Progress(ctx *gin.Context) {
	progress, err := c.CourseService.Progress(ctx.Request.Context(), util.GetToken(ctx))
	page := c.Page(ctx, "학습 진행 상황", progress)
	status := http.StatusOK
	if err != nil {
		status = c.Fail(ctx, page, "진행 상황을 불러오는데 실패했습니다", err)
	}
	c.Render(ctx, status, "progress", page)
}

func (c *CourseController) Detail(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	var course *model.Course
	if err == nil {
		course, err = c.CourseService.Detail(ctx.Request.Context(), util.GetToken(ctx), id)
	}
	if err != nil {
		page := c.Page(ctx, "강좌", nil)
		status := c.Fail(ctx, page, "강좌 정보를 불러오는데 실패했습니다", err)
		c.Render(ctx, status, "error", page)
		return
	}
	c.Render(ctx, http.StatusOK, "course_detail", c.Page(ctx, course.Title, course))
}

func (c *CourseController) Lesson(ctx *gin.Context) {
	courseID, lessonID, err := lessonIDs(ctx)
	var lesson *model.Lesson
	var progress *model.LessonProgress
	if err == nil {
		lesson, progress, err = c.CourseService.LessonDetail(ctx.Request.Context(), util.GetToken(ctx), courseID, lessonID)
	}
	if err != nil {
		page := c.Page(ctx, "레슨", nil)
		status := c.Fail(ctx, page, "레슨 정보를 불러오는데 실패했습니다", err)
		c.Render(ctx, status, "error", page)
		return
	}
	c.Render(ctx, http.StatusOK, "lesson", c.Page(ctx, lesson.Title, view.NewLessonView(courseID, lesson, progress)))
}

func (c *CourseController) Enroll(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err == nil {
		_, err = c.CourseService.Enroll(ctx.Request.Context(), util.GetToken(ctx), id)
	}
	if err != nil {
		c.actionFailed(ctx, "수강 신청에 실패했습니다", err)
		return
	}
	Redirect(ctx, fmt.Sprintf("/courses/%d", id), "enrolled")
}

func (c *CourseController) Review(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	var form service.ReviewForm
	if err == nil {
		err = bindForm(ctx, &form, "평점은 1에서 5 사이여야 합니다.")
	}
	if err == nil {
		_, err = c.CourseService.Review(ctx.Request.Context(), util.GetToken(ctx), id, form)
	}
	if err != nil {
		c.actionFailed(ctx, "리뷰 등록에 실패했습니다", err)
		return
	}
	Redirect(ctx, fmt.Sprintf("/courses/%d", id), "review-created")
}

func (c *CourseController) UpdateProgress(ctx *gin.Context) {
	courseID, lessonID, err := lessonIDs(ctx)
	if err == nil {
		completed, _ := strconv.ParseBool(ctx.PostForm("completed"))
		_, err = c.CourseService.MarkLesson(ctx.Request.Context(), util.GetToken(ctx), courseID, lessonID, completed)
	}
	if err != nil {
		c.actionFailed(ctx, "진행 상황 저장에 실패했습니다", err)
		return
	}
	Redirect(ctx, fmt.Sprintf("/courses/%d/lessons/%d", courseID, lessonID), "progress-saved")
}

func (c *CourseController) actionFailed(ctx *gin.Context, action string, err error) {
	page := c.Page(ctx, "오류", nil)
	status := c.Fail(ctx, page, action, err)
	c.Render(ctx, status, "error", page)
}

func lessonIDs(ctx *gin.Context) (int, int, error) {
	courseID, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		return 0, 0, err
	}
	lessonID, err := util.ParseID(ctx.Param("lessonId"))
	if err != nil {
		return 0, 0, err
	}
	return courseID, lessonID, nil
}
