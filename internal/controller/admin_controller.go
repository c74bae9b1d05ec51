package controller

import (
	"edu_portal/internal/model"
	"edu_portal/internal/service"
	"edu_portal/internal/util"
	"edu_portal/internal/view"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	*Pages
	AdminService *service.AdminService
}

func NewAdminController(pages *Pages, adminService *service.AdminService) *AdminController {
	return &AdminController{
		Pages:        pages,
		AdminService: adminService,
	}
}

func (c *AdminController) Dashboard(ctx *gin.Context) {
	c.Render(ctx, http.StatusOK, "admin_dashboard", c.Page(ctx, "관리자 대시보드", nil))
}

func (c *AdminController) Users(ctx *gin.Context) {
	users, err := c.AdminService.Users(ctx.Request.Context(), util.GetToken(ctx))
	page := c.Page(ctx, "사용자 관리", users)
	status := http.StatusOK
	if err != nil {
		status = c.Fail(ctx, page, "사용자 목록을 불러오는데 실패했습니다", err)
	}
	c.Render(ctx, status, "admin_users", page)
}

func (c *AdminController) User(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	var user *model.User
	if err == nil {
		user, err = c.AdminService.User(ctx.Request.Context(), util.GetToken(ctx), id)
	}
	if err != nil {
		c.failPage(ctx, "사용자 정보를 불러오는데 실패했습니다", err)
		return
	}
	c.Render(ctx, http.StatusOK, "admin_user", c.Page(ctx, user.Username, user))
}

func (c *AdminController) Courses(ctx *gin.Context) {
	courses, err := c.AdminService.Courses(ctx.Request.Context(), util.GetToken(ctx))
	page := c.Page(ctx, "강좌 관리", courses)
	status := http.StatusOK
	if err != nil {
		status = c.Fail(ctx, page, "강좌 목록을 불러오는데 실패했습니다", err)
	}
	c.Render(ctx, status, "admin_courses", page)
}

func (c *AdminController) NewCoursePage(ctx *gin.Context) {
	data := view.CourseFormView{Heading: "강좌 추가", Action: "/admin/courses/new"}
	c.Render(ctx, http.StatusOK, "admin_course_form", c.Page(ctx, data.Heading, data))
}

func (c *AdminController) CreateCourse(ctx *gin.Context) {
	var form service.CourseForm
	err := bindForm(ctx, &form, "강좌 정보를 올바르게 입력해주세요.")
	var course *model.Course
	if err == nil {
		course, err = c.AdminService.CreateCourse(ctx.Request.Context(), util.GetToken(ctx), form)
	}
	if err != nil {
		data := view.CourseFormView{Heading: "강좌 추가", Action: "/admin/courses/new", Form: form}
		page := c.Page(ctx, data.Heading, data)
		status := c.Fail(ctx, page, "강좌 추가에 실패했습니다", err)
		c.Render(ctx, status, "admin_course_form", page)
		return
	}
	Redirect(ctx, fmt.Sprintf("/admin/courses/%d/edit", course.ID), "course-saved")
}

func (c *AdminController) EditCoursePage(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	var course *model.Course
	if err == nil {
		course, err = c.AdminService.Course(ctx.Request.Context(), util.GetToken(ctx), id)
	}
	if err != nil {
		c.failPage(ctx, "강좌 정보를 불러오는데 실패했습니다", err)
		return
	}

	data := view.CourseFormView{
		Heading: "강좌 수정",
		Action:  fmt.Sprintf("/admin/courses/%d/edit", id),
		Form:    view.CourseFormFor(course),
		Course:  course,
	}
	c.Render(ctx, http.StatusOK, "admin_course_form", c.Page(ctx, data.Heading, data))
}

func (c *AdminController) UpdateCourse(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		c.failPage(ctx, "강좌 수정에 실패했습니다", err)
		return
	}

	var form service.CourseForm
	err = bindForm(ctx, &form, "강좌 정보를 올바르게 입력해주세요.")
	if err == nil {
		_, err = c.AdminService.UpdateCourse(ctx.Request.Context(), util.GetToken(ctx), id, form)
	}
	if err != nil {
		data := view.CourseFormView{Heading: "강좌 수정", Action: fmt.Sprintf("/admin/courses/%d/edit", id), Form: form}
		page := c.Page(ctx, data.Heading, data)
		status := c.Fail(ctx, page, "강좌 수정에 실패했습니다", err)
		c.Render(ctx, status, "admin_course_form", page)
		return
	}
	Redirect(ctx, fmt.Sprintf("/admin/courses/%d/edit", id), "course-saved")
}

func (c *AdminController) NewLessonPage(ctx *gin.Context) {
	courseID, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		c.failPage(ctx, "레슨 추가에 실패했습니다", err)
		return
	}
	data := view.LessonFormView{
		Heading:  "레슨 추가",
		Action:   fmt.Sprintf("/admin/courses/%d/lessons/new", courseID),
		CourseID: courseID,
	}
	c.Render(ctx, http.StatusOK, "admin_lesson_form", c.Page(ctx, data.Heading, data))
}

func (c *AdminController) CreateLesson(ctx *gin.Context) {
	courseID, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		c.failPage(ctx, "레슨 추가에 실패했습니다", err)
		return
	}

	var form service.LessonForm
	err = bindForm(ctx, &form, "레슨 정보를 올바르게 입력해주세요.")
	if err == nil {
		_, err = c.AdminService.AddLesson(ctx.Request.Context(), util.GetToken(ctx), courseID, form)
	}
	if err != nil {
		data := view.LessonFormView{
			Heading:  "레슨 추가",
			Action:   fmt.Sprintf("/admin/courses/%d/lessons/new", courseID),
			CourseID: courseID,
			Form:     form,
		}
		page := c.Page(ctx, data.Heading, data)
		status := c.Fail(ctx, page, "레슨 추가에 실패했습니다", err)
		c.Render(ctx, status, "admin_lesson_form", page)
		return
	}
	Redirect(ctx, fmt.Sprintf("/admin/courses/%d/edit", courseID), "lesson-saved")
}

func (c *AdminController) EditLessonPage(ctx *gin.Context) {
	courseID, lessonID, err := lessonIDs(ctx)
	var lesson *model.Lesson
	if err == nil {
		lesson, err = c.AdminService.Lesson(ctx.Request.Context(), util.GetToken(ctx), courseID, lessonID)
	}
	if err != nil {
		c.failPage(ctx, "레슨 정보를 불러오는데 실패했습니다", err)
		return
	}

	data := view.LessonFormView{
		Heading:  "레슨 수정",
		Action:   fmt.Sprintf("/admin/courses/%d/lessons/%d/edit", courseID, lessonID),
		CourseID: courseID,
		Form:     view.LessonFormFor(lesson),
	}
	c.Render(ctx, http.StatusOK, "admin_lesson_form", c.Page(ctx, data.Heading, data))
}

func (c *AdminController) UpdateLesson(ctx *gin.Context) {
	courseID, lessonID, err := lessonIDs(ctx)
	if err != nil {
		c.failPage(ctx, "레슨 수정에 실패했습니다", err)
		return
	}

	var form service.LessonForm
	err = bindForm(ctx, &form, "레슨 정보를 올바르게 입력해주세요.")
	if err == nil {
		_, err = c.AdminService.UpdateLesson(ctx.Request.Context(), util.GetToken(ctx), courseID, lessonID, form)
	}
	if err != nil {
		data := view.LessonFormView{
			Heading:  "레슨 수정",
			Action:   fmt.Sprintf("/admin/courses/%d/lessons/%d/edit", courseID, lessonID),
			CourseID: courseID,
			Form:     form,
		}
		page := c.Page(ctx, data.Heading, data)
		status := c.Fail(ctx, page, "레슨 수정에 실패했습니다", err)
		c.Render(ctx, status, "admin_lesson_form", page)
		return
	}
	Redirect(ctx, fmt.Sprintf("/admin/courses/%d/edit", courseID), "lesson-saved")
}

func (c *AdminController) DeleteLesson(ctx *gin.Context) {
	courseID, lessonID, err := lessonIDs(ctx)
	if err == nil {
		err = c.AdminService.DeleteLesson(ctx.Request.Context(), util.GetToken(ctx), courseID, lessonID)
	}
	if err != nil {
		c.failPage(ctx, "레슨 삭제에 실패했습니다", err)
		return
	}
	Redirect(ctx, fmt.Sprintf("/admin/courses/%d/edit", courseID), "lesson-deleted")
}

func (c *AdminController) Missions(ctx *gin.Context) {
	missions, err := c.AdminService.Missions(ctx.Request.Context(), util.GetToken(ctx))
	page := c.Page(ctx, "미션 관리", missions)
	status := http.StatusOK
	if err != nil {
		status = c.Fail(ctx, page, "미션 목록을 불러오는데 실패했습니다", err)
	}
	c.Render(ctx, status, "admin_missions", page)
}

func (c *AdminController) NewMissionPage(ctx *gin.Context) {
	c.renderMissionForm(ctx, service.MissionForm{Type: string(model.MultipleChoice), ExamType: string(model.Midterm)}, nil)
}

func (c *AdminController) CreateMission(ctx *gin.Context) {
	var form service.MissionForm
	err := bindForm(ctx, &form, "미션 정보를 올바르게 입력해주세요.")
	if err == nil {
		_, err = c.AdminService.CreateMission(ctx.Request.Context(), util.GetToken(ctx), form)
	}
	if err != nil {
		c.renderMissionForm(ctx, form, err)
		return
	}
	Redirect(ctx, "/admin/missions", "mission-created")
}

// renderMissionForm 课程下拉框的选项来自 /courses
func (c *AdminController) renderMissionForm(ctx *gin.Context, form service.MissionForm, formErr error) {
	courses, err := c.AdminService.Courses(ctx.Request.Context(), util.GetToken(ctx))
	if courses == nil {
		courses = []model.Course{}
	}

	page := c.Page(ctx, "미션 추가", view.MissionFormView{Form: form, Courses: courses})
	status := http.StatusOK
	switch {
	case formErr != nil:
		status = c.Fail(ctx, page, "미션 추가에 실패했습니다", formErr)
	case err != nil:
		status = c.Fail(ctx, page, "과목 목록을 불러오는데 실패했습니다", err)
	}
	c.Render(ctx, status, "admin_mission_form", page)
}

func (c *AdminController) failPage(ctx *gin.Context, action string, err error) {
	page := c.Page(ctx, "오류", nil)
	status := c.Fail(ctx, page, action, err)
	c.Render(ctx, status, "error", page)
}
