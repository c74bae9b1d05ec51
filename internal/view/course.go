package view

import (
	"embed"
	"io/fs"
	"net/http"
	"strconv"

	"edu_portal/internal/model"
	"edu_portal/internal/service"
)

//go:embed static
var staticFS embed.FS

func StaticFS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

type CourseListView struct {
	Heading string
	Query   string
	Courses []model.Course
}

type LessonView struct {
	CourseID  int
	Lesson    *model.Lesson
	Completed bool
}

func NewLessonView(courseID int, lesson *model.Lesson, progress *model.LessonProgress) LessonView {
	return LessonView{
		CourseID:  courseID,
		Lesson:    lesson,
		Completed: progress != nil && progress.IsCompleted,
	}
}

type CourseFormView struct {
	Heading string
	Action  string
	Form    service.CourseForm
	// Course 编辑时才有，用于展示课时列表
	Course *model.Course
}

type LessonFormView struct {
	Heading  string
	Action   string
	CourseID int
	Form     service.LessonForm
}

type MissionFormView struct {
	Form    service.MissionForm
	Courses []model.Course
}

type CheckoutView struct {
	Form    service.CheckoutForm
	Courses []model.Course
	Payment *model.PaymentPrepareResponse
	Receipt *model.PaymentConfirmResponse
}

// CourseFormFor 用已有课程填充编辑表单
func CourseFormFor(c *model.Course) service.CourseForm {
	return service.CourseForm{
		Title:       c.Title,
		Description: c.Description,
		Order:       strconv.Itoa(c.Order),
		IsPaid:      c.IsPaid,
		Price:       strconv.FormatFloat(c.Price, 'f', -1, 64),
	}
}

func LessonFormFor(l *model.Lesson) service.LessonForm {
	return service.LessonForm{
		Title:    l.Title,
		Content:  l.Content,
		VideoURL: l.VideoURL,
		Order:    strconv.Itoa(l.Order),
	}
}
