package repository

import (
	"context"
	"edu_portal/internal/model"
	"edu_portal/pkg/apiclient"
	"net/http"
	"net/url"
	"strconv"
)

type CourseRepository struct {
	Client *apiclient.Client
}

func NewCourseRepository(client *apiclient.Client) *CourseRepository {
	return &CourseRepository{Client: client}
}

func (r *CourseRepository) List(ctx context.Context, token string) ([]model.Course, error) {
	var courses []model.Course
	if err := r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/courses",
		Token:  token,
	}, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CourseRepository) Get(ctx context.Context, token string, id int) (*model.Course, error) {
	var course model.Course
	if err := r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   apiclient.PathID("/courses", id),
		Route:  "/courses/{id}",
		Token:  token,
	}, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) Roadmap(ctx context.Context, token string) ([]model.CourseRoadmap, error) {
	var roadmap []model.CourseRoadmap
	if err := r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/courses/roadmap",
		Token:  token,
	}, &roadmap); err != nil {
		return nil, err
	}
	return roadmap, nil
}

func (r *CourseRepository) Search(ctx context.Context, token, query string) ([]model.Course, error) {
	var courses []model.Course
	if err := r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/courses/search",
		Token:  token,
		Query:  url.Values{"query": {query}},
	}, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CourseRepository) Popular(ctx context.Context, token string, limit int) ([]model.Course, error) {
	var courses []model.Course
	if err := r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/courses/popular",
		Token:  token,
		Query:  url.Values{"limit": {strconv.Itoa(limit)}},
	}, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CourseRepository) Enroll(ctx context.Context, token string, id int) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	if err := r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   apiclient.PathID("/courses", id, "/enroll"),
		Route:  "/courses/{id}/enroll",
		Token:  token,
	}, &enrollment); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *CourseRepository) UserProgress(ctx context.Context, token string) ([]model.CourseProgress, error) {
	var progress []model.CourseProgress
	if err := r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/courses/user/progress",
		Token:  token,
	}, &progress); err != nil {
		return nil, err
	}
	return progress, nil
}

func (r *CourseRepository) CreateReview(ctx context.Context, token string, courseID int, review *model.Review) (*model.Review, error) {
	var created model.Review
	if err := r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   apiclient.PathID("/courses", courseID, "/reviews"),
		Route:  "/courses/{id}/reviews",
		Token:  token,
		JSON:   review,
	}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// 以下为管理员接口

func (r *CourseRepository) Create(ctx context.Context, token string, course *model.CourseCreate) (*model.Course, error) {
	var created model.Course
	if err := r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/courses",
		Token:  token,
		JSON:   course,
	}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *CourseRepository) Update(ctx context.Context, token string, id int, course *model.CourseCreate) (*model.Course, error) {
	var updated model.Course
	if err := r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodPut,
		Path:   apiclient.PathID("/courses", id),
		Route:  "/courses/{id}",
		Token:  token,
		JSON:   course,
	}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func lessonPath(courseID, lessonID int, suffix string) string {
	return apiclient.PathID("/courses", courseID, "/lessons/", strconv.Itoa(lessonID), suffix)
}

func (r *CourseRepository) GetLesson(ctx context.Context, token string, courseID, lessonID int) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   lessonPath(courseID, lessonID, ""),
		Route:  "/courses/{id}/lessons/{lessonId}",
		Token:  token,
	}, &lesson); err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *CourseRepository) AddLesson(ctx context.Context, token string, courseID int, lesson *model.LessonCreate) (*model.Lesson, error) {
	var created model.Lesson
	if err := r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   apiclient.PathID("/courses", courseID, "/lessons"),
		Route:  "/courses/{id}/lessons",
		Token:  token,
		JSON:   lesson,
	}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *CourseRepository) UpdateLesson(ctx context.Context, token string, courseID, lessonID int, lesson *model.LessonCreate) (*model.Lesson, error) {
	var updated model.Lesson
	if err := r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodPut,
		Path:   lessonPath(courseID, lessonID, ""),
		Route:  "/courses/{id}/lessons/{lessonId}",
		Token:  token,
		JSON:   lesson,
	}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *CourseRepository) DeleteLesson(ctx context.Context, token string, courseID, lessonID int) error {
	return r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodDelete,
		Path:   lessonPath(courseID, lessonID, ""),
		Route:  "/courses/{id}/lessons/{lessonId}",
		Token:  token,
	}, nil)
}

func (r *CourseRepository) LessonProgress(ctx context.Context, token string, courseID, lessonID int) (*model.LessonProgress, error) {
	var progress model.LessonProgress
	if err := r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   lessonPath(courseID, lessonID, "/progress"),
		Route:  "/courses/{id}/lessons/{lessonId}/progress",
		Token:  token,
	}, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *CourseRepository) UpdateLessonProgress(ctx context.Context, token string, courseID, lessonID int, progress *model.LessonProgress) (*model.LessonProgress, error) {
	var updated model.LessonProgress
	if err := r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   lessonPath(courseID, lessonID, "/progress"),
		Route:  "/courses/{id}/lessons/{lessonId}/progress",
		Token:  token,
		JSON:   progress,
	}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
