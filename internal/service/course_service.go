package service

import (
	"context"
	"edu_portal/internal/model"
	"edu_portal/internal/repository"
	"edu_portal/internal/util"
	"fmt"
	"strconv"
	"strings"
)

type ReviewForm struct {
	Rating  int    `form:"rating" binding:"required,min=1,max=5"`
	Comment string `form:"comment"`
}

type CourseService struct {
	CourseRepo *repository.CourseRepository
}

func NewCourseService(courseRepo *repository.CourseRepository) *CourseService {
	return &CourseService{CourseRepo: courseRepo}
}

func (s *CourseService) List(ctx context.Context, token string) ([]model.Course, error) {
	courses, err := s.CourseRepo.List(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (s *CourseService) Detail(ctx context.Context, token string, id int) (*model.Course, error) {
	course, err := s.CourseRepo.Get(ctx, token, id)
	if err != nil {
		return nil, fmt.Errorf("get course %d: %w", id, err)
	}
	return course, nil
}

// LessonDetail 课时内容与当前用户的学习进度；没有进度记录时按未完成处理
func (s *CourseService) LessonDetail(ctx context.Context, token string, courseID, lessonID int) (*model.Lesson, *model.LessonProgress, error) {
	lesson, err := s.CourseRepo.GetLesson(ctx, token, courseID, lessonID)
	if err != nil {
		return nil, nil, fmt.Errorf("get lesson %d/%d: %w", courseID, lessonID, err)
	}
	if token == "" {
		return lesson, nil, nil
	}

	progress, err := s.CourseRepo.LessonProgress(ctx, token, courseID, lessonID)
	if err != nil {
		return nil, nil, fmt.Errorf("get lesson progress %d/%d: %w", courseID, lessonID, err)
	}
	return lesson, progress, nil
}

func (s *CourseService) Enroll(ctx context.Context, token string, id int) (*model.Enrollment, error) {
	enrollment, err := s.CourseRepo.Enroll(ctx, token, id)
	if err != nil {
		return nil, fmt.Errorf("enroll course %d: %w", id, err)
	}
	return enrollment, nil
}

func (s *CourseService) Roadmap(ctx context.Context, token string) ([]model.CourseRoadmap, error) {
	roadmap, err := s.CourseRepo.Roadmap(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("get roadmap: %w", err)
	}
	return roadmap, nil
}

func (s *CourseService) Search(ctx context.Context, token, query string) ([]model.Course, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, util.ValidationError("검색어를 입력해주세요.")
	}

	courses, err := s.CourseRepo.Search(ctx, token, query)
	if err != nil {
		return nil, fmt.Errorf("search courses: %w", err)
	}
	return courses, nil
}

// Popular limit 缺省或非法时取默认值
func (s *CourseService) Popular(ctx context.Context, token, rawLimit string) ([]model.Course, error) {
	limit, err := strconv.Atoi(strings.TrimSpace(rawLimit))
	if err != nil || limit <= 0 {
		limit = util.DefaultPopularLimit
	}

	courses, err := s.CourseRepo.Popular(ctx, token, limit)
	if err != nil {
		return nil, fmt.Errorf("popular courses: %w", err)
	}
	return courses, nil
}

func (s *CourseService) Progress(ctx context.Context, token string) ([]model.CourseProgress, error) {
	progress, err := s.CourseRepo.UserProgress(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return progress, nil
}

func (s *CourseService) MarkLesson(ctx context.Context, token string, courseID, lessonID int, completed bool) (*model.LessonProgress, error) {
	progress, err := s.CourseRepo.UpdateLessonProgress(ctx, token, courseID, lessonID, &model.LessonProgress{
		LessonID:    lessonID,
		IsCompleted: completed,
	})
	if err != nil {
		return nil, fmt.Errorf("update lesson progress %d/%d: %w", courseID, lessonID, err)
	}
	return progress, nil
}

func (s *CourseService) Review(ctx context.Context, token string, courseID int, form ReviewForm) (*model.Review, error) {
	if form.Rating < 1 || form.Rating > 5 {
		return nil, util.ValidationError("평점은 1에서 5 사이여야 합니다.")
	}

	review, err := s.CourseRepo.CreateReview(ctx, token, courseID, &model.Review{
		CourseID: courseID,
		Rating:   form.Rating,
		Comment:  strings.TrimSpace(form.Comment),
	})
	if err != nil {
		return nil, fmt.Errorf("create review for course %d: %w", courseID, err)
	}
	return review, nil
}

// FormatPercentage 进度百分比保留两位小数
func FormatPercentage(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64) + "%"
}
