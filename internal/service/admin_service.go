package service

import (
	"context"
	"edu_portal/internal/model"
	"edu_portal/internal/repository"
	"edu_portal/internal/util"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type CourseForm struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description"`
	Order       string `form:"order"`
	IsPaid      bool   `form:"is_paid"`
	Price       string `form:"price" binding:"required_if=IsPaid true"`
}

func (CourseForm) FieldMessages() map[string]string {
	return map[string]string{
		"Title": "강좌 제목을 입력해주세요.",
		"Price": "유료 강좌의 가격을 입력해주세요.",
	}
}

type LessonForm struct {
	Title    string `form:"title" binding:"required"`
	Content  string `form:"content"`
	VideoURL string `form:"video_url"`
	Order    string `form:"order"`
}

func (LessonForm) FieldMessages() map[string]string {
	return map[string]string{"Title": "레슨 제목을 입력해주세요."}
}

// MissionForm 管理员新增题目表单。只读取与 Type 对应的那组字段
type MissionForm struct {
	Course   string `form:"course" binding:"required"`
	Question string `form:"question" binding:"required"`
	Type     string `form:"type" binding:"required,oneof=multiple_choice code_submission"`
	ExamType string `form:"exam_type"`

	Options       string `form:"options" binding:"required_if=Type multiple_choice"`
	CorrectAnswer string `form:"correct_answer" binding:"required_if=Type multiple_choice"`

	ProblemDescription string `form:"problem_description" binding:"required_if=Type code_submission"`
	InitialCode        string `form:"initial_code"`
	TestCases          string `form:"test_cases" binding:"required_if=Type code_submission"`
}

func (MissionForm) FieldMessages() map[string]string {
	return map[string]string{
		"Course":             "과목을 선택해주세요.",
		"Question":           "문제를 입력해주세요.",
		"Type":               "지원하지 않는 미션 유형입니다.",
		"Options":            "선택지를 쉼표로 구분해 입력해주세요.",
		"CorrectAnswer":      "정답은 A부터 E 사이의 한 글자여야 합니다.",
		"ProblemDescription": "문제 설명을 입력해주세요.",
		"TestCases":          "테스트 케이스는 JSON 배열이어야 합니다.",
	}
}

type AdminService struct {
	AdminRepo   *repository.AdminRepository
	CourseRepo  *repository.CourseRepository
	MissionRepo *repository.MissionRepository
}

func NewAdminService(adminRepo *repository.AdminRepository, courseRepo *repository.CourseRepository, missionRepo *repository.MissionRepository) *AdminService {
	return &AdminService{
		AdminRepo:   adminRepo,
		CourseRepo:  courseRepo,
		MissionRepo: missionRepo,
	}
}

func (s *AdminService) Users(ctx context.Context, token string) ([]model.User, error) {
	users, err := s.AdminRepo.Users(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *AdminService) User(ctx context.Context, token string, id int) (*model.User, error) {
	user, err := s.AdminRepo.User(ctx, token, id)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, nil
}

func (s *AdminService) Courses(ctx context.Context, token string) ([]model.Course, error) {
	courses, err := s.CourseRepo.List(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (s *AdminService) Course(ctx context.Context, token string, id int) (*model.Course, error) {
	course, err := s.CourseRepo.Get(ctx, token, id)
	if err != nil {
		return nil, fmt.Errorf("get course %d: %w", id, err)
	}
	return course, nil
}

func (s *AdminService) CreateCourse(ctx context.Context, token string, form CourseForm) (*model.Course, error) {
	req, err := form.ToCreate()
	if err != nil {
		return nil, err
	}
	course, err := s.CourseRepo.Create(ctx, token, req)
	if err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	return course, nil
}

func (s *AdminService) UpdateCourse(ctx context.Context, token string, id int, form CourseForm) (*model.Course, error) {
	req, err := form.ToCreate()
	if err != nil {
		return nil, err
	}
	course, err := s.CourseRepo.Update(ctx, token, id, req)
	if err != nil {
		return nil, fmt.Errorf("update course %d: %w", id, err)
	}
	return course, nil
}

func (s *AdminService) AddLesson(ctx context.Context, token string, courseID int, form LessonForm) (*model.Lesson, error) {
	req, err := form.ToCreate()
	if err != nil {
		return nil, err
	}
	lesson, err := s.CourseRepo.AddLesson(ctx, token, courseID, req)
	if err != nil {
		return nil, fmt.Errorf("add lesson to course %d: %w", courseID, err)
	}
	return lesson, nil
}

func (s *AdminService) UpdateLesson(ctx context.Context, token string, courseID, lessonID int, form LessonForm) (*model.Lesson, error) {
	req, err := form.ToCreate()
	if err != nil {
		return nil, err
	}
	lesson, err := s.CourseRepo.UpdateLesson(ctx, token, courseID, lessonID, req)
	if err != nil {
		return nil, fmt.Errorf("update lesson %d/%d: %w", courseID, lessonID, err)
	}
	return lesson, nil
}

func (s *AdminService) Lesson(ctx context.Context, token string, courseID, lessonID int) (*model.Lesson, error) {
	lesson, err := s.CourseRepo.GetLesson(ctx, token, courseID, lessonID)
	if err != nil {
		return nil, fmt.Errorf("get lesson %d/%d: %w", courseID, lessonID, err)
	}
	return lesson, nil
}

func (s *AdminService) DeleteLesson(ctx context.Context, token string, courseID, lessonID int) error {
	if err := s.CourseRepo.DeleteLesson(ctx, token, courseID, lessonID); err != nil {
		return fmt.Errorf("delete lesson %d/%d: %w", courseID, lessonID, err)
	}
	return nil
}

func (s *AdminService) Missions(ctx context.Context, token string) ([]model.MissionSummary, error) {
	missions, err := s.MissionRepo.List(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list missions: %w", err)
	}
	return missions, nil
}

// CreateMission 表单有误时不会发出请求
func (s *AdminService) CreateMission(ctx context.Context, token string, form MissionForm) (*model.Mission, error) {
	req, err := form.ToCreate()
	if err != nil {
		return nil, err
	}
	mission, err := s.MissionRepo.Create(ctx, token, req)
	if err != nil {
		return nil, fmt.Errorf("create mission: %w", err)
	}
	return mission, nil
}

// ToCreate 免费课程价格一律为 0
func (f CourseForm) ToCreate() (*model.CourseCreate, error) {
	if err := ValidateForm(f, "강좌 정보를 올바르게 입력해주세요."); err != nil {
		return nil, err
	}

	order, err := parseOrder(f.Order)
	if err != nil {
		return nil, err
	}

	req := &model.CourseCreate{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Order:       order,
		IsPaid:      f.IsPaid,
		Lessons:     []model.LessonCreate{},
	}
	if f.IsPaid {
		price, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
		if err != nil || price <= 0 {
			return nil, util.ValidationError("유료 강좌의 가격을 입력해주세요.")
		}
		req.Price = price
	}
	return req, nil
}

func (f LessonForm) ToCreate() (*model.LessonCreate, error) {
	if err := ValidateForm(f, "레슨 정보를 올바르게 입력해주세요."); err != nil {
		return nil, err
	}

	order, err := parseOrder(f.Order)
	if err != nil {
		return nil, err
	}

	return &model.LessonCreate{
		Title:    strings.TrimSpace(f.Title),
		Content:  f.Content,
		VideoURL: strings.TrimSpace(f.VideoURL),
		Order:    order,
	}, nil
}

func (f MissionForm) ToCreate() (*model.MissionCreate, error) {
	if err := ValidateForm(f, "미션 정보를 올바르게 입력해주세요."); err != nil {
		return nil, err
	}

	req := &model.MissionCreate{
		Course:   strings.TrimSpace(f.Course),
		Question: strings.TrimSpace(f.Question),
		Type:     model.MissionType(f.Type),
		ExamType: model.ExamType(strings.TrimSpace(f.ExamType)),
	}
	switch req.Type {
	case model.MultipleChoice:
		options := util.SplitOptions(f.Options)
		if len(options) == 0 {
			return nil, util.ValidationError("선택지를 쉼표로 구분해 입력해주세요.")
		}
		answer := strings.ToUpper(strings.TrimSpace(f.CorrectAnswer))
		if len(answer) != 1 || answer[0] < 'A' || answer[0] > 'E' {
			return nil, util.ValidationError("정답은 A부터 E 사이의 한 글자여야 합니다.")
		}
		req.MultipleChoice = &model.MultipleChoicePayload{
			Options:       options,
			CorrectAnswer: answer,
		}
	case model.CodeSubmission:
		var cases []json.RawMessage
		if err := json.Unmarshal([]byte(f.TestCases), &cases); err != nil || cases == nil {
			return nil, util.ValidationError("테스트 케이스는 JSON 배열이어야 합니다.")
		}
		code := &model.CodeSubmissionPayload{
			ProblemDescription: f.ProblemDescription,
			TestCases:          cases,
		}
		if f.InitialCode != "" {
			initial := f.InitialCode
			code.InitialCode = &initial
		}
		req.CodeSubmission = code
	default:
		return nil, util.UnhandledVariant(f.Type)
	}

	return req, nil
}

func parseOrder(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	order, err := strconv.Atoi(raw)
	if err != nil || order < 0 {
		return 0, util.ValidationError("순서는 0 이상의 숫자여야 합니다.")
	}
	return order, nil
}
