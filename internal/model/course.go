package model

type Course struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Order       int      `json:"order"`
	IsPaid      bool     `json:"is_paid"`
	Price       float64  `json:"price"`
	Lessons     []Lesson `json:"lessons"`
}

type Lesson struct {
	ID       int    `json:"id"`
	CourseID int    `json:"course_id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	VideoURL string `json:"video_url"`
	Order    int    `json:"order"`
}

// CourseRoadmap 路线图条目，带报名状态
type CourseRoadmap struct {
	Course
	IsEnrolled bool `json:"is_enrolled"`
}

type Enrollment struct {
	ID          int  `json:"id"`
	UserID      int  `json:"user_id"`
	CourseID    int  `json:"course_id"`
	IsCompleted bool `json:"is_completed"`
}

type CourseProgress struct {
	CourseID           int     `json:"course_id"`
	CourseTitle        string  `json:"course_title"`
	ProgressPercentage float64 `json:"progress_percentage"`
	CompletedLessons   int     `json:"completed_lessons"`
	TotalLessons       int     `json:"total_lessons"`
}

type LessonProgress struct {
	LessonID    int  `json:"lesson_id"`
	IsCompleted bool `json:"is_completed"`
}

type Review struct {
	ID       int    `json:"id,omitempty"`
	CourseID int    `json:"course_id,omitempty"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

// CourseCreate 新建或更新课程
type CourseCreate struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Order       int            `json:"order"`
	IsPaid      bool           `json:"is_paid"`
	Price       float64        `json:"price"`
	Lessons     []LessonCreate `json:"lessons"`
}

type LessonCreate struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	VideoURL string `json:"video_url,omitempty"`
	Order    int    `json:"order"`
}
