package service

import (
	"context"
	"edu_portal/internal/repository"
	"edu_portal/internal/util"
	"edu_portal/pkg/apiclient"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newCourseService(t *testing.T, h http.HandlerFunc) *CourseService {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewCourseService(repository.NewCourseRepository(apiclient.New(srv.URL, 2*time.Second)))
}

func TestSearchRequiresQuery(t *testing.T) {
	called := false
	s := newCourseService(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.Write([]byte(`[]`))
	})

	if _, err := s.Search(context.Background(), "", "   "); !errors.Is(err, util.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if called {
		t.Fatal("empty query must not reach the backend")
	}
}

func TestPopularDefaultLimit(t *testing.T) {
	var limits []string
	s := newCourseService(t, func(w http.ResponseWriter, r *http.Request) {
		limits = append(limits, r.URL.Query().Get("limit"))
		w.Write([]byte(`[{"id":1,"title":"Go"}]`))
	})

	for _, raw := range []string{"", "abc", "-3", "5"} {
		if _, err := s.Popular(context.Background(), "", raw); err != nil {
			t.Fatalf("popular %q: %v", raw, err)
		}
	}

	want := []string{"10", "10", "10", "5"}
	for i := range want {
		if limits[i] != want[i] {
			t.Fatalf("limits = %v, want %v", limits, want)
		}
	}
}

func TestLessonDetailSkipsProgressWhenLoggedOut(t *testing.T) {
	var paths []string
	s := newCourseService(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/courses/1/lessons/2/progress" {
			w.Write([]byte(`{"lesson_id":2,"is_completed":true}`))
			return
		}
		w.Write([]byte(`{"id":2,"course_id":1,"title":"변수"}`))
	})

	_, progress, err := s.LessonDetail(context.Background(), "", 1, 2)
	if err != nil || progress != nil || len(paths) != 1 {
		t.Fatalf("logged out: progress = %v err = %v paths = %v", progress, err, paths)
	}

	_, progress, err = s.LessonDetail(context.Background(), "tok", 1, 2)
	if err != nil || progress == nil || !progress.IsCompleted {
		t.Fatalf("logged in: progress = %v err = %v", progress, err)
	}
}

func TestReviewRatingRange(t *testing.T) {
	s := newCourseService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"rating":5}`))
	})

	if _, err := s.Review(context.Background(), "tok", 1, ReviewForm{Rating: 6}); !errors.Is(err, util.ErrValidation) {
		t.Fatalf("err = %v", err)
	}
	if _, err := s.Review(context.Background(), "tok", 1, ReviewForm{Rating: 5, Comment: "good"}); err != nil {
		t.Fatalf("review: %v", err)
	}
}

func TestFormatPercentage(t *testing.T) {
	if got := FormatPercentage(33.3333); got != "33.33%" {
		t.Fatalf("got %q", got)
	}
	if got := FormatPercentage(100); got != "100.00%" {
		t.Fatalf("got %q", got)
	}
}
