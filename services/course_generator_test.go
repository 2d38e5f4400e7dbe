package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Abdulrehman1978/visionflow/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Course{},
		&models.Module{},
		&models.Lesson{},
	))
	return db
}

type fakeAI struct {
	text string
	err  error
}

func (f *fakeAI) GenerateSyllabusText(ctx context.Context, topic string) (string, error) {
	return f.text, f.err
}

type fakeResolver struct {
	calls    []string
	fallback bool
}

func (f *fakeResolver) Resolve(ctx context.Context, query string) VideoLookup {
	f.calls = append(f.calls, query)
	if f.fallback {
		return fallbackLookup(query)
	}
	return VideoLookup{
		ID:       fmt.Sprintf("vid%03d", len(f.calls)),
		Title:    query,
		Duration: "12:34",
	}
}

// Đề cương 4 module x 3 bài, bọc fence để đi qua cả bước làm sạch.
func cannedSyllabus() string {
	body := `{
		"title": "Rust Programming Mastery",
		"description": "Build fast and safe systems with Rust.",
		"level": "Intermediate",
		"modules": [`
	for m := 1; m <= 4; m++ {
		if m > 1 {
			body += ","
		}
		body += fmt.Sprintf(`{"title": "Module %d", "lessons": [`, m)
		for l := 1; l <= 3; l++ {
			if l > 1 {
				body += ","
			}
			body += fmt.Sprintf(`"rust topic %d.%d tutorial"`, m, l)
		}
		body += `]}`
	}
	body += `]}`
	return "```json\n" + body + "\n```"
}

var courseIDPattern = regexp.MustCompile(`^[a-z0-9_]{1,50}$`)

func TestGenerateCourseEndToEnd(t *testing.T) {
	db := newTestDB(t)
	resolver := &fakeResolver{}
	gen := &CourseGenerator{
		DB:     db,
		AI:     &fakeAI{text: cannedSyllabus()},
		Videos: resolver,
	}

	courseID, err := gen.GenerateCourse(context.Background(), "", "Rust Programming")
	require.NoError(t, err)
	assert.Equal(t, "rust_programming_mastery", courseID)
	assert.Regexp(t, courseIDPattern, courseID)

	// 12 bài học = 12 lần tìm video, tuần tự theo thứ tự đề cương
	require.Len(t, resolver.calls, 12)
	assert.Equal(t, "rust topic 1.1 tutorial", resolver.calls[0])

	var course models.Course
	require.NoError(t, db.First(&course, "id = ?", courseID).Error)
	assert.Equal(t, "Rust Programming Mastery", course.Title)
	assert.Equal(t, "Intermediate", course.Level)
	assert.True(t, course.IsGenerated)
	// Thumbnail lấy từ video của bài đầu tiên
	assert.Equal(t, ThumbnailURL("vid001"), course.ThumbnailURL)

	var modules []models.Module
	require.NoError(t, db.Where("course_id = ?", courseID).Order("order_index").Find(&modules).Error)
	require.Len(t, modules, 4)
	for i, m := range modules {
		assert.Equal(t, i+1, m.OrderIndex)

		var lessons []models.Lesson
		require.NoError(t, db.Where("module_id = ?", m.ID).Order("order_index").Find(&lessons).Error)
		require.Len(t, lessons, 3)
		for j, l := range lessons {
			assert.Equal(t, j+1, l.OrderIndex)
			assert.NotEmpty(t, l.VideoID)
			assert.Equal(t, "12:34", l.Duration)
		}
	}
}

func TestGenerateCourseDefaults(t *testing.T) {
	db := newTestDB(t)
	gen := &CourseGenerator{
		DB: db,
		AI: &fakeAI{text: `{"title": "Bare Course", "modules": [{"title": "M1", "lessons": ["x tutorial"]}]}`},
		Videos: &fakeResolver{},
	}

	courseID, err := gen.GenerateCourse(context.Background(), "", "Bare Topic")
	require.NoError(t, err)

	var course models.Course
	require.NoError(t, db.First(&course, "id = ?", courseID).Error)
	assert.Equal(t, "Master Bare Topic from scratch", course.Description)
	assert.Equal(t, defaultLevel, course.Level)
}

func TestGenerateCourseAIFailureNoWrites(t *testing.T) {
	db := newTestDB(t)
	upstream := &GenAIError{Kind: GenAIRateLimited, Err: errors.New("quota exceeded")}
	gen := &CourseGenerator{
		DB:     db,
		AI:     &fakeAI{err: upstream},
		Videos: &fakeResolver{},
	}

	_, err := gen.GenerateCourse(context.Background(), "", "Rust Programming")
	var genErr *GenAIError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, GenAIRateLimited, genErr.Kind)

	assertNoRows(t, db)
}

func TestGenerateCourseInvalidJSONNoWrites(t *testing.T) {
	db := newTestDB(t)
	gen := &CourseGenerator{
		DB:     db,
		AI:     &fakeAI{text: "sorry, no JSON today"},
		Videos: &fakeResolver{},
	}

	_, err := gen.GenerateCourse(context.Background(), "", "Rust Programming")
	var parseErr *SyllabusParseError
	require.ErrorAs(t, err, &parseErr)

	assertNoRows(t, db)
}

func TestGenerateCourseMissingFieldNoWrites(t *testing.T) {
	db := newTestDB(t)
	gen := &CourseGenerator{
		DB:     db,
		AI:     &fakeAI{text: `{"description": "no title here", "modules": [{"title": "M1", "lessons": ["x"]}]}`},
		Videos: &fakeResolver{},
	}

	_, err := gen.GenerateCourse(context.Background(), "", "Rust Programming")
	assert.ErrorIs(t, err, ErrMissingSyllabusField)

	assertNoRows(t, db)
}

func TestGenerateCourseSlugCollision(t *testing.T) {
	db := newTestDB(t)
	gen := &CourseGenerator{
		DB:     db,
		AI:     &fakeAI{text: cannedSyllabus()},
		Videos: &fakeResolver{},
	}

	firstID, err := gen.GenerateCourse(context.Background(), "", "Rust Programming")
	require.NoError(t, err)

	secondID, err := gen.GenerateCourse(context.Background(), "", "Rust Programming")
	require.NoError(t, err)

	assert.NotEqual(t, firstID, secondID)
	assert.Regexp(t, courseIDPattern, secondID)
	assert.Contains(t, secondID, firstID[:10])

	var count int64
	db.Model(&models.Course{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestGenerateCourseFallbackVideos(t *testing.T) {
	db := newTestDB(t)
	gen := &CourseGenerator{
		DB:     db,
		AI:     &fakeAI{text: cannedSyllabus()},
		Videos: &fakeResolver{fallback: true},
	}

	courseID, err := gen.GenerateCourse(context.Background(), "", "Rust Programming")
	require.NoError(t, err) // video hỏng không được làm hỏng cả khóa học

	var course models.Course
	require.NoError(t, db.First(&course, "id = ?", courseID).Error)
	assert.Equal(t, ThumbnailURL(FallbackVideoID), course.ThumbnailURL)

	var lessons []models.Lesson
	require.NoError(t, db.Find(&lessons).Error)
	require.Len(t, lessons, 12)
	for _, l := range lessons {
		assert.Equal(t, FallbackVideoID, l.VideoID)
		assert.Equal(t, FallbackDuration, l.Duration)
	}
}

func TestGenerateCourseNotify(t *testing.T) {
	db := newTestDB(t)
	var stages []string
	gen := &CourseGenerator{
		DB:     db,
		AI:     &fakeAI{text: cannedSyllabus()},
		Videos: &fakeResolver{},
		Notify: func(requestID, stage string, progress float64) {
			assert.Equal(t, "req-1", requestID)
			stages = append(stages, stage)
		},
	}

	_, err := gen.GenerateCourse(context.Background(), "req-1", "Rust Programming")
	require.NoError(t, err)

	require.NotEmpty(t, stages)
	assert.Equal(t, "generating_syllabus", stages[0])
	assert.Equal(t, "completed", stages[len(stages)-1])
}

func TestDeriveCourseID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Rust Programming", "rust_programming"},
		{"Go - The Basics!", "go_the_basics"},
		{"Go & Rust Basics", "go_and_rust_basics"},
		{"   ", "course"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DeriveCourseID(tc.in), "input: %q", tc.in)
	}

	long := DeriveCourseID("This Is An Extremely Long Course Title That Keeps Going And Going Forever")
	assert.LessOrEqual(t, len(long), 50)
	assert.Regexp(t, courseIDPattern, long)
}

func assertNoRows(t *testing.T, db *gorm.DB) {
	t.Helper()
	var courses, modules, lessons int64
	db.Model(&models.Course{}).Count(&courses)
	db.Model(&models.Module{}).Count(&modules)
	db.Model(&models.Lesson{}).Count(&lessons)
	assert.Zero(t, courses)
	assert.Zero(t, modules)
	assert.Zero(t, lessons)
}
