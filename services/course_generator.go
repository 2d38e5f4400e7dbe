package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/Abdulrehman1978/visionflow/models"
)

const (
	defaultLevel         = "Beginner"
	placeholderThumbnail = "https://img.youtube.com/vi/placeholder/mqdefault.jpg"

	// Số lần thử tối đa khi slug trùng khóa chính — mỗi lần thử sau
	// sinh hậu tố ngẫu nhiên mới, DB là nơi quyết định trùng hay không.
	maxSlugAttempts = 3
)

type TextGenerator interface {
	GenerateSyllabusText(ctx context.Context, topic string) (string, error)
}

type VideoResolver interface {
	Resolve(ctx context.Context, query string) VideoLookup
}

// CourseGenerator điều phối pipeline tạo khóa học:
// sinh đề cương → làm sạch/parse → tìm video từng bài → ghi DB một transaction.
// Các client được inject từ ngoài để test thay bằng fake được.
type CourseGenerator struct {
	DB     *gorm.DB
	AI     TextGenerator
	Videos VideoResolver

	// Notify đẩy tiến độ ra ngoài (WebSocket hub); nil thì bỏ qua.
	// Chỉ là kênh theo dõi, không được ảnh hưởng kết quả pipeline.
	Notify func(requestID, stage string, progress float64)
}

func (g *CourseGenerator) notify(requestID, stage string, progress float64) {
	if g.Notify != nil && requestID != "" {
		g.Notify(requestID, stage, progress)
	}
}

// Dữ liệu gom đủ trong bộ nhớ trước khi chạm DB — lỗi ở bước sinh/parse
// đảm bảo không để lại dòng nào.
type lessonPlan struct {
	title    string
	videoID  string
	duration string
}

type modulePlan struct {
	title   string
	lessons []lessonPlan
}

type coursePlan struct {
	title       string
	description string
	level       string
	thumbnail   string
	modules     []modulePlan
}

// GenerateCourse chạy pipeline cho một chủ đề và trả về ID khóa học đã lưu.
// requestID chỉ dùng cho kênh thông báo tiến độ, có thể rỗng.
func (g *CourseGenerator) GenerateCourse(ctx context.Context, requestID, topic string) (string, error) {
	log.Printf("Bắt đầu tạo khóa học cho chủ đề: %s", topic)
	g.notify(requestID, "generating_syllabus", 0.05)

	raw, err := g.AI.GenerateSyllabusText(ctx, topic)
	if err != nil {
		return "", err
	}

	syl, err := ParseSyllabus(CleanJSONResponse(raw))
	if err != nil {
		return "", err
	}
	log.Printf("Đã sinh đề cương: %s", syl.Title)

	plan := g.buildPlan(ctx, requestID, topic, syl)

	g.notify(requestID, "saving", 0.9)
	courseID, err := g.persist(plan)
	if err != nil {
		return "", err
	}

	log.Printf("Đã lưu khóa học %q với ID: %s", syl.Title, courseID)
	g.notify(requestID, "completed", 1.0)
	return courseID, nil
}

// buildPlan tìm video cho từng bài học, tuần tự theo thứ tự đề cương.
// Tìm video không bao giờ lỗi (resolver tự fallback) nên plan luôn đầy đủ.
func (g *CourseGenerator) buildPlan(ctx context.Context, requestID, topic string, syl *Syllabus) coursePlan {
	plan := coursePlan{
		title:       syl.Title,
		description: syl.Description,
		level:       syl.Level,
		thumbnail:   placeholderThumbnail,
	}
	if plan.description == "" {
		plan.description = fmt.Sprintf("Master %s from scratch", topic)
	}
	if plan.level == "" {
		plan.level = defaultLevel
	}

	total := 0
	for _, m := range syl.Modules {
		total += len(m.Lessons)
	}

	done := 0
	for mi, m := range syl.Modules {
		mp := modulePlan{title: m.Title}
		for li, lessonTitle := range m.Lessons {
			v := g.Videos.Resolve(ctx, lessonTitle)
			mp.lessons = append(mp.lessons, lessonPlan{
				title:    lessonTitle,
				videoID:  v.ID,
				duration: v.Duration,
			})

			// Thumbnail khóa học lấy từ video của bài học đầu tiên
			if mi == 0 && li == 0 {
				plan.thumbnail = ThumbnailURL(v.ID)
			}

			done++
			if total > 0 {
				g.notify(requestID, fmt.Sprintf("resolving_videos %d/%d", done, total),
					0.1+0.8*float64(done)/float64(total))
			}
		}
		plan.modules = append(plan.modules, mp)
	}
	return plan
}

// persist ghi toàn bộ course/module/lesson trong một transaction.
// Trùng khóa chính (2 request sinh cùng slug) thì thử lại với hậu tố mới.
func (g *CourseGenerator) persist(plan coursePlan) (string, error) {
	baseID := DeriveCourseID(plan.title)

	courseID := baseID
	var err error
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		if attempt > 0 {
			courseID = withRandomSuffix(baseID)
			log.Printf("ID khóa học trùng, thử lại với: %s", courseID)
		}

		err = g.DB.Transaction(func(tx *gorm.DB) error {
			course := models.Course{
				ID:           courseID,
				Title:        plan.title,
				Description:  plan.description,
				ThumbnailURL: plan.thumbnail,
				Level:        plan.level,
				IsGenerated:  true,
			}
			if err := tx.Create(&course).Error; err != nil {
				return err
			}

			for mi, mp := range plan.modules {
				mod := models.Module{
					CourseID:   courseID,
					Title:      mp.title,
					OrderIndex: mi + 1,
				}
				if err := tx.Create(&mod).Error; err != nil {
					return err
				}

				for li, lp := range mp.lessons {
					lesson := models.Lesson{
						ModuleID:   mod.ID,
						Title:      lp.title,
						VideoID:    lp.videoID,
						Duration:   lp.duration,
						OrderIndex: li + 1,
					}
					if err := tx.Create(&lesson).Error; err != nil {
						return err
					}
				}
			}
			return nil
		})

		if err == nil {
			return courseID, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", err
		}
	}
	return "", fmt.Errorf("không tìm được ID duy nhất cho khóa học sau %d lần thử: %w", maxSlugAttempts, err)
}

// DeriveCourseID sinh slug từ tiêu đề: chữ thường, gạch dưới, tối đa 50 ký tự.
func DeriveCourseID(title string) string {
	id := strings.ReplaceAll(slug.Make(title), "-", "_")
	if len(id) > 50 {
		id = id[:50]
	}
	if id == "" {
		id = "course"
	}
	return id
}

func withRandomSuffix(baseID string) string {
	if len(baseID) > 46 {
		baseID = baseID[:46]
	}
	return fmt.Sprintf("%s_%03d", baseID, 100+rand.Intn(900))
}

// ThumbnailURL dựng URL ảnh thumbnail từ YouTube video ID.
func ThumbnailURL(videoID string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/mqdefault.jpg", videoID)
}
