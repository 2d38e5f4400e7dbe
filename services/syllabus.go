package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
)

// Syllabus là đề cương tạm trong bộ nhớ, chỉ các entity dẫn xuất mới được lưu DB.
type Syllabus struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Level       string           `json:"level"`
	Modules     []SyllabusModule `json:"modules"`
}

type SyllabusModule struct {
	Title   string   `json:"title"`
	Lessons []string `json:"lessons"` // mỗi phần tử là một câu query tìm video
}

// Prompt yêu cầu đúng 4 module; lệch số chỉ cảnh báo, không chặn pipeline.
const expectedModuleCount = 4

// Giới hạn preview khi log JSON lỗi, không đổ nguyên văn bản ra ngoài.
const previewLimit = 200

var ErrMissingSyllabusField = errors.New("đề cương thiếu trường bắt buộc")

// SyllabusParseError: Gemini phản hồi được nhưng nội dung không phải JSON hợp lệ.
// Phân biệt với GenAIError (dịch vụ không phản hồi được).
type SyllabusParseError struct {
	Preview string
	Err     error
}

func (e *SyllabusParseError) Error() string {
	return fmt.Sprintf("AI trả về JSON không hợp lệ: %v (preview: %q)", e.Err, e.Preview)
}

func (e *SyllabusParseError) Unwrap() error { return e.Err }

// CleanJSONResponse gỡ code fence markdown quanh JSON do AI trả về.
// Hàm thuần, idempotent: clean(clean(x)) == clean(x).
func CleanJSONResponse(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(strings.ToLower(s), "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ParseSyllabus parse văn bản đã làm sạch thành Syllabus.
// Trả về SyllabusParseError nếu không phải JSON, ErrMissingSyllabusField nếu
// thiếu title/modules. Số module lệch 4 chỉ log cảnh báo.
func ParseSyllabus(text string) (*Syllabus, error) {
	var syl Syllabus
	if err := json.Unmarshal([]byte(text), &syl); err != nil {
		preview := text
		if len(preview) > previewLimit {
			preview = preview[:previewLimit]
		}
		return nil, &SyllabusParseError{Preview: preview, Err: err}
	}

	if syl.Title == "" {
		return nil, fmt.Errorf("%w: title", ErrMissingSyllabusField)
	}
	if len(syl.Modules) == 0 {
		return nil, fmt.Errorf("%w: modules", ErrMissingSyllabusField)
	}

	if len(syl.Modules) != expectedModuleCount {
		log.Printf("Cảnh báo: đề cương có %d module, kỳ vọng %d", len(syl.Modules), expectedModuleCount)
	}

	return &syl, nil
}
