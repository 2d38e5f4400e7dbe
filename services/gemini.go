package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Thiếu API key phải phát hiện ngay khi khởi tạo client, không để lỗi giữa pipeline.
var ErrMissingAPIKey = errors.New("thiếu GEMINI_API_KEY")

// GenAIErrorKind phân loại lỗi từ Gemini để tầng HTTP chọn status code
// mà không phải so khớp chuỗi thông báo lỗi.
type GenAIErrorKind int

const (
	GenAIUnknown GenAIErrorKind = iota
	GenAIRateLimited               // 429 / hết quota
	GenAIUnavailable               // model không tồn tại hoặc dịch vụ quá tải
)

type GenAIError struct {
	Kind GenAIErrorKind
	Err  error
}

func (e *GenAIError) Error() string {
	return fmt.Sprintf("lỗi Gemini: %v", e.Err)
}

func (e *GenAIError) Unwrap() error { return e.Err }

// classifyGenAIError đọc mã HTTP từ googleapi.Error thay vì đoán theo message.
func classifyGenAIError(err error) *GenAIError {
	kind := GenAIUnknown
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case 429:
			kind = GenAIRateLimited
		case 404, 503:
			kind = GenAIUnavailable
		}
	}
	return &GenAIError{Kind: kind, Err: err}
}

type GeminiConfig struct {
	APIKey string
	Model  string // mặc định gemini-2.0-flash
}

// GeminiClient giữ một genai.Client dùng chung, inject vào CourseGenerator
// thay vì tạo client mới mỗi lần gọi.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("không thể tạo Gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: cfg.Model}, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

const syllabusPromptTemplate = `You are a Senior Curriculum Designer for a top-tier tech university.
Your goal is to design a rigorous, project-based syllabus for: '%s'.

STRICT REQUIREMENTS:

1. Title: Professional and outcome-focused (e.g., "Advanced Backend Systems with Rust" instead of "Rust Course").

2. Description: A compelling 2-sentence hook about what the user will build.

3. Modules: Create exactly 4 modules.
   - Module 1: Professional Foundations.
   - Module 2: Core Architecture & Patterns.
   - Module 3: Advanced Techniques & Optimization.
   - Module 4: The Capstone Project.

4. Lessons: Each module must have 3-4 lessons.

CRITICAL: Lesson titles must be SEARCH OPTIMIZED for YouTube.
   - Bad: "Variables"
   - Good: "Rust memory management stack vs heap tutorial"

OUTPUT FORMAT (JSON ONLY):
{
    "title": "...",
    "description": "...",
    "level": "Beginner|Intermediate|Advanced",
    "modules": [
        {
            "title": "Module 1: Professional Foundations",
            "lessons": ["search query 1", "search query 2", "search query 3"]
        }
    ]
}

Return ONLY valid JSON. No markdown, no code blocks, no extra text.`

// GenerateSyllabusText gọi Gemini sinh đề cương dạng JSON thô cho một chủ đề.
// Kết quả chưa được làm sạch — caller tự gọi CleanJSONResponse + ParseSyllabus.
func (g *GeminiClient) GenerateSyllabusText(ctx context.Context, topic string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	prompt := fmt.Sprintf(syllabusPromptTemplate, topic)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifyGenAIError(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &GenAIError{Kind: GenAIUnavailable, Err: errors.New("gemini không trả kết quả hợp lệ")}
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}
