package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONResponse(t *testing.T) {
	inner := `{"title": "Rust Mastery", "modules": []}`

	cases := []struct {
		name string
		in   string
	}{
		{"khong fence", inner},
		{"fence json", "```json\n" + inner + "\n```"},
		{"fence json viet hoa", "```JSON\n" + inner + "\n```"},
		{"fence tron", "```\n" + inner + "\n```"},
		{"thua khoang trang", "  \n```json\n" + inner + "\n```  \n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, inner, CleanJSONResponse(tc.in))
		})
	}
}

func TestCleanJSONResponseIdempotent(t *testing.T) {
	inputs := []string{
		"```json\n{\"a\": 1}\n```",
		"```\n{\"a\": 1}\n```",
		"{\"a\": 1}",
		"",
		"```json```",
	}
	for _, in := range inputs {
		once := CleanJSONResponse(in)
		assert.Equal(t, once, CleanJSONResponse(once), "input: %q", in)
	}
}

func TestParseSyllabusValid(t *testing.T) {
	syl, err := ParseSyllabus(`{
		"title": "Advanced Go",
		"description": "Build real systems.",
		"level": "Intermediate",
		"modules": [
			{"title": "Module 1", "lessons": ["go concurrency tutorial", "go channels tutorial"]},
			{"title": "Module 2", "lessons": ["go generics tutorial"]}
		]
	}`)
	require.NoError(t, err)
	assert.Equal(t, "Advanced Go", syl.Title)
	assert.Equal(t, "Intermediate", syl.Level)
	require.Len(t, syl.Modules, 2) // lệch 4 module chỉ cảnh báo, không lỗi
	assert.Equal(t, []string{"go concurrency tutorial", "go channels tutorial"}, syl.Modules[0].Lessons)
}

func TestParseSyllabusMissingFields(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"thieu title", `{"modules": [{"title": "M1", "lessons": ["x"]}]}`},
		{"thieu modules", `{"title": "Go Course"}`},
		{"modules rong", `{"title": "Go Course", "modules": []}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			syl, err := ParseSyllabus(tc.in)
			assert.Nil(t, syl)
			assert.ErrorIs(t, err, ErrMissingSyllabusField)
		})
	}
}

func TestParseSyllabusInvalidJSON(t *testing.T) {
	garbage := "I'm sorry, I cannot help with that. " + strings.Repeat("x", 500)

	syl, err := ParseSyllabus(garbage)
	assert.Nil(t, syl)

	var parseErr *SyllabusParseError
	require.ErrorAs(t, err, &parseErr)
	assert.NotNil(t, parseErr.Err)
	// Preview phải bị cắt, không chứa nguyên văn bản
	assert.LessOrEqual(t, len(parseErr.Preview), previewLimit)
	assert.NotErrorIs(t, err, ErrMissingSyllabusField)
}
