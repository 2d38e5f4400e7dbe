package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func TestNewGeminiClientMissingKey(t *testing.T) {
	client, err := NewGeminiClient(context.Background(), GeminiConfig{})
	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestClassifyGenAIError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want GenAIErrorKind
	}{
		{"429 het quota", &googleapi.Error{Code: 429, Message: "quota exceeded"}, GenAIRateLimited},
		{"404 model khong ton tai", &googleapi.Error{Code: 404, Message: "model not found"}, GenAIUnavailable},
		{"503 qua tai", &googleapi.Error{Code: 503, Message: "overloaded"}, GenAIUnavailable},
		{"500 khac", &googleapi.Error{Code: 500, Message: "boom"}, GenAIUnknown},
		{"loi thuong", errors.New("connection refused"), GenAIUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			classified := classifyGenAIError(tc.err)
			assert.Equal(t, tc.want, classified.Kind)

			// Unwrap phải về được lỗi gốc
			assert.ErrorIs(t, classified, tc.err)
		})
	}
}
