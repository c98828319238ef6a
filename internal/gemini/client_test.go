package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	if _, err := New(context.Background(), Config{APIKey: "  "}); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestTextFrom(t *testing.T) {
	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		want    string
		wantErr bool
	}{
		{name: "nil", resp: nil, wantErr: true},
		{name: "no_candidates", resp: &genai.GenerateContentResponse{}, wantErr: true},
		{
			name: "blank_text",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []*genai.Part{{Text: "  "}}}},
			}},
			wantErr: true,
		},
		{
			name: "text",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []*genai.Part{{Text: " Subject: Hi\nBody "}}}},
			}},
			want: "Subject: Hi\nBody",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := textFrom(tt.resp)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	err := describe(genai.APIError{Code: 429, Message: "quota"})
	if !strings.Contains(err.Error(), "429") || !strings.Contains(err.Error(), "quota") {
		t.Errorf("unexpected api error description: %v", err)
	}

	base := errors.New("dial tcp: refused")
	if err := describe(base); !errors.Is(err, base) {
		t.Errorf("expected wrapped transport error, got %v", err)
	}
}
