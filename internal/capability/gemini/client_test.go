package gemini

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/genai"
)

type fakeModels struct {
	resp  *genai.GenerateContentResponse
	err   error
	model string
	calls int
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	return f.resp, f.err
}

func TestGeneratorJoinsParts(t *testing.T) {
	models := &fakeModels{resp: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: " Q1 "}, nil, {Text: ""}, {Text: "Q2"}}},
		}, nil},
	}}

	g := newGenerator(models, "")
	out, err := g.GenerateContent(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Q1\nQ2" {
		t.Fatalf("unexpected output %q", out)
	}
	if models.model != defaultModel || g.Model() != defaultModel {
		t.Fatalf("expected default model, got %q", models.model)
	}
}

func TestGeneratorErrors(t *testing.T) {
	models := &fakeModels{err: errors.New("unavailable")}
	g := newGenerator(models, "custom")

	if _, err := g.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected error")
	}
	if models.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", models.calls)
	}

	if _, err := g.GenerateContent(context.Background(), "   "); err == nil {
		t.Fatalf("expected error for empty prompt")
	}

	empty := newGenerator(&fakeModels{resp: &genai.GenerateContentResponse{}}, "custom")
	if _, err := empty.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected error for empty response")
	}

	var nilGen *Generator
	if _, err := nilGen.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected error for nil generator")
	}
}
