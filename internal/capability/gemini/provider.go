// Package gemini serves the resume capabilities in-process with Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/capability"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/errs"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/logger"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/metrics"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/utils"

	"go.uber.org/zap"
)

const providerName = "gemini"

const defaultMaxLogLength = 200

//go:embed questions.md
var questionsTemplate string

//go:embed evaluation.md
var evaluationTemplate string

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Provider implements capability.ResumeCapabilities with a single Gemini call per capability.
type Provider struct {
	generator contentGenerator
	logger    *zap.Logger
	metrics   *metrics.Recorder
	maxLogLen int
}

var _ capability.ResumeCapabilities = (*Provider)(nil)

func NewProvider(generator contentGenerator, log *zap.Logger, rec *metrics.Recorder, model string, maxLogLength int) *Provider {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Provider{
		generator: generator,
		logger:    logger.WithFields(log, logger.ProviderFields(providerName, model)...),
		metrics:   rec,
		maxLogLen: maxLogLength,
	}
}

func (p *Provider) GenerateQuestions(ctx context.Context, draft capability.ResumeDraft) (qs capability.QuestionSet, err error) {
	defer p.observe(capability.CapGenerateQuestions, time.Now(), &err)

	payload, err := json.MarshalIndent(draft, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal resume draft: %w", err)
	}

	return p.questions(ctx, string(payload))
}

func (p *Provider) UploadResume(ctx context.Context, file capability.ResumeFile) (qs capability.QuestionSet, err error) {
	defer p.observe(capability.CapGenerateQuestions, time.Now(), &err)

	if err := file.Validate(); err != nil {
		return nil, err
	}

	text, err := ExtractText(file)
	if err != nil {
		return nil, errs.Validation("upload resume", "%v", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, errs.Validation("upload resume", "no text found in %s", file.Name)
	}

	return p.questions(ctx, text)
}

func (p *Provider) EvaluateAnswers(ctx context.Context, answers capability.AnswerSet) (ev capability.Evaluation, err error) {
	defer p.observe(capability.CapEvaluateAnswers, time.Now(), &err)

	if len(answers) == 0 {
		return capability.Evaluation{}, errs.Validation(capability.CapEvaluateAnswers, "no answers provided")
	}

	prompt := strings.ReplaceAll(evaluationTemplate, "{{ANSWERS}}", strings.Join(answers, ", "))

	raw, err := p.generate(ctx, capability.CapEvaluateAnswers, prompt)
	if err != nil {
		return capability.Evaluation{}, err
	}

	ev, err = parseEvaluation(raw)
	if err != nil {
		return capability.Evaluation{}, errs.Malformed(capability.CapEvaluateAnswers, err)
	}

	return ev, nil
}

func (p *Provider) questions(ctx context.Context, resume string) (capability.QuestionSet, error) {
	prompt := strings.ReplaceAll(questionsTemplate, "{{RESUME}}", resume)

	raw, err := p.generate(ctx, capability.CapGenerateQuestions, prompt)
	if err != nil {
		return nil, err
	}

	return splitQuestions(raw), nil
}

func (p *Provider) generate(ctx context.Context, op, prompt string) (string, error) {
	p.logger.Debug("gemini generate content request",
		zap.String(logger.FieldCapability, op),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, p.maxLogLen)),
	)

	raw, err := p.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", errs.Transport(op, 0, err)
	}

	p.logger.Debug("gemini generate content response",
		zap.String(logger.FieldCapability, op),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, p.maxLogLen)),
	)

	return raw, nil
}

func (p *Provider) observe(op string, started time.Time, errp *error) {
	p.metrics.ObserveCall(op, started, *errp)
}

// splitQuestions returns one question per response line. Blank lines are kept;
// the workflow filters them.
func splitQuestions(raw string) capability.QuestionSet {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	return capability.QuestionSet(lines)
}

// parseEvaluation splits a response of the form "Evaluation: ... Advice: ...".
func parseEvaluation(raw string) (capability.Evaluation, error) {
	text := strings.ReplaceAll(raw, "*", "")

	idx := strings.Index(text, "Advice:")
	if idx < 0 {
		return capability.Evaluation{}, errors.New(`response has no "Advice:" section`)
	}

	evaluation := strings.TrimSpace(text[:idx])
	evaluation = strings.TrimSpace(strings.TrimPrefix(evaluation, "Evaluation:"))
	advice := strings.TrimSpace(text[idx+len("Advice:"):])

	if evaluation == "" {
		return capability.Evaluation{}, errors.New("response has an empty evaluation")
	}

	return capability.Evaluation{Evaluation: evaluation, Advice: advice}, nil
}
