package capability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/errs"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/logger"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/metrics"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	contentType    = "application/json"
	defaultTimeout = 60 * time.Second
	defaultLogLen  = 200
	defaultAgent   = "jobmatch-cli"
	requestIDKey   = "X-Request-ID"
)

// Capability names used in logs and metrics.
const (
	CapGenerateQuestions = "generate-questions"
	CapEvaluateAnswers   = "evaluate-answers"
	CapPostJob           = "post-job"
	CapMatchCandidates   = "match-candidates"
	CapDownloadResume    = "resume-download"
	CapListPostings      = "postings-list"
)

const (
	pathCreateResume = "/create-resume"
	pathUploadResume = "/upload-resume"
	pathCheckAnswers = "/check-answers"
	pathPostJob      = "/post-job"
	pathMatchJobs    = "/match-jobs"
	pathGetResume    = "/get-resume/"
	pathPostings     = "/postings"
)

// Options configures a Client.
type Options struct {
	URL          string
	Token        string
	UserAgent    string
	Timeout      time.Duration
	MaxLogLength int
	Logger       *zap.Logger
	Metrics      *metrics.Recorder
}

// Client talks to the evaluation and matching service. Every call is a single
// attempt bounded by HTTPClient.Timeout.
type Client struct {
	token     string
	logger    *zap.Logger
	metrics   *metrics.Recorder
	maxLogLen int

	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

var (
	_ ResumeCapabilities = (*Client)(nil)
	_ JobCapabilities    = (*Client)(nil)
)

func New(opts Options) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(opts.URL))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api url %q must be http or https", opts.URL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	agent := strings.TrimSpace(opts.UserAgent)
	if agent == "" {
		agent = defaultAgent
	}

	maxLogLen := opts.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultLogLen
	}

	return &Client{
		token:     strings.TrimSpace(opts.Token),
		logger:    logger.WithFields(opts.Logger),
		metrics:   opts.Metrics,
		maxLogLen: maxLogLen,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		UserAgent: agent,
		APIURL:    strings.TrimRight(u.String(), "/"),
	}, nil
}

// GenerateQuestions submits a filled-in resume form.
func (c *Client) GenerateQuestions(ctx context.Context, draft ResumeDraft) (qs QuestionSet, err error) {
	defer c.observe(CapGenerateQuestions, time.Now(), &err)

	data, err := c.postJSON(ctx, CapGenerateQuestions, pathCreateResume, draft)
	if err != nil {
		return nil, err
	}

	return c.decodeQuestions(data)
}

// UploadResume submits a resume document as the multipart field "resume".
func (c *Client) UploadResume(ctx context.Context, file ResumeFile) (qs QuestionSet, err error) {
	defer c.observe(CapGenerateQuestions, time.Now(), &err)

	if err := file.Validate(); err != nil {
		return nil, err
	}

	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename=%q`, file.Name))
	ct := file.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	header.Set("Content-Type", ct)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create multipart part: %w", err)
	}
	if _, err := io.Copy(part, bytes.NewReader(file.Data)); err != nil {
		return nil, fmt.Errorf("write multipart part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(pathUploadResume), &b)
	if err != nil {
		return nil, err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", w.FormDataContentType())

	data, _, err := c.send(CapGenerateQuestions, req)
	if err != nil {
		return nil, err
	}

	return c.decodeQuestions(data)
}

// EvaluateAnswers submits the answer set and returns the evaluation and advice.
func (c *Client) EvaluateAnswers(ctx context.Context, answers AnswerSet) (ev Evaluation, err error) {
	defer c.observe(CapEvaluateAnswers, time.Now(), &err)

	payload := struct {
		Answers AnswerSet `json:"answers"`
	}{Answers: answers}

	data, err := c.postJSON(ctx, CapEvaluateAnswers, pathCheckAnswers, payload)
	if err != nil {
		return Evaluation{}, err
	}

	if err := decodeDocument(data, evaluationSchema, &ev); err != nil {
		return Evaluation{}, errs.Malformed(CapEvaluateAnswers, err)
	}

	return ev, nil
}

// PostJob publishes a posting. Any 2xx status is an acknowledgement; the body is optional.
func (c *Client) PostJob(ctx context.Context, posting JobPosting) (ack JobPostAck, err error) {
	defer c.observe(CapPostJob, time.Now(), &err)

	data, err := c.postJSON(ctx, CapPostJob, pathPostJob, posting)
	if err != nil {
		return JobPostAck{}, err
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return JobPostAck{}, nil
	}

	if err := decodeDocument(data, postAckSchema, &ack); err != nil {
		return JobPostAck{}, errs.Malformed(CapPostJob, err)
	}

	return ack, nil
}

// MatchCandidates returns the identifiers of resumes matching the query.
func (c *Client) MatchCandidates(ctx context.Context, query MatchQuery) (res JobMatchResult, err error) {
	defer c.observe(CapMatchCandidates, time.Now(), &err)

	data, err := c.postJSON(ctx, CapMatchCandidates, pathMatchJobs, query)
	if err != nil {
		return JobMatchResult{}, err
	}

	if err := decodeDocument(data, matchSchema, &res); err != nil {
		return JobMatchResult{}, errs.Malformed(CapMatchCandidates, err)
	}

	if res.Resumes == nil {
		res.Resumes = []string{}
	}

	return res, nil
}

// DownloadResume fetches a matched resume by its identifier.
func (c *Client) DownloadResume(ctx context.Context, filename string) (att Attachment, err error) {
	defer c.observe(CapDownloadResume, time.Now(), &err)

	filename = strings.TrimSpace(filename)
	if filename == "" {
		return Attachment{}, errs.Validation(CapDownloadResume, "resume identifier is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(pathGetResume+url.PathEscape(filename)), nil)
	if err != nil {
		return Attachment{}, err
	}
	req = c.setHeaders(req)

	data, header, err := c.send(CapDownloadResume, req)
	if err != nil {
		var e *errs.Error
		if errors.As(err, &e) && e.Status == http.StatusNotFound {
			return Attachment{}, errs.NotFound(CapDownloadResume, fmt.Sprintf("resume %q", filename))
		}
		return Attachment{}, err
	}

	att = Attachment{
		Filename:    filename,
		ContentType: header.Get("Content-Type"),
		Data:        data,
	}

	if _, params, err := mime.ParseMediaType(header.Get("Content-Disposition")); err == nil {
		if name := strings.TrimSpace(params["filename"]); name != "" {
			att.Filename = name
		}
	}

	return att, nil
}

// ListPostings returns every posted job.
func (c *Client) ListPostings(ctx context.Context) (postings []JobPosting, err error) {
	defer c.observe(CapListPostings, time.Now(), &err)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(pathPostings), nil)
	if err != nil {
		return nil, err
	}
	req = c.setHeaders(req)
	req.Header.Set("Accept", contentType)

	data, _, err := c.send(CapListPostings, req)
	if err != nil {
		return nil, err
	}

	if err := decodeDocument(data, postingsSchema, &postings); err != nil {
		return nil, errs.Malformed(CapListPostings, err)
	}

	return postings, nil
}

func (c *Client) decodeQuestions(data []byte) (QuestionSet, error) {
	var resp struct {
		Questions []string `mapstructure:"questions"`
	}
	if err := decodeDocument(data, questionsSchema, &resp); err != nil {
		return nil, errs.Malformed(CapGenerateQuestions, err)
	}

	return QuestionSet(resp.Questions), nil
}

func (c *Client) postJSON(ctx context.Context, capability, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", capability, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)

	c.logger.Debug("request payload",
		zap.String(logger.FieldCapability, capability),
		zap.String("payload_preview", utils.TruncateForLog(string(body), c.maxLogLen)),
	)

	data, _, err := c.send(capability, req)
	return data, err
}

// send performs the request once and returns the body of a 2xx response.
func (c *Client) send(capability string, req *http.Request) ([]byte, http.Header, error) {
	log := c.logger.With(logger.CapabilityFields(capability, req.URL.Path)...).
		With(zap.String(logger.FieldRequestID, req.Header.Get(requestIDKey)))

	log.Debug("make request", zap.String("url", req.URL.String()), zap.String("method", req.Method))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, nil, errs.Transport(capability, 0, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, errs.Transport(capability, resp.StatusCode, fmt.Errorf("read body: %w", err))
	}

	log.Debug("got response",
		zap.Int("status", resp.StatusCode),
		zap.Int("response_length", len(data)),
		zap.String("response_preview", utils.TruncateForLog(string(data), c.maxLogLen)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var cause error
		if msg := serverError(data); msg != "" {
			cause = errors.New(msg)
		}
		return nil, nil, errs.Transport(capability, resp.StatusCode, cause)
	}

	return data, resp.Header, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set(requestIDKey, uuid.NewString())

	return req
}

func (c *Client) endpoint(path string) string {
	return c.APIURL + path
}

func (c *Client) observe(capability string, started time.Time, errp *error) {
	c.metrics.ObserveCall(capability, started, *errp)
	if *errp != nil {
		c.logger.Warn("capability call failed", zap.String(logger.FieldCapability, capability), zap.Error(*errp))
	}
}
