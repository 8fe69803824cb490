// Package capability holds the request and response types of the remote
// evaluation and matching service and an HTTP client for it.
package capability

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/errs"
)

// ResumeCapabilities are the remote calls behind the resume workflow.
type ResumeCapabilities interface {
	GenerateQuestions(ctx context.Context, draft ResumeDraft) (QuestionSet, error)
	UploadResume(ctx context.Context, file ResumeFile) (QuestionSet, error)
	EvaluateAnswers(ctx context.Context, answers AnswerSet) (Evaluation, error)
}

// JobCapabilities are the remote calls behind the job workflow.
type JobCapabilities interface {
	PostJob(ctx context.Context, posting JobPosting) (JobPostAck, error)
	MatchCandidates(ctx context.Context, query MatchQuery) (JobMatchResult, error)
}

type ResumeDraft struct {
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	About          string         `json:"about"`
	Skills         string         `json:"skills"`
	Education      Education      `json:"education"`
	Experience     string         `json:"experience"`
	PreferredRoles string         `json:"preferredRoles"`
	SelfAssessment SelfAssessment `json:"selfAssessment"`
}

type Education struct {
	School         string `json:"school"`
	University     string `json:"university"`
	Degree         string `json:"degree"`
	GraduationYear string `json:"graduationYear"`
}

// SelfAssessment holds free-form self ratings.
type SelfAssessment struct {
	EnglishProficiency string `json:"englishProficiency"`
	LeadershipSkills   string `json:"leadershipSkills"`
	ManagementSkills   string `json:"managementSkills"`
	ProblemSolving     string `json:"problemSolving"`
	TechnicalSkills    string `json:"technicalSkills"`
}

// Validate checks the required contact fields.
func (d ResumeDraft) Validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", d.Name},
		{"email", d.Email},
		{"phone", d.Phone},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}

	if len(missing) > 0 {
		return errs.Validation("submit resume", "missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ResumeFile is a resume document selected for upload.
type ResumeFile struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f *ResumeFile) Validate() error {
	switch {
	case f == nil:
		return errs.Validation("upload resume", "no file selected")
	case strings.TrimSpace(f.Name) == "":
		return errs.Validation("upload resume", "file name is empty")
	case len(f.Data) == 0:
		return errs.Validation("upload resume", "file %q is empty", f.Name)
	}
	return nil
}

// QuestionSet is the ordered list of generated interview questions.
type QuestionSet []string

// FilterBlank drops empty and whitespace-only questions. It is idempotent.
func (q QuestionSet) FilterBlank() QuestionSet {
	out := make(QuestionSet, 0, len(q))
	for _, question := range q {
		if strings.TrimSpace(question) == "" {
			continue
		}
		out = append(out, question)
	}
	return out
}

// AnswerSet holds one answer per question, sharing the question index space.
type AnswerSet []string

// NewAnswerSet returns n empty answers.
func NewAnswerSet(n int) AnswerSet {
	return make(AnswerSet, n)
}

// Set stores the answer for index i.
func (a AnswerSet) Set(i int, text string) error {
	if i < 0 || i >= len(a) {
		return errs.Validation("record answer", "answer index %d out of range [0, %d)", i, len(a))
	}
	a[i] = text
	return nil
}

// Blank returns the indexes of unanswered questions.
func (a AnswerSet) Blank() []int {
	var blank []int
	for i, answer := range a {
		if strings.TrimSpace(answer) == "" {
			blank = append(blank, i)
		}
	}
	return blank
}

// MarshalJSON encodes the set as an object keyed by decimal index.
func (a AnswerSet) MarshalJSON() ([]byte, error) {
	m := make(map[string]string, len(a))
	for i, answer := range a {
		m[strconv.Itoa(i)] = answer
	}
	return json.Marshal(m)
}

// UnmarshalJSON accepts an object keyed 0..n-1.
func (a *AnswerSet) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	keys := make([]int, 0, len(m))
	for k := range m {
		i, err := strconv.Atoi(k)
		if err != nil {
			return fmt.Errorf("answer key %q is not an index", k)
		}
		keys = append(keys, i)
	}
	sort.Ints(keys)

	out := make(AnswerSet, len(keys))
	for pos, i := range keys {
		if i != pos {
			return fmt.Errorf("answer indexes are not contiguous: missing %d", pos)
		}
		out[i] = m[strconv.Itoa(i)]
	}
	*a = out
	return nil
}

type Evaluation struct {
	Evaluation string `json:"evaluation" mapstructure:"evaluation"`
	Advice     string `json:"advice" mapstructure:"advice"`
}

// JobForm is the raw recruiter input. Skills is a comma-separated string.
type JobForm struct {
	Title       string
	Company     string
	Location    string
	Description string
	Skills      string
}

// Posting validates the form and parses its skills.
func (f JobForm) Posting() (JobPosting, error) {
	var missing []string
	for _, field := range []struct{ name, value string }{
		{"title", f.Title},
		{"company", f.Company},
		{"location", f.Location},
		{"description", f.Description},
		{"skills", f.Skills},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return JobPosting{}, errs.Validation("post job", "missing required fields: %s", strings.Join(missing, ", "))
	}

	skills := ParseSkills(f.Skills)
	if len(skills) == 0 {
		return JobPosting{}, errs.Validation("post job", "at least one skill is required")
	}

	return JobPosting{
		Title:       strings.TrimSpace(f.Title),
		Company:     strings.TrimSpace(f.Company),
		Location:    strings.TrimSpace(f.Location),
		Description: strings.TrimSpace(f.Description),
		Skills:      skills,
	}, nil
}

// ParseSkills splits on commas, trims, drops empty items and removes
// duplicates keeping the first occurrence.
func ParseSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))

	for _, part := range parts {
		skill := strings.TrimSpace(part)
		if skill == "" {
			continue
		}
		if _, ok := seen[skill]; ok {
			continue
		}
		seen[skill] = struct{}{}
		skills = append(skills, skill)
	}
	return skills
}

type JobPosting struct {
	ID          int      `json:"id,omitempty" mapstructure:"id"`
	Title       string   `json:"title" mapstructure:"title"`
	Company     string   `json:"company" mapstructure:"company"`
	Location    string   `json:"location" mapstructure:"location"`
	Description string   `json:"description" mapstructure:"description"`
	Skills      []string `json:"skills" mapstructure:"skills"`
}

// JobPostAck is the acknowledgement of a posted job. Every field is optional.
type JobPostAck struct {
	Message string   `mapstructure:"message"`
	Name    string   `mapstructure:"name"`
	Reason  string   `mapstructure:"reason"`
	Skills  []string `mapstructure:"skills"`
}

type MatchQuery struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
}

// QueryFor builds the match query for a posted job.
func QueryFor(p JobPosting) MatchQuery {
	return MatchQuery{Title: p.Title, Description: p.Description, Skills: p.Skills}
}

// JobMatchResult lists matched resume identifiers. An empty list means no matches.
type JobMatchResult struct {
	Title   string   `mapstructure:"title"`
	Resumes []string `mapstructure:"files"`
}

// Attachment is a downloaded resume file.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}
