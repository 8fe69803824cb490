package capability

import (
	"encoding/json"
	"testing"

	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSkills(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "trims and drops empty", input: "React, Node.js, ,TS", want: []string{"React", "Node.js", "TS"}},
		{name: "deduplicates keeping first", input: "Go, go, Go ,SQL", want: []string{"Go", "go", "SQL"}},
		{name: "only separators", input: " , ,, ", want: []string{}},
		{name: "empty", input: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ParseSkills(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSkillsIdempotent(t *testing.T) {
	once := ParseSkills("React, Node.js, ,TS, React")
	twice := ParseSkills(joinSkills(once))
	assert.Equal(t, once, twice)
}

func joinSkills(skills []string) string {
	out := ""
	for i, s := range skills {
		if i > 0 {
			out += ","
		}
		out += s
	}
	return out
}

func TestJobFormPosting(t *testing.T) {
	form := JobForm{Title: "Backend", Company: "Acme", Location: "Remote", Description: "APIs", Skills: "Go, SQL"}

	posting, err := form.Posting()
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, posting.Skills)

	form.Company = "  "
	_, err = form.Posting()
	require.True(t, errs.IsValidation(err))
	assert.Contains(t, err.Error(), "company")

	form.Company = "Acme"
	form.Skills = " , "
	_, err = form.Posting()
	require.True(t, errs.IsValidation(err))
	assert.Contains(t, err.Error(), "at least one skill")
}

func TestResumeDraftValidate(t *testing.T) {
	err := ResumeDraft{Name: "Ann", Email: " "}.Validate()
	require.True(t, errs.IsValidation(err))
	assert.Contains(t, err.Error(), "email, phone")

	assert.NoError(t, ResumeDraft{Name: "Ann", Email: "a@b.c", Phone: "1"}.Validate())
}

func TestResumeFileValidate(t *testing.T) {
	var nilFile *ResumeFile
	assert.True(t, errs.IsValidation(nilFile.Validate()))
	assert.True(t, errs.IsValidation((&ResumeFile{Data: []byte("x")}).Validate()))
	assert.True(t, errs.IsValidation((&ResumeFile{Name: "cv.pdf"}).Validate()))
	assert.NoError(t, (&ResumeFile{Name: "cv.pdf", Data: []byte("%PDF")}).Validate())
}

func TestQuestionSetFilterBlank(t *testing.T) {
	qs := QuestionSet{"Q1", "", "   ", "Q2", "\t"}
	filtered := qs.FilterBlank()

	assert.Equal(t, QuestionSet{"Q1", "Q2"}, filtered)
	assert.Equal(t, filtered, filtered.FilterBlank())
	assert.Empty(t, QuestionSet{"", " "}.FilterBlank())
}

func TestAnswerSet(t *testing.T) {
	answers := NewAnswerSet(3)
	assert.Equal(t, []int{0, 1, 2}, answers.Blank())

	require.NoError(t, answers.Set(0, "A"))
	require.NoError(t, answers.Set(2, "C"))
	assert.True(t, errs.IsValidation(answers.Set(3, "D")))
	assert.True(t, errs.IsValidation(answers.Set(-1, "D")))

	assert.Equal(t, []int{1}, answers.Blank())

	require.NoError(t, answers.Set(1, "B"))
	assert.Empty(t, answers.Blank())

	data, err := json.Marshal(struct {
		Answers AnswerSet `json:"answers"`
	}{answers})
	require.NoError(t, err)
	assert.JSONEq(t, `{"answers":{"0":"A","1":"B","2":"C"}}`, string(data))

	var decoded AnswerSet
	require.NoError(t, json.Unmarshal([]byte(`{"1":"B","0":"A"}`), &decoded))
	assert.Equal(t, AnswerSet{"A", "B"}, decoded)

	assert.Error(t, json.Unmarshal([]byte(`{"0":"A","2":"C"}`), &decoded))
	assert.Error(t, json.Unmarshal([]byte(`{"x":"A"}`), &decoded))
}
