package wizard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"invested/internal/survey"
)

func testQuestions() []survey.Question {
	return []survey.Question{
		{ID: "q0", Type: survey.SingleSelect, Options: []string{"a", "b"}},
		{ID: "q1", Type: survey.SingleSelect, Options: []string{"c", "d"}},
		{ID: "q2", Type: survey.MultiSelect, Options: []string{"e", "f", "g"}},
		{ID: "q3", Type: survey.SingleSelect, Options: []string{"h"}},
	}
}

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "draft.json"))
}

func TestSingleSelectReplaces(t *testing.T) {
	w, err := New(testQuestions(), newTestStore(t))
	assert.NoError(t, err)

	w.Select("a")
	assert.True(t, w.Selected("a"))
	w.Select("b")
	assert.True(t, w.Selected("b"))
	assert.False(t, w.Selected("a"))
}

func TestMultiSelectToggles(t *testing.T) {
	w, err := New(testQuestions(), newTestStore(t))
	assert.NoError(t, err)

	w.idx = 2
	w.Select("e")
	w.Select("f")
	assert.True(t, w.Selected("e"))
	assert.True(t, w.Selected("f"))

	w.Select("e")
	assert.False(t, w.Selected("e"))
	assert.True(t, w.Selected("f"))
}

func TestNextRequiresAnswer(t *testing.T) {
	w, err := New(testQuestions(), newTestStore(t))
	assert.NoError(t, err)

	_, err = w.Next()
	assert.Equal(t, ErrUnanswered, err)
	assert.Equal(t, 0, w.Index())

	w.Select("a")
	submit, err := w.Next()
	assert.NoError(t, err)
	assert.False(t, submit)
	assert.Equal(t, 1, w.Index())
}

func TestNextOnLastQuestionSignalsSubmit(t *testing.T) {
	w, err := New(testQuestions(), newTestStore(t))
	assert.NoError(t, err)

	w.idx = len(testQuestions()) - 1
	w.Select("h")
	submit, err := w.Next()
	assert.NoError(t, err)
	assert.True(t, submit)
	assert.Equal(t, len(testQuestions())-1, w.Index())
}

func TestPreviousKeepsAnswers(t *testing.T) {
	w, err := New(testQuestions(), newTestStore(t))
	assert.NoError(t, err)

	w.Select("a")
	_, err = w.Next()
	assert.NoError(t, err)
	w.Select("c")

	w.Previous()
	assert.Equal(t, 0, w.Index())
	assert.True(t, w.Selected("a"))

	// Previous on the first question is a no-op
	w.Previous()
	assert.Equal(t, 0, w.Index())
}

func TestDraftRestoration(t *testing.T) {
	store := newTestStore(t)

	w, err := New(testQuestions(), store)
	assert.NoError(t, err)
	w.Select("a")
	_, _ = w.Next()
	w.Select("d")
	_, _ = w.Next()
	w.Select("e")
	w.Select("g")
	assert.Equal(t, 2, w.Index())

	// a fresh wizard over the same store resumes exactly where we left off
	resumed, err := New(testQuestions(), store)
	assert.NoError(t, err)
	assert.Equal(t, 2, resumed.Index())
	assert.Equal(t, "a", resumed.answers["q0"].Single())
	assert.Equal(t, "d", resumed.answers["q1"].Single())
	assert.Equal(t, []string{"e", "g"}, resumed.answers["q2"].Choices())
}

func TestInvalidDraftIsDiscarded(t *testing.T) {
	store := newTestStore(t)

	// index out of bounds
	err := store.Save(&Draft{CurrentQuestionIndex: 42, Answers: map[string]survey.Value{}})
	assert.NoError(t, err)

	w, err := New(testQuestions(), store)
	assert.NoError(t, err)
	assert.Equal(t, 0, w.Index())
	assert.Empty(t, w.answers)

	// the bad draft is gone
	draft, err := store.Load()
	assert.NoError(t, err)
	assert.Nil(t, draft)
}

func TestNegativeIndexDraftIsDiscarded(t *testing.T) {
	store := newTestStore(t)
	err := store.Save(&Draft{CurrentQuestionIndex: -1, Answers: map[string]survey.Value{}})
	assert.NoError(t, err)

	w, err := New(testQuestions(), store)
	assert.NoError(t, err)
	assert.Equal(t, 0, w.Index())
}

func TestCorruptDraftIsDiscarded(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "draft.json")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	w, err := New(testQuestions(), NewFileStore(path))
	assert.NoError(t, err)
	assert.Equal(t, 0, w.Index())

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestAnswersSubstitutesEmptyForUnanswered(t *testing.T) {
	w, err := New(testQuestions(), newTestStore(t))
	assert.NoError(t, err)

	w.Select("a")
	answers := w.Answers()
	assert.Len(t, answers, 4)
	assert.Equal(t, "q0", answers[0].QuestionID)
	assert.Equal(t, "a", answers[0].Value.Single())
	for _, a := range answers[1:] {
		assert.True(t, a.Value.IsEmpty())
	}
}

func TestResetClearsDraft(t *testing.T) {
	store := newTestStore(t)
	w, err := New(testQuestions(), store)
	assert.NoError(t, err)

	w.Select("a")
	_, _ = w.Next()
	assert.NoError(t, w.Reset())
	assert.Equal(t, 0, w.Index())

	draft, err := store.Load()
	assert.NoError(t, err)
	assert.Nil(t, draft)
}
