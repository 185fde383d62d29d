package wizard

import (
	"errors"

	"invested/internal/survey"
)

// ErrUnanswered is returned by Next when the current question has no answer.
var ErrUnanswered = errors.New("current question has no answer")

// Wizard is the linear, single-track survey state machine. Every state
// change is written through to the draft store immediately; there is no
// batching or debounce. Draft writes are best-effort because the draft is
// only a cache of in-progress state.
type Wizard struct {
	questions []survey.Question
	store     DraftStore
	idx       int
	answers   map[string]survey.Value
}

// New builds a wizard over the given questions, resuming from a stored
// draft when one exists and passes shape validation. A structurally invalid
// draft is discarded and the wizard starts fresh at the first question.
func New(questions []survey.Question, store DraftStore) (*Wizard, error) {
	w := &Wizard{
		questions: questions,
		store:     store,
		answers:   make(map[string]survey.Value),
	}

	draft, err := store.Load()
	if err != nil {
		return nil, err
	}
	if draft != nil {
		if draft.Valid(len(questions)) {
			w.idx = draft.CurrentQuestionIndex
			w.answers = draft.Answers
		} else {
			_ = store.Clear()
		}
	}
	return w, nil
}

// Len returns the number of questions.
func (w *Wizard) Len() int { return len(w.questions) }

// Index returns the current question index.
func (w *Wizard) Index() int { return w.idx }

// Current returns the current question.
func (w *Wizard) Current() survey.Question { return w.questions[w.idx] }

// IsFirst reports whether the wizard is on the first question.
func (w *Wizard) IsFirst() bool { return w.idx == 0 }

// IsLast reports whether the wizard is on the last question.
func (w *Wizard) IsLast() bool { return w.idx == len(w.questions)-1 }

// Answer returns the current question's answer value.
func (w *Wizard) Answer() survey.Value {
	return w.answers[w.Current().ID]
}

// Selected reports whether option is selected for the current question.
func (w *Wizard) Selected(option string) bool {
	return w.Answer().Contains(option)
}

// Select records an option for the current question: single-select replaces
// the answer, multi-select toggles the option's membership.
func (w *Wizard) Select(option string) {
	q := w.Current()
	if q.Type == survey.SingleSelect {
		w.answers[q.ID] = survey.Single(option)
	} else {
		current, ok := w.answers[q.ID]
		if !ok {
			current = survey.Multiple(nil)
		}
		w.answers[q.ID] = current.Toggle(option)
	}
	w.persist()
}

// CanAdvance reports whether the current question has a non-empty answer.
func (w *Wizard) CanAdvance() bool {
	return !w.Answer().IsEmpty()
}

// Next advances to the following question. On the last question it does not
// advance; it reports that the wizard is ready to submit instead.
func (w *Wizard) Next() (submit bool, err error) {
	if !w.CanAdvance() {
		return false, ErrUnanswered
	}
	if w.IsLast() {
		return true, nil
	}
	w.idx++
	w.persist()
	return false, nil
}

// Previous steps back one question without clearing any answer.
func (w *Wizard) Previous() {
	if w.IsFirst() {
		return
	}
	w.idx--
	w.persist()
}

// Answers assembles the complete submission set in catalog order,
// substituting the empty single value for any unanswered question.
func (w *Wizard) Answers() []survey.Answer {
	out := make([]survey.Answer, 0, len(w.questions))
	for _, q := range w.questions {
		value, ok := w.answers[q.ID]
		if !ok {
			value = survey.Single("")
		}
		out = append(out, survey.Answer{QuestionID: q.ID, Value: value})
	}
	return out
}

// Reset clears the draft and restarts at the first question. Called after a
// successful submission, when the server record becomes authoritative.
func (w *Wizard) Reset() error {
	w.idx = 0
	w.answers = make(map[string]survey.Value)
	return w.store.Clear()
}

func (w *Wizard) persist() {
	_ = w.store.Save(&Draft{
		CurrentQuestionIndex: w.idx,
		Answers:              w.answers,
	})
}
