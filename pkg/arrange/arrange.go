package arrange

import (
	"math/rand/v2"

	"github.com/goliatone/go-json2beamer/pkg/model"
)

// streamSeed selects the PCG stream for seeded arrangements. It is fixed so a
// seed maps to a single sequence across releases.
const streamSeed uint64 = 0x6a736f6e32626d72

// Shuffler permutes answer choices without touching question order.
type Shuffler interface {
	Arrange(set model.QuestionSet) model.QuestionSet
}

// Factory builds a Shuffler for one invocation.
type Factory func(seed *int64) Shuffler

// Arranger is the default Shuffler. One Arranger serves one invocation: the
// generator it holds is not safe for concurrent use.
type Arranger struct {
	rng *rand.Rand
}

var _ Shuffler = (*Arranger)(nil)

// New returns an Arranger. A nil seed seeds the generator from runtime
// entropy.
func New(seed *int64) *Arranger {
	var src *rand.PCG
	if seed != nil {
		src = rand.NewPCG(uint64(*seed), streamSeed)
	} else {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Arranger{rng: rand.New(src)}
}

// NewShuffler adapts New to the Factory signature.
func NewShuffler(seed *int64) Shuffler {
	return New(seed)
}

// Arrange returns a deep copy of set where the choices of every
// multiple-choice question are permuted and Correct follows the correct
// choice. Open questions pass through unchanged.
func (a *Arranger) Arrange(set model.QuestionSet) model.QuestionSet {
	out := set.Clone()
	for i := range out {
		question := &out[i]
		if !question.IsMultipleChoice() || len(question.Choices) < 2 {
			continue
		}

		perm := a.rng.Perm(len(question.Choices))
		shuffled := make([]model.Choice, len(question.Choices))
		correct := -1
		for to, from := range perm {
			shuffled[to] = question.Choices[from]
			if from == question.Correct {
				correct = to
			}
		}
		question.Choices = shuffled
		question.Correct = correct
	}
	return out
}
