package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agricsmart/pkg/errors"
)

type fakeGenerator struct {
	prompt string
	answer string
	err    error
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func TestAskBuildsPromptWithCropAndRegion(t *testing.T) {
	generator := &fakeGenerator{answer: "Rotate with legumes."}
	uc := NewAdvisoryUseCase(generator)

	result, err := uc.Ask(context.Background(), AdvisoryInput{
		Question: "How do I restore nitrogen in my soil?",
		Crop:     "maize",
		Region:   "Ashanti",
	})

	require.NoError(t, err)
	assert.Equal(t, "Rotate with legumes.", result.Answer)
	assert.Equal(t, "How do I restore nitrogen in my soil?", result.Question)
	assert.Contains(t, generator.prompt, "maize")
	assert.Contains(t, generator.prompt, "Ashanti")
	assert.Contains(t, generator.prompt, "How do I restore nitrogen in my soil?")
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	uc := NewAdvisoryUseCase(&fakeGenerator{})

	_, err := uc.Ask(context.Background(), AdvisoryInput{})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}
