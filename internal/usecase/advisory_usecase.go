package usecase

import (
	"context"
	"fmt"
	"strings"

	"agricsmart/pkg/errors"
)

// AdvisoryUseCase answers farming questions with a generative model. The
// model is an external best-effort dependency: failures surface as 500s but
// never corrupt any state.
type AdvisoryUseCase struct {
	generator TextGenerator
}

func NewAdvisoryUseCase(generator TextGenerator) *AdvisoryUseCase {
	return &AdvisoryUseCase{
		generator: generator,
	}
}

type AdvisoryInput struct {
	Question string
	Crop     string
	Region   string
}

type AdvisoryResult struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (uc *AdvisoryUseCase) Ask(ctx context.Context, input AdvisoryInput) (*AdvisoryResult, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, errors.BadRequest("Question is required", nil)
	}

	var prompt strings.Builder
	prompt.WriteString("You are an agricultural advisor helping smallholder farmers. ")
	prompt.WriteString("Answer concisely with practical steps.\n")
	if input.Crop != "" {
		fmt.Fprintf(&prompt, "Crop: %s\n", input.Crop)
	}
	if input.Region != "" {
		fmt.Fprintf(&prompt, "Region: %s\n", input.Region)
	}
	fmt.Fprintf(&prompt, "Question: %s", question)

	answer, err := uc.generator.GenerateText(ctx, prompt.String())
	if err != nil {
		return nil, errors.Internal("Failed to generate advisory response", err)
	}

	return &AdvisoryResult{
		Question: question,
		Answer:   answer,
	}, nil
}
