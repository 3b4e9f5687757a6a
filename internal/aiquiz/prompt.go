package aiquiz

import "fmt"

// MaxQuestions bounds how many questions a single quiz may request.
const MaxQuestions = 20

// EffectiveCount caps the requested count at MaxQuestions.
func EffectiveCount(requested int) int {
	return min(requested, MaxQuestions)
}

const promptTemplate = `Generate exactly %d multiple-choice questions about the topic "%s" for a student preparing for campus placement interviews.

Rules:
1. Generate exactly %d questions.
2. Each question must have exactly 4 options.
3. Each question must have exactly one correct answer, and "correctAnswer" must be copied verbatim from "options".
4. Each question must include a brief explanation of why the correct answer is right.

Respond with ONLY a JSON array, with no prose before or after it and no markdown code fences. Each element must be an object with exactly these keys:
[
  {
    "question": "<question text>",
    "options": ["<option 1>", "<option 2>", "<option 3>", "<option 4>"],
    "correctAnswer": "<one of the options>",
    "explanation": "<brief explanation>"
  }
]`

// BuildPrompt renders the instruction sent to the generative service.
// The output depends only on its arguments.
func BuildPrompt(topic string, count int) string {
	return fmt.Sprintf(promptTemplate, count, topic, count)
}
