package aiquiz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveCount(t *testing.T) {
	for _, n := range []int{1, 5, 19, 20, 21, 50, 1000} {
		want := n
		if n > MaxQuestions {
			want = MaxQuestions
		}
		assert.Equal(t, want, EffectiveCount(n), "requested %d", n)
	}
}

func TestBuildPrompt(t *testing.T) {
	t.Run("RequestsExactCount", func(t *testing.T) {
		prompt := BuildPrompt("History", EffectiveCount(50))

		assert.Contains(t, prompt, "exactly 20 questions")
		assert.NotContains(t, prompt, "50")
		assert.Contains(t, prompt, `"History"`)
	})

	t.Run("DescribesOutputContract", func(t *testing.T) {
		prompt := BuildPrompt("Python", 5)

		for _, key := range []string{`"question"`, `"options"`, `"correctAnswer"`, `"explanation"`} {
			assert.Contains(t, prompt, key)
		}
		assert.Contains(t, prompt, "exactly 4 options")
		assert.Contains(t, prompt, "ONLY a JSON array")
	})

	t.Run("Deterministic", func(t *testing.T) {
		assert.Equal(t, BuildPrompt("Go", 3), BuildPrompt("Go", 3))
		assert.False(t, strings.Contains(BuildPrompt("Go", 3), "%!"))
	})
}
