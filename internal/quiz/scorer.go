package quiz

// Score counts submitted answers that exactly match the correct answer of
// the question with the same id. Unknown ids and missing answers earn nothing.
func Score(questions []Question, answers map[string]string) int {
	correct := make(map[string]string, len(questions))
	for _, q := range questions {
		correct[q.ID] = q.CorrectAnswer
	}

	score := 0
	for id, answer := range answers {
		if want, ok := correct[id]; ok && want == answer {
			score++
		}
	}
	return score
}
