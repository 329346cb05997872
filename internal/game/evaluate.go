package game

import "wordlearena/internal/models"

// Evaluate scores a guess against the secret using the two-pass algorithm.
// Both inputs must be lower-case a-z strings of equal length; callers
// validate before evaluating.
//
// Pass one marks exact matches and counts the remaining secret letters.
// Pass two resolves present/absent for the rest, decrementing the counts
// so a repeated guessed letter is never credited beyond the letter's
// actual multiplicity in the secret.
func Evaluate(secret, guess string) []models.FeedbackMark {
	n := len(guess)
	result := make([]models.FeedbackMark, n)

	var counts [26]int
	for i := 0; i < n; i++ {
		if guess[i] == secret[i] {
			result[i] = models.MarkCorrect
		} else {
			counts[secret[i]-'a']++
		}
	}

	for i := 0; i < n; i++ {
		if result[i] == models.MarkCorrect {
			continue
		}
		j := int(guess[i] - 'a')
		if counts[j] > 0 {
			result[i] = models.MarkPresent
			counts[j]--
		} else {
			result[i] = models.MarkAbsent
		}
	}

	return result
}
