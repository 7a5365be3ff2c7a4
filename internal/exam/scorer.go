package exam

import "github.com/Pottaprashanth/Interview-preparation-hub/internal/domain"

// Score grades a session: total is the item count, correct counts items whose
// recorded answer equals the item's answer index. Unanswered items count as
// wrong; so does any out-of-range choice, which can never match a valid
// answer index. Pure and deterministic.
func Score(items []domain.ExamItem, answers map[int]int) (correct, total int) {
	total = len(items)
	for _, item := range items {
		if choice, ok := answers[item.ID]; ok && choice == item.Answer {
			correct++
		}
	}
	return correct, total
}
