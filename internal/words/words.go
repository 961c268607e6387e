// Package words supplies the secret words for a game: random picks that avoid
// repeats within a session, and partially-masked hints.
package words

import (
	"math/rand/v2"
	"strings"
)

// Bank maps a category to its word pool.
type Bank map[string][]string

// DefaultBank holds the built-in categories.
var DefaultBank = Bank{
	"animals": {
		"cat", "dog", "elephant", "giraffe", "lion", "tiger", "bear",
		"rabbit", "fox", "wolf", "monkey", "zebra", "penguin", "dolphin",
		"shark", "whale", "octopus", "butterfly", "eagle", "owl",
	},
	"objects": {
		"chair", "table", "lamp", "book", "phone", "computer", "guitar",
		"piano", "umbrella", "clock", "mirror", "camera", "bicycle",
		"car", "airplane", "rocket", "house", "castle", "bridge", "key",
	},
	"food": {
		"pizza", "burger", "apple", "banana", "strawberry", "watermelon",
		"carrot", "broccoli", "bread", "cheese", "ice cream", "cake",
		"donut", "cookie", "sushi", "taco", "pasta", "salad", "coffee", "tea",
	},
	"sports": {
		"football", "basketball", "tennis", "baseball", "golf", "swimming",
		"running", "cycling", "skiing", "skateboard", "surfing", "boxing",
		"yoga", "volleyball", "hockey", "cricket", "bowling", "archery",
		"wrestling", "karate",
	},
	"nature": {
		"tree", "flower", "mountain", "river", "ocean", "sun", "moon",
		"star", "cloud", "rainbow", "lightning", "volcano", "island",
		"waterfall", "desert", "forest", "beach", "canyon", "lake", "cave",
	},
}

// Provider picks words from a bank.
type Provider struct {
	bank       Bank
	categories []string
}

func NewProvider(bank Bank) *Provider {
	categories := make([]string, 0, len(bank))
	for c := range bank {
		categories = append(categories, c)
	}
	return &Provider{bank: bank, categories: categories}
}

// Pick returns a random word and its category, avoiding words in exclude.
// When every word of the chosen category has been used, the exclusion resets
// and the whole pool is eligible again.
func (p *Provider) Pick(exclude map[string]struct{}) (word, category string) {
	category = p.categories[rand.IntN(len(p.categories))]

	pool := p.bank[category]
	available := make([]string, 0, len(pool))
	for _, w := range pool {
		if _, used := exclude[w]; !used {
			available = append(available, w)
		}
	}
	if len(available) == 0 {
		available = pool
	}
	return available[rand.IntN(len(available))], category
}

// PickFrom is Pick restricted to a single category. Unknown categories fall
// back to a random one.
func (p *Provider) PickFrom(category string, exclude map[string]struct{}) (string, string) {
	if _, ok := p.bank[category]; !ok {
		return p.Pick(exclude)
	}
	pool := p.bank[category]
	available := make([]string, 0, len(pool))
	for _, w := range pool {
		if _, used := exclude[w]; !used {
			available = append(available, w)
		}
	}
	if len(available) == 0 {
		available = pool
	}
	return available[rand.IntN(len(available))], category
}

// Hint masks a word, revealing up to reveal letters at random positions.
func (p *Provider) Hint(word string, reveal int) string {
	runes := []rune(word)
	masked := make([]string, len(runes))
	for i := range masked {
		masked[i] = "_"
	}

	if reveal > len(runes) {
		reveal = len(runes)
	}
	for _, idx := range rand.Perm(len(runes))[:reveal] {
		masked[idx] = string(runes[idx])
	}
	return strings.Join(masked, " ")
}

// Normalize prepares a guess or target word for comparison.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Match reports whether a guess matches the word, ignoring case and
// surrounding whitespace.
func Match(guess, word string) bool {
	return Normalize(guess) == Normalize(word)
}
