package locqa

import "math/rand/v2"

// DefaultExamples is the built-in pool of example questions.
var DefaultExamples = []string{
	"What doctor was with Chopin when he wrote out his will?",
	"Where was Chopin invited to in late summer?",
	"What city did Chopin perform at on September 27?",
	"What did Chopin write while staying with Doctor Adam Łyszczyński?",
	"When did Chopin last appear in public?",
	"Who were the beneficiaries of his last public concert?",
	"What was the diagnosis of Chopin's health condition at this time?",
	"Where was Chopin's last public performance?",
	"Who did Chopin play for while she sang?",
	"In 1849 where did Chopin live?",
	"Who was anonymously paying for Chopin's apartment?",
	"When did Chopin return to Paris?",
	"Chopin accompanied which singer for friends?",
	"Where did his friends found Chopin an apartment in 1849?",
	"Who paid for Chopin's apartment in Chaillot?",
	"When did Jenny Lind visit Chopin?",
	"When did his sister come to stay with Chopin?",
}

// PickExample returns a question from pool chosen by seed.
// The same seed and pool always yield the same question.
// Returns an empty string for an empty pool.
func PickExample(seed uint64, pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return pool[rng.IntN(len(pool))]
}
