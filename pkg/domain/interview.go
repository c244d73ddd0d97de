package domain

// Valid interview difficulties.
var ValidDifficulties = []string{
	"easy",
	"medium",
	"hard",
}

// DefaultDifficulty is used when the start form has no explicit choice.
const DefaultDifficulty = "medium"

var validDifficultySet = func() map[string]bool {
	m := make(map[string]bool, len(ValidDifficulties))
	for _, d := range ValidDifficulties {
		m[d] = true
	}
	return m
}()

// ValidDifficulty returns true if the given difficulty is a known level.
func ValidDifficulty(d string) bool {
	return validDifficultySet[d]
}
