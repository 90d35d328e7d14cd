package horde

// Candidate is one model-set variant of the submission ladder. Nil Models
// lets AI Horde pick any worker.
type Candidate struct {
	Name   string
	Models []string
}

// Candidates returns the single pinned candidate when models is non-empty,
// otherwise a copy of DefaultLadder.
func Candidates(models []string) []Candidate {
	if len(models) > 0 {
		pinned := make([]string, len(models))
		copy(pinned, models)
		return []Candidate{{Name: "pinned", Models: pinned}}
	}
	ladder := make([]Candidate, len(DefaultLadder))
	for i, c := range DefaultLadder {
		ladder[i] = Candidate{Name: c.Name}
		if c.Models != nil {
			ladder[i].Models = append([]string(nil), c.Models...)
		}
	}
	return ladder
}
