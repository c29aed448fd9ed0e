package muse

import "fmt"

// promptTemplate is the instruction sent to the generation API. The three
// verbs of the app map onto its three holes: two words and a constraint.
const promptTemplate = `You are a creative writing coach. Write one imaginative writing prompt, a single sentence, that combines "%s" and "%s". The prompt must honor this constraint: %s. Reply with the prompt sentence only, no preamble and no quotation marks.`

// BuildPrompt builds the instruction phrase embedding the three slot values.
func BuildPrompt(wordA, wordB, constraint string) string {
	return fmt.Sprintf(promptTemplate, wordA, wordB, constraint)
}
