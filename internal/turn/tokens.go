package turn

import (
	"github.com/tiktoken-go/tokenizer"
)

// promptTokens estimates how many tokens the prompt pair costs, for the debug
// log only. Unknown models fall back to the cl100k encoding; a tokenizer
// failure just yields zero rather than failing the request.
func promptTokens(model, system, user string) int {
	codec, err := tokenizer.ForModel(tokenizer.Model(model))
	if err != nil {
		codec, err = tokenizer.Get(tokenizer.Cl100kBase)
		if err != nil {
			return 0
		}
	}

	total := 0
	for _, text := range []string{system, user} {
		ids, _, err := codec.Encode(text)
		if err != nil {
			return 0
		}
		total += len(ids)
	}
	return total
}
