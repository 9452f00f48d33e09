package usecase

// EstimateTokens approximates the token count of a text as len/4, floored at
// one. It is a coarse proxy, not a real tokenizer; good enough for budgeting
// but not for billing. The truncation walk in the assembler relies on the
// estimate being monotonic in text length, so any replacement must keep that
// property.
func EstimateTokens(text string) int {
	tokens := len(text) / 4
	if tokens < 1 {
		return 1
	}
	return tokens
}
