package passion

// Strength labels a score for display.
func Strength(score int) string {
	switch {
	case score >= 30:
		return "Excellent Match"
	case score >= 20:
		return "Great Match"
	case score >= 10:
		return "Good Match"
	case score >= 1:
		return "Some Match"
	default:
		return "No Match"
	}
}
