package scoring

func contactStatus(points float64) string {
	switch {
	case points >= 12:
		return "complete"
	case points >= 8:
		return "partial"
	default:
		return "incomplete"
	}
}

func formattingStatus(points float64) string {
	switch {
	case points >= 16:
		return "excellent"
	case points >= 12:
		return "good"
	default:
		return "needs_improvement"
	}
}

func skillsStatus(points float64) string {
	switch {
	case points >= 20:
		return "excellent"
	case points >= 15:
		return "good"
	case points >= 10:
		return "fair"
	default:
		return "weak"
	}
}

func experienceStatus(points float64) string {
	switch {
	case points >= 16:
		return "strong"
	case points >= 12:
		return "good"
	case points >= 8:
		return "fair"
	default:
		return "weak"
	}
}

func educationStatus(points float64) string {
	switch {
	case points >= 8:
		return "strong"
	case points >= 6:
		return "adequate"
	default:
		return "weak"
	}
}

func keywordsStatus(points float64) string {
	switch {
	case points >= 8:
		return "strong"
	case points >= 5:
		return "moderate"
	default:
		return "weak"
	}
}
