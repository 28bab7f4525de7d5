package utils

// Display names and emojis for progress event types
func GetEventName(eventType string) string {
	switch eventType {
	case "Task":
		return "✅ Task"
	case "Habit":
		return "🔁 Habit"
	case "Reading":
		return "📚 Reading"
	case "System":
		return "⚙️ System"
	default:
		return eventType
	}
}

func GetEventEmoji(eventType string) string {
	switch eventType {
	case "Task":
		return "✅"
	case "Habit":
		return "🔁"
	case "Reading":
		return "📚"
	case "System":
		return "⚙️"
	default:
		return "📌"
	}
}

func CheckMark(done bool) string {
	if done {
		return "✅"
	}
	return "⬜"
}
