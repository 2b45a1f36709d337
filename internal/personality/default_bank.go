package personality

// defaultQuestions is the reference 20-question bank, five per pair.
var defaultQuestions = []Question{
	// Extraversion vs Introversion
	{
		ID:   1,
		Text: "At a social gathering, you typically...",
		A:    Option{Text: "Enjoy meeting new people and starting conversations", Axis: Extraversion},
		B:    Option{Text: "Prefer deep conversations with a few people you know", Axis: Introversion},
	},
	{
		ID:   2,
		Text: "After a long day at work, you prefer to...",
		A:    Option{Text: "Go out with friends to recharge", Axis: Extraversion},
		B:    Option{Text: "Spend quiet time alone to recharge", Axis: Introversion},
	},
	{
		ID:   3,
		Text: "When working on a project, you...",
		A:    Option{Text: "Like to discuss ideas with others as you go", Axis: Extraversion},
		B:    Option{Text: "Prefer to think things through before sharing", Axis: Introversion},
	},
	{
		ID:   4,
		Text: "In group settings, you usually...",
		A:    Option{Text: "Speak up and share your thoughts openly", Axis: Extraversion},
		B:    Option{Text: "Listen more and contribute when you have something meaningful to add", Axis: Introversion},
	},
	{
		ID:   5,
		Text: "Your ideal weekend involves...",
		A:    Option{Text: "Attending events, parties, or social activities", Axis: Extraversion},
		B:    Option{Text: "Relaxing at home with a book, movie, or hobby", Axis: Introversion},
	},

	// Sensing vs Intuition
	{
		ID:   6,
		Text: "When learning something new, you prefer...",
		A:    Option{Text: "Step-by-step instructions and practical examples", Axis: Sensing},
		B:    Option{Text: "Understanding the big picture and underlying concepts first", Axis: Intuition},
	},
	{
		ID:   7,
		Text: "You tend to focus more on...",
		A:    Option{Text: "What is happening now and concrete facts", Axis: Sensing},
		B:    Option{Text: "Future possibilities and what could be", Axis: Intuition},
	},
	{
		ID:   8,
		Text: "When describing an experience, you usually...",
		A:    Option{Text: "Focus on specific details and what actually happened", Axis: Sensing},
		B:    Option{Text: "Focus on the overall impression and meaning", Axis: Intuition},
	},
	{
		ID:   9,
		Text: "You prefer work that involves...",
		A:    Option{Text: "Established methods and proven techniques", Axis: Sensing},
		B:    Option{Text: "Innovation and exploring new approaches", Axis: Intuition},
	},
	{
		ID:   10,
		Text: "When making plans, you...",
		A:    Option{Text: "Focus on realistic outcomes based on past experience", Axis: Sensing},
		B:    Option{Text: "Imagine various scenarios and possibilities", Axis: Intuition},
	},

	// Thinking vs Feeling
	{
		ID:   11,
		Text: "When making decisions, you typically...",
		A:    Option{Text: "Analyze the pros and cons logically", Axis: Thinking},
		B:    Option{Text: "Consider how the decision affects people involved", Axis: Feeling},
	},
	{
		ID:   12,
		Text: "In a disagreement, you prioritize...",
		A:    Option{Text: "Being correct and finding the truth", Axis: Thinking},
		B:    Option{Text: "Maintaining harmony and understanding feelings", Axis: Feeling},
	},
	{
		ID:   13,
		Text: "When a friend shares a problem, you...",
		A:    Option{Text: "Offer practical solutions and advice", Axis: Thinking},
		B:    Option{Text: "Listen and provide emotional support first", Axis: Feeling},
	},
	{
		ID:   14,
		Text: "You value being seen as...",
		A:    Option{Text: "Competent and capable", Axis: Thinking},
		B:    Option{Text: "Caring and compassionate", Axis: Feeling},
	},
	{
		ID:   15,
		Text: "When giving feedback, you...",
		A:    Option{Text: "Focus on accuracy and areas for improvement", Axis: Thinking},
		B:    Option{Text: "Consider the person's feelings and emphasize positives", Axis: Feeling},
	},

	// Judging vs Perceiving
	{
		ID:   16,
		Text: "Your workspace is usually...",
		A:    Option{Text: "Organized with everything in its place", Axis: Judging},
		B:    Option{Text: "Flexible and arranged based on current projects", Axis: Perceiving},
	},
	{
		ID:   17,
		Text: "When it comes to deadlines, you...",
		A:    Option{Text: "Plan ahead and finish tasks early", Axis: Judging},
		B:    Option{Text: "Work best under pressure closer to the deadline", Axis: Perceiving},
	},
	{
		ID:   18,
		Text: "On vacation, you prefer to...",
		A:    Option{Text: "Have a detailed itinerary planned", Axis: Judging},
		B:    Option{Text: "Go with the flow and decide as you go", Axis: Perceiving},
	},
	{
		ID:   19,
		Text: "You feel more comfortable when...",
		A:    Option{Text: "Things are decided and settled", Axis: Judging},
		B:    Option{Text: "Options are kept open", Axis: Perceiving},
	},
	{
		ID:   20,
		Text: "In your daily life, you...",
		A:    Option{Text: "Follow routines and schedules", Axis: Judging},
		B:    Option{Text: "Adapt and respond to what comes up", Axis: Perceiving},
	},
}

var defaultBank = MustBank(defaultQuestions...)

// DefaultBank returns the built-in question bank.
func DefaultBank() *Bank {
	return defaultBank
}
