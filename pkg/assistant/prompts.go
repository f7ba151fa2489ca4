package assistant

import (
	"fmt"
	"strings"
	"time"
)

const systemPrompt = `You are a Church AI Assistant designed to help young Christians in their spiritual journey.
Your primary roles are:

1. Help users plan meaningful quiet times with God
2. Recommend appropriate Christian books for spiritual growth
3. Assist with Bible studies by providing explanations and context
4. Answer questions about Christianity using the Bible as your primary reference

Always provide Biblical references when possible. Be encouraging, supportive, and
deeply rooted in Christian theology while remaining accessible to young believers.
Aim to foster a deeper relationship with God rather than just providing information.`

const (
	DefaultDuration = 15
	DefaultLevel    = "beginner"
	DefaultCount    = 3
)

var levels = map[string]string{
	"beginner":     "new to Christianity or early in their faith journey",
	"intermediate": "established in their faith but looking to go deeper",
	"advanced":     "mature believers looking for challenging theological content",
}

// Levels lists the spiritual levels in increasing order.
func Levels() []string {
	return []string{"beginner", "intermediate", "advanced"}
}

type QuietTimeRequest struct {
	Duration  int    `json:"duration"`
	FocusArea string `json:"focus_area,omitempty"`
}

type BookRequest struct {
	Topic          string `json:"topic,omitempty"`
	SpiritualLevel string `json:"spiritual_level"`
	Count          int    `json:"count"`
}

type StudyRequest struct {
	Passage string `json:"passage"`
}

type QuestionRequest struct {
	Question string `json:"question"`
}

// Response is the body returned by every feature endpoint.
type Response struct {
	Result string `json:"result"`
	Error  string `json:"error,omitempty"`
}

func quietTimePrompt(req QuietTimeRequest, today time.Time) string {
	duration := req.Duration
	if duration <= 0 {
		duration = DefaultDuration
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Please create a structured quiet time plan for today (%s) that takes approximately %d minutes.\n",
		today.Format("2006-01-02"), duration)
	if focus := strings.TrimSpace(req.FocusArea); focus != "" {
		fmt.Fprintf(&b, "The focus should be on: %s.\n", focus)
	}
	b.WriteString(`Include:
1. A specific Bible passage to read
2. Prayer points
3. Reflection questions
4. A practical application step

Format this in a clear, step-by-step manner that's easy to follow.`)
	return b.String()
}

func booksPrompt(req BookRequest) string {
	count := req.Count
	if count <= 0 {
		count = DefaultCount
	}
	level, ok := levels[strings.ToLower(strings.TrimSpace(req.SpiritualLevel))]
	if !ok {
		level = levels[DefaultLevel]
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Please recommend %d Christian books for someone who is %s.\n", count, level)
	if topic := strings.TrimSpace(req.Topic); topic != "" {
		fmt.Fprintf(&b, "The focus should be on: %s.\n", topic)
	}
	b.WriteString(`For each book, provide:
1. Title and author
2. A brief description (2-3 sentences)
3. Why it's valuable for spiritual growth
4. A key concept or takeaway`)
	return b.String()
}

func studyPrompt(req StudyRequest) string {
	return fmt.Sprintf(`Please create a detailed Bible study guide for the passage: %s.

Include:
1. Historical and cultural context
2. Key themes and theological concepts
3. Verse-by-verse explanation
4. Cross-references to other relevant scriptures
5. Application questions for personal reflection
6. How this passage points to Jesus and the gospel

Make this accessible for young Christians while maintaining theological depth.`, strings.TrimSpace(req.Passage))
}

func questionPrompt(req QuestionRequest) string {
	return fmt.Sprintf(`Question about Christianity: %s

Please provide a thorough answer that:
1. Addresses the question directly
2. Provides relevant Bible verses and references
3. Explains any theological concepts in an accessible way
4. Offers practical wisdom if applicable

Base your response primarily on Biblical teachings rather than denominational perspectives.`, strings.TrimSpace(req.Question))
}
