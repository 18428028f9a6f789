// Package prompt builds the context strings handed to the message generator.
// The engine owns prompt construction; generation itself is a collaborator
// with a deterministic fallback.
package prompt

import (
	"fmt"
	"strings"
)

const interventionTemplate = `You are a compassionate friend helping someone who may be experiencing social isolation.

Risk Level: %d/100
Contributing Factors:
%s

User's Message: %s

Friend Context:
- Recurring contacts: %s
- Last social event: %s days ago

Guidelines:
- Be empathetic and non-judgmental
- Acknowledge their feelings as valid
- Provide ONE specific, actionable suggestion (e.g., text a specific friend)
- Keep tone casual (like a caring friend, not a therapist)
- For risk 76-100: Include crisis resources (988 Suicide & Crisis Lifeline)

Generate a supportive response:`

const crisisTemplate = `URGENT: User showing signs of severe isolation (Risk Score: %d/100)

Contributing Factors:
%s

User's Recent Message: "%s"

Generate an IMMEDIATE intervention response that:
1. Expresses genuine concern and care
2. Validates their struggle without minimizing it
3. Provides IMMEDIATE crisis resources prominently:
   - National Suicide Prevention Lifeline: 988
   - Crisis Text Line: Text HOME to 741741
   - Campus Counseling Services: (979) 845-4427
4. Encourages reaching out to someone RIGHT NOW
5. Emphasizes they are not alone and help is available
6. Tone: urgent but caring, serious but non-judgmental

Generate the crisis intervention response:`

// Intervention formats the standard intervention prompt context.
// daysSinceSocial < 0 means unknown.
func Intervention(score int, explanation, userMessage string, friends []string, daysSinceSocial int) string {
	friendStr := "No recurring contacts identified"
	if len(friends) > 0 {
		friendStr = strings.Join(friends, ", ")
	}
	daysStr := "Unknown"
	if daysSinceSocial >= 0 {
		daysStr = fmt.Sprintf("%d", daysSinceSocial)
	}
	if userMessage == "" {
		userMessage = "User is checking in"
	}
	return fmt.Sprintf(interventionTemplate, score, explanation, userMessage, friendStr, daysStr)
}

// Crisis formats the crisis escalation prompt context for scores at or above
// the crisis threshold.
func Crisis(score int, factors []string, userMessage string) string {
	var b strings.Builder
	for i, f := range factors {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(f)
	}
	if userMessage == "" {
		userMessage = "No recent message"
	}
	return fmt.Sprintf(crisisTemplate, score, b.String(), userMessage)
}

// Context appends the activity and interest context block to a standard
// intervention prompt.
func Context(base string, interests []string, location string, activityCount int) string {
	interestsStr := "Not specified"
	if len(interests) > 0 {
		interestsStr = strings.Join(interests, ", ")
	}
	return base + fmt.Sprintf("\n\nAdditional Context:\n"+
		"- User Interests: %s\n"+
		"- Location: %s\n"+
		"- Available Activities: %d events found matching their anxiety level and interests\n",
		interestsStr, location, activityCount)
}
