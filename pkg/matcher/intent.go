package matcher

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	GreetingText  = "Hello! Welcome to Green University of Bangladesh chatbot. How can I help you today?"
	WellBeingText = "I'm doing great, thank you! I'm here to help you with any questions about Green University. What would you like to know?"
	ClosingText   = "Thank you for using Green University chatbot. Have a great day!"
)

var (
	greetingPattern  = regexp.MustCompile(`^(hi|hello|hey|greetings|good morning|good afternoon|good evening)`)
	wellBeingPattern = regexp.MustCompile(`(how are you|how r u|how do you do)`)
	farewellPattern  = regexp.MustCompile(`(bye|goodbye|see you|thanks|thank you)`)
)

// Intent names a shortcut that answers without consulting the knowledge base
type Intent string

const (
	IntentNone      Intent = ""
	IntentGreeting  Intent = "greeting"
	IntentWellBeing Intent = "well_being"
	IntentTime      Intent = "time"
	IntentFarewell  Intent = "farewell"
)

// DetectIntent checks the shortcuts in order against normalized input
func (m *Matcher) DetectIntent(input string) (Intent, string) {
	switch {
	case greetingPattern.MatchString(input):
		return IntentGreeting, GreetingText
	case wellBeingPattern.MatchString(input):
		return IntentWellBeing, WellBeingText
	case strings.Contains(input, "time"):
		return IntentTime, fmt.Sprintf("The current time is %s.", m.now().Format("1/2/2006, 3:04:05 PM"))
	case farewellPattern.MatchString(input):
		return IntentFarewell, ClosingText
	}
	return IntentNone, ""
}

func (m *Matcher) now() time.Time {
	if m.clock == nil {
		return time.Now()
	}
	return m.clock()
}
