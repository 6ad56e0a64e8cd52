package matcher

import "regexp"

// GenericFallbackText is the menu answer given when nothing about the question is recognized
const GenericFallbackText = "I'd be happy to help you with information about Green University! I can assist with: programs & courses, tuition fees, admission requirements, campus facilities, scholarships, contact information, and more. Could you please be more specific about what you'd like to know?"

type cannedAnswer struct {
	pattern *regexp.Regexp
	text    string
}

// Checked in order, first match wins.
var cannedAnswers = []cannedAnswer{
	{
		pattern: regexp.MustCompile(`(fee|cost|price|tuition|money)`),
		text:    "I can help you with fee information! Here are the main fees: CSE program is BDT 70,000 per semester, BBA is BDT 60,000 per semester, and admission fee is BDT 20,000. Would you like specific fee details for any program?",
	},
	{
		pattern: regexp.MustCompile(`(admission|apply|requirement)`),
		text:    "For admission to Green University, you need a minimum GPA of 2.5 in both SSC and HSC examinations. We offer programs in CSE, BBA, EEE, Civil Engineering, and English. Would you like specific admission requirements for any program?",
	},
	{
		pattern: regexp.MustCompile(`(program|course|degree|subject)`),
		text:    "Green University offers undergraduate and graduate programs in Computer Science & Engineering (CSE), Business Administration (BBA), Electrical & Electronic Engineering (EEE), Civil Engineering, and English. Which program interests you?",
	},
	{
		pattern: regexp.MustCompile(`(contact|phone|email|address|location)`),
		text:    "You can contact Green University at: Phone: +880-2-7791071-5, Email: info@green.edu.bd, Website: https://www.green.edu.bd/. Our campus is located in Narayanganj, near Dhaka.",
	},
	{
		pattern: regexp.MustCompile(`(scholarship|financial|aid)`),
		text:    "Green University offers various scholarship programs for meritorious students and those from financially disadvantaged backgrounds. Contact our admission office at +880-2-7791071-5 for detailed scholarship information.",
	},
	{
		pattern: regexp.MustCompile(`(campus|facility|library|lab)`),
		text:    "Green University provides modern facilities including well-equipped classrooms, computer labs, library with digital resources, cafeteria, prayer room, and recreational areas. Our library has a refundable caution fee of BDT 2,000.",
	},
}

// Fallback returns a canned answer for normalized input
func Fallback(input string) string {
	for _, c := range cannedAnswers {
		if c.pattern.MatchString(input) {
			return c.text
		}
	}
	return GenericFallbackText
}
