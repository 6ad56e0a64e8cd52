package knowledge

import "github.com/valentinpelus/faqbot/pkg/types"

// Defaults returns the built-in records used until (or unless) a refresh succeeds
func Defaults() []types.FaqRecord {
	return []types.FaqRecord{
		{
			Question:   "What is the tuition fee per semester for the BSc in Computer Science and Engineering program?",
			Answer:     "The tuition fee for the BSc in Computer Science and Engineering (CSE) program is BDT 70,000 per semester.",
			Keywords:   []string{"BSc", "CSE", "Computer Science", "bdt", "computer", "cost", "tuition", "fee", "semester"},
			Categories: []string{"fees_tuition", "programs_courses"},
		},
		{
			Question:   "How much is the admission fee for undergraduate programs?",
			Answer:     "The admission fee for undergraduate programs is BDT 20,000, which is non-refundable.",
			Keywords:   []string{"admission", "application", "apply", "bdt", "cost", "enroll", "enrollment", "fee", "undergraduate"},
			Categories: []string{"fees_tuition", "admission", "programs_courses"},
		},
		{
			Question:   "What is the total tuition fee for the BBA program?",
			Answer:     "The total tuition fee for the Bachelor of Business Administration (BBA) program is BDT 60,000 per semester.",
			Keywords:   []string{"BBA", "Business Administration", "bdt", "business", "cost", "tuition", "fee", "semester"},
			Categories: []string{"fees_tuition", "programs_courses"},
		},
		{
			Question:   "What programs does Green University offer?",
			Answer:     "Green University offers programs in Computer Science & Engineering (CSE), Business Administration (BBA), English, Electrical & Electronic Engineering (EEE), Civil Engineering, and various other disciplines at undergraduate and graduate levels.",
			Keywords:   []string{"programs", "courses", "departments", "subjects", "study", "CSE", "BBA", "EEE", "civil", "english", "engineering"},
			Categories: []string{"programs_courses", "general_info"},
		},
		{
			Question:   "Where is Green University located?",
			Answer:     "Green University of Bangladesh is located in Narayanganj, near Dhaka, Bangladesh. The full address is 220/D, Begum Rokeya Sarani, Senpara Parbata, Mirpur-10, Dhaka-1216.",
			Keywords:   []string{"location", "address", "where", "campus", "narayanganj", "dhaka", "mirpur", "bangladesh"},
			Categories: []string{"general_info", "contact"},
		},
		{
			Question:   "What are the admission requirements?",
			Answer:     "Applicants must have a minimum GPA of 2.5 in both SSC and HSC examinations. If a student has a GPA of 2.0 in either SSC or HSC, the combined GPA must be at least 6.0.",
			Keywords:   []string{"admission", "requirements", "gpa", "ssc", "hsc", "eligibility", "qualification", "minimum"},
			Categories: []string{"admission", "general_info"},
		},
		{
			Question:   "Contact information for Green University",
			Answer:     "You can contact Green University at: General Phone: +880-2-7791071-5, Enrollment/Admission: 01775234234, Email: info@green.edu.bd, Website: https://www.green.edu.bd/",
			Keywords:   []string{"contact", "phone", "email", "website", "information", "call", "enrollment", "admission"},
			Categories: []string{"contact", "general_info"},
		},
		{
			Question:   "Library facilities at Green University",
			Answer:     "Green University has a modern library with digital resources, books, journals, and research materials. There's also a refundable library caution fee of BDT 2,000.",
			Keywords:   []string{"library", "books", "research", "facilities", "digital", "journals", "resources", "caution", "fee"},
			Categories: []string{"facilities", "fees_tuition"},
		},
	}
}
