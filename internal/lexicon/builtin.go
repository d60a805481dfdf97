package lexicon

// Names of the built-in lexicons.
const (
	NameKeywords  = "keywords"
	NameTechnical = "technical"
	NameSoft      = "soft"
)

// CommonKeywords are generic ATS and business terms.
var CommonKeywords = MustNew(NameKeywords, []string{
	"leadership", "management", "communication", "teamwork", "problem-solving",
	"project management", "strategic planning", "data analysis", "customer service",
	"sales", "marketing", "collaboration", "innovation", "research", "development",
})

// TechnicalSkills are languages, frameworks, platforms and technical disciplines.
var TechnicalSkills = MustNew(NameTechnical, []string{
	"javascript", "python", "react", "node.js", "sql", "html", "css", "java",
	"c++", "git", "aws", "docker", "kubernetes", "typescript", "vue", "angular",
	"mongodb", "postgresql", "redux", "express", "django", "flask", "spring",
	"tensorflow", "pytorch", "machine learning", "data science", "api", "rest",
})

// SoftSkills are interpersonal and organizational traits.
// Some terms also appear in CommonKeywords; each list is scored on its own.
var SoftSkills = MustNew(NameSoft, []string{
	"leadership", "communication", "teamwork", "problem-solving", "creativity",
	"adaptability", "time management", "critical thinking", "collaboration",
	"organizational", "analytical", "interpersonal", "presentation", "negotiation",
})

// Builtin returns the built-in lexicons in display order.
func Builtin() []*Lexicon {
	return []*Lexicon{CommonKeywords, TechnicalSkills, SoftSkills}
}

// Lookup returns the built-in lexicon with the given name.
func Lookup(name string) (*Lexicon, bool) {
	for _, lex := range Builtin() {
		if lex.Name() == name {
			return lex, true
		}
	}
	return nil, false
}
