package quizxml

// Known question types, grouped into the three families that decide which
// answer variant and extras are legal.
const (
	TypeMultichoice = "multichoice"
	TypeTrueFalse   = "truefalse"
	TypeCoderunner  = "coderunner"
	TypeMultianswer = "multianswer" // cloze
)

var multichoiceTypes = map[string]bool{
	TypeMultichoice: true,
	TypeTrueFalse:   true,
}

var coderunnerTypes = map[string]bool{
	TypeCoderunner: true,
}

var clozeTypes = map[string]bool{
	TypeMultianswer: true,
}

// IsKnownType reports whether the type belongs to the fixed known set.
func IsKnownType(t string) bool {
	return multichoiceTypes[t] || coderunnerTypes[t] || clozeTypes[t]
}

func IsMultichoiceType(t string) bool { return multichoiceTypes[t] }

func IsCoderunnerType(t string) bool { return coderunnerTypes[t] }

func IsClozeType(t string) bool { return clozeTypes[t] }
