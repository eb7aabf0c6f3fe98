package feedback

// Band is a coarse score bucket the presentation layer colors by.
type Band int

const (
	BandPoor Band = iota
	BandAverage
	BandGood
	BandExcellent
)

// Grade is a label and icon for a score.
type Grade struct {
	Band  Band
	Label string
	Icon  string
}

// Gauge grades the overall score gauge, the score circle and resume cards.
func Gauge(score int) Grade {
	switch {
	case score >= 80:
		return Grade{Band: BandExcellent, Label: "Excellent", Icon: "🏆"}
	case score >= 60:
		return Grade{Band: BandGood, Label: "Good", Icon: "📈"}
	case score >= 40:
		return Grade{Band: BandAverage, Label: "Average", Icon: "⚡"}
	default:
		return Grade{Band: BandPoor, Label: "Needs Work", Icon: "🎯"}
	}
}

// Badge grades the per-category score badge.
func Badge(score int) Grade {
	switch {
	case score > 70:
		return Grade{Band: BandExcellent, Label: "Excellent", Icon: "🏆"}
	case score > 49:
		return Grade{Band: BandAverage, Label: "Good Start", Icon: "⚡"}
	default:
		return Grade{Band: BandPoor, Label: "Needs Work", Icon: "🎯"}
	}
}

// BadgeDots is how many of the badge's three dots are lit.
func BadgeDots(score int) int {
	n := score / 34
	if n > 3 {
		n = 3
	}
	if n < 0 {
		n = 0
	}
	return n
}

// GaugeSegments is how many of the gauge's five segments are lit.
func GaugeSegments(score int) int {
	n := score / 20
	if n > 5 {
		n = 5
	}
	if n < 0 {
		n = 0
	}
	return n
}

// Message is the headline shown above the category rows.
type Message struct {
	Band Band
	Text string
	Icon string
}

// Overall picks the summary headline.
func Overall(score int) Message {
	switch {
	case score > 80:
		return Message{Band: BandExcellent, Text: "Outstanding resume! You're ready to impress employers.", Icon: "🏆"}
	case score > 60:
		return Message{Band: BandGood, Text: "Good foundation with room for strategic improvements.", Icon: "📈"}
	case score > 40:
		return Message{Band: BandAverage, Text: "Solid start, but several areas need attention.", Icon: "🔧"}
	default:
		return Message{Band: BandPoor, Text: "Significant improvements needed to maximize impact.", Icon: "🎯"}
	}
}

// Verdict is the ATS panel headline and explanation.
type Verdict struct {
	Band        Band
	Subtitle    string
	Description string
}

// ATSVerdict grades the ATS score.
func ATSVerdict(score int) Verdict {
	switch {
	case score > 69:
		return Verdict{
			Band:        BandExcellent,
			Subtitle:    "🎉 Excellent Performance!",
			Description: "Your resume is well-optimized and should perform excellently in most ATS systems. Great job!",
		}
	case score > 49:
		return Verdict{
			Band:        BandAverage,
			Subtitle:    "⚡ Good Foundation",
			Description: "Your resume shows promise but could benefit from some strategic improvements to boost ATS compatibility.",
		}
	default:
		return Verdict{
			Band:        BandPoor,
			Subtitle:    "🚀 Room for Growth",
			Description: "Your resume needs attention to improve its chances of passing through ATS filters successfully.",
		}
	}
}

var sectionIcons = map[string][3]string{
	"Tone & Style": {"🎭", "✨", "🎨"},
	"Content":      {"📋", "📄", "📝"},
	"Structure":    {"⚙️", "🔧", "🏗️"},
	"Skills":       {"🚀", "⚡", "🎯"},
}

// SectionIcon returns the detail header icon for a section title.
func SectionIcon(title string, score int) string {
	icons, ok := sectionIcons[title]
	if !ok {
		return "📊"
	}
	switch {
	case score > 69:
		return icons[2]
	case score > 39:
		return icons[1]
	default:
		return icons[0]
	}
}

// TipLabel is the call to action under a tip.
func TipLabel(t TipType) string {
	if t == TipGood {
		return "Keep it up!"
	}
	return "Action needed"
}
