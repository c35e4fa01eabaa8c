package format

// DefaultLanguageColor is used for languages missing from the table.
const DefaultLanguageColor = "#858585"

var languageColors = map[string]string{
	"JavaScript": "#f1e05a",
	"TypeScript": "#3178c6",
	"Python":     "#3572A5",
	"Java":       "#b07219",
	"Go":         "#00ADD8",
	"Rust":       "#ce422b",
	"C++":        "#f34b7d",
	"C":          "#555555",
	"C#":         "#239120",
	"PHP":        "#777bb4",
	"Ruby":       "#cc342d",
	"Swift":      "#FA7343",
	"Kotlin":     "#7F52FF",
	"HTML":       "#e34c26",
	"CSS":        "#563d7c",
	"SQL":        "#336791",
	"Shell":      "#89e051",
	"Vue":        "#2c3e50",
	"React":      "#61dafb",
}

// LanguageColor returns the hex display color for a repository language.
func LanguageColor(language string) string {
	if c, ok := languageColors[language]; ok {
		return c
	}
	return DefaultLanguageColor
}
