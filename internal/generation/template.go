package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/blattwerk/blattwerk-api/internal/domain"
)

// templatePair is one entry of a level's template bank: an exercise prompt
// and its solution. Both strings may embed {topic} and {word} placeholders.
type templatePair struct {
	prompt   string
	solution string
}

// templateBanks holds the fixed ordered bank of prompt/solution pairs per
// CEFR level. Entries are consumed cyclically until the question count
// derived from the requested duration is reached.
var templateBanks = map[string][]templatePair{
	domain.LevelA1: {
		{"Lücken ausfüllen: ___ heiße Anna.", "Ich heiße Anna."},
		{"Wortschatz: Schreibe 3 Wörter zum Thema '{topic}'.", "Beispiel: Schule, Lehrer, Heft."},
		{"Artikel einsetzen: ___ Haus ist groß.", "Das Haus ist groß."},
		{"Satz ordnen: (geht / die / Schule / in / Ali)", "Ali geht in die Schule."},
		{"Kurze Antwort: Wo wohnst du?", "Ich wohne in ..."},
	},
	domain.LevelA2: {
		{"Lücken ausfüllen: ___ Mann ist Lehrer.", "Der Mann ist Lehrer."},
		{"Richtig oder falsch: Ich fahre morgen nach Berlin.", "Richtig."},
		{"Frage bilden: (du / gehen / heute / wohin)", "Wohin gehst du heute?"},
		{"Satz ergänzen: Ich habe ___ Uhr Unterricht.", "Ich habe um acht Uhr Unterricht."},
		{"Wortschatz: Nenne 4 Wörter zu '{topic}'.", "Beispiel: Buch, Stift, Tafel, Klasse."},
	},
	domain.LevelB1: {
		{"Satz verbinden: Ich lerne Deutsch. Ich möchte studieren.", "Ich lerne Deutsch, weil ich studieren möchte."},
		{"Lücken ausfüllen: Wenn ich Zeit habe, ___ ich Sport.", "Wenn ich Zeit habe, mache ich Sport."},
		{"Kurztext: Schreibe 3 Sätze über '{topic}'.", "Beispiel: Ich mag ..."},
		{"Wortschatz: Erkläre das Wort '{word}'.", "Beispiel: ..."},
		{"Satz umformen: Ich kann nicht kommen. (wegen)", "Ich kann wegen der Arbeit nicht kommen."},
	},
	domain.LevelB2: {
		{"Argumentieren: Nenne zwei Gründe für '{topic}'.", "Beispiel: Erstens ..., zweitens ..."},
		{"Lücken ausfüllen: Obwohl es regnete, ___ wir spazieren.", "Obwohl es regnete, gingen wir spazieren."},
		{"Paraphrase: Formuliere den Satz um: 'Es ist wichtig, Deutsch zu lernen.'", "Deutsch zu lernen ist wichtig."},
		{"Wortschatz: Verwende '{word}' in einem Satz.", "Beispiel: ..."},
		{"Kurztext: Schreibe eine Meinung zu '{topic}'.", "Beispiel: Ich finde, dass ..."},
	},
}

// hintLabel prefixes the synthetic trailing entry carrying the theme words.
const hintLabel = "Hinweis-Wörter"

// TemplateGenerator is the deterministic worksheet generator. It is pure:
// identical inputs always yield identical output, and Generate never fails
// for inputs within the documented constraints.
type TemplateGenerator struct{}

// Ensure TemplateGenerator implements the Generator interface
var _ Generator = (*TemplateGenerator)(nil)

// NewTemplateGenerator creates a new TemplateGenerator.
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

// Generate implements Generator using the fixed per-level template banks.
//
// The question count is derived from the requested duration in three bands
// (<=20min: 10, <=30min: 12, otherwise 15). Bank entries are consumed
// cyclically; each emitted prompt is numbered sequentially and suffixed with
// the activity-type list and age group, each solution is numbered
// independently. When theme words are supplied, one unnumbered hint entry
// listing them is appended to both lists.
//
// An unrecognized level degrades to the A1 bank rather than failing.
func (g *TemplateGenerator) Generate(
	ctx context.Context,
	req *domain.GenerationRequest,
) (*domain.GenerationResult, error) {
	bank, ok := templateBanks[req.Level]
	if !ok {
		bank = templateBanks[domain.LevelA1]
	}

	activities := strings.Join(req.ActivityTypes, ", ")
	count := questionCount(req.Duration)

	content := make([]string, 0, count+1)
	solutions := make([]string, 0, count+1)

	for index := 0; len(content) < count; index++ {
		pair := bank[index%len(bank)]

		// One theme word per entry, cycling; the topic stands in when no
		// theme words were supplied.
		word := req.Topic
		if len(req.ThemeWords) > 0 {
			word = req.ThemeWords[index%len(req.ThemeWords)]
		}

		prompt := expandTemplate(pair.prompt, req.Topic, word)
		solution := expandTemplate(pair.solution, req.Topic, word)

		content = append(content, strings.TrimSpace(
			fmt.Sprintf("%d) %s [%s | %s]", len(content)+1, prompt, activities, req.AgeGroup)))
		solutions = append(solutions, fmt.Sprintf("%d) %s", len(solutions)+1, solution))
	}

	if len(req.ThemeWords) > 0 {
		hint := fmt.Sprintf("%s: %s", hintLabel, strings.Join(req.ThemeWords, ", "))
		content = append(content, hint)
		solutions = append(solutions, hint)
	}

	return &domain.GenerationResult{
		Content:   content,
		Solutions: solutions,
	}, nil
}

// questionCount maps a duration in minutes to the number of exercises.
func questionCount(duration int) int {
	switch {
	case duration <= 20:
		return 10
	case duration <= 30:
		return 12
	default:
		return 15
	}
}

// expandTemplate substitutes the {topic} and {word} placeholders.
func expandTemplate(tmpl, topic, word string) string {
	r := strings.NewReplacer("{topic}", topic, "{word}", word)
	return r.Replace(tmpl)
}
