package materialize

import (
	"golang.org/x/text/language"

	"pkt.systems/chatmd/ext/container"
)

type messages struct {
	mathTitle    string
	mathHint     string
	diagramTitle string
	diagramHint  string
}

var catalog = map[language.Tag]messages{
	language.Russian: {
		mathTitle:    "Ошибка рендеринга формулы:",
		mathHint:     "Проверьте синтаксис LaTeX формулы.",
		diagramTitle: "Ошибка рендеринга диаграммы:",
		diagramHint:  "Код диаграммы пришел с ошибками. Перегенерируйте ответ или исправьте диаграмму вручную.",
	},
	language.English: {
		mathTitle:    "Formula rendering error:",
		mathHint:     "Check the LaTeX syntax of the formula.",
		diagramTitle: "Diagram rendering error:",
		diagramHint:  "The diagram source has errors. Regenerate the answer or fix the diagram by hand.",
	},
}

func messagesFor(locale string) messages {
	return catalog[container.MatchLocale(locale)]
}
