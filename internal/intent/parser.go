package intent

import "fmt"

// Parser is the single entry point of the command engine. It owns the
// normalizer's alias tables and nothing else; every Parse call is
// stateless beyond them, so one Parser serves all goroutines.
type Parser struct {
	normalizer *Normalizer
}

// NewParser builds a parser over the given alias tables.
func NewParser(cities, categories AliasTable) *Parser {
	return &Parser{normalizer: NewNormalizer(cities, categories)}
}

// NewDefaultParser builds a parser over the built-in alias tables.
func NewDefaultParser() *Parser {
	return NewParser(DefaultCityAliases(), DefaultCategoryAliases())
}

// Parse converts one command into an Intent. It never fails: text that
// matches no template yields an unknown intent with low confidence and
// empty entities. A nil-ish (empty) command is treated as empty text.
func (p *Parser) Parse(command string) *Intent {
	cleaned := Clean(command)

	typ, confidence, entities, matched := match(cleaned)
	if matched {
		entities = p.normalizer.Normalize(entities)
	}

	in := &Intent{
		Type:            typ,
		Confidence:      confidence,
		Entities:        entities,
		OriginalCommand: command,
		Category:        p.normalizer.DetectCategory(entities.End),
	}
	in.ParsedIntent = describe(in)
	return in
}

func describe(in *Intent) string {
	switch in.Type {
	case TypeRoute:
		return fmt.Sprintf("从%s导航到%s", in.Entities.Start, in.Entities.End)
	case TypeDestination:
		return fmt.Sprintf("从%s导航到%s", CurrentLocation, in.Entities.End)
	case TypeStart:
		return fmt.Sprintf("从%s出发", in.Entities.Start)
	default:
		return "无法识别的导航指令"
	}
}
