package domain

const skosNS = "http://www.w3.org/2004/02/skos/core#"

// Field maps a SPARQL result variable to the SKOS property it carries
// and the human-readable name stored alongside harvested values.
type Field struct {
	Var   string `yaml:"var"`
	URI   string `yaml:"uri"`
	Label string `yaml:"label"`
}

// CoreFields is the attribute set every harvest fetches.
func CoreFields() []Field {
	return []Field{
		{Var: "prefLabel", URI: skosNS + "prefLabel", Label: "preferred label"},
		{Var: "altLabel", URI: skosNS + "altLabel", Label: "alternate label"},
		{Var: "definition", URI: skosNS + "definition", Label: "definition"},
	}
}

// ExtendedFields adds the relational and notation attributes fetched in
// extended mode.
func ExtendedFields() []Field {
	return append(CoreFields(),
		Field{Var: "notation", URI: skosNS + "notation", Label: "notation"},
		Field{Var: "broader", URI: skosNS + "broader", Label: "broader concept"},
		Field{Var: "narrower", URI: skosNS + "narrower", Label: "narrower concept"},
		Field{Var: "related", URI: skosNS + "related", Label: "related concept"},
	)
}
