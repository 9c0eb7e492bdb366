package spicelib

// libFile is the parse tree of a model library: a flat sequence of
// subcircuit definitions and cards we do not interpret.
type libFile struct {
	Items []*libItem `parser:"@@*"`
}

type libItem struct {
	Subckt *subcktDef `parser:"  @@"`
	Card   *rawCard   `parser:"| @@"`
	Blank  bool       `parser:"| @EOL"`
}

// subcktDef is a ".subckt NAME pin..." block terminated by ".ends".
// Nested subcircuit definitions are legal and parsed recursively.
type subcktDef struct {
	Name string     `parser:"KwSubckt @Word"`
	Pins []string   `parser:"@Word* EOL"`
	Body []*libItem `parser:"@@* KwEnds Word? EOL?"`
}

// rawCard is any card the reader passes over: device cards, .model cards,
// .param cards and so on.
type rawCard struct {
	Words []string `parser:"@Word+"`
}
