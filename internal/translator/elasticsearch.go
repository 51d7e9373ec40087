package translator

import (
	"github.com/infiniv/luqum/internal/naming"
	"github.com/infiniv/luqum/internal/parser"
)

// ElasticsearchTranslator lowers a parsed query into an Elasticsearch Query
// DSL body. It is the module's one concrete Translator.
type ElasticsearchTranslator struct{}

// NewElasticsearchTranslator builds the Elasticsearch translator.
func NewElasticsearchTranslator() *ElasticsearchTranslator {
	return &ElasticsearchTranslator{}
}

// Engine identifies this translator in a Registry.
func (t *ElasticsearchTranslator) Engine() string { return "elasticsearch" }

// Translate runs Pass A (AST -> Element) then Pass B (Element -> JSON),
// wrapping the result in the {"query": {...}} envelope a _search body expects.
func (t *ElasticsearchTranslator) Translate(tree parser.Node, opts *Options, names *naming.NameIndex) (map[string]interface{}, error) {
	if opts == nil {
		opts = &Options{}
	}
	ctx := translateContext{names: names}
	elem, err := buildElement(tree, ctx, opts)
	if err != nil {
		return nil, err
	}
	return M{"query": emitElement(elem, opts)}, nil
}
