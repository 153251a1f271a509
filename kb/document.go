package kb

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/teranos/chronos/errors"
	"github.com/teranos/chronos/vocab"
)

// Document is a fact file: a prefix table and a flat list of facts.
//
//	[prefixes]
//	ex = "http://example.org/"
//
//	[[facts]]
//	subject = "ex:A"
//	predicate = "a"
//	object = "time:ProperInterval"
//
//	[[facts]]
//	subject = "ex:t0"
//	predicate = "time:inXSDDateTimeStamp"
//	value = "2024-01-01T00:00:00Z"
//	datatype = "xsd:dateTimeStamp"
//
// Compact names use the prefix table plus the built-in time, rdf, rdfs, owl
// and xsd prefixes. The predicate "a" is rdf:type. Subjects and objects
// starting with "_:" are blank nodes, skolemised per Triples call.
type Document struct {
	Prefixes map[string]string `toml:"prefixes" yaml:"prefixes"`
	Facts    []Fact            `toml:"facts" yaml:"facts"`
}

// Fact is one document entry. Exactly one of Object and Value must be set.
type Fact struct {
	Subject   string  `toml:"subject" yaml:"subject"`
	Predicate string  `toml:"predicate" yaml:"predicate"`
	Object    string  `toml:"object,omitempty" yaml:"object,omitempty"`
	Value     *string `toml:"value,omitempty" yaml:"value,omitempty"`
	Datatype  string  `toml:"datatype,omitempty" yaml:"datatype,omitempty"`
}

// ParseTOML decodes a TOML fact document. Unknown keys are rejected.
func ParseTOML(data []byte) (*Document, error) {
	var doc Document
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, errors.Wrap(err, "decode TOML fact document")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.NewInvalidRequestError("unknown keys in fact document: %s", strings.Join(keys, ", "))
	}
	return &doc, nil
}

// ParseYAML decodes a YAML fact document. Unknown keys are rejected.
func ParseYAML(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decode YAML fact document")
	}
	return &doc, nil
}

// LoadDocument reads a fact document, choosing the decoder by file extension.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read fact document %s", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ParseTOML(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, errors.WithHint(
			errors.NewInvalidRequestError("unsupported fact document %s", path),
			"use a .toml, .yaml or .yml file",
		)
	}
}

// Triples expands the document into full-IRI triples.
func (d *Document) Triples() ([]Triple, error) {
	ex := d.expander()
	triples := make([]Triple, 0, len(d.Facts))
	for i, f := range d.Facts {
		t := Triple{
			Subject:   ex.term(f.Subject),
			Predicate: ex.predicate(f.Predicate),
		}
		switch {
		case f.Value != nil && f.Object != "":
			return nil, errors.NewInvalidRequestError("fact %d (%s %s) sets both object and value", i, f.Subject, f.Predicate)
		case f.Value != nil:
			t.Literal = &Literal{Value: *f.Value, Datatype: ex.iri(f.Datatype)}
		default:
			t.Object = ex.term(f.Object)
		}
		if !t.Valid() {
			return nil, errors.NewInvalidRequestError("fact %d (%s %s) is incomplete", i, f.Subject, f.Predicate)
		}
		triples = append(triples, t)
	}
	return triples, nil
}

// Graph expands the document into a new Graph.
func (d *Document) Graph() (*Graph, error) {
	triples, err := d.Triples()
	if err != nil {
		return nil, err
	}
	g := NewGraph()
	for _, t := range triples {
		if _, err := g.Add(t); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Expand turns a compact name into a full IRI using the document prefixes.
// Full IRIs and unknown prefixes are returned unchanged.
func (d *Document) Expand(name string) string {
	return d.expander().iri(name)
}

type expander struct {
	prefixes map[string]string
	blanks   map[string]string
}

func (d *Document) expander() *expander {
	prefixes := make(map[string]string, len(vocab.DefaultPrefixes)+len(d.Prefixes))
	for k, v := range vocab.DefaultPrefixes {
		prefixes[k] = v
	}
	for k, v := range d.Prefixes {
		prefixes[k] = v
	}
	return &expander{prefixes: prefixes, blanks: make(map[string]string)}
}

func (e *expander) predicate(name string) string {
	if strings.TrimSpace(name) == "a" {
		return vocab.RDFType
	}
	return e.iri(name)
}

func (e *expander) term(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, "_:") {
		if id, ok := e.blanks[name]; ok {
			return id
		}
		id := "urn:uuid:" + uuid.NewString()
		e.blanks[name] = id
		return id
	}
	return e.iri(name)
}

func (e *expander) iri(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || strings.Contains(name, "://") {
		return name
	}
	prefix, local, ok := strings.Cut(name, ":")
	if !ok {
		return name
	}
	if ns, known := e.prefixes[prefix]; known {
		return ns + local
	}
	return name
}
