package rdf

// Namespaces used by the codecs.
const (
	RDFNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	XSDNamespace = "http://www.w3.org/2001/XMLSchema#"
)

var (
	RDFType       = IRI{Value: RDFNamespace + "type"}
	RDFLangString = IRI{Value: RDFNamespace + "langString"}
	RDFFirst      = IRI{Value: RDFNamespace + "first"}
	RDFRest       = IRI{Value: RDFNamespace + "rest"}
	RDFNil        = IRI{Value: RDFNamespace + "nil"}

	XSDString   = IRI{Value: XSDNamespace + "string"}
	XSDBoolean  = IRI{Value: XSDNamespace + "boolean"}
	XSDInteger  = IRI{Value: XSDNamespace + "integer"}
	XSDDecimal  = IRI{Value: XSDNamespace + "decimal"}
	XSDDouble   = IRI{Value: XSDNamespace + "double"}
	XSDDate     = IRI{Value: XSDNamespace + "date"}
	XSDDateTime = IRI{Value: XSDNamespace + "dateTime"}
	XSDDuration = IRI{Value: XSDNamespace + "duration"}
)
