// Package w3c provides IRI constants for the W3C core vocabularies used by
// the topology graph: RDF, RDFS, OWL, and XSD.
package w3c

// Namespace prefixes for the W3C core vocabularies.
const (
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNamespace  = "http://www.w3.org/2002/07/owl#"
	XSDNamespace  = "http://www.w3.org/2001/XMLSchema#"
)

// Core RDF/RDFS terms.
const (
	// RDFType is the "is a" predicate (rdf:type, abbreviated "a" in Turtle).
	RDFType = RDFNamespace + "type"

	// RDFSSubClassOf relates a class to its superclass.
	RDFSSubClassOf = RDFSNamespace + "subClassOf"

	// RDFSLabel is the human-readable label predicate.
	RDFSLabel = RDFSNamespace + "label"

	// RDFSComment is the human-readable description predicate.
	RDFSComment = RDFSNamespace + "comment"
)

// OWL declaration classes.
const (
	// OWLClass declares an IRI as a class.
	OWLClass = OWLNamespace + "Class"

	// OWLObjectProperty declares a predicate relating two entities.
	OWLObjectProperty = OWLNamespace + "ObjectProperty"

	// OWLDatatypeProperty declares a predicate whose object is a literal.
	OWLDatatypeProperty = OWLNamespace + "DatatypeProperty"
)

// XSD datatype IRIs for typed literals.
const (
	XSDString  = XSDNamespace + "string"
	XSDBoolean = XSDNamespace + "boolean"
	XSDInteger = XSDNamespace + "integer"
)
