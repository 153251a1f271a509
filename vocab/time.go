// Package vocab holds the IRIs chronos reads from the fact graph: the
// W3C OWL-Time vocabulary plus the handful of RDF, RDFS, OWL and XSD terms the
// model adapters need.
//
// Predicates are grouped by the component that consumes them:
//
//	Class IRIs          → class membership cache (instants, intervals)
//	Relation IRIs       → allen registry and validator rules
//	Structural IRIs     → temporal extractor (values, descriptions, positions)
//	Unit IRIs           → duration and position normalization
//	Reference systems   → trs registry built-ins
package vocab

// Namespace is the OWL-Time namespace.
const Namespace = "http://www.w3.org/2006/time#"

// Prefix is the compact prefix used in issue messages ("time:intervalBefore").
const Prefix = "time:"

// Standard namespaces used by fact documents.
const (
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNamespace  = "http://www.w3.org/2002/07/owl#"
	XSDNamespace  = "http://www.w3.org/2001/XMLSchema#"
)

// RDF, RDFS and OWL terms honoured by kb.Graph.
const (
	RDFType               = RDFNamespace + "type"
	RDFSSubClassOf        = RDFSNamespace + "subClassOf"
	RDFSSubPropertyOf     = RDFSNamespace + "subPropertyOf"
	OWLEquivalentClass    = OWLNamespace + "equivalentClass"
	OWLEquivalentProperty = OWLNamespace + "equivalentProperty"
)

// Class IRIs.
const (
	ClassTemporalEntity = Namespace + "TemporalEntity"
	ClassInstant        = Namespace + "Instant"
	ClassInterval       = Namespace + "Interval"
	ClassProperInterval = Namespace + "ProperInterval"

	ClassDateTimeDescription = Namespace + "DateTimeDescription"
	ClassDurationDescription = Namespace + "DurationDescription"
	ClassDuration            = Namespace + "Duration"
	ClassTimePosition        = Namespace + "TimePosition"
	ClassTRS                 = Namespace + "TRS"
	ClassTemporalUnit        = Namespace + "TemporalUnit"
)

// Temporal relation IRIs. Instant-instant relations first, then the
// interval-interval relations in the order OWL-Time documents them.
const (
	Before = Namespace + "before"
	After  = Namespace + "after"

	IntervalAfter        = Namespace + "intervalAfter"
	IntervalBefore       = Namespace + "intervalBefore"
	IntervalContains     = Namespace + "intervalContains"
	IntervalDisjoint     = Namespace + "intervalDisjoint"
	IntervalDuring       = Namespace + "intervalDuring"
	IntervalEquals       = Namespace + "intervalEquals"
	IntervalFinishedBy   = Namespace + "intervalFinishedBy"
	IntervalFinishes     = Namespace + "intervalFinishes"
	IntervalIn           = Namespace + "intervalIn"
	IntervalMeets        = Namespace + "intervalMeets"
	IntervalMetBy        = Namespace + "intervalMetBy"
	IntervalOverlappedBy = Namespace + "intervalOverlappedBy"
	IntervalOverlaps     = Namespace + "intervalOverlaps"
	IntervalStartedBy    = Namespace + "intervalStartedBy"
	IntervalStarts       = Namespace + "intervalStarts"
	HasInside            = Namespace + "hasInside"
	NotDisjoint          = Namespace + "notDisjoint"
)

// Structural predicates read by the temporal extractor.
const (
	// Instant encodings
	InXSDDateTimeStamp = Namespace + "inXSDDateTimeStamp"
	InXSDDateTime      = Namespace + "inXSDDateTime"
	InXSDDate          = Namespace + "inXSDDate"
	InDateTime         = Namespace + "inDateTime"
	InTimePosition     = Namespace + "inTimePosition"

	// Interval structure
	HasBeginning           = Namespace + "hasBeginning"
	HasEnd                 = Namespace + "hasEnd"
	HasXSDDuration         = Namespace + "hasXSDDuration"
	HasDuration            = Namespace + "hasDuration"
	HasDurationDescription = Namespace + "hasDurationDescription"

	// Shared by descriptions and positions
	HasTRS   = Namespace + "hasTRS"
	UnitType = Namespace + "unitType"

	// DateTimeDescription fields
	Year   = Namespace + "year"
	Month  = Namespace + "month"
	Day    = Namespace + "day"
	Hour   = Namespace + "hour"
	Minute = Namespace + "minute"
	Second = Namespace + "second"

	// DurationDescription fields
	Years   = Namespace + "years"
	Months  = Namespace + "months"
	Weeks   = Namespace + "weeks"
	Days    = Namespace + "days"
	Hours   = Namespace + "hours"
	Minutes = Namespace + "minutes"
	Seconds = Namespace + "seconds"

	// TimePosition and Duration values
	NumericPosition = Namespace + "numericPosition"
	NominalPosition = Namespace + "nominalPosition"
	NumericDuration = Namespace + "numericDuration"
)

// Temporal unit IRIs.
const (
	UnitSecond = Namespace + "unitSecond"
	UnitMinute = Namespace + "unitMinute"
	UnitHour   = Namespace + "unitHour"
	UnitDay    = Namespace + "unitDay"
	UnitWeek   = Namespace + "unitWeek"
	UnitMonth  = Namespace + "unitMonth"
	UnitYear   = Namespace + "unitYear"
)

// Built-in reference system IRIs.
const (
	// Gregorian is the default calendar reference system of OWL-Time.
	Gregorian = "http://www.opengis.net/def/uom/ISO-8601/0/Gregorian"

	UnixTime     = "https://en.wikipedia.org/wiki/Unix_time"
	GPSTime      = "https://en.wikipedia.org/wiki/Global_Positioning_System#Timekeeping"
	GeologicTime = "https://en.wikipedia.org/wiki/Geologic_time_scale"
)

// XSD datatypes recognised on literals.
const (
	XSDString         = XSDNamespace + "string"
	XSDDecimal        = XSDNamespace + "decimal"
	XSDDouble         = XSDNamespace + "double"
	XSDInteger        = XSDNamespace + "integer"
	XSDNonNegativeInt = XSDNamespace + "nonNegativeInteger"
	XSDDateTime       = XSDNamespace + "dateTime"
	XSDDateTimeStamp  = XSDNamespace + "dateTimeStamp"
	XSDDate           = XSDNamespace + "date"
	XSDDuration       = XSDNamespace + "duration"
	XSDGYear          = XSDNamespace + "gYear"
	XSDGMonth         = XSDNamespace + "gMonth"
	XSDGDay           = XSDNamespace + "gDay"
	XSDAnyURI         = XSDNamespace + "anyURI"
)

// DefaultPrefixes maps the compact prefixes accepted by fact documents.
var DefaultPrefixes = map[string]string{
	"time": Namespace,
	"rdf":  RDFNamespace,
	"rdfs": RDFSNamespace,
	"owl":  OWLNamespace,
	"xsd":  XSDNamespace,
}
