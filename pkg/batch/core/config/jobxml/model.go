// Package jobxml reads XML job definition files and turns each <step> element
// into resolved step definitions and an ordered transition graph. It owns the
// whole configuration-time path: decoding, structural validation, step-kind
// resolution, transition-graph construction, and flow assembly.
package jobxml

import (
	"encoding/xml"

	model "github.com/hamaguri/riptide/pkg/batch/core/domain/model"
)

// JobDefinitionBytes holds the content of a job definition XML file as a byte
// slice. It is used when supplying embedded definitions to the application.
type JobDefinitionBytes []byte

// JobSpec is the decoded form of one <job> element.
type JobSpec struct {
	XMLName xml.Name `xml:"job"`
	// ID is the unique identifier for the job.
	ID string `xml:"id,attr"`
	// Steps holds the job's <step> children in document order.
	Steps []StepSpec `xml:"step"`
}

// StepSpec is the decoded form of one <step> element. Decoding preserves the
// document order of the mixed next/stop/end children and tags each one with
// its TransitionKind, so kind is never re-derived from element names later.
type StepSpec struct {
	// Name is the step name attribute. It may be empty when an inline
	// definition is present; the resolver synthesizes a name in that case.
	Name string
	// ShortNext is the step-level next attribute, a literal target step name.
	ShortNext string
	// Tasks holds decoded <task> children. A well-formed step has at most one.
	Tasks []TaskSpec
	// Chunks holds decoded <chunk-oriented> children. A well-formed step has at most one.
	Chunks []ChunkOrientedSpec
	// Transitions holds the next/stop/end children in document order.
	Transitions []TransitionElement
}

// TaskSpec is the decoded form of a <task> child: an inline single-tasklet
// step definition.
type TaskSpec struct {
	// TaskletRef names the registered tasklet builder.
	TaskletRef string `xml:"tasklet,attr"`
	// RepositoryRef names the job repository collaborator. Empty selects the default.
	RepositoryRef string `xml:"job-repository,attr"`
	// TransactionManagerRef names the transaction manager collaborator. Empty selects the default.
	TransactionManagerRef string `xml:"transaction-manager,attr"`
	// Properties holds the component property bag.
	Properties []PropertySpec `xml:"property"`
}

// ChunkOrientedSpec is the decoded form of a <chunk-oriented> child: an inline
// chunk-oriented (read, process, write) step definition.
type ChunkOrientedSpec struct {
	// ReaderRef names the registered item reader builder.
	ReaderRef string `xml:"reader,attr"`
	// ProcessorRef names the registered item processor builder. Empty selects the pass-through default.
	ProcessorRef string `xml:"processor,attr"`
	// WriterRef names the registered item writer builder.
	WriterRef string `xml:"writer,attr"`
	// CommitInterval is the declared commit interval. Empty selects the default of 1.
	CommitInterval string `xml:"commit-interval,attr"`
	// RepositoryRef names the job repository collaborator. Empty selects the default.
	RepositoryRef string `xml:"job-repository,attr"`
	// TransactionManagerRef names the transaction manager collaborator. Empty selects the default.
	TransactionManagerRef string `xml:"transaction-manager,attr"`
	// Properties holds the component property bag.
	Properties []PropertySpec `xml:"property"`
}

// PropertySpec is one <property name value/> entry of a component property bag.
type PropertySpec struct {
	// Name is the property key.
	Name string `xml:"name,attr"`
	// Value is the property value.
	Value string `xml:"value,attr"`
}

// TransitionElement is one decoded next/stop/end child of a step.
type TransitionElement struct {
	// Kind tags the element form, decided at decode time.
	Kind model.TransitionKind
	// On is the completion-status pattern. "*" matches any status; empty means absent.
	On string
	// To is the target step name. For stop/end it is only honored for
	// chaining when no explicit status is declared.
	To string
	// Status is the explicit terminal status literal of a stop/end element.
	Status string
}

// transitionAttrs is the attribute carrier used while decoding a
// next/stop/end child.
type transitionAttrs struct {
	On     string `xml:"on,attr"`
	To     string `xml:"to,attr"`
	Status string `xml:"status,attr"`
}

// UnmarshalXML decodes a <step> element by walking its token stream, so the
// relative document order of transition children survives decoding.
func (s *StepSpec) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "name":
			s.Name = attr.Value
		case "next":
			s.ShortNext = attr.Value
		}
	}

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "task":
				var task TaskSpec
				if err := d.DecodeElement(&task, &t); err != nil {
					return err
				}
				s.Tasks = append(s.Tasks, task)
			case "chunk-oriented":
				var chunk ChunkOrientedSpec
				if err := d.DecodeElement(&chunk, &t); err != nil {
					return err
				}
				s.Chunks = append(s.Chunks, chunk)
			case "next", "stop", "end":
				var attrs transitionAttrs
				if err := d.DecodeElement(&attrs, &t); err != nil {
					return err
				}
				s.Transitions = append(s.Transitions, TransitionElement{
					Kind:   transitionKindOf(t.Name.Local),
					On:     attrs.On,
					To:     attrs.To,
					Status: attrs.Status,
				})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

// transitionKindOf maps a transition element name to its kind. Callers only
// pass the three recognized names.
func transitionKindOf(name string) model.TransitionKind {
	switch name {
	case "stop":
		return model.KindStop
	case "end":
		return model.KindEnd
	default:
		return model.KindNext
	}
}

// Elements returns the transition children of the step grouped for graph
// construction: all next elements first, then all stop elements, then all end
// elements, preserving document order within each group.
func (s *StepSpec) Elements() []TransitionElement {
	ordered := make([]TransitionElement, 0, len(s.Transitions))
	for _, kind := range []model.TransitionKind{model.KindNext, model.KindStop, model.KindEnd} {
		for _, t := range s.Transitions {
			if t.Kind == kind {
				ordered = append(ordered, t)
			}
		}
	}
	return ordered
}
