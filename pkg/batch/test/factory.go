// Package test provides fixture factories shared by the package tests of the
// batch toolkit. The factories build decoded job and step specs directly, so
// tests can exercise resolution and graph construction without going through
// XML decoding.
package test

import (
	jobxml "github.com/hamaguri/riptide/pkg/batch/core/config/jobxml"
	model "github.com/hamaguri/riptide/pkg/batch/core/domain/model"
)

// NewTestStepSpec creates a named step spec carrying the given transition
// children in declaration order.
func NewTestStepSpec(name string, transitions ...jobxml.TransitionElement) *jobxml.StepSpec {
	return &jobxml.StepSpec{Name: name, Transitions: transitions}
}

// NewTestTaskletStepSpec creates a step spec with an inline task definition.
func NewTestTaskletStepSpec(name, taskletRef string, transitions ...jobxml.TransitionElement) *jobxml.StepSpec {
	spec := NewTestStepSpec(name, transitions...)
	spec.Tasks = []jobxml.TaskSpec{{TaskletRef: taskletRef}}
	return spec
}

// NewTestChunkStepSpec creates a step spec with an inline chunk-oriented
// definition referencing the given reader and writer.
func NewTestChunkStepSpec(name, readerRef, writerRef string, transitions ...jobxml.TransitionElement) *jobxml.StepSpec {
	spec := NewTestStepSpec(name, transitions...)
	spec.Chunks = []jobxml.ChunkOrientedSpec{{ReaderRef: readerRef, WriterRef: writerRef}}
	return spec
}

// NewTestTransition creates one transition element with full control over its
// attributes.
func NewTestTransition(kind model.TransitionKind, on, to, status string) jobxml.TransitionElement {
	return jobxml.TransitionElement{Kind: kind, On: on, To: to, Status: status}
}

// NewTestNext creates a next element routing the given pattern to a step.
func NewTestNext(on, to string) jobxml.TransitionElement {
	return NewTestTransition(model.KindNext, on, to, "")
}

// NewTestStop creates a stop element with the default STOPPED status.
func NewTestStop(on, to string) jobxml.TransitionElement {
	return NewTestTransition(model.KindStop, on, to, "")
}

// NewTestEnd creates an end element with the default COMPLETED status.
func NewTestEnd(on string) jobxml.TransitionElement {
	return NewTestTransition(model.KindEnd, on, "", "")
}

// NewTestJobSpec creates a job spec holding the given steps.
func NewTestJobSpec(id string, steps ...*jobxml.StepSpec) *jobxml.JobSpec {
	spec := &jobxml.JobSpec{ID: id}
	for _, s := range steps {
		spec.Steps = append(spec.Steps, *s)
	}
	return spec
}

// NewTestSession creates a configuration session with no telemetry attached.
func NewTestSession() *jobxml.ConfigurationSession {
	return jobxml.NewConfigurationSession(nil, nil)
}

// NewTestSequence creates a fresh terminal state name sequence.
func NewTestSequence() *jobxml.EndStateSequence {
	return jobxml.NewEndStateSequence()
}
