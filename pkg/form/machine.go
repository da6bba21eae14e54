// Package form holds the wizard state machine: per-step editing over a
// template's fields, synchronous validation gates, and the completion score
// recomputed on every committed change.
package form

import (
	"github.com/goliatone/go-docforge/pkg/schema"
	"github.com/goliatone/go-docforge/pkg/validation"
)

// Machine drives a single template's form through its wizard steps. It owns
// FormValues exclusively; readers receive snapshots. All operations are
// synchronous and non-blocking.
type Machine struct {
	desc      schema.TemplateDescriptor
	steps     []Step
	step      int
	values    schema.FormValues
	errors    schema.FieldErrors
	submitted bool
	completed map[string]bool
}

// NewMachine starts a machine at step 0 with values seeded from each field's
// declared default.
func NewMachine(desc schema.TemplateDescriptor) *Machine {
	m := &Machine{}
	m.reset(desc)
	return m
}

func (m *Machine) reset(desc schema.TemplateDescriptor) {
	m.desc = desc
	m.steps = BuildSteps(desc)
	m.step = 0
	m.values = schema.SeedDefaults(desc)
	m.errors = make(schema.FieldErrors)
	m.submitted = false
	m.completed = computeCompleted(desc.Fields, m.values)
}

// Reset discards all state and reinitialises from a new template. Template
// switch is atomic: old values and errors are replaced, never merged.
func (m *Machine) Reset(desc schema.TemplateDescriptor) {
	m.reset(desc)
}

// SetValue commits a value for the field, clears any standing error for it,
// and recomputes the completion score. Legal in any state. Ids that match no
// field in the template are dropped fail-soft, mirroring marker policy.
func (m *Machine) SetValue(id string, value schema.Value) Score {
	if _, ok := m.desc.Field(id); !ok {
		return Score{Value: scoreFromCompleted(m.completed)}
	}
	if value.Empty() {
		delete(m.values, id)
	} else {
		m.values[id] = value
	}
	delete(m.errors, id)

	completed := computeCompleted(m.desc.Fields, m.values)
	score := Score{
		Value:         scoreFromCompleted(completed),
		JustCompleted: diffCompleted(m.completed, completed),
	}
	m.completed = completed
	return score
}

// Advance validates every field in the current step. When all pass the
// machine moves one step forward (no-op on the last step) and reports true;
// otherwise it stays put, populates the failing fields' errors, and reports
// false.
func (m *Machine) Advance() bool {
	errs := validation.ValidateAll(m.stepFields(m.step), m.values)
	if len(errs) > 0 {
		for id, msg := range errs {
			m.errors[id] = msg
		}
		return false
	}
	if m.step < len(m.steps)-1 {
		m.step++
	}
	return true
}

// Retreat moves one step back unconditionally; no-op at step 0.
func (m *Machine) Retreat() {
	if m.step > 0 {
		m.step--
	}
}

// Submit validates all fields across all steps. On success the machine enters
// the terminal Submitted state and returns the final values. On failure it
// stays in Editing, jumps to the step containing the first failing field, and
// populates every failing field's error, not just the current step's.
func (m *Machine) Submit() (schema.FormValues, bool) {
	errs := validation.ValidateAll(m.desc.Fields, m.values)
	if len(errs) > 0 {
		for id, msg := range errs {
			m.errors[id] = msg
		}
		m.step = m.firstFailingStep(errs)
		return nil, false
	}
	m.submitted = true
	return m.values.Clone(), true
}

func (m *Machine) firstFailingStep(errs schema.FieldErrors) int {
	for i := range m.steps {
		for _, id := range m.steps[i].FieldIDs {
			if _, failing := errs[id]; failing {
				return i
			}
		}
	}
	return m.step
}

func (m *Machine) stepFields(index int) []schema.FieldSchema {
	if index < 0 || index >= len(m.steps) {
		return nil
	}
	fields := make([]schema.FieldSchema, 0, len(m.steps[index].FieldIDs))
	for _, id := range m.steps[index].FieldIDs {
		if field, ok := m.desc.Field(id); ok {
			fields = append(fields, field)
		}
	}
	return fields
}

// Template returns the descriptor this machine is editing.
func (m *Machine) Template() schema.TemplateDescriptor {
	return m.desc
}

// Values returns a snapshot of the current form values.
func (m *Machine) Values() schema.FormValues {
	return m.values.Clone()
}

// Errors returns a snapshot of the standing per-field errors.
func (m *Machine) Errors() schema.FieldErrors {
	out := make(schema.FieldErrors, len(m.errors))
	for id, msg := range m.errors {
		out[id] = msg
	}
	return out
}

// StepIndex returns the current wizard position.
func (m *Machine) StepIndex() int {
	return m.step
}

// StepCount returns the number of wizard steps for this template.
func (m *Machine) StepCount() int {
	return len(m.steps)
}

// CurrentStep returns the step the user is editing.
func (m *Machine) CurrentStep() Step {
	return m.steps[m.step]
}

// Steps returns all wizard steps.
func (m *Machine) Steps() []Step {
	return append([]Step(nil), m.steps...)
}

// Submitted reports whether the machine reached the terminal state.
func (m *Machine) Submitted() bool {
	return m.submitted
}

// Score recomputes the completion score for the current values.
func (m *Machine) Score() Score {
	return Score{Value: scoreFromCompleted(m.completed)}
}
