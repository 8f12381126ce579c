package prompt

import (
	"fmt"
	"strings"

	werrors "writer/src/errors"
	"writer/src/forms"
)

// Section headers, in render order.
const (
	HeaderTask         = "TASK"
	HeaderStyle        = "STYLE PROFILE"
	HeaderWorld        = "WORLD & ENVIRONMENT"
	HeaderCharacters   = "CHARACTERS"
	HeaderAuthenticity = "AUTHENTICITY RULES"
	HeaderConstraints  = "CONSTRAINTS"
	HeaderDelivery     = "DELIVERY"
)

const (
	preamble = "You are an elite creative writing assistant."

	noCharacters       = "Not specified"
	defaultConstraint  = "- Keep the language natural and believable."
	defaultEnvironment = "Ground scenes in sensory details tied to location, weather, and atmosphere."
)

// Headers returns the section headers in the order Build renders them.
func Headers() []string {
	return []string{
		HeaderTask,
		HeaderStyle,
		HeaderWorld,
		HeaderCharacters,
		HeaderAuthenticity,
		HeaderConstraints,
		HeaderDelivery,
	}
}

type section struct {
	header string
	lines  []string
}

func (s section) String() string {
	return s.header + "\n" + strings.Join(s.lines, "\n")
}

// Build renders the prompt for req. The only failure is a form that is not
// in the registry, reported as a *errors.ValidationError.
func Build(req WritingRequest) (string, error) {
	form, ok := forms.Lookup(req.Form)
	if !ok {
		return "", unsupportedForm(req.Form)
	}

	sections := []section{
		{HeaderTask, []string{
			fmt.Sprintf("Write a %s about: %s", req.Form, req.Topic),
		}},
		{HeaderStyle, []string{
			"- Creative form guidance: " + form.Guidance,
			"- Tone: " + orDefault(req.Tone, DefaultTone),
			"- Perspective: " + orDefault(req.Perspective, DefaultPerspective),
			"- Audience: " + orDefault(req.Audience, DefaultAudience),
		}},
		{HeaderWorld, []string{
			"- Setting direction: " + orDefault(req.Environment, defaultEnvironment),
			"- Use concrete sensory details (sound, texture, smell, temperature, light).",
			"- Make character choices reflect social and physical environment.",
		}},
		{HeaderCharacters, []string{
			"- Primary figures: " + characterList(req.Characters),
			"- Give each voice a distinct rhythm, vocabulary, and emotional logic.",
		}},
		{HeaderAuthenticity, []string{
			"- Avoid clichés unless intentionally subverted.",
			"- Prioritize emotionally truthful reactions over melodrama.",
			"- Include subtle imperfections in speech/behavior to feel human.",
			"- Let conflict emerge from values, fears, and desire.",
		}},
		{HeaderConstraints, constraintLines(req.Constraints)},
		{HeaderDelivery, []string{
			"- Start with a compelling opening.",
			"- Keep pacing appropriate for the chosen form.",
			"- End with resonance (image, line, or emotional beat that lingers).",
		}},
	}

	var sb strings.Builder
	sb.WriteString(preamble)
	for _, s := range sections {
		sb.WriteString("\n\n")
		sb.WriteString(s.String())
	}
	sb.WriteString("\n")
	return sb.String(), nil
}

func unsupportedForm(form string) error {
	return &werrors.ValidationError{
		Field: "form",
		Value: form,
		Message: fmt.Sprintf("Unsupported format '%s'. Choose from: %s",
			form, strings.Join(forms.Names(), ", ")),
		Err: werrors.ErrUnsupportedForm,
	}
}

// ValidateForm returns the same error Build would for an unsupported form,
// or nil.
func ValidateForm(form string) error {
	if forms.IsSupported(form) {
		return nil
	}
	return unsupportedForm(form)
}

func characterList(characters []string) string {
	if len(characters) == 0 {
		return noCharacters
	}
	return strings.Join(characters, ", ")
}

func constraintLines(constraints []string) []string {
	if len(constraints) == 0 {
		return []string{defaultConstraint}
	}
	lines := make([]string, len(constraints))
	for i, c := range constraints {
		lines[i] = "- " + c
	}
	return lines
}
