package prompt

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	werrors "writer/src/errors"
	"writer/src/forms"
)

const memoryTopic = "A poet loses memory in a mountain village"

func TestBuild_AllFormsContainHeaders(t *testing.T) {
	t.Parallel()

	for _, name := range forms.Names() {
		for _, variant := range []string{name, strings.ToUpper(name), "  " + name + "\n"} {
			variant := variant
			t.Run(variant, func(t *testing.T) {
				t.Parallel()

				out, err := Build(NewRequest(variant, "anything"))
				require.NoError(t, err)
				for _, header := range Headers() {
					assert.Contains(t, out, "\n"+header+"\n")
				}
			})
		}
	}
}

func TestBuild_UnsupportedForm(t *testing.T) {
	t.Parallel()

	tests := []string{"essay", "", "   ", "novels", "movie script", "poem"}
	for _, form := range tests {
		form := form
		t.Run(form, func(t *testing.T) {
			t.Parallel()

			out, err := Build(NewRequest(form, "anything"))
			require.Error(t, err)
			assert.Empty(t, out)
			assert.Contains(t, err.Error(), "Unsupported format")
			assert.True(t, werrors.IsValidation(err))
			assert.True(t, werrors.IsUnsupportedForm(err))
		})
	}
}

func TestBuild_UnsupportedFormMessage(t *testing.T) {
	_, err := Build(NewRequest(" Essay ", "anything"))
	require.Error(t, err)
	assert.Equal(t,
		"Unsupported format ' Essay '. Choose from: novel, poetry, dialogue, lyrics, movie-script, screenplay",
		err.Error())
	assert.Equal(t, err.Error(), ValidateForm(" Essay ").Error())
	assert.NoError(t, ValidateForm("Poetry"))
}

func TestBuild_Deterministic(t *testing.T) {
	req := NewRequest("dialogue", memoryTopic,
		WithCharacters("Reva", "Danish"),
		WithConstraints("word-count<300", "no profanity"))

	first, err := Build(req)
	require.NoError(t, err)
	second, err := Build(req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuild_ConcurrentCallers(t *testing.T) {
	want, err := Build(NewRequest("lyrics", "rain"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Build(NewRequest("lyrics", "rain"))
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestBuild_Characters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		characters []string
		want       string
	}{
		{name: "two characters", characters: []string{"Reva", "Danish"}, want: "- Primary figures: Reva, Danish\n"},
		{name: "one character", characters: []string{"Reva"}, want: "- Primary figures: Reva\n"},
		{name: "none", characters: nil, want: "- Primary figures: Not specified\n"},
		{name: "empty slice", characters: []string{}, want: "- Primary figures: Not specified\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := Build(NewRequest("novel", memoryTopic, WithCharacters(tt.characters...)))
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestBuild_Constraints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		constraints []string
		want        string
		notWant     string
	}{
		{
			name:        "single",
			constraints: []string{"word-count<300"},
			want:        "CONSTRAINTS\n- word-count<300\n\nDELIVERY",
			notWant:     defaultConstraint,
		},
		{
			name:        "ordered lines",
			constraints: []string{"no profanity", "rhyme scheme ABAB"},
			want:        "CONSTRAINTS\n- no profanity\n- rhyme scheme ABAB\n\nDELIVERY",
			notWant:     defaultConstraint,
		},
		{
			name:        "empty",
			constraints: nil,
			want:        "CONSTRAINTS\n- Keep the language natural and believable.\n\nDELIVERY",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := Build(NewRequest("poetry", "tides", WithConstraints(tt.constraints...)))
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
			if tt.notWant != "" {
				assert.NotContains(t, out, tt.notWant)
			}
		})
	}
}

func TestBuild_Environment(t *testing.T) {
	out, err := Build(NewRequest("novel", memoryTopic))
	require.NoError(t, err)
	assert.Contains(t, out, "- Setting direction: "+defaultEnvironment+"\n")

	out, err = Build(NewRequest("novel", memoryTopic, WithEnvironment("Fog-heavy hill station")))
	require.NoError(t, err)
	assert.Contains(t, out, "- Setting direction: Fog-heavy hill station\n")
	assert.NotContains(t, out, defaultEnvironment)
}

func TestBuild_TaskKeepsFormAsGiven(t *testing.T) {
	out, err := Build(NewRequest(" Movie-Script ", memoryTopic))
	require.NoError(t, err)
	assert.Contains(t, out, "TASK\nWrite a  Movie-Script  about: "+memoryTopic+"\n")
	assert.Contains(t, out, "Screen-ready scene/action/dialogue formatting with cinematic pacing.")
}

func TestBuild_EmptyStyleFieldsUseDefaults(t *testing.T) {
	out, err := Build(WritingRequest{Form: "novel", Topic: memoryTopic})
	require.NoError(t, err)
	assert.Contains(t, out, "- Tone: "+DefaultTone+"\n")
	assert.Contains(t, out, "- Perspective: "+DefaultPerspective+"\n")
	assert.Contains(t, out, "- Audience: "+DefaultAudience+"\n")
}

func TestBuild_DoesNotMutateRequest(t *testing.T) {
	chars := []string{"Reva", "Danish"}
	cons := []string{"word-count<300"}
	req := WritingRequest{Form: " NOVEL ", Topic: memoryTopic, Characters: chars, Constraints: cons}

	_, err := Build(req)
	require.NoError(t, err)
	assert.Equal(t, " NOVEL ", req.Form)
	assert.Equal(t, []string{"Reva", "Danish"}, chars)
	assert.Equal(t, []string{"word-count<300"}, cons)
	assert.Empty(t, req.Tone)
}

func TestBuild_MemoryVillageScenario(t *testing.T) {
	req := NewRequest("novel", memoryTopic,
		WithEnvironment("Fog-heavy hill station with cedar forests and old tea houses"),
		WithCharacters("Reva", "Danish"))

	out, err := Build(req)
	require.NoError(t, err)
	for _, want := range []string{"TASK", "WORLD & ENVIRONMENT", "AUTHENTICITY RULES", "A poet loses memory", "Reva, Danish"} {
		assert.Contains(t, out, want)
	}
}

func TestBuild_EssayScenario(t *testing.T) {
	_, err := Build(NewRequest("essay", "anything"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unsupported format")
}

func TestBuild_FullText(t *testing.T) {
	req := NewRequest("poetry", "Night trains across the desert",
		WithTone("wistful"),
		WithPerspective("first person"),
		WithAudience("young adult"),
		WithEnvironment("A sleeper carriage crossing the Thar at night"),
		WithCharacters("Mira", "the conductor"),
		WithConstraints("under 20 lines", "no rhyme"))

	want := `You are an elite creative writing assistant.

TASK
Write a poetry about: Night trains across the desert

STYLE PROFILE
- Creative form guidance: Evocative imagery, rhythm, and layered meaning.
- Tone: wistful
- Perspective: first person
- Audience: young adult

WORLD & ENVIRONMENT
- Setting direction: A sleeper carriage crossing the Thar at night
- Use concrete sensory details (sound, texture, smell, temperature, light).
- Make character choices reflect social and physical environment.

CHARACTERS
- Primary figures: Mira, the conductor
- Give each voice a distinct rhythm, vocabulary, and emotional logic.

AUTHENTICITY RULES
- Avoid clichés unless intentionally subverted.
- Prioritize emotionally truthful reactions over melodrama.
- Include subtle imperfections in speech/behavior to feel human.
- Let conflict emerge from values, fears, and desire.

CONSTRAINTS
- under 20 lines
- no rhyme

DELIVERY
- Start with a compelling opening.
- Keep pacing appropriate for the chosen form.
- End with resonance (image, line, or emotional beat that lingers).
`

	got, err := Build(req)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestNewRequest_Defaults(t *testing.T) {
	req := NewRequest("novel", "x")
	assert.Equal(t, WritingRequest{
		Form:        "novel",
		Topic:       "x",
		Tone:        DefaultTone,
		Perspective: DefaultPerspective,
		Audience:    DefaultAudience,
	}, req)
}

func TestWithCharacters_CopiesInput(t *testing.T) {
	chars := []string{"Reva"}
	req := NewRequest("novel", "x", WithCharacters(chars...))
	chars[0] = "changed"
	assert.Equal(t, []string{"Reva"}, req.Characters)
}
