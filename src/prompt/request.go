package prompt

// Defaults applied to omitted optional fields.
const (
	DefaultTone        = "authentic, emotionally grounded"
	DefaultPerspective = "third person"
	DefaultAudience    = "general adult"
)

// WritingRequest describes one creative-writing task.
type WritingRequest struct {
	Form        string   `toml:"form" yaml:"form"`
	Topic       string   `toml:"topic" yaml:"topic"`
	Tone        string   `toml:"tone" yaml:"tone"`
	Perspective string   `toml:"perspective" yaml:"perspective"`
	Audience    string   `toml:"audience" yaml:"audience"`
	Environment string   `toml:"environment" yaml:"environment"`
	Characters  []string `toml:"characters" yaml:"characters"`
	Constraints []string `toml:"constraints" yaml:"constraints"`
}

// Option sets an optional field on a WritingRequest.
type Option func(*WritingRequest)

// NewRequest creates a request for form and topic with defaults for every
// optional field.
func NewRequest(form, topic string, opts ...Option) WritingRequest {
	req := WritingRequest{
		Form:        form,
		Topic:       topic,
		Tone:        DefaultTone,
		Perspective: DefaultPerspective,
		Audience:    DefaultAudience,
	}
	for _, opt := range opts {
		opt(&req)
	}
	return req
}

func WithTone(tone string) Option {
	return func(r *WritingRequest) { r.Tone = tone }
}

func WithPerspective(perspective string) Option {
	return func(r *WritingRequest) { r.Perspective = perspective }
}

func WithAudience(audience string) Option {
	return func(r *WritingRequest) { r.Audience = audience }
}

func WithEnvironment(environment string) Option {
	return func(r *WritingRequest) { r.Environment = environment }
}

// WithCharacters sets the character list. The slice is copied.
func WithCharacters(characters ...string) Option {
	return func(r *WritingRequest) { r.Characters = append([]string(nil), characters...) }
}

// WithConstraints sets the constraint list. The slice is copied.
func WithConstraints(constraints ...string) Option {
	return func(r *WritingRequest) { r.Constraints = append([]string(nil), constraints...) }
}

// orDefault returns value, or fallback when value is empty.
func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
