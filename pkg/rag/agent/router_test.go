package agent

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"dec-assist-be/pkg/llm"
	"dec-assist-be/pkg/store"
)

type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.response, f.err
}

func TestRoute(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
		want     store.Persona
	}{
		{"exact name", "MEL", nil, store.PersonaMEL},
		{"lowercase", "methodology", nil, store.PersonaMethodology},
		{"embedded in sentence", "The best agent is Technical.", nil, store.PersonaTechnical},
		{"implementation", "Implementation", nil, store.PersonaImplementation},
		{"rules", "Rules", nil, store.PersonaRules},
		{"communication", "Communication", nil, store.PersonaCommunication},
		{"unknown output defaults", "I am not sure about this one", nil, store.PersonaCommunication},
		{"empty output defaults", "", nil, store.PersonaCommunication},
		{"provider error defaults", "", errors.New("provider down"), store.PersonaCommunication},
	}

	logger := log.New(os.Stderr, "", 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter(&fakeLLM{response: tt.response, err: tt.err}, logger)
			assert.Equal(t, tt.want, r.Route(context.Background(), "some question"))
		})
	}
}
