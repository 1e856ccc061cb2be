package store

import "strings"

// Persona is one of the fixed domain-expert response profiles a turn is
// routed to. PersonaNone marks an unrouted turn.
type Persona string

const (
	PersonaMethodology    Persona = "Methodology"
	PersonaTechnical      Persona = "Technical"
	PersonaImplementation Persona = "Implementation"
	PersonaMEL            Persona = "MEL"
	PersonaRules          Persona = "Rules"
	PersonaCommunication  Persona = "Communication"
	PersonaNone           Persona = ""
)

// AllPersonas lists the routable personas in routing-priority order.
var AllPersonas = []Persona{
	PersonaMethodology,
	PersonaTechnical,
	PersonaImplementation,
	PersonaMEL,
	PersonaRules,
	PersonaCommunication,
}

// ParsePersona maps a lowercase request key to a persona. Unknown keys and
// "none" map to PersonaNone, which means auto-routing.
func ParsePersona(key string) Persona {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "methodology":
		return PersonaMethodology
	case "technical":
		return PersonaTechnical
	case "implementation":
		return PersonaImplementation
	case "mel":
		return PersonaMEL
	case "rules":
		return PersonaRules
	case "communication":
		return PersonaCommunication
	default:
		return PersonaNone
	}
}

// Key returns the lowercase request key for the persona, or "none".
func (p Persona) Key() string {
	if p == PersonaNone {
		return "none"
	}
	return strings.ToLower(string(p))
}

// IsRouted reports whether the persona is one of the six expert profiles.
func (p Persona) IsRouted() bool {
	return p != PersonaNone
}
