package entities

// PanelRole represents a panel member's role on the board
type PanelRole string

const (
	PanelRoleChair  PanelRole = "chair"
	PanelRoleMember PanelRole = "member"
)

// PanelMember represents one simulated interviewer on the board.
// Members are generated once at session start and never mutated.
type PanelMember struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      PanelRole `json:"role"`
	Expertise []string  `json:"expertise"`
	VoiceTag  string    `json:"voice_tag"` // presentation hint, not interpreted by the engine
}

// IsChair checks if the member chairs the panel
func (m *PanelMember) IsChair() bool {
	return m.Role == PanelRoleChair
}
