package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Actions recorded by dashboard sessions.
const (
	ActionSessionStarted = "session_started"
	ActionLogin          = "login"
	ActionLoginFailed    = "login_failed"
	ActionRegister       = "register"
	ActionRoleSelected   = "role_selected"
	ActionFetchFailed    = "fetch_failed"
	ActionOpen           = "open"
	ActionLogout         = "logout"
	ActionExport         = "export"
	ActionChat           = "chat"
)

// Event is one user action on the dashboard
type Event struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`

	SessionID string `json:"session_id" gorm:"type:varchar(64);index"`
	UserEmail string `json:"user_email,omitempty" gorm:"type:text"`
	Role      string `json:"role,omitempty" gorm:"type:varchar(32)"`

	Action   string `json:"action" gorm:"type:varchar(32);not null;index"`
	Entity   string `json:"entity,omitempty" gorm:"type:varchar(32)"` // headline, card, insights
	EntityID string `json:"entity_id,omitempty" gorm:"type:text"`

	Metadata datatypes.JSON `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (Event) TableName() string {
	return "dashboard_events"
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// ActivityReport summarises events for the admin activity view
type ActivityReport struct {
	Period  string           `json:"period"`
	Total   int64            `json:"total"`
	Actions map[string]int64 `json:"actions"`
	Recent  []Event          `json:"recent"`
}
