package domain

import (
	"fmt"
	"time"
)

// SupportCase is a ticket raised by a seller or maker. CaseID is the
// human-readable number shown in the dashboard (CASE-00001); ID is the
// stable primary key.
//
// Seq records insertion order. Lists are returned newest-first by Seq so a
// freshly created case leads among cases that otherwise sort equal.
// UpdatedAt is owned by the service layer, not by GORM.
type SupportCase struct {
	ID          string     `json:"id"           gorm:"type:char(36);primaryKey"`
	CaseID      string     `json:"case_id"      gorm:"type:varchar(32);not null;uniqueIndex"`
	Seq         int64      `json:"-"            gorm:"not null;index"`
	Title       string     `json:"title"        gorm:"type:varchar(255);not null"`
	Description string     `json:"description"  gorm:"type:text"`
	Type        CaseType   `json:"type"         gorm:"type:varchar(32);not null;index"`
	Status      CaseStatus `json:"status"       gorm:"type:varchar(32);not null;index"`
	Priority    Priority   `json:"priority"     gorm:"type:varchar(16);not null;index"`
	LinkedTo    string     `json:"linked_to,omitempty"   gorm:"type:varchar(64)"`
	AssignedTo  string     `json:"assigned_to,omitempty" gorm:"type:varchar(64);index"`
	CreatedBy   string     `json:"created_by"   gorm:"type:varchar(64)"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"   gorm:"autoUpdateTime:false"`
}

// TableName returns the database table name for SupportCase.
func (SupportCase) TableName() string { return "support_cases" }

// CaseNumber formats the human-readable number of the seq-th case.
func CaseNumber(seq int64) string { return fmt.Sprintf("CASE-%05d", seq) }

// CaseMessage is one entry of a support case thread.
type CaseMessage struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	CaseID    string    `json:"case_id"    gorm:"type:char(36);not null;index:idx_case_msgs,priority:1"`
	Author    string    `json:"author"     gorm:"type:varchar(64);not null"`
	Message   string    `json:"message"    gorm:"type:text;not null"`
	Internal  bool      `json:"internal"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_case_msgs,priority:2"`
}

// TableName returns the database table name for CaseMessage.
func (CaseMessage) TableName() string { return "case_messages" }

// CaseAttachment is a file reference attached to a support case.
type CaseAttachment struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	CaseID    string    `json:"case_id"    gorm:"type:char(36);not null;index"`
	Name      string    `json:"name"       gorm:"type:varchar(255);not null"`
	Type      string    `json:"type"       gorm:"type:varchar(64)"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for CaseAttachment.
func (CaseAttachment) TableName() string { return "case_attachments" }

// Participant is a member of a conversation.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// LastMessage is the preview shown in the inbox list.
type LastMessage struct {
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is an inbox thread between marketplace participants.
//
// RequestID points at a production request that is not modelled here; nothing
// checks that it exists. LastMessage is not maintained by the storage layer:
// whoever appends a message is responsible for syncing it.
type Conversation struct {
	ID            string           `json:"id"             gorm:"type:char(36);primaryKey"`
	Type          ConversationType `json:"type"           gorm:"type:varchar(16);not null;index"`
	Priority      Priority         `json:"priority"       gorm:"type:varchar(16);not null"`
	Subject       string           `json:"subject"        gorm:"type:varchar(255)"`
	Participants  []Participant    `json:"participants"   gorm:"serializer:json"`
	LastMessage   LastMessage      `json:"last_message"   gorm:"embedded;embeddedPrefix:last_"`
	UnreadCount   int              `json:"unread_count"   gorm:"not null;default:0"`
	RequestID     string           `json:"request_id,omitempty"     gorm:"type:varchar(64)"`
	RequestStatus string           `json:"request_status,omitempty" gorm:"type:varchar(32)"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"     gorm:"autoUpdateTime:false"`
}

// TableName returns the database table name for Conversation.
func (Conversation) TableName() string { return "conversations" }

// Message belongs to exactly one conversation and is immutable once stored.
type Message struct {
	ID             string    `json:"id"              gorm:"type:char(36);primaryKey"`
	ConversationID string    `json:"conversation_id" gorm:"type:char(36);not null;index:idx_conv_msgs,priority:1"`
	SenderID       string    `json:"sender_id"       gorm:"type:varchar(64);not null"`
	Content        string    `json:"content"         gorm:"type:text;not null"`
	Attachments    []string  `json:"attachments,omitempty" gorm:"serializer:json"`
	Timestamp      time.Time `json:"timestamp"       gorm:"index:idx_conv_msgs,priority:2"`
}

// TableName returns the database table name for Message.
func (Message) TableName() string { return "messages" }

// KVEntry is a text value stored under a string key. Profiles and payout
// methods are serialized into it the way a browser keeps them in local storage.
type KVEntry struct {
	Key       string    `gorm:"type:varchar(191);primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the database table name for KVEntry.
func (KVEntry) TableName() string { return "kv_entries" }
