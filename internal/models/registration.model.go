package models

import (
	"errors"
	"time"
)

// ErrDuplicateTransactionID is returned when an insert or update collides
// with the unique index on transaction_id.
var ErrDuplicateTransactionID = errors.New("transaction ID already used")

const (
	MembershipWithTshirt    = "with-tshirt"
	MembershipWithoutTshirt = "without-tshirt"
)

// Registration is the sole authoritative shape of a member submission.
// JSON keys match the store column names so realtime event payloads and
// REST responses carry identical rows.
type Registration struct {
	ID             int       `gorm:"primaryKey;autoIncrement"                      json:"id"`
	CreatedAt      time.Time `gorm:"autoCreateTime"                                json:"created_at"`
	FullName       string    `gorm:"type:varchar(60);not null"                     json:"full_name"`
	ClassGrade     string    `gorm:"column:class_grade;type:varchar(8);not null"   json:"class_grade"`
	Section        string    `gorm:"type:varchar(16);not null"                     json:"section"`
	CNo            string    `gorm:"column:c_no;type:varchar(10);not null"         json:"c_no"`
	Wing           string    `gorm:"type:varchar(8);not null"                      json:"wing"`
	Email          string    `gorm:"type:varchar(255);not null"                    json:"email"`
	Phone          string    `gorm:"type:varchar(16);not null"                     json:"phone"`
	Whatsapp       *string   `gorm:"type:varchar(16)"                              json:"whatsapp,omitempty"`
	MembershipType string    `gorm:"column:membership_type;type:varchar(16);not null" json:"membership_type"`
	TshirtSize     *string   `gorm:"column:tshirt_size;type:varchar(4)"            json:"tshirt_size,omitempty"`
	BkashNumber    string    `gorm:"column:bkash_number;type:varchar(16);not null" json:"bkash_number"`
	TransactionID  string    `gorm:"column:transaction_id;type:varchar(10);not null;uniqueIndex" json:"transaction_id"`
	IsValidated    bool      `gorm:"column:is_validated;not null;default:false"    json:"is_validated"`
	TshirtGiven    *bool     `gorm:"column:tshirt_given"                           json:"tshirt_given,omitempty"`
	IDCardGiven    *bool     `gorm:"column:id_card_given"                          json:"id_card_given,omitempty"`
	UserAgent      *string   `gorm:"column:user_agent;type:text"                   json:"user_agent,omitempty"`
	IPAddress      *string   `gorm:"column:ip_address;type:varchar(64)"            json:"ip_address,omitempty"`
	BrowserTime    *string   `gorm:"column:browser_time;type:varchar(64)"          json:"browser_time,omitempty"`
}

func (Registration) TableName() string {
	return "registrations"
}

// RegistrationRequest is the intake payload as the public form submits it.
// Field names mirror the form, not the store.
type RegistrationRequest struct {
	FullName       string `json:"fullName"       validate:"required,min=3,max=60"`
	Class          string `json:"class"          validate:"required,oneof=VI VII VIII IX X XI"`
	Section        string `json:"section"        validate:"required,oneof=A B C D E 'B. Std'"`
	CNo            string `json:"cNo"            validate:"required,number,min=4,max=10"`
	Wing           string `json:"wing"           validate:"required,oneof=EMMS BMMS EMDS BMDS"`
	Email          string `json:"email"          validate:"required,email,commonemail"`
	Phone          string `json:"phone"          validate:"required,bdphone"`
	Whatsapp       string `json:"whatsapp"       validate:"omitempty,bdphone"`
	MembershipType string `json:"membershipType" validate:"required,oneof=with-tshirt without-tshirt"`
	TshirtSize     string `json:"tshirtSize"     validate:"omitempty,oneof=S M L XL XXL"`
	BkashNumber    string `json:"bkashNumber"    validate:"required,bdphone"`
	TransactionID  string `json:"transactionId"  validate:"required,min=5,max=10"`
	BrowserTime    string `json:"browserTime"    validate:"omitempty"`
}

// RegistrationUpdate carries the moderator-editable subset of fields.
// id, created_at, user_agent, ip_address and browser_time are immutable
// and deliberately absent. Nil fields are left untouched.
type RegistrationUpdate struct {
	FullName       *string `json:"full_name,omitempty"`
	ClassGrade     *string `json:"class_grade,omitempty"`
	Section        *string `json:"section,omitempty"`
	CNo            *string `json:"c_no,omitempty"`
	Wing           *string `json:"wing,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Whatsapp       *string `json:"whatsapp,omitempty"`
	MembershipType *string `json:"membership_type,omitempty"`
	TshirtSize     *string `json:"tshirt_size,omitempty"`
	BkashNumber    *string `json:"bkash_number,omitempty"`
	TransactionID  *string `json:"transaction_id,omitempty"`
	IsValidated    *bool   `json:"is_validated,omitempty"`
	TshirtGiven    *bool   `json:"tshirt_given,omitempty"`
	IDCardGiven    *bool   `json:"id_card_given,omitempty"`
}

// Changes flattens the update into a column map for a single atomic
// gorm Updates call.
func (u RegistrationUpdate) Changes() map[string]any {
	changes := map[string]any{}

	set := func(column string, value *string) {
		if value != nil {
			changes[column] = *value
		}
	}

	set("full_name", u.FullName)
	set("class_grade", u.ClassGrade)
	set("section", u.Section)
	set("c_no", u.CNo)
	set("wing", u.Wing)
	set("email", u.Email)
	set("phone", u.Phone)
	set("whatsapp", u.Whatsapp)
	set("membership_type", u.MembershipType)
	set("tshirt_size", u.TshirtSize)
	set("bkash_number", u.BkashNumber)
	set("transaction_id", u.TransactionID)

	if u.IsValidated != nil {
		changes["is_validated"] = *u.IsValidated
	}
	if u.TshirtGiven != nil {
		changes["tshirt_given"] = *u.TshirtGiven
	}
	if u.IDCardGiven != nil {
		changes["id_card_given"] = *u.IDCardGiven
	}

	return changes
}
