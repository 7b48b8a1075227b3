package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// --- Role Enum ---
type Role string

const (
	RoleClient     Role = "client"
	RoleFreelancer Role = "freelancer"
)

// ParseRole normalizes a raw role string to the Role enum. Callers at the
// identity boundary (registration, token validation) run every role through
// here exactly once; the rest of the code compares enum values only.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleClient:
		return RoleClient, nil
	case RoleFreelancer:
		return RoleFreelancer, nil
	default:
		return "", fmt.Errorf("invalid role value: %s", raw)
	}
}

// Scan implements the sql.Scanner interface for Role
func (r *Role) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan Role: value is not string or []byte")
		}
	}
	parsed, err := ParseRole(strVal)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Value implements the driver.Valuer interface for Role
func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

// --- Job Status Enum ---
type JobStatus string

const (
	JobStatusOpen      JobStatus = "open"
	JobStatusAssigned  JobStatus = "assigned"
	JobStatusCompleted JobStatus = "completed"
)

// Scan implements the sql.Scanner interface for JobStatus
func (js *JobStatus) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan JobStatus: value is not string or []byte")
		}
	}
	v := JobStatus(strVal)
	switch v {
	case JobStatusOpen, JobStatusAssigned, JobStatusCompleted:
		*js = v
		return nil
	default:
		return fmt.Errorf("invalid JobStatus value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for JobStatus
func (js JobStatus) Value() (driver.Value, error) {
	return string(js), nil
}

// Identity is the validated caller identity attached to every protected
// request. Core operations receive it explicitly; nothing reads it from
// ambient state.
type Identity struct {
	UserID uuid.UUID `json:"user_id"`
	Role   Role      `json:"role"`
}

// User represents a registered account. Role is immutable after registration.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserSummary is the identity projection embedded in job payloads
// (name/email/role, no credential material).
type UserSummary struct {
	ID    uuid.UUID `json:"id" db:"id"`
	Name  string    `json:"name" db:"name"`
	Email string    `json:"email" db:"email"`
	Role  Role      `json:"role" db:"role"`
}

// Application is a freelancer's expressed interest in a job. It has no
// identity outside its parent job and is only ever mutated through the job's
// atomic update path.
type Application struct {
	Freelancer     uuid.UUID    `json:"freelancer" db:"freelancer_id"`
	FreelancerInfo *UserSummary `json:"freelancer_info,omitempty" db:"-"`
	CoverLetter    string       `json:"cover_letter" db:"cover_letter"`
	AppliedAt      time.Time    `json:"applied_at" db:"applied_at"`
}

// Job is a unit of work posted by a client, moving open -> assigned -> completed.
// AssignedTo is non-nil exactly when Status is assigned or completed.
type Job struct {
	ID           uuid.UUID     `json:"id" db:"id"`
	Title        string        `json:"title" db:"title"`
	Description  string        `json:"description" db:"description"`
	Budget       float64       `json:"budget" db:"budget"`
	Category     string        `json:"category" db:"category"`
	CreatedBy    uuid.UUID     `json:"created_by" db:"created_by"`
	Creator      *UserSummary  `json:"creator,omitempty" db:"-"`
	Status       JobStatus     `json:"status" db:"status"`
	AssignedTo   *uuid.UUID    `json:"assigned_to,omitempty" db:"assigned_to"`
	Applications []Application `json:"applications" db:"-"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
}

// HasApplicationFrom reports whether the freelancer already has an
// application on the job.
func (j *Job) HasApplicationFrom(freelancerID uuid.UUID) bool {
	for _, app := range j.Applications {
		if app.Freelancer == freelancerID {
			return true
		}
	}
	return false
}
