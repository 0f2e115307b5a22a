package model

import "time"

// Version is a sprint or release tickets can be scheduled into. All
// versions live in one shared list record on the remote branch, so every
// version mutation is a read-modify-write of that single file.
type Version struct {
	ID         string    `json:"id" yaml:"id"`
	Name       string    `json:"name" yaml:"name"`
	StartDate  string    `json:"start_date,omitempty" yaml:"startDate,omitempty"`
	TargetDate string    `json:"target_date,omitempty" yaml:"targetDate,omitempty"`
	CreatedAt  time.Time `json:"created_at" yaml:"createdAt"`
}

// VersionByID returns the version with the given id, or nil.
func VersionByID(versions []Version, id string) *Version {
	for i := range versions {
		if versions[i].ID == id {
			return &versions[i]
		}
	}
	return nil
}
