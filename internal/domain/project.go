package domain

import "time"

// Project is the top-level container of content-generation work,
// owned by exactly one user. Sessions are never reparented, so the
// owner recorded here is authoritative for the whole subtree.
type Project struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProjectStats is a read-only projection over a project's sessions.
type ProjectStats struct {
	ProjectID     int64            `json:"projectId"`
	TotalSessions int64            `json:"totalSessions"`
	ByStatus      map[Status]int64 `json:"byStatus"`
}
