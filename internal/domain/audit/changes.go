package audit

// SnapshotChanges is the payload of CREATE and DELETE entries.
type SnapshotChanges[T any] struct {
	Ticket T `json:"ticket"`
}

// DiffChanges is the payload of UPDATE entries.
type DiffChanges[T any] struct {
	Old T `json:"old"`
	New T `json:"new"`
}
