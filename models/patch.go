package models

// PatchSpec is implemented by every upsertable entity. UpdateColumns are
// overwritten whenever an upsert hits an existing row; CreateOnlyColumns are
// written at insert and added to the conflict-update set only for
// create/backfill operations, never for update-changed runs. Keeping the two
// sets on the model makes the create-vs-update distinction a property of the
// type instead of a call-site convention.
type PatchSpec interface {
	UpdateColumns() []string
	CreateOnlyColumns() []string
}
